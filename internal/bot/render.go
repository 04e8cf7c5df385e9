package bot

import (
	"errors"
	"fmt"
	"strings"

	"overwatch-tracker/internal/constants"
	"overwatch-tracker/internal/domain"
	"overwatch-tracker/internal/service"

	"github.com/bwmarrin/discordgo"
)

const (
	colorWin     = 0x2ecc71
	colorLoss    = 0xe74c3c
	colorNeutral = 0xf99e1a
)

const dateLayout = "2006-01-02 15:04"

func ephemeral(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

func ephemeralEmbed(e *discordgo.MessageEmbed) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{e},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	}
}

func broadcastEmbed(e *discordgo.MessageEmbed) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{e},
		},
	}
}

// isUserError reports errors caused by the requester's input or inaction.
// Anything else is a persistence failure.
func isUserError(err error) bool {
	return domain.IsValidation(err) || errors.Is(err, domain.ErrTimeout) || errors.Is(err, domain.ErrNoMatches)
}

func failureText(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		if ve.Reason != "" {
			return fmt.Sprintf("Invalid %s `%s`: %s.", ve.Field, ve.Value, ve.Reason)
		}
		return fmt.Sprintf("Invalid %s `%s`.", ve.Field, ve.Value)
	case errors.Is(err, domain.ErrTimeout):
		return "Timed out waiting for your answer. Nothing was recorded."
	case errors.Is(err, domain.ErrNoMatches):
		return "You have no recorded matches."
	}
	return "Something went wrong on our side. Nothing was changed, please try again."
}

func resultColor(r domain.Result) int {
	if r == domain.Win {
		return colorWin
	}
	return colorLoss
}

func matchLine(m domain.MatchRecord) string {
	where := m.Map
	if m.Gamemode != "" {
		where = fmt.Sprintf("%s (%s)", m.Map, m.Gamemode)
	}
	return fmt.Sprintf("%s · %s · %s · %s · %s",
		m.HeroList(), m.Role, where, m.Rank, m.RecordedAt.UTC().Format(dateLayout))
}

func recordedEmbed(m *domain.MatchRecord) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Match recorded: " + string(m.Result),
		Description: matchLine(*m),
		Color:       resultColor(m.Result),
		Footer:      &discordgo.MessageEmbedFooter{Text: "ref " + m.Ref},
	}
}

func deletedEmbed(m *domain.MatchRecord) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Deleted your latest match",
		Description: fmt.Sprintf("%s · %s", m.Result, matchLine(*m)),
		Color:       colorNeutral,
	}
}

func streakText(n int) string {
	return fmt.Sprintf("⚠️ You are on a %d game losing streak. Consider taking a break.", n)
}

// seasonEmbed renders a non-empty season report. Only the most recent
// EmbedFieldLimit matches fit into one embed.
func seasonEmbed(username string, r *service.SeasonReport) *discordgo.MessageEmbed {
	shown := r.Matches
	if len(shown) > constants.EmbedFieldLimit {
		shown = shown[:constants.EmbedFieldLimit]
	}

	fields := make([]*discordgo.MessageEmbedField, len(shown))
	for i, nm := range shown {
		fields[i] = &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("#%d · %s", nm.Number, nm.Match.Result),
			Value: matchLine(nm.Match),
		}
	}

	desc := fmt.Sprintf("%d matches · %.1f%% win rate", len(r.Matches), r.WinRate)
	if r.Advisory {
		desc += "\n" + streakText(r.LossStreak)
	}

	footer := fmt.Sprintf("Season %d started %s", r.Window.Number, r.Window.Start.Format(dateLayout))
	if len(shown) < len(r.Matches) {
		footer += fmt.Sprintf(" · showing latest %d of %d", len(shown), len(r.Matches))
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s · Season %d", username, r.Window.Number),
		Description: desc,
		Color:       colorNeutral,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: footer},
	}
}

func heroLines(top []domain.HeroUsage) string {
	var sb strings.Builder
	for i, h := range top {
		games := "games"
		if h.Count == 1 {
			games = "game"
		}
		fmt.Fprintf(&sb, "%d. **%s**: %d %s (%.1f%%)\n", i+1, h.Hero, h.Count, games, h.Percentage)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func topHeroesEmbed(top []domain.HeroUsage) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Your most played heroes",
		Description: heroLines(top),
		Color:       colorNeutral,
	}
}

func profileEmbed(username string, p *service.Profile) *discordgo.MessageEmbed {
	season := "No matches this season."
	if !p.Season.Empty() {
		season = fmt.Sprintf("%d matches · %.1f%% win rate", len(p.Season.Matches), p.Season.WinRate)
		if p.Season.Advisory {
			season += "\n" + streakText(p.Season.LossStreak)
		}
	}

	return &discordgo.MessageEmbed{
		Title: username + " · Stats",
		Color: colorNeutral,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "All time", Value: fmt.Sprintf("%d matches · %.1f%% win rate", p.TotalMatches, p.WinRate)},
			{Name: fmt.Sprintf("Season %d", p.Season.Window.Number), Value: season},
			{Name: "Top heroes", Value: heroLines(p.TopHeroes)},
		},
	}
}

func helpEmbed() *discordgo.MessageEmbed {
	var sb strings.Builder
	for _, c := range Commands() {
		fmt.Fprintf(&sb, "`/%s` %s\n", c.Name, c.Description)
	}
	return &discordgo.MessageEmbed{
		Title:       "Overwatch match tracker",
		Description: strings.TrimSuffix(sb.String(), "\n"),
		Color:       colorNeutral,
	}
}
