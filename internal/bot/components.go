package bot

import (
	"context"
	"fmt"
	"strings"

	"overwatch-tracker/internal/constants"
	"overwatch-tracker/internal/domain"
	"overwatch-tracker/internal/middleware"
	"overwatch-tracker/internal/wizard"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Wizard prompts carry their whole state in the component custom id, so
// there is nothing to clean up when a requester abandons one.
const wizardPrefix = "wizard:"

var stepTitles = map[wizard.Step]string{
	wizard.StepRole:     "Which role did you play?",
	wizard.StepHeroes:   "Which heroes did you play?",
	wizard.StepGamemode: "Which gamemode was it?",
	wizard.StepMap:      "Which map?",
	wizard.StepResult:   "Did you win or lose?",
	wizard.StepRankTier: "What is your rank tier?",
	wizard.StepModifier: "Which division within the tier?",
}

func progress(s wizard.State) string {
	total := 7
	if s.Mode == wizard.RankText {
		total = 6
	}
	n := int(s.Step) + 1
	if s.Step == wizard.StepRankText {
		n = 6
	}
	return fmt.Sprintf("Step %d/%d", n, total)
}

func summary(s wizard.State) string {
	var parts []string
	if s.Role != "" {
		parts = append(parts, s.Role)
	}
	if len(s.Heroes) > 0 {
		parts = append(parts, strings.Join(s.Heroes, ", "))
	}
	if s.Map != "" {
		parts = append(parts, fmt.Sprintf("%s (%s)", s.Map, s.Gamemode))
	} else if s.Gamemode != "" {
		parts = append(parts, s.Gamemode)
	}
	if s.Result != "" {
		parts = append(parts, string(s.Result))
	}
	if s.RankTier != "" {
		parts = append(parts, s.RankTier)
	}
	return strings.Join(parts, " · ")
}

// prompt renders the message asking for the current step of s.
func (b *Bot) prompt(s wizard.State, flags discordgo.MessageFlags) *discordgo.InteractionResponseData {
	header := progress(s)
	if sum := summary(s); sum != "" {
		header += " · " + sum
	}

	if s.Step == wizard.StepRankText {
		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("%s\nType your rank in this channel, for example `Gold 3`. You have %s.",
				header, b.cfg.RankPromptTimeout),
			Flags:      flags,
			Components: []discordgo.MessageComponent{},
		}
	}

	// Discord rejects menus with more than SelectMenuLimit options.
	options := wizard.Options(b.catalog, s)
	if len(options) > constants.SelectMenuLimit {
		options = options[:constants.SelectMenuLimit]
	}
	menuOptions := make([]discordgo.SelectMenuOption, len(options))
	for idx, o := range options {
		menuOptions[idx] = discordgo.SelectMenuOption{Label: o, Value: o}
	}

	minValues := 1
	menu := discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    wizardPrefix + s.Encode(b.catalog),
		Placeholder: s.Step.String(),
		MinValues:   &minValues,
		MaxValues:   min(wizard.MaxSelections(b.catalog, s), len(menuOptions)),
		Options:     menuOptions,
	}

	return &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("%s\n**%s**", header, stepTitles[s.Step]),
		Flags:   flags,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}},
		},
	}
}

func (b *Bot) onComponent(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	if !strings.HasPrefix(data.CustomID, wizardPrefix) {
		zerolog.Ctx(ctx).Debug().Str("custom_id", data.CustomID).Msg("ignoring unknown component")
		return
	}

	s, err := wizard.Decode(b.catalog, strings.TrimPrefix(data.CustomID, wizardPrefix))
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("custom_id", data.CustomID).Msg("stale wizard prompt")
		b.reply(ctx, r, i, ephemeral("This prompt is no longer valid. Run /record again."))
		return
	}

	l := zerolog.Ctx(ctx).With().Str("step", s.Step.String()).Logger()
	ctx = l.WithContext(ctx)

	out := wizard.Advance(b.catalog, s, data.Values)
	switch out.Kind {
	case wizard.Rejected:
		l.Debug().Err(out.Err).Msg("wizard selection rejected")
		b.reply(ctx, r, i, ephemeral(failureText(out.Err)))

	case wizard.Next:
		b.reply(ctx, r, i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: b.prompt(out.State, 0),
		})
		if out.State.Step == wizard.StepRankText {
			b.awaitRank(ctx, r, i, out.State)
		}

	case wizard.Complete:
		rec, err := b.matches.Record(ctx, middleware.OwnerID(i), out.Draft)
		if err != nil {
			b.fail(ctx, r, i, err)
			return
		}
		b.reply(ctx, r, i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    "",
				Embeds:     []*discordgo.MessageEmbed{recordedEmbed(rec)},
				Components: []discordgo.MessageComponent{},
			},
		})
	}
}

// awaitRank blocks for the requester's next message in the channel and
// finishes the wizard with it. The prompt has already been acknowledged, so
// every outcome is reported by editing it.
func (b *Bot) awaitRank(ctx context.Context, r Responder, i *discordgo.InteractionCreate, s wizard.State) {
	owner := middleware.OwnerID(i)
	text, err := b.waiter.Wait(ctx, owner, i.ChannelID, b.cfg.RankPromptTimeout)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Msg("rank prompt ended without reply")
		b.edit(ctx, r, i, contentEdit(failureText(domain.ErrTimeout)))
		return
	}

	out := wizard.Advance(b.catalog, s, []string{text})
	if out.Kind != wizard.Complete {
		b.edit(ctx, r, i, contentEdit(failureText(out.Err)+" Nothing was recorded, run /record again."))
		return
	}

	rec, err := b.matches.Record(ctx, owner, out.Draft)
	if err != nil {
		if !isUserError(err) {
			zerolog.Ctx(ctx).Error().Err(err).Msg("request failed")
		}
		b.edit(ctx, r, i, contentEdit(failureText(err)))
		return
	}

	empty := ""
	b.edit(ctx, r, i, &discordgo.WebhookEdit{
		Content: &empty,
		Embeds:  &[]*discordgo.MessageEmbed{recordedEmbed(rec)},
	})
}

func contentEdit(text string) *discordgo.WebhookEdit {
	return &discordgo.WebhookEdit{Content: &text}
}
