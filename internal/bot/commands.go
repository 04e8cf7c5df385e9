package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"overwatch-tracker/internal/catalog"
	"overwatch-tracker/internal/domain"
	"overwatch-tracker/internal/middleware"
	"overwatch-tracker/internal/wizard"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

type commandHandler func(ctx context.Context, r Responder, i *discordgo.InteractionCreate)

const (
	optRole     = "role"
	optHeroes   = "heroes"
	optGamemode = "gamemode"
	optMap      = "map"
	optRank     = "rank"
	optModifier = "modifier"
	optResult   = "result"
)

var minModifier float64 = catalog.MinModifier

func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{Name: "ping", Description: "Check that the bot is alive"},
		{Name: "help", Description: "List the available commands"},
		{Name: "record", Description: "Record a match step by step"},
		{
			Name:        "log",
			Description: "Record a match in one go",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: optRole, Description: "Role you played", Required: true, Autocomplete: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: optHeroes, Description: "Heroes played, comma separated", Required: true, Autocomplete: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: optMap, Description: "Map", Required: true, Autocomplete: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: optRank, Description: "Rank tier", Required: true, Autocomplete: true},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        optModifier,
					Description: "Rank division, 1 to 5",
					Required:    true,
					MinValue:    &minModifier,
					MaxValue:    catalog.MaxModifier,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optResult,
					Description: "Match result",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: string(domain.Win), Value: string(domain.Win)},
						{Name: string(domain.Loss), Value: string(domain.Loss)},
					},
				},
				{Type: discordgo.ApplicationCommandOptionString, Name: optGamemode, Description: "Gamemode, inferred from the map when left out", Autocomplete: true},
			},
		},
		{Name: "matches", Description: "Show your matches this season"},
		{Name: "tophero", Description: "Show your three most played heroes"},
		{Name: "stats", Description: "Show your season and all time summary"},
		{Name: "delete_last", Description: "Delete your most recent match"},
		{Name: "clear", Description: "Delete all of your matches"},
		{Name: "export", Description: "Download your matches as CSV"},
	}
}

func (b *Bot) commandHandlers() map[string]commandHandler {
	return map[string]commandHandler{
		"ping":        b.cmdPing,
		"help":        b.cmdHelp,
		"record":      b.cmdRecord,
		"log":         b.cmdLog,
		"matches":     b.cmdMatches,
		"tophero":     b.cmdTopHero,
		"stats":       b.cmdStats,
		"delete_last": b.cmdDeleteLast,
		"clear":       b.cmdClear,
		"export":      b.cmdExport,
	}
}

func (b *Bot) cmdPing(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	latency := r.HeartbeatLatency().Round(time.Millisecond)
	b.reply(ctx, r, i, ephemeral(fmt.Sprintf("Pong! Gateway latency %s.", latency)))
}

func (b *Bot) cmdHelp(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	b.reply(ctx, r, i, ephemeralEmbed(helpEmbed()))
}

func (b *Bot) cmdRecord(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	s := wizard.Start(b.rankMode())
	b.reply(ctx, r, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: b.prompt(s, discordgo.MessageFlagsEphemeral),
	})
}

func (b *Bot) cmdLog(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	opts := optionMap(i.ApplicationCommandData().Options)

	f := wizard.Fields{
		Role:     stringOpt(opts, optRole),
		Heroes:   wizard.SplitHeroes(stringOpt(opts, optHeroes)),
		Gamemode: stringOpt(opts, optGamemode),
		Map:      stringOpt(opts, optMap),
		RankTier: stringOpt(opts, optRank),
		Modifier: stringOpt(opts, optModifier),
		Result:   stringOpt(opts, optResult),
	}

	rec, err := b.matches.RecordDirect(ctx, middleware.OwnerID(i), f)
	if err != nil {
		b.fail(ctx, r, i, err)
		return
	}
	b.reply(ctx, r, i, ephemeralEmbed(recordedEmbed(rec)))
}

func (b *Bot) cmdMatches(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	report, err := b.analytics.Season(ctx, middleware.OwnerID(i))
	if err != nil {
		b.fail(ctx, r, i, err)
		return
	}
	if report.Empty() {
		b.reply(ctx, r, i, ephemeral(fmt.Sprintf("No matches recorded in season %d yet.", report.Window.Number)))
		return
	}
	b.reply(ctx, r, i, broadcastEmbed(seasonEmbed(username(i), report)))
}

func (b *Bot) cmdTopHero(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	top, err := b.analytics.TopHeroes(ctx, middleware.OwnerID(i))
	if err != nil {
		b.fail(ctx, r, i, err)
		return
	}
	b.reply(ctx, r, i, ephemeralEmbed(topHeroesEmbed(top)))
}

func (b *Bot) cmdStats(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	p, err := b.analytics.Profile(ctx, middleware.OwnerID(i))
	if err != nil {
		b.fail(ctx, r, i, err)
		return
	}
	b.reply(ctx, r, i, ephemeralEmbed(profileEmbed(username(i), p)))
}

func (b *Bot) cmdDeleteLast(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	rec, err := b.matches.DeleteLast(ctx, middleware.OwnerID(i))
	if errors.Is(err, domain.ErrNoMatches) {
		b.reply(ctx, r, i, ephemeral("You have no matches to delete."))
		return
	}
	if err != nil {
		b.fail(ctx, r, i, err)
		return
	}
	b.reply(ctx, r, i, ephemeralEmbed(deletedEmbed(rec)))
}

func (b *Bot) cmdClear(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	n, err := b.matches.Clear(ctx, middleware.OwnerID(i))
	if err != nil {
		b.fail(ctx, r, i, err)
		return
	}
	if n == 0 {
		b.reply(ctx, r, i, ephemeral("You have no matches to clear."))
		return
	}
	b.reply(ctx, r, i, ephemeral(fmt.Sprintf("Cleared %d matches.", n)))
}

func (b *Bot) cmdExport(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	var buf bytes.Buffer
	n, err := b.export.CSV(ctx, middleware.OwnerID(i), &buf)
	if errors.Is(err, domain.ErrNoMatches) {
		b.reply(ctx, r, i, ephemeral("You have no matches to export."))
		return
	}
	if err != nil {
		b.fail(ctx, r, i, err)
		return
	}

	zerolog.Ctx(ctx).Debug().Int("rows", n).Int("bytes", buf.Len()).Msg("sending export")
	b.reply(ctx, r, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Exported %d matches.", n),
			Flags:   discordgo.MessageFlagsEphemeral,
			Files: []*discordgo.File{{
				Name:        "matches.csv",
				ContentType: "text/csv",
				Reader:      &buf,
			}},
		},
	})
}

func optionMap(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		m[o.Name] = o
	}
	return m
}

// stringOpt returns the option value as text. Integer options arrive as
// float64 in the interaction payload.
func stringOpt(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	o, ok := opts[name]
	if !ok {
		return ""
	}
	switch v := o.Value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprint(o.Value)
}

func username(i *discordgo.InteractionCreate) string {
	if i.Member != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		if i.Member.User != nil {
			return i.Member.User.Username
		}
	}
	if i.User != nil {
		return i.User.Username
	}
	return "Player"
}
