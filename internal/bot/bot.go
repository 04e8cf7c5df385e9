// Package bot binds the match tracker to Discord slash commands, message
// components and autocomplete.
package bot

import (
	"context"
	"fmt"
	"time"

	"overwatch-tracker/internal/catalog"
	"overwatch-tracker/internal/config"
	"overwatch-tracker/internal/middleware"
	"overwatch-tracker/internal/service"
	"overwatch-tracker/internal/wizard"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Responder is the part of *discordgo.Session the handlers reply through.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	HeartbeatLatency() time.Duration
}

type Bot struct {
	session   *discordgo.Session
	cfg       *config.Config
	catalog   *catalog.Catalog
	matches   *service.MatchService
	analytics *service.AnalyticsService
	export    *service.ExportService
	waiter    *Waiter
	handle    middleware.Handler
	logger    zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func NewBot(
	cfg *config.Config,
	cat *catalog.Catalog,
	matches *service.MatchService,
	analytics *service.AnalyticsService,
	export *service.ExportService,
	logger zerolog.Logger,
) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds
	if cfg.RankInput == config.RankInputText {
		session.Identify.Intents |= discordgo.IntentsGuildMessages |
			discordgo.IntentsDirectMessages |
			discordgo.IntentMessageContent
	}

	b := newBot(cfg, cat, matches, analytics, export, logger)
	b.session = session
	return b, nil
}

func newBot(
	cfg *config.Config,
	cat *catalog.Catalog,
	matches *service.MatchService,
	analytics *service.AnalyticsService,
	export *service.ExportService,
	logger zerolog.Logger,
) *Bot {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Bot{
		cfg:       cfg,
		catalog:   cat,
		matches:   matches,
		analytics: analytics,
		export:    export,
		waiter:    NewWaiter(),
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
	b.handle = middleware.Interaction(logger)(func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.dispatch(ctx, s, i)
	})
	return b
}

// Open registers gateway handlers and connects.
func (b *Bot) Open() error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handle(b.ctx, s, i)
	})
	b.session.AddHandler(b.onMessage)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}
	return nil
}

func (b *Bot) Close() error {
	b.cancel()
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("connected to discord")

	registered, err := s.ApplicationCommandBulkOverwrite(r.User.ID, b.cfg.GuildID, Commands())
	if err != nil {
		b.logger.Error().Err(err).Str("guild_id", b.cfg.GuildID).Msg("failed to register commands")
		return
	}
	b.logger.Info().Int("count", len(registered)).Str("guild_id", b.cfg.GuildID).Msg("commands registered")
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if b.waiter.Deliver(m.Author.ID, m.ChannelID, m.Content) {
		b.logger.Debug().Str("owner_id", m.Author.ID).Msg("delivered rank reply")
	}
}

func (b *Bot) rankMode() wizard.RankMode {
	if b.cfg.RankInput == config.RankInputText {
		return wizard.RankText
	}
	return wizard.RankSelect
}

func (b *Bot) dispatch(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.onCommand(ctx, r, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.onAutocomplete(ctx, r, i)
	case discordgo.InteractionMessageComponent:
		b.onComponent(ctx, r, i)
	default:
		zerolog.Ctx(ctx).Debug().Msg("ignoring interaction type")
	}
}

func (b *Bot) onCommand(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	l := zerolog.Ctx(ctx).With().Str("command", name).Logger()
	ctx = l.WithContext(ctx)

	h, ok := b.commandHandlers()[name]
	if !ok {
		l.Warn().Msg("unknown command")
		b.reply(ctx, r, i, ephemeral("Unknown command."))
		return
	}
	h(ctx, r, i)
}

func (b *Bot) reply(ctx context.Context, r Responder, i *discordgo.InteractionCreate, resp *discordgo.InteractionResponse) {
	if err := r.InteractionRespond(i.Interaction, resp); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to respond to interaction")
	}
}

func (b *Bot) edit(ctx context.Context, r Responder, i *discordgo.InteractionCreate, e *discordgo.WebhookEdit) {
	if _, err := r.InteractionResponseEdit(i.Interaction, e); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to edit interaction response")
	}
}

// fail replies privately with a message matching err's kind.
func (b *Bot) fail(ctx context.Context, r Responder, i *discordgo.InteractionCreate, err error) {
	if !isUserError(err) {
		zerolog.Ctx(ctx).Error().Err(err).Msg("request failed")
	}
	b.reply(ctx, r, i, ephemeral(failureText(err)))
}
