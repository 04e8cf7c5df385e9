package main

import (
	"context"
	"database/sql"

	"overwatch-tracker/internal/bot"
	"overwatch-tracker/internal/constants"
	fxmodules "overwatch-tracker/internal/fx"
	"overwatch-tracker/internal/health"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runBot),
	).Run()
}

func runBot(
	lc fx.Lifecycle,
	b *bot.Bot,
	healthServer *health.Server,
	db *sql.DB,
	logger zerolog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if healthServer.Enabled() {
				if err := healthServer.Start(); err != nil {
					logger.Error().Err(err).Msg("failed to start health server")
					return err
				}
			}

			logger.Info().Msg("bot starting")
			if err := b.Open(); err != nil {
				logger.Error().Err(err).Msg("bot failed to start")
				return err
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down bot")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := b.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing discord session")
			}

			if healthServer.Enabled() {
				if err := healthServer.Shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("health server shutdown failed")
				}
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}

			logger.Info().Msg("bot stopped gracefully")
			return nil
		},
	})
}
