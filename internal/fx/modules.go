package fx

import (
	"database/sql"

	"overwatch-tracker/internal/bot"
	"overwatch-tracker/internal/catalog"
	"overwatch-tracker/internal/config"
	"overwatch-tracker/internal/database"
	"overwatch-tracker/internal/db"
	"overwatch-tracker/internal/health"
	"overwatch-tracker/internal/logger"
	"overwatch-tracker/internal/repository"
	"overwatch-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideHealthServer(cfg *config.Config, sqlDB *sql.DB, logger zerolog.Logger) *health.Server {
	return health.NewServer(cfg, sqlDB, logger)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Invoke(func(cfg *config.Config) { logger.ApplyLevel(cfg.LogLevel) }),
	fx.Provide(catalog.Default),
	fx.Provide(service.SystemClock),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewMatchRepository),
	// svc
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewAnalyticsService),
	fx.Provide(service.NewExportService),
	// transport
	fx.Provide(bot.NewBot),
	fx.Provide(ProvideHealthServer),
)
