package main

import (
	"database/sql"
	"fmt"

	"overwatch-tracker/internal/catalog"
	"overwatch-tracker/internal/config"
	"overwatch-tracker/internal/database"
	"overwatch-tracker/internal/db"
	"overwatch-tracker/internal/logger"
	"overwatch-tracker/internal/repository"
	"overwatch-tracker/internal/service"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	dbPath   string
	owner    string
	logLevel string
}

// app holds what every subcommand needs once the database is open.
type app struct {
	sqlDB     *sql.DB
	matches   *service.MatchService
	analytics *service.AnalyticsService
	export    *service.ExportService
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "owtrack",
		Short:         "Overwatch match tracker admin tool",
		Long:          "Inspect and maintain the matches recorded by the Overwatch tracker bot.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "path to SQLite database (default DB_PATH or matches.db)")
	root.PersistentFlags().StringVar(&opts.owner, "owner", "", "Discord user id whose matches to use")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")

	root.AddCommand(newListCmd(opts))
	root.AddCommand(newTopCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newClearCmd(opts))
	return root
}

func (o *options) open() (*app, error) {
	if o.owner == "" {
		return nil, fmt.Errorf("--owner is required")
	}

	log := logger.New()
	logger.ApplyLevel(o.logLevel)

	cfg, err := config.LoadDatabaseOnly(zerolog.Nop())
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}

	sqlDB, err := database.Open(cfg.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	cat := catalog.Default()
	now := service.SystemClock()
	repo := repository.NewMatchRepository(sqlDB, db.New(sqlDB), log)
	return &app{
		sqlDB:     sqlDB,
		matches:   service.NewMatchService(repo, cat, now, log),
		analytics: service.NewAnalyticsService(repo, cfg, now, log),
		export:    service.NewExportService(repo, log),
	}, nil
}

func (a *app) Close() error { return a.sqlDB.Close() }
