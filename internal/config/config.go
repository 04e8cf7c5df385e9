package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"overwatch-tracker/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type RankInput string

const (
	RankInputSelect RankInput = "select"
	RankInputText   RankInput = "text"
)

type Config struct {
	BotToken   string
	GuildID    string
	DBPath     string
	LogLevel   string
	HealthAddr string

	Season1Start      time.Time
	SeasonDuration    time.Duration
	RankInput         RankInput
	RankPromptTimeout time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	cfg, err := load(logger)
	if err != nil {
		return nil, err
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("guild_id", cfg.GuildID).
		Str("log_level", cfg.LogLevel).
		Str("health_addr", cfg.HealthAddr).
		Time("season_1_start", cfg.Season1Start).
		Dur("season_duration", cfg.SeasonDuration).
		Str("rank_input", string(cfg.RankInput)).
		Dur("rank_prompt_timeout", cfg.RankPromptTimeout).
		Msg("configuration loaded")

	return cfg, nil
}

// LoadDatabaseOnly is used by the admin CLI, which never connects to Discord.
func LoadDatabaseOnly(logger zerolog.Logger) (*Config, error) {
	return load(logger)
}

func load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		BotToken:   getEnv("BOT_TOKEN", ""),
		GuildID:    getEnv("GUILD_ID", ""),
		DBPath:     getEnv("DB_PATH", "matches.db"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		HealthAddr: os.Getenv("HEALTH_ADDR"),
	}
	if _, ok := os.LookupEnv("HEALTH_ADDR"); !ok {
		cfg.HealthAddr = ":8081"
	}

	start, err := time.Parse(time.RFC3339, getEnv("SEASON_1_START", constants.DefaultSeason1Start))
	if err != nil {
		return nil, fmt.Errorf("invalid SEASON_1_START: %w", err)
	}
	cfg.Season1Start = start.UTC()

	weeks, err := strconv.Atoi(getEnv("SEASON_DURATION_WEEKS", strconv.Itoa(constants.DefaultSeasonWeeks)))
	if err != nil || weeks < 1 {
		return nil, fmt.Errorf("invalid SEASON_DURATION_WEEKS: must be a positive integer")
	}
	cfg.SeasonDuration = time.Duration(weeks) * 7 * 24 * time.Hour

	switch mode := RankInput(strings.ToLower(getEnv("RANK_INPUT", string(RankInputSelect)))); mode {
	case RankInputSelect, RankInputText:
		cfg.RankInput = mode
	default:
		return nil, fmt.Errorf("invalid RANK_INPUT %q: want select or text", mode)
	}

	timeout, err := time.ParseDuration(getEnv("RANK_PROMPT_TIMEOUT", constants.DefaultRankPromptTimeout.String()))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid RANK_PROMPT_TIMEOUT: must be a positive duration")
	}
	cfg.RankPromptTimeout = timeout

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
