package constants

import "time"

const (
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 15 * time.Second
)

const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
	HealthTimeout   = 2 * time.Second
)

const (
	AutocompleteLimit = 25
	SelectMenuLimit   = 25
	EmbedFieldLimit   = 25
)

const (
	DefaultRankPromptTimeout = 60 * time.Second
	DefaultSeasonWeeks       = 9
	DefaultSeason1Start      = "2025-02-18T18:00:00Z"

	LosingStreakThreshold = 3
	TopHeroesLimit        = 3
)

const HeroSeparator = ", "
