package service

import (
	"context"
	"fmt"

	"overwatch-tracker/internal/analytics"
	"overwatch-tracker/internal/config"
	"overwatch-tracker/internal/constants"
	"overwatch-tracker/internal/domain"
	"overwatch-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type SeasonReport struct {
	Window     domain.SeasonWindow
	Matches    []domain.NumberedMatch // most recent first
	LossStreak int
	Advisory   bool
	WinRate    float64
}

func (r *SeasonReport) Empty() bool { return len(r.Matches) == 0 }

type Profile struct {
	Season       *SeasonReport
	TotalMatches int
	WinRate      float64
	TopHeroes    []domain.HeroUsage
}

type AnalyticsService struct {
	matchRepo *repository.MatchRepository
	cfg       *config.Config
	now       Clock
	logger    zerolog.Logger
}

func NewAnalyticsService(matchRepo *repository.MatchRepository, cfg *config.Config, now Clock, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{matchRepo: matchRepo, cfg: cfg, now: now, logger: logger}
}

// CurrentSeason evaluates the season window at call time.
func (s *AnalyticsService) CurrentSeason() domain.SeasonWindow {
	return analytics.SeasonAt(s.now().UTC(), s.cfg.Season1Start, s.cfg.SeasonDuration)
}

// Season lists the owner's matches in the current season, most recent first.
// An empty season is reported through SeasonReport.Empty, not as an error.
func (s *AnalyticsService) Season(ctx context.Context, ownerID string) (*SeasonReport, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	window := s.CurrentSeason()
	matches, err := s.matchRepo.ListSince(ctx, ownerID, window.Start)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to list season matches")
		return nil, fmt.Errorf("failed to list season matches: %w", err)
	}

	streak := analytics.LosingStreak(matches)
	report := &SeasonReport{
		Window:     window,
		Matches:    analytics.Number(matches),
		LossStreak: streak,
		Advisory:   analytics.StreakAdvisory(streak),
		WinRate:    analytics.WinRate(matches),
	}

	s.logger.Debug().
		Str("owner_id", ownerID).
		Int("season", window.Number).
		Int("match_count", len(matches)).
		Int("loss_streak", streak).
		Msg("season report built")
	return report, nil
}

// TopHeroes returns the owner's most played heroes across all matches.
func (s *AnalyticsService) TopHeroes(ctx context.Context, ownerID string) ([]domain.HeroUsage, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	lists, err := s.matchRepo.HeroLists(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to load hero usage")
		return nil, fmt.Errorf("failed to load hero usage: %w", err)
	}

	matches := make([]domain.MatchRecord, len(lists))
	for i, l := range lists {
		matches[i].Heroes = l
	}
	top := analytics.TopHeroes(matches, constants.TopHeroesLimit)
	if len(top) == 0 {
		return nil, domain.ErrNoMatches
	}
	return top, nil
}

// Profile combines the season report with all-time figures. The two reads
// run concurrently.
func (s *AnalyticsService) Profile(ctx context.Context, ownerID string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	var season *SeasonReport
	var all []domain.MatchRecord

	g.Go(func() error {
		var err error
		season, err = s.Season(gCtx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		all, err = s.matchRepo.ListByOwner(gCtx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to build profile")
		return nil, err
	}
	if len(all) == 0 {
		return nil, domain.ErrNoMatches
	}

	return &Profile{
		Season:       season,
		TotalMatches: len(all),
		WinRate:      analytics.WinRate(all),
		TopHeroes:    analytics.TopHeroes(all, constants.TopHeroesLimit),
	}, nil
}
