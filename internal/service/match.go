package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"overwatch-tracker/internal/catalog"
	"overwatch-tracker/internal/constants"
	"overwatch-tracker/internal/domain"
	"overwatch-tracker/internal/repository"
	"overwatch-tracker/internal/wizard"

	"github.com/rs/zerolog"
)

// Clock returns the current time. Production uses time.Now.
type Clock func() time.Time

func SystemClock() Clock { return time.Now }

// MatchService owns every write: recording, deleting the latest match and
// clearing an owner's history.
type MatchService struct {
	matchRepo *repository.MatchRepository
	catalog   *catalog.Catalog
	now       Clock
	logger    zerolog.Logger
}

func NewMatchService(matchRepo *repository.MatchRepository, cat *catalog.Catalog, now Clock, logger zerolog.Logger) *MatchService {
	return &MatchService{matchRepo: matchRepo, catalog: cat, now: now, logger: logger}
}

// Record validates draft against the catalog and inserts exactly one row.
// Nothing is written when validation fails.
func (s *MatchService) Record(ctx context.Context, ownerID string, draft domain.MatchDraft) (*domain.MatchRecord, error) {
	valid, err := wizard.Direct(s.catalog, wizard.Fields{
		Role:     draft.Role,
		Heroes:   draft.Heroes,
		Gamemode: draft.Gamemode,
		Map:      draft.Map,
		RankTier: draft.Rank.Tier,
		Modifier: strconv.Itoa(draft.Rank.Modifier),
		Result:   string(draft.Result),
	})
	if err != nil {
		s.logger.Debug().Err(err).Str("owner_id", ownerID).Msg("rejected match draft")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rec := &domain.MatchRecord{
		OwnerID:    ownerID,
		Heroes:     valid.Heroes,
		Role:       valid.Role,
		Gamemode:   valid.Gamemode,
		Map:        valid.Map,
		Rank:       valid.Rank,
		Result:     valid.Result,
		RecordedAt: s.now().UTC(),
	}
	if err := s.matchRepo.Insert(ctx, rec); err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to record match")
		return nil, fmt.Errorf("failed to record match: %w", err)
	}

	s.logger.Info().
		Str("owner_id", ownerID).
		Str("ref", rec.Ref).
		Str("role", rec.Role).
		Str("map", rec.Map).
		Str("result", string(rec.Result)).
		Msg("match recorded")
	return rec, nil
}

// RecordDirect records from the arguments of a single command invocation.
func (s *MatchService) RecordDirect(ctx context.Context, ownerID string, f wizard.Fields) (*domain.MatchRecord, error) {
	draft, err := wizard.Direct(s.catalog, f)
	if err != nil {
		return nil, err
	}
	return s.Record(ctx, ownerID, draft)
}

// DeleteLast removes the most recent match of owner. ErrNoMatches reports an
// empty history.
func (s *MatchService) DeleteLast(ctx context.Context, ownerID string) (*domain.MatchRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rec, err := s.matchRepo.DeleteLatest(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to delete latest match")
		return nil, fmt.Errorf("failed to delete latest match: %w", err)
	}
	if rec == nil {
		return nil, domain.ErrNoMatches
	}

	s.logger.Info().Str("owner_id", ownerID).Str("ref", rec.Ref).Msg("latest match deleted")
	return rec, nil
}

// Clear removes every match of owner. Clearing an empty history is a no-op.
func (s *MatchService) Clear(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	n, err := s.matchRepo.DeleteAll(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to clear matches")
		return 0, fmt.Errorf("failed to clear matches: %w", err)
	}

	s.logger.Info().Str("owner_id", ownerID).Int64("deleted", n).Msg("matches cleared")
	return n, nil
}

// Count reports how many matches owner has recorded across all seasons.
func (s *MatchService) Count(ctx context.Context, ownerID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	n, err := s.matchRepo.Count(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to count matches")
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return n, nil
}
