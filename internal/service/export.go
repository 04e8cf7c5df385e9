package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"overwatch-tracker/internal/constants"
	"overwatch-tracker/internal/domain"
	"overwatch-tracker/internal/repository"

	"github.com/rs/zerolog"
)

var csvHeader = []string{"owner_id", "hero", "role", "gamemode", "map", "rank", "result", "recorded_at"}

type ExportService struct {
	matchRepo *repository.MatchRepository
	logger    zerolog.Logger
}

func NewExportService(matchRepo *repository.MatchRepository, logger zerolog.Logger) *ExportService {
	return &ExportService{matchRepo: matchRepo, logger: logger}
}

// CSV writes every match of owner, oldest first, and returns the row count.
func (s *ExportService) CSV(ctx context.Context, ownerID string, w io.Writer) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	matches, err := s.matchRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to load matches for export")
		return 0, fmt.Errorf("failed to load matches: %w", err)
	}
	if len(matches) == 0 {
		return 0, domain.ErrNoMatches
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, m := range matches {
		row := []string{
			m.OwnerID,
			m.HeroList(),
			m.Role,
			m.Gamemode,
			m.Map,
			m.Rank.String(),
			string(m.Result),
			m.RecordedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush csv: %w", err)
	}

	s.logger.Info().Str("owner_id", ownerID).Int("rows", len(matches)).Msg("matches exported")
	return len(matches), nil
}
