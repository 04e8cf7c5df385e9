package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"overwatch-tracker/internal/constants"
	"overwatch-tracker/internal/db"
	"overwatch-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// recorded_at is compared as text, so every stored value uses this fixed
// width UTC layout.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

const refAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Insert stores rec and fills in its Ref when empty.
func (r *MatchRepository) Insert(ctx context.Context, rec *domain.MatchRecord) error {
	if rec.Ref == "" {
		ref, err := gonanoid.Generate(refAlphabet, 8)
		if err != nil {
			return fmt.Errorf("failed to generate match ref: %w", err)
		}
		rec.Ref = ref
	}

	var gamemode *string
	if rec.Gamemode != "" {
		gm := rec.Gamemode
		gamemode = &gm
	}

	err := r.queries.InsertMatch(ctx, db.InsertMatchParams{
		OwnerID:    rec.OwnerID,
		Hero:       strings.Join(rec.Heroes, constants.HeroSeparator),
		Role:       rec.Role,
		Gamemode:   gamemode,
		Map:        rec.Map,
		Rank:       rec.Rank.String(),
		Result:     string(rec.Result),
		RecordedAt: formatTime(rec.RecordedAt),
		Ref:        rec.Ref,
	})
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}

	r.logger.Debug().
		Str("owner_id", rec.OwnerID).
		Str("ref", rec.Ref).
		Time("recorded_at", rec.RecordedAt).
		Msg("match inserted")
	return nil
}

// ListByOwner returns every match of owner, oldest first.
func (r *MatchRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.MatchRecord, error) {
	rows, err := r.queries.ListMatchesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	out := make([]domain.MatchRecord, len(rows))
	for i, row := range rows {
		out[i] = toDomain(row)
	}
	return out, nil
}

// ListSince returns matches of owner recorded at or after since, most recent first.
func (r *MatchRepository) ListSince(ctx context.Context, ownerID string, since time.Time) ([]domain.MatchRecord, error) {
	rows, err := r.queries.ListMatchesByOwnerSince(ctx, db.ListMatchesByOwnerSinceParams{
		OwnerID:    ownerID,
		RecordedAt: formatTime(since),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list season matches: %w", err)
	}

	out := make([]domain.MatchRecord, len(rows))
	for i, row := range rows {
		out[i] = toDomain(db.ListMatchesByOwnerRow(row))
	}
	return out, nil
}

// HeroLists returns the hero list of every match of owner, oldest first.
func (r *MatchRepository) HeroLists(ctx context.Context, ownerID string) ([][]string, error) {
	heroes, err := r.queries.ListHeroesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list heroes: %w", err)
	}
	out := make([][]string, len(heroes))
	for i, h := range heroes {
		out[i] = splitHeroes(h)
	}
	return out, nil
}

func (r *MatchRepository) Count(ctx context.Context, ownerID string) (int, error) {
	n, err := r.queries.CountMatchesByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return int(n), nil
}

// DeleteLatest removes the most recent match of owner and returns it.
// It returns nil, nil when owner has no matches.
func (r *MatchRepository) DeleteLatest(ctx context.Context, ownerID string) (*domain.MatchRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	latest, err := qtx.GetLatestMatch(ctx, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find latest match: %w", err)
	}

	n, err := qtx.DeleteMatchByRowID(ctx, db.DeleteMatchByRowIDParams{Rowid: latest.Rowid, OwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to delete match: %w", err)
	}
	if n != 1 {
		return nil, fmt.Errorf("failed to delete match: %d rows affected", n)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit delete: %w", err)
	}

	rec := toDomain(db.ListMatchesByOwnerRow(latest))
	r.logger.Debug().Str("owner_id", ownerID).Str("ref", rec.Ref).Msg("latest match deleted")
	return &rec, nil
}

// DeleteAll removes every match of owner and reports how many were removed.
func (r *MatchRepository) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	n, err := r.queries.DeleteMatchesByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear matches: %w", err)
	}
	r.logger.Debug().Str("owner_id", ownerID).Int64("deleted", n).Msg("matches cleared")
	return n, nil
}

func toDomain(row db.ListMatchesByOwnerRow) domain.MatchRecord {
	rec := domain.MatchRecord{
		RowID:      row.Rowid,
		Ref:        row.Ref,
		OwnerID:    row.OwnerID,
		Heroes:     splitHeroes(row.Hero),
		Role:       row.Role,
		Map:        row.Map,
		Rank:       parseRank(row.Rank),
		Result:     domain.Result(row.Result),
		RecordedAt: parseTime(row.RecordedAt),
	}
	if row.Gamemode != nil {
		rec.Gamemode = *row.Gamemode
	}
	return rec
}

func splitHeroes(s string) []string {
	var out []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

// parseRank reads "<tier> <modifier>". Rows typed as free text that do not
// follow that shape keep the whole text as the tier.
func parseRank(s string) domain.Rank {
	s = strings.TrimSpace(s)
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return domain.Rank{Tier: s}
	}
	mod, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return domain.Rank{Tier: s}
	}
	return domain.Rank{Tier: s[:i], Modifier: mod}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime reads a value written by formatTime. Anything else reads as the
// zero time.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
