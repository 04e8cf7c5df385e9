package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"overwatch-tracker/internal/catalog"
	"overwatch-tracker/internal/config"
	"overwatch-tracker/internal/database"
	"overwatch-tracker/internal/db"
	"overwatch-tracker/internal/domain"
	"overwatch-tracker/internal/repository"
	"overwatch-tracker/internal/wizard"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

var season1 = time.Date(2025, 2, 18, 18, 0, 0, 0, time.UTC)

// fakeClock advances by one minute on every call so inserts are ordered.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

type fixture struct {
	matches   *MatchService
	analytics *AnalyticsService
	export    *ExportService
	clock     *fakeClock
}

func newFixture(t *testing.T, start time.Time) *fixture {
	t.Helper()
	sqlDB, err := database.Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	repo := repository.NewMatchRepository(sqlDB, db.New(sqlDB), zerolog.Nop())
	cfg := &config.Config{Season1Start: season1, SeasonDuration: 9 * 7 * 24 * time.Hour}
	clock := &fakeClock{t: start}

	return &fixture{
		matches:   NewMatchService(repo, catalog.Default(), clock.now, zerolog.Nop()),
		analytics: NewAnalyticsService(repo, cfg, clock.now, zerolog.Nop()),
		export:    NewExportService(repo, zerolog.Nop()),
		clock:     clock,
	}
}

func fields(result string, heroes ...string) wizard.Fields {
	return wizard.Fields{
		Role:     "Support",
		Heroes:   heroes,
		Map:      "Busan",
		RankTier: "Gold",
		Modifier: "3",
		Result:   result,
	}
}

func (f *fixture) mustRecord(t *testing.T, owner string, fl wizard.Fields) *domain.MatchRecord {
	t.Helper()
	rec, err := f.matches.RecordDirect(context.Background(), owner, fl)
	if err != nil {
		t.Fatalf("RecordDirect: %v", err)
	}
	return rec
}

func TestRecordDirectInfersGamemode(t *testing.T) {
	f := newFixture(t, season1.Add(24*time.Hour))
	rec := f.mustRecord(t, "u1", fields("win", "ana"))

	if rec.Gamemode != "Control" || rec.Heroes[0] != "Ana" || rec.Result != domain.Win {
		t.Errorf("record = %+v", rec)
	}
	if rec.RecordedAt.Location() != time.UTC {
		t.Errorf("RecordedAt not UTC: %v", rec.RecordedAt)
	}
}

func TestRecordRejectsOutOfRangeModifier(t *testing.T) {
	f := newFixture(t, season1.Add(24*time.Hour))
	ctx := context.Background()

	for _, mod := range []string{"0", "6"} {
		fl := fields("Win", "Ana")
		fl.Modifier = mod
		_, err := f.matches.RecordDirect(ctx, "u1", fl)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Field != "modifier" {
			t.Errorf("modifier %s: err = %v, want modifier validation error", mod, err)
		}
	}

	_, err := f.matches.Record(ctx, "u1", domain.MatchDraft{
		Heroes: []string{"Reinhardt"},
		Role:   "Support",
		Map:    "Busan",
		Rank:   domain.Rank{Tier: "Gold", Modifier: 3},
		Result: domain.Win,
	})
	if !domain.IsValidation(err) {
		t.Errorf("hero outside role: err = %v, want validation error", err)
	}

	r, err := f.analytics.Season(ctx, "u1")
	if err != nil {
		t.Fatalf("Season: %v", err)
	}
	if !r.Empty() {
		t.Errorf("rejected records were persisted: %+v", r.Matches)
	}
}

func TestSeasonReportNumbersAndStreak(t *testing.T) {
	f := newFixture(t, season1.Add(24*time.Hour))
	f.mustRecord(t, "u1", fields("Win", "Ana"))
	f.mustRecord(t, "u1", fields("Loss", "Lucio"))
	f.mustRecord(t, "u1", fields("Loss", "Mercy"))
	f.mustRecord(t, "u1", fields("Loss", "Kiriko"))
	f.mustRecord(t, "u2", fields("Loss", "Ana"))

	r, err := f.analytics.Season(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Season: %v", err)
	}
	if r.Window.Number != 1 {
		t.Errorf("season = %d, want 1", r.Window.Number)
	}
	if len(r.Matches) != 4 {
		t.Fatalf("len = %d, want 4", len(r.Matches))
	}
	if r.Matches[0].Number != 4 || r.Matches[0].Match.Heroes[0] != "Kiriko" {
		t.Errorf("first = %+v, want #4 Kiriko", r.Matches[0])
	}
	if r.Matches[3].Number != 1 || r.Matches[3].Match.Heroes[0] != "Ana" {
		t.Errorf("last = %+v, want #1 Ana", r.Matches[3])
	}
	if r.LossStreak != 3 || !r.Advisory {
		t.Errorf("streak = %d advisory = %v, want 3 true", r.LossStreak, r.Advisory)
	}
}

func TestSeasonExcludesPreviousSeason(t *testing.T) {
	// the first match lands a minute before season 2 begins
	f := newFixture(t, season1.Add(9*7*24*time.Hour-2*time.Minute))
	f.mustRecord(t, "u1", fields("Win", "Ana"))
	f.mustRecord(t, "u1", fields("Win", "Lucio"))

	r, err := f.analytics.Season(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Season: %v", err)
	}
	if r.Window.Number != 2 {
		t.Fatalf("season = %d, want 2", r.Window.Number)
	}
	if len(r.Matches) != 1 || r.Matches[0].Match.Heroes[0] != "Lucio" {
		t.Errorf("matches = %+v, want only Lucio", r.Matches)
	}
}

func TestTopHeroes(t *testing.T) {
	f := newFixture(t, season1.Add(24*time.Hour))
	ctx := context.Background()

	if _, err := f.analytics.TopHeroes(ctx, "u1"); !errors.Is(err, domain.ErrNoMatches) {
		t.Fatalf("empty TopHeroes err = %v, want ErrNoMatches", err)
	}

	f.mustRecord(t, "u1", fields("Win", "Ana", "Lucio"))
	f.mustRecord(t, "u1", fields("Loss", "Ana"))

	top, err := f.analytics.TopHeroes(ctx, "u1")
	if err != nil {
		t.Fatalf("TopHeroes: %v", err)
	}
	want := []domain.HeroUsage{
		{Hero: "Ana", Count: 2, Percentage: 66.7},
		{Hero: "Lucio", Count: 1, Percentage: 33.3},
	}
	if diff := cmp.Diff(want, top); diff != "" {
		t.Errorf("TopHeroes mismatch (-want +got):\n%s", diff)
	}
}

func TestProfile(t *testing.T) {
	f := newFixture(t, season1.Add(24*time.Hour))
	ctx := context.Background()

	if _, err := f.analytics.Profile(ctx, "u1"); !errors.Is(err, domain.ErrNoMatches) {
		t.Fatalf("empty Profile err = %v, want ErrNoMatches", err)
	}

	f.mustRecord(t, "u1", fields("Win", "Ana"))
	f.mustRecord(t, "u1", fields("Loss", "Ana"))

	p, err := f.analytics.Profile(ctx, "u1")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.TotalMatches != 2 || p.WinRate != 50 || len(p.TopHeroes) != 1 || len(p.Season.Matches) != 2 {
		t.Errorf("profile = %+v", p)
	}
}

func TestDeleteLastSequence(t *testing.T) {
	f := newFixture(t, season1.Add(24*time.Hour))
	ctx := context.Background()

	f.mustRecord(t, "u1", fields("Win", "Ana"))
	f.mustRecord(t, "u1", fields("Win", "Lucio"))
	f.mustRecord(t, "u1", fields("Win", "Mercy"))

	del, err := f.matches.DeleteLast(ctx, "u1")
	if err != nil || del.Heroes[0] != "Mercy" {
		t.Fatalf("DeleteLast = %+v, %v; want Mercy", del, err)
	}
	r, _ := f.analytics.Season(ctx, "u1")
	if len(r.Matches) != 2 || r.Matches[0].Match.Heroes[0] != "Lucio" {
		t.Errorf("after delete = %+v", r.Matches)
	}

	f.matches.DeleteLast(ctx, "u1")
	f.matches.DeleteLast(ctx, "u1")
	if _, err := f.matches.DeleteLast(ctx, "u1"); !errors.Is(err, domain.ErrNoMatches) {
		t.Errorf("DeleteLast on empty err = %v, want ErrNoMatches", err)
	}
}

func TestClearThenListIsEmpty(t *testing.T) {
	f := newFixture(t, season1.Add(24*time.Hour))
	ctx := context.Background()

	f.mustRecord(t, "u1", fields("Win", "Ana"))
	f.mustRecord(t, "u1", fields("Loss", "Lucio"))
	f.mustRecord(t, "u2", fields("Win", "Mercy"))

	if c, err := f.matches.Count(ctx, "u1"); err != nil || c != 2 {
		t.Fatalf("Count = %d, %v; want 2", c, err)
	}

	n, err := f.matches.Clear(ctx, "u1")
	if err != nil || n != 2 {
		t.Fatalf("Clear = %d, %v; want 2", n, err)
	}
	r, _ := f.analytics.Season(ctx, "u1")
	if !r.Empty() {
		t.Errorf("season not empty after clear: %+v", r.Matches)
	}
	if _, err := f.analytics.TopHeroes(ctx, "u1"); !errors.Is(err, domain.ErrNoMatches) {
		t.Errorf("TopHeroes after clear err = %v", err)
	}
	if r, _ := f.analytics.Season(ctx, "u2"); len(r.Matches) != 1 {
		t.Errorf("other owner affected: %+v", r.Matches)
	}
	if c, _ := f.matches.Count(ctx, "u1"); c != 0 {
		t.Errorf("Count after clear = %d, want 0", c)
	}
	if n, err := f.matches.Clear(ctx, "u1"); err != nil || n != 0 {
		t.Errorf("second Clear = %d, %v; want 0, nil", n, err)
	}
}

func TestExportCSV(t *testing.T) {
	f := newFixture(t, season1.Add(24*time.Hour))
	ctx := context.Background()

	var buf bytes.Buffer
	if _, err := f.export.CSV(ctx, "u1", &buf); !errors.Is(err, domain.ErrNoMatches) {
		t.Fatalf("empty export err = %v, want ErrNoMatches", err)
	}

	f.mustRecord(t, "u1", fields("Win", "Ana", "Lucio"))
	f.mustRecord(t, "u1", fields("Loss", "Mercy"))

	buf.Reset()
	n, err := f.export.CSV(ctx, "u1", &buf)
	if err != nil || n != 2 {
		t.Fatalf("CSV = %d, %v; want 2", n, err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "owner_id" || rows[0][7] != "recorded_at" {
		t.Errorf("header = %v", rows[0])
	}
	first := rows[1]
	if first[1] != "Ana, Lucio" || first[3] != "Control" || first[5] != "Gold 3" || first[6] != "Win" {
		t.Errorf("first row = %v", first)
	}
	if rows[2][1] != "Mercy" {
		t.Errorf("rows not oldest first: %v", rows)
	}
}
