package domain

import (
	"fmt"
	"strings"
	"time"

	"overwatch-tracker/internal/constants"
)

type Result string

const (
	Win  Result = "Win"
	Loss Result = "Loss"
)

type Rank struct {
	Tier     string
	Modifier int
}

func (r Rank) String() string {
	return fmt.Sprintf("%s %d", r.Tier, r.Modifier)
}

// MatchDraft is a validated match that has not been persisted yet.
type MatchDraft struct {
	Heroes   []string
	Role     string
	Gamemode string // empty when not tracked
	Map      string
	Rank     Rank
	Result   Result
}

type MatchRecord struct {
	RowID      int64
	Ref        string
	OwnerID    string
	Heroes     []string
	Role       string
	Gamemode   string
	Map        string
	Rank       Rank
	Result     Result
	RecordedAt time.Time
}

func (m MatchRecord) HeroList() string {
	return strings.Join(m.Heroes, constants.HeroSeparator)
}

// NumberedMatch pairs a match with its display rank in a season listing.
type NumberedMatch struct {
	Number int
	Match  MatchRecord
}

type SeasonWindow struct {
	Number int
	Start  time.Time
	End    time.Time
}

type HeroUsage struct {
	Hero       string
	Count      int
	Percentage float64
}
