// Package analytics derives season windows and summaries from stored matches.
// Everything here is a pure function of its arguments.
package analytics

import (
	"math"
	"sort"
	"time"

	"overwatch-tracker/internal/constants"
	"overwatch-tracker/internal/domain"
)

// SeasonAt returns the season containing now. Seasons are contiguous windows
// of length duration starting at epoch; instants before epoch belong to
// season 1.
func SeasonAt(now, epoch time.Time, duration time.Duration) domain.SeasonWindow {
	elapsed := now.Sub(epoch)
	n := 1
	if elapsed > 0 {
		n = int(elapsed/duration) + 1
	}
	start := epoch.Add(time.Duration(n-1) * duration).UTC()
	return domain.SeasonWindow{
		Number: n,
		Start:  start,
		End:    start.Add(duration),
	}
}

// Number assigns display ranks to matches ordered most-recent-first so the
// oldest shown match is 1.
func Number(desc []domain.MatchRecord) []domain.NumberedMatch {
	out := make([]domain.NumberedMatch, len(desc))
	total := len(desc)
	for i, m := range desc {
		out[i] = domain.NumberedMatch{Number: total - i, Match: m}
	}
	return out
}

// LosingStreak counts consecutive losses from the most recent match.
func LosingStreak(desc []domain.MatchRecord) int {
	streak := 0
	for _, m := range desc {
		if m.Result != domain.Loss {
			break
		}
		streak++
	}
	return streak
}

func StreakAdvisory(streak int) bool {
	return streak >= constants.LosingStreakThreshold
}

// TopHeroes counts hero occurrences across matches and returns the k most
// played. Equal counts keep the order in which heroes were first seen.
func TopHeroes(matches []domain.MatchRecord, k int) []domain.HeroUsage {
	counts := make(map[string]int)
	var order []string
	total := 0
	for _, m := range matches {
		for _, h := range m.Heroes {
			if _, seen := counts[h]; !seen {
				order = append(order, h)
			}
			counts[h]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if k > 0 && len(order) > k {
		order = order[:k]
	}

	out := make([]domain.HeroUsage, len(order))
	for i, h := range order {
		out[i] = domain.HeroUsage{
			Hero:       h,
			Count:      counts[h],
			Percentage: round1(float64(counts[h]) / float64(total) * 100),
		}
	}
	return out
}

// WinRate is the share of wins in percent, rounded to one decimal.
func WinRate(matches []domain.MatchRecord) float64 {
	if len(matches) == 0 {
		return 0
	}
	wins := 0
	for _, m := range matches {
		if m.Result == domain.Win {
			wins++
		}
	}
	return round1(float64(wins) / float64(len(matches)) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
