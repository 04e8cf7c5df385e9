package wizard

import (
	"errors"
	"strconv"
	"strings"

	"overwatch-tracker/internal/catalog"
)

var ErrBadState = errors.New("wizard: malformed state")

const (
	fieldSep = "."
	listSep  = "-"
	numParts = 8
)

// Encode packs s into a short string of catalog indexes suitable for a
// Discord component custom id.
func (s State) Encode(cat *catalog.Catalog) string {
	heroes := make([]string, 0, len(s.Heroes))
	for _, h := range s.Heroes {
		heroes = append(heroes, b36(cat.HeroIndex(s.Role, h)))
	}

	resultIdx := -1
	for i, r := range cat.Results() {
		if r == s.Result {
			resultIdx = i
		}
	}

	parts := []string{
		b36(int(s.Step)),
		b36(int(s.Mode)),
		b36(cat.RoleIndex(s.Role)),
		strings.Join(heroes, listSep),
		b36(cat.GamemodeIndex(s.Gamemode)),
		b36(cat.MapIndex(s.Gamemode, s.Map)),
		b36(resultIdx),
		b36(cat.RankTierIndex(s.RankTier)),
	}
	return strings.Join(parts, fieldSep)
}

// Decode reverses Encode. The answers are replayed through Advance, so a
// decoded State satisfies the same invariants as one built step by step.
func Decode(cat *catalog.Catalog, text string) (State, error) {
	parts := strings.Split(text, fieldSep)
	if len(parts) != numParts {
		return State{}, ErrBadState
	}

	stepN, err := unb36(parts[0])
	if err != nil || !Step(stepN).valid() {
		return State{}, ErrBadState
	}
	modeN, err := unb36(parts[1])
	if err != nil || (RankMode(modeN) != RankSelect && RankMode(modeN) != RankText) {
		return State{}, ErrBadState
	}
	target := Step(stepN)

	role := at(parts[2], cat.RoleAt)
	var heroes []string
	if parts[3] != "" {
		for _, p := range strings.Split(parts[3], listSep) {
			heroes = append(heroes, at(p, func(i int) (string, bool) { return cat.HeroAt(role, i) }))
		}
	}
	gamemode := at(parts[4], cat.GamemodeAt)
	mapName := at(parts[5], func(i int) (string, bool) { return cat.MapAt(gamemode, i) })
	result := at(parts[6], func(i int) (string, bool) {
		results := cat.Results()
		if i < 0 || i >= len(results) {
			return "", false
		}
		return string(results[i]), true
	})
	tier := at(parts[7], cat.RankTierAt)

	answers := map[Step][]string{
		StepRole:     {role},
		StepHeroes:   heroes,
		StepGamemode: {gamemode},
		StepMap:      {mapName},
		StepResult:   {result},
		StepRankTier: {tier},
	}

	s := Start(RankMode(modeN))
	for s.Step != target {
		ans, ok := answers[s.Step]
		if !ok {
			return State{}, ErrBadState
		}
		out := Advance(cat, s, ans)
		if out.Kind != Next {
			return State{}, ErrBadState
		}
		s = out.State
	}
	return s, nil
}

func b36(i int) string {
	if i < 0 {
		return ""
	}
	return strconv.FormatInt(int64(i), 36)
}

func unb36(s string) (int, error) {
	n, err := strconv.ParseInt(s, 36, 32)
	return int(n), err
}

func at(s string, lookup func(int) (string, bool)) string {
	if s == "" {
		return ""
	}
	i, err := unb36(s)
	if err != nil {
		return ""
	}
	v, _ := lookup(i)
	return v
}
