// Package wizard implements match recording as an explicit state machine.
//
// A State carries only the answers collected so far. Advance takes a State and
// the requester's selection and returns an Outcome: the next State, a complete
// MatchDraft, or a rejection naming the invalid field. Advance never mutates
// its input, so a rejected selection leaves the caller's State usable.
package wizard

import (
	"errors"
	"strconv"
	"strings"

	"overwatch-tracker/internal/catalog"
	"overwatch-tracker/internal/domain"
)

type Step int

const (
	StepRole Step = iota
	StepHeroes
	StepGamemode
	StepMap
	StepResult
	StepRankTier
	StepModifier
	// StepRankText replaces StepRankTier and StepModifier when rank is typed
	// as a follow-up message.
	StepRankText
)

func (s Step) String() string {
	switch s {
	case StepRole:
		return "role"
	case StepHeroes:
		return "heroes"
	case StepGamemode:
		return "gamemode"
	case StepMap:
		return "map"
	case StepResult:
		return "result"
	case StepRankTier:
		return "rank tier"
	case StepModifier:
		return "modifier"
	case StepRankText:
		return "rank"
	}
	return "step(" + strconv.Itoa(int(s)) + ")"
}

func (s Step) valid() bool { return s >= StepRole && s <= StepRankText }

type RankMode int

const (
	RankSelect RankMode = iota
	RankText
)

type State struct {
	Step     Step
	Mode     RankMode
	Role     string
	Heroes   []string
	Gamemode string
	Map      string
	Result   domain.Result
	RankTier string
}

func Start(mode RankMode) State {
	return State{Step: StepRole, Mode: mode}
}

func (s State) clone() State {
	s.Heroes = append([]string(nil), s.Heroes...)
	return s
}

type Kind int

const (
	Next Kind = iota
	Complete
	Rejected
)

type Outcome struct {
	Kind  Kind
	State State
	Draft domain.MatchDraft
	Err   *domain.ValidationError
}

func next(s State) Outcome { return Outcome{Kind: Next, State: s} }

func reject(s State, err *domain.ValidationError) Outcome {
	return Outcome{Kind: Rejected, State: s, Err: err}
}

// Advance applies selection to the current step of s.
func Advance(cat *catalog.Catalog, s State, selection []string) Outcome {
	if s.Step != StepHeroes && len(selection) != 1 {
		return reject(s, domain.Invalid(s.Step.String(), joinSel(selection), "choose exactly one"))
	}

	n := s.clone()
	switch s.Step {
	case StepRole:
		role, ok := cat.Role(selection[0])
		if !ok {
			return reject(s, domain.Invalid("role", selection[0], "unknown role"))
		}
		n.Role = role
		n.Step = StepHeroes
		return next(n)

	case StepHeroes:
		heroes, err := resolveHeroes(cat, s.Role, selection)
		if err != nil {
			return reject(s, err)
		}
		n.Heroes = heroes
		n.Step = StepGamemode
		return next(n)

	case StepGamemode:
		gm, ok := cat.Gamemode(selection[0])
		if !ok {
			return reject(s, domain.Invalid("gamemode", selection[0], "unknown gamemode"))
		}
		n.Gamemode = gm
		n.Step = StepMap
		return next(n)

	case StepMap:
		m, ok := cat.MapInGamemode(s.Gamemode, selection[0])
		if !ok {
			return reject(s, domain.Invalid("map", selection[0], "not a "+s.Gamemode+" map"))
		}
		n.Map = m
		n.Step = StepResult
		return next(n)

	case StepResult:
		r, ok := cat.ParseResult(selection[0])
		if !ok {
			return reject(s, domain.Invalid("result", selection[0], "must be Win or Loss"))
		}
		n.Result = r
		if s.Mode == RankText {
			n.Step = StepRankText
		} else {
			n.Step = StepRankTier
		}
		return next(n)

	case StepRankTier:
		tier, ok := cat.RankTier(selection[0])
		if !ok {
			return reject(s, domain.Invalid("rank tier", selection[0], "unknown rank tier"))
		}
		n.RankTier = tier
		n.Step = StepModifier
		return next(n)

	case StepModifier:
		mod, err := cat.ParseModifier(selection[0])
		if err != nil {
			return reject(s, asValidation(err))
		}
		return complete(n, domain.Rank{Tier: s.RankTier, Modifier: mod})

	case StepRankText:
		rank, err := cat.ParseRank(selection[0])
		if err != nil {
			return reject(s, asValidation(err))
		}
		return complete(n, rank)
	}

	return reject(s, domain.Invalid("step", s.Step.String(), "unknown step"))
}

func complete(s State, rank domain.Rank) Outcome {
	return Outcome{
		Kind:  Complete,
		State: s,
		Draft: domain.MatchDraft{
			Heroes:   s.Heroes,
			Role:     s.Role,
			Gamemode: s.Gamemode,
			Map:      s.Map,
			Rank:     rank,
			Result:   s.Result,
		},
	}
}

func resolveHeroes(cat *catalog.Catalog, role string, selection []string) ([]string, *domain.ValidationError) {
	pool := cat.Heroes(role)
	if len(selection) == 0 {
		return nil, domain.Invalid("heroes", "", "choose at least one hero")
	}
	if len(selection) > len(pool) {
		return nil, domain.Invalid("heroes", joinSel(selection), "too many heroes")
	}

	out := make([]string, 0, len(selection))
	seen := make(map[string]struct{}, len(selection))
	for _, sel := range selection {
		hero, ok := cat.HeroInRole(role, sel)
		if !ok {
			return nil, domain.Invalid("hero", sel, "not a "+role+" hero")
		}
		if _, dup := seen[hero]; dup {
			return nil, domain.Invalid("hero", sel, "selected twice")
		}
		seen[hero] = struct{}{}
		out = append(out, hero)
	}
	return out, nil
}

// Options lists the allowed selections for the current step of s.
func Options(cat *catalog.Catalog, s State) []string {
	switch s.Step {
	case StepRole:
		return cat.Roles()
	case StepHeroes:
		return cat.Heroes(s.Role)
	case StepGamemode:
		return cat.Gamemodes()
	case StepMap:
		return cat.Maps(s.Gamemode)
	case StepResult:
		var out []string
		for _, r := range cat.Results() {
			out = append(out, string(r))
		}
		return out
	case StepRankTier:
		return cat.RankTiers()
	case StepModifier:
		var out []string
		for _, m := range cat.Modifiers() {
			out = append(out, strconv.Itoa(m))
		}
		return out
	}
	return nil
}

// MaxSelections is how many values a prompt for s may accept.
func MaxSelections(cat *catalog.Catalog, s State) int {
	if s.Step == StepHeroes {
		return len(cat.Heroes(s.Role))
	}
	return 1
}

func asValidation(err error) *domain.ValidationError {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return domain.Invalid("selection", "", err.Error())
}

func joinSel(sel []string) string { return strings.Join(sel, ", ") }
