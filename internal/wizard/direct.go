package wizard

import (
	"strings"

	"overwatch-tracker/internal/catalog"
	"overwatch-tracker/internal/domain"
)

// Fields are the arguments of a single direct record invocation.
type Fields struct {
	Role     string
	Heroes   []string
	Gamemode string // optional; inferred from Map when empty
	Map      string
	RankTier string
	Modifier string
	Result   string
}

// SplitHeroes splits a comma separated hero argument.
func SplitHeroes(arg string) []string {
	var out []string
	for _, h := range strings.Split(arg, ",") {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

// Direct validates f with the same rules as the step chain.
func Direct(cat *catalog.Catalog, f Fields) (domain.MatchDraft, error) {
	gamemode := f.Gamemode
	if strings.TrimSpace(gamemode) == "" {
		gm, _, ok := cat.GamemodeForMap(f.Map)
		if !ok {
			return domain.MatchDraft{}, domain.Invalid("map", f.Map, "unknown map")
		}
		gamemode = gm
	}

	steps := [][]string{
		{f.Role},
		f.Heroes,
		{gamemode},
		{f.Map},
		{f.Result},
		{f.RankTier},
		{f.Modifier},
	}

	s := Start(RankSelect)
	for _, sel := range steps {
		out := Advance(cat, s, sel)
		switch out.Kind {
		case Rejected:
			return domain.MatchDraft{}, out.Err
		case Complete:
			return out.Draft, nil
		}
		s = out.State
	}
	return domain.MatchDraft{}, ErrBadState
}
