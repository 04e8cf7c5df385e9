package wizard

import (
	"reflect"
	"strings"
	"testing"

	"overwatch-tracker/internal/catalog"
	"overwatch-tracker/internal/domain"
)

func walk(t *testing.T, cat *catalog.Catalog, s State, selections ...[]string) Outcome {
	t.Helper()
	var out Outcome
	for i, sel := range selections {
		out = Advance(cat, s, sel)
		if out.Kind == Rejected {
			t.Fatalf("step %d (%s) rejected %v: %v", i, s.Step, sel, out.Err)
		}
		s = out.State
	}
	return out
}

func TestFullWalkCompletes(t *testing.T) {
	cat := catalog.Default()
	out := walk(t, cat, Start(RankSelect),
		[]string{"Support"},
		[]string{"Lucio", "Ana"},
		[]string{"Control"},
		[]string{"Busan"},
		[]string{"Loss"},
		[]string{"Gold"},
		[]string{"3"},
	)
	if out.Kind != Complete {
		t.Fatalf("kind = %v, want Complete", out.Kind)
	}
	want := domain.MatchDraft{
		Heroes:   []string{"Lucio", "Ana"},
		Role:     "Support",
		Gamemode: "Control",
		Map:      "Busan",
		Rank:     domain.Rank{Tier: "Gold", Modifier: 3},
		Result:   domain.Loss,
	}
	if !reflect.DeepEqual(out.Draft, want) {
		t.Errorf("draft = %+v, want %+v", out.Draft, want)
	}
}

func TestStepOrder(t *testing.T) {
	cat := catalog.Default()
	s := Start(RankSelect)
	wantSteps := []Step{StepHeroes, StepGamemode, StepMap, StepResult, StepRankTier, StepModifier}
	sels := [][]string{{"Tank"}, {"Sigma"}, {"Push"}, {"Colosseo"}, {"Win"}, {"Diamond"}}
	for i, sel := range sels {
		out := Advance(cat, s, sel)
		if out.Kind != Next || out.State.Step != wantSteps[i] {
			t.Fatalf("after %v: kind=%v step=%v, want Next %v", sel, out.Kind, out.State.Step, wantSteps[i])
		}
		s = out.State
	}
}

func TestHeroOutsideRoleRejected(t *testing.T) {
	cat := catalog.Default()
	for _, role := range cat.Roles() {
		s := Advance(cat, Start(RankSelect), []string{role}).State
		for _, other := range cat.Roles() {
			if other == role {
				continue
			}
			for _, hero := range cat.Heroes(other) {
				out := Advance(cat, s, []string{hero})
				if out.Kind != Rejected {
					t.Errorf("role %s accepted %s hero %q", role, other, hero)
					continue
				}
				if out.Err.Field != "hero" {
					t.Errorf("field = %q, want hero", out.Err.Field)
				}
				if out.State.Step != StepHeroes {
					t.Errorf("rejected selection advanced to %v", out.State.Step)
				}
			}
		}
	}
}

func TestMapOutsideGamemodeRejected(t *testing.T) {
	cat := catalog.Default()
	s := walk(t, cat, Start(RankSelect), []string{"DPS"}, []string{"Tracer"}, []string{"Escort"}).State
	out := Advance(cat, s, []string{"Busan"})
	if out.Kind != Rejected || out.Err.Field != "map" {
		t.Fatalf("expected map rejection, got %+v", out)
	}
	for _, m := range cat.Maps("Escort") {
		if got := Advance(cat, s, []string{m}); got.Kind != Next || got.State.Map != m {
			t.Errorf("map %q rejected for Escort", m)
		}
	}
}

func TestHeroSelectionRules(t *testing.T) {
	cat := catalog.Default()
	s := Advance(cat, Start(RankSelect), []string{"Support"}).State

	tests := []struct {
		name string
		sel  []string
		ok   bool
	}{
		{"none", nil, false},
		{"duplicate", []string{"Ana", "ana"}, false},
		{"one", []string{"Kiriko"}, true},
		{"all", cat.Heroes("Support"), true},
		{"too many", append(cat.Heroes("Support"), "Ana"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Advance(cat, s, tt.sel)
			if (out.Kind == Next) != tt.ok {
				t.Errorf("Advance(%v) kind = %v, want ok=%v", tt.sel, out.Kind, tt.ok)
			}
		})
	}
}

func TestHeroOrderPreserved(t *testing.T) {
	cat := catalog.Default()
	s := Advance(cat, Start(RankSelect), []string{"Support"}).State
	out := Advance(cat, s, []string{"zenyatta", "Ana", "Mercy"})
	want := []string{"Zenyatta", "Ana", "Mercy"}
	if !reflect.DeepEqual(out.State.Heroes, want) {
		t.Errorf("heroes = %v, want %v", out.State.Heroes, want)
	}
}

func TestSingleChoiceStepsRequireExactlyOne(t *testing.T) {
	cat := catalog.Default()
	out := Advance(cat, Start(RankSelect), []string{"Tank", "DPS"})
	if out.Kind != Rejected || out.Err.Field != "role" {
		t.Errorf("expected role rejection, got %+v", out)
	}
	out = Advance(cat, Start(RankSelect), nil)
	if out.Kind != Rejected {
		t.Error("expected rejection for empty role selection")
	}
}

func TestModifierBounds(t *testing.T) {
	cat := catalog.Default()
	s := walk(t, cat, Start(RankSelect),
		[]string{"Tank"}, []string{"Zarya"}, []string{"Hybrid"}, []string{"Midtown"},
		[]string{"Win"}, []string{"Master"},
	).State

	for _, bad := range []string{"0", "6"} {
		out := Advance(cat, s, []string{bad})
		if out.Kind != Rejected || out.Err.Field != "modifier" {
			t.Errorf("modifier %s: got %+v, want modifier rejection", bad, out)
		}
	}
	if out := Advance(cat, s, []string{"5"}); out.Kind != Complete {
		t.Errorf("modifier 5 not accepted: %+v", out)
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	cat := catalog.Default()
	s := walk(t, cat, Start(RankSelect), []string{"Support"}, []string{"Ana"}).State
	before := s.Encode(cat)
	heroesBefore := append([]string(nil), s.Heroes...)

	out := Advance(cat, s, []string{"Push"})
	out.State.Heroes[0] = "Mutated"

	if s.Encode(cat) != before || !reflect.DeepEqual(s.Heroes, heroesBefore) {
		t.Error("Advance mutated its input state")
	}
}

func TestTextRankMode(t *testing.T) {
	cat := catalog.Default()
	s := walk(t, cat, Start(RankText),
		[]string{"DPS"}, []string{"Echo"}, []string{"Flashpoint"}, []string{"Suravasa"}, []string{"Win"},
	).State
	if s.Step != StepRankText {
		t.Fatalf("step = %v, want rank text", s.Step)
	}
	if Options(cat, s) != nil {
		t.Error("free-text step should have no options")
	}

	if out := Advance(cat, s, []string{"Dirt 1"}); out.Kind != Rejected {
		t.Error("invalid free-text rank accepted")
	}
	out := Advance(cat, s, []string{"platinum 2"})
	if out.Kind != Complete {
		t.Fatalf("kind = %v, want Complete (err %v)", out.Kind, out.Err)
	}
	if out.Draft.Rank != (domain.Rank{Tier: "Platinum", Modifier: 2}) {
		t.Errorf("rank = %+v", out.Draft.Rank)
	}
}

func TestOptionsFollowContext(t *testing.T) {
	cat := catalog.Default()
	s := Advance(cat, Start(RankSelect), []string{"Tank"}).State
	if got := Options(cat, s); !reflect.DeepEqual(got, cat.Heroes("Tank")) {
		t.Errorf("Options(heroes) = %v", got)
	}
	if MaxSelections(cat, s) != len(cat.Heroes("Tank")) {
		t.Errorf("MaxSelections = %d", MaxSelections(cat, s))
	}
	if got := Options(cat, Start(RankSelect)); strings.Join(got, ",") != "Tank,DPS,Support" {
		t.Errorf("Options(role) = %v", got)
	}
}
