package wizard

import (
	"reflect"
	"testing"

	"overwatch-tracker/internal/catalog"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cat := catalog.Default()

	states := []State{Start(RankSelect), Start(RankText)}
	s := Start(RankSelect)
	for _, sel := range [][]string{
		{"DPS"},
		{"Widowmaker", "Ashe", "Cassidy", "Sojourn", "Hanzo", "Genji", "Echo", "Tracer",
			"Sombra", "Venture", "Mei", "Junkrat", "Bastion", "Freja", "Pharah", "Reaper",
			"Soldier: 76", "Symmetra", "Torbjörn"},
		{"Hybrid"},
		{"Paraíso"},
		{"Loss"},
		{"Champion"},
	} {
		s = Advance(cat, s, sel).State
		states = append(states, s)
	}

	for _, st := range states {
		enc := st.Encode(cat)
		if len("wizard:"+enc) > 100 {
			t.Errorf("encoded state too long for a custom id (%d): %s", len(enc), enc)
		}
		got, err := Decode(cat, enc)
		if err != nil {
			t.Fatalf("Decode(%q): %v", enc, err)
		}
		if !reflect.DeepEqual(normalize(got), normalize(st)) {
			t.Errorf("round trip mismatch at %v:\n got %+v\nwant %+v", st.Step, got, st)
		}
	}
}

func TestDecodeRejectsInconsistentState(t *testing.T) {
	cat := catalog.Default()
	tests := []struct {
		name string
		in   string
	}{
		{"garbage", "zzz"},
		{"too few fields", "1.0.0"},
		{"bad step", "z.0.0.0...."},
		{"bad mode", "1.7.0....."},
		{"map step without heroes", "3.0.0..0..."},
		{"hero index out of range", "2.0.0.v...."},
		{"rank text step in select mode", "7.0.0.0.0.0.0."},
		{"rank tier step in text mode", "5.1.0.0.0.0.0."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(cat, tt.in); err == nil {
				t.Errorf("Decode(%q) succeeded, want error", tt.in)
			}
		})
	}
}

// normalize treats nil and empty hero lists alike.
func normalize(s State) State {
	if len(s.Heroes) == 0 {
		s.Heroes = nil
	}
	return s
}
