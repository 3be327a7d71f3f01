package key

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		chord string
		want  Event
	}{
		{"o", Event{Code: CodeRune, Rune: 'o'}},
		{"C-o", Event{Code: CodeRune, Rune: 'o', Mods: ModCtrl}},
		{"A-x", Event{Code: CodeRune, Rune: 'x', Mods: ModAlt}},
		{"C-A-f", Event{Code: CodeRune, Rune: 'f', Mods: ModCtrl | ModAlt}},
		{"enter", Event{Code: CodeEnter}},
		{"Esc", Event{Code: CodeEscape}},
		{"C-up", Event{Code: CodeUp, Mods: ModCtrl}},
		{"-", Event{Code: CodeRune, Rune: '-'}},
	}

	for _, tt := range tests {
		t.Run(tt.chord, func(t *testing.T) {
			got, err := Parse(tt.chord)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.chord, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.chord, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, chord := range []string{"", "abc", "C-"} {
		if _, err := Parse(chord); err == nil {
			t.Errorf("Parse(%q): expected error", chord)
		}
	}
}

func TestChordRoundTrip(t *testing.T) {
	for _, chord := range []string{"o", "C-o", "A-x", "enter", "backspace", "C-down"} {
		ev, err := Parse(chord)
		if err != nil {
			t.Fatalf("Parse(%q): %v", chord, err)
		}
		again, err := Parse(ev.Chord())
		if err != nil {
			t.Fatalf("Parse(Chord(%q)): %v", chord, err)
		}
		if again != ev {
			t.Errorf("round trip changed %q: %+v vs %+v", chord, ev, again)
		}
	}
}

func TestIsText(t *testing.T) {
	if !(Event{Code: CodeRune, Rune: 'a'}).IsText() {
		t.Error("plain rune should be text")
	}
	if (Event{Code: CodeRune, Rune: 'a', Mods: ModCtrl}).IsText() {
		t.Error("ctrl chord is not text")
	}
	if (Event{Code: CodeEnter}).IsText() {
		t.Error("enter is not text")
	}
}
