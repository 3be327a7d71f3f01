// Package key defines the key events a picker prompt consumes.
package key

import (
	"fmt"
	"strings"
)

// Code identifies a non-printable key.
type Code int

const (
	// CodeRune is a printable character; Event.Rune holds it.
	CodeRune Code = iota

	// CodeEnter is the return key.
	CodeEnter

	// CodeEscape is the escape key.
	CodeEscape

	// CodeBackspace deletes the rune before the cursor.
	CodeBackspace

	// CodeTab is the tab key.
	CodeTab

	// CodeUp moves the selection up.
	CodeUp

	// CodeDown moves the selection down.
	CodeDown
)

// Mod is a bit set of held modifiers.
type Mod int

const (
	// ModCtrl is the control modifier.
	ModCtrl Mod = 1 << iota

	// ModAlt is the alt/meta modifier.
	ModAlt
)

// Event is one keypress.
type Event struct {
	Code Code
	Rune rune
	Mods Mod
}

// Chord renders the event in the chord syntax Parse accepts, e.g. "C-o",
// "enter", "a".
func (e Event) Chord() string {
	var b strings.Builder
	if e.Mods&ModCtrl != 0 {
		b.WriteString("C-")
	}
	if e.Mods&ModAlt != 0 {
		b.WriteString("A-")
	}

	switch e.Code {
	case CodeRune:
		b.WriteRune(e.Rune)
	case CodeEnter:
		b.WriteString("enter")
	case CodeEscape:
		b.WriteString("esc")
	case CodeBackspace:
		b.WriteString("backspace")
	case CodeTab:
		b.WriteString("tab")
	case CodeUp:
		b.WriteString("up")
	case CodeDown:
		b.WriteString("down")
	}
	return b.String()
}

// IsText reports whether the event should be inserted into the query.
func (e Event) IsText() bool {
	return e.Code == CodeRune && e.Mods == 0 && e.Rune != 0
}

// namedCodes maps chord names to key codes.
var namedCodes = map[string]Code{
	"enter":     CodeEnter,
	"esc":       CodeEscape,
	"backspace": CodeBackspace,
	"tab":       CodeTab,
	"up":        CodeUp,
	"down":      CodeDown,
}

// Parse converts a chord string into an Event. Accepted forms: a single
// rune ("o"), a named key ("enter"), and either with "C-" / "A-" modifier
// prefixes ("C-o", "A-enter").
func Parse(chord string) (Event, error) {
	rest := chord
	var mods Mod

	for {
		switch {
		case strings.HasPrefix(rest, "C-") && len(rest) > 2:
			mods |= ModCtrl
			rest = rest[2:]
			continue
		case strings.HasPrefix(rest, "A-") && len(rest) > 2:
			mods |= ModAlt
			rest = rest[2:]
			continue
		}
		break
	}

	if code, ok := namedCodes[strings.ToLower(rest)]; ok {
		return Event{Code: code, Mods: mods}, nil
	}

	runes := []rune(rest)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("invalid chord: %q", chord)
	}
	return Event{Code: CodeRune, Rune: runes[0], Mods: mods}, nil
}
