// Package keymap maps prompt keypresses to picker actions.
//
// Actions are dotted names ("scope.ascend", "list.select") resolved by the
// session controller. Bindings are grouped per picker kind so the grep
// prompt can carry filter keys the file prompt does not.
package keymap

import (
	"fmt"
	"sync"

	"github.com/dshills/scout/internal/input/key"
)

// Action names understood by the session controller.
const (
	ActionAscend      = "scope.ascend"
	ActionDescend     = "scope.descend"
	ActionAddFilter   = "filter.add"
	ActionClearFilter = "filter.clear"
	ActionSelect      = "list.select"
	ActionMoveUp      = "list.up"
	ActionMoveDown    = "list.down"
	ActionClose       = "session.close"
)

// Binding is one chord-to-action mapping.
type Binding struct {
	// Chord is the key chord in key.Parse syntax.
	Chord string

	// Action is the dotted action name.
	Action string
}

// Keymap holds bindings per picker kind. It is safe for concurrent use.
type Keymap struct {
	mu       sync.RWMutex
	bindings map[string]map[string]string // kind -> chord -> action
}

// New creates an empty Keymap.
func New() *Keymap {
	return &Keymap{
		bindings: make(map[string]map[string]string),
	}
}

// Default returns a Keymap carrying the stock picker bindings for the
// given kinds.
func Default(kinds ...string) *Keymap {
	km := New()
	for _, kind := range kinds {
		for _, b := range defaultBindings {
			// Bind only fails on malformed chords; defaults are known good.
			_ = km.Bind(kind, b.Chord, b.Action)
		}
	}
	return km
}

// defaultBindings are shared by every picker kind.
var defaultBindings = []Binding{
	// C-i is unusable as a descend chord: terminals deliver it as Tab.
	{Chord: "C-o", Action: ActionAscend},
	{Chord: "C-d", Action: ActionDescend},
	{Chord: "C-f", Action: ActionAddFilter},
	{Chord: "C-x", Action: ActionClearFilter},
	{Chord: "enter", Action: ActionSelect},
	{Chord: "esc", Action: ActionClose},
	{Chord: "up", Action: ActionMoveUp},
	{Chord: "down", Action: ActionMoveDown},
	{Chord: "C-p", Action: ActionMoveUp},
	{Chord: "C-n", Action: ActionMoveDown},
}

// Bind maps chord to action for the given kind, replacing any previous
// binding of the chord.
func (km *Keymap) Bind(kind, chord, action string) error {
	ev, err := key.Parse(chord)
	if err != nil {
		return fmt.Errorf("bind %s: %w", action, err)
	}

	km.mu.Lock()
	defer km.mu.Unlock()

	if km.bindings[kind] == nil {
		km.bindings[kind] = make(map[string]string)
	}
	// Store under the canonical chord so lookup by event works for any
	// accepted spelling.
	km.bindings[kind][ev.Chord()] = action
	return nil
}

// Lookup resolves an event to an action for the given kind.
func (km *Keymap) Lookup(kind string, ev key.Event) (string, bool) {
	km.mu.RLock()
	defer km.mu.RUnlock()

	action, ok := km.bindings[kind][ev.Chord()]
	return action, ok
}

// Bindings returns the bindings of a kind as a chord-to-action map copy.
func (km *Keymap) Bindings(kind string) map[string]string {
	km.mu.RLock()
	defer km.mu.RUnlock()

	out := make(map[string]string, len(km.bindings[kind]))
	for chord, action := range km.bindings[kind] {
		out[chord] = action
	}
	return out
}
