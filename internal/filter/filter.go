// Package filter parses and holds grep include/exclude glob patterns.
//
// Filters are a user preference, not session state: they outlive any single
// picker session and apply to every grep until replaced or cleared.
package filter

import (
	"sort"
	"strings"
	"sync"
)

// Set is one parsed collection of include and exclude globs.
type Set struct {
	Include []string
	Exclude []string
}

// Parse splits a raw filter line into a Set. Tokens prefixed "+" are
// includes, "-" are excludes, and bare tokens default to includes. The
// second return is false when raw contains no tokens, which callers treat
// as "keep the previous filters".
//
// Glob syntax is not validated; a malformed pattern simply matches nothing
// downstream.
func Parse(raw string) (Set, bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Set{}, false
	}

	var set Set
	for _, tok := range fields {
		switch {
		case strings.HasPrefix(tok, "+"):
			if pat := tok[1:]; pat != "" {
				set.Include = append(set.Include, pat)
			}
		case strings.HasPrefix(tok, "-"):
			if pat := tok[1:]; pat != "" {
				set.Exclude = append(set.Exclude, pat)
			}
		default:
			set.Include = append(set.Include, tok)
		}
	}
	return set, true
}

// Empty reports whether the set holds no patterns.
func (s Set) Empty() bool {
	return len(s.Include) == 0 && len(s.Exclude) == 0
}

// Args renders the set as ripgrep glob arguments: one "--glob PATTERN"
// pair per include, then one negated pair per exclude.
func (s Set) Args() []string {
	args := make([]string, 0, 2*(len(s.Include)+len(s.Exclude)))
	for _, pat := range s.Include {
		args = append(args, "--glob", pat)
	}
	for _, pat := range s.Exclude {
		args = append(args, "--glob", "!"+pat)
	}
	return args
}

// String renders the set in the same syntax Parse accepts.
func (s Set) String() string {
	parts := make([]string, 0, len(s.Include)+len(s.Exclude))
	for _, pat := range s.Include {
		parts = append(parts, "+"+pat)
	}
	for _, pat := range s.Exclude {
		parts = append(parts, "-"+pat)
	}
	return strings.Join(parts, " ")
}

// sortedCopy returns a sorted copy of patterns for order-insensitive
// comparison.
func sortedCopy(patterns []string) []string {
	out := make([]string, len(patterns))
	copy(out, patterns)
	sort.Strings(out)
	return out
}

// Equal reports whether two sets hold the same patterns, ignoring order.
func (s Set) Equal(other Set) bool {
	if len(s.Include) != len(other.Include) || len(s.Exclude) != len(other.Exclude) {
		return false
	}
	a, b := sortedCopy(s.Include), sortedCopy(other.Include)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	a, b = sortedCopy(s.Exclude), sortedCopy(other.Exclude)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Store holds the process-wide active filter set.
// It is safe for concurrent use.
type Store struct {
	mu  sync.RWMutex
	set Set
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Apply parses raw and replaces the active set with the result. Empty
// input keeps the previous set and reports false.
func (st *Store) Apply(raw string) bool {
	set, ok := Parse(raw)
	if !ok {
		return false
	}

	st.mu.Lock()
	st.set = set
	st.mu.Unlock()
	return true
}

// Set replaces the active set directly.
func (st *Store) Set(set Set) {
	st.mu.Lock()
	st.set = set
	st.mu.Unlock()
}

// Clear empties the active set.
func (st *Store) Clear() {
	st.mu.Lock()
	st.set = Set{}
	st.mu.Unlock()
}

// Active returns the current set.
func (st *Store) Active() Set {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := Set{
		Include: make([]string, len(st.set.Include)),
		Exclude: make([]string, len(st.set.Exclude)),
	}
	copy(out.Include, st.set.Include)
	copy(out.Exclude, st.set.Exclude)
	return out
}
