// Package state persists the pieces of scout that outlive a run: the
// active grep filter set and recently accepted queries.
//
// State lives in a single JSON file under the XDG state directory.
// Persistence is best effort; a missing or unreadable file yields empty
// state and a failed save is reported but never fatal.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/scout/internal/filter"
)

// maxRecentQueries bounds the persisted query history.
const maxRecentQueries = 50

// State is the persisted data.
type State struct {
	// Filters is the saved grep filter set.
	Filters filter.Set

	// RecentQueries holds accepted queries, most recent first.
	RecentQueries []string
}

// Store reads and writes a state file.
type Store struct {
	path string
}

// NewStore creates a Store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the conventional state file location, honoring
// XDG_STATE_HOME.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "scout", "state.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "state.json"
	}
	return filepath.Join(home, ".local", "state", "scout", "state.json")
}

// Load reads the state file. A missing or malformed file yields empty
// state without error.
func (s *Store) Load() State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return State{}
	}
	if !gjson.ValidBytes(data) {
		return State{}
	}

	var st State

	doc := gjson.ParseBytes(data)
	for _, v := range doc.Get("filters.include").Array() {
		st.Filters.Include = append(st.Filters.Include, v.String())
	}
	for _, v := range doc.Get("filters.exclude").Array() {
		st.Filters.Exclude = append(st.Filters.Exclude, v.String())
	}
	for _, v := range doc.Get("recent_queries").Array() {
		st.RecentQueries = append(st.RecentQueries, v.String())
	}
	if len(st.RecentQueries) > maxRecentQueries {
		st.RecentQueries = st.RecentQueries[:maxRecentQueries]
	}
	return st
}

// Save writes the state file, creating parent directories as needed.
func (s *Store) Save(st State) error {
	if len(st.RecentQueries) > maxRecentQueries {
		st.RecentQueries = st.RecentQueries[:maxRecentQueries]
	}

	json := "{}"
	var err error

	if json, err = sjson.Set(json, "filters.include", emptyNotNil(st.Filters.Include)); err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}
	if json, err = sjson.Set(json, "filters.exclude", emptyNotNil(st.Filters.Exclude)); err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}
	if json, err = sjson.Set(json, "recent_queries", emptyNotNil(st.RecentQueries)); err != nil {
		return fmt.Errorf("encode queries: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	// Write-then-rename keeps a crash from truncating the file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(json), 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// RememberQuery prepends query to the history, deduplicating and
// trimming. Empty queries are ignored.
func RememberQuery(st *State, query string) {
	if query == "" {
		return
	}

	out := make([]string, 0, len(st.RecentQueries)+1)
	out = append(out, query)
	for _, q := range st.RecentQueries {
		if q != query {
			out = append(out, q)
		}
	}
	if len(out) > maxRecentQueries {
		out = out[:maxRecentQueries]
	}
	st.RecentQueries = out
}

func emptyNotNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
