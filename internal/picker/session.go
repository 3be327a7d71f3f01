package picker

import (
	"github.com/google/uuid"

	"github.com/dshills/scout/internal/fuzzy"
	"github.com/dshills/scout/internal/notify"
	"github.com/dshills/scout/internal/scope"
)

// maxVisibleRows bounds how many rows a frame carries to the view.
const maxVisibleRows = 200

// Session is one live picker. All methods run on the main interaction
// loop; the Controller is the only caller.
type Session struct {
	id   string
	kind Kind
	cfg  Config
	nav  *scope.Navigator

	// entries is the candidate set: a point-in-time listing for files
	// and dirs sessions, the latest search results for grep.
	entries []Entry

	// cache memoizes fuzzy ranking for the current entries; grep
	// sessions never rank locally and leave it nil.
	cache *fuzzy.Cache

	query    string
	rows     []Row
	selected int
}

func newSession(kind Kind, cfg Config, sink notify.Sink) *Session {
	s := &Session{
		id:    uuid.NewString(),
		kind:  kind,
		cfg:   cfg,
		nav:   scope.NewNavigator(cfg.Root, sink),
		query: cfg.Seed,
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Kind returns the session's picker kind.
func (s *Session) Kind() Kind {
	return s.kind
}

// Query returns the live query text.
func (s *Session) Query() string {
	return s.query
}

// Scope returns the directory the session searches under.
func (s *Session) Scope() string {
	return s.nav.Scope()
}

// setEntries replaces the candidate set and refreshes the visible rows.
func (s *Session) setEntries(entries []Entry) {
	s.entries = entries
	s.cache = nil
	if s.kind != KindGrep {
		texts := make([]string, len(entries))
		for i, e := range entries {
			texts[i] = e.Text
		}
		s.cache = fuzzy.NewCache(texts, s.rowLimit(), 0)
	}
	s.refresh()
}

// setQuery updates the query and refreshes the visible rows. Grep
// sessions skip local matching; their entries already reflect the query.
func (s *Session) setQuery(query string) {
	s.query = query
	s.refresh()
}

// refresh recomputes rows from entries and the query, clamping the
// selection.
func (s *Session) refresh() {
	if s.kind == KindGrep {
		s.rows = rawRows(s.entries, s.rowLimit())
	} else {
		s.rows = s.rankedRows()
	}

	if s.selected >= len(s.rows) {
		s.selected = len(s.rows) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// moveSelection shifts the highlight by delta, clamped to the row range.
func (s *Session) moveSelection(delta int) {
	s.selected += delta
	if s.selected < 0 {
		s.selected = 0
	}
	if s.selected >= len(s.rows) {
		s.selected = len(s.rows) - 1
		if s.selected < 0 {
			s.selected = 0
		}
	}
}

// selectedEntry returns the highlighted entry.
func (s *Session) selectedEntry() (Entry, bool) {
	if s.selected < 0 || s.selected >= len(s.rows) {
		return Entry{}, false
	}
	return s.rows[s.selected].Entry, true
}

// frame snapshots the session for rendering.
func (s *Session) frame() Frame {
	title := s.cfg.Title
	if title == "" {
		title = s.kind.String()
	}
	return Frame{
		SessionID: s.id,
		Kind:      s.kind,
		Title:     title,
		Root:      s.nav.Scope(),
		Query:     s.query,
		Rows:      s.rows,
		Selected:  s.selected,
		Total:     len(s.entries),
	}
}

// rowLimit returns the per-frame row cap.
func (s *Session) rowLimit() int {
	if s.cfg.MaxRows > 0 {
		return s.cfg.MaxRows
	}
	return maxVisibleRows
}

// rankedRows matches entries against the query through the cache.
func (s *Session) rankedRows() []Row {
	if s.cache == nil {
		return nil
	}

	matches := s.cache.Rank(s.query)
	rows := make([]Row, len(matches))
	for i, m := range matches {
		rows[i] = Row{Entry: s.entries[m.Index], Positions: m.Positions}
	}
	return rows
}

// rawRows passes entries through unranked.
func rawRows(entries []Entry, limit int) []Row {
	n := len(entries)
	if n > limit {
		n = limit
	}
	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		rows[i] = Row{Entry: entries[i]}
	}
	return rows
}
