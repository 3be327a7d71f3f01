package picker

import (
	"context"
	"fmt"
	"sync"

	bufctx "github.com/dshills/scout/internal/context"
	"github.com/dshills/scout/internal/filter"
	"github.com/dshills/scout/internal/input/key"
	"github.com/dshills/scout/internal/input/keymap"
	"github.com/dshills/scout/internal/notify"
)

// ContextResolver computes the active buffer context.
type ContextResolver interface {
	Resolve(ctx context.Context) bufctx.Context
}

// Deps wires a Controller.
type Deps struct {
	Scheduler Scheduler
	View      View
	Sink      notify.Sink
	Resolver  ContextResolver
	Filters   *filter.Store
	Keymap    *keymap.Keymap
	Sources   map[Kind]Source

	// OnOpen receives the accepted entry of a files or grep session.
	OnOpen func(Entry)
}

// Controller owns picker sessions. All exported methods run on the main
// interaction loop; the mutex only guards against stray cross-goroutine
// reads, not concurrent dispatch.
type Controller struct {
	deps Deps

	mu   sync.Mutex
	live map[Kind]*Session
}

// NewController creates a Controller.
func NewController(deps Deps) (*Controller, error) {
	if deps.Scheduler == nil {
		return nil, fmt.Errorf("picker: scheduler is required")
	}
	if deps.View == nil {
		return nil, fmt.Errorf("picker: view is required")
	}
	if deps.Filters == nil {
		deps.Filters = filter.NewStore()
	}
	if deps.Keymap == nil {
		deps.Keymap = keymap.Default(KindFiles.String(), KindGrep.String(), KindDirs.String())
	}
	if deps.Sources == nil {
		deps.Sources = make(map[Kind]Source)
	}

	return &Controller{
		deps: deps,
		live: make(map[Kind]*Session),
	}, nil
}

// Open starts a session of the given kind, replacing any live session of
// the same kind.
func (c *Controller) Open(ctx context.Context, kind Kind, cfg Config) error {
	source, ok := c.deps.Sources[kind]
	if !ok {
		return fmt.Errorf("no source for %s picker", kind)
	}

	c.closeLive(kind)

	s := newSession(kind, cfg, c.deps.Sink)
	if err := c.populate(ctx, s, source); err != nil {
		return fmt.Errorf("open %s picker: %w", kind, err)
	}

	c.mu.Lock()
	c.live[kind] = s
	c.mu.Unlock()

	c.deps.View.Render(s.frame())
	return nil
}

// SetKeymap replaces the key bindings. Call from the interaction loop
// only; HandleKey reads the keymap without locking.
func (c *Controller) SetKeymap(km *keymap.Keymap) {
	if km != nil {
		c.deps.Keymap = km
	}
}

// SetSource replaces the entry source for a kind. Call from the
// interaction loop only. Live sessions pick the new source up on their
// next refresh.
func (c *Controller) SetSource(kind Kind, source Source) {
	if source != nil {
		c.deps.Sources[kind] = source
	}
}

// Close dismisses the live session of the given kind, if any.
func (c *Controller) Close(kind Kind) {
	c.closeLive(kind)
}

// Session returns the live session of a kind.
func (c *Controller) Session(kind Kind) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.live[kind]
	return s, ok
}

// HandleKey feeds one keypress into the live session of the given kind.
// Unbound printable keys edit the query; bound chords dispatch commands.
func (c *Controller) HandleKey(ctx context.Context, kind Kind, ev key.Event) {
	s, ok := c.Session(kind)
	if !ok {
		return
	}

	if action, bound := c.deps.Keymap.Lookup(kind.String(), ev); bound {
		if cmd, known := commandForAction(action); known {
			c.Dispatch(ctx, kind, cmd)
		} else {
			notify.Warnf(c.deps.Sink, "unknown action: %s", action)
		}
		return
	}

	switch {
	case ev.IsText():
		c.setQuery(ctx, s, s.Query()+string(ev.Rune))
	case ev.Code == key.CodeBackspace:
		q := []rune(s.Query())
		if len(q) > 0 {
			c.setQuery(ctx, s, string(q[:len(q)-1]))
		}
	}
}

// Dispatch executes a command against the live session of the given kind.
func (c *Controller) Dispatch(ctx context.Context, kind Kind, cmd Command) {
	s, ok := c.Session(kind)
	if !ok {
		return
	}

	switch cmd {
	case CmdAscend:
		if reopen, moved := s.nav.Ascend(s.Query()); moved {
			c.replace(kind, s, reopen.Scope, reopen.Query)
		}

	case CmdDescendToBuffer:
		dir := c.bufferDir(ctx)
		if reopen, moved := s.nav.DescendToBuffer(s.Query(), dir); moved {
			c.replace(kind, s, reopen.Scope, reopen.Query)
		}

	case CmdAddFilter:
		if kind != KindGrep {
			notify.Warnf(c.deps.Sink, "filters apply to grep sessions")
			return
		}
		c.deps.View.PromptFilter(s.ID())

	case CmdClearFilter:
		c.deps.Filters.Clear()
		if kind == KindGrep {
			c.refreshGrep(ctx)
		}

	case CmdSelectEntry:
		c.selectEntry(s)

	case CmdClose:
		c.closeLive(kind)

	case CmdMoveUp:
		s.moveSelection(-1)
		c.deps.View.Render(s.frame())

	case CmdMoveDown:
		s.moveSelection(1)
		c.deps.View.Render(s.frame())
	}
}

// ApplyFilter replaces the active filter set from a raw filter line and
// refreshes the grep session. Empty input keeps the previous filters.
func (c *Controller) ApplyFilter(ctx context.Context, raw string) {
	if !c.deps.Filters.Apply(raw) {
		return
	}
	c.refreshGrep(ctx)
}

// selectEntry accepts the highlighted entry. Directory sessions hand off
// to a files session rooted at the picked directory; other kinds report
// the entry through OnOpen.
func (c *Controller) selectEntry(s *Session) {
	entry, ok := s.selectedEntry()
	if !ok {
		notify.Warnf(c.deps.Sink, "nothing selected")
		return
	}

	kind := s.Kind()
	c.closeLive(kind)

	if kind == KindDirs {
		cfg := Config{Root: entry.Path, MaxRows: s.cfg.MaxRows}
		c.deps.Scheduler.Defer(func() {
			if err := c.Open(context.Background(), KindFiles, cfg); err != nil {
				notify.Errorf(c.deps.Sink, "open files picker: %v", err)
			}
		})
		return
	}

	if c.deps.OnOpen != nil {
		c.deps.OnOpen(entry)
	}
}

// replace closes the session now and schedules its successor for the next
// tick, so the old session's teardown finishes before the new one exists.
func (c *Controller) replace(kind Kind, s *Session, newScope, query string) {
	cfg := s.cfg
	cfg.Root = newScope
	cfg.Seed = query

	c.closeLive(kind)
	c.deps.Scheduler.Defer(func() {
		if err := c.Open(context.Background(), kind, cfg); err != nil {
			notify.Errorf(c.deps.Sink, "reopen %s picker: %v", kind, err)
		}
	})
}

// setQuery updates the query, re-running the external search for grep
// sessions, and re-renders.
func (c *Controller) setQuery(ctx context.Context, s *Session, query string) {
	s.setQuery(query)

	if s.Kind() == KindGrep {
		if source, ok := c.deps.Sources[KindGrep]; ok {
			if err := c.populate(ctx, s, source); err != nil {
				notify.Errorf(c.deps.Sink, "search: %v", err)
			}
		}
	}

	c.deps.View.Render(s.frame())
}

// populate loads entries for the session from its source.
func (c *Controller) populate(ctx context.Context, s *Session, source Source) error {
	var filterArgs []string
	if s.Kind() == KindGrep {
		filterArgs = c.deps.Filters.Active().Args()
	}

	entries, err := source.List(ctx, s.nav.Scope(), s.Query(), filterArgs, s.cfg.ExtraArgs)
	if err != nil {
		return err
	}
	s.setEntries(entries)
	return nil
}

// refreshGrep re-runs the live grep session against the current filters.
func (c *Controller) refreshGrep(ctx context.Context) {
	s, ok := c.Session(KindGrep)
	if !ok {
		return
	}
	if source, sok := c.deps.Sources[KindGrep]; sok {
		if err := c.populate(ctx, s, source); err != nil {
			notify.Errorf(c.deps.Sink, "search: %v", err)
			return
		}
		c.deps.View.Render(s.frame())
	}
}

// bufferDir resolves the active buffer's directory, or "" when no
// resolver is wired.
func (c *Controller) bufferDir(ctx context.Context) string {
	if c.deps.Resolver == nil {
		return ""
	}
	return c.deps.Resolver.Resolve(ctx).Dir
}

// closeLive tears down the live session of a kind.
func (c *Controller) closeLive(kind Kind) {
	c.mu.Lock()
	s, ok := c.live[kind]
	if ok {
		delete(c.live, kind)
	}
	c.mu.Unlock()

	if ok {
		c.deps.View.CloseSession(s.ID())
	}
}

// commandForAction resolves a keymap action name to a Command.
func commandForAction(action string) (Command, bool) {
	switch action {
	case keymap.ActionAscend:
		return CmdAscend, true
	case keymap.ActionDescend:
		return CmdDescendToBuffer, true
	case keymap.ActionAddFilter:
		return CmdAddFilter, true
	case keymap.ActionClearFilter:
		return CmdClearFilter, true
	case keymap.ActionSelect:
		return CmdSelectEntry, true
	case keymap.ActionMoveUp:
		return CmdMoveUp, true
	case keymap.ActionMoveDown:
		return CmdMoveDown, true
	case keymap.ActionClose:
		return CmdClose, true
	default:
		return 0, false
	}
}
