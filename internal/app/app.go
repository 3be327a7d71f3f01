// Package app wires scout together and runs the interaction loop.
//
// The loop is single threaded: every keypress, deferred session swap,
// and configuration reload is applied between two polls of the terminal
// backend. Goroutines that want work done on the loop (the config
// watcher, notably) go through the Scheduler, which wakes the loop with
// an interrupt event.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scout/internal/config"
	cfgnotify "github.com/dshills/scout/internal/config/notify"
	bufctx "github.com/dshills/scout/internal/context"
	"github.com/dshills/scout/internal/filter"
	"github.com/dshills/scout/internal/input/keymap"
	"github.com/dshills/scout/internal/integration/git"
	"github.com/dshills/scout/internal/integration/process"
	"github.com/dshills/scout/internal/notify"
	"github.com/dshills/scout/internal/picker"
	"github.com/dshills/scout/internal/scope"
	"github.com/dshills/scout/internal/state"
	"github.com/dshills/scout/internal/ui"
	"github.com/dshills/scout/internal/workspace"
)

// Options configure an App.
type Options struct {
	// Screen is the initialized terminal backend. Required.
	Screen tcell.Screen

	// Mode selects the picker opened on startup.
	Mode picker.Kind

	// Query seeds the initial session.
	Query string

	// BufferPath is the file the invoking context considers current;
	// it anchors scope resolution. Empty means the working directory
	// anchors instead.
	BufferPath string

	// WorkDir is the fallback directory; empty selects os.Getwd.
	WorkDir string

	// ConfigPath overrides the default init file location.
	ConfigPath string

	// StatePath overrides the default state file location.
	StatePath string

	// Executor runs external commands; nil selects the real one.
	Executor process.CommandExecutor
}

// App owns every subsystem for one run of the finder.
type App struct {
	opts   Options
	screen tcell.Screen
	ui     *ui.UI
	sched  *Scheduler

	manager *config.Manager
	watcher *config.Watcher
	sub     *cfgnotify.Subscription

	store *state.Store
	saved state.State

	ws         *workspace.Workspace
	resolver   *bufctx.Resolver
	roots      *git.RootFinder
	filters    *filter.Store
	executor   process.CommandExecutor
	controller *picker.Controller

	maxRows   int
	active    picker.Kind
	lastQuery string
	result    *picker.Entry
	quit      bool
}

// New builds an App from options. The screen must already be
// initialized; New does not draw.
func New(opts Options) (*App, error) {
	if opts.Screen == nil {
		return nil, fmt.Errorf("app: screen is required")
	}

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("app: resolve working directory: %w", err)
		}
		workDir = wd
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	statePath := opts.StatePath
	if statePath == "" {
		statePath = state.DefaultPath()
	}

	executor := opts.Executor
	if executor == nil {
		executor = process.NewRealExecutor()
	}

	a := &App{
		opts:     opts,
		screen:   opts.Screen,
		ui:       ui.New(opts.Screen),
		manager:  config.NewManager(configPath),
		store:    state.NewStore(statePath),
		ws:       workspace.New(workDir),
		roots:    git.NewRootFinder(executor),
		filters:  filter.NewStore(),
		executor: executor,
		active:   opts.Mode,
	}
	a.sched = NewScheduler(func() {
		a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	a.resolver = bufctx.NewResolver(a.ws, a.roots)
	a.watcher = config.NewWatcher(a.manager, 0)
	a.watcher.OnError = func(err error) {
		a.sched.Defer(func() {
			notify.Errorf(a.ui, "reload config: %v", err)
		})
	}

	if opts.BufferPath != "" {
		abs, err := filepath.Abs(opts.BufferPath)
		if err != nil {
			return nil, fmt.Errorf("app: resolve buffer path: %w", err)
		}
		id := a.ws.Register(workspace.KindFile, abs)
		if err := a.ws.Activate(id); err != nil {
			return nil, fmt.Errorf("app: activate buffer: %w", err)
		}
	}

	a.saved = a.store.Load()
	if !a.saved.Filters.Empty() {
		a.filters.Set(a.saved.Filters)
	}

	loadErr := a.manager.Load()

	ctrl, err := picker.NewController(picker.Deps{
		Scheduler: a.sched,
		View:      a.ui,
		Sink:      a.ui,
		Resolver:  a.resolver,
		Filters:   a.filters,
		Sources:   make(map[picker.Kind]picker.Source),
		OnOpen:    a.accept,
	})
	if err != nil {
		return nil, err
	}
	a.controller = ctrl

	a.applyConfig(a.manager.Current())
	a.sub = a.manager.Notifier().Subscribe(func(cfgnotify.Change) {
		a.sched.Defer(func() {
			a.applyConfig(a.manager.Current())
		})
	})

	if loadErr != nil {
		notify.Errorf(a.ui, "load config: %v", loadErr)
	}
	return a, nil
}

// Run opens the startup picker and drives the interaction loop until the
// user accepts an entry or dismisses the last session. The returned
// error covers loop failures; use Result for the accepted entry.
func (a *App) Run(ctx context.Context) error {
	a.watcher.Start(ctx)
	defer a.watcher.Stop()
	defer a.sub.Unsubscribe()

	bc := a.resolver.Resolve(ctx)
	cfg := picker.Config{
		Root:    scope.SearchRoot(bc),
		Seed:    a.opts.Query,
		MaxRows: a.maxRows,
	}
	if err := a.controller.Open(ctx, a.opts.Mode, cfg); err != nil {
		return err
	}

	for !a.quit {
		a.sched.Drain()
		a.syncActive()
		if a.quit {
			break
		}

		ev := a.screen.PollEvent()
		if ev == nil {
			break
		}
		a.handleEvent(ctx, ev)
	}

	return a.saveState()
}

// Result returns the entry the user accepted, if any.
func (a *App) Result() (picker.Entry, bool) {
	if a.result == nil {
		return picker.Entry{}, false
	}
	return *a.result, true
}

func (a *App) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.ui.Redraw()

	case *tcell.EventKey:
		kev, ok := ui.TranslateKey(ev)
		if !ok {
			return
		}

		if a.ui.FilterPromptOpen() {
			line, done := a.ui.HandleFilterKey(kev)
			if done {
				a.controller.ApplyFilter(ctx, line)
			}
			a.ui.Redraw()
			return
		}

		if s, live := a.controller.Session(a.active); live {
			a.lastQuery = s.Query()
		}
		a.controller.HandleKey(ctx, a.active, kev)
	}
}

// syncActive follows the live session across handoffs (a dirs session
// reopening as files) and quits when nothing is live and nothing is
// scheduled.
func (a *App) syncActive() {
	if _, ok := a.controller.Session(a.active); ok {
		return
	}
	for _, k := range []picker.Kind{picker.KindFiles, picker.KindGrep, picker.KindDirs} {
		if _, ok := a.controller.Session(k); ok {
			a.active = k
			return
		}
	}
	if a.sched.Pending() == 0 {
		a.quit = true
	}
}

// accept records the chosen entry and ends the loop.
func (a *App) accept(entry picker.Entry) {
	a.result = &entry
	a.quit = true
}

// applyConfig rebuilds the option-derived pieces: walk sources, the grep
// invocation, key bindings, and the seeded filter set. Runs on the
// interaction loop.
func (a *App) applyConfig(cfg config.Config) {
	a.maxRows = cfg.Options.MaxRows

	wo := picker.DefaultWalkOptions()
	if cfg.Options.WalkDepth > 0 {
		wo.MaxDepth = cfg.Options.WalkDepth
	}
	if len(cfg.Options.Exclude) > 0 {
		wo.Exclude = cfg.Options.Exclude
	}

	a.controller.SetSource(picker.KindFiles, picker.NewFileSource(wo))
	a.controller.SetSource(picker.KindDirs, picker.NewDirSource(wo))
	a.controller.SetSource(picker.KindGrep, picker.NewGrepSource(a.executor, cfg.Options.GrepCommand))
	a.controller.SetKeymap(a.buildKeymap(cfg.Bindings))

	if cfg.FilterLine != "" {
		a.filters.Apply(cfg.FilterLine)
	}
}

// buildKeymap layers user bindings over the defaults.
func (a *App) buildKeymap(bindings []config.Binding) *keymap.Keymap {
	km := keymap.Default(
		picker.KindFiles.String(),
		picker.KindGrep.String(),
		picker.KindDirs.String(),
	)
	for _, b := range bindings {
		if err := km.Bind(b.Kind, b.Chord, b.Action); err != nil {
			notify.Warnf(a.ui, "bind %s %s: %v", b.Kind, b.Chord, err)
		}
	}
	return km
}

// saveState persists filters and query history. Best effort.
func (a *App) saveState() error {
	st := a.saved
	st.Filters = a.filters.Active()
	if a.result != nil && a.lastQuery != "" {
		state.RememberQuery(&st, a.lastQuery)
	}
	if err := a.store.Save(st); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
