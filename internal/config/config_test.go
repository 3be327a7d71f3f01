package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/scout/internal/config/notify"
)

func writeInit(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scout.lua")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "absent.lua"))
	if err := m.Load(); err != nil {
		t.Fatalf("missing init file must not error: %v", err)
	}

	if got := m.Current().Options; got.GrepCommand != "rg" || got.WalkDepth != 4 {
		t.Errorf("defaults not in place: %+v", got)
	}
}

func TestLoadEvaluatesOptions(t *testing.T) {
	path := writeInit(t, `
scout.set("walk_depth", 6)
scout.set("grep_command", "ugrep")
scout.set("max_rows", 50)
scout.set("exclude", {".git", "build"})
`)

	m := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}

	opts := m.Current().Options
	if opts.WalkDepth != 6 {
		t.Errorf("walk_depth = %d", opts.WalkDepth)
	}
	if opts.GrepCommand != "ugrep" {
		t.Errorf("grep_command = %q", opts.GrepCommand)
	}
	if opts.MaxRows != 50 {
		t.Errorf("max_rows = %d", opts.MaxRows)
	}
	if len(opts.Exclude) != 2 || opts.Exclude[0] != ".git" || opts.Exclude[1] != "build" {
		t.Errorf("exclude = %v", opts.Exclude)
	}
}

func TestLoadCollectsBindingsAndFilters(t *testing.T) {
	path := writeInit(t, `
scout.map("files", "C-u", "scope.ascend")
scout.map("grep", "C-d", "scope.descend")
scout.filters("+*.go -vendor")
`)

	m := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}

	cfg := m.Current()
	if len(cfg.Bindings) != 2 {
		t.Fatalf("got %d bindings", len(cfg.Bindings))
	}
	if cfg.Bindings[0] != (Binding{Kind: "files", Chord: "C-u", Action: "scope.ascend"}) {
		t.Errorf("got %+v", cfg.Bindings[0])
	}
	if cfg.FilterLine != "+*.go -vendor" {
		t.Errorf("filter line = %q", cfg.FilterLine)
	}
}

func TestLoadBadOptionValue(t *testing.T) {
	path := writeInit(t, `scout.set("walk_depth", "deep")`)

	m := NewManager(path)
	if err := m.Load(); err == nil {
		t.Fatal("expected error for bad option value")
	}

	// Previous configuration stands.
	if m.Current().Options.WalkDepth != 4 {
		t.Errorf("failed load mutated config: %+v", m.Current().Options)
	}
}

func TestLoadSyntaxError(t *testing.T) {
	path := writeInit(t, `scout.set(`)

	m := NewManager(path)
	if err := m.Load(); err == nil {
		t.Fatal("expected syntax error")
	}
}

func TestSandboxBlocksOS(t *testing.T) {
	path := writeInit(t, `os.exit(1)`)

	m := NewManager(path)
	if err := m.Load(); err == nil {
		t.Fatal("os library must not be available to init files")
	}
}

func TestLoadNotifiesReload(t *testing.T) {
	path := writeInit(t, `scout.set("walk_depth", 2)`)

	m := NewManager(path)
	var changes []notify.Change
	m.Notifier().Subscribe(func(c notify.Change) { changes = append(changes, c) })

	if err := m.Load(); err != nil {
		t.Fatal(err)
	}

	if len(changes) != 1 || changes[0].Type != notify.ChangeReload {
		t.Errorf("got %v", changes)
	}
}

func TestSetNotifies(t *testing.T) {
	m := NewManager("unused.lua")

	var changes []notify.Change
	m.Notifier().Subscribe(func(c notify.Change) { changes = append(changes, c) })

	if err := m.Set("grep_command", "grep"); err != nil {
		t.Fatal(err)
	}
	if m.Current().Options.GrepCommand != "grep" {
		t.Error("option not applied")
	}
	if len(changes) != 1 || changes[0].Option != "grep_command" || changes[0].OldValue != "rg" {
		t.Errorf("got %v", changes)
	}
}

func TestSetUnknownOption(t *testing.T) {
	m := NewManager("unused.lua")
	if err := m.Set("nope", 1); err == nil {
		t.Error("expected error for unknown option")
	}
}
