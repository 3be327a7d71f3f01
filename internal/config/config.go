// Package config loads and watches scout's user configuration.
//
// Configuration is a Lua init file (scout.lua) evaluated in a restricted
// interpreter. The file sets options, rebinds picker keys, and seeds the
// grep filter set. A polling watcher re-evaluates the file when it
// changes and announces the reload through a notifier.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/scout/internal/config/notify"
)

// Options are the tunable settings of the finder.
type Options struct {
	// WalkDepth bounds the directory picker's listing depth.
	WalkDepth int

	// Exclude names directories skipped by every walk.
	Exclude []string

	// GrepCommand is the content-search binary.
	GrepCommand string

	// MaxRows caps the rows handed to the view per frame.
	MaxRows int
}

// DefaultOptions returns the stock settings.
func DefaultOptions() Options {
	return Options{
		WalkDepth:   4,
		Exclude:     []string{".git", "node_modules", "vendor", "target", "dist"},
		GrepCommand: "rg",
		MaxRows:     200,
	}
}

// Binding is one user key remap.
type Binding struct {
	// Kind is the picker kind name ("files", "grep", "dirs").
	Kind string

	// Chord is the key chord.
	Chord string

	// Action is the dotted action name.
	Action string
}

// Config is the evaluated result of an init file.
type Config struct {
	Options Options

	// Bindings are user key remaps, in declaration order.
	Bindings []Binding

	// FilterLine seeds the grep filter set; empty means none.
	FilterLine string
}

// Default returns a Config carrying only stock settings.
func Default() Config {
	return Config{Options: DefaultOptions()}
}

// Manager owns the live configuration and its change notifier.
type Manager struct {
	mu       sync.RWMutex
	path     string
	current  Config
	notifier *notify.Notifier
}

// NewManager creates a Manager for the init file at path. The file is not
// read until Load.
func NewManager(path string) *Manager {
	return &Manager{
		path:     path,
		current:  Default(),
		notifier: notify.New(),
	}
}

// DefaultPath returns the conventional init file location, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scout", "scout.lua")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "scout.lua"
	}
	return filepath.Join(home, ".config", "scout", "scout.lua")
}

// Current returns the live configuration.
func (m *Manager) Current() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Notifier returns the change notifier.
func (m *Manager) Notifier() *notify.Notifier {
	return m.notifier
}

// Load evaluates the init file. A missing file is not an error; the
// defaults stand. An init file that fails to evaluate leaves the previous
// configuration in place.
func (m *Manager) Load() error {
	if _, err := os.Stat(m.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat init file: %w", err)
	}

	cfg, err := evalFile(m.path)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", m.path, err)
	}

	m.mu.Lock()
	m.current = cfg
	m.mu.Unlock()

	m.notifier.NotifyReload()
	return nil
}

// Set updates one option at runtime and notifies observers. Unknown
// option names are rejected.
func (m *Manager) Set(option string, value any) error {
	m.mu.Lock()
	old, err := applyOption(&m.current.Options, option, value)
	m.mu.Unlock()
	if err != nil {
		return err
	}

	m.notifier.NotifySet(option, old, value)
	return nil
}

// applyOption writes one option value, returning the previous value.
func applyOption(opts *Options, option string, value any) (any, error) {
	switch option {
	case "walk_depth":
		n, ok := toInt(value)
		if !ok || n < 0 {
			return nil, fmt.Errorf("walk_depth: expected non-negative integer, got %v", value)
		}
		old := opts.WalkDepth
		opts.WalkDepth = n
		return old, nil

	case "grep_command":
		s, ok := value.(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("grep_command: expected non-empty string, got %v", value)
		}
		old := opts.GrepCommand
		opts.GrepCommand = s
		return old, nil

	case "max_rows":
		n, ok := toInt(value)
		if !ok || n <= 0 {
			return nil, fmt.Errorf("max_rows: expected positive integer, got %v", value)
		}
		old := opts.MaxRows
		opts.MaxRows = n
		return old, nil

	case "exclude":
		names, ok := toStrings(value)
		if !ok {
			return nil, fmt.Errorf("exclude: expected list of strings, got %v", value)
		}
		old := opts.Exclude
		opts.Exclude = names
		return old, nil

	default:
		return nil, fmt.Errorf("unknown option: %s", option)
	}
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

func toStrings(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
