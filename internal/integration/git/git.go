// Package git resolves repository roots for scope computation.
//
// Root discovery asks the git binary first and falls back to walking the
// directory tree for a .git entry when the binary is unavailable. A failed
// lookup is not an error: callers receive an empty root and treat it as
// "not inside a repository".
package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/scout/internal/integration/process"
)

// RootFinder locates the repository root containing a directory.
type RootFinder struct {
	executor process.CommandExecutor

	mu    sync.RWMutex
	cache map[string]string
}

// NewRootFinder creates a RootFinder using the given executor.
func NewRootFinder(executor process.CommandExecutor) *RootFinder {
	return &RootFinder{
		executor: executor,
		cache:    make(map[string]string),
	}
}

// Root returns the repository root containing dir, or "" when dir is not
// inside a repository. Lookups are cached per directory; Root never returns
// an error.
func (f *RootFinder) Root(ctx context.Context, dir string) string {
	f.mu.RLock()
	root, ok := f.cache[dir]
	f.mu.RUnlock()
	if ok {
		return root
	}

	root = f.lookup(ctx, dir)

	f.mu.Lock()
	f.cache[dir] = root
	f.mu.Unlock()
	return root
}

// Invalidate drops all cached lookups.
func (f *RootFinder) Invalidate() {
	f.mu.Lock()
	f.cache = make(map[string]string)
	f.mu.Unlock()
}

func (f *RootFinder) lookup(ctx context.Context, dir string) string {
	out, err := f.executor.Output(ctx, dir, "git", "rev-parse", "--show-toplevel")
	if err == nil {
		root := strings.TrimSpace(string(out))
		if root != "" {
			return root
		}
	}

	// git unavailable or dir outside a work tree; try the filesystem.
	return discoverRoot(dir)
}

// discoverRoot walks up from dir looking for a .git entry.
// .git can be a directory or a file (for worktrees); both count.
func discoverRoot(dir string) string {
	current, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current
		}

		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}
