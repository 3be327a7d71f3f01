// Package scope computes search roots and navigates them.
//
// A scope is the absolute directory an interactive picker session searches
// under. The Navigator implements the two directory-tree moves a session
// supports: one step up toward the filesystem root, and one step back down
// toward the directory of the active buffer. Moves never mutate the live
// session; they produce a Reopen request the session controller applies by
// replacing the session.
package scope

import (
	"path/filepath"
	"strings"

	"github.com/dshills/scout/internal/context"
	"github.com/dshills/scout/internal/notify"
)

// SearchRoot returns the directory a new picker session should search
// under: the repository root when the context has one, otherwise the
// buffer's directory.
func SearchRoot(ctx context.Context) string {
	if ctx.GitRoot != "" {
		return ctx.GitRoot
	}
	return ctx.Dir
}

// Reopen asks the session controller to replace the live session with one
// rooted at Scope, seeded with Query.
type Reopen struct {
	Scope string
	Query string
}

// Navigator holds the scope of one live picker session.
type Navigator struct {
	scope string
	sink  notify.Sink
}

// NewNavigator creates a Navigator rooted at scope.
func NewNavigator(scope string, sink notify.Sink) *Navigator {
	return &Navigator{
		scope: filepath.Clean(scope),
		sink:  sink,
	}
}

// Scope returns the current scope.
func (n *Navigator) Scope() string {
	return n.scope
}

// Ascend widens the scope one directory level. The captured query is
// threaded into the returned Reopen so the replacement session starts
// where the user left off. At the filesystem root Ascend warns and
// reports no move.
func (n *Navigator) Ascend(query string) (Reopen, bool) {
	parent := filepath.Dir(n.scope)
	if parent == n.scope {
		notify.Warnf(n.sink, "already at filesystem root")
		return Reopen{}, false
	}
	return Reopen{Scope: parent, Query: query}, true
}

// DescendToBuffer narrows the scope one level toward bufferDir: the new
// scope is the child of the current scope that lies on the path to
// bufferDir. When bufferDir equals the scope, or is not under it at all,
// DescendToBuffer warns and reports no move.
func (n *Navigator) DescendToBuffer(query, bufferDir string) (Reopen, bool) {
	bufferDir = filepath.Clean(bufferDir)

	if bufferDir == n.scope {
		notify.Warnf(n.sink, "already at buffer directory")
		return Reopen{}, false
	}
	if !IsAncestorOrEqual(n.scope, bufferDir) {
		notify.Warnf(n.sink, "buffer directory is outside the current scope")
		return Reopen{}, false
	}

	// Walk up from the buffer directory to the child of the scope on
	// the path between them. The prefix check above guarantees the walk
	// hits the scope.
	target := bufferDir
	for filepath.Dir(target) != n.scope {
		target = filepath.Dir(target)
	}
	return Reopen{Scope: target, Query: query}, true
}

// IsAncestorOrEqual reports whether ancestor contains dir or equals it.
// Both paths must be absolute.
func IsAncestorOrEqual(ancestor, dir string) bool {
	ancestor = filepath.Clean(ancestor)
	dir = filepath.Clean(dir)
	if ancestor == dir {
		return true
	}
	if !strings.HasSuffix(ancestor, string(filepath.Separator)) {
		ancestor += string(filepath.Separator)
	}
	return strings.HasPrefix(dir, ancestor)
}
