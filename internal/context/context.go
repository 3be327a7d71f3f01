// Package context derives the directory and repository context of the
// active surface.
//
// A Context is recomputed on every query, never stored. Resolution cannot
// fail: every fallback ends at the workspace working directory, and a
// missing repository root is represented by an empty field rather than an
// error.
package context

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/scout/internal/workspace"
)

// Context describes where the active surface lives.
type Context struct {
	// Path is the backing file of the resolved surface. Empty when the
	// surface has no backing file.
	Path string

	// Dir is the directory searches should start from. Always an
	// existing directory.
	Dir string

	// GitRoot is the repository root containing Dir, or "" when Dir is
	// not inside a repository. When set it is an ancestor of Dir.
	GitRoot string

	// IsRealFile reports whether the resolved surface is a normal file
	// view with a backing file.
	IsRealFile bool
}

// RootFinder locates a repository root for a directory.
// An empty result means no repository.
type RootFinder interface {
	Root(ctx context.Context, dir string) string
}

// Resolver computes Contexts from workspace state.
type Resolver struct {
	ws    *workspace.Workspace
	roots RootFinder
}

// NewResolver creates a Resolver. roots may be nil, in which case GitRoot
// is never populated.
func NewResolver(ws *workspace.Workspace, roots RootFinder) *Resolver {
	return &Resolver{ws: ws, roots: roots}
}

// Resolve computes the context of the active surface.
//
// A special active surface (terminal, list) is substituted with the first
// normal surface in registration order; if none exists the special surface
// is kept and resolution falls through to the working directory.
func (r *Resolver) Resolve(ctx context.Context) Context {
	surface, ok := r.ws.Active()
	if ok && !surface.IsNormal() {
		for _, s := range r.ws.All() {
			if s.IsNormal() {
				surface = s
				break
			}
		}
	}

	out := Context{}
	if ok {
		out.Path = surface.Path
		out.IsRealFile = surface.IsNormal() && surface.Path != ""
	}

	out.Dir = r.resolveDir(out.Path)

	if r.roots != nil {
		root := r.roots.Root(ctx, out.Dir)
		if root != "" && isAncestorOrEqual(root, out.Dir) {
			out.GitRoot = root
		}
	}

	return out
}

// resolveDir returns the parent directory of path when it still exists,
// otherwise the workspace working directory, otherwise the process cwd.
func (r *Resolver) resolveDir(path string) string {
	if path != "" {
		dir := filepath.Dir(path)
		if isDir(dir) {
			return dir
		}
	}

	if wd := r.ws.WorkDir(); isDir(wd) {
		return wd
	}

	cwd, err := os.Getwd()
	if err != nil {
		return string(filepath.Separator)
	}
	return cwd
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isAncestorOrEqual reports whether ancestor contains dir (or equals it).
func isAncestorOrEqual(ancestor, dir string) bool {
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
