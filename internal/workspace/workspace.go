// Package workspace tracks the surfaces scout is operating over.
//
// A surface is the finder's view of one host buffer: a normal surface is
// backed by a file on disk, while special surfaces (terminals, list views,
// scratch buffers) have no backing file. The workspace keeps surfaces in
// registration order so context resolution can substitute the first normal
// surface when the active one is special.
package workspace

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SurfaceKind classifies a surface.
type SurfaceKind int

const (
	// KindFile is a normal editable file view.
	KindFile SurfaceKind = iota

	// KindTerminal is an embedded terminal.
	KindTerminal

	// KindList is a transient list view such as a picker.
	KindList
)

// String returns the kind name.
func (k SurfaceKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindTerminal:
		return "terminal"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Surface is one view registered with the workspace.
type Surface struct {
	// ID uniquely identifies the surface.
	ID string

	// Kind classifies the surface.
	Kind SurfaceKind

	// Path is the absolute path of the backing file.
	// Empty for special surfaces and unsaved buffers.
	Path string
}

// IsNormal reports whether the surface is a regular file view.
func (s Surface) IsNormal() bool {
	return s.Kind == KindFile
}

// Workspace holds registered surfaces and the active selection.
// It is safe for concurrent use.
type Workspace struct {
	mu       sync.RWMutex
	order    []string
	surfaces map[string]Surface
	activeID string
	workDir  string
}

// New creates a workspace with the given working directory.
func New(workDir string) *Workspace {
	return &Workspace{
		surfaces: make(map[string]Surface),
		workDir:  workDir,
	}
}

// WorkDir returns the workspace working directory.
func (w *Workspace) WorkDir() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.workDir
}

// SetWorkDir updates the workspace working directory.
func (w *Workspace) SetWorkDir(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.workDir = dir
}

// Register adds a surface and returns its assigned ID.
// The first registered surface becomes active.
func (w *Workspace) Register(kind SurfaceKind, path string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := uuid.NewString()
	w.surfaces[id] = Surface{ID: id, Kind: kind, Path: path}
	w.order = append(w.order, id)

	if w.activeID == "" {
		w.activeID = id
	}
	return id
}

// Remove deletes a surface. If it was active, the first remaining surface
// in registration order becomes active.
func (w *Workspace) Remove(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.surfaces[id]; !ok {
		return false
	}
	delete(w.surfaces, id)

	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}

	if w.activeID == id {
		w.activeID = ""
		if len(w.order) > 0 {
			w.activeID = w.order[0]
		}
	}
	return true
}

// Activate makes the given surface active.
func (w *Workspace) Activate(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.surfaces[id]; !ok {
		return fmt.Errorf("unknown surface: %s", id)
	}
	w.activeID = id
	return nil
}

// Active returns the active surface. The second return is false when the
// workspace holds no surfaces.
func (w *Workspace) Active() (Surface, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	s, ok := w.surfaces[w.activeID]
	return s, ok
}

// All returns surfaces in registration order.
func (w *Workspace) All() []Surface {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]Surface, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.surfaces[id])
	}
	return out
}

// Count returns the number of registered surfaces.
func (w *Workspace) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.surfaces)
}
