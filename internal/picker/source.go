package picker

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Source produces the candidate entries for a session.
type Source interface {
	// List returns entries under root. query and filterArgs only matter
	// to sources that search externally; snapshot sources ignore them.
	List(ctx context.Context, root, query string, filterArgs, extraArgs []string) ([]Entry, error)
}

// WalkOptions bounds filesystem walks.
type WalkOptions struct {
	// MaxDepth limits directory descent; 0 means unlimited.
	MaxDepth int

	// Exclude names directories skipped at any depth.
	Exclude []string
}

// DefaultWalkOptions returns the stock walk bounds.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{
		MaxDepth: 0,
		Exclude:  []string{".git", "node_modules", "vendor", "target", "dist"},
	}
}

func (o WalkOptions) excluded(name string) bool {
	for _, ex := range o.Exclude {
		if name == ex {
			return true
		}
	}
	return false
}

// FileSource lists files under the session root. Listings are a
// point-in-time snapshot; the walk happens once per session open.
type FileSource struct {
	opts WalkOptions
}

// NewFileSource creates a FileSource with the given walk bounds.
func NewFileSource(opts WalkOptions) *FileSource {
	return &FileSource{opts: opts}
}

// List implements Source.
func (s *FileSource) List(ctx context.Context, root, _ string, _, _ []string) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree; skip rather than abort the listing.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path != root && s.opts.excluded(d.Name()) {
				return filepath.SkipDir
			}
			if s.opts.MaxDepth > 0 && depthOf(root, path) > s.opts.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		entries = append(entries, Entry{
			Text: relTo(root, path),
			Path: path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Text < entries[j].Text })
	return entries, nil
}

// DirSource lists subdirectories under the session root, bounded in depth.
// It backs the first stage of the directory-then-file workflow.
type DirSource struct {
	opts WalkOptions
}

// NewDirSource creates a DirSource. A zero MaxDepth is promoted to the
// stock bound; an unbounded directory walk is never useful in a picker.
func NewDirSource(opts WalkOptions) *DirSource {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 4
	}
	return &DirSource{opts: opts}
}

// List implements Source.
func (s *DirSource) List(ctx context.Context, root, _ string, _, _ []string) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() || path == root {
			return nil
		}

		if s.opts.excluded(d.Name()) {
			return filepath.SkipDir
		}

		depth := depthOf(root, path)
		if depth > s.opts.MaxDepth {
			return filepath.SkipDir
		}

		entries = append(entries, Entry{
			Text:  relTo(root, path),
			Path:  path,
			IsDir: true,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Text < entries[j].Text })
	return entries, nil
}

// relTo returns path relative to root, falling back to the absolute path
// when the two are unrelated.
func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// depthOf counts directory levels of path below root.
func depthOf(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
