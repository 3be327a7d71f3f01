package picker

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dshills/scout/internal/integration/process"
)

// GrepSource searches file contents by invoking an external grep tool
// through the executor. The default tool is ripgrep.
type GrepSource struct {
	executor process.CommandExecutor
	command  string
}

// NewGrepSource creates a GrepSource. command defaults to "rg" when empty.
func NewGrepSource(executor process.CommandExecutor, command string) *GrepSource {
	if command == "" {
		command = "rg"
	}
	return &GrepSource{executor: executor, command: command}
}

// List implements Source. An empty query yields no entries rather than a
// full-tree dump. A failed or matchless search is not an error; the
// session just shows an empty list.
func (s *GrepSource) List(ctx context.Context, root, query string, filterArgs, extraArgs []string) ([]Entry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	args := []string{"--vimgrep", "--no-heading", "--color=never", "--smart-case"}
	args = append(args, filterArgs...)
	args = append(args, extraArgs...)
	args = append(args, "--", query)

	lines, err := process.Lines(ctx, s.executor, root, s.command, args...)
	if err != nil {
		// Exit code 1 (no matches) and empty output both land here.
		if errors.Is(err, process.ErrEmptyOutput) {
			return nil, nil
		}
		return nil, nil
	}

	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if e, ok := parseVimgrepLine(root, line); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// parseVimgrepLine splits a "path:line:col:text" vimgrep row.
func parseVimgrepLine(root, line string) (Entry, bool) {
	parts := strings.SplitN(line, ":", 4)
	if len(parts) < 4 {
		return Entry{}, false
	}

	lineNo, err := strconv.Atoi(parts[1])
	if err != nil {
		return Entry{}, false
	}

	path := parts[0]
	if !strings.HasPrefix(path, "/") {
		path = root + "/" + path
	}

	return Entry{
		Text: parts[0] + ":" + parts[1] + ": " + strings.TrimSpace(parts[3]),
		Path: path,
		Line: lineNo,
	}, true
}
