// Package picker runs interactive finder sessions.
//
// A session binds one picker kind (files, grep, directories) to a search
// scope and a live query. Navigation never mutates a running session:
// widening or narrowing the scope closes the session and schedules a
// replacement on the next tick of the main loop, seeded with the captured
// query, so teardown always completes before setup begins. At most one
// session per kind is live at a time.
package picker

import "fmt"

// Kind identifies a picker type.
type Kind int

const (
	// KindFiles finds files under the scope.
	KindFiles Kind = iota

	// KindGrep searches file contents under the scope.
	KindGrep

	// KindDirs lists directories under the scope; selecting one hands
	// off to a files session rooted there.
	KindDirs
)

// String returns the kind name. It doubles as the keymap group key.
func (k Kind) String() string {
	switch k {
	case KindFiles:
		return "files"
	case KindGrep:
		return "grep"
	case KindDirs:
		return "dirs"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// Command is a navigation or session operation dispatched by the
// controller.
type Command int

const (
	// CmdAscend widens the scope one directory level.
	CmdAscend Command = iota

	// CmdDescendToBuffer narrows the scope one level toward the active
	// buffer's directory.
	CmdDescendToBuffer

	// CmdAddFilter opens the filter prompt (grep sessions).
	CmdAddFilter

	// CmdClearFilter empties the active filter set (grep sessions).
	CmdClearFilter

	// CmdSelectEntry accepts the highlighted entry.
	CmdSelectEntry

	// CmdClose dismisses the session.
	CmdClose

	// CmdMoveUp moves the highlight up.
	CmdMoveUp

	// CmdMoveDown moves the highlight down.
	CmdMoveDown
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdAscend:
		return "ascend"
	case CmdDescendToBuffer:
		return "descend-to-buffer"
	case CmdAddFilter:
		return "add-filter"
	case CmdClearFilter:
		return "clear-filter"
	case CmdSelectEntry:
		return "select-entry"
	case CmdClose:
		return "close"
	case CmdMoveUp:
		return "move-up"
	case CmdMoveDown:
		return "move-down"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// Entry is one candidate row in a session list.
type Entry struct {
	// Text is the display string, relative to the session root where
	// possible.
	Text string

	// Path is the absolute filesystem path of the entry.
	Path string

	// Line is the 1-based match line for grep entries, 0 otherwise.
	Line int

	// IsDir marks directory entries.
	IsDir bool
}

// Config seeds a new session.
type Config struct {
	// Root is the absolute directory the session searches under.
	Root string

	// Seed is the initial query.
	Seed string

	// Title overrides the default title for the kind.
	Title string

	// ExtraArgs are appended to external search invocations.
	ExtraArgs []string

	// MaxRows caps the rows per frame; <= 0 selects the default.
	MaxRows int
}

// Frame is a render snapshot handed to the view.
type Frame struct {
	SessionID string
	Kind      Kind
	Title     string
	Root      string
	Query     string
	Rows      []Row
	Selected  int
	Total     int
}

// Row is one visible entry with highlight positions.
type Row struct {
	Entry     Entry
	Positions []int
}

// View renders sessions. Implementations must be cheap; Render is called
// on every query or selection change.
type View interface {
	// Render draws the frame for its session.
	Render(frame Frame)

	// CloseSession removes the UI of a dismissed session.
	CloseSession(id string)

	// PromptFilter switches the prompt of the session into filter-entry
	// mode. The submitted line comes back through Controller.ApplyFilter.
	PromptFilter(id string)
}

// Scheduler defers work to the next tick of the main interaction loop.
type Scheduler interface {
	Defer(fn func())
}
