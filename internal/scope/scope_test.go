package scope

import (
	"testing"

	"github.com/dshills/scout/internal/context"
	"github.com/dshills/scout/internal/notify"
)

func TestSearchRootPrefersGitRoot(t *testing.T) {
	ctx := context.Context{Dir: "/repo/internal/scope", GitRoot: "/repo"}
	if got := SearchRoot(ctx); got != "/repo" {
		t.Errorf("got %q, want /repo", got)
	}
}

func TestSearchRootFallsBackToDir(t *testing.T) {
	ctx := context.Context{Dir: "/home/user/notes"}
	if got := SearchRoot(ctx); got != "/home/user/notes" {
		t.Errorf("got %q", got)
	}
}

func TestAscend(t *testing.T) {
	nav := NewNavigator("/repo/internal", notify.NewMemory())

	reopen, ok := nav.Ascend("handler")
	if !ok {
		t.Fatal("expected a move")
	}
	if reopen.Scope != "/repo" {
		t.Errorf("got scope %q, want /repo", reopen.Scope)
	}
	if reopen.Query != "handler" {
		t.Errorf("query not preserved: %q", reopen.Query)
	}
}

func TestAscendAtRoot(t *testing.T) {
	sink := notify.NewMemory()
	nav := NewNavigator("/", sink)

	_, ok := nav.Ascend("q")
	if ok {
		t.Fatal("expected no move at filesystem root")
	}
	if nav.Scope() != "/" {
		t.Errorf("scope changed to %q", nav.Scope())
	}

	msgs := sink.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected exactly one warning, got %d", len(msgs))
	}
	if msgs[0].Level != notify.LevelWarn {
		t.Errorf("got level %v", msgs[0].Level)
	}
}

func TestDescendOneLevelTowardBuffer(t *testing.T) {
	nav := NewNavigator("/repo", notify.NewMemory())

	reopen, ok := nav.DescendToBuffer("q", "/repo/internal/scope")
	if !ok {
		t.Fatal("expected a move")
	}
	if reopen.Scope != "/repo/internal" {
		t.Errorf("got scope %q, want /repo/internal", reopen.Scope)
	}
	if reopen.Query != "q" {
		t.Errorf("query not preserved: %q", reopen.Query)
	}
}

func TestDescendToDirectChild(t *testing.T) {
	nav := NewNavigator("/repo", notify.NewMemory())

	reopen, ok := nav.DescendToBuffer("", "/repo/cmd")
	if !ok {
		t.Fatal("expected a move")
	}
	if reopen.Scope != "/repo/cmd" {
		t.Errorf("got scope %q, want /repo/cmd", reopen.Scope)
	}
}

func TestDescendAlreadyAtBuffer(t *testing.T) {
	sink := notify.NewMemory()
	nav := NewNavigator("/repo/internal", sink)

	_, ok := nav.DescendToBuffer("", "/repo/internal")
	if ok {
		t.Fatal("expected no move when scope equals buffer dir")
	}
	if len(sink.Messages()) != 1 {
		t.Errorf("expected one warning, got %d", len(sink.Messages()))
	}
}

func TestDescendBufferOutsideScope(t *testing.T) {
	sink := notify.NewMemory()
	nav := NewNavigator("/repo/internal", sink)

	_, ok := nav.DescendToBuffer("", "/elsewhere/pkg")
	if ok {
		t.Fatal("expected no move when buffer dir is outside scope")
	}
	if len(sink.Messages()) != 1 {
		t.Errorf("expected one warning, got %d", len(sink.Messages()))
	}
}

func TestDescendSiblingPrefix(t *testing.T) {
	// "/repo/int" is a string prefix of "/repo/internal" but not an
	// ancestor directory; the path-aware check must reject it.
	nav := NewNavigator("/repo/int", notify.NewMemory())

	_, ok := nav.DescendToBuffer("", "/repo/internal")
	if ok {
		t.Fatal("expected no move for sibling with shared name prefix")
	}
}

func TestAscendThenDescendRoundTrip(t *testing.T) {
	bufferDir := "/repo/internal/scope"
	nav := NewNavigator("/repo/internal", notify.NewMemory())

	up, ok := nav.Ascend("q")
	if !ok {
		t.Fatal("ascend failed")
	}

	nav = NewNavigator(up.Scope, notify.NewMemory())
	down, ok := nav.DescendToBuffer(up.Query, bufferDir)
	if !ok {
		t.Fatal("descend failed")
	}

	if !IsAncestorOrEqual(down.Scope, bufferDir) {
		t.Errorf("descend landed at %q, not an ancestor of %q", down.Scope, bufferDir)
	}
	if !IsAncestorOrEqual(up.Scope, down.Scope) {
		t.Errorf("descend escaped the ascended scope: %q vs %q", down.Scope, up.Scope)
	}
}

func TestIsAncestorOrEqual(t *testing.T) {
	tests := []struct {
		ancestor string
		dir      string
		want     bool
	}{
		{"/repo", "/repo", true},
		{"/repo", "/repo/internal", true},
		{"/repo", "/repo/internal/deep", true},
		{"/", "/anything", true},
		{"/repo/internal", "/repo", false},
		{"/repo/int", "/repo/internal", false},
		{"/a", "/b", false},
	}

	for _, tt := range tests {
		if got := IsAncestorOrEqual(tt.ancestor, tt.dir); got != tt.want {
			t.Errorf("IsAncestorOrEqual(%q, %q) = %v, want %v", tt.ancestor, tt.dir, got, tt.want)
		}
	}
}
