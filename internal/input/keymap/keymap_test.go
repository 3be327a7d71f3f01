package keymap

import (
	"testing"

	"github.com/dshills/scout/internal/input/key"
)

func TestDefaultBindings(t *testing.T) {
	km := Default("files", "grep")

	ev, _ := key.Parse("C-o")
	action, ok := km.Lookup("files", ev)
	if !ok || action != ActionAscend {
		t.Errorf("C-o in files: got (%q, %v)", action, ok)
	}

	action, ok = km.Lookup("grep", ev)
	if !ok || action != ActionAscend {
		t.Errorf("C-o in grep: got (%q, %v)", action, ok)
	}
}

func TestLookupUnknownKind(t *testing.T) {
	km := Default("files")

	ev, _ := key.Parse("C-o")
	if _, ok := km.Lookup("dirs", ev); ok {
		t.Error("unbound kind should not resolve")
	}
}

func TestBindReplaces(t *testing.T) {
	km := Default("files")
	if err := km.Bind("files", "C-o", ActionClose); err != nil {
		t.Fatal(err)
	}

	ev, _ := key.Parse("C-o")
	action, _ := km.Lookup("files", ev)
	if action != ActionClose {
		t.Errorf("rebind ignored: got %q", action)
	}
}

func TestBindInvalidChord(t *testing.T) {
	km := New()
	if err := km.Bind("files", "not a chord", ActionClose); err == nil {
		t.Error("expected error for malformed chord")
	}
}

func TestTextKeysNotBound(t *testing.T) {
	km := Default("files")

	ev, _ := key.Parse("a")
	if _, ok := km.Lookup("files", ev); ok {
		t.Error("plain letters must stay free for query input")
	}
}
