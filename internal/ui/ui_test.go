package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scout/internal/input/key"
	"github.com/dshills/scout/internal/notify"
	"github.com/dshills/scout/internal/picker"
)

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	runes := make([]rune, 0, width)
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) > 0 {
			runes = append(runes, c.Runes[0])
		}
	}
	return string(runes)
}

func TestRenderFrame(t *testing.T) {
	screen := simScreen(t)
	u := New(screen)

	u.Render(picker.Frame{
		SessionID: "s1",
		Kind:      picker.KindFiles,
		Title:     "files",
		Root:      "/repo",
		Query:     "ma",
		Rows: []picker.Row{
			{Entry: picker.Entry{Text: "main.go"}, Positions: []int{0, 1}},
		},
	})

	if got := rowText(screen, 0); got[:len("files [/repo]")] != "files [/repo]" {
		t.Errorf("title row = %q", got)
	}
	if got := rowText(screen, 1); got[:len("> ma")] != "> ma" {
		t.Errorf("prompt row = %q", got)
	}
	if got := rowText(screen, 2); got[:len("main.go")] != "main.go" {
		t.Errorf("list row = %q", got)
	}
}

func TestCloseSessionClearsFrame(t *testing.T) {
	screen := simScreen(t)
	u := New(screen)

	u.Render(picker.Frame{SessionID: "s1", Rows: []picker.Row{{Entry: picker.Entry{Text: "x"}}}})
	u.CloseSession("s1")

	if got := rowText(screen, 2); len(got) > 0 && got[0] == 'x' {
		t.Error("closed session still drawn")
	}
}

func TestNotifyFillsStatusRow(t *testing.T) {
	screen := simScreen(t)
	u := New(screen)

	u.Notify(notify.Message{Level: notify.LevelWarn, Text: "already at filesystem root"})

	got := rowText(screen, 23)
	want := "already at filesystem root"
	if got[:len(want)] != want {
		t.Errorf("status row = %q", got)
	}
}

func TestFilterPromptLifecycle(t *testing.T) {
	screen := simScreen(t)
	u := New(screen)

	u.Render(picker.Frame{SessionID: "g1", Kind: picker.KindGrep})
	u.PromptFilter("g1")
	if !u.FilterPromptOpen() {
		t.Fatal("prompt should be open")
	}

	for _, r := range "+*.go" {
		u.HandleFilterKey(key.Event{Code: key.CodeRune, Rune: r})
	}
	line, done := u.HandleFilterKey(key.Event{Code: key.CodeEnter})
	if !done || line != "+*.go" {
		t.Errorf("got (%q, %v)", line, done)
	}
	if u.FilterPromptOpen() {
		t.Error("prompt should close on submit")
	}
}

func TestFilterPromptEscapeCancels(t *testing.T) {
	screen := simScreen(t)
	u := New(screen)

	u.PromptFilter("g1")
	u.HandleFilterKey(key.Event{Code: key.CodeRune, Rune: 'x'})
	line, done := u.HandleFilterKey(key.Event{Code: key.CodeEscape})
	if done || line != "" {
		t.Errorf("escape must cancel, got (%q, %v)", line, done)
	}
	if u.FilterPromptOpen() {
		t.Error("prompt should close on escape")
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		in   *tcell.EventKey
		want key.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), key.Event{Code: key.CodeRune, Rune: 'a'}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.Event{Code: key.CodeEnter}},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.Event{Code: key.CodeEscape}},
		{"ctrl-o", tcell.NewEventKey(tcell.KeyCtrlO, 0, tcell.ModCtrl), key.Event{Code: key.CodeRune, Rune: 'o', Mods: key.ModCtrl}},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), key.Event{Code: key.CodeUp}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.Event{Code: key.CodeBackspace}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TranslateKey(tt.in)
			if !ok {
				t.Fatal("expected translation")
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"longer than ten", 10, "longer th…"},
		{"anything", 0, ""},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
