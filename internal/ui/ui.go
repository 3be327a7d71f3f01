// Package ui renders picker sessions on a tcell screen.
//
// The layout is four regions: a title row, the prompt row with the live
// query (or the filter line while the filter prompt is open), the result
// list with match highlighting, and a status row carrying the latest
// notification.
package ui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scout/internal/input/key"
	"github.com/dshills/scout/internal/notify"
	"github.com/dshills/scout/internal/picker"
)

// UI draws frames and collects notifications. It implements picker.View
// and notify.Sink.
type UI struct {
	mu     sync.Mutex
	screen tcell.Screen

	frame    *picker.Frame
	status   string
	statusLv notify.Level

	filterSession string
	filterLine    []rune
}

// New creates a UI on the given screen. The screen must already be
// initialized.
func New(screen tcell.Screen) *UI {
	return &UI{screen: screen}
}

// Render implements picker.View.
func (u *UI) Render(frame picker.Frame) {
	u.mu.Lock()
	u.frame = &frame
	u.mu.Unlock()
	u.draw()
}

// CloseSession implements picker.View.
func (u *UI) CloseSession(id string) {
	u.mu.Lock()
	if u.frame != nil && u.frame.SessionID == id {
		u.frame = nil
	}
	if u.filterSession == id {
		u.filterSession = ""
		u.filterLine = nil
	}
	u.mu.Unlock()
	u.draw()
}

// PromptFilter implements picker.View.
func (u *UI) PromptFilter(id string) {
	u.mu.Lock()
	u.filterSession = id
	u.filterLine = nil
	u.mu.Unlock()
	u.draw()
}

// Notify implements notify.Sink. The latest message wins the status row.
func (u *UI) Notify(msg notify.Message) {
	u.mu.Lock()
	u.status = msg.Text
	u.statusLv = msg.Level
	u.mu.Unlock()
	u.draw()
}

// Redraw repaints the current state, after a resize.
func (u *UI) Redraw() {
	u.draw()
}

// FilterPromptOpen reports whether the filter prompt is capturing input.
func (u *UI) FilterPromptOpen() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.filterSession != ""
}

// HandleFilterKey feeds one keypress into the filter prompt. When the
// user submits, line holds the raw filter text and done is true; escape
// closes the prompt with done false.
func (u *UI) HandleFilterKey(ev key.Event) (line string, done bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch {
	case ev.Code == key.CodeEnter:
		line = string(u.filterLine)
		u.filterSession = ""
		u.filterLine = nil
		return line, true
	case ev.Code == key.CodeEscape:
		u.filterSession = ""
		u.filterLine = nil
		return "", false
	case ev.Code == key.CodeBackspace:
		if len(u.filterLine) > 0 {
			u.filterLine = u.filterLine[:len(u.filterLine)-1]
		}
	case ev.IsText():
		u.filterLine = append(u.filterLine, ev.Rune)
	}

	return "", false
}

// TranslateKey converts a tcell key event into a key.Event. The second
// return is false for keys the picker does not consume.
func TranslateKey(ev *tcell.EventKey) (key.Event, bool) {
	var mods key.Mod
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		return key.Event{Code: key.CodeEnter, Mods: mods}, true
	case tcell.KeyEscape:
		return key.Event{Code: key.CodeEscape, Mods: mods}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.Event{Code: key.CodeBackspace, Mods: mods}, true
	case tcell.KeyTab:
		return key.Event{Code: key.CodeTab, Mods: mods}, true
	case tcell.KeyUp:
		return key.Event{Code: key.CodeUp, Mods: mods}, true
	case tcell.KeyDown:
		return key.Event{Code: key.CodeDown, Mods: mods}, true
	case tcell.KeyRune:
		return key.Event{Code: key.CodeRune, Rune: ev.Rune(), Mods: mods}, true
	}

	// Ctrl-letter chords arrive as dedicated key codes.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := rune('a' + (ev.Key() - tcell.KeyCtrlA))
		return key.Event{Code: key.CodeRune, Rune: r, Mods: mods | key.ModCtrl}, true
	}

	return key.Event{}, false
}

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Bold(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleMatch    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleWarn     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleError    = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// draw repaints the whole screen from the current frame.
func (u *UI) draw() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.screen.Clear()
	width, height := u.screen.Size()
	if width == 0 || height == 0 {
		u.screen.Show()
		return
	}

	if u.frame != nil {
		u.drawFrame(*u.frame, width, height)
	}
	u.drawStatus(width, height)
	u.screen.Show()
}

func (u *UI) drawFrame(frame picker.Frame, width, height int) {
	title := fmt.Sprintf("%s [%s]", frame.Title, frame.Root)
	u.putLine(0, Truncate(title, width), styleTitle, nil)

	prompt := "> " + frame.Query
	if u.filterSession != "" {
		prompt = "filter> " + string(u.filterLine)
	}
	u.putLine(1, Truncate(prompt, width), styleDefault, nil)

	listTop := 2
	listHeight := height - listTop - 1
	for i := 0; i < listHeight && i < len(frame.Rows); i++ {
		row := frame.Rows[i]
		style := styleDefault
		if i == frame.Selected {
			style = styleSelected
		}
		u.putLine(listTop+i, Truncate(row.Entry.Text, width), style, row.Positions)
	}
}

func (u *UI) drawStatus(width, height int) {
	if u.status == "" || height < 2 {
		return
	}
	style := styleDefault
	switch u.statusLv {
	case notify.LevelWarn:
		style = styleWarn
	case notify.LevelError:
		style = styleError
	}
	u.putLine(height-1, Truncate(u.status, width), style, nil)
}

// putLine writes text on row y, highlighting the given rune positions.
func (u *UI) putLine(y int, text string, style tcell.Style, highlights []int) {
	hl := make(map[int]bool, len(highlights))
	for _, p := range highlights {
		hl[p] = true
	}

	x := 0
	for i, r := range []rune(text) {
		s := style
		if hl[i] {
			s = styleMatch
		}
		u.screen.SetContent(x, y, r, nil, s)
		x++
	}
}
