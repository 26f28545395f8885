package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/update-all/internal/engine"
	"github.com/atomicstack/update-all/internal/logging"
	"github.com/atomicstack/update-all/internal/theme"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tui-test")
	if err == nil {
		logging.Configure(filepath.Join(dir, "tui.log"))
	}
	code := m.Run()
	if err == nil {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}

func plainModel(b *Backend, width, height int) *Model {
	return NewModel(b, Options{Width: width, Height: height, Styles: theme.Plain()})
}

func TestKeyFromMsg(t *testing.T) {
	cases := []struct {
		msg  tea.KeyMsg
		want engine.Key
		ok   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, engine.KeyUp, true},
		{tea.KeyMsg{Type: tea.KeyDown}, engine.KeyDown, true},
		{tea.KeyMsg{Type: tea.KeyLeft}, engine.KeyLeft, true},
		{tea.KeyMsg{Type: tea.KeyRight}, engine.KeyRight, true},
		{tea.KeyMsg{Type: tea.KeyEnter}, engine.KeyEnter, true},
		{tea.KeyMsg{Type: tea.KeyEsc}, engine.KeyEsc, true},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, engine.KeySpace, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, engine.Key("q"), true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, "", false},
		{tea.KeyMsg{Type: tea.KeyF5}, "", false},
	}
	for _, tc := range cases {
		got, ok := keyFromMsg(tc.msg)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("keyFromMsg(%q): expected %q/%v, got %q/%v", tc.msg.String(), tc.want, tc.ok, got, ok)
		}
	}
}

func TestViewRendersMenuFrame(t *testing.T) {
	m := plainModel(nil, 0, 0)
	h := NewHarness(m)
	h.Send(backendEventMsg{event: backendEvent{kind: eventFrame, frame: engine.Frame{
		UI:     engine.UIMenu,
		Header: "Update All 2.0 Settings",
		Entries: []engine.FrameEntry{
			{Title: "1 Main Distribution", Description: "Enabled.  Main MiSTer cores", Selected: true},
			{Title: "2 JTCORES", Description: "Disabled. Cores made by Jotego"},
		},
		Actions: []engine.FrameAction{{Title: "Select", Selected: true}, {Title: "Toggle"}},
	}}})

	view := h.View()
	for _, want := range []string{
		"Update All 2.0 Settings",
		"> 1 Main Distribution  Enabled.  Main MiSTer cores",
		"  2 JTCORES            Disabled. Cores made by Jotego",
		"<Select>",
		"<Toggle>",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
	if h.Model().frames != 1 {
		t.Fatalf("expected 1 frame, got %d", h.Model().frames)
	}
}

func TestViewRendersMessageText(t *testing.T) {
	m := plainModel(nil, 0, 0)
	m.applyBackendEvent(backendEvent{kind: eventFrame, frame: engine.Frame{
		UI:      engine.UIMessage,
		Text:    []string{"Pressed ESC/Abort", "Closing Update All..."},
		Actions: []engine.FrameAction{{Title: "Ok", Selected: true}},
	}})
	view := m.View()
	if !strings.Contains(view, "Closing Update All...") || !strings.Contains(view, "<Ok>") {
		t.Fatalf("unexpected view:\n%s", view)
	}

	m.applyBackendEvent(backendEvent{kind: eventClear})
	if m.View() != "" {
		t.Fatalf("expected empty view after clear, got %q", m.View())
	}
}

func TestViewRespectsSize(t *testing.T) {
	m := plainModel(nil, 12, 3)
	m.applyBackendEvent(backendEvent{kind: eventFrame, frame: engine.Frame{
		UI:   engine.UIConfirm,
		Text: []string{"Do you really want to abort Update All without saving your changes?", "a", "b", "c"},
	}})
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	for _, line := range lines {
		if w := len([]rune(line)); w > 12 {
			t.Fatalf("expected lines of at most 12 cells, got %d: %q", w, line)
		}
	}
	if lines[2] != ellipsis {
		t.Fatalf("expected ellipsis on last line, got %q", lines[2])
	}
}

func TestFooterListsBindingsForSection(t *testing.T) {
	m := NewModel(nil, Options{ShowFooter: true, Styles: theme.Plain()})
	m.applyBackendEvent(backendEvent{kind: eventFrame, frame: engine.Frame{UI: engine.UIConfirm, Text: []string{"Sure?"}}})
	view := m.View()
	if !strings.Contains(view, "select") || strings.Contains(view, "down") {
		t.Fatalf("unexpected confirm footer:\n%s", view)
	}
}

func TestWindowSizeIgnoredWhenFixed(t *testing.T) {
	m := plainModel(nil, 40, 0)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.width != 40 || m.height != 30 {
		t.Fatalf("expected 40x30, got %dx%d", m.width, m.height)
	}
}

func TestKeysAreForwardedToBackend(t *testing.T) {
	b := NewBackend(context.Background())
	m := plainModel(b, 0, 0)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyF5})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	for _, want := range []engine.Key{engine.KeyDown, "x"} {
		got, err := b.ReadKey(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
	if len(b.keys) != 0 {
		t.Fatalf("expected no more keys, got %d", len(b.keys))
	}
}

func TestSendKeyDropsWhenFull(t *testing.T) {
	b := NewBackend(context.Background())
	for i := 0; i < keyBufferSize; i++ {
		if !b.SendKey(engine.KeyUp) {
			t.Fatalf("expected key %d to be queued", i)
		}
	}
	if b.SendKey(engine.KeyUp) {
		t.Fatalf("expected key to be dropped once the buffer is full")
	}
}

func TestDrawGivesUpAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := NewBackend(ctx)
	cancel()
	if err := b.Draw(engine.Frame{}); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if _, err := b.ReadKey(ctx); err == nil {
		t.Fatalf("expected context error from ReadKey")
	}
}
