package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	harnessSettle  = 20 * time.Millisecond
	harnessTimeout = 2 * time.Second
)

// Harness drives the model programmatically for integration tests. Commands
// run synchronously, except one that is still blocked after a short settle
// time: that is the backend wait, which is parked and resumed by Await.
type Harness struct {
	model   *Model
	pending chan tea.Msg
	quit    bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Start runs the model's Init command.
func (h *Harness) Start() {
	h.processCmd(h.model.Init())
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		h.handle(msg)
	case <-time.After(harnessSettle):
		h.pending = ch
	}
}

func (h *Harness) handle(msg tea.Msg) {
	switch m := msg.(type) {
	case nil:
	case tea.QuitMsg:
		h.quit = true
	case tea.BatchMsg:
		for _, cmd := range m {
			h.processCmd(cmd)
		}
	default:
		h.Send(msg)
	}
}

// Await resumes the parked backend wait until cond holds. It reports false
// when cond still fails after the timeout or nothing is left to wait for.
func (h *Harness) Await(cond func(*Model) bool) bool {
	deadline := time.After(harnessTimeout)
	for !cond(h.model) {
		if h.pending == nil {
			return false
		}
		ch := h.pending
		h.pending = nil
		select {
		case msg := <-ch:
			h.handle(msg)
		case <-deadline:
			h.pending = ch
			return false
		}
	}
	return true
}

// Quit reports whether the model asked the program to quit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
