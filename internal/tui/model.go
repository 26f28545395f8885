package tui

import (
	"reflect"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/update-all/internal/engine"
	"github.com/atomicstack/update-all/internal/logging/events"
	"github.com/atomicstack/update-all/internal/theme"
)

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the program. Zero width or height follow the terminal.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Styles     *theme.Styles
}

// Model implements the Bubble Tea model that mirrors the engine's frames.
type Model struct {
	backend     *Backend
	styles      *theme.Styles
	keys        keyMap
	help        help.Model
	frame       *engine.Frame
	frames      int
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	finished    bool
	interrupted bool
	exit        engine.Exit
	err         error

	handlers map[reflect.Type]msgHandler
}

// NewModel prepares a model reading frames from b. A nil backend is allowed
// for rendering frames delivered by other means.
func NewModel(b *Backend, opts Options) *Model {
	styles := opts.Styles
	if styles == nil {
		styles = theme.Default()
	}
	m := &Model{
		backend:    b,
		styles:     styles,
		keys:       defaultKeyMap(),
		help:       help.New(),
		showFooter: opts.ShowFooter,
		exit:       engine.ExitAbort,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.help.Width = m.width
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend == nil {
		return nil
	}
	return waitForBackendEvent(m.backend)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		m.interrupted = true
		return tea.Quit
	}
	if m.finished {
		return nil
	}
	k, ok := keyFromMsg(keyMsg)
	if !ok {
		return nil
	}
	events.UI.Key(string(k))
	if m.backend != nil {
		m.backend.SendKey(k)
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	events.UI.Resize(m.width, m.height)
	return nil
}

// Frame returns the frame on screen, or nil after a clear.
func (m *Model) Frame() *engine.Frame {
	return m.frame
}

// Finished reports whether the engine session has returned.
func (m *Model) Finished() bool {
	return m.finished
}

// Interrupted reports whether the user quit with ctrl+c.
func (m *Model) Interrupted() bool {
	return m.interrupted
}

// Result returns the engine outcome recorded when the session finished.
func (m *Model) Result() (engine.Exit, error) {
	return m.exit, m.err
}
