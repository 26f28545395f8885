package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/update-all/internal/engine"
	"github.com/atomicstack/update-all/internal/logging/events"
)

const keyBufferSize = 64

// ErrClosed is returned by Draw and Clear once the program is gone.
var ErrClosed = errors.New("tui: backend closed")

type eventKind int

const (
	eventFrame eventKind = iota
	eventClear
)

type backendEvent struct {
	kind  eventKind
	frame engine.Frame
}

// Backend bridges the engine goroutine and the Bubble Tea program.
type Backend struct {
	events   chan backendEvent
	keys     chan engine.Key
	done     <-chan struct{}
	finished chan struct{}
	once     sync.Once

	exit engine.Exit
	err  error
}

// NewBackend returns a backend whose Draw and Clear give up once ctx ends.
func NewBackend(ctx context.Context) *Backend {
	return &Backend{
		events:   make(chan backendEvent),
		keys:     make(chan engine.Key, keyBufferSize),
		done:     ctx.Done(),
		finished: make(chan struct{}),
	}
}

var _ engine.Drawer = (*Backend)(nil)

func (b *Backend) Draw(f engine.Frame) error {
	return b.send(backendEvent{kind: eventFrame, frame: f})
}

func (b *Backend) Clear() error {
	return b.send(backendEvent{kind: eventClear})
}

func (b *Backend) send(evt backendEvent) error {
	select {
	case b.events <- evt:
		return nil
	case <-b.done:
		return ErrClosed
	}
}

// ReadKey blocks until the program forwards a key or ctx ends.
func (b *Backend) ReadKey(ctx context.Context) (engine.Key, error) {
	select {
	case k := <-b.keys:
		return k, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// SendKey queues k for the engine. Keys are dropped when the engine falls
// behind by more than the buffer.
func (b *Backend) SendKey(k engine.Key) bool {
	select {
	case b.keys <- k:
		return true
	default:
		events.Backend.KeyDropped(string(k))
		return false
	}
}

// Start runs the engine session on its own goroutine.
func (b *Backend) Start(ctx context.Context, run func(context.Context) (engine.Exit, error)) {
	go func() {
		exit, err := run(ctx)
		b.finish(exit, err)
	}()
}

func (b *Backend) finish(exit engine.Exit, err error) {
	b.once.Do(func() {
		b.exit, b.err = exit, err
		events.Backend.Done(exit.String(), err)
		close(b.finished)
	})
}

// Finished is closed once the engine session has returned.
func (b *Backend) Finished() <-chan struct{} {
	return b.finished
}

// Result returns how the session ended. It is only meaningful after
// Finished is closed.
func (b *Backend) Result() (engine.Exit, error) {
	<-b.finished
	return b.exit, b.err
}

func waitForBackendEvent(b *Backend) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-b.events:
			return backendEventMsg{event: evt}
		case <-b.finished:
			return backendDoneMsg{}
		}
	}
}

type backendEventMsg struct {
	event backendEvent
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(backendDoneMsg); !ok {
		return nil
	}
	m.finished = true
	if m.backend != nil {
		m.exit, m.err = m.backend.Result()
	}
	return tea.Quit
}

func (m *Model) applyBackendEvent(evt backendEvent) {
	switch evt.kind {
	case eventClear:
		m.frame = nil
	case eventFrame:
		f := evt.frame
		m.frame = &f
		m.frames++
		events.UI.Frame(f.UI, f.Header, len(f.Entries), len(f.Actions))
	}
}
