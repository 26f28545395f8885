package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/update-all/internal/engine"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev action")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next action")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// bindingsFor lists the footer hints that apply to a section kind.
func (k keyMap) bindingsFor(ui string) []key.Binding {
	switch ui {
	case engine.UIMenu:
		return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Select, k.Back, k.Quit}
	case engine.UIConfirm:
		return []key.Binding{k.Left, k.Right, k.Select, k.Quit}
	default:
		return []key.Binding{k.Select, k.Quit}
	}
}

// keyFromMsg converts a Bubble Tea key press into the engine's key names.
// The second result is false for presses the engine has no name for.
func keyFromMsg(msg tea.KeyMsg) (engine.Key, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return engine.KeyUp, true
	case tea.KeyDown:
		return engine.KeyDown, true
	case tea.KeyLeft:
		return engine.KeyLeft, true
	case tea.KeyRight:
		return engine.KeyRight, true
	case tea.KeyEnter:
		return engine.KeyEnter, true
	case tea.KeyEsc:
		return engine.KeyEsc, true
	case tea.KeyTab:
		return engine.KeyTab, true
	case tea.KeySpace:
		return engine.KeySpace, true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return engine.Key(string(msg.Runes)), true
		}
	}
	return "", false
}
