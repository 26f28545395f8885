package engine

// Concrete section kinds understood by the built-in section factory.
const (
	UIMenu    = "menu"
	UIConfirm = "confirm"
	UIMessage = "message"
)

// Reserved navigation targets.
const (
	TargetBack       = "back"
	TargetAbort      = "abort"
	TargetExitAndRun = "exit_and_run"
)

// TemporaryScreen is the id under which inline screens become active.
const TemporaryScreen = "@temporary"

// Model is the declarative description of every screen.
type Model struct {
	Items      map[string]*Screen
	BaseTypes  map[string]*Screen
	Formatters map[string]Formatter
	Variables  map[string]Variable
}

// Formatter maps a raw value to its display text. Text may contain {0}, {1}
// placeholders when used with arguments.
type Formatter map[string]string

// Variable declares a value in the store.
type Variable struct {
	Default string
	Values  []string
	Group   string
	Rename  string
}

// Screen is one menu, confirmation or message. UI names either a concrete
// kind or a base type until expansion has run.
type Screen struct {
	UI                string
	Header            string
	Text              []string
	Entries           []Entry
	Actions           []Action
	Hotkeys           []Hotkey
	Variables         map[string]Variable
	Formatters        map[string]Formatter
	Effects           Chain
	PreselectedAction string
	ActionName        string
}

// Entry is a selectable menu row.
type Entry struct {
	ID          string
	Title       string
	Description string
	Actions     map[string]Chain
}

type ActionType string

const (
	ActionSymbol ActionType = "symbol"
	ActionFixed  ActionType = "fixed"
)

// Action is a button in the lateral action row.
type Action struct {
	Title  string
	Type   ActionType
	Symbol string
	Fixed  Chain
}

// Hotkey binds keys to a chain regardless of cursor position.
type Hotkey struct {
	Keys  []Key
	Chain Chain
}

// Chain is an ordered list of effects.
type Chain []Effect

// Effect is one declarative operation. The concrete types below are the only
// implementations.
type Effect interface {
	EffectType() string
}

// Condition branches on a boolean variable.
type Condition struct {
	Variable string
	True     Chain
	False    Chain
}

// Navigate requests a screen id or one of the reserved targets.
type Navigate struct {
	Target string
}

// RotateVariable advances a variable to its next declared value.
type RotateVariable struct {
	Target string
}

// Select moves the menu cursor to the entry carrying the given id.
type Select struct {
	Target string
}

// Inline pushes an ad hoc screen.
type Inline struct {
	Screen *Screen
}

// Custom is dispatched to a host callback registered under Name.
type Custom struct {
	Name   string
	Params map[string]any
}

func (Condition) EffectType() string      { return "condition" }
func (Navigate) EffectType() string       { return "navigate" }
func (RotateVariable) EffectType() string { return "rotate_variable" }
func (Select) EffectType() string         { return "select" }
func (e Inline) EffectType() string {
	if e.Screen == nil {
		return ""
	}
	return e.Screen.UI
}
func (e Custom) EffectType() string { return e.Name }

// Param returns a string parameter of a custom effect.
func (e Custom) Param(name string) string {
	v, ok := e.Params[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ValueOf(v).String()
}

// IsReservedTarget reports whether target is back, abort or exit_and_run.
func IsReservedTarget(target string) bool {
	switch target {
	case TargetBack, TargetAbort, TargetExitAndRun:
		return true
	}
	return false
}

// IsConcreteUI reports whether ui is a kind the built-in sections handle.
func IsConcreteUI(ui string) bool {
	switch ui {
	case UIMenu, UIConfirm, UIMessage:
		return true
	}
	return false
}
