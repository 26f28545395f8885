package engine

import (
	"fmt"
	"sort"

	"github.com/atomicstack/update-all/internal/logging"
	"github.com/atomicstack/update-all/internal/logging/events"
)

// OutcomeKind classifies what a resolved chain asks the runtime to do.
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeClear
	OutcomeBack
	OutcomeAbort
	OutcomeExitAndRun
	OutcomeScreen
	OutcomeInline
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeClear:
		return "clear_window"
	case OutcomeBack:
		return TargetBack
	case OutcomeAbort:
		return TargetAbort
	case OutcomeExitAndRun:
		return TargetExitAndRun
	case OutcomeScreen:
		return "screen"
	case OutcomeInline:
		return TemporaryScreen
	default:
		return "none"
	}
}

// Outcome is the result of resolving a chain. Target is set for
// OutcomeScreen and Screen for OutcomeInline.
type Outcome struct {
	Kind   OutcomeKind
	Target string
	Screen *Screen
}

// Navigates reports whether the outcome changes the active screen or ends
// the session. Such outcomes stop a chain.
func (o Outcome) Navigates() bool {
	return o.Kind >= OutcomeBack
}

// EffectFunc handles a custom effect. A returned error aborts the session.
type EffectFunc func(e Custom) error

// EffectRegistry maps custom effect names to host callbacks.
type EffectRegistry map[string]EffectFunc

func (r EffectRegistry) Register(name string, fn EffectFunc) {
	r[name] = fn
}

// Names lists the registered effect names in sorted order.
func (r EffectRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EntrySelector moves a menu cursor to the entry carrying id.
type EntrySelector interface {
	SelectEntry(id string) bool
}

// Resolver evaluates effect chains for one screen.
type Resolver struct {
	store     *Store
	variables map[string]Variable
	effects   EffectRegistry
	items     map[string]*Screen
	selector  EntrySelector
}

// NewResolver binds a resolver to the shared store, the variable scope of
// the screen, the host effects and the navigable item ids.
func NewResolver(store *Store, variables map[string]Variable, effects EffectRegistry, items map[string]*Screen) *Resolver {
	if effects == nil {
		effects = EffectRegistry{}
	}
	return &Resolver{store: store, variables: variables, effects: effects, items: items}
}

// SetSelector attaches the section that handles select effects.
func (r *Resolver) SetSelector(s EntrySelector) {
	r.selector = s
}

// ResolveChain evaluates chain in order. A condition ends the chain with its
// branch outcome, and so does the first navigating outcome. Otherwise the
// chain yields OutcomeClear when a rotation changed a value.
func (r *Resolver) ResolveChain(chain Chain) (Outcome, error) {
	result := Outcome{}
	for _, e := range chain {
		out, err := r.resolve(e)
		if err != nil {
			return Outcome{}, err
		}
		if _, ok := e.(Condition); ok || out.Navigates() {
			return out, nil
		}
		if out.Kind == OutcomeClear {
			result = out
		}
	}
	return result, nil
}

// ResolveAction resolves the chain an action dispatches to for entry.
func (r *Resolver) ResolveAction(a Action, entry *Entry) (Outcome, error) {
	chain, err := ActionChain(a, entry)
	if err != nil {
		return Outcome{}, err
	}
	return r.ResolveChain(chain)
}

// ActionChain returns the chain a symbol or fixed action dispatches to.
func ActionChain(a Action, entry *Entry) (Chain, error) {
	switch a.Type {
	case ActionFixed:
		return a.Fixed, nil
	case ActionSymbol:
		if entry == nil || entry.Actions == nil {
			return nil, configErrorf("", "action %q: selection has no actions to link symbol %q", a.Title, a.Symbol)
		}
		chain, ok := entry.Actions[a.Symbol]
		if !ok {
			return nil, configErrorf("", "action %q: entry %q has no action for symbol %q", a.Title, entry.Title, a.Symbol)
		}
		return chain, nil
	}
	return nil, configErrorf("", "action %q has invalid type %q", a.Title, a.Type)
}

func (r *Resolver) resolve(e Effect) (Outcome, error) {
	switch t := e.(type) {
	case Condition:
		return r.condition(t)
	case Navigate:
		return r.navigate(t.Target)
	case RotateVariable:
		return r.rotate(t.Target)
	case Select:
		if r.selector == nil {
			return Outcome{}, configErrorf("", "select %q used outside a menu", t.Target)
		}
		if !r.selector.SelectEntry(t.Target) {
			return Outcome{}, configErrorf("", "select: no entry with id %q", t.Target)
		}
		return Outcome{}, nil
	case Inline:
		if t.Screen == nil {
			return Outcome{}, configErrorf("", "inline screen without content")
		}
		return Outcome{Kind: OutcomeInline, Screen: t.Screen}, nil
	case Custom:
		fn, ok := r.effects[t.Name]
		if !ok {
			return Outcome{}, configErrorf("", "unknown effect type %q", t.Name)
		}
		events.Effect.Custom(t.Name, t.Params)
		if err := fn(t); err != nil {
			events.Effect.Error(t.Name, err)
			return Outcome{}, fmt.Errorf("effect %s: %w", t.Name, err)
		}
		return Outcome{}, nil
	}
	return Outcome{}, configErrorf("", "unsupported effect %T", e)
}

func (r *Resolver) condition(c Condition) (Outcome, error) {
	value, ok := r.store.Lookup(c.Variable)
	if !ok {
		return Outcome{}, configErrorf("", "condition on unknown variable %q", c.Variable)
	}
	b, isBool := value.Bool()
	if !isBool {
		return Outcome{}, configErrorf("", "condition on %q needs true or false, found %q", c.Variable, value.String())
	}
	events.Effect.Condition(c.Variable, b)
	if b {
		return r.ResolveChain(c.True)
	}
	return r.ResolveChain(c.False)
}

func (r *Resolver) navigate(target string) (Outcome, error) {
	events.Effect.Navigate(target)
	switch target {
	case TargetBack:
		return Outcome{Kind: OutcomeBack}, nil
	case TargetAbort:
		return Outcome{Kind: OutcomeAbort}, nil
	case TargetExitAndRun:
		return Outcome{Kind: OutcomeExitAndRun}, nil
	}
	if _, ok := r.items[target]; !ok {
		return Outcome{}, configErrorf("", "navigate to unknown screen %q", target)
	}
	return Outcome{Kind: OutcomeScreen, Target: target}, nil
}

func (r *Resolver) rotate(name string) (Outcome, error) {
	decl, ok := r.variables[name]
	if !ok || len(decl.Values) == 0 {
		return Outcome{}, configErrorf("", "rotate_variable %q has no declared values", name)
	}
	current := r.store.Get(name).String()
	next := decl.Values[0]
	idx := indexOf(decl.Values, current)
	if idx < 0 {
		logging.Warn("rotate_variable %s: value %q is not one of %v, restarting at %q", name, current, decl.Values, next)
	} else {
		next = decl.Values[(idx+1)%len(decl.Values)]
	}
	if next == current {
		return Outcome{}, nil
	}
	r.store.Set(name, ParseValue(next))
	events.Effect.Rotate(name, current, next)
	return Outcome{Kind: OutcomeClear}, nil
}

func indexOf(values []string, v string) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return -1
}
