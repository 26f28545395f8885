package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomicstack/update-all/internal/logging/events"
)

// Exit tells the caller how a session ended.
type Exit int

const (
	// ExitBack means back was requested with an empty history.
	ExitBack Exit = iota
	// ExitAndRun means the caller should go on and run the updater.
	ExitAndRun
	// ExitAbort means the session was abandoned.
	ExitAbort
)

func (e Exit) String() string {
	switch e {
	case ExitAndRun:
		return TargetExitAndRun
	case ExitAbort:
		return TargetAbort
	default:
		return TargetBack
	}
}

// UI is the value store handed to host components.
type UI interface {
	Get(key string) Value
	Set(key string, value any)
	RefreshScreen()
}

// Component is a host collaborator that seeds values and registers custom
// effects.
type Component interface {
	InitializeUI(ui UI) error
	InitializeEffects(ui UI, effects EffectRegistry)
}

// Host performs one-time setup before the first screen is shown.
type Host interface {
	InitializeUI(ui UI) ([]Component, SectionFactory, error)
}

// HostFunc adapts a function to Host.
type HostFunc func(ui UI) ([]Component, SectionFactory, error)

func (f HostFunc) InitializeUI(ui UI) ([]Component, SectionFactory, error) {
	return f(ui)
}

// Run shows entrypoint and drives the model until a terminal outcome.
func Run(ctx context.Context, entrypoint string, model *Model, host Host) (Exit, error) {
	return NewRuntime(model).Run(ctx, entrypoint, host)
}

type activeScreen struct {
	section  Section
	resolver *Resolver
}

// Runtime owns the history stack, the screen cache and the value store.
type Runtime struct {
	model      *Model
	store      *Store
	components []Component
	factory    SectionFactory

	current   string
	history   []string
	screens   map[string]*activeScreen
	temporary *activeScreen
	refresh   bool
}

// NewRuntime seeds a value store from the model defaults.
func NewRuntime(model *Model) *Runtime {
	return &Runtime{
		model:   model,
		store:   NewStoreFromModel(model),
		screens: make(map[string]*activeScreen),
	}
}

func (rt *Runtime) Get(key string) Value {
	return rt.store.Get(key)
}

func (rt *Runtime) Set(key string, value any) {
	rt.store.Set(key, value)
}

// RefreshScreen clears the active section once the running chain resolves.
func (rt *Runtime) RefreshScreen() {
	rt.refresh = true
}

// Store exposes the underlying value store.
func (rt *Runtime) Store() *Store {
	return rt.store
}

// Current returns the active screen id.
func (rt *Runtime) Current() string {
	return rt.current
}

// History returns a copy of the history stack, oldest first.
func (rt *Runtime) History() []string {
	return append([]string(nil), rt.history...)
}

// Run initialises the host, validates the model against the registered
// effects and runs the main loop.
func (rt *Runtime) Run(ctx context.Context, entrypoint string, host Host) (Exit, error) {
	components, factory, err := host.InitializeUI(rt)
	if err != nil {
		return ExitAbort, fmt.Errorf("initialize host: %w", err)
	}
	if factory == nil {
		return ExitAbort, errors.New("initialize host: no section factory")
	}
	rt.components = components
	rt.factory = factory
	for _, c := range components {
		if err := c.InitializeUI(rt); err != nil {
			return ExitAbort, fmt.Errorf("initialize component: %w", err)
		}
	}

	known := EffectRegistry{}
	for _, c := range components {
		c.InitializeEffects(rt, known)
	}
	if err := Validate(rt.model, ValidateOptions{KnownEffects: known.Names()}); err != nil {
		return ExitAbort, err
	}
	if _, ok := rt.model.Items[entrypoint]; !ok {
		return ExitAbort, configErrorf("", "entrypoint %q is not an item%s", entrypoint, suggest(entrypoint, sortedKeys(rt.model.Items)))
	}

	return rt.loop(ctx, entrypoint)
}

func (rt *Runtime) loop(ctx context.Context, entrypoint string) (Exit, error) {
	rt.current = entrypoint
	scr, err := rt.named(entrypoint)
	if err != nil {
		return ExitAbort, err
	}
	scr.section.Reset()
	events.Engine.Enter(rt.current, len(rt.history))

	for {
		res, err := scr.section.ProcessKey(ctx)
		if err != nil {
			if ctx.Err() != nil {
				events.Engine.Exit(rt.current, "context")
				return ExitAbort, nil
			}
			return ExitAbort, err
		}
		events.Engine.Key(rt.current, string(res.Key))
		if !res.Requested {
			continue
		}

		out, err := scr.resolver.ResolveChain(res.Chain)
		if err != nil {
			return ExitAbort, annotate(err, rt.current)
		}
		if rt.refresh {
			rt.refresh = false
			if err := scr.section.Clear(); err != nil {
				return ExitAbort, err
			}
		}

		switch out.Kind {
		case OutcomeNone:
			continue
		case OutcomeClear:
			events.Engine.Clear(rt.current)
			if err := scr.section.Clear(); err != nil {
				return ExitAbort, err
			}
			continue
		}

		if err := scr.section.Clear(); err != nil {
			return ExitAbort, err
		}
		switch out.Kind {
		case OutcomeExitAndRun:
			events.Engine.Exit(rt.current, TargetExitAndRun)
			return ExitAndRun, nil
		case OutcomeAbort:
			events.Engine.Exit(rt.current, TargetAbort)
			return ExitAbort, nil
		case OutcomeBack:
			if len(rt.history) == 0 {
				events.Engine.Exit(rt.current, TargetBack)
				return ExitBack, nil
			}
			from := rt.current
			rt.current = rt.history[len(rt.history)-1]
			rt.history = rt.history[:len(rt.history)-1]
			events.Engine.Back(from, rt.current)
			scr, err = rt.named(rt.current)
		case OutcomeScreen:
			rt.push()
			rt.current = out.Target
			scr, err = rt.named(rt.current)
		case OutcomeInline:
			rt.push()
			rt.current = TemporaryScreen
			rt.temporary, err = rt.build(TemporaryScreen, out.Screen)
			scr = rt.temporary
		}
		if err != nil {
			return ExitAbort, err
		}
		scr.section.Reset()
		events.Engine.Enter(rt.current, len(rt.history))
	}
}

// push remembers the current screen. Inline screens are never remembered,
// only the screen they were opened from.
func (rt *Runtime) push() {
	if rt.current == TemporaryScreen {
		return
	}
	rt.history = append(rt.history, rt.current)
}

// named returns the cached section for id, building it on first visit.
func (rt *Runtime) named(id string) (*activeScreen, error) {
	if id == TemporaryScreen && rt.temporary != nil {
		return rt.temporary, nil
	}
	if scr, ok := rt.screens[id]; ok {
		return scr, nil
	}
	screen, ok := rt.model.Items[id]
	if !ok {
		return nil, configErrorf("", "navigate to unknown screen %q", id)
	}
	scr, err := rt.build(id, screen)
	if err != nil {
		return nil, err
	}
	rt.screens[id] = scr
	return scr, nil
}

func (rt *Runtime) build(id string, screen *Screen) (*activeScreen, error) {
	if err := Expand(screen, rt.model.BaseTypes); err != nil {
		return nil, annotate(err, id)
	}
	if !IsConcreteUI(screen.UI) {
		return nil, configErrorf(id, "unknown ui type %q", screen.UI)
	}
	for name, decl := range screen.Variables {
		if !rt.store.Has(name) {
			rt.store.Set(name, ParseValue(decl.Default))
		}
	}

	variables, formatters := rt.scope(screen)
	interp := NewInterpolator(formatters, rt.store)
	effects := EffectRegistry{}
	for _, c := range rt.components {
		c.InitializeEffects(rt, effects)
	}
	resolver := NewResolver(rt.store, variables, effects, rt.model.Items)

	section, err := rt.factory.NewSection(screen.UI, screen, interp)
	if err != nil {
		return nil, annotate(err, id)
	}
	if sel, ok := section.(EntrySelector); ok {
		resolver.SetSelector(sel)
	}
	events.Engine.Build(id, screen.UI)
	return &activeScreen{section: section, resolver: resolver}, nil
}

// scope merges global declarations, then every screen in the history, then
// the active screen. Later declarations win.
func (rt *Runtime) scope(active *Screen) (map[string]Variable, map[string]Formatter) {
	variables := overlay(nil, rt.model.Variables)
	formatters := overlay(nil, rt.model.Formatters)
	add := func(s *Screen) {
		for k, v := range s.Variables {
			variables[k] = v
		}
		for k, f := range s.Formatters {
			formatters[k] = f
		}
	}
	for _, id := range rt.history {
		if s, ok := rt.model.Items[id]; ok {
			add(s)
		}
	}
	add(active)
	return variables, formatters
}

// annotate fills in the screen id of configuration errors raised without one.
func annotate(err error, screen string) error {
	var ce *ConfigError
	if errors.As(err, &ce) && ce.Path == "" {
		ce.Path = screen
	}
	return err
}
