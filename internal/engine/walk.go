package engine

import "fmt"

// WalkEffects calls fn for every effect reachable in the model: hotkeys, fixed
// actions, entry actions and message effects of every item and base type,
// both branches of every condition and everything inside inline screens.
func WalkEffects(m *Model, fn func(path string, e Effect)) {
	visit := func(path string, s *Screen) {
		walkScreenEffects(path, s, fn)
	}
	for _, name := range sortedKeys(m.BaseTypes) {
		visit("base_types."+name, m.BaseTypes[name])
	}
	for _, id := range sortedKeys(m.Items) {
		visit("items."+id, m.Items[id])
	}
}

// WalkScreens calls fn for every inline screen nested anywhere in the model.
// Top level items and base types are not passed to fn.
func WalkScreens(m *Model, fn func(path string, s *Screen) error) error {
	var firstErr error
	WalkEffects(m, func(path string, e Effect) {
		if firstErr != nil {
			return
		}
		if in, ok := e.(Inline); ok && in.Screen != nil {
			firstErr = fn(path, in.Screen)
		}
	})
	return firstErr
}

// NavigateTargets lists every navigate target in the model keyed by the path
// of the effect that names it.
func NavigateTargets(m *Model) map[string]string {
	out := map[string]string{}
	WalkEffects(m, func(path string, e Effect) {
		if nav, ok := e.(Navigate); ok {
			out[path] = nav.Target
		}
	})
	return out
}

func walkScreenEffects(path string, s *Screen, fn func(string, Effect)) {
	if s == nil {
		return
	}
	for i, hk := range s.Hotkeys {
		walkChain(fmt.Sprintf("%s.hotkeys[%d]", path, i), hk.Chain, fn)
	}
	for i, a := range s.Actions {
		if a.Type == ActionFixed {
			walkChain(fmt.Sprintf("%s.actions[%d].fixed", path, i), a.Fixed, fn)
		}
	}
	for i, entry := range s.Entries {
		for _, symbol := range sortedKeys(entry.Actions) {
			walkChain(fmt.Sprintf("%s.entries[%d].actions.%s", path, i, symbol), entry.Actions[symbol], fn)
		}
	}
	walkChain(path+".effects", s.Effects, fn)
}

func walkChain(path string, chain Chain, fn func(string, Effect)) {
	for i, e := range chain {
		at := fmt.Sprintf("%s[%d]", path, i)
		fn(at, e)
		switch t := e.(type) {
		case Condition:
			walkChain(at+".true", t.True, fn)
			walkChain(at+".false", t.False, fn)
		case Inline:
			walkScreenEffects(at, t.Screen, fn)
		}
	}
}
