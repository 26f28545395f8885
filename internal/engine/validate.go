package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ValidateOptions tunes Validate. A nil KnownEffects skips the custom effect
// check, which is what loading does before the host registers callbacks.
type ValidateOptions struct {
	KnownEffects []string
}

// Validate checks an expanded model and reports every problem found, joined.
func Validate(m *Model, opts ValidateOptions) error {
	v := &validator{
		model:      m,
		variables:  declaredVariables(m),
		formatters: declaredFormatters(m),
	}
	if opts.KnownEffects != nil {
		v.known = make(map[string]struct{}, len(opts.KnownEffects))
		for _, name := range opts.KnownEffects {
			v.known[name] = struct{}{}
		}
	}

	for _, id := range sortedKeys(m.Items) {
		v.screen("items."+id, m.Items[id])
	}
	if err := WalkScreens(m, func(path string, s *Screen) error {
		v.screen(path, s)
		return nil
	}); err != nil {
		v.errs = append(v.errs, err)
	}
	WalkEffects(m, v.effect)
	v.conditionVariables()
	return errors.Join(v.errs...)
}

type validator struct {
	model      *Model
	variables  map[string]Variable
	formatters map[string]struct{}
	known      map[string]struct{}
	errs       []error
}

func (v *validator) add(path, format string, args ...any) {
	v.errs = append(v.errs, configErrorf(path, format, args...))
}

func (v *validator) screen(path string, s *Screen) {
	if !IsConcreteUI(s.UI) {
		v.add(path, "unknown ui type %q", s.UI)
		return
	}
	if s.UI == UIConfirm && len(s.Actions) == 0 {
		v.add(path, "confirm screen has no actions")
	}
	if s.PreselectedAction != "" && s.UI != UIMessage {
		found := false
		for _, a := range s.Actions {
			if a.Title == s.PreselectedAction {
				found = true
				break
			}
		}
		if !found {
			v.add(path+".preselected_action", "no action titled %q", s.PreselectedAction)
		}
	}

	v.text(path+".header", s.Header)
	v.text(path+".action_name", s.ActionName)
	for i, line := range s.Text {
		v.text(fmt.Sprintf("%s.text[%d]", path, i), line)
	}
	for i, e := range s.Entries {
		v.text(fmt.Sprintf("%s.entries[%d].title", path, i), e.Title)
		v.text(fmt.Sprintf("%s.entries[%d].description", path, i), e.Description)
	}
	for i, a := range s.Actions {
		v.text(fmt.Sprintf("%s.actions[%d].title", path, i), a.Title)
	}
}

// text checks that every modifier in text names a declared formatter.
func (v *validator) text(path, text string) {
	for _, ph := range scanPlaceholders(text) {
		if ph.modifier == "" || (ph.modifier == BoolModifier && !ph.hasArgs) {
			continue
		}
		if _, ok := v.formatters[ph.modifier]; !ok {
			v.add(path, "placeholder %s uses unknown modifier %q", ph.raw, ph.modifier)
		}
	}
}

func (v *validator) effect(path string, e Effect) {
	switch t := e.(type) {
	case Navigate:
		if IsReservedTarget(t.Target) {
			return
		}
		if _, ok := v.model.Items[t.Target]; !ok {
			v.add(path, "navigate to unknown screen %q%s", t.Target, suggest(t.Target, sortedKeys(v.model.Items)))
		}
	case RotateVariable:
		decl, ok := v.variables[t.Target]
		if !ok {
			v.add(path, "rotate_variable target %q is not declared%s", t.Target, suggest(t.Target, sortedKeys(v.variables)))
			return
		}
		if len(decl.Values) == 0 {
			v.add(path, "rotate_variable target %q declares no values", t.Target)
		}
	case Custom:
		if v.known == nil {
			return
		}
		if _, ok := v.known[t.Name]; !ok {
			names := make([]string, 0, len(v.known))
			for name := range v.known {
				names = append(names, name)
			}
			sort.Strings(names)
			v.add(path, "unknown effect type %q%s", t.Name, suggest(t.Name, names))
		}
	}
}

// conditionVariables rejects declared condition variables that cannot hold
// a boolean. Undeclared ones are left to the host to provide.
func (v *validator) conditionVariables() {
	WalkEffects(v.model, func(path string, e Effect) {
		c, ok := e.(Condition)
		if !ok {
			return
		}
		decl, ok := v.variables[c.Variable]
		if !ok {
			return
		}
		if _, isBool := ParseValue(decl.Default).Bool(); !isBool {
			v.add(path, "condition variable %q defaults to %q, not true or false", c.Variable, decl.Default)
		}
		for _, value := range decl.Values {
			if _, isBool := ParseValue(value).Bool(); !isBool {
				v.add(path, "condition variable %q allows non boolean value %q", c.Variable, value)
			}
		}
	})
}

func suggest(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	best := ""
	if ranks := fuzzy.RankFindNormalizedFold(target, candidates); len(ranks) > 0 {
		sort.Sort(ranks)
		best = ranks[0].Target
	} else {
		bestDistance := len(target)/2 + 1
		for _, candidate := range candidates {
			if d := fuzzy.LevenshteinDistance(target, candidate); d < bestDistance {
				best, bestDistance = candidate, d
			}
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}

// declaredVariables gathers every variable declaration in the model.
func declaredVariables(m *Model) map[string]Variable {
	out := map[string]Variable{}
	for k, decl := range m.Variables {
		out[k] = decl
	}
	collect := func(s *Screen) {
		for k, decl := range s.Variables {
			if _, ok := out[k]; !ok {
				out[k] = decl
			}
		}
	}
	for _, name := range sortedKeys(m.BaseTypes) {
		collect(m.BaseTypes[name])
	}
	for _, id := range sortedKeys(m.Items) {
		collect(m.Items[id])
	}
	_ = WalkScreens(m, func(_ string, s *Screen) error {
		collect(s)
		return nil
	})
	return out
}

func declaredFormatters(m *Model) map[string]struct{} {
	out := map[string]struct{}{}
	for k := range m.Formatters {
		out[k] = struct{}{}
	}
	collect := func(s *Screen) {
		for k := range s.Formatters {
			out[k] = struct{}{}
		}
	}
	for _, s := range m.BaseTypes {
		collect(s)
	}
	for _, s := range m.Items {
		collect(s)
	}
	_ = WalkScreens(m, func(_ string, s *Screen) error {
		collect(s)
		return nil
	})
	return out
}
