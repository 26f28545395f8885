package engine

// Expand merges base types into s in place until s.UI no longer names a base
// type. Base scalars overwrite the node, lists keep the node's items first and
// maps let the node override the base. Running it again is a no-op.
func Expand(s *Screen, baseTypes map[string]*Screen) error {
	if s == nil {
		return nil
	}
	limit := len(baseTypes) + 1
	origin := s.UI
	for steps := 0; ; steps++ {
		base, ok := baseTypes[s.UI]
		if !ok {
			return nil
		}
		if steps >= limit {
			return configErrorf("", "base type chain starting at %q does not terminate", origin)
		}
		if base == nil || base.UI == "" {
			return configErrorf("base_types."+s.UI, "base type has no ui or type discriminator")
		}
		mergeBase(s, base)
	}
}

func mergeBase(s, base *Screen) {
	s.UI = base.UI
	if base.Header != "" {
		s.Header = base.Header
	}
	if base.PreselectedAction != "" {
		s.PreselectedAction = base.PreselectedAction
	}
	if base.ActionName != "" {
		s.ActionName = base.ActionName
	}
	s.Text = concat(s.Text, base.Text)
	s.Entries = concat(s.Entries, base.Entries)
	s.Actions = concat(s.Actions, base.Actions)
	s.Hotkeys = concat(s.Hotkeys, base.Hotkeys)
	if len(base.Effects) > 0 {
		s.Effects = concat(s.Effects, base.Effects)
	}
	s.Variables = overlay(base.Variables, s.Variables)
	s.Formatters = overlay(base.Formatters, s.Formatters)
}

// ExpandModel expands every item, base type and inline screen of m.
func ExpandModel(m *Model) error {
	for _, name := range sortedKeys(m.BaseTypes) {
		if err := expandAt("base_types."+name, m.BaseTypes[name], m.BaseTypes); err != nil {
			return err
		}
	}
	for _, id := range sortedKeys(m.Items) {
		if err := expandAt("items."+id, m.Items[id], m.BaseTypes); err != nil {
			return err
		}
	}
	return WalkScreens(m, func(path string, s *Screen) error {
		return expandAt(path, s, m.BaseTypes)
	})
}

func expandAt(path string, s *Screen, baseTypes map[string]*Screen) error {
	if err := Expand(s, baseTypes); err != nil {
		if ce, ok := err.(*ConfigError); ok && ce.Path == "" {
			ce.Path = path
		}
		return err
	}
	if !IsConcreteUI(s.UI) {
		return configErrorf(path, "unknown ui type %q", s.UI)
	}
	return nil
}

func concat[T any](own, inherited []T) []T {
	if len(inherited) == 0 {
		return own
	}
	out := make([]T, 0, len(own)+len(inherited))
	out = append(out, own...)
	return append(out, inherited...)
}

func overlay[V any](defaults, overrides map[string]V) map[string]V {
	out := make(map[string]V, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
