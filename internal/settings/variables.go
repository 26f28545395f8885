package settings

import (
	"sort"
	"strings"

	"github.com/atomicstack/update-all/internal/engine"
)

// DefaultValues gathers the default of every variable declared globally or
// on an item. Later items override earlier ones in id order.
func DefaultValues(m *engine.Model) map[string]engine.Value {
	out := map[string]engine.Value{}
	add := func(vars map[string]engine.Variable) {
		for name, decl := range vars {
			out[name] = engine.ParseValue(decl.Default)
		}
	}
	add(m.Variables)
	for _, id := range sortedIDs(m.Items) {
		add(m.Items[id].Variables)
	}
	return out
}

// VariablesWithGroup maps each variable of group to the key it is stored
// under, which is its rename when one is declared. Group names compare case
// insensitively.
func VariablesWithGroup(m *engine.Model, group string) map[string]string {
	group = strings.ToLower(group)
	out := map[string]string{}
	add := func(vars map[string]engine.Variable) {
		for name, decl := range vars {
			if decl.Group == "" || strings.ToLower(decl.Group) != group {
				continue
			}
			if decl.Rename != "" {
				out[name] = decl.Rename
			} else {
				out[name] = name
			}
		}
	}
	add(m.Variables)
	for _, id := range sortedIDs(m.Items) {
		add(m.Items[id].Variables)
	}
	return out
}

// Groups lists every group named by a declared variable, lowercased.
func Groups(m *engine.Model) []string {
	seen := map[string]struct{}{}
	add := func(vars map[string]engine.Variable) {
		for _, decl := range vars {
			if decl.Group != "" {
				seen[strings.ToLower(decl.Group)] = struct{}{}
			}
		}
	}
	add(m.Variables)
	for _, s := range m.Items {
		add(s.Variables)
	}
	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

func sortedIDs(items map[string]*engine.Screen) []string {
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
