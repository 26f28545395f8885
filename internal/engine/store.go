package engine

import "sort"

// ValueReader is the read side of the store used by the interpolator.
type ValueReader interface {
	Lookup(key string) (Value, bool)
}

// Store holds exactly one current value per variable name. It is owned by the
// goroutine running the engine and is not safe for concurrent use.
type Store struct {
	values map[string]Value
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]Value)}
}

// NewStoreFromModel seeds a store with the defaults declared in the model:
// global variables first, then base types, then each item.
func NewStoreFromModel(m *Model) *Store {
	s := NewStore()
	if m == nil {
		return s
	}
	s.seed(m.Variables)
	for _, name := range sortedKeys(m.BaseTypes) {
		s.seed(m.BaseTypes[name].Variables)
	}
	for _, id := range sortedKeys(m.Items) {
		s.seed(m.Items[id].Variables)
	}
	return s
}

func (s *Store) seed(vars map[string]Variable) {
	for name, decl := range vars {
		s.values[name] = ParseValue(decl.Default)
	}
}

func (s *Store) Lookup(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Get returns the value for key or an empty string value when unset.
func (s *Store) Get(key string) Value {
	return s.values[key]
}

// Set coerces value with ValueOf and stores it.
func (s *Store) Set(key string, value any) {
	s.values[key] = ValueOf(value)
}

func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Snapshot copies the display form of every value.
func (s *Store) Snapshot() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v.String()
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
