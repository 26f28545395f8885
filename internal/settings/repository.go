package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/atomicstack/update-all/internal/engine"
	"github.com/atomicstack/update-all/internal/logging/events"
)

// Values is the read side of the engine value store.
type Values interface {
	Get(key string) engine.Value
}

// Repository persists grouped variables to an INI file. Each group is a
// section and each variable is stored under its rename, or its own name.
type Repository struct {
	path     string
	groups   map[string]map[string]string
	defaults map[string]engine.Value
}

// NewRepository prepares a repository for the variables declared in m.
func NewRepository(path string, m *engine.Model) *Repository {
	groups := make(map[string]map[string]string)
	for _, g := range Groups(m) {
		groups[g] = VariablesWithGroup(m, g)
	}
	return &Repository{path: path, groups: groups, defaults: DefaultValues(m)}
}

func (r *Repository) Path() string {
	return r.path
}

// Exists reports whether the INI file is present on disk.
func (r *Repository) Exists() bool {
	_, err := os.Stat(r.path)
	return err == nil
}

// Read returns the persisted value of every grouped variable found in the
// file. A missing file yields an empty map.
func (r *Repository) Read() (map[string]engine.Value, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Loose: true}, r.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	out := map[string]engine.Value{}
	for group, vars := range r.groups {
		sec, err := f.GetSection(group)
		if err != nil {
			continue
		}
		for name, key := range vars {
			if sec.HasKey(key) {
				out[name] = engine.ParseValue(sec.Key(key).String())
			}
		}
	}
	return out, nil
}

// Load copies persisted values into ui.
func (r *Repository) Load(ui engine.UI) error {
	values, err := r.Read()
	if err != nil {
		return err
	}
	for name, v := range values {
		ui.Set(name, v)
	}
	events.Settings.Load(r.path, r.Exists(), len(values))
	return nil
}

// Save writes every grouped variable to the file, creating it if needed.
// Keys the repository does not manage are preserved.
func (r *Repository) Save(values Values) error {
	f, err := ini.LoadSources(ini.LoadOptions{Loose: true}, r.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", r.path, err)
	}
	count := 0
	for group, vars := range r.groups {
		sec := f.Section(group)
		for name, key := range vars {
			sec.Key(key).SetValue(values.Get(name).String())
			count++
		}
	}
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := f.SaveTo(r.path); err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	events.Settings.Save(r.path, count)
	return nil
}

// NeedsSave reports whether any grouped variable differs from what a fresh
// load would produce: the persisted value, or the default when absent.
func (r *Repository) NeedsSave(values Values) (bool, error) {
	persisted, err := r.Read()
	if err != nil {
		return false, err
	}
	dirty := false
	for _, vars := range r.groups {
		for name := range vars {
			want, ok := persisted[name]
			if !ok {
				want = r.defaults[name]
			}
			if values.Get(name).String() != want.String() {
				dirty = true
			}
		}
	}
	events.Settings.NeedsSave(r.path, dirty)
	return dirty, nil
}

// Remove deletes the file. Removing a missing file is not an error.
func (r *Repository) Remove() error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", r.path, err)
	}
	events.Settings.Remove(r.path)
	return nil
}
