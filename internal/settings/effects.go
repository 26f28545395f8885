package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atomicstack/update-all/internal/engine"
	"github.com/atomicstack/update-all/internal/logging/events"
)

// Variables written by the host effects.
const (
	NeedsSaveVariable  = "needs_save"
	FileExistsVariable = "file_exists"
)

// Effects is the engine component backing the settings screens with an INI
// repository.
type Effects struct {
	repo     *Repository
	baseDir  string
	defaults map[string]engine.Value
}

// NewEffects binds the effects to repo. Relative file targets resolve
// against baseDir.
func NewEffects(repo *Repository, m *engine.Model, baseDir string) *Effects {
	return &Effects{repo: repo, baseDir: baseDir, defaults: DefaultValues(m)}
}

// InitializeUI loads persisted settings over the model defaults.
func (e *Effects) InitializeUI(ui engine.UI) error {
	ui.Set(NeedsSaveVariable, false)
	ui.Set(FileExistsVariable, false)
	return e.repo.Load(ui)
}

func (e *Effects) InitializeEffects(ui engine.UI, effects engine.EffectRegistry) {
	effects.Register("calculate_needs_save", func(engine.Custom) error {
		dirty, err := e.repo.NeedsSave(ui)
		if err != nil {
			return err
		}
		ui.Set(NeedsSaveVariable, dirty)
		return nil
	})
	effects.Register("save", func(engine.Custom) error {
		if err := e.repo.Save(ui); err != nil {
			return err
		}
		ui.Set(NeedsSaveVariable, false)
		return nil
	})
	effects.Register("restore_defaults", func(engine.Custom) error {
		for name, v := range e.defaults {
			ui.Set(name, v)
		}
		ui.RefreshScreen()
		return nil
	})
	effects.Register("calculate_file_exists", func(c engine.Custom) error {
		path, err := e.target(c)
		if err != nil {
			return err
		}
		_, statErr := os.Stat(path)
		ui.Set(FileExistsVariable, statErr == nil)
		return nil
	})
	effects.Register("remove_file", func(c engine.Custom) error {
		if c.Param("target") == "" {
			return e.repo.Remove()
		}
		path, err := e.target(c)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
		events.Settings.Remove(path)
		ui.Set(FileExistsVariable, false)
		return nil
	})
}

func (e *Effects) target(c engine.Custom) (string, error) {
	target := c.Param("target")
	if target == "" {
		return "", fmt.Errorf("%s needs a target", c.Name)
	}
	if filepath.IsAbs(target) {
		return target, nil
	}
	return filepath.Join(e.baseDir, target), nil
}
