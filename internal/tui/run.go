package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/update-all/internal/engine"
)

// Run shows the model starting at entry and returns once the session ends.
// Components are handed to the engine as its host collaborators.
func Run(ctx context.Context, rt *engine.Runtime, entry string, components []engine.Component, opts Options, programOpts ...tea.ProgramOption) (engine.Exit, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	backend := NewBackend(ctx)
	host := engine.HostFunc(func(engine.UI) ([]engine.Component, engine.SectionFactory, error) {
		return components, engine.Sections(backend), nil
	})
	backend.Start(ctx, func(ctx context.Context) (engine.Exit, error) {
		return rt.Run(ctx, entry, host)
	})

	model := NewModel(backend, opts)
	programOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, programOpts...)
	program := tea.NewProgram(model, programOpts...)
	_, runErr := program.Run()
	cancel()

	exit, err := backend.Result()
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) && !errors.Is(runErr, context.Canceled) {
		if err == nil {
			err = fmt.Errorf("run program: %w", runErr)
		}
		return engine.ExitAbort, err
	}
	if model.Interrupted() {
		return engine.ExitAbort, nil
	}
	return exit, err
}
