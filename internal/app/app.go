package app

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/update-all/internal/engine"
	"github.com/atomicstack/update-all/internal/logging"
	"github.com/atomicstack/update-all/internal/logging/events"
	"github.com/atomicstack/update-all/internal/runner"
	"github.com/atomicstack/update-all/internal/settings"
	"github.com/atomicstack/update-all/internal/tui"
)

// Config describes user-provided application options.
type Config struct {
	ModelPath  string
	Entry      string
	BasePath   string
	IniPath    string
	Downloader string
	Width      int
	Height     int
	ShowFooter bool
	SkipMenu   bool
}

// ExitError reports a downloader that finished with a non-zero status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Command, e.Code)
}

// Session runs the settings menu and reports how it ended. Tests replace it
// to avoid a terminal.
type Session func(ctx context.Context, rt *engine.Runtime, entry string, components []engine.Component) (engine.Exit, error)

// Run loads the model, shows the settings menu and runs the downloader when
// the menu asks for it.
func Run(ctx context.Context, cfg Config) error {
	return RunWith(ctx, cfg, func(ctx context.Context, rt *engine.Runtime, entry string, components []engine.Component) (engine.Exit, error) {
		return tui.Run(ctx, rt, entry, components, tui.Options{
			Width:      cfg.Width,
			Height:     cfg.Height,
			ShowFooter: cfg.ShowFooter,
		})
	})
}

// RunWith is Run with the menu session supplied by the caller.
func RunWith(ctx context.Context, cfg Config, session Session) error {
	model, err := settings.LoadModel(cfg.ModelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	entry := cfg.Entry
	if entry == "" {
		entry = settings.DefaultEntry
	}

	rt := engine.NewRuntime(model)
	repo := settings.NewRepository(cfg.IniPath, model)
	effects := settings.NewEffects(repo, model, cfg.BasePath)
	logging.Info("settings file %s", repo.Path())

	exit := engine.ExitAndRun
	if cfg.SkipMenu {
		if err := effects.InitializeUI(rt); err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
	} else {
		exit, err = session(ctx, rt, entry, []engine.Component{effects})
		events.App.Exit(exit.String(), err)
		if err != nil {
			return err
		}
	}

	switch exit {
	case engine.ExitAbort:
		logging.Info("settings menu aborted")
		return nil
	case engine.ExitBack:
		logging.Info("settings menu closed")
	}
	if cfg.Downloader == "" {
		logging.Info("no downloader configured, nothing to run")
		return nil
	}

	command, args := runner.SplitCommand(cfg.Downloader)
	res, err := runner.Run(ctx, runner.Options{
		Command: command,
		Args:    args,
		Dir:     existingDir(cfg.BasePath),
		Env:     runner.Environ(rt.Store().Snapshot()),
		Size:    terminalSize(),
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &ExitError{Command: command, Code: res.ExitCode}
	}
	return nil
}

func terminalSize() runner.Size {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return runner.Size{}
	}
	width, height, err := term.GetSize(fd)
	if err != nil || width <= 0 || height <= 0 {
		return runner.Size{}
	}
	return runner.Size{Rows: uint16(height), Cols: uint16(width)}
}

func existingDir(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return ""
}
