package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/atomicstack/update-all/internal/app"
	"github.com/atomicstack/update-all/internal/config"
	"github.com/atomicstack/update-all/internal/logging"
	"github.com/atomicstack/update-all/internal/logging/events"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := app.Run(ctx, runtimeCfg.App)
	stop()
	os.Exit(exitCode(err))
}

// exitCode reports err and maps it to the process status. A failing
// downloader passes its own status through.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	logging.Error(err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var exitErr *app.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":    cfg.Args,
		"flags":   flags,
		"config":  cfg,
		"logPath": logging.Path(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	payload["tty"] = probeTerminals()
	return payload
}

type terminalProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// probeTerminals reports terminal support and size for the standard
// descriptors. The menu needs stdin and stdout to be terminals.
func probeTerminals() []terminalProbe {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	probes := make([]terminalProbe, len(files))
	for i, f := range files {
		probe := terminalProbe{Name: names[i]}
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			probe.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				probe.Width, probe.Height = width, height
			} else {
				probe.Error = err.Error()
			}
		}
		probes[i] = probe
	}
	return probes
}
