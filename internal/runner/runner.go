// Package runner starts the downloader once the settings session ends.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/fatih/color"

	"github.com/atomicstack/update-all/internal/logging"
	"github.com/atomicstack/update-all/internal/logging/events"
)

// EnvPrefix prefixes the variables exported to the downloader.
const EnvPrefix = "UPDATE_ALL_"

// Size is the pseudo terminal size in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// Options describes one downloader invocation.
type Options struct {
	Command string
	Args    []string
	Dir     string
	// Env is appended to the current environment.
	Env    []string
	Size   Size
	Output io.Writer
	Status io.Writer
}

// Result reports how the downloader ended.
type Result struct {
	ExitCode int
	Duration time.Duration
}

var (
	statusStyle = color.New(color.FgCyan, color.Bold)
	okStyle     = color.New(color.FgGreen)
	failStyle   = color.New(color.FgRed, color.Bold)
)

// Run executes the command under a pseudo terminal and copies its output
// until it exits. A non-zero exit is reported through Result, not as an error.
func Run(ctx context.Context, opts Options) (Result, error) {
	if strings.TrimSpace(opts.Command) == "" {
		return Result{}, errors.New("runner: no command")
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	status := opts.Status
	if status == nil {
		status = os.Stderr
	}

	cmd := exec.CommandContext(ctx, opts.Command, opts.Args...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), opts.Env...)

	statusStyle.Fprintf(status, "Running %s\n", strings.Join(append([]string{opts.Command}, opts.Args...), " "))
	events.Runner.Start(opts.Command, opts.Args)
	started := time.Now()

	var (
		f   *os.File
		err error
	)
	if opts.Size.Rows > 0 && opts.Size.Cols > 0 {
		f, err = pty.StartWithSize(cmd, &pty.Winsize{Rows: opts.Size.Rows, Cols: opts.Size.Cols})
	} else {
		f, err = pty.Start(cmd)
	}
	if err != nil {
		events.Runner.Finish(opts.Command, -1, err)
		return Result{ExitCode: -1}, fmt.Errorf("start %s: %w", opts.Command, err)
	}
	defer f.Close()

	copied := make(chan error, 1)
	go func() {
		_, err := io.Copy(out, f)
		copied <- err
	}()

	waitErr := cmd.Wait()
	copyErr := <-copied
	res := Result{Duration: time.Since(started)}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
	case errors.As(waitErr, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		events.Runner.Finish(opts.Command, -1, waitErr)
		return Result{ExitCode: -1, Duration: res.Duration}, fmt.Errorf("wait %s: %w", opts.Command, waitErr)
	}
	// reading the master side fails with EIO once the child closes its end
	if copyErr != nil && !errors.Is(copyErr, syscall.EIO) && !errors.Is(copyErr, os.ErrClosed) {
		logging.Warn("runner: copy output of %s: %v", opts.Command, copyErr)
	}

	if res.ExitCode == 0 {
		okStyle.Fprintf(status, "%s finished in %s\n", opts.Command, res.Duration.Round(time.Millisecond))
	} else {
		failStyle.Fprintf(status, "%s exited with code %d\n", opts.Command, res.ExitCode)
	}
	events.Runner.Finish(opts.Command, res.ExitCode, nil)
	return res, nil
}

// Environ turns store values into sorted KEY=value pairs under EnvPrefix.
func Environ(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, EnvPrefix+envName(k)+"="+values[k])
	}
	return out
}

func envName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// SplitCommand splits a configured command line on whitespace.
func SplitCommand(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
