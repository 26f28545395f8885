package runner

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/update-all/internal/logging"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	dir, err := os.MkdirTemp("", "runner-test")
	if err == nil {
		logging.Configure(filepath.Join(dir, "runner.log"))
	}
	code := m.Run()
	if err == nil {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestRunCopiesOutputAndExitCode(t *testing.T) {
	sh := requireShell(t)
	var out, status bytes.Buffer
	res, err := Run(context.Background(), Options{
		Command: sh,
		Args:    []string{"-c", "echo hello $UPDATE_ALL_MAIN_UPDATER; exit 3"},
		Env:     Environ(map[string]string{"main_updater": "true"}),
		Size:    Size{Rows: 24, Cols: 80},
		Output:  &out,
		Status:  &status,
	})
	if err != nil && strings.HasPrefix(err.Error(), "start ") {
		t.Skipf("pty unavailable: %v", err)
	}
	require.NoError(t, err)
	require.Equal(t, 3, res.ExitCode)
	require.Contains(t, out.String(), "hello true")
	require.Contains(t, status.String(), "Running "+sh)
	require.Contains(t, status.String(), "exited with code 3")
}

func TestRunSuccess(t *testing.T) {
	sh := requireShell(t)
	var out, status bytes.Buffer
	res, err := Run(context.Background(), Options{
		Command: sh,
		Args:    []string{"-c", "true"},
		Output:  &out,
		Status:  &status,
	})
	if err != nil && strings.HasPrefix(err.Error(), "start ") {
		t.Skipf("pty unavailable: %v", err)
	}
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode)
	require.Contains(t, status.String(), "finished in")
}

func TestRunMissingCommand(t *testing.T) {
	_, err := Run(context.Background(), Options{Command: "  "})
	require.Error(t, err)

	var status bytes.Buffer
	res, err := Run(context.Background(), Options{
		Command: filepath.Join(t.TempDir(), "does-not-exist"),
		Output:  &bytes.Buffer{},
		Status:  &status,
	})
	require.Error(t, err)
	require.Equal(t, -1, res.ExitCode)
}

func TestEnviron(t *testing.T) {
	got := Environ(map[string]string{
		"main_updater":   "true",
		"countdown.time": "15",
	})
	require.Equal(t, []string{
		"UPDATE_ALL_COUNTDOWN_TIME=15",
		"UPDATE_ALL_MAIN_UPDATER=true",
	}, got)
}

func TestSplitCommand(t *testing.T) {
	cmd, args := SplitCommand("  /media/fat/downloader.sh --ini  x.ini ")
	require.Equal(t, "/media/fat/downloader.sh", cmd)
	require.Equal(t, []string{"--ini", "x.ini"}, args)

	cmd, args = SplitCommand("")
	require.Empty(t, cmd)
	require.Nil(t, args)
}
