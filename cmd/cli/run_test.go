package cli

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("run command tests spawn /bin/sh")
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := GetCommandOptions()
	root.SetArgs(args)
	return root.Execute()
}

func exitCodeOf(t *testing.T, err error) int {
	t.Helper()
	var coder interface{ ExitCode() int }
	require.True(t, errors.As(err, &coder), "error should carry an exit code: %v", err)
	return coder.ExitCode()
}

func TestRunPropagatesChildExitCode(t *testing.T) {
	requireUnix(t)

	err := execute(t, "run",
		"--workspace", t.TempDir(),
		"--marker", "[test]",
		"--", "/bin/sh", "-c", "exit 7")
	require.Error(t, err)
	assert.Equal(t, 7, exitCodeOf(t, err))
}

func TestRunCleanExit(t *testing.T) {
	requireUnix(t)

	err := execute(t, "run",
		"--workspace", t.TempDir(),
		"--marker", "[test]",
		"--", "/bin/sh", "-c", "exit 0")
	assert.NoError(t, err)
}

func TestRunClampsSignalDeath(t *testing.T) {
	requireUnix(t)

	// A child killed by an outside signal has no real exit code; the
	// harness must not hand the shell a negative one.
	err := execute(t, "run",
		"--workspace", t.TempDir(),
		"--marker", "[test]",
		"--", "/bin/sh", "-c", "kill -9 $$")
	require.Error(t, err)
	assert.Equal(t, 1, exitCodeOf(t, err))
}
