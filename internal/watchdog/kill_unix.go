//go:build !windows

package watchdog

import (
	"errors"
	"os/exec"
	"syscall"
)

// processGroup returns the process-group id of pid.
func processGroup(pid int) (int, error) {
	return syscall.Getpgid(pid)
}

// killPID delivers SIGKILL to a single process. A process that is already
// gone is the desired end state, so ESRCH is not an error.
func killPID(pid int) error {
	if err := syscall.Kill(pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return err
	}
	return nil
}

// killGroup delivers SIGKILL to an entire process group. Negative pid
// targets the group. Falls back to killing just the main process.
func killGroup(cmd *exec.Cmd, pgid int) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return cmd.Process.Kill()
	}
	return nil
}
