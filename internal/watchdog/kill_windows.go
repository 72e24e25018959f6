//go:build windows

package watchdog

import (
	"os"
	"os/exec"
)

// processGroup has no direct Windows equivalent; with
// CREATE_NEW_PROCESS_GROUP the group id equals the leader's pid.
func processGroup(pid int) (int, error) {
	return pid, nil
}

func killPID(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return nil
	}
	return p.Kill()
}

// killGroup attempts to kill the process on Windows. Killing the entire tree
// requires job objects; here we best-effort kill the main process.
func killGroup(cmd *exec.Cmd, pgid int) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
