//go:build windows

package watchdog

import (
	"os/exec"
	"syscall"
)

// setCmdSysProcAttr configures the command for Windows. We avoid fields not
// available across versions.
func setCmdSysProcAttr(cmd *exec.Cmd) {
	// Create a new process group on Windows so child processes can be
	// terminated if needed.
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}
