//go:build !windows

package watchdog

import (
	"os/exec"
	"syscall"
)

// setCmdSysProcAttr makes the child a process-group leader on POSIX systems,
// so the whole tree it spawns shares one group id distinct from ours.
func setCmdSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
