//go:build !linux && !windows

package procs

import (
	"bytes"
	"fmt"
	"os/exec"
)

// snapshot shells out to ps on unix platforms without a /proc filesystem.
func snapshot() ([]Process, error) {
	out, err := exec.Command("ps", "-axo", "pid,pgid,command").Output()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}
	return parsePS(bytes.NewReader(out))
}
