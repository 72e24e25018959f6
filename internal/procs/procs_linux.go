//go:build linux

package procs

import (
	"os"
	"path/filepath"
	"strconv"
)

// snapshot walks /proc directly rather than shelling out. Entries that
// disappear mid-walk are skipped.
func snapshot() ([]Process, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, err
	}

	var out []Process
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}

		stat, err := os.ReadFile(filepath.Join("/proc", entry.Name(), "stat"))
		if err != nil {
			continue // process exited during the walk
		}
		pgid, err := parseStat(stat)
		if err != nil {
			continue
		}

		cmdline, err := os.ReadFile(filepath.Join("/proc", entry.Name(), "cmdline"))
		if err != nil {
			continue
		}

		out = append(out, Process{
			PID:     pid,
			PGID:    pgid,
			Command: parseCmdline(cmdline),
		})
	}
	return out, nil
}
