// Package procs exposes the host's process table in the minimal shape the
// watchdog needs to aim its kills: pid, process-group id, and full command
// line.
package procs

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Process is one entry of a process-table snapshot.
type Process struct {
	PID     int
	PGID    int
	Command string
}

// Snapshot lists the processes currently running on the host. The listing is
// inherently racy; callers must tolerate entries that are gone by the time
// they act on them.
func Snapshot() ([]Process, error) {
	return snapshot()
}

// parseStat extracts the process-group id from the contents of a
// /proc/<pid>/stat file. The comm field (2nd) is parenthesised and may
// itself contain spaces and parens, so fields are counted from the last
// closing paren: state, ppid, pgrp.
func parseStat(data []byte) (int, error) {
	end := bytes.LastIndexByte(data, ')')
	if end < 0 || end+2 > len(data) {
		return 0, fmt.Errorf("malformed stat data")
	}
	fields := strings.Fields(string(data[end+1:]))
	if len(fields) < 3 {
		return 0, fmt.Errorf("malformed stat data: %d fields after comm", len(fields))
	}
	pgid, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, fmt.Errorf("bad pgrp field: %w", err)
	}
	return pgid, nil
}

// parseCmdline converts the NUL-separated /proc/<pid>/cmdline format into a
// space-joined command line.
func parseCmdline(data []byte) string {
	data = bytes.TrimRight(data, "\x00")
	return string(bytes.ReplaceAll(data, []byte{0}, []byte{' '}))
}

// parsePS parses `ps -axo pid,pgid,command` output, skipping the header row
// and any rows that do not start with two numeric columns.
func parsePS(r io.Reader) ([]Process, error) {
	var out []Process
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue // header or kernel thread decoration
		}
		pgid, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		out = append(out, Process{
			PID:     pid,
			PGID:    pgid,
			Command: strings.Join(fields[2:], " "),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ps output: %w", err)
	}
	return out, nil
}
