package models

import "time"

// RunState tracks where a supervised run is in its lifecycle.
type RunState string

const (
	RunStateCreated RunState = "created"
	RunStateRunning RunState = "running"
	RunStateKilling RunState = "killing"
	RunStateReaped  RunState = "reaped"
)

// MatchResult is the outcome of watching a run's output for a marker.
type MatchResult string

const (
	// MatchFound means the marker appeared in the output stream and the
	// run was (or is about to be) cut short.
	MatchFound MatchResult = "match-found"
	// ExitedNoMatch means the child terminated before ever printing the
	// marker. This is a normal outcome, not an error.
	ExitedNoMatch MatchResult = "exited-no-match"
)

// RunStatus is a point-in-time view of a supervised run. It is what the
// status server reports to CI dashboards while the run is in flight.
type RunStatus struct {
	RunID     string      `json:"run_id" yaml:"run_id"`
	State     RunState    `json:"state" yaml:"state"`
	Command   string      `json:"command" yaml:"command"`
	Workspace string      `json:"workspace" yaml:"workspace"`
	PID       int         `json:"pid,omitempty" yaml:"pid,omitempty"`
	PGID      int         `json:"pgid,omitempty" yaml:"pgid,omitempty"`
	StartedAt time.Time   `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	EndedAt   time.Time   `json:"ended_at,omitempty" yaml:"ended_at,omitempty"`
	Match     MatchResult `json:"match,omitempty" yaml:"match,omitempty"`
	ExitCode  int         `json:"exit_code" yaml:"exit_code"`
	LogPath   string      `json:"log_path" yaml:"log_path"`
}

// Finished reports whether the run has been fully reaped.
func (s RunStatus) Finished() bool {
	return s.State == RunStateReaped
}
