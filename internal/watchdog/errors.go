package watchdog

import "errors"

var (
	// ErrSpawn means the child command could not be started at all.
	// Fatal to the whole supervised run; never retried.
	ErrSpawn = errors.New("failed to spawn child process")

	// ErrScan means the log sink stayed unreadable past the child's own
	// lifetime. Transient scan failures mid-run are retried, not surfaced.
	ErrScan = errors.New("failed to scan log sink")

	// ErrNotStarted is returned when an operation is invoked before Start.
	ErrNotStarted = errors.New("supervisor has no child process")

	// ErrAlreadyStarted enforces the one-child-per-supervisor invariant.
	ErrAlreadyStarted = errors.New("supervisor already tracks a child process")
)
