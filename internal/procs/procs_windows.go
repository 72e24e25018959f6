//go:build windows

package procs

import "errors"

// ErrUnsupported is returned on platforms without process-group semantics.
var ErrUnsupported = errors.New("process snapshots are not supported on windows")

func snapshot() ([]Process, error) {
	return nil, ErrUnsupported
}
