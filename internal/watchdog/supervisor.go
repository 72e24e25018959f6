// Package watchdog supervises a single long-running build/test tool: it
// spawns the tool as a process-group leader, tees its output to a log sink,
// polls the sink for a marker pattern, and cuts the tool short once the
// marker shows up so CI wall-clock time stays bounded.
package watchdog

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sanjeeviv/shark/internal/models"
	"github.com/sanjeeviv/shark/internal/procs"
)

const defaultPollInterval = 2 * time.Second

// Options configures a supervised run.
type Options struct {
	// Workspace is the child's working directory. Its path doubles as the
	// command-line substring that identifies which group members the
	// marker-triggered kill is allowed to target.
	Workspace string

	// Marker is the literal text fragment whose appearance in the output
	// means the rest of the run is uninteresting.
	Marker string

	// PollInterval is how often the log sink is re-scanned. Defaults to 2s.
	PollInterval time.Duration

	// LogPath is where the child's combined output is teed. Defaults to
	// <workspace>/shark-ci.log. Removed before each run so a marker left
	// over from a previous run cannot match.
	LogPath string

	// Stdout receives the live copy of the child's output. Defaults to
	// os.Stdout.
	Stdout io.Writer

	// RunID labels the run in logs and status reports. Defaults to a
	// fresh UUID.
	RunID string
}

// Supervisor owns at most one child process for its lifetime.
type Supervisor struct {
	opts Options

	cmd       *exec.Cmd
	sink      *os.File
	closeSink sync.Once

	// done is closed by the reaper goroutine after cmd.Wait returns;
	// waitErr is written before the close and only read after it.
	done    chan struct{}
	waitErr error

	mu     sync.Mutex
	status models.RunStatus
}

// New returns an unstarted supervisor. Zero-value options get defaults
// filled in here so callers can set only what they care about.
func New(opts Options) *Supervisor {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if len(opts.LogPath) == 0 {
		opts.LogPath = filepath.Join(opts.Workspace, "shark-ci.log")
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if len(opts.RunID) == 0 {
		opts.RunID = uuid.NewString()
	}
	return &Supervisor{
		opts: opts,
		status: models.RunStatus{
			RunID:     opts.RunID,
			State:     models.RunStateCreated,
			Workspace: opts.Workspace,
			LogPath:   opts.LogPath,
		},
	}
}

// Start spawns the command as a new process-group leader with its combined
// output duplicated to the terminal and a fresh log sink. The sink is
// created before the child runs, so the poll loop can never race a marker
// that appears before monitoring begins.
func (s *Supervisor) Start(name string, args ...string) error {
	if s.cmd != nil {
		return ErrAlreadyStarted
	}

	if info, err := os.Stat(s.opts.Workspace); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: workspace %q is not a directory", ErrSpawn, s.opts.Workspace)
	}

	// Drop any sink left over from a previous run.
	if err := os.Remove(s.opts.LogPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: removing stale log %s: %v", ErrSpawn, s.opts.LogPath, err)
	}

	sink, err := os.Create(s.opts.LogPath)
	if err != nil {
		return fmt.Errorf("%w: creating log sink: %v", ErrSpawn, err)
	}

	cmd := exec.Command(name, args...)
	cmd.Dir = s.opts.Workspace
	output := io.MultiWriter(s.opts.Stdout, sink)
	cmd.Stdout = output
	cmd.Stderr = output
	setCmdSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		sink.Close()
		return fmt.Errorf("%w: %s: %v", ErrSpawn, name, err)
	}

	pgid, err := processGroup(cmd.Process.Pid)
	if err != nil {
		// The child was started with Setpgid, so its group id equals
		// its pid.
		pgid = cmd.Process.Pid
	}

	s.cmd = cmd
	s.sink = sink
	s.done = make(chan struct{})

	s.mu.Lock()
	s.status.State = models.RunStateRunning
	s.status.Command = strings.Join(append([]string{name}, args...), " ")
	s.status.PID = cmd.Process.Pid
	s.status.PGID = pgid
	s.status.StartedAt = time.Now()
	s.mu.Unlock()

	go func() {
		s.waitErr = cmd.Wait()
		close(s.done)
	}()

	logrus.WithFields(logrus.Fields{
		"run":  s.opts.RunID,
		"pid":  cmd.Process.Pid,
		"pgid": pgid,
		"log":  s.opts.LogPath,
	}).Infoln("Supervised process started")

	return nil
}

// PollUntilMarkerOrExit scans the log sink every poll interval and probes
// child liveness without blocking on either. It returns MatchFound as soon
// as the marker is seen, or ExitedNoMatch if the child terminates first. On
// exit one final scan is always performed, since the marker could have been
// flushed right before the process died.
func (s *Supervisor) PollUntilMarkerOrExit(ctx context.Context) (models.MatchResult, error) {
	if s.cmd == nil {
		return "", ErrNotStarted
	}

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case <-s.done:
			found, err := s.scan()
			if err != nil {
				// The sink stayed unreadable past the child's
				// lifetime; nothing left to retry against.
				return "", fmt.Errorf("%w: %v", ErrScan, err)
			}
			if found {
				s.setMatch(models.MatchFound)
				return models.MatchFound, nil
			}
			s.setMatch(models.ExitedNoMatch)
			return models.ExitedNoMatch, nil

		case <-ticker.C:
			found, err := s.scan()
			if err != nil {
				// Transient: skip this iteration, retry next tick.
				logrus.WithError(err).Warnln("Log sink unreadable, will retry")
				continue
			}
			if found {
				s.setMatch(models.MatchFound)
				return models.MatchFound, nil
			}
		}
	}
}

// scan re-reads the whole sink. The sink is append-only and single-writer,
// so a read racing a partial write at worst misses the marker until the
// next interval.
func (s *Supervisor) scan() (bool, error) {
	data, err := os.ReadFile(s.opts.LogPath)
	if err != nil {
		return false, err
	}
	return strings.Contains(string(data), s.opts.Marker), nil
}

// KillMatching force-kills the processes in the child's group whose command
// line contains the workspace path. Deliberately narrower than killing the
// whole group: the group may contain output-piping helpers whose buffers
// still need to flush. Signals to already-gone processes are ignored.
func (s *Supervisor) KillMatching() error {
	if s.cmd == nil {
		return ErrNotStarted
	}

	s.mu.Lock()
	pgid := s.status.PGID
	s.status.State = models.RunStateKilling
	s.mu.Unlock()

	snap, err := procs.Snapshot()
	if err != nil {
		// No process table to filter against; degrade to killing the
		// child itself.
		logrus.WithError(err).Warnln("Process snapshot failed, killing child directly")
		return killPID(s.cmd.Process.Pid)
	}

	var killed int
	for _, p := range snap {
		if p.PGID != pgid {
			continue
		}
		if !strings.Contains(p.Command, s.opts.Workspace) {
			continue
		}
		if err := killPID(p.PID); err != nil {
			logrus.WithError(err).WithField("pid", p.PID).Warnln("Failed to kill process")
			continue
		}
		killed++
	}

	logrus.WithFields(logrus.Fields{
		"run":    s.opts.RunID,
		"pgid":   pgid,
		"killed": killed,
	}).Infoln("Cut supervised run short")

	return nil
}

// KillTree force-kills the child's entire process group, helpers included.
// This is the blanket interrupt path, coarser than KillMatching.
func (s *Supervisor) KillTree() error {
	if s.cmd == nil {
		return ErrNotStarted
	}

	s.mu.Lock()
	pgid := s.status.PGID
	s.status.State = models.RunStateKilling
	s.mu.Unlock()

	return killGroup(s.cmd, pgid)
}

// Await blocks until the child has been reaped, after either natural exit
// or a kill. Must be called exactly once per Start so no zombie is left
// behind. The returned status carries the child's real exit code; forced
// termination surfaces as -1.
func (s *Supervisor) Await() models.RunStatus {
	if s.cmd == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.status
	}

	<-s.done
	s.closeSink.Do(func() { s.sink.Close() })

	if s.waitErr != nil {
		logrus.WithError(s.waitErr).Debugln("Supervised process exited with error")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.State = models.RunStateReaped
	s.status.EndedAt = time.Now()
	if state := s.cmd.ProcessState; state != nil {
		s.status.ExitCode = state.ExitCode()
	}
	return s.status
}

// Status returns a point-in-time copy of the run's state, safe to call from
// other goroutines (the status server does).
func (s *Supervisor) Status() models.RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Supervisor) setMatch(result models.MatchResult) {
	s.mu.Lock()
	s.status.Match = result
	s.mu.Unlock()
}
