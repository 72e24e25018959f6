package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sanjeeviv/shark/internal/daemon"
	"github.com/sanjeeviv/shark/internal/models"
	"github.com/sanjeeviv/shark/internal/watchdog"
)

// exitCodeError carries the supervised run's exit code out through the
// normal error return, so deferred cleanup (status server shutdown, signal
// teardown) runs before main exits with it.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("supervised command exited with code %d", e.code)
}

func (e exitCodeError) ExitCode() int {
	return e.code
}

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Supervise a build/test tool and cut it short on a marker",
	Long: `Run the given command under the watchdog. The command is spawned in its
own process group inside the workspace directory, with output teed to the
terminal and a log artifact. Once the marker appears in the output, every
process in the group whose command line contains the workspace path is
force-killed and the run counts as complete.

An interrupt (Ctrl-C) kills the entire supervised process tree instead,
helpers included, so nothing outlives the harness.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSupervised,
}

func init() {
	runCmd.Flags().String("workspace", "", "Working directory for the tool; also the kill-target filter")
	runCmd.Flags().String("marker", "", "Output fragment that means the rest of the run is uninteresting")
	runCmd.Flags().String("poll-interval", "", "How often to re-scan the log (Go duration or ISO 8601)")
	runCmd.Flags().String("log-file", "", "Log artifact path (default <workspace>/shark-ci.log)")
	runCmd.Flags().String("status-addr", "", "Serve run status and logs on this address while running")

	rootCmd.AddCommand(runCmd)
}

func runSupervised(cmd *cobra.Command, args []string) error {
	applyRunFlags(cmd)

	if err := cfg.Validate(); err != nil {
		return err
	}

	interval, err := cfg.GetPollInterval()
	if err != nil {
		return err
	}

	logPath := cfg.Watch.LogFile
	if len(logPath) > 0 && !filepath.IsAbs(logPath) {
		logPath = filepath.Join(cfg.Watch.Workspace, logPath)
	}

	sup := watchdog.New(watchdog.Options{
		Workspace:    cfg.Watch.Workspace,
		Marker:       cfg.Watch.Marker,
		PollInterval: interval,
		LogPath:      logPath,
		RunID:        uuid.NewString(),
	})

	// A spawn failure aborts the whole CI run loudly; there is nothing to
	// retry.
	if err := sup.Start(args[0], args[1:]...); err != nil {
		return err
	}

	if addr, _ := cmd.Flags().GetString("status-addr"); len(addr) > 0 {
		srv := daemon.NewServer(addr, sup, events)
		srv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logrus.WithError(err).Warnln("Status server shutdown failed")
			}
		}()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Operator interrupt: blanket-kill the whole supervised tree, coarser
	// than the marker-triggered targeted kill. No descendant may outlive
	// the harness.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig, ok := <-sigCh
		if !ok {
			return
		}
		logrus.Warnln("Received signal, killing supervised process tree:", sig)
		if err := sup.KillTree(); err != nil {
			logrus.WithError(err).Errorln("Failed to kill process tree")
		}
		cancel()
	}()

	result, err := sup.PollUntilMarkerOrExit(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			sup.Await()
			fmt.Println(errorStyle.Render("Run interrupted; supervised process tree killed"))
			return exitCodeError{code: 130}
		}
		// Lost the log sink for good; make sure nothing is left running
		// before surfacing the error.
		if killErr := sup.KillTree(); killErr != nil {
			logrus.WithError(killErr).Errorln("Failed to kill process tree")
		}
		sup.Await()
		return err
	}

	cutShort := result == models.MatchFound
	if cutShort {
		if err := sup.KillMatching(); err != nil {
			logrus.WithError(err).Warnln("Targeted kill failed")
		}
	}

	status := sup.Await()
	reportRun(status, cutShort)

	if !cutShort && status.ExitCode != 0 {
		code := status.ExitCode
		if code < 0 {
			// -1 means the child died to a signal we never sent;
			// it is not a valid code to hand back to the shell.
			code = 1
		}
		return exitCodeError{code: code}
	}
	return nil
}

// applyRunFlags lets command-line flags override the file/env config.
func applyRunFlags(cmd *cobra.Command) {
	if v, _ := cmd.Flags().GetString("workspace"); len(v) > 0 {
		cfg.Watch.Workspace = v
	}
	if v, _ := cmd.Flags().GetString("marker"); len(v) > 0 {
		cfg.Watch.Marker = v
	}
	if v, _ := cmd.Flags().GetString("poll-interval"); len(v) > 0 {
		cfg.Watch.PollInterval = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); len(v) > 0 {
		cfg.Watch.LogFile = v
	}
}

func reportRun(status models.RunStatus, cutShort bool) {
	duration := status.EndedAt.Sub(status.StartedAt).Round(time.Second)

	fmt.Println()
	if cutShort {
		fmt.Println(successStyle.Render(
			fmt.Sprintf("Run %s cut short after marker match (%s)", status.RunID, duration)))
	} else if status.ExitCode == 0 {
		fmt.Println(successStyle.Render(
			fmt.Sprintf("Run %s exited naturally with code 0 (%s)", status.RunID, duration)))
	} else {
		fmt.Println(warningStyle.Render(
			fmt.Sprintf("Run %s exited naturally with code %d (%s)", status.RunID, status.ExitCode, duration)))
	}
	fmt.Println(infoStyle.Render("Full output: " + status.LogPath))
}
