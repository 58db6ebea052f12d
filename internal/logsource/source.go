// Package logsource normalizes the two origins of log text, an existing
// log file or a freshly captured test run, into the single text input the
// scanner consumes.
package logsource

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNoOrigin is the configuration error for an unspecified origin.
	ErrNoOrigin = errors.New("no log origin: provide a log path or enable a test run")
	// ErrLogNotFound reports a missing log file for the file origin.
	ErrLogNotFound = errors.New("log file not found")
	// ErrRunnerStart reports that the test runner could not be started.
	// The runner exiting non-zero is not this error; a failing run is a
	// successfully captured result.
	ErrRunnerStart = errors.New("test runner could not be started")
)

// FileReturnCode is the sentinel recorded as the run's return code when
// the log came from a file and no process was actually run.
const FileReturnCode = 0

// DefaultRunnerCommand and DefaultRunnerArgs are the fixed invocation used
// for the run origin.
const DefaultRunnerCommand = "pytest"

func DefaultRunnerArgs() []string {
	return []string{"-v", "--tb=short", "--capture=no", "--maxfail=3"}
}

// Origin selects where log text comes from. When both a path and a run are
// requested, the path wins and the run is skipped.
type Origin struct {
	LogPath  string
	RunTests bool
}

// Source produces log text from an Origin.
type Source struct {
	Runner  ExecRunner
	Command string
	Args    []string
}

// NewSource wires a Source around an ExecRunner, falling back to the fixed
// pytest invocation when command or args are unset.
func NewSource(runner ExecRunner, command string, args []string) Source {
	if command == "" {
		command = DefaultRunnerCommand
	}
	if len(args) == 0 {
		args = DefaultRunnerArgs()
	}
	return Source{Runner: runner, Command: command, Args: args}
}

// Collect resolves the origin into (text, returnCode). The file origin
// yields FileReturnCode since no process ran. The run origin blocks until
// the runner exits; callers needing bounded latency pass a ctx that the
// runner's CommandContext will honor.
func (s Source) Collect(ctx context.Context, origin Origin) (string, int, error) {
	if origin.LogPath != "" {
		data, err := os.ReadFile(origin.LogPath)
		if err != nil {
			if os.IsNotExist(err) {
				return "", 0, fmt.Errorf("%w: %s", ErrLogNotFound, origin.LogPath)
			}
			return "", 0, fmt.Errorf("failed to read log %s: %w", origin.LogPath, err)
		}
		return string(data), FileReturnCode, nil
	}

	if origin.RunTests {
		output, exitCode, err := s.Runner.Run(ctx, "", s.Command, s.Args...)
		if err != nil {
			return "", 0, err
		}
		return output, exitCode, nil
	}

	return "", 0, ErrNoOrigin
}
