package logsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExecRunner abstracts subprocess invocation so tests can substitute a
// fixture. Run returns the combined stdout/stderr of the process and its
// exit code. A non-zero exit is a captured result, not an error; the error
// is non-nil only when the process could not be started at all.
type ExecRunner interface {
	Run(ctx context.Context, dir string, name string, args ...string) (string, int, error)
}

// RealExecRunner invokes the command on the host.
type RealExecRunner struct{}

func (r RealExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The runner ran and reported failures; that is exactly the
			// log text we want to scan.
			return string(output), exitErr.ExitCode(), nil
		}
		return "", 0, fmt.Errorf("%w: %s %s: %v", ErrRunnerStart, name, strings.Join(args, " "), err)
	}
	return string(output), 0, nil
}

// FixtureExecRunner serves a canned log instead of running anything.
type FixtureExecRunner struct {
	Path     string
	ExitCode int
}

func (f FixtureExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (string, int, error) {
	_ = ctx
	_ = dir
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", 0, fmt.Errorf("%w: fixture %s: %v", ErrRunnerStart, f.Path, err)
	}
	return string(data), f.ExitCode, nil
}
