package cli

import (
	"errors"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/logsource"
	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/report"
)

// ExitCode maps an Execute error to the process exit code: 0 clean scan,
// 1 issues found, 2 no origin configured, 3 log file missing, 4 runner
// failed to start, 5 report artifact could not be written.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrIssuesFound):
		return 1
	case errors.Is(err, logsource.ErrNoOrigin):
		return 2
	case errors.Is(err, logsource.ErrLogNotFound):
		return 3
	case errors.Is(err, logsource.ErrRunnerStart):
		return 4
	case errors.Is(err, report.ErrWrite):
		return 5
	default:
		return 1
	}
}
