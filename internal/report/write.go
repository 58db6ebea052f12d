package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/scan"
)

// ErrWrite marks a failure to persist a report artifact. A partially
// written artifact may be left behind; the error is never swallowed.
var ErrWrite = errors.New("failed to write report artifact")

// Write renders both artifacts into dir as report.json and report.txt.
// Either write failing fails the whole operation.
func Write(dir string, rep scan.Report) (jsonPath, txtPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	data, err := RenderJSON(rep)
	if err != nil {
		return "", "", err
	}
	jsonPath = filepath.Join(dir, "report.json")
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	txtPath = filepath.Join(dir, "report.txt")
	if err := os.WriteFile(txtPath, []byte(RenderText(rep)), 0o644); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	return jsonPath, txtPath, nil
}
