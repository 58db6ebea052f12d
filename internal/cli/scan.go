package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/logsource"
	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/redact"
	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/report"
	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/scan"
)

// ErrIssuesFound signals a completed scan that detected one or more
// issues; it maps to exit code 1.
var ErrIssuesFound = errors.New("issues detected in log")

func NewScanCmd() *cobra.Command {
	var logPath string
	var runTests bool
	var outDir string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a saved CI log, or run pytest and scan its output",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}

			origin := logsource.Origin{LogPath: logPath, RunTests: runTests}
			text, returnCode, err := app.Source.Collect(context.Background(), origin)
			if err != nil {
				return err
			}

			issues := scan.Run(app.Detectors, text)
			for i := range issues {
				issues[i].Context = redact.Optional(issues[i].Context, app.Config.Redaction.Enabled)
			}

			rep := scan.NewReport(reportTime(), returnCode, issues)
			dir := outDir
			if dir == "" {
				dir = app.Config.Output.Dir
			}
			jsonPath, txtPath, err := report.Write(dir, rep)
			if err != nil {
				return err
			}

			printScanSummary(cmd, rep, jsonPath, txtPath)
			if rep.TotalIssues() > 0 {
				return fmt.Errorf("%w: %d", ErrIssuesFound, rep.TotalIssues())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logPath, "log", "", "Path to a saved CI/pytest log (takes priority over --run-tests)")
	cmd.Flags().BoolVar(&runTests, "run-tests", false, "Run pytest locally and scan its captured output")
	cmd.Flags().StringVar(&outDir, "out", "", "Report output directory (default from config)")

	return cmd
}

func printScanSummary(cmd *cobra.Command, rep scan.Report, jsonPath, txtPath string) {
	out := cmd.OutOrStdout()
	counts := scan.CountBySeverity(rep.Issues)

	fmt.Fprintln(out, "Scan complete")
	countLine := fmt.Sprintf("Issues found: %d (HIGH %d, MEDIUM %d, LOW %d)",
		rep.TotalIssues(),
		counts[scan.SeverityHigh],
		counts[scan.SeverityMedium],
		counts[scan.SeverityLow])
	if rep.TotalIssues() > 0 {
		fmt.Fprintln(out, color.New(color.FgRed, color.Bold).Sprint(countLine))
	} else {
		fmt.Fprintln(out, color.New(color.FgGreen).Sprint(countLine))
	}
	fmt.Fprintln(out, "Report saved:")
	fmt.Fprintln(out, "  JSON: "+jsonPath)
	fmt.Fprintln(out, "  TXT:  "+txtPath)
}

// reportTime is the report timestamp; CISCAN_NOW pins it for golden tests.
func reportTime() time.Time {
	if v := os.Getenv("CISCAN_NOW"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			return ts
		}
	}
	return time.Now().UTC()
}
