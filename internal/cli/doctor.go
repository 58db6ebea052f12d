package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/report"
)

func NewDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the scanner's environment and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ciscan doctor")

			// Config already loaded by initApp; reaching here means it parsed.
			fmt.Fprintln(out, "- config: ok")

			runner := app.RepoConfig.Runner.Command
			if _, err := exec.LookPath(runner); err != nil {
				// File-origin scans still work without the runner.
				fmt.Fprintf(out, "- %s: not on PATH (only --log scans will work)\n", runner)
			} else {
				fmt.Fprintf(out, "- %s: ok\n", runner)
			}

			if _, err := report.CompileSchema(report.DefaultSchemaPath()); err != nil {
				fmt.Fprintln(cmd.OutOrStderr(), "- report schema: failed")
				return err
			}
			fmt.Fprintln(out, "- report schema: ok")

			fmt.Fprintln(out, "doctor checks passed")
			return nil
		},
	}
	return cmd
}
