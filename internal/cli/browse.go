package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/report"
)

func NewBrowseCmd() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse a written report interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}

			path := reportPath
			if path == "" {
				path = filepath.Join(app.Config.Output.Dir, "report.json")
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read report %s: %w", path, err)
			}
			doc, err := report.ParseJSON(data)
			if err != nil {
				return err
			}

			if len(doc.Issues) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No issues in report.")
				return nil
			}
			if !app.Config.TUI.Enabled {
				return printIssueList(cmd, doc)
			}
			return runBrowser(doc)
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "Path to report.json (default from output config)")

	return cmd
}

func printIssueList(cmd *cobra.Command, doc report.Document) error {
	out := cmd.OutOrStdout()
	for i, iss := range doc.Issues {
		fmt.Fprintf(out, "[%d] %s - %s: %s\n", i+1, iss.Type, iss.Severity, iss.Fix)
	}
	return nil
}
