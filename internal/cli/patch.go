package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/patch"
)

func NewPatchCmd() *cobra.Command {
	var dependencies string
	var root string

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Generate patch instructions for missing dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			deps := strings.Split(dependencies, ",")
			summary, err := patch.GenerateDependencyPatches(root, deps, app.RepoConfig.Patches.Dir)
			if err != nil {
				return err
			}

			if summary.TotalPatches == 0 {
				fmt.Fprintln(out, "All dependencies already present.")
				return nil
			}
			for _, p := range summary.Patches {
				fmt.Fprintf(out, "- %s: add %s (%s)\n", p.File, p.Dependency, p.PatchFile)
			}
			fmt.Fprintf(out, "Created %d dependency patches in %s\n", summary.TotalPatches, app.RepoConfig.Patches.Dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dependencies, "dependencies", "RestrictedPython,pydantic", "Comma-separated dependencies to check")
	cmd.Flags().StringVar(&root, "root", ".", "Project tree holding the dependency manifests")

	return cmd
}

func NewFixImportsCmd() *cobra.Command {
	var srcPath string

	cmd := &cobra.Command{
		Use:   "fix-imports",
		Short: "Generate patches for Python files using Optional[] without importing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if _, err := os.Stat(srcPath); err != nil {
				return fmt.Errorf("source path %s not found: %w", srcPath, err)
			}

			patched, err := patch.FixOptionalImports(srcPath, app.RepoConfig.Patches.Dir)
			if err != nil {
				return err
			}

			for _, file := range patched {
				fmt.Fprintf(out, "- %s\n", file)
			}
			fmt.Fprintf(out, "Created %d import patches in %s\n", len(patched), app.RepoConfig.Patches.Dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&srcPath, "src-path", "src", "Source directory to scan for Optional[] usage")

	return cmd
}
