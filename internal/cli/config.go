package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/legion14041981-ui/ultima-prime-ci-overlord/internal/config"
)

// mergedConfig is the config command's output contract: the user-level
// scanner settings and the per-repo runner settings after merging over
// the built-in defaults.
type mergedConfig struct {
	User config.Config     `json:"user"`
	Repo config.RepoConfig `json:"repo"`
}

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print merged configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(mergedConfig{User: app.Config, Repo: app.RepoConfig})
		},
	}
	return cmd
}
