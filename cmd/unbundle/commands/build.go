package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/unbundle/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Partition the module graph and emit it below the target root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			watch, _ := cmd.Flags().GetBool("watch")
			noVendor, _ := cmd.Flags().GetBool("no-vendor")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				ConfigPath: configPath,
				Watch:      watch,
				NoVendor:   noVendor,
			})
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "Rebuild whenever project sources change")
	cmd.Flags().Bool("no-vendor", false, "Skip copying the dependency closure into node_modules")
	return cmd
}
