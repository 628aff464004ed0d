package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/unbundle/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the emit record store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			all, _ := cmd.Flags().GetBool("all")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				ConfigPath: configPath,
				All:        all,
			})
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Remove the whole target root")

	return cmd
}
