package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ledger/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove persisted artifact reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			buildDir, _ := cmd.Flags().GetBool("build")
			all, _ := cmd.Flags().GetBool("all")
			reportDir, _ := cmd.Flags().GetString("report-dir")

			opts := app.CleanOptions{
				ConfigPath: c.configPath,
				ReportDir:  reportDir,
			}

			switch {
			case all:
				opts.Reports = true
				opts.Build = true
			case buildDir:
				opts.Build = true
			default:
				opts.Reports = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("build", "b", false, "Remove the pipeline build directory instead of the reports")
	cmd.Flags().BoolP("all", "a", false, "Remove both reports and the build directory")
	cmd.Flags().String("report-dir", "", "Directory holding artifact reports (default .ledger/reports)")

	return cmd
}
