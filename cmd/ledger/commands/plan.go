package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ledger/internal/app"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [variants...]",
		Short: "Configure variants and print task order and final artifacts",
		Long: "Configure every listed variant (all declared variants when none are given), print the\n" +
			"task execution order and the final files of each artifact type, and persist one\n" +
			"artifacts report per variant.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reportDir, _ := cmd.Flags().GetString("report-dir")
			jobs, _ := cmd.Flags().GetInt("jobs")

			_, err := c.app.Plan(cmd.Context(), app.PlanOptions{
				ConfigPath:  c.configPath,
				Variants:    args,
				ReportDir:   reportDir,
				Parallelism: jobs,
			})
			return err
		},
	}
	cmd.Flags().String("report-dir", "", "Directory to write artifact reports to (default .ledger/reports)")
	cmd.Flags().IntP("jobs", "j", 0, "Maximum number of variants configured at once (0 means no limit)")
	return cmd
}
