package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ledger/internal/app"
)

func (c *CLI) newReportCmd() *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Print the artifact history stored in a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ShowReport(cmd.Context(), args[0], app.ReportOptions{
				ConfigPath: c.configPath,
				Verify:     verify,
			})
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "Check that every recorded file exists and print its fingerprint")
	return cmd
}
