// Package commands implements the CLI commands for ledger.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/ledger/internal/app"
	"go.trai.ch/ledger/internal/build"
	"go.trai.ch/ledger/internal/core/domain"
)

// CLI represents the command line interface for ledger.
type CLI struct {
	app     Application
	rootCmd *cobra.Command

	configPath string
	verbose    bool
	jsonLogs   bool
	onVerbose  func(bool)
	onJSONLogs func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Plan(ctx context.Context, opts app.PlanOptions) ([]app.VariantPlan, error)
	ShowReport(ctx context.Context, path string, opts app.ReportOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// Option configures a CLI.
type Option func(*CLI)

// WithVerboseHook registers fn to receive the value of the --verbose flag before any
// command runs.
func WithVerboseHook(fn func(bool)) Option {
	return func(c *CLI) {
		c.onVerbose = fn
	}
}

// WithJSONLogsHook registers fn to receive the value of the --log-json flag before any
// command runs.
func WithJSONLogsHook(fn func(bool)) Option {
	return func(c *CLI) {
		c.onJSONLogs = fn
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ledger",
		Short:         "Plan build artifact producers and their consumers",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	// -v belongs to --verbose, so --version is declared without a shorthand.
	rootCmd.Flags().Bool("version", false, "Print the application version")
	rootCmd.InitDefaultVersionFlag()

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", domain.DefaultConfigFile, "Path to the pipeline configuration")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&c.jsonLogs, "log-json", false, "Write logs as JSON")
	rootCmd.PersistentPreRun = func(*cobra.Command, []string) {
		if c.onJSONLogs != nil {
			c.onJSONLogs(c.jsonLogs)
		}
		if c.onVerbose != nil {
			c.onVerbose(c.verbose)
		}
	}

	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newReportCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
