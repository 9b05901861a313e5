// Package cli wires configuration, logging and adapters into cobra commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	console "github.com/okian/bikeshare/internal/adapters/console"
)

// rootOptions are the persistent flags shared by every command. Empty values
// keep what the configuration loaded.
type rootOptions struct {
	dataDir     string
	logLevel    string
	metricsAddr string
}

// NewRootCommand builds the command tree. The root command runs the
// interactive shell on the command's input and output streams.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bikeshare",
		Short: "Explore US bikeshare trip data",
		Long: `bikeshare asks for a city, a month and a day of the week, then prints
trip statistics for the matching rentals and pages through the raw rows.

Datasets are read from the data directory: chicago.csv, new_york_city.csv and
washington.csv, optionally snappy compressed (.sz).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.dataDir, "data-dir", "", "Directory holding the city datasets")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve /metrics, /stats and /healthz on this address")

	cmd.AddCommand(newReportCommand(opts))
	cmd.AddCommand(newGenerateCommand(opts))
	return cmd
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runShell(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()

	app, err := NewApp(ctx, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	sh := console.New(app.Service, cmd.InOrStdin(), cmd.OutOrStdout(),
		console.WithPageSize(app.Config.PageSize),
		console.WithLogger(app.Logger.Named("shell")),
	)
	return sh.Run(ctx)
}
