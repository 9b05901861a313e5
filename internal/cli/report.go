package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	console "github.com/okian/bikeshare/internal/adapters/console"
	"github.com/okian/bikeshare/internal/domain/model"
)

// reportOptions are the flags of the report command.
type reportOptions struct {
	city  string
	month string
	day   string
	raw   int
}

func newReportCommand(root *rootOptions) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the statistics of one selection and exit",
		Long: `Print the statistics of one selection without prompting.

Examples:
  bikeshare report --city chicago
  bikeshare report --city "new york city" --month march --day friday
  bikeshare report --city washington --raw 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.city, "city", "", "City: chicago, new york city, washington")
	cmd.Flags().StringVar(&opts.month, "month", "all", "Month: all, january ... june")
	cmd.Flags().StringVar(&opts.day, "day", "all", "Day of week: all, monday ... sunday")
	cmd.Flags().IntVar(&opts.raw, "raw", 0, "Also print this many raw rows")
	_ = cmd.MarkFlagRequired("city")
	return cmd
}

func runReport(cmd *cobra.Command, root *rootOptions, opts *reportOptions) error {
	sel, err := model.ParseSelection(opts.city, opts.month, opts.day)
	if err != nil {
		return fmt.Errorf("invalid selection: %w", err)
	}

	ctx := cmd.Context()
	app, err := NewApp(ctx, root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	report, table, err := app.Service.Run(ctx, sel)
	if err != nil {
		return fmt.Errorf("could not load data for %s: %w", sel.City.Title(), err)
	}

	out := cmd.OutOrStdout()
	console.WriteReport(out, report)
	if err := console.WriteRows(out, table, opts.raw); err != nil {
		return fmt.Errorf("print raw data: %w", err)
	}
	return nil
}
