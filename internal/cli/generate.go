package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/okian/bikeshare/internal/domain/model"
	"github.com/okian/bikeshare/internal/sampledata"
)

// generateOptions are the flags of the generate command.
type generateOptions struct {
	trips    int
	seed     uint64
	year     int
	workers  int
	compress bool
}

const defaultSampleTrips = 10000

func newGenerateCommand(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [city...]",
		Short: "Write synthetic city datasets",
		Long: `Write synthetic trip datasets to the data directory, one file per city,
named after the configured city files. Without arguments every city is written.
Compressed files get a .sz suffix; point city_files at them to read them back.

Examples:
  bikeshare generate --data-dir ./data
  bikeshare generate chicago --trips 500 --seed 42
  bikeshare generate washington --compress`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, opts, args)
		},
	}

	cmd.Flags().IntVar(&opts.trips, "trips", defaultSampleTrips, "Number of trips per city")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "Random seed; the same seed writes the same rows")
	cmd.Flags().IntVar(&opts.year, "year", 0, "Calendar year of the trips (default 2017)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Concurrent row builders (default 4)")
	cmd.Flags().BoolVar(&opts.compress, "compress", false, "Write snappy compressed files with a .sz suffix")
	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions, args []string) error {
	cities := model.Cities()
	if len(args) > 0 {
		cities = make([]model.City, 0, len(args))
		for _, a := range args {
			c, err := model.ParseCity(a)
			if err != nil {
				return fmt.Errorf("invalid city: %w", err)
			}
			cities = append(cities, c)
		}
	}

	ctx := cmd.Context()
	app, err := NewApp(ctx, root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	for _, city := range cities {
		name := filepath.Base(app.Config.CityFiles[city.String()])
		if opts.compress && filepath.Ext(name) != ".sz" {
			name += ".sz"
		}
		stats, err := sampledata.WriteFile(ctx, app.Config.DataDir, name, sampledata.Config{
			City:     city,
			Trips:    opts.trips,
			Seed:     opts.seed,
			Year:     opts.year,
			Workers:  opts.workers,
			Compress: opts.compress,
		})
		if err != nil {
			return fmt.Errorf("generate %s: %w", city.Title(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d trips for %s to %s\n", stats.Rows, city.Title(), stats.Path)
	}
	return nil
}
