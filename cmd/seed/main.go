package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"techgear/database"
	"techgear/internal/config"
	"techgear/internal/logging"
)

func main() {
	opts := database.DefaultSeedOptions()
	var (
		envFile     string
		applySchema bool
		truncate    bool
		verbosity   int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the catalog store with generated demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			logging.Apply(logging.LevelForVerbosity(cfg.Log.Level, verbosity), cfg.Loader(), cfg.Log.File)

			dbOpts, err := cfg.DatabaseOptions()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			db, err := database.Open(ctx, dbOpts)
			if err != nil {
				return err
			}
			defer db.Close()

			log.Info().Str("driver", db.Dialect().DriverName()).Msg("Seeding database")

			if applySchema {
				if err := database.ApplySchema(ctx, db); err != nil {
					return err
				}
			}
			if truncate {
				if err := database.Truncate(ctx, db); err != nil {
					return err
				}
			}

			_, err = database.Seed(ctx, db, opts)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&envFile, "env-file", ".env", "Environment file loaded before reading configuration")
	flags.BoolVar(&applySchema, "schema", false, "Create the tables before seeding")
	flags.BoolVar(&truncate, "truncate", false, "Delete existing rows before seeding")
	flags.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")
	flags.IntVar(&opts.Manufacturers, "manufacturers", opts.Manufacturers, "Number of manufacturers")
	flags.IntVar(&opts.Categories, "categories", opts.Categories, "Number of categories")
	flags.IntVar(&opts.Products, "products", opts.Products, "Number of products")
	flags.IntVar(&opts.Customers, "customers", opts.Customers, "Number of customers")
	flags.IntVar(&opts.Orders, "orders", opts.Orders, "Number of orders")
	flags.IntVar(&opts.Reviews, "reviews", opts.Reviews, "Number of reviews")
	flags.Float64Var(&opts.CategorizedRatio, "categorized-ratio", opts.CategorizedRatio, "Share of products linked to a category (0..1)")
	flags.Int64Var(&opts.RandomSeed, "random-seed", opts.RandomSeed, "Random generator seed")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
