package main

import (
	"context"
	"fmt"

	"datenight/internal/db"
	"datenight/internal/importer"
	"datenight/internal/normalize"
	"datenight/internal/scoring"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var importBatchSize int

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Upsert a data file into Postgres",
	Long: `Normalizes the file, then writes cities, neighborhoods, cuisines and
restaurants to DATABASE_URL in transactions of --batch-size restaurants.
The first failing batch stops the import; earlier batches stay committed.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var recountCmd = &cobra.Command{
	Use:   "recount",
	Short: "Recompute cached restaurant counts in Postgres",
	Args:  cobra.NoArgs,
	RunE:  runRecount,
}

func init() {
	importCmd.Flags().IntVar(&importBatchSize, "batch-size", importer.DefaultBatchSize, "Restaurants per transaction")
}

func connect(ctx context.Context) (*pgxpool.Pool, error) {
	if err := cfg.Require("DATABASE_URL"); err != nil {
		return nil, err
	}
	pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	if err := db.InitSchema(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	scorer, err := loadScorer(scoring.NoJitter)
	if err != nil {
		return err
	}
	records, err := normalize.LoadRestaurants(args[0], normalizeOptions(scorer))
	if err != nil {
		return err
	}

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	stats, err := importer.New(pool, logger).WithBatchSize(importBatchSize).Import(ctx, records)
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d restaurants in %d batches (%d neighborhoods, %d cuisines)\n",
		stats.Restaurants, stats.Batches, stats.Neighborhoods, stats.Cuisines)
	return err
}

func runRecount(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	pool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := importer.New(pool, logger).Recount(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "restaurant counts updated")
	return nil
}
