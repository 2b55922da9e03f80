package main

import (
	"fmt"

	"datenight/internal/normalize"
	"datenight/internal/redirect"
	"datenight/internal/restaurant"
	"datenight/internal/scoring"

	"github.com/spf13/cobra"
)

var (
	redirectsOut     string
	redirectsMapping string
	redirectsFromDB  bool
	redirectsData    string
)

var redirectsCmd = &cobra.Command{
	Use:   "redirects",
	Short: "Generate static redirect pages for legacy URLs",
	Long: `Writes <out>/<old path>/index.html meta-refresh pages. Rules come from a
literal JSON mapping (--mapping) and from the current restaurant slugs, read
from Postgres (--from-db) or a data file (--data). Mapping rules win when
both define the same old path.`,
	Args: cobra.NoArgs,
	RunE: runRedirects,
}

func init() {
	redirectsCmd.Flags().StringVar(&redirectsOut, "out", "dist", "Output directory")
	redirectsCmd.Flags().StringVar(&redirectsMapping, "mapping", "", "JSON object of old path -> new path")
	redirectsCmd.Flags().BoolVar(&redirectsFromDB, "from-db", false, "Derive rules from restaurants in DATABASE_URL")
	redirectsCmd.Flags().StringVar(&redirectsData, "data", "", "Derive rules from restaurants in a data file")
}

func runRedirects(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var lists [][]redirect.Rule
	if redirectsMapping != "" {
		mapping, err := redirect.LoadMapping(redirectsMapping)
		if err != nil {
			return err
		}
		lists = append(lists, redirect.FromMapping(mapping))
	}

	var src redirect.SlugSource
	switch {
	case redirectsFromDB:
		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()
		src = restaurant.NewPostgresRepository(pool)
	case redirectsData != "":
		scorer, err := loadScorer(scoring.NoJitter)
		if err != nil {
			return err
		}
		records, err := normalize.LoadRestaurants(redirectsData, normalizeOptions(scorer))
		if err != nil {
			return err
		}
		src = restaurant.NewMemoryRepository(records)
	}

	if src != nil {
		rules, ambiguous, err := redirect.Load(ctx, src)
		if err != nil {
			return err
		}
		for _, s := range ambiguous {
			fmt.Fprintf(out, "skipped ambiguous slug %q\n", s)
		}
		lists = append(lists, rules)
	}

	if len(lists) == 0 {
		return fmt.Errorf("nothing to generate: pass --mapping, --from-db or --data")
	}

	rules, err := redirect.Compact(lists...)
	if err != nil {
		return err
	}
	n, err := redirect.Generate(redirectsOut, rules)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %d redirect pages to %s\n", n, redirectsOut)
	return nil
}
