package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"datenight/internal/normalize"
	"datenight/internal/scoring"

	"github.com/spf13/cobra"
)

var (
	scoreExplain bool
	scoreTop     int
)

var scoreCmd = &cobra.Command{
	Use:   "score <file>",
	Short: "Show date-night scores for a data file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreExplain, "explain", false, "Show the per-term breakdown")
	scoreCmd.Flags().IntVar(&scoreTop, "top", 0, "Only show the N highest scores")
}

func runScore(cmd *cobra.Command, args []string) error {
	scorer, err := loadScorer(scoring.NoJitter)
	if err != nil {
		return err
	}

	records, err := normalize.LoadRestaurants(args[0], normalizeOptions(scorer))
	if err != nil {
		return err
	}

	type row struct {
		name string
		b    scoring.Breakdown
	}
	rows := make([]row, 0, len(records))
	for _, r := range records {
		rows = append(rows, row{name: r.Name, b: scorer.Breakdown(scoring.Input{
			Name:        r.Name,
			Address:     r.Address,
			Rating:      r.Rating,
			PriceLevel:  r.PriceLevel,
			CuisineTags: r.CuisineTypes,
			ReviewCount: r.ReviewCount,
		})})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].b.Final > rows[j].b.Final })
	if scoreTop > 0 && scoreTop < len(rows) {
		rows = rows[:scoreTop]
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	if scoreExplain {
		fmt.Fprintln(w, "SCORE\tNAME\tBASE\tRATING\tPRICE\tCUISINE\tNAME KW\tAREA\tRAW")
		for _, r := range rows {
			b := r.b
			fmt.Fprintf(w, "%d\t%s\t%d\t+%d\t+%d\t+%d\t+%d\t+%d\t%d\n",
				b.Final, r.name, b.Base, b.Rating, b.Price, b.Cuisine, b.Name, b.Area, b.Raw)
		}
	} else {
		fmt.Fprintln(w, "SCORE\tNAME")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%s\n", r.b.Final, r.name)
		}
	}
	return w.Flush()
}
