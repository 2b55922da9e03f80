package main

import (
	"fmt"

	"datenight/internal/normalize"
	"datenight/internal/scoring"

	"github.com/spf13/cobra"
)

var (
	normalizeOut     string
	normalizeRescore bool
	normalizeDryRun  bool
	normalizeSeed    uint64
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Canonicalize, score, deduplicate and re-slug a data file",
	Long: `Reads a JSON array of restaurant records (camelCase or snake_case keys),
fills defaults, scores records without a score, drops duplicates by
(name, address) keeping the first, and gives every restaurant a unique slug
within its neighborhood. Running it twice changes nothing the second time.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeOut, "out", "o", "", "Output file (default: overwrite input)")
	normalizeCmd.Flags().BoolVar(&normalizeRescore, "rescore", false, "Recompute every date-night score")
	normalizeCmd.Flags().BoolVar(&normalizeDryRun, "dry-run", false, "Report changes without writing")
	normalizeCmd.Flags().Uint64Var(&normalizeSeed, "seed", 0, "Seed for score jitter (0 disables jitter)")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	in := args[0]
	raw, err := normalize.LoadFile(in)
	if err != nil {
		return err
	}

	jitter := scoring.NoJitter
	if normalizeSeed != 0 {
		jitter = scoring.NewRandJitter(normalizeSeed)
	}
	scorer, err := loadScorer(jitter)
	if err != nil {
		return err
	}

	opts := normalizeOptions(scorer)
	opts.Rescore = normalizeRescore
	res := normalize.Run(raw, opts)

	out := cmd.OutOrStdout()
	for _, rm := range res.Removed {
		fmt.Fprintf(out, "removed duplicate #%d %q (%s), kept #%d\n", rm.Index, rm.Name, rm.Address, rm.KeptIndex)
	}
	for _, sk := range res.Skipped {
		fmt.Fprintf(out, "skipped #%d: %s\n", sk.Index, sk.Reason)
	}
	for _, u := range res.Unrecognised {
		fmt.Fprintf(out, "unrecognised neighborhood %q for %q\n", u.Neighborhood, u.Name)
	}
	fmt.Fprintln(out, res.Summary())

	if normalizeDryRun {
		return nil
	}

	dest := normalizeOut
	if dest == "" {
		dest = in
	}
	if err := normalize.WriteFile(dest, res.Records); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %d records to %s\n", len(res.Records), dest)
	return nil
}
