package main

import (
	"fmt"

	"datenight/internal/normalize"
	"datenight/internal/photos"
	"datenight/internal/restaurant"
	"datenight/internal/scoring"
	"datenight/internal/storage"

	"github.com/spf13/cobra"
)

var (
	backfillCheckpoint string
	backfillEvery      int
	backfillRate       float64
	backfillMirror     bool
)

var backfillCmd = &cobra.Command{
	Use:   "backfill-photos <file>",
	Short: "Fill missing photos from restaurant websites",
	Long: `For every restaurant without a photo, fetches its website and takes the
og:image (or twitter:image, or the first large <img>). Failures get a
placeholder and are logged. The data file and a checkpoint are written every
--every records. Rerunning an interrupted backfill over the same records
resumes after the last checkpoint; a finished run removes the checkpoint.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackfill,
}

func init() {
	backfillCmd.Flags().StringVar(&backfillCheckpoint, "checkpoint", ".photo-backfill.json", "Checkpoint file")
	backfillCmd.Flags().IntVar(&backfillEvery, "every", photos.DefaultEvery, "Records between checkpoints")
	backfillCmd.Flags().Float64Var(&backfillRate, "rate", 1, "Requests per second")
	backfillCmd.Flags().BoolVar(&backfillMirror, "mirror", false, "Copy found images into R2")
}

func runBackfill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	if backfillMirror {
		if err := cfg.Require("R2_ACCESS_KEY", "R2_SECRET_KEY", "R2_BUCKET_NAME", "R2_ENDPOINT", "R2_PUBLIC_BASE_URL"); err != nil {
			return fmt.Errorf("--mirror: %w", err)
		}
	}

	scorer, err := loadScorer(scoring.NoJitter)
	if err != nil {
		return err
	}
	records, err := normalize.LoadRestaurants(path, normalizeOptions(scorer))
	if err != nil {
		return err
	}

	fetcher := photos.NewFetcher(nil, backfillRate)
	opts := photos.Options{
		CheckpointPath: backfillCheckpoint,
		Every:          backfillEvery,
		OnCheckpoint: func(rs []*restaurant.Restaurant, _ photos.Checkpoint) error {
			return normalize.WriteFile(path, rs)
		},
	}

	if backfillMirror {
		r2, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			return err
		}
		opts.Downloader = fetcher
		opts.Uploader = r2
	}

	cp, err := photos.NewBackfiller(fetcher, opts, logger).Run(ctx, records)
	fmt.Fprintf(cmd.OutOrStdout(), "photos: %d found, %d failed, %d skipped, %d mirrored (next index %d of %d)\n",
		cp.Found, cp.Failed, cp.Skipped, cp.Mirrored, cp.NextIndex, len(records))
	return err
}
