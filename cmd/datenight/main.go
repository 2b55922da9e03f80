package main

import (
	"fmt"
	"os"

	"datenight/internal/config"
	"datenight/internal/logging"
	"datenight/internal/neighborhood"
	"datenight/internal/normalize"
	"datenight/internal/scoring"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose     bool
	scoringPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "datenight",
	Short: "Data tooling for the LA date-night restaurant directory",
	Long: `datenight maintains the restaurant data behind the directory.

It normalizes and deduplicates hand-authored records, scores them for date
nights, classifies neighborhoods, imports into Postgres, generates legacy
URL redirects and backfills missing photos.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if scoringPath != "" {
			cfg.ScoringConfig = scoringPath
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, "console")
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&scoringPath, "scoring", "", "Scoring weights YAML (or set SCORING_CONFIG env)")

	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(recountCmd)
	rootCmd.AddCommand(redirectsCmd)
	rootCmd.AddCommand(backfillCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadScorer builds a scorer from the configured YAML, or defaults.
func loadScorer(jitter scoring.Jitter) (*scoring.Scorer, error) {
	path := ""
	if cfg != nil {
		path = cfg.ScoringConfig
	}
	sc, err := scoring.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return scoring.NewScorer(sc, jitter), nil
}

// normalizeOptions wires the shared pipeline pieces for commands that read
// data files.
func normalizeOptions(scorer *scoring.Scorer) normalize.Options {
	return normalize.Options{
		Defaults:   normalize.DefaultDefaults(),
		Classifier: neighborhood.NewClassifier(),
		Scorer:     scorer,
		Logger:     logger,
	}
}
