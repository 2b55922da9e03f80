package normalize

import (
	"fmt"

	"datenight/internal/neighborhood"
	"datenight/internal/restaurant"
	"datenight/internal/scoring"

	"go.uber.org/zap"
)

type Options struct {
	Defaults   Defaults
	Classifier *neighborhood.Classifier
	Scorer     *scoring.Scorer
	// Rescore recomputes every score instead of only filling missing ones.
	Rescore bool
	Logger  *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Defaults:   DefaultDefaults(),
		Classifier: neighborhood.NewClassifier(),
		Scorer:     scoring.NewScorer(scoring.DefaultConfig(), scoring.NoJitter),
	}
}

// Skipped is a raw record that could not be read at all.
type Skipped struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Unrecognised is a kept record whose neighborhood the classifier does not
// know, usually a hand-typed name that needs a pattern or a fix.
type Unrecognised struct {
	Name         string `json:"name"`
	Neighborhood string `json:"neighborhood"`
}

type Result struct {
	Records      []*restaurant.Restaurant `json:"records"`
	Removed      []Removal                `json:"removed"`
	Skipped      []Skipped                `json:"skipped"`
	Unrecognised []Unrecognised           `json:"unrecognised"`
	SlugsChanged int                      `json:"slugs_changed"`
	Rescored     int                      `json:"rescored"`
}

// Run canonicalises, completes, scores and deduplicates raw records.
// Running it again on its own output removes nothing and changes nothing.
func Run(raw []map[string]any, opts Options) Result {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var res Result
	records := make([]*restaurant.Restaurant, 0, len(raw))
	for i, item := range raw {
		r, err := FromRaw(item)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Index: i, Reason: err.Error()})
			logger.Warn("[NORMALIZE] skipping record", zap.Int("index", i), zap.Error(err))
			continue
		}
		records = append(records, r)
	}

	res.Records, res.Removed = Dedupe(records)
	for _, rm := range res.Removed {
		logger.Info("[NORMALIZE] removed duplicate",
			zap.String("name", rm.Name),
			zap.String("address", rm.Address),
			zap.Int("index", rm.Index),
			zap.Int("kept_index", rm.KeptIndex),
		)
	}

	for _, r := range res.Records {
		FillDefaults(r, opts.Defaults, opts.Classifier)
		if opts.Scorer != nil && (opts.Rescore || r.DateNightScore == 0) {
			Score(r, opts.Scorer)
			res.Rescored++
		}
		if opts.Classifier != nil && !opts.Classifier.Known(r.Neighborhood) {
			res.Unrecognised = append(res.Unrecognised, Unrecognised{Name: r.Name, Neighborhood: r.Neighborhood})
			logger.Warn("[NORMALIZE] unrecognised neighborhood",
				zap.String("name", r.Name),
				zap.String("neighborhood", r.Neighborhood),
			)
		}
	}

	res.SlugsChanged = UniqueSlugs(res.Records)

	logger.Info("[NORMALIZE] done",
		zap.Int("input", len(raw)),
		zap.Int("kept", len(res.Records)),
		zap.Int("removed", len(res.Removed)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int("slugs_changed", res.SlugsChanged),
	)
	return res
}

// Score sets the date-night score and top-rated flag on r.
func Score(r *restaurant.Restaurant, s *scoring.Scorer) {
	r.DateNightScore = s.Score(scoring.Input{
		Name:        r.Name,
		Address:     r.Address,
		Rating:      r.Rating,
		PriceLevel:  r.PriceLevel,
		CuisineTags: r.CuisineTypes,
		ReviewCount: r.ReviewCount,
	})
	r.IsTopRated = r.IsTopRated || s.TopRated(r.DateNightScore, r.Rating)
}

// Summary is a one-line description of a run for CLI output.
func (r Result) Summary() string {
	return fmt.Sprintf("%d kept, %d duplicates removed, %d skipped, %d slugs renamed, %d scored",
		len(r.Records), len(r.Removed), len(r.Skipped), r.SlugsChanged, r.Rescored)
}
