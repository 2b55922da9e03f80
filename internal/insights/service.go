package insights

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	"datenight/internal/restaurant"

	"go.uber.org/zap"
)

// MinSamples is the smallest group a snapshot is reported for.
const MinSamples = 3

var ErrNotEnoughData = errors.New("not enough restaurants for insights")

type Lister interface {
	ListRestaurants(ctx context.Context, filter restaurant.Filter) ([]*restaurant.Restaurant, error)
}

type Service struct {
	restaurants Lister
	logger      *zap.Logger
}

func NewService(restaurants Lister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{restaurants: restaurants, logger: logger}
}

// Snapshot computes the profile for a neighborhood + cuisine pair. Either
// may be empty to mean "all".
func (s *Service) Snapshot(ctx context.Context, neighborhood, cuisine string) (*Snapshot, error) {
	rs, err := s.restaurants.ListRestaurants(ctx, restaurant.Filter{
		Neighborhood: neighborhood,
		Cuisine:      cuisine,
	})
	if err != nil {
		return nil, err
	}

	if len(rs) < MinSamples {
		s.logger.Info("[INSIGHTS] skipping small sample",
			zap.String("neighborhood", neighborhood),
			zap.String("cuisine", cuisine),
			zap.Int("samples", len(rs)),
		)
		return nil, ErrNotEnoughData
	}

	snap := Build(rs)
	snap.Neighborhood = neighborhood
	snap.Cuisine = cuisine

	s.logger.Debug("[INSIGHTS] computed",
		zap.String("neighborhood", neighborhood),
		zap.String("cuisine", cuisine),
		zap.Float64("avg_score", snap.AvgScore),
		zap.Float64("median_score", snap.MedianScore),
		zap.Int("samples", snap.SampleSize),
	)
	return snap, nil
}

// Build aggregates rs. Price and rating averages skip unknown (zero) values.
func Build(rs []*restaurant.Restaurant) *Snapshot {
	snap := &Snapshot{CuisineCounts: map[string]int{}, SampleSize: len(rs)}
	if len(rs) == 0 {
		return snap
	}

	scores := make([]float64, 0, len(rs))
	var scoreSum, ratingSum, priceSum float64
	var rated, priced int

	for _, r := range rs {
		scores = append(scores, float64(r.DateNightScore))
		scoreSum += float64(r.DateNightScore)
		if r.Rating > 0 {
			ratingSum += r.Rating
			rated++
		}
		if r.PriceLevel > 0 {
			priceSum += float64(r.PriceLevel)
			priced++
		}
		if r.IsTopRated {
			snap.TopRatedCount++
		}
		for _, c := range r.CuisineTypes {
			snap.CuisineCounts[strings.ToLower(c)]++
		}
	}

	sort.Float64s(scores)
	snap.AvgScore = round2(scoreSum / float64(len(rs)))
	snap.MedianScore = median(scores)
	if rated > 0 {
		snap.AvgRating = round2(ratingSum / float64(rated))
	}
	if priced > 0 {
		snap.AvgPriceLevel = round2(priceSum / float64(priced))
	}
	return snap
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
