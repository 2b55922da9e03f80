package restaurant

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// --------------------------------------------------
// Listing
// --------------------------------------------------
func (s *Service) ListRestaurants(ctx context.Context, filter Filter) ([]*Restaurant, error) {
	restaurants, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("[RESTAURANTS] list failed", zap.Error(err))
		return nil, err
	}
	return restaurants, nil
}

// Search runs a free-text query on top of filter.
func (s *Service) Search(ctx context.Context, query string, filter Filter) ([]*Restaurant, error) {
	filter.Query = strings.TrimSpace(query)
	return s.ListRestaurants(ctx, filter)
}

// --------------------------------------------------
// Detail
// --------------------------------------------------
func (s *Service) GetRestaurant(ctx context.Context, neighborhoodSlug, slug string) (*Restaurant, error) {
	neighborhoodSlug = strings.TrimSpace(neighborhoodSlug)
	slug = strings.TrimSpace(slug)
	if neighborhoodSlug == "" || slug == "" {
		return nil, ErrInvalidSlug
	}
	return s.repo.GetBySlug(ctx, neighborhoodSlug, slug)
}

func (s *Service) ListNeighborhoods(ctx context.Context) ([]*Neighborhood, error) {
	return s.repo.ListNeighborhoods(ctx)
}

func (s *Service) ListCuisines(ctx context.Context) ([]*Cuisine, error) {
	return s.repo.ListCuisines(ctx)
}

// Locations returns the canonical URL slug pairs of active restaurants.
func (s *Service) Locations(ctx context.Context) ([]Location, error) {
	return s.repo.Locations(ctx)
}
