package restaurant

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("restaurant not found")
	ErrInvalidSlug = errors.New("invalid slug")
)

// Repository is the read surface the pages and API routes need.
// Every list is ordered by date-night score, highest first.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Restaurant, error)
	GetBySlug(ctx context.Context, neighborhoodSlug, slug string) (*Restaurant, error)
	ListNeighborhoods(ctx context.Context) ([]*Neighborhood, error)
	ListCuisines(ctx context.Context) ([]*Cuisine, error)
	Locations(ctx context.Context) ([]Location, error)
}
