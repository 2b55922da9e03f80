package restaurant

import (
	"context"
	"sort"
	"strings"
	"sync"

	"datenight/internal/slug"
)

// MemoryRepository serves restaurants held in memory, typically loaded from
// the flat JSON data file.
type MemoryRepository struct {
	mu          sync.RWMutex
	restaurants []*Restaurant
}

func NewMemoryRepository(restaurants []*Restaurant) *MemoryRepository {
	r := &MemoryRepository{}
	r.Replace(restaurants)
	return r
}

// Replace swaps the served data set.
func (r *MemoryRepository) Replace(restaurants []*Restaurant) {
	sorted := append([]*Restaurant(nil), restaurants...)
	SortByScore(sorted)

	r.mu.Lock()
	r.restaurants = sorted
	r.mu.Unlock()
}

func (r *MemoryRepository) List(ctx context.Context, filter Filter) ([]*Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Restaurant{}
	for _, res := range r.restaurants {
		if matches(res, filter) {
			out = append(out, res)
		}
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*Restaurant{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *MemoryRepository) GetBySlug(ctx context.Context, neighborhoodSlug, s string) (*Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, res := range r.restaurants {
		if res.IsActive && res.NeighborhoodSlug == neighborhoodSlug && res.Slug == s {
			return res, nil
		}
	}
	return nil, ErrNotFound
}

// ListNeighborhoods derives neighborhoods and counts by scanning every
// active restaurant.
func (r *MemoryRepository) ListNeighborhoods(ctx context.Context) ([]*Neighborhood, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bySlug := map[string]*Neighborhood{}
	for _, res := range r.restaurants {
		if !res.IsActive || res.NeighborhoodSlug == "" {
			continue
		}
		n, ok := bySlug[res.NeighborhoodSlug]
		if !ok {
			n = &Neighborhood{ID: len(bySlug) + 1, Name: res.Neighborhood, Slug: res.NeighborhoodSlug, CityID: 1}
			bySlug[res.NeighborhoodSlug] = n
		}
		n.RestaurantCount++
	}

	out := make([]*Neighborhood, 0, len(bySlug))
	for _, n := range bySlug {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RestaurantCount != out[j].RestaurantCount {
			return out[i].RestaurantCount > out[j].RestaurantCount
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *MemoryRepository) ListCuisines(ctx context.Context) ([]*Cuisine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bySlug := map[string]*Cuisine{}
	for _, res := range r.restaurants {
		if !res.IsActive {
			continue
		}
		seen := map[string]bool{}
		for _, name := range res.CuisineTypes {
			s := slug.Make(name)
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			c, ok := bySlug[s]
			if !ok {
				c = &Cuisine{ID: len(bySlug) + 1, Name: name, Slug: s}
				bySlug[s] = c
			}
			c.RestaurantCount++
		}
	}

	out := make([]*Cuisine, 0, len(bySlug))
	for _, c := range bySlug {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RestaurantCount != out[j].RestaurantCount {
			return out[i].RestaurantCount > out[j].RestaurantCount
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *MemoryRepository) Locations(ctx context.Context) ([]Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Location
	for _, res := range r.restaurants {
		if res.IsActive {
			out = append(out, Location{NeighborhoodSlug: res.NeighborhoodSlug, Slug: res.Slug})
		}
	}
	return out, nil
}

func matches(res *Restaurant, f Filter) bool {
	if !res.IsActive {
		return false
	}
	if f.Neighborhood != "" &&
		res.NeighborhoodSlug != f.Neighborhood &&
		!strings.EqualFold(res.Neighborhood, f.Neighborhood) {
		return false
	}
	if f.Cuisine != "" && !hasCuisine(res, f.Cuisine) {
		return false
	}
	if f.Query != "" && !matchesQuery(res, f.Query) {
		return false
	}
	if f.Price > 0 && res.PriceLevel != f.Price {
		return false
	}
	if f.MinPrice > 0 && res.PriceLevel < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && res.PriceLevel > f.MaxPrice {
		return false
	}
	if f.MinRating > 0 && res.Rating < f.MinRating {
		return false
	}
	if f.MinScore > 0 && res.DateNightScore < f.MinScore {
		return false
	}
	if f.TopRatedOnly && !res.IsTopRated {
		return false
	}
	return true
}

func hasCuisine(res *Restaurant, cuisine string) bool {
	for _, c := range res.CuisineTypes {
		if strings.EqualFold(c, cuisine) || slug.Make(c) == cuisine {
			return true
		}
	}
	return false
}

func matchesQuery(res *Restaurant, query string) bool {
	q := slug.Fold(query)
	if strings.Contains(slug.Fold(res.Name), q) ||
		strings.Contains(slug.Fold(res.Description), q) ||
		strings.Contains(slug.Fold(res.Neighborhood), q) {
		return true
	}
	for _, c := range res.CuisineTypes {
		if strings.Contains(slug.Fold(c), q) {
			return true
		}
	}
	return false
}

// SortByScore orders by date-night score descending, then name.
func SortByScore(restaurants []*Restaurant) {
	sort.SliceStable(restaurants, func(i, j int) bool {
		if restaurants[i].DateNightScore != restaurants[j].DateNightScore {
			return restaurants[i].DateNightScore > restaurants[j].DateNightScore
		}
		return restaurants[i].Name < restaurants[j].Name
	})
}
