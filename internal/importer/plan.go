package importer

import (
	"sort"

	"datenight/internal/restaurant"
	"datenight/internal/slug"
)

// Plan is the set of rows an import writes, derived from normalized records.
type Plan struct {
	Cities        []restaurant.City
	Neighborhoods []PlannedNeighborhood
	Cuisines      []restaurant.Cuisine
	Restaurants   []*restaurant.Restaurant
}

type PlannedNeighborhood struct {
	Name     string
	Slug     string
	CitySlug string
}

// BuildPlan collects the distinct cities, neighborhoods and cuisines the
// records reference. Output is sorted by slug so reruns issue identical SQL.
func BuildPlan(records []*restaurant.Restaurant) Plan {
	cities := map[string]restaurant.City{}
	hoods := map[string]PlannedNeighborhood{}
	cuisines := map[string]restaurant.Cuisine{}

	for _, r := range records {
		if r.CitySlug != "" {
			if _, ok := cities[r.CitySlug]; !ok {
				cities[r.CitySlug] = restaurant.City{Name: r.City, Slug: r.CitySlug}
			}
		}
		if r.NeighborhoodSlug != "" {
			if _, ok := hoods[r.NeighborhoodSlug]; !ok {
				hoods[r.NeighborhoodSlug] = PlannedNeighborhood{
					Name:     r.Neighborhood,
					Slug:     r.NeighborhoodSlug,
					CitySlug: r.CitySlug,
				}
			}
		}
		for _, c := range r.CuisineTypes {
			cs := slug.Make(c)
			if cs == "" {
				continue
			}
			if _, ok := cuisines[cs]; !ok {
				cuisines[cs] = restaurant.Cuisine{Name: c, Slug: cs}
			}
		}
	}

	plan := Plan{Restaurants: records}
	for _, c := range cities {
		plan.Cities = append(plan.Cities, c)
	}
	for _, n := range hoods {
		plan.Neighborhoods = append(plan.Neighborhoods, n)
	}
	for _, c := range cuisines {
		plan.Cuisines = append(plan.Cuisines, c)
	}

	sort.Slice(plan.Cities, func(i, j int) bool { return plan.Cities[i].Slug < plan.Cities[j].Slug })
	sort.Slice(plan.Neighborhoods, func(i, j int) bool { return plan.Neighborhoods[i].Slug < plan.Neighborhoods[j].Slug })
	sort.Slice(plan.Cuisines, func(i, j int) bool { return plan.Cuisines[i].Slug < plan.Cuisines[j].Slug })
	return plan
}

// chunks splits records into consecutive slices of at most size.
func chunks(records []*restaurant.Restaurant, size int) [][]*restaurant.Restaurant {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var out [][]*restaurant.Restaurant
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		out = append(out, records[start:end])
	}
	return out
}
