package normalize

import (
	"fmt"

	"datenight/internal/restaurant"
	"datenight/internal/slug"
)

// Removal records a duplicate dropped by Dedupe.
type Removal struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Index     int    `json:"index"`
	KeptIndex int    `json:"kept_index"`
}

func dedupeKey(r *restaurant.Restaurant) string {
	return slug.Fold(r.Name) + "|" + slug.Fold(r.Address)
}

// Dedupe drops every record whose (name, address) pair was already seen.
// The first occurrence wins.
func Dedupe(records []*restaurant.Restaurant) ([]*restaurant.Restaurant, []Removal) {
	seen := make(map[string]int, len(records))
	kept := make([]*restaurant.Restaurant, 0, len(records))
	var removed []Removal

	for i, r := range records {
		key := dedupeKey(r)
		if first, ok := seen[key]; ok {
			removed = append(removed, Removal{
				Name:      r.Name,
				Address:   r.Address,
				Index:     i,
				KeptIndex: first,
			})
			continue
		}
		seen[key] = i
		kept = append(kept, r)
	}
	return kept, removed
}

// UniqueSlugs suffixes colliding slugs within a neighborhood ("bestia",
// "bestia-2", ...). Earlier records keep their slug. It returns the number
// of slugs changed.
func UniqueSlugs(records []*restaurant.Restaurant) int {
	taken := make(map[string]bool, len(records))
	for _, r := range records {
		taken[r.NeighborhoodSlug+"/"+r.Slug] = false
	}

	changed := 0
	for _, r := range records {
		key := r.NeighborhoodSlug + "/" + r.Slug
		if !taken[key] {
			taken[key] = true
			continue
		}

		for n := 2; ; n++ {
			candidate := fmt.Sprintf("%s-%d", r.Slug, n)
			ck := r.NeighborhoodSlug + "/" + candidate
			if _, exists := taken[ck]; !exists {
				r.Slug = candidate
				taken[ck] = true
				changed++
				break
			}
		}
	}
	return changed
}
