package redirect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"datenight/internal/restaurant"
)

var ErrCycle = errors.New("redirect cycle")

// Rule sends requests for From to To with a permanent redirect.
type Rule struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SlugSource lists the current canonical restaurant paths. Both restaurant
// repositories implement it.
type SlugSource interface {
	Locations(ctx context.Context) ([]restaurant.Location, error)
}

// CleanPath gives paths one spelling: leading slash, no trailing slash,
// lower case.
func CleanPath(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}

// FromMapping turns a literal old->new table into rules sorted by From.
func FromMapping(mapping map[string]string) []Rule {
	rules := make([]Rule, 0, len(mapping))
	for from, to := range mapping {
		rules = append(rules, Rule{From: CleanPath(from), To: CleanPath(to)})
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].From < rules[j].From })
	return rules
}

// LoadMapping reads a JSON object of old path -> new path.
func LoadMapping(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("decode mapping %s: %w", path, err)
	}
	return mapping, nil
}

// CanonicalPath is the detail page URL for a restaurant.
func CanonicalPath(loc restaurant.Location) string {
	return "/restaurants/" + loc.NeighborhoodSlug + "/" + loc.Slug
}

// FromLocations derives rules from the legacy flat URLs (/restaurant/{slug}
// and /restaurants/{slug}) to the neighborhood-scoped detail page. A slug
// used in more than one neighborhood is ambiguous and gets no rule; a slug
// equal to a neighborhood slug keeps /restaurants/{slug} for the listing.
func FromLocations(locs []restaurant.Location) (rules []Rule, ambiguous []string) {
	bySlug := map[string][]restaurant.Location{}
	hoods := map[string]bool{}
	for _, l := range locs {
		bySlug[l.Slug] = append(bySlug[l.Slug], l)
		hoods[l.NeighborhoodSlug] = true
	}

	slugs := make([]string, 0, len(bySlug))
	for s := range bySlug {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)

	for _, s := range slugs {
		matches := bySlug[s]
		if len(matches) > 1 {
			ambiguous = append(ambiguous, s)
			continue
		}
		to := CanonicalPath(matches[0])
		rules = append(rules, Rule{From: "/restaurant/" + s, To: to})
		if !hoods[s] {
			rules = append(rules, Rule{From: "/restaurants/" + s, To: to})
		}
	}
	return rules, ambiguous
}

// Load reads current paths from src and derives rules from them.
func Load(ctx context.Context, src SlugSource) ([]Rule, []string, error) {
	locs, err := src.Locations(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load locations: %w", err)
	}
	rules, ambiguous := FromLocations(locs)
	return rules, ambiguous, nil
}

// Compact merges rule lists, keeping the first rule for each From, drops
// self redirects and collapses chains so every rule points at a final
// destination in one hop.
func Compact(lists ...[]Rule) ([]Rule, error) {
	next := map[string]string{}
	var order []string
	for _, list := range lists {
		for _, r := range list {
			from, to := CleanPath(r.From), CleanPath(r.To)
			if from == to {
				continue
			}
			if _, ok := next[from]; ok {
				continue
			}
			next[from] = to
			order = append(order, from)
		}
	}

	out := make([]Rule, 0, len(order))
	for _, from := range order {
		to := next[from]
		seen := map[string]bool{from: true}
		for {
			hop, ok := next[to]
			if !ok {
				break
			}
			if seen[to] {
				return nil, fmt.Errorf("%w: %s", ErrCycle, from)
			}
			seen[to] = true
			to = hop
		}
		out = append(out, Rule{From: from, To: to})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out, nil
}
