package restaurant

import (
	"net/url"
	"strconv"
	"strings"
)

const MaxLimit = 200

// Filter narrows a restaurant listing. Zero values mean "no constraint".
type Filter struct {
	Neighborhood string
	Cuisine      string
	Query        string
	Price        int
	MinPrice     int
	MaxPrice     int
	MinRating    float64
	MinScore     int
	TopRatedOnly bool
	Limit        int
	Offset       int
}

// ParseFilter maps the /api/filter-restaurants query string onto a Filter.
// Unparseable numbers are ignored rather than rejected.
func ParseFilter(q url.Values) Filter {
	f := Filter{
		Neighborhood: strings.TrimSpace(q.Get("neighborhood")),
		Cuisine:      strings.TrimSpace(q.Get("cuisine")),
		Query:        strings.TrimSpace(q.Get("search")),
	}
	if f.Query == "" {
		f.Query = strings.TrimSpace(q.Get("q"))
	}

	if f.Neighborhood == "all" {
		f.Neighborhood = ""
	}
	if f.Cuisine == "all" {
		f.Cuisine = ""
	}

	f.Price = parsePrice(q.Get("price"))
	f.MinPrice = parsePrice(q.Get("minPrice"))
	f.MaxPrice = parsePrice(q.Get("maxPrice"))

	if r, err := strconv.ParseFloat(q.Get("rating"), 64); err == nil && r > 0 {
		f.MinRating = r
	}
	if s, err := strconv.Atoi(q.Get("dateScore")); err == nil && s > 0 {
		f.MinScore = s
	}
	f.TopRatedOnly = q.Get("topRated") == "true"

	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 {
		f.Limit = min(l, MaxLimit)
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 1 && f.Limit > 0 {
		f.Offset = (p - 1) * f.Limit
	}
	return f
}

// parsePrice accepts "3" or "$$$"; anything outside 1..4 is ignored.
func parsePrice(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "all" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil && strings.Trim(raw, "$") == "" {
		n = len(raw)
	}
	if n < 1 || n > 4 {
		return 0
	}
	return n
}
