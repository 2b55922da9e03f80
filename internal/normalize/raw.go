package normalize

import (
	"errors"
	"strings"

	"datenight/internal/restaurant"
)

var ErrEmptyName = errors.New("record has no name")

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// FromRaw reads a hand-authored record whose keys may be camelCase or
// snake_case into the canonical restaurant shape. Missing fields stay zero;
// FillDefaults fills them.
func FromRaw(raw map[string]any) (*restaurant.Restaurant, error) {
	r := &restaurant.Restaurant{IsActive: true}

	if v, ok := pick(raw, "name", "title"); ok {
		r.Name = asString(v)
	}
	if r.Name == "" {
		return nil, ErrEmptyName
	}

	if v, ok := pick(raw, "id"); ok {
		r.ID = asString(v)
	}
	if v, ok := pick(raw, "slug"); ok {
		r.Slug = asString(v)
	}
	if v, ok := pick(raw, "address", "formattedAddress", "formatted_address", "vicinity"); ok {
		r.Address = asString(v)
	}
	if v, ok := pick(raw, "phone", "phoneNumber", "phone_number", "formatted_phone_number"); ok {
		r.Phone = asString(v)
	}
	if v, ok := pick(raw, "website", "websiteUrl", "website_url", "url"); ok {
		r.Website = asString(v)
	}
	if v, ok := pick(raw, "description", "summary"); ok {
		r.Description = asString(v)
	}

	if v, ok := pick(raw, "rating"); ok {
		r.Rating = asFloat64(v)
	}
	if v, ok := pick(raw, "reviewCount", "review_count", "user_ratings_total", "userRatingsTotal"); ok {
		r.ReviewCount = asInt(v)
	}
	if v, ok := pick(raw, "priceLevel", "price_level", "price"); ok {
		r.PriceLevel = asInt(v)
	}
	if v, ok := pick(raw, "cuisineTypes", "cuisine_types", "cuisines", "cuisine"); ok {
		r.CuisineTypes = asStringSlice(v)
	}

	if v, ok := pick(raw, "neighborhood", "area"); ok {
		r.Neighborhood = asString(v)
	}
	if v, ok := pick(raw, "neighborhoodSlug", "neighborhood_slug"); ok {
		r.NeighborhoodSlug = asString(v)
	}
	if v, ok := pick(raw, "city"); ok {
		r.City = asString(v)
	}
	if v, ok := pick(raw, "citySlug", "city_slug"); ok {
		r.CitySlug = asString(v)
	}

	if v, ok := pick(raw, "photos", "images", "photoUrls", "photo_urls"); ok {
		r.Photos = photoURLs(v)
	}
	if v, ok := pick(raw, "openingHours", "opening_hours", "hours"); ok {
		r.OpeningHours = openingHours(v)
	}
	if v, ok := pick(raw, "reviews"); ok {
		r.Reviews = reviews(v)
	}

	if v, ok := pick(raw, "dateNightScore", "date_night_score"); ok {
		r.DateNightScore = asInt(v)
	}
	if v, ok := pick(raw, "isTopRated", "is_top_rated"); ok {
		r.IsTopRated, _ = asBool(v)
	}
	if v, ok := pick(raw, "isActive", "is_active"); ok {
		if b, valid := asBool(v); valid {
			r.IsActive = b
		}
	}

	if v, ok := pick(raw, "latitude", "lat"); ok {
		r.Latitude = asFloat64(v)
	}
	if v, ok := pick(raw, "longitude", "lng", "lon"); ok {
		r.Longitude = asFloat64(v)
	}
	if loc, ok := raw["location"].(map[string]any); ok && r.Latitude == 0 && r.Longitude == 0 {
		r.Latitude = asFloat64(loc["lat"])
		r.Longitude = asFloat64(loc["lng"])
	}
	if v, ok := pick(raw, "placeId", "place_id", "googlePlaceId", "google_place_id"); ok {
		r.PlaceID = asString(v)
	}

	return r, nil
}

// photoURLs accepts plain URL strings or objects with a url field.
func photoURLs(value any) []string {
	list, ok := value.([]any)
	if !ok {
		return asStringSlice(value)
	}

	var out []string
	for _, item := range list {
		switch typed := item.(type) {
		case string:
			if s := strings.TrimSpace(typed); s != "" {
				out = append(out, s)
			}
		case map[string]any:
			if v, ok := pick(typed, "url", "src", "photo_url"); ok {
				if s := asString(v); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// openingHours accepts a day->hours object or Google style
// "Monday: 5:00 – 10:00 PM" lines.
func openingHours(value any) map[string]string {
	out := map[string]string{}

	switch typed := value.(type) {
	case map[string]any:
		if lines, ok := typed["weekday_text"]; ok {
			return openingHours(lines)
		}
		for day, hours := range typed {
			if s := asString(hours); s != "" {
				out[canonicalDay(day)] = s
			}
		}
	case []any:
		for _, line := range typed {
			day, hours, found := strings.Cut(asString(line), ":")
			if !found {
				continue
			}
			out[canonicalDay(day)] = strings.TrimSpace(hours)
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func canonicalDay(day string) string {
	d := strings.ToLower(strings.TrimSpace(day))
	for _, w := range weekdays {
		lw := strings.ToLower(w)
		if d == lw || (len(d) >= 3 && strings.HasPrefix(lw, d)) {
			return w
		}
	}
	return strings.TrimSpace(day)
}

func reviews(value any) []restaurant.Review {
	list, ok := value.([]any)
	if !ok {
		return nil
	}

	out := []restaurant.Review{}
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rv := restaurant.Review{}
		if v, ok := pick(m, "author", "author_name", "authorName"); ok {
			rv.Author = asString(v)
		}
		if v, ok := pick(m, "rating"); ok {
			rv.Rating = asFloat64(v)
		}
		if v, ok := pick(m, "text", "body"); ok {
			rv.Text = asString(v)
		}
		if v, ok := pick(m, "date", "relative_time_description", "time"); ok {
			rv.Date = asString(v)
		}
		if rv.Author == "" && rv.Text == "" {
			continue
		}
		out = append(out, rv)
	}
	return out
}
