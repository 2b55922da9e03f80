package restaurant

// Review is a single guest review carried alongside a restaurant.
type Review struct {
	Author string  `json:"author"`
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
	Date   string  `json:"date"`
}

// Restaurant is the canonical (snake_case) restaurant record.
type Restaurant struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Slug             string            `json:"slug"`
	Address          string            `json:"address"`
	Phone            string            `json:"phone"`
	Website          string            `json:"website"`
	Rating           float64           `json:"rating"`
	ReviewCount      int               `json:"review_count"`
	PriceLevel       int               `json:"price_level"`
	CuisineTypes     []string          `json:"cuisine_types"`
	Neighborhood     string            `json:"neighborhood"`
	NeighborhoodSlug string            `json:"neighborhood_slug"`
	City             string            `json:"city"`
	CitySlug         string            `json:"city_slug"`
	Photos           []string          `json:"photos"`
	OpeningHours     map[string]string `json:"opening_hours"`
	Reviews          []Review          `json:"reviews"`
	DateNightScore   int               `json:"date_night_score"`
	IsTopRated       bool              `json:"is_top_rated"`
	Description      string            `json:"description"`
	Latitude         float64           `json:"latitude"`
	Longitude        float64           `json:"longitude"`
	PlaceID          string            `json:"place_id"`
	IsActive         bool              `json:"is_active"`
}

type Neighborhood struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	CityID          int    `json:"city_id"`
	RestaurantCount int    `json:"restaurant_count"`
}

type Cuisine struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	RestaurantCount int    `json:"restaurant_count"`
}

type City struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	RestaurantCount int    `json:"restaurant_count"`
}

// Location is the (neighborhood, restaurant) slug pair that forms a
// restaurant's canonical URL.
type Location struct {
	NeighborhoodSlug string `json:"neighborhood_slug"`
	Slug             string `json:"slug"`
}
