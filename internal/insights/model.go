package insights

// Snapshot aggregates the date-night profile of a neighborhood, optionally
// narrowed to one cuisine.
type Snapshot struct {
	Neighborhood  string         `json:"neighborhood"`
	Cuisine       string         `json:"cuisine,omitempty"`
	AvgScore      float64        `json:"avg_date_night_score"`
	MedianScore   float64        `json:"median_date_night_score"`
	AvgRating     float64        `json:"avg_rating"`
	AvgPriceLevel float64        `json:"avg_price_level"`
	TopRatedCount int            `json:"top_rated_count"`
	CuisineCounts map[string]int `json:"cuisine_counts"`
	SampleSize    int            `json:"sample_size"`
}
