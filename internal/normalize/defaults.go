package normalize

import (
	"math/rand/v2"
	"strings"

	"datenight/internal/neighborhood"
	"datenight/internal/restaurant"
	"datenight/internal/slug"

	"github.com/google/uuid"
)

// Coordinates around which records without a location are scattered.
const (
	CentroidLat = 34.0522
	CentroidLng = -118.2437
)

// Float64Source supplies values in [0, 1).
type Float64Source interface {
	Float64() float64
}

type Defaults struct {
	City         string
	OpeningHours map[string]string
	CenterLat    float64
	CenterLng    float64
	// Spread is the maximum offset in degrees applied to each axis.
	Spread float64
	Rand   Float64Source
	// NewID derives an id from a record key. It must be deterministic so
	// reloading the same file yields the same ids.
	NewID func(key string) string
}

// StableID is the default NewID: a name-based UUID over key.
func StableID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("datenight:"+key)).String()
}

func DefaultDefaults() Defaults {
	hours := make(map[string]string, len(weekdays))
	for _, d := range weekdays {
		hours[d] = "5:00 PM – 10:00 PM"
	}
	return Defaults{
		City:         "Los Angeles",
		OpeningHours: hours,
		CenterLat:    CentroidLat,
		CenterLng:    CentroidLng,
		Spread:       0.05,
		Rand:         rand.New(rand.NewPCG(1, 2)),
		NewID:        StableID,
	}
}

// FillDefaults completes a record in place. Fields that are already set are
// never overwritten, so a filled record passes through unchanged.
func FillDefaults(r *restaurant.Restaurant, d Defaults, classifier *neighborhood.Classifier) {
	newID := d.NewID
	if newID == nil {
		newID = StableID
	}
	key := dedupeKey(r)

	if r.ID == "" {
		r.ID = newID(key)
	}
	if r.Slug == "" {
		r.Slug = slug.Make(r.Name)
	}
	if r.Slug == "" {
		// names with nothing sluggable ("鮨 さいとう")
		r.Slug = "restaurant-" + StableID(key)[:8]
	}

	r.Phone = FormatPhone(r.Phone)
	r.Website = strings.TrimSpace(r.Website)

	if r.City == "" {
		r.City = d.City
	}
	if r.CitySlug == "" {
		r.CitySlug = slug.Make(r.City)
	}

	if classifier != nil {
		if r.Neighborhood == "" {
			r.Neighborhood = classifier.Classify(r.Address)
		} else {
			r.Neighborhood = classifier.Canonical(r.Neighborhood)
		}
	}
	if r.NeighborhoodSlug == "" {
		r.NeighborhoodSlug = neighborhood.Slug(r.Neighborhood)
	}

	if r.CuisineTypes == nil {
		r.CuisineTypes = []string{}
	}
	if r.Photos == nil {
		r.Photos = []string{}
	}
	if r.Reviews == nil {
		r.Reviews = []restaurant.Review{}
	}
	if len(r.OpeningHours) == 0 {
		r.OpeningHours = make(map[string]string, len(d.OpeningHours))
		for day, hours := range d.OpeningHours {
			r.OpeningHours[day] = hours
		}
	}

	if r.Latitude == 0 && r.Longitude == 0 && d.Rand != nil {
		r.Latitude = d.CenterLat + (d.Rand.Float64()*2-1)*d.Spread
		r.Longitude = d.CenterLng + (d.Rand.Float64()*2-1)*d.Spread
	}

	if r.PlaceID == "" {
		r.PlaceID = "placeholder_" + newID("place:"+key)
	}
}
