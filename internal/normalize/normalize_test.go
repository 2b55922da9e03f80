package normalize

import (
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"datenight/internal/neighborhood"
	"datenight/internal/restaurant"
	"datenight/internal/scoring"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func testOptions() Options {
	d := DefaultDefaults()
	d.Rand = rand.New(rand.NewPCG(7, 7))
	d.NewID = func(key string) string { return "id:" + key }
	return Options{
		Defaults:   d,
		Classifier: neighborhood.NewClassifier(),
		Scorer:     scoring.NewScorer(scoring.DefaultConfig(), scoring.NoJitter),
	}
}

func sampleRaw() []map[string]any {
	return []map[string]any{
		{
			"name":         "The Rose Venice",
			"address":      "220 Rose Ave, Venice, CA 90291",
			"reviewCount":  float64(1200),
			"rating":       4.5,
			"priceLevel":   float64(3),
			"cuisineTypes": []any{"Californian", "Mediterranean"},
			"phoneNumber":  "310.399.0711",
		},
		{
			"name":         "The Rose Venice",
			"address":      "220 Rose Ave, Venice, CA 90291",
			"review_count": float64(1350),
			"rating":       4.5,
		},
		{
			"name":          "Bestia",
			"address":       "2121 E 7th Pl, Los Angeles, CA 90021",
			"price_level":   "$$$",
			"cuisine_types": "Italian, Pizza",
			"rating":        4.7,
		},
		{
			"name":    "Bestia",
			"address": "1 Other St, Los Angeles, CA 90021",
		},
		{"address": "no name here"},
	}
}

// --------------------------------------------------
// FromRaw
// --------------------------------------------------

func TestFromRaw_AcceptsCamelAndSnakeCase(t *testing.T) {
	camel, err := FromRaw(map[string]any{
		"name": "Felix", "reviewCount": float64(10), "priceLevel": float64(4),
		"isTopRated": true, "neighborhoodSlug": "venice",
	})
	require.NoError(t, err)

	snake, err := FromRaw(map[string]any{
		"name": "Felix", "review_count": float64(10), "price_level": float64(4),
		"is_top_rated": true, "neighborhood_slug": "venice",
	})
	require.NoError(t, err)

	assert.Equal(t, camel, snake)
	assert.Equal(t, 10, camel.ReviewCount)
	assert.Equal(t, 4, camel.PriceLevel)
	assert.True(t, camel.IsTopRated)
	assert.True(t, camel.IsActive)
}

func TestFromRaw_MissingName(t *testing.T) {
	_, err := FromRaw(map[string]any{"address": "x"})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestFromRaw_OpeningHoursLines(t *testing.T) {
	r, err := FromRaw(map[string]any{
		"name":  "Gjelina",
		"hours": []any{"Mon: 5:00 PM – 10:00 PM", "sunday: Closed"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Monday": "5:00 PM – 10:00 PM",
		"Sunday": "Closed",
	}, r.OpeningHours)
}

func TestFromRaw_PhotoObjectsAndLocation(t *testing.T) {
	r, err := FromRaw(map[string]any{
		"name":     "Gjelina",
		"photos":   []any{map[string]any{"url": "https://img/1.jpg"}, "https://img/2.jpg"},
		"location": map[string]any{"lat": 33.99, "lng": -118.47},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, r.Photos)
	assert.Equal(t, 33.99, r.Latitude)
	assert.Equal(t, -118.47, r.Longitude)
}

// --------------------------------------------------
// Phone
// --------------------------------------------------

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "(310) 581-1030", FormatPhone("310.581.1030"))
	assert.Equal(t, "(310) 581-1030", FormatPhone("+1 310 581 1030"))
	assert.Equal(t, "(310) 581-1030", FormatPhone(FormatPhone("310-581-1030")))
	assert.Equal(t, "ask host", FormatPhone("  ask host "))
	assert.Equal(t, "", FormatPhone(""))
}

// --------------------------------------------------
// Defaults
// --------------------------------------------------

func TestFillDefaults_OnlyMissingFields(t *testing.T) {
	opts := testOptions()
	r := &restaurant.Restaurant{
		Name:     "Bestia",
		Address:  "2121 E 7th Pl, Los Angeles, CA 90021",
		Latitude: 34.03, Longitude: -118.23,
		OpeningHours: map[string]string{"Friday": "6 PM – 11 PM"},
	}
	FillDefaults(r, opts.Defaults, opts.Classifier)

	assert.Equal(t, "id:bestia|2121 e 7th pl, los angeles, ca 90021", r.ID)
	assert.Equal(t, "bestia", r.Slug)
	assert.Equal(t, "Arts District", r.Neighborhood)
	assert.Equal(t, "arts-district", r.NeighborhoodSlug)
	assert.Equal(t, "Los Angeles", r.City)
	assert.Equal(t, "los-angeles", r.CitySlug)
	assert.Equal(t, 34.03, r.Latitude)
	assert.Equal(t, map[string]string{"Friday": "6 PM – 11 PM"}, r.OpeningHours)
	assert.Equal(t, "placeholder_id:place:bestia|2121 e 7th pl, los angeles, ca 90021", r.PlaceID)
	assert.NotNil(t, r.Photos)
	assert.NotNil(t, r.CuisineTypes)
	assert.NotNil(t, r.Reviews)
}

func TestFillDefaults_ScattersCoordinatesAroundCentroid(t *testing.T) {
	opts := testOptions()
	r := &restaurant.Restaurant{Name: "Somewhere"}
	FillDefaults(r, opts.Defaults, opts.Classifier)

	assert.InDelta(t, CentroidLat, r.Latitude, 0.05)
	assert.InDelta(t, CentroidLng, r.Longitude, 0.05)
	assert.Equal(t, neighborhood.Fallback, r.Neighborhood)
	assert.Len(t, r.OpeningHours, 7)
}

func TestFillDefaults_StableIDs(t *testing.T) {
	fill := func() *restaurant.Restaurant {
		r := &restaurant.Restaurant{Name: "Bestia", Address: "2121 E 7th Pl, Los Angeles, CA 90021"}
		FillDefaults(r, DefaultDefaults(), nil)
		return r
	}
	a, b := fill(), fill()

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.PlaceID, b.PlaceID)
	assert.NotEqual(t, "placeholder_"+a.ID, a.PlaceID)

	_, err := uuid.Parse(a.ID)
	assert.NoError(t, err)
}

func TestFillDefaults_UnsluggableName(t *testing.T) {
	a := &restaurant.Restaurant{Name: "鮨 さいとう", Address: "1 Main St"}
	b := &restaurant.Restaurant{Name: "鮨 さいとう", Address: "2 Main St"}
	FillDefaults(a, DefaultDefaults(), nil)
	FillDefaults(b, DefaultDefaults(), nil)

	assert.Regexp(t, `^restaurant-[0-9a-f]{8}$`, a.Slug)
	assert.NotEqual(t, a.Slug, b.Slug)
}

// --------------------------------------------------
// Dedupe
// --------------------------------------------------

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	res := Run(sampleRaw(), testOptions())

	require.Len(t, res.Removed, 1)
	assert.Equal(t, "The Rose Venice", res.Removed[0].Name)
	assert.Equal(t, 1, res.Removed[0].Index)
	assert.Equal(t, 0, res.Removed[0].KeptIndex)

	var roses []*restaurant.Restaurant
	for _, r := range res.Records {
		if r.Name == "The Rose Venice" {
			roses = append(roses, r)
		}
	}
	require.Len(t, roses, 1)
	assert.Equal(t, 1200, roses[0].ReviewCount)
}

func TestDedupe_IgnoresCaseAndAccents(t *testing.T) {
	kept, removed := Dedupe([]*restaurant.Restaurant{
		{Name: "Café Stella", Address: "3932 W Sunset Blvd"},
		{Name: "CAFE STELLA", Address: "3932  w sunset blvd"},
	})
	assert.Len(t, kept, 1)
	assert.Len(t, removed, 1)
}

func TestUniqueSlugs_SuffixesCollisionsPerNeighborhood(t *testing.T) {
	records := []*restaurant.Restaurant{
		{Slug: "bestia", NeighborhoodSlug: "arts-district"},
		{Slug: "bestia", NeighborhoodSlug: "arts-district"},
		{Slug: "bestia-2", NeighborhoodSlug: "arts-district"},
		{Slug: "bestia", NeighborhoodSlug: "venice"},
	}
	changed := UniqueSlugs(records)

	assert.Equal(t, 1, changed)
	assert.Equal(t, "bestia", records[0].Slug)
	assert.Equal(t, "bestia-3", records[1].Slug)
	assert.Equal(t, "bestia-2", records[2].Slug)
	assert.Equal(t, "bestia", records[3].Slug)
}

// --------------------------------------------------
// Run
// --------------------------------------------------

func TestRun_SkipsNamelessRecords(t *testing.T) {
	res := Run(sampleRaw(), testOptions())
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 4, res.Skipped[0].Index)
	assert.Len(t, res.Records, 3)
}

func TestRun_ScoresAndClassifies(t *testing.T) {
	res := Run(sampleRaw(), testOptions())

	rose := res.Records[0]
	assert.Equal(t, "Venice", rose.Neighborhood)
	assert.Equal(t, "(310) 399-0711", rose.Phone)
	assert.GreaterOrEqual(t, rose.DateNightScore, 60)
	assert.LessOrEqual(t, rose.DateNightScore, 95)

	bestia := res.Records[1]
	assert.Equal(t, 3, bestia.PriceLevel)
	assert.Equal(t, []string{"Italian", "Pizza"}, bestia.CuisineTypes)
	assert.Equal(t, "arts-district", bestia.NeighborhoodSlug)

	assert.Equal(t, "bestia-2", res.Records[2].Slug)
	assert.Equal(t, 1, res.SlugsChanged)
}

func TestRun_FlagsUnrecognisedNeighborhoods(t *testing.T) {
	res := Run([]map[string]any{
		{"name": "Gjelina", "address": "1429 Abbot Kinney Blvd, Venice, CA 90291"},
		{"name": "Pop-up", "address": "1 Main St", "neighborhood": "Atlantis"},
	}, testOptions())

	require.Len(t, res.Records, 2)
	assert.Equal(t, []Unrecognised{{Name: "Pop-up", Neighborhood: "Atlantis"}}, res.Unrecognised)
}

func TestRun_KeepsExistingScoreUnlessRescore(t *testing.T) {
	raw := []map[string]any{{"name": "Kept", "date_night_score": float64(61)}}

	res := Run(raw, testOptions())
	assert.Equal(t, 61, res.Records[0].DateNightScore)

	opts := testOptions()
	opts.Rescore = true
	res = Run([]map[string]any{{"name": "Kept", "date_night_score": float64(61), "rating": 4.8, "price_level": float64(4)}}, opts)
	assert.NotEqual(t, 61, res.Records[0].DateNightScore)
}

func TestRun_IsIdempotentFixedPoint(t *testing.T) {
	first := Run(sampleRaw(), testOptions())

	path := filepath.Join(t.TempDir(), "restaurants.json")
	require.NoError(t, WriteFile(path, first.Records))

	raw, err := LoadFile(path)
	require.NoError(t, err)

	second := Run(raw, testOptions())
	assert.Empty(t, second.Removed)
	assert.Empty(t, second.Skipped)
	assert.Zero(t, second.SlugsChanged)
	assert.Zero(t, second.Rescored)
	if diff := cmp.Diff(first.Records, second.Records); diff != "" {
		t.Errorf("second pass changed records (-first +second):\n%s", diff)
	}
}

func TestLoadRestaurants(t *testing.T) {
	path := filepath.Join(t.TempDir(), "restaurants.json")
	first := Run(sampleRaw(), testOptions())
	require.NoError(t, WriteFile(path, first.Records))

	records, err := LoadRestaurants(path, testOptions())
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadRestaurants_SameFileSameIDs(t *testing.T) {
	data, err := json.Marshal(sampleRaw())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "restaurants.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	first, err := LoadRestaurants(path, DefaultOptions())
	require.NoError(t, err)
	second, err := LoadRestaurants(path, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID, first[i].Name)
		assert.Equal(t, first[i].PlaceID, second[i].PlaceID, first[i].Name)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
