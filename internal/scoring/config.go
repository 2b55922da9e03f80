package scoring

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// RatingTier awards Bonus when the rating is at least Min.
type RatingTier struct {
	Min   float64 `yaml:"min"`
	Bonus int     `yaml:"bonus"`
}

// Config holds every weight and keyword list used by the scorer.
type Config struct {
	Base        int          `yaml:"base"`
	RatingTiers []RatingTier `yaml:"rating_tiers"`
	PriceBonus  map[int]int  `yaml:"price_bonus"`

	CuisineBonus     int      `yaml:"cuisine_bonus"`
	RomanticCuisines []string `yaml:"romantic_cuisines"`

	NameBonus    int      `yaml:"name_bonus"`
	NameKeywords []string `yaml:"name_keywords"`

	AreaBonus     int      `yaml:"area_bonus"`
	RomanticAreas []string `yaml:"romantic_areas"`

	MaxJitter int `yaml:"max_jitter"`
	Min       int `yaml:"min"`
	Max       int `yaml:"max"`

	TopRatedScore  int     `yaml:"top_rated_score"`
	TopRatedRating float64 `yaml:"top_rated_rating"`
}

// DefaultConfig is the fix-date-scores weighting clamped to [60,95].
// "french" is deliberately absent from RomanticCuisines; add it via YAML.
func DefaultConfig() Config {
	return Config{
		Base: 50,
		RatingTiers: []RatingTier{
			{Min: 4.5, Bonus: 20},
			{Min: 4.0, Bonus: 15},
			{Min: 3.5, Bonus: 10},
			{Min: 3.0, Bonus: 5},
		},
		PriceBonus:       map[int]int{4: 15, 3: 12, 2: 8, 1: 4},
		CuisineBonus:     10,
		RomanticCuisines: []string{"italian", "japanese", "mediterranean", "steakhouse", "seafood"},
		NameBonus:        5,
		NameKeywords:     []string{"rose", "love", "heart", "romance", "intimate", "cozy", "charming"},
		AreaBonus:        10,
		RomanticAreas:    []string{"Beverly Hills", "Malibu", "Santa Monica", "Venice", "Manhattan Beach"},
		MaxJitter:        5,
		Min:              60,
		Max:              95,
		TopRatedScore:    90,
		TopRatedRating:   4.7,
	}
}

// Validate rejects configurations that would break the clamp or tier order.
func (c Config) Validate() error {
	if c.Min > c.Max {
		return fmt.Errorf("scoring: min %d greater than max %d", c.Min, c.Max)
	}
	if c.MaxJitter < 0 {
		return errors.New("scoring: max_jitter must not be negative")
	}
	for _, t := range c.RatingTiers {
		if t.Bonus < 0 {
			return fmt.Errorf("scoring: negative bonus for rating tier %.1f", t.Min)
		}
	}
	for level, bonus := range c.PriceBonus {
		if bonus < 0 {
			return fmt.Errorf("scoring: negative bonus for price level %d", level)
		}
	}
	return nil
}

// LoadConfig overlays the YAML file at path on DefaultConfig.
// An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("scoring: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("scoring: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// tiers returns rating tiers highest threshold first.
func (c Config) tiers() []RatingTier {
	out := append([]RatingTier(nil), c.RatingTiers...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Min > out[j].Min })
	return out
}
