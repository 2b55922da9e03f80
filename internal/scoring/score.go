package scoring

import "strings"

// Input is the subset of a restaurant the score depends on.
type Input struct {
	Name        string
	Address     string
	Rating      float64
	PriceLevel  int
	CuisineTags []string
	ReviewCount int
}

// Breakdown lists each term that went into a score.
type Breakdown struct {
	Base    int `json:"base"`
	Rating  int `json:"rating"`
	Price   int `json:"price"`
	Cuisine int `json:"cuisine"`
	Name    int `json:"name"`
	Area    int `json:"area"`
	Jitter  int `json:"jitter"`
	Raw     int `json:"raw"`
	Final   int `json:"final"`
}

type Scorer struct {
	cfg    Config
	jitter Jitter

	cuisines map[string]bool
	names    []string
	areas    []string
	tiers    []RatingTier
}

func NewScorer(cfg Config, jitter Jitter) *Scorer {
	if jitter == nil {
		jitter = NoJitter
	}

	s := &Scorer{
		cfg:      cfg,
		jitter:   jitter,
		cuisines: make(map[string]bool, len(cfg.RomanticCuisines)),
		tiers:    cfg.tiers(),
	}
	for _, c := range cfg.RomanticCuisines {
		s.cuisines[strings.ToLower(strings.TrimSpace(c))] = true
	}
	for _, k := range cfg.NameKeywords {
		s.names = append(s.names, strings.ToLower(k))
	}
	for _, a := range cfg.RomanticAreas {
		s.areas = append(s.areas, strings.ToLower(a))
	}
	return s
}

// Score returns the clamped date-night score.
func (s *Scorer) Score(in Input) int {
	return s.Breakdown(in).Final
}

func (s *Scorer) Breakdown(in Input) Breakdown {
	b := Breakdown{Base: s.cfg.Base}

	for _, t := range s.tiers {
		if in.Rating >= t.Min {
			b.Rating = t.Bonus
			break
		}
	}

	b.Price = s.cfg.PriceBonus[in.PriceLevel]

	for _, tag := range in.CuisineTags {
		if s.cuisines[strings.ToLower(strings.TrimSpace(tag))] {
			b.Cuisine = s.cfg.CuisineBonus
			break
		}
	}

	if containsAny(strings.ToLower(in.Name), s.names) {
		b.Name = s.cfg.NameBonus
	}
	if containsAny(strings.ToLower(in.Address), s.areas) {
		b.Area = s.cfg.AreaBonus
	}

	if s.cfg.MaxJitter > 0 {
		b.Jitter = s.jitter.Intn(s.cfg.MaxJitter)
	}

	b.Raw = b.Base + b.Rating + b.Price + b.Cuisine + b.Name + b.Area + b.Jitter
	b.Final = clamp(b.Raw, s.cfg.Min, s.cfg.Max)
	return b
}

// TopRated derives the is_top_rated flag.
func (s *Scorer) TopRated(score int, rating float64) bool {
	return score >= s.cfg.TopRatedScore || rating >= s.cfg.TopRatedRating
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
