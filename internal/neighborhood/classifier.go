package neighborhood

import (
	"regexp"
	"strings"

	"datenight/internal/slug"
)

// Fallback is returned when no rule matches.
const Fallback = "Los Angeles"

// Source says which rule family produced a Match.
type Source string

const (
	SourceName     Source = "name"
	SourceZIP      Source = "zip"
	SourceStreet   Source = "street"
	SourceFallback Source = "fallback"
)

type Match struct {
	Name    string `json:"name"`
	Source  Source `json:"source"`
	Pattern string `json:"pattern,omitempty"`
}

var zipPattern = regexp.MustCompile(`\b\d{5}\b`)

// Classifier resolves free-text addresses to neighborhood names.
// Name patterns win over ZIP codes, ZIP codes over street heuristics.
type Classifier struct {
	names    []Rule
	zips     map[string]string
	streets  []Rule
	fallback string
}

func NewClassifier() *Classifier {
	return &Classifier{
		names:    nameRules,
		zips:     zipTable,
		streets:  streetRules,
		fallback: Fallback,
	}
}

// Classify returns the canonical neighborhood name for address.
func (c *Classifier) Classify(address string) string {
	return c.ClassifyWithReason(address).Name
}

func (c *Classifier) ClassifyWithReason(address string) Match {
	lower := strings.ToLower(address)

	for _, r := range c.names {
		if strings.Contains(lower, r.Pattern) {
			return Match{Name: r.Name, Source: SourceName, Pattern: r.Pattern}
		}
	}

	// Walk ZIP-shaped tokens from the end; street numbers come first.
	zips := zipPattern.FindAllString(lower, -1)
	for i := len(zips) - 1; i >= 0; i-- {
		if name, ok := c.zips[zips[i]]; ok {
			return Match{Name: name, Source: SourceZIP, Pattern: zips[i]}
		}
	}

	for _, r := range c.streets {
		if strings.Contains(lower, r.Pattern) {
			return Match{Name: r.Name, Source: SourceStreet, Pattern: r.Pattern}
		}
	}

	return Match{Name: c.fallback, Source: SourceFallback}
}

// Known reports whether name is one of the canonical neighborhoods.
func (c *Classifier) Known(name string) bool {
	if name == c.fallback {
		return true
	}
	for _, r := range c.names {
		if r.Name == name {
			return true
		}
	}
	for _, n := range c.zips {
		if n == name {
			return true
		}
	}
	return false
}

// Canonical maps loosely written names ("silverlake", "WEHO") onto the
// canonical spelling, or returns name unchanged.
func (c *Classifier) Canonical(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, r := range c.names {
		if lower == r.Pattern || lower == strings.ToLower(r.Name) {
			return r.Name
		}
	}
	return strings.TrimSpace(name)
}

// Slug is the URL slug for a neighborhood name.
func Slug(name string) string {
	return slug.Make(name)
}
