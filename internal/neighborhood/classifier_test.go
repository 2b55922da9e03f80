package neighborhood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_NameMatch(t *testing.T) {
	c := NewClassifier()

	m := c.ClassifyWithReason("114 W Channel Rd, Santa Monica, CA 90402")
	assert.Equal(t, "Santa Monica", m.Name)
	assert.Equal(t, SourceName, m.Source)
}

func TestClassify_NameBeatsZIP(t *testing.T) {
	c := NewClassifier()

	// 90401 maps to Santa Monica but the explicit locality wins.
	m := c.ClassifyWithReason("220 Rose Ave, Venice, CA 90401")
	assert.Equal(t, "Venice", m.Name)
	assert.Equal(t, SourceName, m.Source)
}

func TestClassify_SpecificBeforeBroad(t *testing.T) {
	c := NewClassifier()

	assert.Equal(t, "West Hollywood", c.Classify("8500 Santa Monica Blvd, West Hollywood, CA 90069"))
	assert.Equal(t, "North Hollywood", c.Classify("5255 Lankershim Blvd, North Hollywood, CA"))
	assert.Equal(t, "Hollywood", c.Classify("6667 Hollywood Blvd, Los Angeles, CA"))
	assert.Equal(t, "South Pasadena", c.Classify("1010 Mission St, South Pasadena, CA"))
	assert.Equal(t, "Culver City", c.Classify("9300 Venice Blvd, Culver City, CA 90232"))
}

func TestClassify_ZIPFallback(t *testing.T) {
	c := NewClassifier()

	m := c.ClassifyWithReason("2121 E 7th Pl, Los Angeles, CA 90021")
	assert.Equal(t, "Arts District", m.Name)
	assert.Equal(t, SourceZIP, m.Source)
	assert.Equal(t, "90021", m.Pattern)
}

func TestClassify_ZIPPrefersLastToken(t *testing.T) {
	c := NewClassifier()

	// The street number looks like a ZIP; the trailing token is the real one.
	assert.Equal(t, "Malibu", c.Classify("90210 Something Rd, CA 90265"))
}

func TestClassify_StreetHeuristic(t *testing.T) {
	c := NewClassifier()

	m := c.ClassifyWithReason("1305 Abbot Kinney, CA")
	assert.Equal(t, "Venice", m.Name)
	assert.Equal(t, SourceStreet, m.Source)
}

func TestClassify_Fallback(t *testing.T) {
	c := NewClassifier()

	m := c.ClassifyWithReason("123 Nowhere Lane")
	assert.Equal(t, Fallback, m.Name)
	assert.Equal(t, SourceFallback, m.Source)
	assert.Equal(t, Fallback, c.Classify(""))
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier()
	addr := "2732 Main St, Santa Monica, CA 90405"
	first := c.Classify(addr)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, c.Classify(addr))
	}
}

func TestCanonical(t *testing.T) {
	c := NewClassifier()
	assert.Equal(t, "Silver Lake", c.Canonical("silverlake"))
	assert.Equal(t, "West Hollywood", c.Canonical("WEHO"))
	assert.Equal(t, "Somewhere New", c.Canonical(" Somewhere New "))
}

func TestKnownAndSlug(t *testing.T) {
	c := NewClassifier()
	assert.True(t, c.Known("Venice"))
	assert.True(t, c.Known("Los Angeles"))
	assert.False(t, c.Known("Atlantis"))
	assert.Equal(t, "marina-del-rey", Slug("Marina del Rey"))
}
