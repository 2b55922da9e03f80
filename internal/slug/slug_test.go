package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"The Rose Venice":        "the-rose-venice",
		"Café Stella":            "cafe-stella",
		"Jon & Vinny's":          "jon-and-vinnys",
		"  Bestia  ":             "bestia",
		"République / Bar":       "republique-bar",
		"n/naka":                 "n-naka",
		"Musso & Frank Grill!!!": "musso-and-frank-grill",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), in)
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "cafe stella", Fold("  Café   STELLA "))
	assert.Equal(t, Fold("République"), Fold("republique"))
}
