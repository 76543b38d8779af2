// ABOUTME: Canned health tips served by the tip command and endpoints.
// ABOUTME: Selection is random; callers may inject their own source.
package models

import "math/rand"

// Tips is the built-in list of health tips.
var Tips = []string{
	"Warm up before exercise and stretch afterwards.",
	"Drink enough water, especially on training days.",
	"Avoid screens for the hour before bed.",
	"A balanced diet is the foundation of a healthy routine.",
	"Even on rest days, stand up and move around regularly.",
}

// RandomTip returns a random entry from Tips. A nil source uses the global one.
func RandomTip(r *rand.Rand) string {
	if r == nil {
		return Tips[rand.Intn(len(Tips))]
	}
	return Tips[r.Intn(len(Tips))]
}
