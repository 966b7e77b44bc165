package organization

import "math"

// Score derives an organization's acceptance score on a 1-5 scale from its
// running accept/decision counters. Zero decisions means no score yet.
func Score(accepted, decisions int) float64 {
	if decisions <= 0 {
		return 0
	}
	ratio := float64(accepted) / float64(decisions)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return math.Round((1+ratio*4)*100) / 100
}
