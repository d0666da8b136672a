package roadmap

import "sentiment-insight/severity"

// BuildQuery maps a tier to the search phrase used for video
// recommendations. Finite and total.
func BuildQuery(tier severity.Tier) string {
	switch tier {
	case severity.High:
		return "guided grounding and breathing exercises for overwhelming emotions"
	case severity.Mild:
		return "gentle recovery routines for mental fatigue and low mood"
	default:
		return "sustainable motivation and productivity habits"
	}
}
