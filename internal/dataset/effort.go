package dataset

import "math"

// minEffortHours is the floor for the derived effort estimate. Even a
// trivial docket costs a quarter hour to handle.
const minEffortHours = 0.25

// EffortHours estimates the handling effort for a case: a 1.0h base
// plus 0.5h per decade of monetary value, scaled by the tribute-type
// factor and floored at minEffortHours.
func EffortHours(value, factor float64) float64 {
	base := 1.0
	if value > 0 {
		if lg := math.Log10(value); lg > 0 {
			base += 0.5 * lg
		}
	}
	hours := base * factor
	if hours < minEffortHours {
		hours = minEffortHours
	}
	return hours
}
