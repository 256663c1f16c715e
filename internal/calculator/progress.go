// Package calculator contains the pure math behind circle progress tracking
// and member target assignment.
package calculator

import "math"

// Milestones are the celebrated progress thresholds, in scan order.
var Milestones = [4]int{25, 50, 75, 100}

// Progress returns the circle's progress as a whole percentage,
// rounded to the nearest integer. A non-positive target yields 0.
func Progress(current, target float64) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(current / target * 100))
}

// FirstMilestoneCrossed returns the first milestone threshold that lies in
// (previous, current]. Only the first match is reported: a contribution that
// jumps progress from 10% to 80% crosses 25, 50 and 75, but only 25 is
// celebrated. Intermediate thresholds are skipped on purpose so that one
// contribution never produces a burst of milestone events.
func FirstMilestoneCrossed(previous, current int) (int, bool) {
	for _, milestone := range Milestones {
		if previous < milestone && current >= milestone {
			return milestone, true
		}
	}
	return 0, false
}

// EqualShare returns the individual target for a member joining a circle
// that will have memberCount members after the join: an even division of the
// circle target, rounded to the nearest unit. Targets of members who joined
// earlier are never rebalanced.
func EqualShare(target float64, memberCount int) float64 {
	if memberCount <= 0 {
		return 0
	}
	return math.Round(target / float64(memberCount))
}

// CreatorShare returns the individual target assigned to a circle's creator:
// 20% of the circle target, rounded to the nearest unit.
func CreatorShare(target float64) float64 {
	return math.Round(target / 5)
}
