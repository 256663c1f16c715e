package models

import "time"

// Savings goal status labels shown in the UI.
const (
	GoalOnTrack     = "On Track"
	GoalBoostNeeded = "Boost Needed"
)

// SavingsGoal is a personal savings target owned by exactly one user.
type SavingsGoal struct {
	// ID is the unique identifier for the goal.
	ID int64

	// UserID is the owning user.
	UserID int64

	// Name is the display name of the goal (e.g., "Holiday Fund").
	Name string

	// TargetAmount is the savings target. Always > 0.
	TargetAmount float64

	// CurrentAmount is the amount saved so far.
	CurrentAmount float64

	// TargetDate is when the goal aims to be reached.
	TargetDate time.Time

	// Status is GoalOnTrack or GoalBoostNeeded, recomputed on every
	// contribution.
	Status string

	// CreatedAt is when the goal was created.
	CreatedAt time.Time
}

// GoalStatus returns the status label for a goal with the given progress.
// A goal is on track once at least half the target is saved.
func GoalStatus(current, target float64) string {
	if target > 0 && current >= target*0.5 {
		return GoalOnTrack
	}
	return GoalBoostNeeded
}
