package models

import "time"

// ContributionFrequency is how often circle members are expected to
// contribute.
type ContributionFrequency string

const (
	FrequencyWeekly  ContributionFrequency = "weekly"
	FrequencyMonthly ContributionFrequency = "monthly"
	FrequencyYearly  ContributionFrequency = "yearly"
)

// Valid reports whether f is one of the known frequencies.
func (f ContributionFrequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// MoneyCircle represents a group savings pool.
//
// Invariant: CurrentAmount always equals the sum of ContributedAmount across
// the circle's members. The circle engine is the only writer allowed to touch
// CurrentAmount, and only together with the matching member update.
type MoneyCircle struct {
	// ID is the unique identifier for the circle.
	ID int64

	// Name is the display name of the circle (e.g., "Family Vacation Fund").
	Name string

	// TargetAmount is the shared savings target. Always > 0.
	TargetAmount float64

	// CurrentAmount is the denormalized sum of member contributions.
	CurrentAmount float64

	// TargetDate is when the circle aims to reach its target.
	TargetDate time.Time

	// ContributionFrequency is the expected cadence of contributions.
	ContributionFrequency ContributionFrequency

	// AutoSave indicates whether scheduled contributions are enabled.
	AutoSave bool

	// CelebrateMilestones indicates whether milestone crossings should be
	// surfaced to members.
	CelebrateMilestones bool

	// CreatedByID is the user who created the circle. That user is also the
	// circle's admin member.
	CreatedByID int64

	// CreatedAt is when the circle was created.
	CreatedAt time.Time

	// InviteCode is the unique token that lets a user join without prior
	// membership.
	InviteCode string
}

// MemberRole distinguishes the circle creator from regular members.
type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// CircleMember is one user's participation record within one circle.
// A (CircleID, UserID) pair is unique; membership is permanent.
type CircleMember struct {
	// ID is the unique identifier for the membership record.
	ID int64

	// CircleID is the circle this membership belongs to.
	CircleID int64

	// UserID is the participating user.
	UserID int64

	// Role is admin for the creator, member for everyone else.
	Role MemberRole

	// TargetAmount is the member's individual sub-goal, assigned at join
	// time and never rebalanced afterwards.
	TargetAmount float64

	// ContributedAmount is the member's running contribution total.
	// Monotonically non-decreasing.
	ContributedAmount float64

	// JoinedAt is when the user joined the circle.
	JoinedAt time.Time
}
