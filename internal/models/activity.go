package models

import "time"

// ActivityType classifies circle activity log entries.
type ActivityType string

const (
	ActivityContribution  ActivityType = "contribution"
	ActivityMilestone     ActivityType = "milestone"
	ActivityMemberJoined  ActivityType = "member_joined"
	ActivityCircleCreated ActivityType = "circle_created"
)

// CircleActivity is an immutable, append-only log entry describing something
// that happened in a circle. Activity feeds read these in descending
// CreatedAt order.
type CircleActivity struct {
	// ID is the unique identifier for the activity.
	ID int64

	// CircleID is the circle the activity belongs to.
	CircleID int64

	// UserID is the acting user. Zero for system-generated entries such as
	// milestone activities.
	UserID int64

	// Type is one of the Activity* constants.
	Type ActivityType

	// Amount is the contributed amount for contribution activities, zero
	// otherwise.
	Amount float64

	// Details is a free-form structured payload, e.g. {"milestone": 75}.
	Details map[string]any

	// CreatedAt is when the activity was recorded.
	CreatedAt time.Time
}

// Message is a chat message persisted against a circle. Chat reads are in
// ascending CreatedAt order for display.
type Message struct {
	// ID is the unique identifier for the message.
	ID int64

	// CircleID is the circle chat the message belongs to.
	CircleID int64

	// UserID is the sender.
	UserID int64

	// Content is the message body.
	Content string

	// CreatedAt is when the message was sent.
	CreatedAt time.Time
}
