package models

import "time"

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user.
	ID int64

	// Username is the unique login name.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to API responses.
	PasswordHash string

	// FullName is the display name shown to other circle members.
	FullName string

	// Email is the user's email address.
	Email string

	// WalletBalance is the user's available balance. Never negative.
	WalletBalance float64

	// XPPoints is the total experience earned from saving activity.
	XPPoints int

	// Level is derived from XPPoints via LevelForXP. Starts at 1.
	Level int

	// CreatedAt is when the account was registered.
	CreatedAt time.Time
}

// Level curve: reaching level n+1 requires 100 * 1.5^(n-1) points,
// so 100 XP reaches level 2, 150 more reaches level 3, and so on.
const (
	levelBasePoints = 100.0
	levelMultiplier = 1.5
)

// LevelForXP returns the level a user with the given XP total has reached.
// The result is always >= 1 and monotonically non-decreasing in xp.
func LevelForXP(xp int) int {
	level := 1
	threshold := levelBasePoints
	for float64(xp) >= threshold {
		level++
		threshold *= levelMultiplier
	}
	return level
}
