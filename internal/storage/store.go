// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/lwandle/moneycircles/internal/models"
)

// ErrNotFound is returned when a referenced entity does not exist.
// Callers should match it with errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the interface for entity storage operations.
// This abstraction allows swapping storage backends (in-memory, SQLite, etc.)
// without changing the engine or service layers.
//
// Stores assign monotonically increasing int64 IDs on create and populate
// the entity's ID field. No method ever deletes an entity. Updates to a
// single record are serialized by the implementation.
type Store interface {
	// CreateUser persists a new user and assigns its ID.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, id int64) (*models.User, error)

	// GetUserByUsername retrieves a user by unique username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateUser replaces the stored user with the given record.
	UpdateUser(ctx context.Context, user *models.User) error

	// CreateSavingsGoal persists a new savings goal and assigns its ID.
	CreateSavingsGoal(ctx context.Context, goal *models.SavingsGoal) error

	// GetSavingsGoal retrieves a goal by ID.
	GetSavingsGoal(ctx context.Context, id int64) (*models.SavingsGoal, error)

	// ListSavingsGoals returns all goals owned by the given user.
	ListSavingsGoals(ctx context.Context, userID int64) ([]*models.SavingsGoal, error)

	// UpdateSavingsGoal replaces the stored goal with the given record.
	UpdateSavingsGoal(ctx context.Context, goal *models.SavingsGoal) error

	// CreateCircle persists a new circle and assigns its ID.
	CreateCircle(ctx context.Context, circle *models.MoneyCircle) error

	// GetCircle retrieves a circle by ID.
	GetCircle(ctx context.Context, id int64) (*models.MoneyCircle, error)

	// GetCircleByInviteCode retrieves a circle by its unique invite code.
	GetCircleByInviteCode(ctx context.Context, code string) (*models.MoneyCircle, error)

	// ListCircles returns all circles the user created or is a member of.
	ListCircles(ctx context.Context, userID int64) ([]*models.MoneyCircle, error)

	// UpdateCircle replaces the stored circle with the given record.
	UpdateCircle(ctx context.Context, circle *models.MoneyCircle) error

	// CreateMember persists a new circle membership and assigns its ID.
	CreateMember(ctx context.Context, member *models.CircleMember) error

	// GetMember retrieves the membership of userID in circleID.
	GetMember(ctx context.Context, circleID, userID int64) (*models.CircleMember, error)

	// ListMembers returns all members of the given circle in join order.
	ListMembers(ctx context.Context, circleID int64) ([]*models.CircleMember, error)

	// UpdateMember replaces the stored membership with the given record.
	UpdateMember(ctx context.Context, member *models.CircleMember) error

	// CreateActivity appends a new activity log entry and assigns its ID.
	CreateActivity(ctx context.Context, activity *models.CircleActivity) error

	// ListActivities returns the circle's activities, newest first.
	ListActivities(ctx context.Context, circleID int64) ([]*models.CircleActivity, error)

	// CreateMessage appends a new chat message and assigns its ID.
	CreateMessage(ctx context.Context, message *models.Message) error

	// ListMessages returns the circle's messages, oldest first.
	ListMessages(ctx context.Context, circleID int64) ([]*models.Message, error)

	// Close releases any resources held by the store.
	Close() error
}
