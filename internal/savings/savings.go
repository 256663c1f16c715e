// Package savings manages personal savings goals: creation, listing, and
// contributions with the derived status label.
package savings

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/lwandle/moneycircles/internal/apperr"
	"github.com/lwandle/moneycircles/internal/models"
	"github.com/lwandle/moneycircles/internal/storage"
)

// Service implements savings goal operations over a storage.Store.
type Service struct {
	store storage.Store
	now   func() time.Time
}

// New creates a savings Service over the given store.
func New(store storage.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock overrides the service clock for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateInput carries the caller-supplied fields for a new goal.
type CreateInput struct {
	Name         string
	TargetAmount float64
	TargetDate   time.Time
}

// List returns all goals owned by the user.
func (s *Service) List(ctx context.Context, userID int64) ([]*models.SavingsGoal, error) {
	return s.store.ListSavingsGoals(ctx, userID)
}

// Create validates the input and persists a new goal with zero progress.
func (s *Service) Create(ctx context.Context, userID int64, input CreateInput) (*models.SavingsGoal, error) {
	var fields []apperr.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "goal name is required"})
	}
	if input.TargetAmount <= 0 {
		fields = append(fields, apperr.FieldError{Field: "targetAmount", Message: "target amount must be positive"})
	}
	if !input.TargetDate.After(s.now()) {
		fields = append(fields, apperr.FieldError{Field: "targetDate", Message: "target date must be in the future"})
	}
	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}

	goal := &models.SavingsGoal{
		UserID:        userID,
		Name:          strings.TrimSpace(input.Name),
		TargetAmount:  input.TargetAmount,
		CurrentAmount: 0,
		TargetDate:    input.TargetDate,
		Status:        models.GoalBoostNeeded,
	}
	if err := s.store.CreateSavingsGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	slog.Info("Savings goal created", "goal_id", goal.ID, "user_id", userID, "target", goal.TargetAmount)
	return goal, nil
}

// Contribute adds amount to the goal and recomputes its status label.
// Only the goal's owner may contribute.
func (s *Service) Contribute(ctx context.Context, goalID, userID int64, amount float64) (*models.SavingsGoal, error) {
	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return nil, apperr.Invalid("amount", "amount must be a positive number")
	}

	goal, err := s.store.GetSavingsGoal(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("goal %d: %w", goalID, err)
	}
	if goal.UserID != userID {
		return nil, fmt.Errorf("goal %d for user %d: %w", goalID, userID, storage.ErrNotFound)
	}

	goal.CurrentAmount += amount
	goal.Status = models.GoalStatus(goal.CurrentAmount, goal.TargetAmount)
	if err := s.store.UpdateSavingsGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	slog.Info("Goal contribution recorded",
		"goal_id", goalID,
		"user_id", userID,
		"amount", amount,
		"current", goal.CurrentAmount,
		"status", goal.Status,
	)
	return goal, nil
}
