// Package circle implements the circle contribution and progress-tracking
// engine: circle creation, membership joins, contribution application,
// milestone detection, and activity recording.
package circle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/lwandle/moneycircles/internal/apperr"
	"github.com/lwandle/moneycircles/internal/calculator"
	"github.com/lwandle/moneycircles/internal/metrics"
	"github.com/lwandle/moneycircles/internal/models"
	"github.com/lwandle/moneycircles/internal/storage"
)

const (
	// maxCodeAttempts bounds the invite code collision retry loop.
	maxCodeAttempts = 5

	// xpPerContribution is the XP awarded to a member for each contribution.
	xpPerContribution = 10
)

// Engine orchestrates all circle mutations atop a storage.Store.
//
// Contributions to the same circle are serialized through a per-circle mutex
// so the circle total and the member totals can never drift apart under
// concurrent writes. Contributions to different circles proceed in parallel.
type Engine struct {
	store storage.Store
	now   func() time.Time

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// New creates an Engine over the given store.
func New(store storage.Store) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
		locks: make(map[int64]*sync.Mutex),
	}
}

// WithClock overrides the engine's clock. Used by tests that validate
// time-dependent rules such as the future target date check.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// circleLock returns the mutex serializing writes to one circle.
func (e *Engine) circleLock(circleID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[circleID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[circleID] = lock
	}
	return lock
}

// CreateInput carries the caller-supplied fields for a new circle.
type CreateInput struct {
	Name                  string
	TargetAmount          float64
	TargetDate            time.Time
	ContributionFrequency models.ContributionFrequency
	AutoSave              bool
	CelebrateMilestones   bool
}

func (e *Engine) validateCreate(input CreateInput) error {
	var fields []apperr.FieldError
	if len(strings.TrimSpace(input.Name)) < 3 {
		fields = append(fields, apperr.FieldError{Field: "name", Message: "circle name must be at least 3 characters"})
	}
	if input.TargetAmount < 100 {
		fields = append(fields, apperr.FieldError{Field: "targetAmount", Message: "target amount must be at least 100"})
	}
	if !input.TargetDate.After(e.now()) {
		fields = append(fields, apperr.FieldError{Field: "targetDate", Message: "target date must be in the future"})
	}
	if !input.ContributionFrequency.Valid() {
		fields = append(fields, apperr.FieldError{Field: "contributionFrequency", Message: "frequency must be weekly, monthly or yearly"})
	}
	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

// uniqueInviteCode generates an invite code that no existing circle uses,
// retrying on collision up to maxCodeAttempts times.
func (e *Engine) uniqueInviteCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := newInviteCode()
		if err != nil {
			return "", err
		}
		_, err = e.store.GetCircleByInviteCode(ctx, code)
		if errors.Is(err, storage.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check invite code: %w", err)
		}
		slog.Warn("Invite code collision, retrying", "attempt", attempt+1)
	}
	return "", ErrCodeExhausted
}

// Create validates the input, persists a new circle with a unique invite
// code, enrolls the creator as its admin member with a 20% individual target,
// and records a circle_created activity.
func (e *Engine) Create(ctx context.Context, creatorID int64, input CreateInput) (*models.MoneyCircle, error) {
	if err := e.validateCreate(input); err != nil {
		return nil, err
	}

	code, err := e.uniqueInviteCode(ctx)
	if err != nil {
		return nil, err
	}

	circle := &models.MoneyCircle{
		Name:                  strings.TrimSpace(input.Name),
		TargetAmount:          input.TargetAmount,
		CurrentAmount:         0,
		TargetDate:            input.TargetDate,
		ContributionFrequency: input.ContributionFrequency,
		AutoSave:              input.AutoSave,
		CelebrateMilestones:   input.CelebrateMilestones,
		CreatedByID:           creatorID,
		InviteCode:            code,
	}
	if err := e.store.CreateCircle(ctx, circle); err != nil {
		return nil, fmt.Errorf("failed to create circle: %w", err)
	}

	member := &models.CircleMember{
		CircleID:          circle.ID,
		UserID:            creatorID,
		Role:              models.RoleAdmin,
		TargetAmount:      calculator.CreatorShare(circle.TargetAmount),
		ContributedAmount: 0,
	}
	if err := e.store.CreateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add creator member: %w", err)
	}

	activity := &models.CircleActivity{
		CircleID: circle.ID,
		UserID:   creatorID,
		Type:     models.ActivityCircleCreated,
		Details:  map[string]any{"message": "Circle was created"},
	}
	if err := e.store.CreateActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to record creation activity: %w", err)
	}

	metrics.CirclesCreated.Inc()
	slog.Info("Circle created",
		"circle_id", circle.ID,
		"name", circle.Name,
		"target_amount", circle.TargetAmount,
		"created_by", creatorID,
	)
	return circle, nil
}

// Join adds userID to the circle with an equal-split individual target.
//
// Joining a circle the user already belongs to is a no-op success. The new
// member's target is the circle target divided evenly across the membership
// size after the join; targets assigned to earlier members are deliberately
// left untouched.
func (e *Engine) Join(ctx context.Context, circleID, userID int64) (bool, error) {
	lock := e.circleLock(circleID)
	lock.Lock()
	defer lock.Unlock()

	circle, err := e.store.GetCircle(ctx, circleID)
	if err != nil {
		return false, fmt.Errorf("circle %d: %w", circleID, err)
	}

	if _, err := e.store.GetMember(ctx, circleID, userID); err == nil {
		return true, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	members, err := e.store.ListMembers(ctx, circleID)
	if err != nil {
		return false, fmt.Errorf("failed to list members: %w", err)
	}

	member := &models.CircleMember{
		CircleID:          circleID,
		UserID:            userID,
		Role:              models.RoleMember,
		TargetAmount:      calculator.EqualShare(circle.TargetAmount, len(members)+1),
		ContributedAmount: 0,
	}
	if err := e.store.CreateMember(ctx, member); err != nil {
		return false, fmt.Errorf("failed to add member: %w", err)
	}

	activity := &models.CircleActivity{
		CircleID: circleID,
		UserID:   userID,
		Type:     models.ActivityMemberJoined,
		Details:  map[string]any{"message": "New member joined the circle"},
	}
	if err := e.store.CreateActivity(ctx, activity); err != nil {
		return false, fmt.Errorf("failed to record join activity: %w", err)
	}

	slog.Info("Member joined circle",
		"circle_id", circleID,
		"user_id", userID,
		"member_target", member.TargetAmount,
	)
	return true, nil
}

// JoinByCode resolves an invite code and joins the user to the matching
// circle. Returns the circle so callers can report which one was joined.
func (e *Engine) JoinByCode(ctx context.Context, code string, userID int64) (*models.MoneyCircle, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperr.Invalid("code", "invite code is required")
	}

	circle, err := e.store.GetCircleByInviteCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("invite code %q: %w", code, err)
	}
	if _, err := e.Join(ctx, circle.ID, userID); err != nil {
		return nil, err
	}
	return circle, nil
}

// GetByInviteCode resolves an invite code to its circle.
func (e *Engine) GetByInviteCode(ctx context.Context, code string) (*models.MoneyCircle, error) {
	return e.store.GetCircleByInviteCode(ctx, code)
}

// ContributionResult reports the outcome of a recorded contribution.
type ContributionResult struct {
	// Member is the updated membership record.
	Member *models.CircleMember

	// Circle is the updated circle.
	Circle *models.MoneyCircle

	// Milestone is the progress threshold crossed by this contribution,
	// or 0 when none was crossed.
	Milestone int
}

// Contribute applies a contribution to the member and the circle as one
// atomic unit, records a contribution activity, and celebrates the first
// milestone threshold the new progress crossed, if any.
func (e *Engine) Contribute(ctx context.Context, circleID, userID int64, amount float64) (*ContributionResult, error) {
	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return nil, apperr.Invalid("amount", "amount must be a positive number")
	}

	lock := e.circleLock(circleID)
	lock.Lock()
	defer lock.Unlock()

	circle, err := e.store.GetCircle(ctx, circleID)
	if err != nil {
		return nil, fmt.Errorf("circle %d: %w", circleID, err)
	}
	member, err := e.store.GetMember(ctx, circleID, userID)
	if err != nil {
		return nil, fmt.Errorf("member %d of circle %d: %w", userID, circleID, err)
	}

	member.ContributedAmount += amount
	if err := e.store.UpdateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update member total: %w", err)
	}

	circle.CurrentAmount += amount
	if err := e.store.UpdateCircle(ctx, circle); err != nil {
		// Roll the member back so the sum invariant stays intact.
		member.ContributedAmount -= amount
		if rbErr := e.store.UpdateMember(ctx, member); rbErr != nil {
			slog.Error("Failed to roll back member total", "member_id", member.ID, "error", rbErr)
		}
		return nil, fmt.Errorf("failed to update circle total: %w", err)
	}

	contribution := &models.CircleActivity{
		CircleID: circleID,
		UserID:   userID,
		Type:     models.ActivityContribution,
		Amount:   amount,
		Details:  map[string]any{"message": fmt.Sprintf("Contributed %.2f", amount)},
	}
	if err := e.store.CreateActivity(ctx, contribution); err != nil {
		return nil, fmt.Errorf("failed to record contribution activity: %w", err)
	}

	result := &ContributionResult{Member: member, Circle: circle}

	previous := calculator.Progress(circle.CurrentAmount-amount, circle.TargetAmount)
	current := calculator.Progress(circle.CurrentAmount, circle.TargetAmount)
	if milestone, crossed := calculator.FirstMilestoneCrossed(previous, current); crossed {
		activity := &models.CircleActivity{
			CircleID: circleID,
			Type:     models.ActivityMilestone,
			Details:  map[string]any{"milestone": milestone, "message": fmt.Sprintf("Reached %d%% of goal", milestone)},
		}
		if err := e.store.CreateActivity(ctx, activity); err != nil {
			return nil, fmt.Errorf("failed to record milestone activity: %w", err)
		}
		result.Milestone = milestone
		metrics.MilestonesReached.WithLabelValues(fmt.Sprint(milestone)).Inc()
		slog.Info("Milestone reached", "circle_id", circleID, "milestone", milestone)
	}

	e.awardXP(ctx, userID)

	metrics.ContributionsTotal.Inc()
	metrics.ContributedAmount.Add(amount)
	slog.Info("Contribution recorded",
		"circle_id", circleID,
		"user_id", userID,
		"amount", amount,
		"member_total", member.ContributedAmount,
		"circle_total", circle.CurrentAmount,
	)
	return result, nil
}

// awardXP grants contribution XP and recomputes the user's level.
// XP is a progression nicety: failures are logged, never surfaced.
func (e *Engine) awardXP(ctx context.Context, userID int64) {
	user, err := e.store.GetUser(ctx, userID)
	if err != nil {
		slog.Warn("Failed to load user for XP award", "user_id", userID, "error", err)
		return
	}
	user.XPPoints += xpPerContribution
	if level := models.LevelForXP(user.XPPoints); level > user.Level {
		user.Level = level
		slog.Info("User leveled up", "user_id", userID, "level", level)
	}
	if err := e.store.UpdateUser(ctx, user); err != nil {
		slog.Warn("Failed to save XP award", "user_id", userID, "error", err)
	}
}

// PostMessage persists a chat message against a circle.
func (e *Engine) PostMessage(ctx context.Context, circleID, userID int64, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Invalid("content", "message cannot be empty")
	}
	if _, err := e.store.GetCircle(ctx, circleID); err != nil {
		return nil, fmt.Errorf("circle %d: %w", circleID, err)
	}

	message := &models.Message{
		CircleID: circleID,
		UserID:   userID,
		Content:  content,
	}
	if err := e.store.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return message, nil
}
