// Package view produces read-optimized projections of circles, members,
// activities and messages for external consumption.
//
// Enrichment is read-only and side-effect-free, and every value is recomputed
// on read: fields like the time-ago strings are inherently time-dependent, so
// nothing here is cached.
package view

import (
	"context"
	"fmt"
	"time"

	"github.com/lwandle/moneycircles/internal/models"
	"github.com/lwandle/moneycircles/internal/storage"
)

// Member status thresholds. A member is on track once they have contributed
// three quarters of their individual target; they count as a pending
// contribution while below half of it. The cutoffs differ on purpose: they
// drive different UI affordances.
const (
	onTrackRatio = 0.75
	pendingRatio = 0.5
)

// Member status labels.
const (
	StatusOnTrack    = "On Track"
	StatusNeedsBoost = "Needs Boost"
)

// Views builds enriched read models by joining entities from the store.
type Views struct {
	store storage.Store
	now   func() time.Time
}

// New creates a Views layer over the given store.
func New(store storage.Store) *Views {
	return &Views{store: store, now: time.Now}
}

// WithClock overrides the clock used for time-ago formatting. Used in tests.
func (v *Views) WithClock(now func() time.Time) *Views {
	v.now = now
	return v
}

// MemberView is a circle member joined with their display name and status.
type MemberView struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	Contributed float64 `json:"contributed"`
	Target      float64 `json:"target"`
	Status      string  `json:"status"`
	IsYou       bool    `json:"isYou"`
}

// MemberSummary is the compact member representation embedded in circle
// views.
type MemberSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CircleSummary is the list view of a circle.
type CircleSummary struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	TargetAmount         float64         `json:"targetAmount"`
	CurrentAmount        float64         `json:"currentAmount"`
	TargetDate           time.Time       `json:"targetDate"`
	MemberCount          int             `json:"memberCount"`
	Members              []MemberSummary `json:"members"`
	UnreadMessages       int             `json:"unreadMessages"`
	StartedTimeAgo       string          `json:"startedTimeAgo"`
	PendingContributions int             `json:"pendingContributions"`
}

// CircleDetails is the full single-circle view.
type CircleDetails struct {
	CircleSummary
	ContributionFrequency string `json:"contributionFrequency"`
	AutoSave              bool   `json:"autoSave"`
	CelebrateMilestones   bool   `json:"celebrateMilestones"`
	CreatedByID           int64  `json:"createdById"`
	CreatedBy             string `json:"createdBy"`
	InviteCode            string `json:"inviteCode"`
}

// ActivityView is an activity feed entry with the acting user resolved.
// User is empty for system-generated entries such as milestones.
type ActivityView struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	User      string  `json:"user,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Milestone int     `json:"milestone,omitempty"`
	TimeAgo   string  `json:"timeAgo"`
}

// MessageView is a chat message with the sender resolved.
type MessageView struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	SenderID  int64     `json:"senderId"`
	Timestamp time.Time `json:"timestamp"`
	TimeAgo   string    `json:"timeAgo"`
}

// userName resolves a user's display name, tolerating missing users.
func (v *Views) userName(ctx context.Context, userID int64) string {
	user, err := v.store.GetUser(ctx, userID)
	if err != nil {
		return "Unknown User"
	}
	return user.FullName
}

// MemberStatus returns the status label for a member's progress against
// their individual target.
func MemberStatus(contributed, target float64) string {
	if contributed >= target*onTrackRatio {
		return StatusOnTrack
	}
	return StatusNeedsBoost
}

// Members returns the enriched member list for a circle. currentUserID marks
// the caller's own membership with IsYou.
func (v *Views) Members(ctx context.Context, circleID, currentUserID int64) ([]MemberView, error) {
	members, err := v.store.ListMembers(ctx, circleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	views := make([]MemberView, len(members))
	for i, member := range members {
		views[i] = MemberView{
			ID:          member.ID,
			Name:        v.userName(ctx, member.UserID),
			Role:        string(member.Role),
			Contributed: member.ContributedAmount,
			Target:      member.TargetAmount,
			Status:      MemberStatus(member.ContributedAmount, member.TargetAmount),
			IsYou:       member.UserID == currentUserID,
		}
	}
	return views, nil
}

// summarize builds the shared summary fields for one circle.
func (v *Views) summarize(ctx context.Context, circle *models.MoneyCircle) (CircleSummary, error) {
	members, err := v.store.ListMembers(ctx, circle.ID)
	if err != nil {
		return CircleSummary{}, fmt.Errorf("failed to list members: %w", err)
	}

	summaries := make([]MemberSummary, len(members))
	pending := 0
	for i, member := range members {
		summaries[i] = MemberSummary{ID: member.ID, Name: v.userName(ctx, member.UserID)}
		if member.ContributedAmount < member.TargetAmount*pendingRatio {
			pending++
		}
	}

	messages, err := v.store.ListMessages(ctx, circle.ID)
	if err != nil {
		return CircleSummary{}, fmt.Errorf("failed to list messages: %w", err)
	}

	return CircleSummary{
		ID:                   circle.ID,
		Name:                 circle.Name,
		TargetAmount:         circle.TargetAmount,
		CurrentAmount:        circle.CurrentAmount,
		TargetDate:           circle.TargetDate,
		MemberCount:          len(members),
		Members:              summaries,
		UnreadMessages:       len(messages),
		StartedTimeAgo:       TimeAgo(circle.CreatedAt, v.now()),
		PendingContributions: pending,
	}, nil
}

// Circles returns the enriched list of circles the user belongs to.
func (v *Views) Circles(ctx context.Context, userID int64) ([]CircleSummary, error) {
	circles, err := v.store.ListCircles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list circles: %w", err)
	}

	summaries := make([]CircleSummary, len(circles))
	for i, circle := range circles {
		summary, err := v.summarize(ctx, circle)
		if err != nil {
			return nil, err
		}
		summaries[i] = summary
	}
	return summaries, nil
}

// Circle returns the full detail view of one circle.
func (v *Views) Circle(ctx context.Context, circleID int64) (*CircleDetails, error) {
	circle, err := v.store.GetCircle(ctx, circleID)
	if err != nil {
		return nil, fmt.Errorf("circle %d: %w", circleID, err)
	}

	summary, err := v.summarize(ctx, circle)
	if err != nil {
		return nil, err
	}

	return &CircleDetails{
		CircleSummary:         summary,
		ContributionFrequency: string(circle.ContributionFrequency),
		AutoSave:              circle.AutoSave,
		CelebrateMilestones:   circle.CelebrateMilestones,
		CreatedByID:           circle.CreatedByID,
		CreatedBy:             v.userName(ctx, circle.CreatedByID),
		InviteCode:            circle.InviteCode,
	}, nil
}

// Activities returns the circle's activity feed, newest first.
func (v *Views) Activities(ctx context.Context, circleID int64) ([]ActivityView, error) {
	activities, err := v.store.ListActivities(ctx, circleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	now := v.now()
	views := make([]ActivityView, len(activities))
	for i, activity := range activities {
		av := ActivityView{
			ID:      activity.ID,
			Type:    string(activity.Type),
			Amount:  activity.Amount,
			TimeAgo: TimeAgo(activity.CreatedAt, now),
		}
		if activity.UserID != 0 {
			av.User = v.userName(ctx, activity.UserID)
		}
		if activity.Type == models.ActivityMilestone {
			av.Milestone = milestoneFromDetails(activity.Details)
		}
		views[i] = av
	}
	return views, nil
}

// milestoneFromDetails extracts the threshold from an activity payload.
// Details may round-trip through JSON, so numbers can arrive as float64.
func milestoneFromDetails(details map[string]any) int {
	switch m := details["milestone"].(type) {
	case int:
		return m
	case float64:
		return int(m)
	}
	return 0
}

// Messages returns the circle's chat log, oldest first.
func (v *Views) Messages(ctx context.Context, circleID int64) ([]MessageView, error) {
	messages, err := v.store.ListMessages(ctx, circleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	now := v.now()
	views := make([]MessageView, len(messages))
	for i, message := range messages {
		views[i] = MessageView{
			ID:        message.ID,
			Content:   message.Content,
			Sender:    v.userName(ctx, message.UserID),
			SenderID:  message.UserID,
			Timestamp: message.CreatedAt,
			TimeAgo:   TimeAgo(message.CreatedAt, now),
		}
	}
	return views, nil
}

// Message enriches a single just-created message for API responses.
func (v *Views) Message(ctx context.Context, message *models.Message) MessageView {
	return MessageView{
		ID:        message.ID,
		Content:   message.Content,
		Sender:    v.userName(ctx, message.UserID),
		SenderID:  message.UserID,
		Timestamp: message.CreatedAt,
		TimeAgo:   TimeAgo(message.CreatedAt, v.now()),
	}
}
