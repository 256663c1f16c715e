package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lwandle/moneycircles/internal/models"
	"github.com/lwandle/moneycircles/internal/storage"
)

// Timestamps are persisted as unix seconds, so fixtures use second precision.
var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newUser(t *testing.T, s *SQLiteStore, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: "hash",
		FullName:     username,
		Email:        username + "@example.com",
		Level:        1,
		CreatedAt:    testTime,
	}
	if err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return user
}

func newCircle(t *testing.T, s *SQLiteStore, createdBy int64, code string) *models.MoneyCircle {
	t.Helper()
	circle := &models.MoneyCircle{
		Name:                  "Fund",
		TargetAmount:          1000,
		TargetDate:            testTime.AddDate(0, 6, 0),
		ContributionFrequency: models.FrequencyMonthly,
		CreatedByID:           createdBy,
		CreatedAt:             testTime,
		InviteCode:            code,
	}
	if err := s.CreateCircle(context.Background(), circle); err != nil {
		t.Fatalf("CreateCircle() error = %v", err)
	}
	return circle
}

func TestUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user := newUser(t, s, "alice")
	if user.ID == 0 {
		t.Fatal("CreateUser() did not assign an ID")
	}

	got, err := s.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.Username != "alice" || got.Email != "alice@example.com" {
		t.Errorf("user = %+v", got)
	}
	if !got.CreatedAt.Equal(testTime) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, testTime)
	}

	byName, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if byName.ID != user.ID {
		t.Errorf("lookup by username returned ID %d, want %d", byName.ID, user.ID)
	}

	got.XPPoints = 70
	got.Level = 2
	got.WalletBalance = 250.5
	if err := s.UpdateUser(ctx, got); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	updated, err := s.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if updated.XPPoints != 70 || updated.Level != 2 || updated.WalletBalance != 250.5 {
		t.Errorf("updated user = %+v", updated)
	}

	if _, err := s.GetUser(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetUser(999) error = %v, want ErrNotFound", err)
	}
	if err := s.UpdateUser(ctx, &models.User{ID: 999, Username: "ghost"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateUser(999) error = %v, want ErrNotFound", err)
	}
}

func TestCircleRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newUser(t, s, "alice")

	circle := newCircle(t, s, alice.ID, "ABCD1234")

	got, err := s.GetCircle(ctx, circle.ID)
	if err != nil {
		t.Fatalf("GetCircle() error = %v", err)
	}
	if got.Name != "Fund" || got.ContributionFrequency != models.FrequencyMonthly {
		t.Errorf("circle = %+v", got)
	}

	byCode, err := s.GetCircleByInviteCode(ctx, "ABCD1234")
	if err != nil {
		t.Fatalf("GetCircleByInviteCode() error = %v", err)
	}
	if byCode.ID != circle.ID {
		t.Errorf("lookup by code returned ID %d, want %d", byCode.ID, circle.ID)
	}
	if _, err := s.GetCircleByInviteCode(ctx, "MISSING0"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetCircleByInviteCode(missing) error = %v, want ErrNotFound", err)
	}

	got.CurrentAmount = 450
	if err := s.UpdateCircle(ctx, got); err != nil {
		t.Fatalf("UpdateCircle() error = %v", err)
	}
	updated, err := s.GetCircle(ctx, circle.ID)
	if err != nil {
		t.Fatalf("GetCircle() error = %v", err)
	}
	if updated.CurrentAmount != 450 {
		t.Errorf("CurrentAmount = %v, want 450", updated.CurrentAmount)
	}
}

func TestListCirclesByMembership(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newUser(t, s, "alice")
	bob := newUser(t, s, "bob")

	created := newCircle(t, s, alice.ID, "CODE0001")
	joined := newCircle(t, s, bob.ID, "CODE0002")
	newCircle(t, s, bob.ID, "CODE0003")

	member := &models.CircleMember{
		CircleID: joined.ID, UserID: alice.ID,
		Role: models.RoleMember, TargetAmount: 500, JoinedAt: testTime,
	}
	if err := s.CreateMember(ctx, member); err != nil {
		t.Fatalf("CreateMember() error = %v", err)
	}

	circles, err := s.ListCircles(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListCircles() error = %v", err)
	}
	if len(circles) != 2 {
		t.Fatalf("len(circles) = %d, want 2 (created + member-of)", len(circles))
	}
	if circles[0].ID != created.ID || circles[1].ID != joined.ID {
		t.Errorf("circle IDs = [%d, %d], want [%d, %d]", circles[0].ID, circles[1].ID, created.ID, joined.ID)
	}
}

func TestMemberRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newUser(t, s, "alice")
	circle := newCircle(t, s, alice.ID, "CODE0001")

	member := &models.CircleMember{
		CircleID: circle.ID, UserID: alice.ID,
		Role: models.RoleAdmin, TargetAmount: 200, JoinedAt: testTime,
	}
	if err := s.CreateMember(ctx, member); err != nil {
		t.Fatalf("CreateMember() error = %v", err)
	}

	got, err := s.GetMember(ctx, circle.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetMember() error = %v", err)
	}
	if got.Role != models.RoleAdmin || got.TargetAmount != 200 {
		t.Errorf("member = %+v", got)
	}
	if _, err := s.GetMember(ctx, circle.ID, 999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetMember(non-member) error = %v, want ErrNotFound", err)
	}

	got.ContributedAmount = 120
	if err := s.UpdateMember(ctx, got); err != nil {
		t.Fatalf("UpdateMember() error = %v", err)
	}
	members, err := s.ListMembers(ctx, circle.ID)
	if err != nil {
		t.Fatalf("ListMembers() error = %v", err)
	}
	if len(members) != 1 || members[0].ContributedAmount != 120 {
		t.Errorf("members = %+v, want one with 120 contributed", members)
	}

	// The (circle, user) pair is unique.
	dup := &models.CircleMember{CircleID: circle.ID, UserID: alice.ID, Role: models.RoleMember, JoinedAt: testTime}
	if err := s.CreateMember(ctx, dup); err == nil {
		t.Error("CreateMember(duplicate) succeeded, want unique constraint error")
	}
}

func TestActivityDetailsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newUser(t, s, "alice")
	circle := newCircle(t, s, alice.ID, "CODE0001")

	entries := []*models.CircleActivity{
		{
			CircleID:  circle.ID,
			UserID:    alice.ID,
			Type:      models.ActivityContribution,
			Amount:    150,
			Details:   map[string]any{"message": "Contributed 150.00"},
			CreatedAt: testTime,
		},
		{
			CircleID:  circle.ID,
			Type:      models.ActivityMilestone,
			Details:   map[string]any{"milestone": 25},
			CreatedAt: testTime.Add(time.Hour),
		},
	}
	for _, a := range entries {
		if err := s.CreateActivity(ctx, a); err != nil {
			t.Fatalf("CreateActivity() error = %v", err)
		}
	}

	activities, err := s.ListActivities(ctx, circle.ID)
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("len(activities) = %d, want 2", len(activities))
	}

	// Newest first.
	milestone := activities[0]
	if milestone.Type != models.ActivityMilestone {
		t.Errorf("first activity = %+v, want milestone", milestone)
	}
	if milestone.UserID != 0 {
		t.Errorf("milestone UserID = %d, want 0 (system entry)", milestone.UserID)
	}
	// JSON round-trip turns the threshold into float64.
	if got, ok := milestone.Details["milestone"].(float64); !ok || got != 25 {
		t.Errorf("milestone details = %+v, want float64 25", milestone.Details)
	}

	contribution := activities[1]
	if contribution.UserID != alice.ID || contribution.Amount != 150 {
		t.Errorf("contribution = %+v", contribution)
	}
	if contribution.Details["message"] != "Contributed 150.00" {
		t.Errorf("contribution details = %+v", contribution.Details)
	}
}

func TestMessagesOldestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newUser(t, s, "alice")
	circle := newCircle(t, s, alice.ID, "CODE0001")

	for _, m := range []*models.Message{
		{CircleID: circle.ID, UserID: alice.ID, Content: "second", CreatedAt: testTime.Add(time.Minute)},
		{CircleID: circle.ID, UserID: alice.ID, Content: "first", CreatedAt: testTime},
	} {
		if err := s.CreateMessage(ctx, m); err != nil {
			t.Fatalf("CreateMessage() error = %v", err)
		}
	}

	messages, err := s.ListMessages(ctx, circle.ID)
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if len(messages) != 2 || messages[0].Content != "first" || messages[1].Content != "second" {
		t.Errorf("messages not in chronological order: %+v", messages)
	}
}

func TestSavingsGoalRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := newUser(t, s, "alice")

	goal := &models.SavingsGoal{
		UserID:       alice.ID,
		Name:         "Holiday",
		TargetAmount: 2000,
		TargetDate:   testTime.AddDate(1, 0, 0),
		Status:       models.GoalBoostNeeded,
		CreatedAt:    testTime,
	}
	if err := s.CreateSavingsGoal(ctx, goal); err != nil {
		t.Fatalf("CreateSavingsGoal() error = %v", err)
	}

	goal.CurrentAmount = 1100
	goal.Status = models.GoalOnTrack
	if err := s.UpdateSavingsGoal(ctx, goal); err != nil {
		t.Fatalf("UpdateSavingsGoal() error = %v", err)
	}

	goals, err := s.ListSavingsGoals(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListSavingsGoals() error = %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("len(goals) = %d, want 1", len(goals))
	}
	if goals[0].CurrentAmount != 1100 || goals[0].Status != models.GoalOnTrack {
		t.Errorf("goal = %+v", goals[0])
	}

	if _, err := s.GetSavingsGoal(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetSavingsGoal(999) error = %v, want ErrNotFound", err)
	}
}
