package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lwandle/moneycircles/internal/models"
	"github.com/lwandle/moneycircles/internal/storage"
	"github.com/lwandle/moneycircles/internal/storage/memory"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store  *memory.Store
	views  *Views
	alice  *models.User
	bob    *models.User
	circle *models.MoneyCircle
}

// newFixture seeds a circle with two members: alice (admin, on track) and
// bob (behind on his target).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	alice := &models.User{Username: "alice", FullName: "Alice Dube"}
	bob := &models.User{Username: "bob", FullName: "Bob Nkosi"}
	for _, u := range []*models.User{alice, bob} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser() error = %v", err)
		}
	}

	circle := &models.MoneyCircle{
		Name:                  "Vacation Fund",
		TargetAmount:          1000,
		CurrentAmount:         250,
		TargetDate:            testNow.AddDate(0, 6, 0),
		ContributionFrequency: models.FrequencyMonthly,
		CreatedByID:           alice.ID,
		CreatedAt:             testNow.Add(-48 * time.Hour),
		InviteCode:            "CIRCLE01",
	}
	if err := store.CreateCircle(ctx, circle); err != nil {
		t.Fatalf("CreateCircle() error = %v", err)
	}

	members := []*models.CircleMember{
		{CircleID: circle.ID, UserID: alice.ID, Role: models.RoleAdmin, TargetAmount: 200, ContributedAmount: 200},
		{CircleID: circle.ID, UserID: bob.ID, Role: models.RoleMember, TargetAmount: 500, ContributedAmount: 50},
	}
	for _, m := range members {
		if err := store.CreateMember(ctx, m); err != nil {
			t.Fatalf("CreateMember() error = %v", err)
		}
	}

	views := New(store).WithClock(func() time.Time { return testNow })
	return &fixture{store: store, views: views, alice: alice, bob: bob, circle: circle}
}

func TestMemberStatus(t *testing.T) {
	tests := []struct {
		name        string
		contributed float64
		target      float64
		want        string
	}{
		{"exactly at threshold", 75, 100, StatusOnTrack},
		{"above threshold", 90, 100, StatusOnTrack},
		{"just below threshold", 74.99, 100, StatusNeedsBoost},
		{"nothing contributed", 0, 100, StatusNeedsBoost},
		{"zero target is always on track", 0, 0, StatusOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MemberStatus(tt.contributed, tt.target); got != tt.want {
				t.Errorf("MemberStatus(%v, %v) = %q, want %q", tt.contributed, tt.target, got, tt.want)
			}
		})
	}
}

func TestMembers(t *testing.T) {
	f := newFixture(t)

	members, err := f.views.Members(context.Background(), f.circle.ID, f.bob.ID)
	if err != nil {
		t.Fatalf("Members() error = %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("len(members) = %d, want 2", len(members))
	}

	aliceView := members[0]
	if aliceView.Name != "Alice Dube" {
		t.Errorf("alice name = %q, want resolved full name", aliceView.Name)
	}
	if aliceView.Status != StatusOnTrack {
		t.Errorf("alice status = %q, want %q (200 of 200)", aliceView.Status, StatusOnTrack)
	}
	if aliceView.IsYou {
		t.Error("alice marked IsYou for bob's request")
	}

	bobView := members[1]
	if bobView.Status != StatusNeedsBoost {
		t.Errorf("bob status = %q, want %q (50 of 500)", bobView.Status, StatusNeedsBoost)
	}
	if !bobView.IsYou {
		t.Error("bob not marked IsYou for his own request")
	}
}

func TestMembersUnknownUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A membership pointing at a deleted user still renders.
	ghost := &models.CircleMember{CircleID: f.circle.ID, UserID: 999, Role: models.RoleMember, TargetAmount: 100}
	if err := f.store.CreateMember(ctx, ghost); err != nil {
		t.Fatalf("CreateMember() error = %v", err)
	}

	members, err := f.views.Members(ctx, f.circle.ID, f.alice.ID)
	if err != nil {
		t.Fatalf("Members() error = %v", err)
	}
	if got := members[len(members)-1].Name; got != "Unknown User" {
		t.Errorf("ghost member name = %q, want %q", got, "Unknown User")
	}
}

func TestCircleDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, content := range []string{"hi", "hello"} {
		if err := f.store.CreateMessage(ctx, &models.Message{CircleID: f.circle.ID, UserID: f.alice.ID, Content: content}); err != nil {
			t.Fatalf("CreateMessage() error = %v", err)
		}
	}

	details, err := f.views.Circle(ctx, f.circle.ID)
	if err != nil {
		t.Fatalf("Circle() error = %v", err)
	}

	if details.MemberCount != 2 {
		t.Errorf("MemberCount = %d, want 2", details.MemberCount)
	}
	// Alice is at 100% of her target, bob at 10%: only bob is pending.
	if details.PendingContributions != 1 {
		t.Errorf("PendingContributions = %d, want 1", details.PendingContributions)
	}
	if details.UnreadMessages != 2 {
		t.Errorf("UnreadMessages = %d, want 2", details.UnreadMessages)
	}
	if details.StartedTimeAgo != "2d ago" {
		t.Errorf("StartedTimeAgo = %q, want %q", details.StartedTimeAgo, "2d ago")
	}
	if details.CreatedBy != "Alice Dube" {
		t.Errorf("CreatedBy = %q, want resolved creator name", details.CreatedBy)
	}
	if details.InviteCode != "CIRCLE01" {
		t.Errorf("InviteCode = %q, want CIRCLE01", details.InviteCode)
	}
}

func TestCircleNotFound(t *testing.T) {
	f := newFixture(t)
	if _, err := f.views.Circle(context.Background(), 999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Circle(999) error = %v, want ErrNotFound", err)
	}
}

func TestCircles(t *testing.T) {
	f := newFixture(t)

	// Bob sees the circle he is a member of; a stranger sees nothing.
	summaries, err := f.views.Circles(context.Background(), f.bob.ID)
	if err != nil {
		t.Fatalf("Circles() error = %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("len(summaries) = %d, want 1", len(summaries))
	}
	if summaries[0].Name != "Vacation Fund" {
		t.Errorf("summary name = %q", summaries[0].Name)
	}

	none, err := f.views.Circles(context.Background(), 999)
	if err != nil {
		t.Fatalf("Circles(stranger) error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("stranger sees %d circles, want 0", len(none))
	}
}

func TestActivities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entries := []*models.CircleActivity{
		{
			CircleID:  f.circle.ID,
			UserID:    f.alice.ID,
			Type:      models.ActivityContribution,
			Amount:    200,
			CreatedAt: testNow.Add(-2 * time.Hour),
		},
		{
			CircleID:  f.circle.ID,
			Type:      models.ActivityMilestone,
			Details:   map[string]any{"milestone": 25},
			CreatedAt: testNow.Add(-1 * time.Hour),
		},
	}
	for _, a := range entries {
		if err := f.store.CreateActivity(ctx, a); err != nil {
			t.Fatalf("CreateActivity() error = %v", err)
		}
	}

	activities, err := f.views.Activities(ctx, f.circle.ID)
	if err != nil {
		t.Fatalf("Activities() error = %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("len(activities) = %d, want 2", len(activities))
	}

	// Newest first: the milestone leads.
	milestone := activities[0]
	if milestone.Type != string(models.ActivityMilestone) {
		t.Errorf("first activity type = %q, want milestone", milestone.Type)
	}
	if milestone.Milestone != 25 {
		t.Errorf("milestone = %d, want 25", milestone.Milestone)
	}
	if milestone.User != "" {
		t.Errorf("milestone user = %q, want empty (system entry)", milestone.User)
	}
	if milestone.TimeAgo != "1h ago" {
		t.Errorf("milestone TimeAgo = %q, want %q", milestone.TimeAgo, "1h ago")
	}

	contribution := activities[1]
	if contribution.User != "Alice Dube" {
		t.Errorf("contribution user = %q, want resolved name", contribution.User)
	}
	if contribution.Amount != 200 {
		t.Errorf("contribution amount = %v, want 200", contribution.Amount)
	}
}

func TestMilestoneFromDetails(t *testing.T) {
	// Details round-trip through JSON in the SQLite backend, so the
	// threshold may come back as float64.
	if got := milestoneFromDetails(map[string]any{"milestone": 50}); got != 50 {
		t.Errorf("int milestone = %d, want 50", got)
	}
	if got := milestoneFromDetails(map[string]any{"milestone": float64(75)}); got != 75 {
		t.Errorf("float64 milestone = %d, want 75", got)
	}
	if got := milestoneFromDetails(map[string]any{}); got != 0 {
		t.Errorf("missing milestone = %d, want 0", got)
	}
}

func TestMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := &models.Message{CircleID: f.circle.ID, UserID: f.alice.ID, Content: "first", CreatedAt: testNow.Add(-2 * time.Minute)}
	second := &models.Message{CircleID: f.circle.ID, UserID: f.bob.ID, Content: "second", CreatedAt: testNow.Add(-1 * time.Minute)}
	for _, m := range []*models.Message{first, second} {
		if err := f.store.CreateMessage(ctx, m); err != nil {
			t.Fatalf("CreateMessage() error = %v", err)
		}
	}

	messages, err := f.views.Messages(ctx, f.circle.ID)
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}

	// Oldest first.
	if messages[0].Content != "first" || messages[1].Content != "second" {
		t.Errorf("message order = [%q, %q], want chronological", messages[0].Content, messages[1].Content)
	}
	if messages[0].Sender != "Alice Dube" {
		t.Errorf("sender = %q, want resolved name", messages[0].Sender)
	}
	if messages[1].SenderID != f.bob.ID {
		t.Errorf("senderId = %d, want %d", messages[1].SenderID, f.bob.ID)
	}
	if messages[1].TimeAgo != "1m ago" {
		t.Errorf("TimeAgo = %q, want %q", messages[1].TimeAgo, "1m ago")
	}
}
