// Package memory provides an in-memory implementation of the storage.Store
// interface. It is the reference backend: data lives for the process
// lifetime only.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lwandle/moneycircles/internal/models"
	"github.com/lwandle/moneycircles/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using in-memory maps.
//
// A single RWMutex serializes all writes, so updates to a single record can
// never interleave. Entities are copied on the way in and out: callers can
// mutate what they get back without affecting the stored record until they
// call the matching Update method.
type Store struct {
	mu sync.RWMutex

	users      map[int64]*models.User
	goals      map[int64]*models.SavingsGoal
	circles    map[int64]*models.MoneyCircle
	members    map[int64]*models.CircleMember
	activities map[int64]*models.CircleActivity
	messages   map[int64]*models.Message

	userID     int64
	goalID     int64
	circleID   int64
	memberID   int64
	activityID int64
	messageID  int64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:      make(map[int64]*models.User),
		goals:      make(map[int64]*models.SavingsGoal),
		circles:    make(map[int64]*models.MoneyCircle),
		members:    make(map[int64]*models.CircleMember),
		activities: make(map[int64]*models.CircleActivity),
		messages:   make(map[int64]*models.Message),
	}
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyGoal(g *models.SavingsGoal) *models.SavingsGoal {
	c := *g
	return &c
}

func copyCircle(c *models.MoneyCircle) *models.MoneyCircle {
	cp := *c
	return &cp
}

func copyMember(m *models.CircleMember) *models.CircleMember {
	c := *m
	return &c
}

func copyActivity(a *models.CircleActivity) *models.CircleActivity {
	c := *a
	if a.Details != nil {
		c.Details = make(map[string]any, len(a.Details))
		for k, v := range a.Details {
			c.Details[k] = v
		}
	}
	return &c
}

func copyMessage(m *models.Message) *models.Message {
	c := *m
	return &c
}

// CreateUser persists a new user and assigns its ID.
func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID++
	user.ID = s.userID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Level == 0 {
		user.Level = 1
	}
	s.users[user.ID] = copyUser(user)
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyUser(user), nil
}

// GetUserByUsername retrieves a user by unique username.
func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return copyUser(user), nil
		}
	}
	return nil, storage.ErrNotFound
}

// UpdateUser replaces the stored user with the given record.
func (s *Store) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return storage.ErrNotFound
	}
	s.users[user.ID] = copyUser(user)
	return nil
}

// CreateSavingsGoal persists a new savings goal and assigns its ID.
func (s *Store) CreateSavingsGoal(_ context.Context, goal *models.SavingsGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goalID++
	goal.ID = s.goalID
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now().UTC()
	}
	s.goals[goal.ID] = copyGoal(goal)
	return nil
}

// GetSavingsGoal retrieves a goal by ID.
func (s *Store) GetSavingsGoal(_ context.Context, id int64) (*models.SavingsGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goal, ok := s.goals[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyGoal(goal), nil
}

// ListSavingsGoals returns all goals owned by the given user.
func (s *Store) ListSavingsGoals(_ context.Context, userID int64) ([]*models.SavingsGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var goals []*models.SavingsGoal
	for _, goal := range s.goals {
		if goal.UserID == userID {
			goals = append(goals, copyGoal(goal))
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	return goals, nil
}

// UpdateSavingsGoal replaces the stored goal with the given record.
func (s *Store) UpdateSavingsGoal(_ context.Context, goal *models.SavingsGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.goals[goal.ID]; !ok {
		return storage.ErrNotFound
	}
	s.goals[goal.ID] = copyGoal(goal)
	return nil
}

// CreateCircle persists a new circle and assigns its ID.
func (s *Store) CreateCircle(_ context.Context, circle *models.MoneyCircle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.circleID++
	circle.ID = s.circleID
	if circle.CreatedAt.IsZero() {
		circle.CreatedAt = time.Now().UTC()
	}
	s.circles[circle.ID] = copyCircle(circle)
	return nil
}

// GetCircle retrieves a circle by ID.
func (s *Store) GetCircle(_ context.Context, id int64) (*models.MoneyCircle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	circle, ok := s.circles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyCircle(circle), nil
}

// GetCircleByInviteCode retrieves a circle by its unique invite code.
func (s *Store) GetCircleByInviteCode(_ context.Context, code string) (*models.MoneyCircle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, circle := range s.circles {
		if circle.InviteCode == code {
			return copyCircle(circle), nil
		}
	}
	return nil, storage.ErrNotFound
}

// ListCircles returns all circles the user created or is a member of.
func (s *Store) ListCircles(_ context.Context, userID int64) ([]*models.MoneyCircle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	memberOf := make(map[int64]bool)
	for _, member := range s.members {
		if member.UserID == userID {
			memberOf[member.CircleID] = true
		}
	}

	var circles []*models.MoneyCircle
	for _, circle := range s.circles {
		if memberOf[circle.ID] || circle.CreatedByID == userID {
			circles = append(circles, copyCircle(circle))
		}
	}
	sort.Slice(circles, func(i, j int) bool { return circles[i].ID < circles[j].ID })
	return circles, nil
}

// UpdateCircle replaces the stored circle with the given record.
func (s *Store) UpdateCircle(_ context.Context, circle *models.MoneyCircle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.circles[circle.ID]; !ok {
		return storage.ErrNotFound
	}
	s.circles[circle.ID] = copyCircle(circle)
	return nil
}

// CreateMember persists a new circle membership and assigns its ID.
func (s *Store) CreateMember(_ context.Context, member *models.CircleMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memberID++
	member.ID = s.memberID
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}
	s.members[member.ID] = copyMember(member)
	return nil
}

// GetMember retrieves the membership of userID in circleID.
func (s *Store) GetMember(_ context.Context, circleID, userID int64) (*models.CircleMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, member := range s.members {
		if member.CircleID == circleID && member.UserID == userID {
			return copyMember(member), nil
		}
	}
	return nil, storage.ErrNotFound
}

// ListMembers returns all members of the given circle in join order.
func (s *Store) ListMembers(_ context.Context, circleID int64) ([]*models.CircleMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var members []*models.CircleMember
	for _, member := range s.members {
		if member.CircleID == circleID {
			members = append(members, copyMember(member))
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

// UpdateMember replaces the stored membership with the given record.
func (s *Store) UpdateMember(_ context.Context, member *models.CircleMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[member.ID]; !ok {
		return storage.ErrNotFound
	}
	s.members[member.ID] = copyMember(member)
	return nil
}

// CreateActivity appends a new activity log entry and assigns its ID.
func (s *Store) CreateActivity(_ context.Context, activity *models.CircleActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activityID++
	activity.ID = s.activityID
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}
	s.activities[activity.ID] = copyActivity(activity)
	return nil
}

// ListActivities returns the circle's activities, newest first.
func (s *Store) ListActivities(_ context.Context, circleID int64) ([]*models.CircleActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var activities []*models.CircleActivity
	for _, activity := range s.activities {
		if activity.CircleID == circleID {
			activities = append(activities, copyActivity(activity))
		}
	}
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].CreatedAt.Equal(activities[j].CreatedAt) {
			return activities[i].ID > activities[j].ID
		}
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	return activities, nil
}

// CreateMessage appends a new chat message and assigns its ID.
func (s *Store) CreateMessage(_ context.Context, message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messageID++
	message.ID = s.messageID
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	s.messages[message.ID] = copyMessage(message)
	return nil
}

// ListMessages returns the circle's messages, oldest first.
func (s *Store) ListMessages(_ context.Context, circleID int64) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var messages []*models.Message
	for _, message := range s.messages {
		if message.CircleID == circleID {
			messages = append(messages, copyMessage(message))
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}
