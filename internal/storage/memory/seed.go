package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/lwandle/moneycircles/internal/models"
)

// Seed loads a small demo dataset: one primary user with savings goals,
// a handful of secondary users, and two circles with members and activity
// history. Intended for local development and demos only.
func (s *Store) Seed(ctx context.Context) error {
	primary := &models.User{
		Username:      "lindokuhle.msiza",
		FullName:      "Lindokuhle Msiza",
		Email:         "lindokuhle.msiza@gmail.com",
		WalletBalance: 12450.00,
		XPPoints:      65,
		Level:         2,
	}
	if err := s.CreateUser(ctx, primary); err != nil {
		return fmt.Errorf("seed primary user: %w", err)
	}

	now := time.Now().UTC()

	goals := []*models.SavingsGoal{
		{
			UserID:        primary.ID,
			Name:          "Holiday Fund",
			TargetAmount:  5000,
			CurrentAmount: 3750,
			TargetDate:    now.AddDate(0, 6, 0),
			Status:        models.GoalOnTrack,
		},
		{
			UserID:        primary.ID,
			Name:          "New Laptop",
			TargetAmount:  12000,
			CurrentAmount: 4200,
			TargetDate:    now.AddDate(0, 4, 0),
			Status:        models.GoalBoostNeeded,
		},
	}
	for _, goal := range goals {
		if err := s.CreateSavingsGoal(ctx, goal); err != nil {
			return fmt.Errorf("seed goal %q: %w", goal.Name, err)
		}
	}

	others := []*models.User{
		{Username: "lerato", FullName: "Lerato K.", Email: "lerato@example.com", WalletBalance: 1000, XPPoints: 10, Level: 1},
		{Username: "thabo", FullName: "Thabo M.", Email: "thabo@example.com", WalletBalance: 2000, XPPoints: 20, Level: 1},
		{Username: "sarah", FullName: "Sarah J.", Email: "sarah@example.com", WalletBalance: 3000, XPPoints: 30, Level: 1},
		{Username: "michael", FullName: "Michael P.", Email: "michael@example.com", WalletBalance: 4000, XPPoints: 40, Level: 1},
	}
	for _, user := range others {
		if err := s.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("seed user %q: %w", user.Username, err)
		}
	}

	vacation := &models.MoneyCircle{
		Name:                  "Family Vacation Fund",
		TargetAmount:          20000,
		CurrentAmount:         9500,
		TargetDate:            now.AddDate(0, 5, 0),
		ContributionFrequency: models.FrequencyMonthly,
		AutoSave:              true,
		CelebrateMilestones:   true,
		CreatedByID:           primary.ID,
		CreatedAt:             now.AddDate(0, -6, 0),
		InviteCode:            "ABC123XY",
	}
	if err := s.CreateCircle(ctx, vacation); err != nil {
		return fmt.Errorf("seed vacation circle: %w", err)
	}

	party := &models.MoneyCircle{
		Name:                  "Office Party",
		TargetAmount:          5000,
		CurrentAmount:         1400,
		TargetDate:            now.AddDate(0, 2, 0),
		ContributionFrequency: models.FrequencyWeekly,
		AutoSave:              true,
		CelebrateMilestones:   true,
		CreatedByID:           primary.ID,
		CreatedAt:             now.AddDate(0, -5, 0),
		InviteCode:            "XYZ789AB",
	}
	if err := s.CreateCircle(ctx, party); err != nil {
		return fmt.Errorf("seed party circle: %w", err)
	}

	members := []*models.CircleMember{
		{CircleID: vacation.ID, UserID: primary.ID, Role: models.RoleAdmin, TargetAmount: 5000, ContributedAmount: 4000, JoinedAt: vacation.CreatedAt},
		{CircleID: vacation.ID, UserID: others[0].ID, Role: models.RoleMember, TargetAmount: 5000, ContributedAmount: 3000, JoinedAt: vacation.CreatedAt.AddDate(0, 0, 1)},
		{CircleID: vacation.ID, UserID: others[1].ID, Role: models.RoleMember, TargetAmount: 5000, ContributedAmount: 2500, JoinedAt: vacation.CreatedAt.AddDate(0, 0, 1)},
		{CircleID: party.ID, UserID: others[0].ID, Role: models.RoleAdmin, TargetAmount: 1000, ContributedAmount: 500, JoinedAt: party.CreatedAt},
		{CircleID: party.ID, UserID: others[1].ID, Role: models.RoleMember, TargetAmount: 1000, ContributedAmount: 400, JoinedAt: party.CreatedAt},
		{CircleID: party.ID, UserID: others[2].ID, Role: models.RoleMember, TargetAmount: 1000, ContributedAmount: 300, JoinedAt: party.CreatedAt},
		{CircleID: party.ID, UserID: others[3].ID, Role: models.RoleMember, TargetAmount: 1000, ContributedAmount: 200, JoinedAt: party.CreatedAt},
	}
	for _, member := range members {
		if err := s.CreateMember(ctx, member); err != nil {
			return fmt.Errorf("seed member: %w", err)
		}
	}

	activities := []*models.CircleActivity{
		{
			CircleID:  vacation.ID,
			UserID:    others[1].ID,
			Type:      models.ActivityContribution,
			Amount:    1000,
			Details:   map[string]any{"message": "Regular contribution"},
			CreatedAt: now.Add(-48 * time.Hour),
		},
		{
			CircleID:  vacation.ID,
			Type:      models.ActivityMilestone,
			Details:   map[string]any{"milestone": 75, "message": "Reached 75% of goal"},
			CreatedAt: now.Add(-96 * time.Hour),
		},
		{
			CircleID:  vacation.ID,
			UserID:    others[0].ID,
			Type:      models.ActivityContribution,
			Amount:    500,
			Details:   map[string]any{"message": "Regular contribution"},
			CreatedAt: now.Add(-120 * time.Hour),
		},
	}
	for _, activity := range activities {
		if err := s.CreateActivity(ctx, activity); err != nil {
			return fmt.Errorf("seed activity: %w", err)
		}
	}

	return nil
}
