package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/lwandle/moneycircles/internal/models"
)

// CreateUser persists a new user and assigns its ID.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Level == 0 {
		user.Level = 1
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, full_name, email, wallet_balance, xp_points, level, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.PasswordHash, user.FullName, user.Email,
		user.WalletBalance, user.XPPoints, user.Level, toUnix(user.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = id
	return nil
}

func (s *SQLiteStore) scanUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	var createdAt int64
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.Email,
		&user.WalletBalance, &user.XPPoints, &user.Level, &createdAt,
	)
	if err != nil {
		return nil, notFound(err, "user")
	}
	user.CreatedAt = fromUnix(createdAt)
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.scanUser(ctx,
		`SELECT id, username, password_hash, full_name, email, wallet_balance, xp_points, level, created_at
		 FROM users WHERE id = ?`, id)
}

// GetUserByUsername retrieves a user by unique username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanUser(ctx,
		`SELECT id, username, password_hash, full_name, email, wallet_balance, xp_points, level, created_at
		 FROM users WHERE username = ?`, username)
}

// UpdateUser replaces the stored user with the given record.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET username = ?, password_hash = ?, full_name = ?, email = ?,
		 wallet_balance = ?, xp_points = ?, level = ? WHERE id = ?`,
		user.Username, user.PasswordHash, user.FullName, user.Email,
		user.WalletBalance, user.XPPoints, user.Level, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRow(result, "user")
}

// CreateSavingsGoal persists a new savings goal and assigns its ID.
func (s *SQLiteStore) CreateSavingsGoal(ctx context.Context, goal *models.SavingsGoal) error {
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO savings_goals (user_id, name, target_amount, current_amount, target_date, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentAmount,
		toUnix(goal.TargetDate), goal.Status, toUnix(goal.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert savings goal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read savings goal id: %w", err)
	}
	goal.ID = id
	return nil
}

// GetSavingsGoal retrieves a goal by ID.
func (s *SQLiteStore) GetSavingsGoal(ctx context.Context, id int64) (*models.SavingsGoal, error) {
	goal := &models.SavingsGoal{}
	var targetDate, createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, target_amount, current_amount, target_date, status, created_at
		 FROM savings_goals WHERE id = ?`, id,
	).Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount,
		&targetDate, &goal.Status, &createdAt)
	if err != nil {
		return nil, notFound(err, "savings goal")
	}
	goal.TargetDate = fromUnix(targetDate)
	goal.CreatedAt = fromUnix(createdAt)
	return goal, nil
}

// ListSavingsGoals returns all goals owned by the given user.
func (s *SQLiteStore) ListSavingsGoals(ctx context.Context, userID int64) ([]*models.SavingsGoal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, target_amount, current_amount, target_date, status, created_at
		 FROM savings_goals WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings goals: %w", err)
	}
	defer rows.Close()

	var goals []*models.SavingsGoal
	for rows.Next() {
		goal := &models.SavingsGoal{}
		var targetDate, createdAt int64
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount,
			&goal.CurrentAmount, &targetDate, &goal.Status, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan savings goal: %w", err)
		}
		goal.TargetDate = fromUnix(targetDate)
		goal.CreatedAt = fromUnix(createdAt)
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate savings goals: %w", err)
	}
	return goals, nil
}

// UpdateSavingsGoal replaces the stored goal with the given record.
func (s *SQLiteStore) UpdateSavingsGoal(ctx context.Context, goal *models.SavingsGoal) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE savings_goals SET name = ?, target_amount = ?, current_amount = ?,
		 target_date = ?, status = ? WHERE id = ?`,
		goal.Name, goal.TargetAmount, goal.CurrentAmount,
		toUnix(goal.TargetDate), goal.Status, goal.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update savings goal: %w", err)
	}
	return requireRow(result, "savings goal")
}
