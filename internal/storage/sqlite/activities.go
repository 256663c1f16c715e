package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lwandle/moneycircles/internal/models"
)

// CreateActivity appends a new activity log entry and assigns its ID.
// The details payload is stored as JSON text.
func (s *SQLiteStore) CreateActivity(ctx context.Context, activity *models.CircleActivity) error {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}

	var details sql.NullString
	if activity.Details != nil {
		raw, err := json.Marshal(activity.Details)
		if err != nil {
			return fmt.Errorf("failed to encode activity details: %w", err)
		}
		details = sql.NullString{String: string(raw), Valid: true}
	}

	var userID sql.NullInt64
	if activity.UserID != 0 {
		userID = sql.NullInt64{Int64: activity.UserID, Valid: true}
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO circle_activities (circle_id, user_id, type, amount, details, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		activity.CircleID, userID, string(activity.Type), activity.Amount,
		details, toUnix(activity.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read activity id: %w", err)
	}
	activity.ID = id
	return nil
}

// ListActivities returns the circle's activities, newest first.
func (s *SQLiteStore) ListActivities(ctx context.Context, circleID int64) ([]*models.CircleActivity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, circle_id, user_id, type, amount, details, created_at
		 FROM circle_activities WHERE circle_id = ? ORDER BY created_at DESC, id DESC`, circleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.CircleActivity
	for rows.Next() {
		activity := &models.CircleActivity{}
		var activityType string
		var userID sql.NullInt64
		var amount sql.NullFloat64
		var details sql.NullString
		var createdAt int64
		if err := rows.Scan(&activity.ID, &activity.CircleID, &userID, &activityType,
			&amount, &details, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activity.Type = models.ActivityType(activityType)
		activity.UserID = userID.Int64
		activity.Amount = amount.Float64
		activity.CreatedAt = fromUnix(createdAt)
		if details.Valid {
			if err := json.Unmarshal([]byte(details.String), &activity.Details); err != nil {
				return nil, fmt.Errorf("failed to decode activity details: %w", err)
			}
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return activities, nil
}

// CreateMessage appends a new chat message and assigns its ID.
func (s *SQLiteStore) CreateMessage(ctx context.Context, message *models.Message) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (circle_id, user_id, content, created_at) VALUES (?, ?, ?, ?)`,
		message.CircleID, message.UserID, message.Content, toUnix(message.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read message id: %w", err)
	}
	message.ID = id
	return nil
}

// ListMessages returns the circle's messages, oldest first.
func (s *SQLiteStore) ListMessages(ctx context.Context, circleID int64) ([]*models.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, circle_id, user_id, content, created_at
		 FROM messages WHERE circle_id = ? ORDER BY created_at, id`, circleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		message := &models.Message{}
		var createdAt int64
		if err := rows.Scan(&message.ID, &message.CircleID, &message.UserID,
			&message.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		message.CreatedAt = fromUnix(createdAt)
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return messages, nil
}
