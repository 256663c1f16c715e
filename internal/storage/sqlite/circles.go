package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/lwandle/moneycircles/internal/models"
)

const circleColumns = `id, name, target_amount, current_amount, target_date,
	contribution_frequency, auto_save, celebrate_milestones, created_by_id, created_at, invite_code`

// CreateCircle persists a new circle and assigns its ID.
func (s *SQLiteStore) CreateCircle(ctx context.Context, circle *models.MoneyCircle) error {
	if circle.CreatedAt.IsZero() {
		circle.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO money_circles (name, target_amount, current_amount, target_date,
		 contribution_frequency, auto_save, celebrate_milestones, created_by_id, created_at, invite_code)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		circle.Name, circle.TargetAmount, circle.CurrentAmount, toUnix(circle.TargetDate),
		string(circle.ContributionFrequency), circle.AutoSave, circle.CelebrateMilestones,
		circle.CreatedByID, toUnix(circle.CreatedAt), circle.InviteCode,
	)
	if err != nil {
		return fmt.Errorf("failed to insert circle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read circle id: %w", err)
	}
	circle.ID = id
	return nil
}

func scanCircle(scan func(dest ...any) error) (*models.MoneyCircle, error) {
	circle := &models.MoneyCircle{}
	var frequency string
	var targetDate, createdAt int64
	err := scan(&circle.ID, &circle.Name, &circle.TargetAmount, &circle.CurrentAmount,
		&targetDate, &frequency, &circle.AutoSave, &circle.CelebrateMilestones,
		&circle.CreatedByID, &createdAt, &circle.InviteCode)
	if err != nil {
		return nil, err
	}
	circle.TargetDate = fromUnix(targetDate)
	circle.ContributionFrequency = models.ContributionFrequency(frequency)
	circle.CreatedAt = fromUnix(createdAt)
	return circle, nil
}

// GetCircle retrieves a circle by ID.
func (s *SQLiteStore) GetCircle(ctx context.Context, id int64) (*models.MoneyCircle, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+circleColumns+` FROM money_circles WHERE id = ?`, id)
	circle, err := scanCircle(row.Scan)
	if err != nil {
		return nil, notFound(err, "circle")
	}
	return circle, nil
}

// GetCircleByInviteCode retrieves a circle by its unique invite code.
func (s *SQLiteStore) GetCircleByInviteCode(ctx context.Context, code string) (*models.MoneyCircle, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+circleColumns+` FROM money_circles WHERE invite_code = ?`, code)
	circle, err := scanCircle(row.Scan)
	if err != nil {
		return nil, notFound(err, "circle")
	}
	return circle, nil
}

// ListCircles returns all circles the user created or is a member of.
func (s *SQLiteStore) ListCircles(ctx context.Context, userID int64) ([]*models.MoneyCircle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT c.id, c.name, c.target_amount, c.current_amount, c.target_date,
		 c.contribution_frequency, c.auto_save, c.celebrate_milestones, c.created_by_id, c.created_at, c.invite_code
		 FROM money_circles c
		 LEFT JOIN circle_members m ON m.circle_id = c.id
		 WHERE c.created_by_id = ? OR m.user_id = ?
		 ORDER BY c.id`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list circles: %w", err)
	}
	defer rows.Close()

	var circles []*models.MoneyCircle
	for rows.Next() {
		circle, err := scanCircle(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan circle: %w", err)
		}
		circles = append(circles, circle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate circles: %w", err)
	}
	return circles, nil
}

// UpdateCircle replaces the stored circle with the given record.
func (s *SQLiteStore) UpdateCircle(ctx context.Context, circle *models.MoneyCircle) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE money_circles SET name = ?, target_amount = ?, current_amount = ?, target_date = ?,
		 contribution_frequency = ?, auto_save = ?, celebrate_milestones = ? WHERE id = ?`,
		circle.Name, circle.TargetAmount, circle.CurrentAmount, toUnix(circle.TargetDate),
		string(circle.ContributionFrequency), circle.AutoSave, circle.CelebrateMilestones, circle.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update circle: %w", err)
	}
	return requireRow(result, "circle")
}

// CreateMember persists a new circle membership and assigns its ID.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.CircleMember) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO circle_members (circle_id, user_id, role, target_amount, contributed_amount, joined_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		member.CircleID, member.UserID, string(member.Role),
		member.TargetAmount, member.ContributedAmount, toUnix(member.JoinedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read member id: %w", err)
	}
	member.ID = id
	return nil
}

func scanMember(scan func(dest ...any) error) (*models.CircleMember, error) {
	member := &models.CircleMember{}
	var role string
	var joinedAt int64
	err := scan(&member.ID, &member.CircleID, &member.UserID, &role,
		&member.TargetAmount, &member.ContributedAmount, &joinedAt)
	if err != nil {
		return nil, err
	}
	member.Role = models.MemberRole(role)
	member.JoinedAt = fromUnix(joinedAt)
	return member, nil
}

// GetMember retrieves the membership of userID in circleID.
func (s *SQLiteStore) GetMember(ctx context.Context, circleID, userID int64) (*models.CircleMember, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, circle_id, user_id, role, target_amount, contributed_amount, joined_at
		 FROM circle_members WHERE circle_id = ? AND user_id = ?`, circleID, userID)
	member, err := scanMember(row.Scan)
	if err != nil {
		return nil, notFound(err, "member")
	}
	return member, nil
}

// ListMembers returns all members of the given circle in join order.
func (s *SQLiteStore) ListMembers(ctx context.Context, circleID int64) ([]*models.CircleMember, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, circle_id, user_id, role, target_amount, contributed_amount, joined_at
		 FROM circle_members WHERE circle_id = ? ORDER BY id`, circleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.CircleMember
	for rows.Next() {
		member, err := scanMember(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// UpdateMember replaces the stored membership with the given record.
func (s *SQLiteStore) UpdateMember(ctx context.Context, member *models.CircleMember) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE circle_members SET role = ?, target_amount = ?, contributed_amount = ? WHERE id = ?`,
		string(member.Role), member.TargetAmount, member.ContributedAmount, member.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return requireRow(result, "member")
}
