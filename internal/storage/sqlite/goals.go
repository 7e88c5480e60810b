package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hearthapp/hearth/internal/models"
	"github.com/hearthapp/hearth/internal/storage"
)

const goalColumns = "id, user_id, title, category, description, target_date, target_amount, status, progress, created_at"

// CreateGoal persists a new goal. New goals start as Not Started with
// zero progress unless the caller says otherwise.
func (s *Store) CreateGoal(ctx context.Context, goal *models.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	if goal.CreatedAt == 0 {
		goal.CreatedAt = time.Now().Unix()
	}
	if goal.Status == "" {
		goal.Status = models.StatusNotStarted
	}

	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Category,
		goal.Description,
		fmtDate(goal.TargetDate),
		storeAmount(goal.TargetAmount),
		goal.Status,
		goal.Progress,
		goal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// GetGoal retrieves one of the user's goals.
func (s *Store) GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE id = ? AND user_id = ?",
		goalID, userID,
	)
	goal, err := scanGoal(row.Scan)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

// ListGoals returns the user's goals ordered by target date, optionally
// filtered by category and status.
func (s *Store) ListGoals(ctx context.Context, userID string, filter storage.GoalFilter) ([]models.Goal, error) {
	query := "SELECT " + goalColumns + " FROM goals WHERE user_id = ?"
	args := []any{userID}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	query += " ORDER BY target_date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		goal, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}

	return goals, nil
}

// UpdateGoal replaces all mutable fields of a goal.
func (s *Store) UpdateGoal(ctx context.Context, goal *models.Goal) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE goals
		SET title = ?, category = ?, description = ?, target_date = ?,
		    target_amount = ?, status = ?, progress = ?
		WHERE id = ? AND user_id = ?`,
		goal.Title, goal.Category, goal.Description, fmtDate(goal.TargetDate),
		storeAmount(goal.TargetAmount), goal.Status, goal.Progress,
		goal.ID, goal.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return rowsAffected(res)
}

// DeleteGoal removes a goal; milestones go with it (ON DELETE CASCADE).
func (s *Store) DeleteGoal(ctx context.Context, userID, goalID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM goals WHERE id = ? AND user_id = ?",
		goalID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return rowsAffected(res)
}

// CreateMilestone appends a milestone to one of the user's goals.
func (s *Store) CreateMilestone(ctx context.Context, userID string, m *models.Milestone) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt == 0 {
		m.CreatedAt = time.Now().Unix()
	}

	// The subquery enforces ownership of the target goal.
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO goal_milestones (id, goal_id, title, target_date, completed, created_at)
		SELECT ?, id, ?, ?, ?, ?
		FROM goals WHERE id = ? AND user_id = ?`,
		m.ID, m.Title, fmtDate(m.TargetDate), m.Completed, m.CreatedAt, m.GoalID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to create milestone: %w", err)
	}
	return rowsAffected(res)
}

// ListMilestones returns a goal's milestones ordered by target date.
// Returns ErrNotFound when the goal does not belong to the user.
func (s *Store) ListMilestones(ctx context.Context, userID, goalID string) ([]models.Milestone, error) {
	if _, err := s.GetGoal(ctx, userID, goalID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, goal_id, title, target_date, completed, created_at
		FROM goal_milestones
		WHERE goal_id = ?
		ORDER BY target_date ASC`,
		goalID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	defer rows.Close()

	var milestones []models.Milestone
	for rows.Next() {
		var (
			m          models.Milestone
			targetDate sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.GoalID, &m.Title, &targetDate, &m.Completed, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		if m.TargetDate, err = parseTime(targetDate); err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate milestones: %w", err)
	}

	return milestones, nil
}

// SetMilestoneCompleted toggles a milestone's done flag.
func (s *Store) SetMilestoneCompleted(ctx context.Context, userID, milestoneID string, completed bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE goal_milestones SET completed = ?
		WHERE id = ? AND goal_id IN (SELECT id FROM goals WHERE user_id = ?)`,
		completed, milestoneID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update milestone: %w", err)
	}
	return rowsAffected(res)
}

// DeleteMilestone removes one milestone.
func (s *Store) DeleteMilestone(ctx context.Context, userID, milestoneID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM goal_milestones
		WHERE id = ? AND goal_id IN (SELECT id FROM goals WHERE user_id = ?)`,
		milestoneID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	return rowsAffected(res)
}

// storeAmount converts an optional decimal to a NULLable column value.
func storeAmount(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}

// scanGoal scans one goal row via the given Scan function, so it works
// for both QueryRow and Rows.
func scanGoal(scan func(...any) error) (*models.Goal, error) {
	var (
		goal         models.Goal
		targetDate   sql.NullString
		targetAmount sql.NullString
	)
	if err := scan(&goal.ID, &goal.UserID, &goal.Title, &goal.Category, &goal.Description,
		&targetDate, &targetAmount, &goal.Status, &goal.Progress, &goal.CreatedAt); err != nil {
		return nil, err
	}

	var err error
	if goal.TargetDate, err = parseTime(targetDate); err != nil {
		return nil, err
	}
	if targetAmount.Valid {
		d, err := parseAmount(targetAmount.String)
		if err != nil {
			return nil, err
		}
		goal.TargetAmount = decimal.NullDecimal{Decimal: d, Valid: true}
	}
	return &goal, nil
}
