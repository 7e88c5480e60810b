package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hearthapp/hearth/internal/models"
)

// SetBudget inserts or replaces the budget for a (category, month, year)
// tuple.
func (s *Store) SetBudget(ctx context.Context, budget *models.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}

	query := `
		INSERT INTO budgets (id, user_id, category, amount, month, year)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, category, month, year)
		DO UPDATE SET amount = excluded.amount
	`

	_, err := s.db.ExecContext(ctx, query,
		budget.ID,
		budget.UserID,
		budget.Category,
		budget.Amount.String(),
		budget.Month,
		budget.Year,
	)
	if err != nil {
		return fmt.Errorf("failed to set budget: %w", err)
	}

	return nil
}

// ListBudgets returns all budgets for a month, ordered by category.
func (s *Store) ListBudgets(ctx context.Context, userID string, month, year int) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, category, amount, month, year
		FROM budgets
		WHERE user_id = ? AND month = ? AND year = ?
		ORDER BY category
	`

	rows, err := s.db.QueryContext(ctx, query, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var (
			b      models.Budget
			amount string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &amount, &b.Month, &b.Year); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		if b.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", err)
	}

	return budgets, nil
}

// DeleteBudget removes one budget category for a month.
func (s *Store) DeleteBudget(ctx context.Context, userID, category string, month, year int) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM budgets WHERE user_id = ? AND category = ? AND month = ? AND year = ?",
		userID, category, month, year,
	)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return rowsAffected(res)
}
