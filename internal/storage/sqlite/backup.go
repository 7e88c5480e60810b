package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/hearth/internal/models"
	"github.com/hearthapp/hearth/internal/storage"
)

// ExportUserData assembles every row the user owns into a Backup
// document. Goals carry their milestones and shopping lists their items.
func (s *Store) ExportUserData(ctx context.Context, userID string) (*models.Backup, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, storage.ErrNotFound
	}

	backup := &models.Backup{
		Username:   user.Username,
		Email:      user.Email,
		ExportedAt: time.Now().Unix(),
	}

	if backup.Transactions, err = s.ListTransactions(ctx, userID, storage.TransactionFilter{}); err != nil {
		return nil, err
	}
	if backup.Budgets, err = s.listAllBudgets(ctx, userID); err != nil {
		return nil, err
	}
	if backup.FamilyMembers, err = s.ListFamilyMembers(ctx, userID); err != nil {
		return nil, err
	}
	if backup.Events, err = s.ListEvents(ctx, userID, time.Time{}, time.Time{}); err != nil {
		return nil, err
	}

	goals, err := s.ListGoals(ctx, userID, storage.GoalFilter{})
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].Milestones, err = s.ListMilestones(ctx, userID, goals[i].ID); err != nil {
			return nil, err
		}
	}
	backup.Goals = goals

	lists, err := s.ListShoppingLists(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range lists {
		if lists[i].Items, err = s.ListItems(ctx, userID, lists[i].ID); err != nil {
			return nil, err
		}
	}
	backup.ShoppingLists = lists

	return backup, nil
}

// listAllBudgets returns every budget row regardless of month, for export.
func (s *Store) listAllBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, category, amount, month, year FROM budgets WHERE user_id = ? ORDER BY year, month, category",
		userID,
	)
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

// ImportUserData inserts every row of a backup document under the given
// user, with fresh IDs. The whole import is one transaction: any bad row
// rolls everything back.
func (s *Store) ImportUserData(ctx context.Context, userID string, backup *models.Backup) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, t := range backup.Transactions {
		if t.Date.IsZero() {
			return fmt.Errorf("transaction %q: missing date", t.Description)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (id, user_id, amount, category, description, transaction_type, date)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), userID, t.Amount.String(), t.Category, t.Description, t.Type, fmtTime(t.Date),
		)
		if err != nil {
			return fmt.Errorf("failed to import transaction: %w", err)
		}
	}

	for _, b := range backup.Budgets {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO budgets (id, user_id, category, amount, month, year)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (user_id, category, month, year)
			DO UPDATE SET amount = excluded.amount`,
			uuid.New().String(), userID, b.Category, b.Amount.String(), b.Month, b.Year,
		)
		if err != nil {
			return fmt.Errorf("failed to import budget: %w", err)
		}
	}

	for _, m := range backup.FamilyMembers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO family_members (id, user_id, name, relationship, birth_date)
			VALUES (?, ?, ?, ?, ?)`,
			uuid.New().String(), userID, m.Name, m.Relationship, storeTime(fmtDate(m.BirthDate)),
		)
		if err != nil {
			return fmt.Errorf("failed to import family member: %w", err)
		}
	}

	for _, e := range backup.Events {
		if e.StartDate.IsZero() {
			return fmt.Errorf("event %q: missing start date", e.Title)
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO events (id, user_id, title, description, category, start_date, end_date, reminder, reminder_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), userID, e.Title, e.Description, e.Category,
			fmtTime(e.StartDate), storeTime(fmtTime(e.EndDate)), e.Reminder, storeTime(fmtTime(e.ReminderTime)),
		)
		if err != nil {
			return fmt.Errorf("failed to import event: %w", err)
		}
	}

	for _, g := range backup.Goals {
		goalID := uuid.New().String()
		status := g.Status
		if status == "" {
			status = models.StatusNotStarted
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO goals (id, user_id, title, category, description, target_date, target_amount, status, progress, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			goalID, userID, g.Title, g.Category, g.Description, fmtDate(g.TargetDate),
			storeAmount(g.TargetAmount), status, g.Progress, time.Now().Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to import goal: %w", err)
		}

		for _, m := range g.Milestones {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO goal_milestones (id, goal_id, title, target_date, completed, created_at)
				VALUES (?, ?, ?, ?, ?, ?)`,
				uuid.New().String(), goalID, m.Title, fmtDate(m.TargetDate), m.Completed, time.Now().Unix(),
			)
			if err != nil {
				return fmt.Errorf("failed to import milestone: %w", err)
			}
		}
	}

	for _, l := range backup.ShoppingLists {
		listID := uuid.New().String()
		createdAt := l.CreatedAt
		if createdAt == 0 {
			createdAt = time.Now().Unix()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO shopping_lists (id, user_id, name, created_at)
			VALUES (?, ?, ?, ?)`,
			listID, userID, l.Name, createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to import shopping list: %w", err)
		}

		for _, item := range l.Items {
			quantity := item.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO shopping_list_items (id, list_id, item_name, quantity, completed)
				VALUES (?, ?, ?, ?, ?)`,
				uuid.New().String(), listID, item.Name, quantity, item.Completed,
			)
			if err != nil {
				return fmt.Errorf("failed to import list item: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	return nil
}

// DeleteUserData removes every row the user owns, in one transaction.
// The account itself stays.
func (s *Store) DeleteUserData(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Milestones and list items cascade from their parents.
	for _, table := range []string{
		"transactions", "budgets", "family_members", "events", "goals", "shopping_lists",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = ?", userID); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	return nil
}
