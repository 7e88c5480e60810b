package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hearthapp/hearth/internal/models"
	"github.com/hearthapp/hearth/internal/storage"
)

// CreateTransaction persists a new transaction.
func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	query := `
		INSERT INTO transactions (id, user_id, amount, category, description, transaction_type, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.ID,
		tx.UserID,
		tx.Amount.String(),
		tx.Category,
		tx.Description,
		tx.Type,
		fmtTime(tx.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// ListTransactions returns a user's transactions, optionally bounded by
// date, newest first.
func (s *Store) ListTransactions(ctx context.Context, userID string, filter storage.TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, amount, category, description, transaction_type, date
		FROM transactions
		WHERE user_id = ?
	`
	args := []any{userID}

	if !filter.Start.IsZero() {
		query += " AND date >= ?"
		args = append(args, fmtTime(filter.Start))
	}
	if !filter.End.IsZero() {
		query += " AND date < ?"
		args = append(args, fmtTime(filter.End))
	}
	query += " ORDER BY date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var (
			tx     models.Transaction
			amount string
			date   string
		)
		if err := rows.Scan(&tx.ID, &tx.UserID, &amount, &tx.Category, &tx.Description, &tx.Type, &date); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if tx.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		if tx.Date, err = time.Parse(time.RFC3339, date); err != nil {
			return nil, fmt.Errorf("failed to parse transaction date: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txs, nil
}

// DeleteTransaction removes one of the user's transactions.
func (s *Store) DeleteTransaction(ctx context.Context, userID, txID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND user_id = ?",
		txID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return rowsAffected(res)
}

// CategorySpending sums expense transactions per category inside [start, end).
func (s *Store) CategorySpending(ctx context.Context, userID string, start, end time.Time) (map[string]decimal.Decimal, error) {
	// Amounts are decimal strings, so SUM() in SQL would go through
	// floats. Aggregate in Go instead; per-user rows are small.
	query := `
		SELECT category, amount
		FROM transactions
		WHERE user_id = ? AND transaction_type = 'expense' AND date >= ? AND date < ?
	`

	rows, err := s.db.QueryContext(ctx, query, userID, fmtTime(start), fmtTime(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query category spending: %w", err)
	}
	defer rows.Close()

	spending := make(map[string]decimal.Decimal)
	for rows.Next() {
		var category, amount string
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan spending row: %w", err)
		}
		d, err := parseAmount(amount)
		if err != nil {
			return nil, err
		}
		spending[category] = spending[category].Add(d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spending rows: %w", err)
	}

	return spending, nil
}
