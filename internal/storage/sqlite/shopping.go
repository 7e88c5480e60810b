package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/hearth/internal/models"
	"github.com/hearthapp/hearth/internal/storage"
)

// CreateShoppingList persists a new shopping list.
func (s *Store) CreateShoppingList(ctx context.Context, list *models.ShoppingList) error {
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	if list.CreatedAt == 0 {
		list.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO shopping_lists (id, user_id, name, created_at) VALUES (?, ?, ?, ?)",
		list.ID, list.UserID, list.Name, list.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create shopping list: %w", err)
	}

	return nil
}

// ListShoppingLists returns the user's lists, newest first.
func (s *Store) ListShoppingLists(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, created_at FROM shopping_lists WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	defer rows.Close()

	var lists []models.ShoppingList
	for rows.Next() {
		var l models.ShoppingList
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shopping list: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shopping lists: %w", err)
	}

	return lists, nil
}

// DeleteShoppingList removes a list; its items go with it (ON DELETE CASCADE).
func (s *Store) DeleteShoppingList(ctx context.Context, userID, listID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM shopping_lists WHERE id = ? AND user_id = ?",
		listID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return rowsAffected(res)
}

// AddListItem appends an item to one of the user's lists.
func (s *Store) AddListItem(ctx context.Context, userID string, item *models.ListItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	// The subquery enforces ownership of the target list.
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO shopping_list_items (id, list_id, item_name, quantity, completed)
		SELECT ?, id, ?, ?, ?
		FROM shopping_lists WHERE id = ? AND user_id = ?`,
		item.ID, item.Name, item.Quantity, item.Completed, item.ListID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to add list item: %w", err)
	}
	return rowsAffected(res)
}

// ListItems returns a list's items. Returns ErrNotFound when the list
// does not belong to the user.
func (s *Store) ListItems(ctx context.Context, userID, listID string) ([]models.ListItem, error) {
	var owner string
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id FROM shopping_lists WHERE id = ?", listID,
	).Scan(&owner)
	if err == sql.ErrNoRows || (err == nil && owner != userID) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check list ownership: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, list_id, item_name, quantity, completed FROM shopping_list_items WHERE list_id = ?",
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []models.ListItem
	for rows.Next() {
		var item models.ListItem
		if err := rows.Scan(&item.ID, &item.ListID, &item.Name, &item.Quantity, &item.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan list item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate list items: %w", err)
	}

	return items, nil
}

// SetItemCompleted toggles an item's bought flag.
func (s *Store) SetItemCompleted(ctx context.Context, userID, itemID string, completed bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE shopping_list_items SET completed = ?
		WHERE id = ? AND list_id IN (SELECT id FROM shopping_lists WHERE user_id = ?)`,
		completed, itemID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}
	return rowsAffected(res)
}
