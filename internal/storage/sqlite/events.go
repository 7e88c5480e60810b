package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hearthapp/hearth/internal/models"
)

// CreateEvent persists a new calendar event.
func (s *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Category == "" {
		event.Category = "Other"
	}

	query := `
		INSERT INTO events (id, user_id, title, description, category, start_date, end_date, reminder, reminder_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.UserID,
		event.Title,
		event.Description,
		event.Category,
		fmtTime(event.StartDate),
		storeTime(fmtTime(event.EndDate)),
		event.Reminder,
		storeTime(fmtTime(event.ReminderTime)),
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// ListEvents returns events starting inside [start, end), ordered by
// start date. Zero bounds mean unbounded.
func (s *Store) ListEvents(ctx context.Context, userID string, start, end time.Time) ([]models.Event, error) {
	query := `
		SELECT id, user_id, title, description, category, start_date, end_date, reminder, reminder_time
		FROM events
		WHERE user_id = ?
	`
	args := []any{userID}

	if !start.IsZero() {
		query += " AND start_date >= ?"
		args = append(args, fmtTime(start))
	}
	if !end.IsZero() {
		query += " AND start_date < ?"
		args = append(args, fmtTime(end))
	}
	query += " ORDER BY start_date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var (
			e                     models.Event
			startDate             string
			endDate, reminderTime sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Description, &e.Category,
			&startDate, &endDate, &e.Reminder, &reminderTime); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if e.StartDate, err = time.Parse(time.RFC3339, startDate); err != nil {
			return nil, fmt.Errorf("failed to parse event start date: %w", err)
		}
		if e.EndDate, err = parseTime(endDate); err != nil {
			return nil, err
		}
		if e.ReminderTime, err = parseTime(reminderTime); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// UpdateEvent replaces all mutable fields of an event. An empty
// category defaults to "Other", same as on create.
func (s *Store) UpdateEvent(ctx context.Context, event *models.Event) error {
	if event.Category == "" {
		event.Category = "Other"
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE events
		SET title = ?, description = ?, category = ?, start_date = ?,
		    end_date = ?, reminder = ?, reminder_time = ?
		WHERE id = ? AND user_id = ?`,
		event.Title, event.Description, event.Category,
		fmtTime(event.StartDate), storeTime(fmtTime(event.EndDate)),
		event.Reminder, storeTime(fmtTime(event.ReminderTime)),
		event.ID, event.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return rowsAffected(res)
}

// DeleteEvent removes one of the user's events.
func (s *Store) DeleteEvent(ctx context.Context, userID, eventID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM events WHERE id = ? AND user_id = ?",
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return rowsAffected(res)
}
