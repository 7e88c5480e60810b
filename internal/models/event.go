package models

import "time"

// Event is a calendar entry, optionally spanning a range and optionally
// carrying a reminder.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Title is the event name.
	Title string `json:"title"`

	// Description is an optional note.
	Description string `json:"description"`

	// Category is one of EventCategories.
	Category string `json:"category"`

	// StartDate is when the event begins.
	StartDate time.Time `json:"start_date"`

	// EndDate is optional; zero means a point-in-time event.
	EndDate time.Time `json:"end_date,omitzero"`

	// Reminder enables a reminder for this event.
	Reminder bool `json:"reminder"`

	// ReminderTime is when to remind; meaningful only when Reminder is set.
	ReminderTime time.Time `json:"reminder_time,omitzero"`
}

// EventCategories is the predefined event category list offered by the UI.
var EventCategories = []string{
	"Family Gathering", "Birthday", "Anniversary", "Doctor's Appointment",
	"School Event", "Sports/Activity", "Holiday", "Travel",
	"Bill Payment", "Shopping", "Other",
}
