package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal status values.
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusOnHold     = "On Hold"
)

// Goal is a long-term objective, optionally financial (TargetAmount set),
// tracked by percent progress and milestones.
type Goal struct {
	// ID is the unique identifier for the goal (UUID format).
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Title is the goal name.
	Title string `json:"title"`

	// Category is one of GoalCategories.
	Category string `json:"category"`

	// Description is an optional note.
	Description string `json:"description"`

	// TargetDate is when the goal should be reached.
	TargetDate time.Time `json:"target_date"`

	// TargetAmount is the financial target, if any.
	TargetAmount decimal.NullDecimal `json:"target_amount"`

	// Status is one of the goal status values; new goals start as
	// StatusNotStarted.
	Status string `json:"status"`

	// Progress is completion in percent (0-100).
	Progress int `json:"progress"`

	// CreatedAt is the Unix timestamp when the goal was created.
	CreatedAt int64 `json:"created_at"`

	// Milestones holds the goal's milestones when loaded with them
	// (export); nil otherwise.
	Milestones []Milestone `json:"milestones,omitempty"`
}

// Milestone is an intermediate step toward a goal.
type Milestone struct {
	// ID is the unique identifier for the milestone (UUID format).
	ID string `json:"id"`

	// GoalID is the goal this milestone belongs to.
	GoalID string `json:"goal_id"`

	// Title is the milestone name.
	Title string `json:"title"`

	// TargetDate is when the milestone should be reached.
	TargetDate time.Time `json:"target_date"`

	// Completed marks the milestone done.
	Completed bool `json:"completed"`

	// CreatedAt is the Unix timestamp when the milestone was created.
	CreatedAt int64 `json:"created_at"`
}

// GoalCategories is the predefined goal category list offered by the UI.
var GoalCategories = []string{
	"Financial", "Education", "Health", "Family", "Career",
	"Home", "Travel", "Personal Development", "Other",
}

// GoalStatuses is the predefined goal status list offered by the UI.
var GoalStatuses = []string{
	StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold,
}

// ValidGoalStatus reports whether s is a known goal status.
func ValidGoalStatus(s string) bool {
	for _, v := range GoalStatuses {
		if s == v {
			return true
		}
	}
	return false
}
