// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hearthapp/hearth/internal/models"
)

// ErrNotFound is returned when a row does not exist or is owned by a
// different user.
var ErrNotFound = errors.New("not found")

// TransactionFilter narrows ListTransactions. Zero time values mean
// unbounded.
type TransactionFilter struct {
	Start time.Time
	End   time.Time
}

// GoalFilter narrows ListGoals. Empty strings mean no filter.
type GoalFilter struct {
	Category string
	Status   string
}

// Store defines the interface for all persistence operations.
// This abstraction allows swapping storage backends and lets the caching
// decorator wrap the SQLite implementation without the handlers noticing.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// UpdateUserProfile updates email and/or password hash; empty strings
	// leave the field unchanged.
	UpdateUserProfile(ctx context.Context, userID, email, passwordHash string) error

	// Transactions
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, txID string) error

	// Budgets
	SetBudget(ctx context.Context, budget *models.Budget) error
	ListBudgets(ctx context.Context, userID string, month, year int) ([]models.Budget, error)
	DeleteBudget(ctx context.Context, userID, category string, month, year int) error
	// CategorySpending sums expense transactions per category inside
	// [start, end).
	CategorySpending(ctx context.Context, userID string, start, end time.Time) (map[string]decimal.Decimal, error)

	// Shopping lists
	CreateShoppingList(ctx context.Context, list *models.ShoppingList) error
	ListShoppingLists(ctx context.Context, userID string) ([]models.ShoppingList, error)
	DeleteShoppingList(ctx context.Context, userID, listID string) error
	AddListItem(ctx context.Context, userID string, item *models.ListItem) error
	ListItems(ctx context.Context, userID, listID string) ([]models.ListItem, error)
	SetItemCompleted(ctx context.Context, userID, itemID string, completed bool) error

	// Family members
	CreateFamilyMember(ctx context.Context, member *models.FamilyMember) error
	ListFamilyMembers(ctx context.Context, userID string) ([]models.FamilyMember, error)
	UpdateFamilyMember(ctx context.Context, member *models.FamilyMember) error
	DeleteFamilyMember(ctx context.Context, userID, memberID string) error

	// Events
	CreateEvent(ctx context.Context, event *models.Event) error
	// ListEvents returns events whose start date falls inside
	// [start, end), ordered by start date. Zero bounds mean unbounded.
	ListEvents(ctx context.Context, userID string, start, end time.Time) ([]models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, userID, eventID string) error

	// Goals and milestones
	CreateGoal(ctx context.Context, goal *models.Goal) error
	GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error)
	ListGoals(ctx context.Context, userID string, filter GoalFilter) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, goal *models.Goal) error
	DeleteGoal(ctx context.Context, userID, goalID string) error
	CreateMilestone(ctx context.Context, userID string, m *models.Milestone) error
	ListMilestones(ctx context.Context, userID, goalID string) ([]models.Milestone, error)
	SetMilestoneCompleted(ctx context.Context, userID, milestoneID string, completed bool) error
	DeleteMilestone(ctx context.Context, userID, milestoneID string) error

	// Backup
	ExportUserData(ctx context.Context, userID string) (*models.Backup, error)
	ImportUserData(ctx context.Context, userID string, backup *models.Backup) error
	DeleteUserData(ctx context.Context, userID string) error

	// Close releases any resources held by the store.
	Close() error
}
