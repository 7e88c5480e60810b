// Package cached decorates a storage.Store with the in-process read
// cache. Read results are memoized under keys built from the operation
// name and its arguments; any mutation clears the entire cache, which is
// coarse but always correct for a single-process server over one file.
package cached

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hearthapp/hearth/internal/cache"
	"github.com/hearthapp/hearth/internal/models"
	"github.com/hearthapp/hearth/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store wraps another storage.Store with a TTL read cache.
type Store struct {
	next  storage.Store
	cache *cache.Cache
}

// New wraps next with the given cache.
func New(next storage.Store, c *cache.Cache) *Store {
	return &Store{next: next, cache: c}
}

// Stats exposes the underlying cache counters.
func (s *Store) Stats() cache.Stats {
	return s.cache.Stats()
}

// cachedList memoizes a slice-returning read.
func cachedList[T any](s *Store, key string, load func() ([]T, error)) ([]T, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.([]T), nil
	}
	result, err := load()
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, result)
	return result, nil
}

// invalidate runs a mutation and clears the cache when it succeeds.
func (s *Store) invalidate(err error) error {
	if err == nil {
		s.cache.Clear()
	}
	return err
}

// User lookups back auth on every request and are not cached; a stale
// password hash or email would be worse than the extra read.

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.invalidate(s.next.CreateUser(ctx, user))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.next.GetUserByUsername(ctx, username)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.next.GetUserByEmail(ctx, email)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.next.GetUserByID(ctx, id)
}

func (s *Store) UpdateUserProfile(ctx context.Context, userID, email, passwordHash string) error {
	return s.invalidate(s.next.UpdateUserProfile(ctx, userID, email, passwordHash))
}

// Transactions

func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	return s.invalidate(s.next.CreateTransaction(ctx, tx))
}

func (s *Store) ListTransactions(ctx context.Context, userID string, filter storage.TransactionFilter) ([]models.Transaction, error) {
	key := cache.Key("transactions", userID, fmtBound(filter.Start), fmtBound(filter.End))
	return cachedList(s, key, func() ([]models.Transaction, error) {
		return s.next.ListTransactions(ctx, userID, filter)
	})
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, txID string) error {
	return s.invalidate(s.next.DeleteTransaction(ctx, userID, txID))
}

// Budgets

func (s *Store) SetBudget(ctx context.Context, budget *models.Budget) error {
	return s.invalidate(s.next.SetBudget(ctx, budget))
}

func (s *Store) ListBudgets(ctx context.Context, userID string, month, year int) ([]models.Budget, error) {
	key := cache.Key("budgets", userID, strconv.Itoa(month), strconv.Itoa(year))
	return cachedList(s, key, func() ([]models.Budget, error) {
		return s.next.ListBudgets(ctx, userID, month, year)
	})
}

func (s *Store) DeleteBudget(ctx context.Context, userID, category string, month, year int) error {
	return s.invalidate(s.next.DeleteBudget(ctx, userID, category, month, year))
}

func (s *Store) CategorySpending(ctx context.Context, userID string, start, end time.Time) (map[string]decimal.Decimal, error) {
	key := cache.Key("spending", userID, fmtBound(start), fmtBound(end))
	if v, ok := s.cache.Get(key); ok {
		return v.(map[string]decimal.Decimal), nil
	}
	spending, err := s.next.CategorySpending(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, spending)
	return spending, nil
}

// Shopping lists

func (s *Store) CreateShoppingList(ctx context.Context, list *models.ShoppingList) error {
	return s.invalidate(s.next.CreateShoppingList(ctx, list))
}

func (s *Store) ListShoppingLists(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	return cachedList(s, cache.Key("shopping_lists", userID), func() ([]models.ShoppingList, error) {
		return s.next.ListShoppingLists(ctx, userID)
	})
}

func (s *Store) DeleteShoppingList(ctx context.Context, userID, listID string) error {
	return s.invalidate(s.next.DeleteShoppingList(ctx, userID, listID))
}

func (s *Store) AddListItem(ctx context.Context, userID string, item *models.ListItem) error {
	return s.invalidate(s.next.AddListItem(ctx, userID, item))
}

func (s *Store) ListItems(ctx context.Context, userID, listID string) ([]models.ListItem, error) {
	return cachedList(s, cache.Key("list_items", userID, listID), func() ([]models.ListItem, error) {
		return s.next.ListItems(ctx, userID, listID)
	})
}

func (s *Store) SetItemCompleted(ctx context.Context, userID, itemID string, completed bool) error {
	return s.invalidate(s.next.SetItemCompleted(ctx, userID, itemID, completed))
}

// Family members

func (s *Store) CreateFamilyMember(ctx context.Context, member *models.FamilyMember) error {
	return s.invalidate(s.next.CreateFamilyMember(ctx, member))
}

func (s *Store) ListFamilyMembers(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	return cachedList(s, cache.Key("family_members", userID), func() ([]models.FamilyMember, error) {
		return s.next.ListFamilyMembers(ctx, userID)
	})
}

func (s *Store) UpdateFamilyMember(ctx context.Context, member *models.FamilyMember) error {
	return s.invalidate(s.next.UpdateFamilyMember(ctx, member))
}

func (s *Store) DeleteFamilyMember(ctx context.Context, userID, memberID string) error {
	return s.invalidate(s.next.DeleteFamilyMember(ctx, userID, memberID))
}

// Events

func (s *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	return s.invalidate(s.next.CreateEvent(ctx, event))
}

func (s *Store) ListEvents(ctx context.Context, userID string, start, end time.Time) ([]models.Event, error) {
	key := cache.Key("events", userID, fmtBound(start), fmtBound(end))
	return cachedList(s, key, func() ([]models.Event, error) {
		return s.next.ListEvents(ctx, userID, start, end)
	})
}

func (s *Store) UpdateEvent(ctx context.Context, event *models.Event) error {
	return s.invalidate(s.next.UpdateEvent(ctx, event))
}

func (s *Store) DeleteEvent(ctx context.Context, userID, eventID string) error {
	return s.invalidate(s.next.DeleteEvent(ctx, userID, eventID))
}

// Goals and milestones

func (s *Store) CreateGoal(ctx context.Context, goal *models.Goal) error {
	return s.invalidate(s.next.CreateGoal(ctx, goal))
}

// GetGoal caches the goal by value and hands every caller its own
// copy: handlers mutate the returned struct (milestones, partial
// updates) and must not write through to the cached entry.
func (s *Store) GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	key := cache.Key("goal", userID, goalID)
	if v, ok := s.cache.Get(key); ok {
		goal := v.(models.Goal)
		return &goal, nil
	}
	goal, err := s.next.GetGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, *goal)
	return goal, nil
}

func (s *Store) ListGoals(ctx context.Context, userID string, filter storage.GoalFilter) ([]models.Goal, error) {
	key := cache.Key("goals", userID, filter.Category, filter.Status)
	return cachedList(s, key, func() ([]models.Goal, error) {
		return s.next.ListGoals(ctx, userID, filter)
	})
}

func (s *Store) UpdateGoal(ctx context.Context, goal *models.Goal) error {
	return s.invalidate(s.next.UpdateGoal(ctx, goal))
}

func (s *Store) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return s.invalidate(s.next.DeleteGoal(ctx, userID, goalID))
}

func (s *Store) CreateMilestone(ctx context.Context, userID string, m *models.Milestone) error {
	return s.invalidate(s.next.CreateMilestone(ctx, userID, m))
}

func (s *Store) ListMilestones(ctx context.Context, userID, goalID string) ([]models.Milestone, error) {
	return cachedList(s, cache.Key("milestones", userID, goalID), func() ([]models.Milestone, error) {
		return s.next.ListMilestones(ctx, userID, goalID)
	})
}

func (s *Store) SetMilestoneCompleted(ctx context.Context, userID, milestoneID string, completed bool) error {
	return s.invalidate(s.next.SetMilestoneCompleted(ctx, userID, milestoneID, completed))
}

func (s *Store) DeleteMilestone(ctx context.Context, userID, milestoneID string) error {
	return s.invalidate(s.next.DeleteMilestone(ctx, userID, milestoneID))
}

// Export reads the whole dataset and import/delete rewrite it, so none
// of the backup operations are memoized.

func (s *Store) ExportUserData(ctx context.Context, userID string) (*models.Backup, error) {
	return s.next.ExportUserData(ctx, userID)
}

func (s *Store) ImportUserData(ctx context.Context, userID string, backup *models.Backup) error {
	return s.invalidate(s.next.ImportUserData(ctx, userID, backup))
}

func (s *Store) DeleteUserData(ctx context.Context, userID string) error {
	return s.invalidate(s.next.DeleteUserData(ctx, userID))
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.next.Close()
}

func fmtBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
