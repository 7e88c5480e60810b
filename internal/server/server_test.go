package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hearthapp/hearth/internal/auth"
	"github.com/hearthapp/hearth/internal/cache"
	"github.com/hearthapp/hearth/internal/models"
	"github.com/hearthapp/hearth/internal/storage/cached"
	"github.com/hearthapp/hearth/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "hearth-server-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cachedStore := cached.New(store, cache.New(64, time.Minute))
	authn := auth.NewPasswordAuthenticator(cachedStore)
	jwt := auth.NewJWTManager("test-secret", time.Hour)

	srv := New(cachedStore, authn, jwt, WithCacheStats(cachedStore))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts
}

// request sends a JSON request and decodes the JSON response into out
// (when out is non-nil). It returns the raw response for status checks.
func request(t *testing.T, ts *httptest.Server, method, path, token string, body, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response of %s %s: %v", method, path, err)
		}
	}
	return resp
}

// registerUser creates an account and returns its session token.
func registerUser(t *testing.T, ts *httptest.Server, username string) string {
	t.Helper()

	var session struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	resp := request(t, ts, "POST", "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct horse",
	}, &session)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201 from register, got %d", resp.StatusCode)
	}
	if session.Token == "" {
		t.Fatal("Expected a session token")
	}
	return session.Token
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t)

	token := registerUser(t, ts, "alice")

	t.Run("login returns a fresh token", func(t *testing.T) {
		var session struct {
			User  models.User `json:"user"`
			Token string      `json:"token"`
		}
		resp := request(t, ts, "POST", "/api/auth/login", "", map[string]string{
			"username": "alice",
			"password": "correct horse",
		}, &session)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200 from login, got %d", resp.StatusCode)
		}
		if session.User.Username != "alice" {
			t.Errorf("Expected username alice, got %q", session.User.Username)
		}
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		resp := request(t, ts, "POST", "/api/auth/login", "", map[string]string{
			"username": "alice",
			"password": "wrong",
		}, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected 401 for wrong password, got %d", resp.StatusCode)
		}
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		resp := request(t, ts, "POST", "/api/auth/register", "", map[string]string{
			"username": "alice",
			"email":    "alice2@example.com",
			"password": "correct horse",
		}, nil)
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("Expected 409 for duplicate username, got %d", resp.StatusCode)
		}
	})

	t.Run("missing and garbage tokens get 401", func(t *testing.T) {
		resp := request(t, ts, "GET", "/api/transactions", "", nil, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected 401 without token, got %d", resp.StatusCode)
		}

		resp = request(t, ts, "GET", "/api/transactions", "not-a-token", nil, nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected 401 for garbage token, got %d", resp.StatusCode)
		}
	})

	t.Run("profile reflects the token", func(t *testing.T) {
		var user models.User
		resp := request(t, ts, "GET", "/api/me", token, nil, &user)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200 from profile, got %d", resp.StatusCode)
		}
		if user.Username != "alice" {
			t.Errorf("Expected username alice, got %q", user.Username)
		}
	})
}

func TestTransactionsAPI(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "alice")

	t.Run("create validates the payload", func(t *testing.T) {
		resp := request(t, ts, "POST", "/api/transactions", token, map[string]any{
			"amount":           -5,
			"category":         "Groceries",
			"transaction_type": "expense",
		}, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400 for negative amount, got %d", resp.StatusCode)
		}

		resp = request(t, ts, "POST", "/api/transactions", token, map[string]any{
			"amount":           5,
			"category":         "Groceries",
			"transaction_type": "transfer",
		}, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400 for bad type, got %d", resp.StatusCode)
		}
	})

	var created models.Transaction
	t.Run("create and list", func(t *testing.T) {
		resp := request(t, ts, "POST", "/api/transactions", token, map[string]any{
			"amount":           "50.25",
			"category":         "Groceries",
			"description":      "weekly shop",
			"transaction_type": "expense",
			"date":             "2024-01-10T12:00:00Z",
		}, &created)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", resp.StatusCode)
		}
		if created.ID == "" {
			t.Error("Expected transaction ID in response")
		}

		var list struct {
			Transactions []models.Transaction `json:"transactions"`
		}
		resp = request(t, ts, "GET", "/api/transactions", token, nil, &list)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if len(list.Transactions) != 1 {
			t.Fatalf("Expected 1 transaction, got %d", len(list.Transactions))
		}
		if !list.Transactions[0].Amount.Equal(decimal.RequireFromString("50.25")) {
			t.Errorf("Expected amount 50.25, got %s", list.Transactions[0].Amount)
		}
	})

	t.Run("date filters narrow the list", func(t *testing.T) {
		var list struct {
			Transactions []models.Transaction `json:"transactions"`
		}
		resp := request(t, ts, "GET", "/api/transactions?start=2024-02-01&end=2024-03-01", token, nil, &list)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if len(list.Transactions) != 0 {
			t.Errorf("Expected no February transactions, got %d", len(list.Transactions))
		}

		resp = request(t, ts, "GET", "/api/transactions?start=bogus", token, nil, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400 for bad date, got %d", resp.StatusCode)
		}
	})

	t.Run("delete", func(t *testing.T) {
		resp := request(t, ts, "DELETE", "/api/transactions/"+created.ID, token, nil, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", resp.StatusCode)
		}

		resp = request(t, ts, "DELETE", "/api/transactions/"+created.ID, token, nil, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404 on second delete, got %d", resp.StatusCode)
		}
	})

	t.Run("users cannot touch each other's rows", func(t *testing.T) {
		var mine models.Transaction
		request(t, ts, "POST", "/api/transactions", token, map[string]any{
			"amount":           "10",
			"category":         "Other",
			"transaction_type": "expense",
		}, &mine)

		otherToken := registerUser(t, ts, "mallory")
		resp := request(t, ts, "DELETE", "/api/transactions/"+mine.ID, otherToken, nil, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404 deleting a foreign transaction, got %d", resp.StatusCode)
		}
	})
}

func TestBudgetSummaryAPI(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "alice")

	resp := request(t, ts, "PUT", "/api/budgets", token, map[string]any{
		"category": "Groceries",
		"amount":   "400",
		"month":    1,
		"year":     2024,
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 from set budget, got %d", resp.StatusCode)
	}

	request(t, ts, "POST", "/api/transactions", token, map[string]any{
		"amount":           "100.50",
		"category":         "Groceries",
		"transaction_type": "expense",
		"date":             "2024-01-15T00:00:00Z",
	}, nil)
	// Income must not count as spending.
	request(t, ts, "POST", "/api/transactions", token, map[string]any{
		"amount":           "2000",
		"category":         "Other",
		"transaction_type": "income",
		"date":             "2024-01-20T00:00:00Z",
	}, nil)

	var summary struct {
		Summary []models.BudgetSummary `json:"summary"`
		Month   int                    `json:"month"`
		Year    int                    `json:"year"`
	}
	resp = request(t, ts, "GET", "/api/budgets/summary?month=1&year=2024", token, nil, &summary)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if len(summary.Summary) != 1 {
		t.Fatalf("Expected 1 summary row, got %d", len(summary.Summary))
	}

	row := summary.Summary[0]
	if !row.Spent.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("Expected spent 100.50, got %s", row.Spent)
	}
	if !row.Remaining.Equal(decimal.RequireFromString("299.50")) {
		t.Errorf("Expected remaining 299.50, got %s", row.Remaining)
	}
	if row.PercentUsed != 25.125 {
		t.Errorf("Expected 25.125%% used, got %v", row.PercentUsed)
	}

	t.Run("bad month is rejected", func(t *testing.T) {
		resp := request(t, ts, "GET", "/api/budgets/summary?month=13", token, nil, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400 for month 13, got %d", resp.StatusCode)
		}
	})

	t.Run("bad year is rejected", func(t *testing.T) {
		resp := request(t, ts, "GET", "/api/budgets/summary?month=1&year=0", token, nil, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400 for year 0, got %d", resp.StatusCode)
		}

		resp = request(t, ts, "PUT", "/api/budgets", token, map[string]any{
			"category": "Groceries",
			"amount":   "100",
			"month":    1,
			"year":     -3,
		}, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400 setting a budget for year -3, got %d", resp.StatusCode)
		}
	})
}

func TestShoppingListsAPI(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "alice")

	var list models.ShoppingList
	resp := request(t, ts, "POST", "/api/lists", token, map[string]string{"name": "Weekly"}, &list)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	var item models.ListItem
	resp = request(t, ts, "POST", "/api/lists/"+list.ID+"/items", token, map[string]any{
		"item_name": "Milk",
		"quantity":  2,
	}, &item)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	resp = request(t, ts, "PATCH", "/api/items/"+item.ID, token, map[string]bool{"completed": true}, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", resp.StatusCode)
	}

	var items struct {
		Items []models.ListItem `json:"items"`
	}
	resp = request(t, ts, "GET", "/api/lists/"+list.ID+"/items", token, nil, &items)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if len(items.Items) != 1 || !items.Items[0].Completed {
		t.Errorf("Expected one completed item, got %+v", items.Items)
	}

	t.Run("foreign lists are invisible", func(t *testing.T) {
		otherToken := registerUser(t, ts, "mallory")
		resp := request(t, ts, "GET", "/api/lists/"+list.ID+"/items", otherToken, nil, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404 for foreign list, got %d", resp.StatusCode)
		}
	})
}

func TestGoalsAPI(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "alice")

	var goal models.Goal
	resp := request(t, ts, "POST", "/api/goals", token, map[string]any{
		"title":         "Emergency fund",
		"category":      "Financial",
		"target_date":   "2025-12-31T00:00:00Z",
		"target_amount": "10000",
	}, &goal)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	if goal.Status != models.StatusNotStarted {
		t.Errorf("Expected default status, got %q", goal.Status)
	}

	t.Run("partial update touches only the given fields", func(t *testing.T) {
		resp := request(t, ts, "PATCH", "/api/goals/"+goal.ID, token, map[string]any{
			"progress": 30,
			"status":   models.StatusInProgress,
		}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}

		var got models.Goal
		request(t, ts, "GET", "/api/goals/"+goal.ID, token, nil, &got)
		if got.Progress != 30 || got.Status != models.StatusInProgress {
			t.Errorf("Expected updated progress and status, got %+v", got)
		}
		if got.Title != "Emergency fund" {
			t.Errorf("Expected title untouched, got %q", got.Title)
		}
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		resp := request(t, ts, "PATCH", "/api/goals/"+goal.ID, token, map[string]any{
			"status": "Done-ish",
		}, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400 for unknown status, got %d", resp.StatusCode)
		}
	})

	t.Run("milestones", func(t *testing.T) {
		var m models.Milestone
		resp := request(t, ts, "POST", "/api/goals/"+goal.ID+"/milestones", token, map[string]any{
			"title": "First 1k",
		}, &m)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", resp.StatusCode)
		}

		resp = request(t, ts, "PATCH", "/api/milestones/"+m.ID, token, map[string]bool{"completed": true}, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", resp.StatusCode)
		}

		var milestones struct {
			Milestones []models.Milestone `json:"milestones"`
		}
		request(t, ts, "GET", "/api/goals/"+goal.ID+"/milestones", token, nil, &milestones)
		if len(milestones.Milestones) != 1 || !milestones.Milestones[0].Completed {
			t.Errorf("Expected one completed milestone, got %+v", milestones.Milestones)
		}
	})
}

func TestBackupAPI(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "alice")

	request(t, ts, "POST", "/api/transactions", token, map[string]any{
		"amount":           "12.50",
		"category":         "Groceries",
		"transaction_type": "expense",
		"date":             "2024-01-05T00:00:00Z",
	}, nil)
	request(t, ts, "POST", "/api/events", token, map[string]any{
		"title":      "Dentist",
		"start_date": "2024-03-10T09:00:00Z",
	}, nil)

	var backup models.Backup
	resp := request(t, ts, "GET", "/api/export", token, nil, &backup)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 from export, got %d", resp.StatusCode)
	}
	if len(backup.Transactions) != 1 || len(backup.Events) != 1 {
		t.Fatalf("Expected 1 transaction and 1 event in export, got %d and %d",
			len(backup.Transactions), len(backup.Events))
	}

	t.Run("import restores into another account", func(t *testing.T) {
		otherToken := registerUser(t, ts, "bob")

		resp := request(t, ts, "POST", "/api/import", otherToken, backup, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("Expected 204 from import, got %d", resp.StatusCode)
		}

		var list struct {
			Transactions []models.Transaction `json:"transactions"`
		}
		request(t, ts, "GET", "/api/transactions", otherToken, nil, &list)
		if len(list.Transactions) != 1 {
			t.Errorf("Expected 1 imported transaction, got %d", len(list.Transactions))
		}
	})

	t.Run("delete-all demands confirmation", func(t *testing.T) {
		resp := request(t, ts, "DELETE", "/api/data", token, map[string]string{"confirm": "yes"}, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400 without proper confirmation, got %d", resp.StatusCode)
		}

		resp = request(t, ts, "DELETE", "/api/data", token, map[string]string{"confirm": "DELETE"}, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", resp.StatusCode)
		}

		var list struct {
			Transactions []models.Transaction `json:"transactions"`
		}
		request(t, ts, "GET", "/api/transactions", token, nil, &list)
		if len(list.Transactions) != 0 {
			t.Errorf("Expected no transactions after wipe, got %d", len(list.Transactions))
		}
	})
}

func TestPublicEndpoints(t *testing.T) {
	ts := newTestServer(t)

	t.Run("healthz", func(t *testing.T) {
		var health map[string]string
		resp := request(t, ts, "GET", "/healthz", "", nil, &health)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if health["status"] != "ok" {
			t.Errorf("Expected status ok, got %q", health["status"])
		}
	})

	t.Run("meta lists the category choices", func(t *testing.T) {
		var meta map[string][]string
		resp := request(t, ts, "GET", "/api/meta", "", nil, &meta)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if len(meta["transaction_categories"]) == 0 || len(meta["goal_statuses"]) == 0 {
			t.Errorf("Expected category lists in meta, got %v", meta)
		}
	})

	t.Run("cache stats are exposed when enabled", func(t *testing.T) {
		token := registerUser(t, ts, "alice")

		var stats map[string]any
		resp := request(t, ts, "GET", "/api/cache/stats", token, nil, &stats)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		if _, ok := stats["hit_rate"]; !ok {
			t.Errorf("Expected hit_rate in stats, got %v", stats)
		}
	})
}
