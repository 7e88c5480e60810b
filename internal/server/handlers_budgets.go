package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hearthapp/hearth/internal/finance"
	"github.com/hearthapp/hearth/internal/models"
)

type budgetRequest struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Month    int             `json:"month"`
	Year     int             `json:"year"`
}

// handleSetBudget creates or replaces the budget for one category and
// month.
func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Category == "" {
		respondError(w, badRequestf("category is required"))
		return
	}
	if req.Month < 1 || req.Month > 12 {
		respondError(w, badRequestf("month must be 1-12"))
		return
	}
	if !validYear(req.Year) {
		respondError(w, badRequestf("bad year %d", req.Year))
		return
	}
	if req.Amount.IsNegative() {
		respondError(w, badRequestf("amount must not be negative"))
		return
	}

	budget := &models.Budget{
		UserID:   userID(r.Context()),
		Category: req.Category,
		Amount:   req.Amount,
		Month:    req.Month,
		Year:     req.Year,
	}
	if err := s.store.SetBudget(r.Context(), budget); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Budget set", "user_id", budget.UserID, "category", budget.Category,
		"month", budget.Month, "year", budget.Year)
	respondJSON(w, http.StatusOK, budget)
}

// handleListBudgets returns the budgets for one month. Defaults to the
// current month.
func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	month, year, err := parseMonthYear(r)
	if err != nil {
		respondError(w, err)
		return
	}

	budgets, err := s.store.ListBudgets(r.Context(), userID(r.Context()), month, year)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"budgets": budgets, "month": month, "year": year})
}

// handleBudgetSummary returns budget-versus-actual per category for one
// month.
func (s *Server) handleBudgetSummary(w http.ResponseWriter, r *http.Request) {
	month, year, err := parseMonthYear(r)
	if err != nil {
		respondError(w, err)
		return
	}
	uid := userID(r.Context())

	budgets, err := s.store.ListBudgets(r.Context(), uid, month, year)
	if err != nil {
		respondError(w, err)
		return
	}

	start, end := finance.MonthRange(year, month)
	spending, err := s.store.CategorySpending(r.Context(), uid, start, end)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"summary": finance.BudgetSummaries(budgets, spending),
		"month":   month,
		"year":    year,
	})
}

// handleDeleteBudget removes one budget category for a month.
func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	month, year, err := parseMonthYear(r)
	if err != nil {
		respondError(w, err)
		return
	}

	category := r.PathValue("category")
	if err := s.store.DeleteBudget(r.Context(), userID(r.Context()), category, month, year); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseMonthYear reads month/year query parameters, defaulting to the
// current month.
func parseMonthYear(r *http.Request) (month, year int, err error) {
	now := time.Now()
	month, year = int(now.Month()), now.Year()

	if v := r.URL.Query().Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil || month < 1 || month > 12 {
			return 0, 0, badRequestf("bad month %q", v)
		}
	}
	if v := r.URL.Query().Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil || !validYear(year) {
			return 0, 0, badRequestf("bad year %q", v)
		}
	}
	return month, year, nil
}

// validYear bounds the accepted calendar years. Unchecked years would
// create budget rows no month query can ever reach.
func validYear(year int) bool {
	return year >= 1900 && year <= 9999
}
