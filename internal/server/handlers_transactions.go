package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hearthapp/hearth/internal/models"
	"github.com/hearthapp/hearth/internal/storage"
)

type transactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Type        string          `json:"transaction_type"`
	Date        time.Time       `json:"date,omitzero"`
}

// handleCreateTransaction records a new income or expense entry.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if !req.Amount.IsPositive() {
		respondError(w, badRequestf("amount must be positive"))
		return
	}
	if req.Category == "" {
		respondError(w, badRequestf("category is required"))
		return
	}
	if !models.ValidTransactionType(req.Type) {
		respondError(w, badRequestf("transaction_type must be %q or %q", models.TypeIncome, models.TypeExpense))
		return
	}

	tx := &models.Transaction{
		UserID:      userID(r.Context()),
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Type:        req.Type,
		Date:        req.Date,
	}
	if err := s.store.CreateTransaction(r.Context(), tx); err != nil {
		respondError(w, err)
		return
	}

	slog.Info("Transaction created", "transaction_id", tx.ID, "user_id", tx.UserID, "type", tx.Type)
	respondJSON(w, http.StatusCreated, tx)
}

// handleListTransactions returns the user's transactions, optionally
// bounded by start/end query parameters (RFC 3339 or YYYY-MM-DD).
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseDateRange(r)
	if err != nil {
		respondError(w, err)
		return
	}

	txs, err := s.store.ListTransactions(r.Context(), userID(r.Context()), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

// handleDeleteTransaction removes one transaction by ID.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTransaction(r.Context(), userID(r.Context()), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseDateRange reads optional start/end query parameters.
func parseDateRange(r *http.Request) (storage.TransactionFilter, error) {
	var filter storage.TransactionFilter
	var err error

	if v := r.URL.Query().Get("start"); v != "" {
		if filter.Start, err = parseFlexibleTime(v); err != nil {
			return filter, badRequestf("bad start date %q", v)
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		if filter.End, err = parseFlexibleTime(v); err != nil {
			return filter, badRequestf("bad end date %q", v)
		}
	}
	return filter, nil
}

// parseFlexibleTime accepts RFC 3339 timestamps and bare dates.
func parseFlexibleTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
