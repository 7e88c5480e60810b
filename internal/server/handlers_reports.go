package server

import (
	"net/http"

	"github.com/hearthapp/hearth/internal/charts"
	"github.com/hearthapp/hearth/internal/finance"
	"github.com/hearthapp/hearth/internal/storage"
)

// handleReportTotals returns overall income, expenses and balance plus
// spending grouped by category, optionally bounded by start/end.
func (s *Server) handleReportTotals(w http.ResponseWriter, r *http.Request) {
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

	respondJSON(w, http.StatusOK, map[string]any{
		"totals":       finance.CalculateTotals(txs),
		"by_category":  finance.ExpensesByCategory(txs),
		"transactions": len(txs),
	})
}

// handleExpensesChart renders the expenses-by-category pie for one
// month (defaults to the current month). Responds 204 when there is
// nothing to draw.
func (s *Server) handleExpensesChart(w http.ResponseWriter, r *http.Request) {
	month, year, err := parseMonthYear(r)
	if err != nil {
		respondError(w, err)
		return
	}

	start, end := finance.MonthRange(year, month)
	txs, err := s.store.ListTransactions(r.Context(), userID(r.Context()), storage.TransactionFilter{Start: start, End: end})
	if err != nil {
		respondError(w, err)
		return
	}

	png, err := charts.ExpensesPie(finance.ExpensesByCategory(txs))
	if err != nil {
		respondError(w, err)
		return
	}
	writePNG(w, png)
}

// handleTrendChart renders monthly income/expense series over the
// user's whole history. Responds 204 when there is not enough data.
func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListTransactions(r.Context(), userID(r.Context()), storage.TransactionFilter{})
	if err != nil {
		respondError(w, err)
		return
	}

	png, err := charts.MonthlyTrend(txs)
	if err != nil {
		respondError(w, err)
		return
	}
	writePNG(w, png)
}

func writePNG(w http.ResponseWriter, png []byte) {
	if png == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
