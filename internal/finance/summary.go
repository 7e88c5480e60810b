// Package finance holds the pure money computations: income/expense
// totals, per-category aggregation and budget-versus-actual summaries.
// Everything here operates on decimals; no I/O.
package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hearthapp/hearth/internal/models"
)

// Totals reports overall income, expenses and their difference.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// CalculateTotals sums a set of transactions by type.
func CalculateTotals(txs []models.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case models.TypeIncome:
			t.Income = t.Income.Add(tx.Amount)
		case models.TypeExpense:
			t.Expenses = t.Expenses.Add(tx.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expenses)
	return t
}

// CategoryAmount is one category's share of spending or income.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpensesByCategory groups expense transactions by category, largest
// first. Categories with ties sort by name so output is deterministic.
func ExpensesByCategory(txs []models.Transaction) []CategoryAmount {
	byCategory := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
	}

	result := make([]CategoryAmount, 0, len(byCategory))
	for category, amount := range byCategory {
		result = append(result, CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Amount.Equal(result[j].Amount) {
			return result[i].Amount.GreaterThan(result[j].Amount)
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// BudgetSummaries combines a month's budgets with actual category
// spending. Percent used is 0 when the budgeted amount is 0.
func BudgetSummaries(budgets []models.Budget, spending map[string]decimal.Decimal) []models.BudgetSummary {
	summaries := make([]models.BudgetSummary, 0, len(budgets))
	for _, b := range budgets {
		spent := spending[b.Category]
		s := models.BudgetSummary{
			Category:     b.Category,
			BudgetAmount: b.Amount,
			Spent:        spent,
			Remaining:    b.Amount.Sub(spent),
		}
		if b.Amount.IsPositive() {
			percent, _ := spent.Div(b.Amount).Mul(decimal.NewFromInt(100)).Float64()
			s.PercentUsed = percent
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// MonthRange returns the half-open interval [first of month, first of
// next month) in UTC. December rolls into January of the next year.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
