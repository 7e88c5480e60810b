package models

import "github.com/shopspring/decimal"

// Budget is a per-category spending limit for one calendar month.
// The (UserID, Category, Month, Year) tuple is unique; setting a budget
// for an existing tuple replaces the amount.
type Budget struct {
	// ID is the unique identifier for the budget (UUID format).
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Category is the budget category.
	Category string `json:"category"`

	// Amount is the budgeted amount for the month.
	Amount decimal.Decimal `json:"amount"`

	// Month is the calendar month (1-12).
	Month int `json:"month"`

	// Year is the calendar year.
	Year int `json:"year"`
}

// BudgetSummary reports budgeted versus actual spending for one category.
type BudgetSummary struct {
	Category string `json:"category"`

	// BudgetAmount is the budgeted amount for the month.
	BudgetAmount decimal.Decimal `json:"budget_amount"`

	// Spent is the sum of expense transactions in the category for the
	// month.
	Spent decimal.Decimal `json:"spent"`

	// Remaining is BudgetAmount - Spent (negative when over budget).
	Remaining decimal.Decimal `json:"remaining"`

	// PercentUsed is Spent / BudgetAmount * 100, or 0 when BudgetAmount
	// is zero.
	PercentUsed float64 `json:"percent_used"`
}
