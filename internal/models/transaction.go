package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction represents a single income or expense entry.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Amount is the transaction amount. Always positive; the sign is
	// carried by Type.
	Amount decimal.Decimal `json:"amount"`

	// Category is one of TransactionCategories (free-form values are
	// accepted for imported data).
	Category string `json:"category"`

	// Description is an optional note.
	Description string `json:"description"`

	// Type is either TypeIncome or TypeExpense.
	Type string `json:"transaction_type"`

	// Date is when the transaction occurred.
	Date time.Time `json:"date"`
}

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// TransactionCategories is the predefined category list offered by the UI.
var TransactionCategories = []string{
	"Groceries", "Utilities", "Rent/Mortgage", "Transportation",
	"Healthcare", "Entertainment", "Education", "Shopping",
	"Savings", "Investments", "Insurance", "Dining Out",
	"Travel", "Gifts", "Other",
}
