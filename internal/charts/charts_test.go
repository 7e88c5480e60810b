package charts

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hearthapp/hearth/internal/finance"
	"github.com/hearthapp/hearth/internal/models"
)

// pngMagic is the PNG file signature.
var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestExpensesPie(t *testing.T) {
	categories := []finance.CategoryAmount{
		{Category: "Groceries", Amount: decimal.NewFromInt(300)},
		{Category: "Utilities", Amount: decimal.NewFromInt(120)},
	}

	png, err := ExpensesPie(categories)
	if err != nil {
		t.Fatalf("ExpensesPie failed: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("Output is not a PNG")
	}
}

func TestExpensesPieNoData(t *testing.T) {
	png, err := ExpensesPie(nil)
	if err != nil {
		t.Fatalf("ExpensesPie failed: %v", err)
	}
	if png != nil {
		t.Error("Expected nil bytes for empty input")
	}
}

func TestExpensesPieTinySlicesDropped(t *testing.T) {
	// A single dominant category plus one under 1% still renders.
	categories := []finance.CategoryAmount{
		{Category: "Rent/Mortgage", Amount: decimal.NewFromInt(2000)},
		{Category: "Gifts", Amount: decimal.NewFromInt(1)},
	}

	png, err := ExpensesPie(categories)
	if err != nil {
		t.Fatalf("ExpensesPie failed: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("Output is not a PNG")
	}
}

func TestMonthlyTrend(t *testing.T) {
	txs := []models.Transaction{
		{Type: models.TypeIncome, Amount: decimal.NewFromInt(3000), Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{Type: models.TypeExpense, Amount: decimal.NewFromInt(900), Date: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)},
		{Type: models.TypeIncome, Amount: decimal.NewFromInt(3000), Date: time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)},
		{Type: models.TypeExpense, Amount: decimal.NewFromInt(1100), Date: time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC)},
	}

	png, err := MonthlyTrend(txs)
	if err != nil {
		t.Fatalf("MonthlyTrend failed: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("Output is not a PNG")
	}
}

func TestMonthlyTrendSingleMonth(t *testing.T) {
	txs := []models.Transaction{
		{Type: models.TypeExpense, Amount: decimal.NewFromInt(50), Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	png, err := MonthlyTrend(txs)
	if err != nil {
		t.Fatalf("MonthlyTrend failed: %v", err)
	}
	if png != nil {
		t.Error("Expected nil bytes for a single month of data")
	}
}
