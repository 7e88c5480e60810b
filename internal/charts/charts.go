// Package charts renders report images (PNG) for the web UI.
package charts

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/hearthapp/hearth/internal/finance"
	"github.com/hearthapp/hearth/internal/models"
)

// ExpensesPie renders a pie chart of spending by category.
// Slices under 1% of the total are dropped to keep labels readable.
// Returns nil bytes when there is nothing to draw.
func ExpensesPie(categories []finance.CategoryAmount) ([]byte, error) {
	if len(categories) == 0 {
		return nil, nil
	}

	total := 0.0
	amounts := make([]float64, len(categories))
	for i, cat := range categories {
		amounts[i], _ = cat.Amount.Float64()
		total += amounts[i]
	}
	if total <= 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(categories))
	for i, cat := range categories {
		percentage := amounts[i] / total * 100
		if percentage <= 1.0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %.2f (%.1f%%)", cat.Category, amounts[i], percentage),
			Value: amounts[i],
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Title:  "Expenses by Category",
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render expenses pie chart: %w", err)
	}

	return buffer.Bytes(), nil
}

// MonthlyTrend renders income and expense totals per month as two time
// series. Returns nil bytes when fewer than two months are present
// (go-chart cannot draw a single-point series).
func MonthlyTrend(txs []models.Transaction) ([]byte, error) {
	type monthTotals struct {
		income  float64
		expense float64
	}

	byMonth := make(map[time.Time]*monthTotals)
	for _, tx := range txs {
		month := time.Date(tx.Date.Year(), tx.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		totals, ok := byMonth[month]
		if !ok {
			totals = &monthTotals{}
			byMonth[month] = totals
		}
		amount, _ := tx.Amount.Float64()
		switch tx.Type {
		case models.TypeIncome:
			totals.income += amount
		case models.TypeExpense:
			totals.expense += amount
		}
	}
	if len(byMonth) < 2 {
		return nil, nil
	}

	months := make([]time.Time, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	incomeValues := make([]float64, len(months))
	expenseValues := make([]float64, len(months))
	for i, m := range months {
		incomeValues[i] = byMonth[m].income
		expenseValues[i] = byMonth[m].expense
	}

	graph := chart.Chart{
		Title:  "Monthly Income and Expenses",
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Income",
				XValues: months,
				YValues: incomeValues,
				Style: chart.Style{
					StrokeColor: chart.ColorGreen,
					StrokeWidth: 2,
				},
			},
			chart.TimeSeries{
				Name:    "Expenses",
				XValues: months,
				YValues: expenseValues,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render trend chart: %w", err)
	}

	return buffer.Bytes(), nil
}
