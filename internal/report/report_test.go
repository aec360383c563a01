package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
)

func money(t *testing.T, s string) model.Money {
	t.Helper()
	m, err := model.NewMoney(s)
	require.NoError(t, err)
	return m
}

func TestWriteComparison(t *testing.T) {
	budget := money(t, "100.00")
	pct := 25.0

	rows := []model.BudgetComparison{
		{
			Category:    model.Category{ID: 1, Name: "Food"},
			Spent:       money(t, "25.00"),
			Budget:      &budget,
			PercentUsed: &pct,
		},
		{
			Category: model.Category{ID: 2, Name: "Misc"},
			Spent:    money(t, "10.00"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteComparison(&buf, rows))

	out := buf.String()
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "Misc")
	assert.Contains(t, out, "-", "unbudgeted rows show a placeholder")
}

func TestWriteAlerts(t *testing.T) {
	alerts := []model.CategoryAlert{
		{
			Category:  model.Category{ID: 1, Name: "Food"},
			Status:    model.StatusExceeded,
			Spent:     money(t, "70.00"),
			Budget:    money(t, "60.00"),
			Remaining: money(t, "-10.00"),
		},
		{
			Category:    model.Category{ID: 2, Name: "Travel"},
			Status:      model.StatusLow,
			Spent:       money(t, "95.00"),
			Budget:      money(t, "100.00"),
			Remaining:   money(t, "5.00"),
			PercentLeft: 5.0,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAlerts(&buf, alerts))

	out := buf.String()
	assert.Contains(t, out, "EXCEEDED")
	assert.Contains(t, out, "LOW (5.0% left)")
	assert.Contains(t, out, "-10.00")
}

func TestWriteExpenses(t *testing.T) {
	expenses := []model.Expense{
		{
			ID:         3,
			Date:       time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			CategoryID: 1,
			Amount:     money(t, "30.00"),
			Note:       "groceries",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, expenses, map[int64]string{1: "Food"}))

	out := buf.String()
	assert.Contains(t, out, "2024-03-05")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "30.00")
	assert.Contains(t, out, "groceries")
}

func TestWriteBudgets(t *testing.T) {
	june := "2024-06"
	threshold := 0.2

	budgets := []model.Budget{
		{
			ID:             1,
			CategoryID:     1,
			Month:          &june,
			AlertThreshold: &threshold,
			Amount:         money(t, "300.00"),
		},
		{
			ID:         2,
			CategoryID: 2,
			Amount:     money(t, "150.00"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBudgets(&buf, budgets, map[int64]string{1: "Food", 2: "Travel"}))

	out := buf.String()
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "2024-06")
	assert.Contains(t, out, "20%")
	assert.Contains(t, out, "Travel")
	assert.Contains(t, out, "(standing)", "monthless budgets are marked standing")
	assert.Contains(t, out, "150.00")
}

func TestRenderAlertBody(t *testing.T) {
	alerts := []model.CategoryAlert{
		{
			Category:  model.Category{Name: "Food"},
			Status:    model.StatusExceeded,
			Spent:     money(t, "70.00"),
			Budget:    money(t, "60.00"),
			Remaining: money(t, "-10.00"),
		},
	}

	body := RenderAlertBody(alerts)
	assert.Equal(t, "Food: EXCEEDED (Spent: 70.00, Budget: 60.00, Remaining: -10.00)", body)
}
