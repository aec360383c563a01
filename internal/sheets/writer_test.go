package sheets

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
)

func testWriter(t *testing.T) *Writer {
	t.Helper()
	return &Writer{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
}

func mustMoney(t *testing.T, s string) model.Money {
	t.Helper()
	m, err := model.NewMoney(s)
	require.NoError(t, err)
	return m
}

func moneyPtr(m model.Money) *model.Money {
	return &m
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestPrepareReportData(t *testing.T) {
	w := testWriter(t)

	rows := []model.BudgetComparison{
		{
			Category:    model.Category{Name: "Food"},
			Spent:       mustMoney(t, "75.00"),
			Budget:      moneyPtr(mustMoney(t, "300.00")),
			PercentUsed: floatPtr(25.0),
		},
		{
			Category: model.Category{Name: "Travel"},
			Spent:    mustMoney(t, "42.50"),
			// No budget set for this category
		},
	}

	values := w.prepareReportData("2024-06", rows)

	// Title, empty, 3 totals, empty, header, 2 categories
	require.Len(t, values, 9)

	assert.Equal(t, []any{"Budget Report", "2024-06"}, values[0])
	assert.Equal(t, []any{"Total Spent", 117.50}, values[2])
	assert.Equal(t, []any{"Total Budgeted", 300.00}, values[3])
	assert.Equal(t, []any{"Categories With Budgets", 1}, values[4])
	assert.Equal(t, []any{"Category", "Budget", "Spent", "Remaining", "% Used"}, values[6])

	food := values[7]
	assert.Equal(t, "Food", food[0])
	assert.Equal(t, 300.00, food[1])
	assert.Equal(t, 75.00, food[2])
	assert.Equal(t, 225.00, food[3])
	assert.Equal(t, "25.0%", food[4])

	travel := values[8]
	assert.Equal(t, "Travel", travel[0])
	assert.Equal(t, "", travel[1])
	assert.Equal(t, 42.50, travel[2])
	assert.Equal(t, "", travel[3])
	assert.Equal(t, "", travel[4])
}

func TestPrepareReportDataEmpty(t *testing.T) {
	w := testWriter(t)

	values := w.prepareReportData("2024-06", nil)

	require.Len(t, values, 7)
	assert.Equal(t, []any{"Total Spent", 0.0}, values[2])
	assert.Equal(t, []any{"Categories With Budgets", 0}, values[4])
}

func TestNewWriterRejectsInvalidConfig(t *testing.T) {
	cfg := Config{} // no auth method

	_, err := NewWriter(context.Background(), cfg, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
