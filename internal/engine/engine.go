// Package engine implements budget resolution and alert evaluation
// over recorded expenses.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/service"
)

// DefaultAlertThreshold flags a category LOW when the remaining budget
// fraction drops to 10% or below and the budget carries no threshold
// of its own.
const DefaultAlertThreshold = 0.10

// AlertEngine evaluates per-category spending against budgets for one
// month at a time. It only reads from storage; it never creates
// categories or mutates budgets.
type AlertEngine struct {
	storage          service.Storage
	defaultThreshold float64
}

// Option configures an AlertEngine.
type Option func(*AlertEngine)

// WithDefaultThreshold overrides the fallback alert threshold applied
// to budgets without one.
func WithDefaultThreshold(threshold float64) Option {
	return func(e *AlertEngine) {
		e.defaultThreshold = threshold
	}
}

// New creates an alert engine backed by the given store. The store
// handle is owned by the caller.
func New(storage service.Storage, opts ...Option) *AlertEngine {
	e := &AlertEngine{
		storage:          storage,
		defaultThreshold: DefaultAlertThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ResolveBudget picks the budget that applies to a category in a
// month: the month-specific row wins, the standing row is the
// fallback, and nil means the category has no applicable budget.
func (e *AlertEngine) ResolveBudget(ctx context.Context, categoryID int64, month string) (*model.Budget, error) {
	budget, err := e.storage.FindBudget(ctx, categoryID, &month)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}
	if budget != nil {
		return budget, nil
	}

	budget, err = e.storage.FindBudget(ctx, categoryID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find standing budget: %w", err)
	}
	return budget, nil
}

// Evaluate classifies every budgeted category's spending for the month
// and returns the LOW and EXCEEDED rows, ordered by category name.
// Categories without an applicable budget are skipped; OK categories
// produce no row. Evaluation is a pure read over store state.
func (e *AlertEngine) Evaluate(ctx context.Context, month string) ([]model.CategoryAlert, error) {
	period, err := model.ResolvePeriod(month)
	if err != nil {
		return nil, err
	}

	categories, err := e.storage.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	var alerts []model.CategoryAlert
	for _, cat := range categories {
		spent, err := e.storage.SumExpenses(ctx, cat.ID, period.Start, period.End)
		if err != nil {
			return nil, fmt.Errorf("failed to sum expenses for %q: %w", cat.Name, err)
		}

		budget, err := e.ResolveBudget(ctx, cat.ID, month)
		if err != nil {
			return nil, err
		}
		if budget == nil {
			// No applicable budget: the category is excluded from
			// alerting. Compare still reports it with a placeholder.
			continue
		}

		alert, ok := classify(cat, spent, budget, e.defaultThreshold)
		if ok {
			alerts = append(alerts, alert)
		}
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].Category.Name < alerts[j].Category.Name
	})

	slog.Debug("evaluated alerts",
		"month", month,
		"categories", len(categories),
		"alerts", len(alerts))

	return alerts, nil
}

// classify applies the status rules to one category. The bool result
// is false for OK categories, which emit no alert row.
func classify(cat model.Category, spent model.Money, budget *model.Budget, defaultThreshold float64) (model.CategoryAlert, bool) {
	remaining := budget.Amount.Sub(spent)

	alert := model.CategoryAlert{
		Category:  cat,
		Spent:     spent,
		Budget:    budget.Amount,
		Remaining: remaining,
	}

	if spent.Cmp(budget.Amount) > 0 {
		alert.Status = model.StatusExceeded
		return alert, true
	}

	// A zero budget with zero spend is OK, not LOW: the LOW branch
	// requires a positive budget.
	if budget.Amount.Cmp(model.ZeroMoney()) > 0 {
		threshold := decimal.NewFromFloat(budget.Threshold(defaultThreshold))
		ratio := remaining.Ratio(budget.Amount)
		if ratio.Cmp(threshold) <= 0 {
			alert.Status = model.StatusLow
			alert.PercentLeft, _ = ratio.Mul(decimal.NewFromInt(100)).Round(1).Float64()
			return alert, true
		}
	}

	return model.CategoryAlert{}, false
}

// Compare reports budget-vs-actual for every category in the store,
// including those without an applicable budget (nil Budget and
// PercentUsed). Same aggregation as Evaluate, no classification.
func (e *AlertEngine) Compare(ctx context.Context, month string) ([]model.BudgetComparison, error) {
	period, err := model.ResolvePeriod(month)
	if err != nil {
		return nil, err
	}

	categories, err := e.storage.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	rows := make([]model.BudgetComparison, 0, len(categories))
	for _, cat := range categories {
		spent, err := e.storage.SumExpenses(ctx, cat.ID, period.Start, period.End)
		if err != nil {
			return nil, fmt.Errorf("failed to sum expenses for %q: %w", cat.Name, err)
		}

		row := model.BudgetComparison{Category: cat, Spent: spent}

		budget, err := e.ResolveBudget(ctx, cat.ID, month)
		if err != nil {
			return nil, err
		}
		if budget != nil {
			amount := budget.Amount
			row.Budget = &amount
			if amount.Cmp(model.ZeroMoney()) > 0 {
				pct, _ := spent.Ratio(amount).Mul(decimal.NewFromInt(100)).Round(1).Float64()
				row.PercentUsed = &pct
			}
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Category.Name < rows[j].Category.Name
	})

	return rows, nil
}
