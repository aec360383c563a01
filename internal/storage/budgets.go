package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/service"
)

// FindBudget returns the budget for an exact (category, month) pair,
// or nil if none exists. A nil month selects the standing budget.
// Fallback from month-specific to standing is the engine's concern,
// not the store's.
func (s *SQLiteStorage) FindBudget(ctx context.Context, categoryID int64, month *string) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(categoryID, "categoryID"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, category_id, amount_cents, month, alert_threshold
		FROM budgets
		WHERE category_id = ? AND month IS ?`

	var (
		b         model.Budget
		cents     int64
		m         sql.NullString
		threshold sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx, query, categoryID, month).Scan(
		&b.ID, &b.CategoryID, &cents, &m, &threshold,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // No budget for this pair
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}

	b.Amount = model.MoneyFromCents(cents)
	if m.Valid {
		b.Month = &m.String
	}
	if threshold.Valid {
		b.AlertThreshold = &threshold.Float64
	}

	return &b, nil
}

// UpsertBudget creates a budget for a (category, month) pair or
// updates the existing one in place. The lookup and write share one
// transaction; a UNIQUE constraint alone cannot enforce a single
// standing budget because SQLite treats NULLs as distinct.
func (s *SQLiteStorage) UpsertBudget(ctx context.Context, upsert service.BudgetUpsert) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(upsert.CategoryID, "categoryID"); err != nil {
		return nil, err
	}
	if err := validateThreshold(upsert.AlertThreshold); err != nil {
		return nil, err
	}
	if upsert.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrNegativeBudget, upsert.Amount)
	}
	if upsert.Month != nil {
		if _, err := model.ResolvePeriod(*upsert.Month); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existingID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM budgets WHERE category_id = ? AND month IS ?`,
		upsert.CategoryID, upsert.Month,
	).Scan(&existingID)

	switch {
	case err == nil:
		_, err = tx.ExecContext(ctx,
			`UPDATE budgets SET amount_cents = ?, alert_threshold = ? WHERE id = ?`,
			upsert.Amount.Cents(), nullableFloat(upsert.AlertThreshold), existingID)
		if err != nil {
			return nil, fmt.Errorf("failed to update budget: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		result, insertErr := tx.ExecContext(ctx,
			`INSERT INTO budgets (category_id, amount_cents, month, alert_threshold)
			 VALUES (?, ?, ?, ?)`,
			upsert.CategoryID, upsert.Amount.Cents(), upsert.Month, nullableFloat(upsert.AlertThreshold))
		if insertErr != nil {
			return nil, fmt.Errorf("failed to insert budget: %w", insertErr)
		}
		existingID, err = result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get budget id: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit budget: %w", err)
	}

	slog.Debug("upserted budget",
		"id", existingID,
		"category_id", upsert.CategoryID,
		"amount", upsert.Amount.String())

	return &model.Budget{
		ID:             existingID,
		CategoryID:     upsert.CategoryID,
		Amount:         upsert.Amount,
		Month:          upsert.Month,
		AlertThreshold: upsert.AlertThreshold,
	}, nil
}

// ListBudgets returns all budgets ordered by category then month, with
// standing budgets first.
func (s *SQLiteStorage) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT b.id, b.category_id, b.amount_cents, b.month, b.alert_threshold
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		ORDER BY c.name, b.month IS NOT NULL, b.month`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		var (
			b         model.Budget
			cents     int64
			m         sql.NullString
			threshold sql.NullFloat64
		)
		if err := rows.Scan(&b.ID, &b.CategoryID, &cents, &m, &threshold); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.Amount = model.MoneyFromCents(cents)
		if m.Valid {
			b.Month = &m.String
		}
		if threshold.Valid {
			b.AlertThreshold = &threshold.Float64
		}
		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
