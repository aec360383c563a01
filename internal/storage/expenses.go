package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/service"
)

// InsertExpense records a single expense. Expenses are immutable; no
// update or delete operations exist.
func (s *SQLiteStorage) InsertExpense(ctx context.Context, expense service.NewExpense) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(expense.CategoryID, "categoryID"); err != nil {
		return nil, err
	}
	if expense.Date.IsZero() {
		return nil, fmt.Errorf("%w: date", ErrEmptyString)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (date, category_id, amount_cents, note, group_id, paid_by_user_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.Date.UTC(), expense.CategoryID, expense.Amount.Cents(),
		expense.Note, expense.GroupID, expense.PaidByUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get expense id: %w", err)
	}

	slog.Debug("inserted expense",
		"id", id,
		"category_id", expense.CategoryID,
		"amount", expense.Amount.String(),
		"date", expense.Date.Format("2006-01-02"))

	return &model.Expense{
		ID:           id,
		Date:         expense.Date.UTC(),
		CategoryID:   expense.CategoryID,
		Amount:       expense.Amount,
		Note:         expense.Note,
		GroupID:      expense.GroupID,
		PaidByUserID: expense.PaidByUserID,
	}, nil
}

// ListExpenses returns expenses matching the filter, newest first.
func (s *SQLiteStorage) ListExpenses(ctx context.Context, filter service.ExpenseFilter) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.Start != nil && filter.End != nil {
		if err := validateDateRange(*filter.Start, *filter.End); err != nil {
			return nil, err
		}
	}

	var (
		conditions []string
		args       []any
	)
	if filter.Start != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.Start.UTC())
	}
	if filter.End != nil {
		conditions = append(conditions, "date < ?")
		args = append(args, filter.End.UTC())
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "category_id = ?")
		args = append(args, *filter.CategoryID)
	}

	query := `
		SELECT id, date, category_id, amount_cents, note, group_id, paid_by_user_id
		FROM expenses`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var (
			e       model.Expense
			cents   int64
			note    sql.NullString
			groupID sql.NullInt64
			payerID sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.Date, &e.CategoryID, &cents, &note, &groupID, &payerID); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Amount = model.MoneyFromCents(cents)
		if note.Valid {
			e.Note = note.String
		}
		if groupID.Valid {
			e.GroupID = &groupID.Int64
		}
		if payerID.Valid {
			e.PaidByUserID = &payerID.Int64
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// SumExpenses returns the total expense amount for a category within
// [start, end). The sum of an empty set is 0.00, not an error.
func (s *SQLiteStorage) SumExpenses(ctx context.Context, categoryID int64, start, end time.Time) (model.Money, error) {
	if err := validateContext(ctx); err != nil {
		return model.Money{}, err
	}
	if err := validateID(categoryID, "categoryID"); err != nil {
		return model.Money{}, err
	}
	if err := validateDateRange(start, end); err != nil {
		return model.Money{}, err
	}

	query := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM expenses
		WHERE category_id = ? AND date >= ? AND date < ?`

	var cents int64
	err := s.db.QueryRowContext(ctx, query, categoryID, start.UTC(), end.UTC()).Scan(&cents)
	if err != nil {
		return model.Money{}, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return model.MoneyFromCents(cents), nil
}

// TotalSpent returns the total across all categories within [start, end).
func (s *SQLiteStorage) TotalSpent(ctx context.Context, start, end time.Time) (model.Money, error) {
	if err := validateContext(ctx); err != nil {
		return model.Money{}, err
	}
	if err := validateDateRange(start, end); err != nil {
		return model.Money{}, err
	}

	query := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM expenses
		WHERE date >= ? AND date < ?`

	var cents int64
	err := s.db.QueryRowContext(ctx, query, start.UTC(), end.UTC()).Scan(&cents)
	if err != nil {
		return model.Money{}, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return model.MoneyFromCents(cents), nil
}
