package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
)

// GetCategoryByName returns a category by its normalized name, or nil
// if no such category exists.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	normalized := model.NormalizeCategoryName(name)
	if normalized == "" {
		return nil, fmt.Errorf("%w: name", ErrEmptyString)
	}

	query := `
		SELECT id, name, created_at
		FROM categories
		WHERE name = ?`

	var cat model.Category
	err := s.db.QueryRowContext(ctx, query, normalized).Scan(
		&cat.ID, &cat.Name, &cat.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// GetOrCreateCategory looks up a category by normalized name, creating
// it on first reference. Lookup and insert run in one transaction so a
// concurrent caller cannot observe a half-created row.
func (s *SQLiteStorage) GetOrCreateCategory(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	normalized := model.NormalizeCategoryName(name)
	if normalized == "" {
		return nil, fmt.Errorf("%w: name", ErrEmptyString)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var cat model.Category
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM categories WHERE name = ?`,
		normalized,
	).Scan(&cat.ID, &cat.Name, &cat.CreatedAt)

	switch {
	case err == nil:
		return &cat, tx.Commit()
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO categories (name) VALUES (?)`, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category id: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM categories WHERE id = ?`, id,
	).Scan(&cat.ID, &cat.Name, &cat.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to read back category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit category: %w", err)
	}

	slog.Debug("created category", "id", cat.ID, "name", cat.Name)
	return &cat, nil
}

// ListCategories returns all categories ordered by name.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, created_at
		FROM categories
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}
