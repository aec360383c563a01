package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/service"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

// Helper to insert an expense, failing the test on error.
func mustInsertExpense(t *testing.T, store *SQLiteStorage, categoryID int64, amount string, date time.Time) *model.Expense {
	t.Helper()
	m, err := model.NewMoney(amount)
	if err != nil {
		t.Fatalf("Bad amount %q: %v", amount, err)
	}
	exp, err := store.InsertExpense(context.Background(), service.NewExpense{
		Date:       date,
		CategoryID: categoryID,
		Amount:     m,
	})
	if err != nil {
		t.Fatalf("Failed to insert expense: %v", err)
	}
	return exp
}

func mustMoney(t *testing.T, s string) model.Money {
	t.Helper()
	m, err := model.NewMoney(s)
	if err != nil {
		t.Fatalf("Bad amount %q: %v", s, err)
	}
	return m
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("creates database at path", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		if store.db == nil {
			t.Fatal("expected open database handle")
		}
	})

	t.Run("rejects empty path", func(t *testing.T) {
		if _, err := NewSQLiteStorage(""); err == nil {
			t.Fatal("expected error for empty path")
		}
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	// A second migration pass must be a no-op.
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Second migrate failed: %v", err)
	}
}

func TestBeginTx(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	tx, err := store.BeginTx(context.Background())
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Failed to rollback: %v", err)
	}
}
