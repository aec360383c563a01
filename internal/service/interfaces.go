// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
)

// ExpenseFilter defines filtering options for expense queries.
type ExpenseFilter struct {
	Start      *time.Time
	End        *time.Time
	CategoryID *int64
	Limit      int
	Offset     int
}

// NewExpense holds the fields for recording a single expense.
type NewExpense struct {
	Date         time.Time
	Note         string
	GroupID      *int64
	PaidByUserID *int64
	Amount       model.Money
	CategoryID   int64
}

// BudgetUpsert holds the fields for creating or updating a budget.
// Month is nil for a standing budget.
type BudgetUpsert struct {
	Month          *string
	AlertThreshold *float64
	Amount         model.Money
	CategoryID     int64
}

// Storage defines the contract for the ledger's persistence layer.
type Storage interface {
	// Category operations. Creation is explicit get-or-create by
	// normalized name; evaluation paths only read.
	GetOrCreateCategory(ctx context.Context, name string) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)

	// Budget operations.
	UpsertBudget(ctx context.Context, upsert BudgetUpsert) (*model.Budget, error)
	FindBudget(ctx context.Context, categoryID int64, month *string) (*model.Budget, error)
	ListBudgets(ctx context.Context) ([]model.Budget, error)

	// Expense operations.
	InsertExpense(ctx context.Context, expense NewExpense) (*model.Expense, error)
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error)
	SumExpenses(ctx context.Context, categoryID int64, start, end time.Time) (model.Money, error)
	TotalSpent(ctx context.Context, start, end time.Time) (model.Money, error)

	// Identity operations.
	GetOrCreateUser(ctx context.Context, name, email string) (*model.User, error)
	GetOrCreateGroup(ctx context.Context, name string) (*model.Group, error)
	AddGroupMember(ctx context.Context, userID, groupID int64) error

	// Database management.
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
}

// Notifier delivers rendered alert messages. Implementations must
// treat missing configuration as a silent no-op; delivery failures are
// the caller's to log, never fatal.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// ReportWriter exports a monthly comparison report to an external
// destination such as a spreadsheet.
type ReportWriter interface {
	Write(ctx context.Context, month string, rows []model.BudgetComparison) error
}
