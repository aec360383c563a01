package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/service"
)

func TestInsertExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("stores all fields", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		cat, err := store.GetOrCreateCategory(ctx, "Food")
		require.NoError(t, err)

		group, err := store.GetOrCreateGroup(ctx, "Flatmates")
		require.NoError(t, err)

		user, err := store.GetOrCreateUser(ctx, "Alice", "alice@example.com")
		require.NoError(t, err)

		exp, err := store.InsertExpense(ctx, service.NewExpense{
			Date:         time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			CategoryID:   cat.ID,
			Amount:       mustMoney(t, "30.00"),
			Note:         "groceries",
			GroupID:      &group.ID,
			PaidByUserID: &user.ID,
		})
		require.NoError(t, err)
		assert.Positive(t, exp.ID)

		listed, err := store.ListExpenses(ctx, service.ExpenseFilter{})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "groceries", listed[0].Note)
		require.NotNil(t, listed[0].GroupID)
		assert.Equal(t, group.ID, *listed[0].GroupID)
		require.NotNil(t, listed[0].PaidByUserID)
		assert.Equal(t, user.ID, *listed[0].PaidByUserID)
		assert.True(t, listed[0].Amount.Equal(mustMoney(t, "30.00")))
	})

	t.Run("rejects zero date", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		cat, err := store.GetOrCreateCategory(ctx, "Food")
		require.NoError(t, err)

		_, err = store.InsertExpense(ctx, service.NewExpense{
			CategoryID: cat.ID,
			Amount:     mustMoney(t, "10.00"),
		})
		assert.Error(t, err)
	})
}

func TestListExpenses(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	food, err := store.GetOrCreateCategory(ctx, "Food")
	require.NoError(t, err)
	travel, err := store.GetOrCreateCategory(ctx, "Travel")
	require.NoError(t, err)

	mustInsertExpense(t, store, food.ID, "10.00", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	mustInsertExpense(t, store, food.ID, "20.00", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	mustInsertExpense(t, store, travel.ID, "99.00", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	t.Run("newest first", func(t *testing.T) {
		expenses, err := store.ListExpenses(ctx, service.ExpenseFilter{})
		require.NoError(t, err)
		require.Len(t, expenses, 3)
		assert.True(t, expenses[0].Date.After(expenses[2].Date))
	})

	t.Run("filter by period is half-open", func(t *testing.T) {
		period, err := model.ResolvePeriod("2024-03")
		require.NoError(t, err)

		expenses, err := store.ListExpenses(ctx, service.ExpenseFilter{
			Start: &period.Start,
			End:   &period.End,
		})
		require.NoError(t, err)
		assert.Len(t, expenses, 2)
	})

	t.Run("filter by category", func(t *testing.T) {
		expenses, err := store.ListExpenses(ctx, service.ExpenseFilter{CategoryID: &travel.ID})
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.True(t, expenses[0].Amount.Equal(mustMoney(t, "99.00")))
	})

	t.Run("limit and offset", func(t *testing.T) {
		expenses, err := store.ListExpenses(ctx, service.ExpenseFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, expenses, 2)
	})
}

func TestSumExpenses(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	food, err := store.GetOrCreateCategory(ctx, "Food")
	require.NoError(t, err)

	period, err := model.ResolvePeriod("2024-03")
	require.NoError(t, err)

	t.Run("sum of empty set is zero", func(t *testing.T) {
		sum, err := store.SumExpenses(ctx, food.ID, period.Start, period.End)
		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})

	t.Run("sums within half-open range", func(t *testing.T) {
		mustInsertExpense(t, store, food.ID, "30.00", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
		mustInsertExpense(t, store, food.ID, "40.00", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
		// First instant of April is outside March.
		mustInsertExpense(t, store, food.ID, "500.00", period.End)

		sum, err := store.SumExpenses(ctx, food.ID, period.Start, period.End)
		require.NoError(t, err)
		assert.True(t, sum.Equal(mustMoney(t, "70.00")), "got %s", sum)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := store.SumExpenses(ctx, food.ID, period.End, period.Start)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestTotalSpent(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	food, err := store.GetOrCreateCategory(ctx, "Food")
	require.NoError(t, err)
	travel, err := store.GetOrCreateCategory(ctx, "Travel")
	require.NoError(t, err)

	mustInsertExpense(t, store, food.ID, "12.50", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	mustInsertExpense(t, store, travel.ID, "7.50", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))

	period, err := model.ResolvePeriod("2024-03")
	require.NoError(t, err)

	total, err := store.TotalSpent(ctx, period.Start, period.End)
	require.NoError(t, err)
	assert.True(t, total.Equal(mustMoney(t, "20.00")))
}

func TestGroupMembership(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	user, err := store.GetOrCreateUser(ctx, "Alice", "")
	require.NoError(t, err)
	group, err := store.GetOrCreateGroup(ctx, "Trip")
	require.NoError(t, err)

	require.NoError(t, store.AddGroupMember(ctx, user.ID, group.ID))
	// Duplicate membership is a silent no-op.
	require.NoError(t, store.AddGroupMember(ctx, user.ID, group.ID))
}
