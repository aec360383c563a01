package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/engine"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = store.Close()
	})

	return NewServer("127.0.0.1:0", store, engine.New(store), slog.Default())
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCreateAndListExpenses(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/expenses", expenseRequest{
		Category: "food",
		Amount:   "12.50",
		Date:     "2024-06-10",
		Note:     "groceries",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created expenseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Food", created.Category)
	assert.Equal(t, "12.50", created.Amount)

	rec = doJSON(t, handler, http.MethodPost, "/expenses", expenseRequest{
		Category: "food",
		Amount:   "7.25",
		Date:     "2024-07-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("filter by month", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/expenses?month=2024-06", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var expenses []expenseResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &expenses))
		require.Len(t, expenses, 1)
		assert.Equal(t, "12.50", expenses[0].Amount)
		assert.Equal(t, "groceries", expenses[0].Note)
	})

	t.Run("all expenses without filter", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/expenses", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var expenses []expenseResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &expenses))
		assert.Len(t, expenses, 2)
	})

	t.Run("invalid month", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/expenses?month=2024-6", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateExpenseValidation(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	t.Run("bad amount", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/expenses", expenseRequest{
			Category: "food",
			Amount:   "not-a-number",
			Date:     "2024-06-10",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("blank category", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/expenses", expenseRequest{
			Category: "   ",
			Amount:   "5.00",
			Date:     "2024-06-10",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/expenses", expenseRequest{
			Category: "food",
			Amount:   "5.00",
			Date:     "June 10th",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodDelete, "/expenses", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestBudgetsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	month := "2024-06"
	rec := doJSON(t, handler, http.MethodPost, "/budgets", budgetRequest{
		Category: "food",
		Amount:   "300.00",
		Month:    &month,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created budgetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Food", created.Category)
	assert.Equal(t, "300.00", created.Amount)
	require.NotNil(t, created.Month)
	assert.Equal(t, "2024-06", *created.Month)

	t.Run("standing budget", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/budgets", budgetRequest{
			Category: "travel",
			Amount:   "150.00",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var budget budgetResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &budget))
		assert.Nil(t, budget.Month)
	})

	t.Run("negative amount", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/budgets", budgetRequest{
			Category: "food",
			Amount:   "-10.00",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("blank category", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/budgets", budgetRequest{
			Category: "",
			Amount:   "10.00",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad month token", func(t *testing.T) {
		bad := "June"
		rec := doJSON(t, handler, http.MethodPost, "/budgets", budgetRequest{
			Category: "food",
			Amount:   "10.00",
			Month:    &bad,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAlertsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	month := "2024-06"
	rec := doJSON(t, handler, http.MethodPost, "/budgets", budgetRequest{
		Category: "food",
		Amount:   "60.00",
		Month:    &month,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, amount := range []string{"30.00", "40.00"} {
		rec := doJSON(t, handler, http.MethodPost, "/expenses", expenseRequest{
			Category: "food",
			Amount:   amount,
			Date:     "2024-06-15",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/alerts?month=2024-06", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var alerts []alertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "Food", alerts[0].Category)
	assert.Equal(t, "EXCEEDED", alerts[0].Status)
	assert.Equal(t, "70.00", alerts[0].Spent)
	assert.Equal(t, "-10.00", alerts[0].Remaining)

	t.Run("quiet month has no alerts", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/alerts?month=2024-07", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var alerts []alertResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &alerts))
		assert.Empty(t, alerts)
	})

	t.Run("missing month", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/alerts", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCompareAndMonthlyReport(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	month := "2024-06"
	rec := doJSON(t, handler, http.MethodPost, "/budgets", budgetRequest{
		Category: "food",
		Amount:   "100.00",
		Month:    &month,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/expenses", expenseRequest{
		Category: "food",
		Amount:   "25.00",
		Date:     "2024-06-02",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/expenses", expenseRequest{
		Category: "travel",
		Amount:   "42.00",
		Date:     "2024-06-20",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("compare", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/reports/compare?month=2024-06", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var rows []comparisonResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
		require.Len(t, rows, 2)

		assert.Equal(t, "Food", rows[0].Category)
		require.NotNil(t, rows[0].Budget)
		assert.Equal(t, "100.00", *rows[0].Budget)
		require.NotNil(t, rows[0].PercentUsed)
		assert.InDelta(t, 25.0, *rows[0].PercentUsed, 0.01)

		assert.Equal(t, "Travel", rows[1].Category)
		assert.Nil(t, rows[1].Budget)
		assert.Nil(t, rows[1].PercentUsed)
	})

	t.Run("monthly report", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/reports/monthly?month=2024-06", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var report monthlyReportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, "2024-06", report.Month)
		assert.Equal(t, "67.00", report.TotalSpent)
		assert.Len(t, report.Categories, 2)
	})

	t.Run("invalid month", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/reports/compare?month=nope", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
