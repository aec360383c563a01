package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/common"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/service"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/storage"
)

type expenseRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Note     string `json:"note,omitempty"`
}

type expenseResponse struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Note     string `json:"note,omitempty"`
}

type budgetRequest struct {
	Category       string   `json:"category"`
	Amount         string   `json:"amount"`
	Month          *string  `json:"month,omitempty"`
	AlertThreshold *float64 `json:"alert_threshold,omitempty"`
}

type budgetResponse struct {
	ID             int64    `json:"id"`
	Category       string   `json:"category"`
	Amount         string   `json:"amount"`
	Month          *string  `json:"month,omitempty"`
	AlertThreshold *float64 `json:"alert_threshold,omitempty"`
}

type alertResponse struct {
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	Spent       string  `json:"spent"`
	Budget      string  `json:"budget"`
	Remaining   string  `json:"remaining"`
	PercentLeft float64 `json:"percent_left"`
}

type comparisonResponse struct {
	Category    string   `json:"category"`
	Spent       string   `json:"spent"`
	Budget      *string  `json:"budget,omitempty"`
	PercentUsed *float64 `json:"percent_used,omitempty"`
}

type monthlyReportResponse struct {
	Month      string               `json:"month"`
	TotalSpent string               `json:"total_spent"`
	Categories []comparisonResponse `json:"categories"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateExpense(w, r)
	case http.MethodGet:
		s.handleListExpenses(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("malformed request body"))
		return
	}

	amount, err := model.NewMoney(req.Amount)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	date := time.Now()
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
			return
		}
	}

	category, err := s.storage.GetOrCreateCategory(r.Context(), req.Category)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	expense, err := s.storage.InsertExpense(r.Context(), service.NewExpense{
		Date:       date,
		Note:       req.Note,
		Amount:     amount,
		CategoryID: category.ID,
	})
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, expenseResponse{
		ID:       expense.ID,
		Category: category.Name,
		Amount:   expense.Amount.String(),
		Date:     expense.Date.Format("2006-01-02"),
		Note:     expense.Note,
	})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	filter := service.ExpenseFilter{}

	if month := r.URL.Query().Get("month"); month != "" {
		period, err := model.ResolvePeriod(month)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		filter.Start = &period.Start
		filter.End = &period.End
	}

	categories, err := s.storage.ListCategories(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	expenses, err := s.storage.ListExpenses(r.Context(), filter)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, expenseResponse{
			ID:       e.ID,
			Category: names[e.CategoryID],
			Amount:   e.Amount.String(),
			Date:     e.Date.Format("2006-01-02"),
			Note:     e.Note,
		})
	}

	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("malformed request body"))
		return
	}

	amount, err := model.NewMoney(req.Amount)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	category, err := s.storage.GetOrCreateCategory(r.Context(), req.Category)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	budget, err := s.storage.UpsertBudget(r.Context(), service.BudgetUpsert{
		Month:          req.Month,
		AlertThreshold: req.AlertThreshold,
		Amount:         amount,
		CategoryID:     category.ID,
	})
	if err != nil {
		if errors.Is(err, model.ErrInvalidPeriod) ||
			errors.Is(err, storage.ErrNegativeBudget) ||
			errors.Is(err, storage.ErrInvalidThreshold) {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		s.writeStorageError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, budgetResponse{
		ID:             budget.ID,
		Category:       category.Name,
		Amount:         budget.Amount.String(),
		Month:          budget.Month,
		AlertThreshold: budget.AlertThreshold,
	})
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	month := r.URL.Query().Get("month")
	period, err := model.ResolvePeriod(month)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	rows, err := s.engine.Compare(r.Context(), month)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	total, err := s.storage.TotalSpent(r.Context(), period.Start, period.End)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, monthlyReportResponse{
		Month:      month,
		TotalSpent: total.String(),
		Categories: toComparisonResponses(rows),
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	month := r.URL.Query().Get("month")
	rows, err := s.engine.Compare(r.Context(), month)
	if err != nil {
		if errors.Is(err, model.ErrInvalidPeriod) {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		s.writeStorageError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toComparisonResponses(rows))
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	month := r.URL.Query().Get("month")
	alerts, err := s.engine.Evaluate(r.Context(), month)
	if err != nil {
		if errors.Is(err, model.ErrInvalidPeriod) {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		s.writeStorageError(w, err)
		return
	}

	out := make([]alertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, alertResponse{
			Category:    a.Category.Name,
			Status:      string(a.Status),
			Spent:       a.Spent.String(),
			Budget:      a.Budget.String(),
			Remaining:   a.Remaining.String(),
			PercentLeft: a.PercentLeft,
		})
	}

	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
	})
}

func toComparisonResponses(rows []model.BudgetComparison) []comparisonResponse {
	out := make([]comparisonResponse, 0, len(rows))
	for _, row := range rows {
		resp := comparisonResponse{
			Category:    row.Category.Name,
			Spent:       row.Spent.String(),
			PercentUsed: row.PercentUsed,
		}
		if row.Budget != nil {
			b := row.Budget.String()
			resp.Budget = &b
		}
		out = append(out, resp)
	}
	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeStorageError maps storage failures to HTTP statuses. Unknown
// errors are reported as a bare 500 without leaking details.
func (s *Server) writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, model.ErrInvalidAmount), errors.Is(err, model.ErrInvalidPeriod),
		errors.Is(err, storage.ErrEmptyString), errors.Is(err, storage.ErrInvalidThreshold),
		errors.Is(err, storage.ErrNegativeBudget):
		s.writeError(w, http.StatusBadRequest, err)
	default:
		s.logger.Error("storage error", "error", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}
