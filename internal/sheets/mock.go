package sheets

import (
	"context"
	"sync"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
)

// MockWriter is a mock implementation of ReportWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, month string, rows []model.BudgetComparison) error
	LastMonth      string
	LastRows       []model.BudgetComparison
	WriteCalls     []WriteCall
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error error
	Month string
	Rows  []model.BudgetComparison
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write implements the ReportWriter interface.
func (m *MockWriter) Write(ctx context.Context, month string, rows []model.BudgetComparison) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastMonth = month
	m.LastRows = rows

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, month, rows)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Month: month,
		Rows:  rows,
		Error: err,
	})

	return err
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount = 0
	m.WriteCalls = make([]WriteCall, 0)
	m.LastMonth = ""
	m.LastRows = nil
}

// SetWriteError configures the mock to return an error on every Write call.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(_ context.Context, _ string, _ []model.BudgetComparison) error {
		return err
	}
}
