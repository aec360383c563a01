package model

import "time"

// Expense is a single recorded transaction. Expenses are immutable
// once created; there is no update or delete surface.
type Expense struct {
	Date         time.Time
	Note         string
	GroupID      *int64
	PaidByUserID *int64
	Amount       Money
	ID           int64
	CategoryID   int64
}
