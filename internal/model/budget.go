package model

// Budget is a spending cap for a category. A nil Month makes it a
// standing budget that applies to any month lacking a specific row.
// At most one budget exists per (category, month) pair, including the
// standing pair.
type Budget struct {
	Month          *string
	AlertThreshold *float64
	Amount         Money
	ID             int64
	CategoryID     int64
}

// IsStanding reports whether the budget applies to all months.
func (b Budget) IsStanding() bool {
	return b.Month == nil
}

// Threshold returns the budget's alert threshold, or fallback when the
// record carries none.
func (b Budget) Threshold(fallback float64) float64 {
	if b.AlertThreshold != nil {
		return *b.AlertThreshold
	}
	return fallback
}
