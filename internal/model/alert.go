package model

// AlertStatus classifies a category's spending against its budget.
type AlertStatus string

const (
	// StatusOK means spending is comfortably inside the budget.
	// OK categories produce no alert rows.
	StatusOK AlertStatus = "OK"
	// StatusLow means the remaining budget fraction is at or below the
	// alert threshold.
	StatusLow AlertStatus = "LOW"
	// StatusExceeded means spending has gone past the budget.
	StatusExceeded AlertStatus = "EXCEEDED"
)

// CategoryAlert is one LOW or EXCEEDED row from an alert evaluation.
type CategoryAlert struct {
	Category  Category
	Status    AlertStatus
	Spent     Money
	Budget    Money
	Remaining Money
	// PercentLeft is the remaining budget as a percentage, rounded to
	// one decimal place. Only meaningful for LOW alerts.
	PercentLeft float64
}

// BudgetComparison is one row of the budget-vs-actual view. Budget and
// PercentUsed are nil when no budget applies to the category.
type BudgetComparison struct {
	Budget      *Money
	PercentUsed *float64
	Category    Category
	Spent       Money
}
