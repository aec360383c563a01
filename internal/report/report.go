// Package report formats engine and store output as text tables. It is
// pure presentation: nothing here reads or writes storage.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/cli"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
)

const placeholder = "-"

// WriteExpenses renders an expense listing, newest first, with
// category names resolved by the caller.
func WriteExpenses(out io.Writer, expenses []model.Expense, categoryNames map[int64]string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("ID"),
		cli.TableHeaderStyle.Render("Date"),
		cli.TableHeaderStyle.Render("Category"),
		cli.TableHeaderStyle.Render("Amount"),
		cli.TableHeaderStyle.Render("Note"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 4),
		strings.Repeat("-", 10),
		strings.Repeat("-", 16),
		strings.Repeat("-", 10),
		strings.Repeat("-", 24))

	for _, e := range expenses {
		name := categoryNames[e.CategoryID]
		if name == "" {
			name = placeholder
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.Date.Format("2006-01-02"), name, e.Amount, e.Note)
	}

	return w.Flush()
}

// WriteComparison renders the budget-vs-actual table. Categories
// without an applicable budget show "-" for budget and percent.
func WriteComparison(out io.Writer, rows []model.BudgetComparison) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Category"),
		cli.TableHeaderStyle.Render("Spent"),
		cli.TableHeaderStyle.Render("Budget"),
		cli.TableHeaderStyle.Render("% Used"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 16),
		strings.Repeat("-", 10),
		strings.Repeat("-", 10),
		strings.Repeat("-", 7))

	for _, row := range rows {
		budget := placeholder
		percent := placeholder
		if row.Budget != nil {
			budget = row.Budget.String()
		}
		if row.PercentUsed != nil {
			percent = fmt.Sprintf("%.1f%%", *row.PercentUsed)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			row.Category.Name, row.Spent, budget, percent)
	}

	return w.Flush()
}

// WriteAlerts renders LOW and EXCEEDED rows from an evaluation.
func WriteAlerts(out io.Writer, alerts []model.CategoryAlert) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Category"),
		cli.TableHeaderStyle.Render("Alert"),
		cli.TableHeaderStyle.Render("Spent"),
		cli.TableHeaderStyle.Render("Budget"),
		cli.TableHeaderStyle.Render("Remaining"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 16),
		strings.Repeat("-", 16),
		strings.Repeat("-", 10),
		strings.Repeat("-", 10),
		strings.Repeat("-", 10))

	for _, alert := range alerts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			alert.Category.Name,
			styledStatus(alert),
			alert.Spent, alert.Budget, alert.Remaining)
	}

	return w.Flush()
}

// WriteBudgets renders configured budgets with category names resolved
// by the caller.
func WriteBudgets(out io.Writer, budgets []model.Budget, categoryNames map[int64]string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("Category"),
		cli.TableHeaderStyle.Render("Month"),
		cli.TableHeaderStyle.Render("Amount"),
		cli.TableHeaderStyle.Render("Threshold"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 16),
		strings.Repeat("-", 8),
		strings.Repeat("-", 10),
		strings.Repeat("-", 9))

	for _, b := range budgets {
		name := categoryNames[b.CategoryID]
		if name == "" {
			name = placeholder
		}
		month := cli.SubtleStyle.Render("(standing)")
		if b.Month != nil {
			month = *b.Month
		}
		threshold := placeholder
		if b.AlertThreshold != nil {
			threshold = fmt.Sprintf("%.0f%%", *b.AlertThreshold*100)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, month, b.Amount, threshold)
	}

	return w.Flush()
}

// AlertStatusLabel renders the alert column text: EXCEEDED, or LOW
// with the percentage of budget remaining.
func AlertStatusLabel(alert model.CategoryAlert) string {
	if alert.Status == model.StatusLow {
		return fmt.Sprintf("LOW (%.1f%% left)", alert.PercentLeft)
	}
	return string(alert.Status)
}

func styledStatus(alert model.CategoryAlert) string {
	label := AlertStatusLabel(alert)
	switch alert.Status {
	case model.StatusExceeded:
		return cli.ErrorStyle.Render(label)
	case model.StatusLow:
		return cli.WarningStyle.Render(label)
	default:
		return label
	}
}

// RenderAlertBody renders the plain-text notification body for a set
// of alerts, one line per category.
func RenderAlertBody(alerts []model.CategoryAlert) string {
	lines := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		lines = append(lines, fmt.Sprintf("%s: %s (Spent: %s, Budget: %s, Remaining: %s)",
			alert.Category.Name, AlertStatusLabel(alert),
			alert.Spent, alert.Budget, alert.Remaining))
	}
	return strings.Join(lines, "\n")
}
