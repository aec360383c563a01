package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/cli"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/common"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/report"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/service"
)

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and list expenses",
	}

	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(listExpensesCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var (
		dateStr   string
		note      string
		groupName string
		paidBy    string
	)

	cmd := &cobra.Command{
		Use:   "add <category> <amount>",
		Short: "Record a single expense",
		Long: `Record an expense against a category. The category is created on
first use; names are case-insensitive ("food" and "Food" are the same).

Shared expenses carry a group and the member who paid; both are
created on first use and the payer is added to the group.

Examples:
  tracker expense add food 12.50
  tracker expense add travel 89.99 --date 2024-06-10 --note "train tickets"
  tracker expense add food 64.00 --group flatmates --paid-by sam`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := model.NewMoney(args[1])
			if err != nil {
				return common.NewUserError(fmt.Sprintf("invalid amount %q", args[1]), err)
			}

			date := time.Now()
			if dateStr != "" {
				date, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return common.NewUserError(fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", dateStr), nil)
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := store.GetOrCreateCategory(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to resolve category: %w", err)
			}

			newExpense := service.NewExpense{
				Date:       date,
				Note:       note,
				Amount:     amount,
				CategoryID: category.ID,
			}

			if groupName != "" {
				group, err := store.GetOrCreateGroup(ctx, groupName)
				if err != nil {
					return fmt.Errorf("failed to resolve group: %w", err)
				}
				newExpense.GroupID = &group.ID

				if paidBy != "" {
					payer, err := store.GetOrCreateUser(ctx, paidBy, "")
					if err != nil {
						return fmt.Errorf("failed to resolve payer: %w", err)
					}
					if err := store.AddGroupMember(ctx, payer.ID, group.ID); err != nil {
						return fmt.Errorf("failed to add payer to group: %w", err)
					}
					newExpense.PaidByUserID = &payer.ID
				}
			} else if paidBy != "" {
				return common.NewUserError("--paid-by requires --group", nil)
			}

			expense, err := store.InsertExpense(ctx, newExpense)
			if err != nil {
				return fmt.Errorf("failed to record expense: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Recorded %s against %s (#%d)",
				expense.Amount, category.Name, expense.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "expense date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	cmd.Flags().StringVar(&groupName, "group", "", "group the expense is shared with")
	cmd.Flags().StringVar(&paidBy, "paid-by", "", "group member who paid (requires --group)")

	return cmd
}

func listExpensesCmd() *cobra.Command {
	var (
		month        string
		categoryName string
		limit        int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			filter := service.ExpenseFilter{Limit: limit}

			if month != "" {
				period, err := model.ResolvePeriod(month)
				if err != nil {
					return err
				}
				filter.Start = &period.Start
				filter.End = &period.End
			}

			if categoryName != "" {
				category, err := store.GetCategoryByName(ctx, categoryName)
				if err != nil {
					return fmt.Errorf("failed to look up category: %w", err)
				}
				if category == nil {
					fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No category named %q.", categoryName)))
					return nil
				}
				filter.CategoryID = &category.ID
			}

			expenses, err := store.ListExpenses(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}

			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses found. Use 'tracker expense add' to record one."))
				return nil
			}

			names, err := categoryNames(ctx, store)
			if err != nil {
				return err
			}

			return report.WriteExpenses(os.Stdout, expenses, names)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "restrict to a month (YYYY-MM)")
	cmd.Flags().StringVar(&categoryName, "category", "", "restrict to a category")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows to show (0 = all)")

	return cmd
}

// categoryNames builds an ID-to-name index for table rendering.
func categoryNames(ctx context.Context, store service.Storage) (map[int64]string, error) {
	categories, err := store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}
