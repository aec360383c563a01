package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/cli"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/common"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/report"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/service"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage category budgets",
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(listBudgetsCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	var (
		month     string
		threshold float64
	)

	cmd := &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set a budget for a category",
		Long: `Set a budget for a category. Without --month the budget is standing
and applies to every month that has no month-specific budget.

Examples:
  tracker budget set food 300
  tracker budget set food 450 --month 2024-12
  tracker budget set travel 200 --alert-threshold 0.2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := model.NewMoney(args[1])
			if err != nil {
				return common.NewUserError(fmt.Sprintf("invalid amount %q", args[1]), err)
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

			upsert := service.BudgetUpsert{
				Amount:     amount,
				CategoryID: category.ID,
			}
			if month != "" {
				upsert.Month = &month
			}
			if cmd.Flags().Changed("alert-threshold") {
				upsert.AlertThreshold = &threshold
			}

			budget, err := store.UpsertBudget(ctx, upsert)
			if err != nil {
				return fmt.Errorf("failed to save budget: %w", err)
			}

			scope := "every month"
			if budget.Month != nil {
				scope = *budget.Month
			}
			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Budget for %s set to %s (%s)",
				category.Name, budget.Amount, scope)))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month the budget applies to (YYYY-MM, default standing)")
	cmd.Flags().Float64Var(&threshold, "alert-threshold", 0, "alert threshold as a fraction of budget left (0-1)")

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all budgets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			budgets, err := store.ListBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to list budgets: %w", err)
			}

			if len(budgets) == 0 {
				fmt.Println(cli.InfoStyle.Render("No budgets set. Use 'tracker budget set' to create one."))
				return nil
			}

			names, err := categoryNames(ctx, store)
			if err != nil {
				return err
			}

			return report.WriteBudgets(os.Stdout, budgets, names)
		},
	}
}
