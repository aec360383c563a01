package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/cli"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/engine"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Spending reports",
	}

	cmd.AddCommand(monthlyReportCmd())
	cmd.AddCommand(compareReportCmd())

	return cmd
}

func monthlyReportCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Per-category totals for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			month = monthOrCurrent(month)

			period, err := model.ResolvePeriod(month)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rows, err := engine.New(store).Compare(ctx, month)
			if err != nil {
				return fmt.Errorf("failed to build report: %w", err)
			}

			total, err := store.TotalSpent(ctx, period.Start, period.End)
			if err != nil {
				return fmt.Errorf("failed to total spending: %w", err)
			}

			fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("Spending for %s (total %s)", month, total)))
			return report.WriteComparison(os.Stdout, rows)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to report on (YYYY-MM, default current)")

	return cmd
}

func compareReportCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Budget versus actual for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			month = monthOrCurrent(month)

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rows, err := engine.New(store).Compare(ctx, month)
			if err != nil {
				return fmt.Errorf("failed to build comparison: %w", err)
			}

			if len(rows) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories yet. Record an expense or set a budget first."))
				return nil
			}

			return report.WriteComparison(os.Stdout, rows)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to compare (YYYY-MM, default current)")

	return cmd
}
