package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/cli"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/engine"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reports to external destinations",
	}

	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Export the monthly budget comparison to Google Sheets",
		Long: `Export the budget-versus-actual view for a month to a Google Sheets
spreadsheet. Credentials come from GOOGLE_SHEETS_* environment
variables; either OAuth2 client credentials or a service account key.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			month = monthOrCurrent(month)

			config := sheets.DefaultConfig()
			if err := config.LoadFromEnv(); err != nil {
				return err
			}

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
				fmt.Println(cli.InfoStyle.Render("Nothing to export for " + month + "."))
				return nil
			}

			writer, err := sheets.NewWriter(ctx, config, slog.Default())
			if err != nil {
				return err
			}

			if err := writer.Write(ctx, month, rows); err != nil {
				return fmt.Errorf("failed to export report: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Exported %d categories for %s.", len(rows), month)))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to export (YYYY-MM, default current)")

	return cmd
}
