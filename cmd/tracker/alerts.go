package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/cli"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/common"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/engine"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/notify"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/report"
)

func alertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Budget alerts",
	}

	cmd.AddCommand(checkAlertsCmd())

	return cmd
}

func checkAlertsCmd() *cobra.Command {
	var (
		month     string
		threshold float64
		doNotify  bool
		email     string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate budgets and report LOW or EXCEEDED categories",
		Long: `Evaluate every category with a budget for the given month. Categories
whose remaining budget is at or below the alert threshold come back LOW;
categories past their budget come back EXCEEDED.

With --notify the result is also emailed using the smtp settings from
the config file. Delivery problems are logged, never fatal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			month = monthOrCurrent(month)

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := []engine.Option{}
			if cmd.Flags().Changed("threshold") {
				opts = append(opts, engine.WithDefaultThreshold(threshold))
			}

			alerts, err := engine.New(store, opts...).Evaluate(ctx, month)
			if err != nil {
				return fmt.Errorf("failed to evaluate alerts: %w", err)
			}

			if len(alerts) == 0 {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("All budgets are healthy for %s.", month)))
				return nil
			}

			if err := report.WriteAlerts(os.Stdout, alerts); err != nil {
				return err
			}

			if doNotify {
				recipient := email
				if recipient == "" {
					recipient = viper.GetString("smtp.recipient")
				}
				if recipient == "" {
					slog.Warn("No alert recipient configured; skipping notification")
					return nil
				}

				notifier := notify.NewEmailNotifier(notify.SMTPConfig{
					Host:     viper.GetString("smtp.host"),
					Port:     viper.GetInt("smtp.port"),
					Username: viper.GetString("smtp.username"),
					Password: viper.GetString("smtp.password"),
					From:     viper.GetString("smtp.from"),
				})

				subject := fmt.Sprintf("Budget alerts for %s", month)
				body := report.RenderAlertBody(alerts)
				if err := notifier.Send(ctx, recipient, subject, body); err != nil {
					common.LogError(err, "Failed to send alert notification", common.Fields{
						"recipient": recipient,
						"month":     month,
					})
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to evaluate (YYYY-MM, default current)")
	cmd.Flags().Float64Var(&threshold, "threshold", engine.DefaultAlertThreshold, "LOW threshold as a fraction of budget left")
	cmd.Flags().BoolVar(&doNotify, "notify", false, "email the alerts")
	cmd.Flags().StringVar(&email, "email", "", "override the alert recipient")

	return cmd
}
