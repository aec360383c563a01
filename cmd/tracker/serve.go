package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/engine"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/httpapi"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API server",
		Long: `Serve the expense ledger over HTTP. The API mirrors the CLI: record
expenses, set budgets, and read reports and alerts as JSON.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if addr == "" {
				addr = viper.GetString("server.addr")
			}
			if addr == "" {
				addr = ":8080"
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			server := httpapi.NewServer(addr, store, engine.New(store), slog.Default())

			errChan := make(chan error, 1)
			go func() {
				errChan <- server.ListenAndServe()
			}()

			select {
			case err := <-errChan:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")

	return cmd
}
