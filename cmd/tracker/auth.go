package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/cli"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/common"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/sheets"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with external services",
	}

	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Open your browser to authenticate with Google
2. Save the refresh token for future use

You'll need to run this once before 'tracker export sheets' can use
OAuth2 credentials.`,
		RunE: runAuthSheets,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")

	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	clientID, _ := cmd.Flags().GetString("client-id")
	clientSecret, _ := cmd.Flags().GetString("client-secret")

	if clientID == "" {
		clientID = viper.GetString("sheets.client_id")
	}
	if clientSecret == "" {
		clientSecret = viper.GetString("sheets.client_secret")
	}
	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("%w: set sheets.client_id and sheets.client_secret in the config file or GOOGLE_SHEETS_CLIENT_ID and GOOGLE_SHEETS_CLIENT_SECRET in the environment", common.ErrMissingConfig)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	token, err := sheets.GetOrCreateToken(ctx, sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    filepath.Join(home, ".config", "tracker", "sheets-token.json"),
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if token.RefreshToken != "" {
		fmt.Println(cli.SuccessStyle.Render("Authenticated. Set GOOGLE_SHEETS_REFRESH_TOKEN to:"))
		fmt.Println(token.RefreshToken)
	} else {
		fmt.Println(cli.SuccessStyle.Render("Authenticated; token saved."))
	}

	return nil
}
