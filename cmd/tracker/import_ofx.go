package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/cli"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/common"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/ofx"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/service"
)

func init() {
	importOFXCmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import expenses from OFX/QFX files",
		Long: `Import expenses from OFX or QFX (Quicken) files exported from your bank.
Only outflows are imported; deposits and refunds are skipped. Entries
are deduplicated across files by their bank transaction ID.

Examples:
  # Import single file
  tracker import-ofx ~/Downloads/chase_jan_2024.qfx

  # Import all QFX files in a directory
  tracker import-ofx ~/Downloads/*.qfx --category food`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	importOFXCmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	importOFXCmd.Flags().StringP("category", "c", "Uncategorized", "Category to file imported expenses under")

	rootCmd.AddCommand(importOFXCmd)
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	categoryName, _ := cmd.Flags().GetString("category")
	ctx := cmd.Context()

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	slog.Info("Importing OFX files...",
		"file_count", len(allFiles),
		"dry_run", dryRun)

	var allEntries []ofx.StatementEntry
	seen := make(map[string]bool) // For deduplication by bank transaction ID

	parser := ofx.NewParser()

	for _, filePath := range allFiles {
		f, err := os.Open(filePath)
		if err != nil {
			slog.Error("Failed to open file",
				"file", filePath,
				"error", err)
			continue
		}

		entries, err := parser.ParseFile(ctx, f)
		f.Close()

		if err != nil {
			slog.Error("Failed to parse OFX file",
				"file", filePath,
				"error", err)
			continue
		}

		addedCount := 0
		for _, entry := range entries {
			key := entry.AccountID + "/" + entry.FITID
			if !seen[key] {
				seen[key] = true
				allEntries = append(allEntries, entry)
				addedCount++
			}
		}

		slog.Info("Processed file",
			"file", filepath.Base(filePath),
			"entries_found", len(entries),
			"added", addedCount,
			"duplicates", len(entries)-addedCount)
	}

	if len(allEntries) == 0 {
		slog.Warn("No expenses found in any file")
		return nil
	}

	if dryRun {
		for _, entry := range allEntries {
			fmt.Printf("%s  %10s  %s\n",
				entry.Date.Format("2006-01-02"),
				entry.Amount,
				entry.Description)
		}
		fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("Dry run complete - %d expenses, nothing saved.", len(allEntries))))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	category, err := store.GetOrCreateCategory(ctx, categoryName)
	if err != nil {
		return fmt.Errorf("failed to resolve category: %w", err)
	}

	bar := progressbar.NewOptions(len(allEntries),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing expenses..."),
	)

	imported := 0
	for _, entry := range allEntries {
		_, err := store.InsertExpense(ctx, service.NewExpense{
			Date:       entry.Date,
			Note:       entry.Description,
			Amount:     entry.Amount,
			CategoryID: category.ID,
		})
		if err != nil {
			slog.Error("Failed to save expense",
				"fitid", entry.FITID,
				"error", err)
			continue
		}
		imported++
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Println()

	common.LogInfo("Import complete", common.Fields{
		"imported": imported,
		"failed":   len(allEntries) - imported,
		"category": category.Name,
	})
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Imported %d expenses into %s.", imported, category.Name)))
	return nil
}
