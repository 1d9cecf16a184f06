package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// exportCommand encapsulates the dependencies for the export command.
type exportCommand struct {
	open ledgerOpener
	fs   afero.Fs
}

func newExportCmd(open ledgerOpener, fsys afero.Fs) *cobra.Command {
	e := exportCommand{open: open, fs: fsys}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to a file",
		Long: `Export every transaction to a JSON file or an Excel workbook.

The JSON file is an indented array of transactions, named my_financial_data.json
by default.`,
		Example: `  finpal export
  finpal export --format xlsx --file 2025.xlsx`,
		Args: cobra.NoArgs,
		RunE: e.run,
	}

	cmd.Flags().String("format", exportFormatJSON, "Export format: json or xlsx")
	cmd.Flags().String("file", "", "Output file (defaults to my_financial_data.json or .xlsx)")

	return cmd
}

func (e *exportCommand) run(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)

	path, err := exportFileName(format)
	if err != nil {
		return err
	}
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		path = file
	}

	store, err := e.open(cmd.Context())
	if err != nil {
		return err
	}

	ts := store.Transactions()
	if err := exportTransactions(e.fs, path, format, ts); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(ts), path)
	return nil
}

// errClearCancelled is returned when the clear confirmation is declined.
var errClearCancelled = errors.New("clear cancelled")

func newClearCmd(open ledgerOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all data",
		Long: `Delete every transaction, budget, goal and preference. The next start
generates fresh sample data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				confirmed := false
				err := huh.NewConfirm().
					Title("Clear all data?").
					Description("This cannot be undone.").
					Affirmative("Clear").
					Negative("Cancel").
					Value(&confirmed).
					Run()
				if err != nil {
					return fmt.Errorf("confirmation failed (use --yes to skip it): %w", err)
				}
				if !confirmed {
					return errClearCancelled
				}
			}

			store, err := open(cmd.Context())
			if err != nil {
				return err
			}

			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear data: %w", err)
			}

			log.Info("All data has been cleared")
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
