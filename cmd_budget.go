package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Rshep3087/finpal/format"
	"github.com/Rshep3087/finpal/ledger"
)

// budgetCommand encapsulates the dependencies for the budget commands.
type budgetCommand struct {
	open ledgerOpener
}

func newBudgetCmd(open ledgerOpener) *cobra.Command {
	b := budgetCommand{open: open}

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Budget commands",
		Long:  `Commands for viewing and adjusting category spending caps.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		Long:  `List budgets with their recorded spending.`,
		Args:  cobra.NoArgs,
		RunE:  b.list,
	}
	addOutputFlag(listCmd)

	setCmd := &cobra.Command{
		Use:     "set <categoryId> <amount>",
		Short:   "Set a budget amount",
		Long:    `Replace the spending cap of the budget for a category. Recorded spending is kept.`,
		Example: `  finpal budget set cat-1 450`,
		Args:    cobra.ExactArgs(2),
		RunE:    b.set,
	}

	cmd.AddCommand(listCmd, setCmd)
	return cmd
}

func (b *budgetCommand) list(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	store, err := b.open(cmd.Context())
	if err != nil {
		return err
	}

	budgets := store.Budgets()
	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), budgets)
	default:
		return outputBudgetsTable(cmd.OutOrStdout(), budgets)
	}
}

func (b *budgetCommand) set(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	categoryID := args[0]
	amount, err := ledger.ParseAmount(args[1])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}

	store, err := b.open(ctx)
	if err != nil {
		return err
	}

	if !store.UpdateBudget(ctx, categoryID, amount) {
		return fmt.Errorf("no budget for category %s", categoryID)
	}

	log.Infof("Budget for %s set to %s", categoryID, format.Currency(amount))
	return nil
}

// budgetRow renders b with its recorded usage.
func budgetRow(b ledger.Budget) []string {
	var pct float64
	if b.Amount > 0 {
		pct = b.Spent / b.Amount * 100
	}

	return []string{
		b.CategoryID,
		b.Category,
		format.Currency(b.Amount),
		format.Currency(b.Spent),
		format.Percentage(pct),
		string(b.Period),
	}
}

func outputBudgetsTable(w io.Writer, budgets []ledger.Budget) error {
	t := createStyledTable(
		"CATEGORY ID",
		"CATEGORY",
		"BUDGET",
		"SPENT",
		"USED",
		"PERIOD",
	)

	for _, b := range budgets {
		t.Row(budgetRow(b)...)
	}

	fmt.Fprintln(w, t)
	return nil
}
