package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rshep3087/finpal/format"
	"github.com/Rshep3087/finpal/ledger"
)

// transactionListCommand encapsulates the dependencies for the transaction list command.
type transactionListCommand struct {
	open ledgerOpener
}

// newTransactionCmd creates the transaction command group.
func newTransactionCmd(open ledgerOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "Transaction commands",
		Long:  `Commands for browsing recorded transactions. Use "add" to record a new one.`,
	}

	listCmd := transactionListCommand{open: open}
	transactionListCmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long:  `List transactions in recorded order, optionally filtered by text, category and age.`,
		Args:  cobra.NoArgs,
		RunE:  listCmd.run,
	}
	transactionListCmd.Flags().String("search", "", "Only show transactions whose description, category or location contains this text")
	transactionListCmd.Flags().String("category", ledger.AllCategories, "Only show this category")
	transactionListCmd.Flags().String("range", string(ledger.AllTime), "Time range: all, week, month or quarter")
	addOutputFlag(transactionListCmd)

	cmd.AddCommand(transactionListCmd)
	return cmd
}

// parseTimeRange validates a --range value.
func parseTimeRange(s string) (ledger.TimeRange, error) {
	r := ledger.TimeRange(s)
	if !slices.Contains(timeRanges, r) {
		return "", fmt.Errorf("invalid range: %s (must be all, week, month or quarter)", s)
	}
	return r, nil
}

func (c *transactionListCommand) run(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	search, _ := cmd.Flags().GetString("search")
	category, _ := cmd.Flags().GetString("category")
	rangeStr, _ := cmd.Flags().GetString("range")

	timeRange, err := parseTimeRange(rangeStr)
	if err != nil {
		return err
	}

	store, err := c.open(cmd.Context())
	if err != nil {
		return err
	}

	ts := ledger.FilterTransactions(store.Transactions(), ledger.Filter{
		Search:   search,
		Category: category,
		Range:    timeRange,
	}, store.Now())
	if ts == nil {
		ts = []ledger.Transaction{}
	}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), ts)
	default:
		return outputTransactionsTable(cmd.OutOrStdout(), ts)
	}
}

// transactionRow renders t as a table row. Expenses are shown negative.
func transactionRow(t ledger.Transaction) []string {
	amount := format.Currency(t.Amount)
	if t.Type == ledger.Expense {
		amount = "-" + amount
	}

	return []string{
		t.Date.Format("2006-01-02"),
		t.Description,
		t.Category,
		string(t.Type),
		amount,
		dashIfEmpty(t.PaymentMethod),
		dashIfEmpty(t.Location),
		dashIfEmpty(strings.Join(t.Tags, ",")),
		t.ID,
	}
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func outputTransactionsTable(w io.Writer, ts []ledger.Transaction) error {
	t := createStyledTable(
		"DATE",
		"DESCRIPTION",
		"CATEGORY",
		"TYPE",
		"AMOUNT",
		"PAYMENT",
		"LOCATION",
		"TAGS",
		"ID",
	)

	for _, tx := range ts {
		t.Row(transactionRow(tx)...)
	}

	fmt.Fprintln(w, t)
	return nil
}
