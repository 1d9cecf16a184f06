package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Rshep3087/finpal/format"
	"github.com/Rshep3087/finpal/ledger"
	"github.com/Rshep3087/finpal/statistics"
)

// summaryOutput is the JSON form of the summary command.
type summaryOutput struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	ledger.Summary
}

func newSummaryCmd(open ledgerOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show this month's summary",
		Long:  `Show income, spending, net amount and budget usage for the current calendar month.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputFormat, err := validateOutputFormat(cmd)
			if err != nil {
				return err
			}

			store, err := open(cmd.Context())
			if err != nil {
				return err
			}

			var period Period
			period.setPeriod(store.Now())

			out := summaryOutput{
				StartDate: period.startDate(),
				EndDate:   period.endDate(),
				Summary:   store.Summary(),
			}

			switch outputFormat {
			case jsonOutputFormat:
				return outputJSON(cmd.OutOrStdout(), out)
			default:
				return outputSummaryTable(cmd.OutOrStdout(), period.String(), out.Summary)
			}
		},
	}

	addOutputFlag(cmd)
	return cmd
}

func summaryRows(s ledger.Summary) [][]string {
	return [][]string{
		{"Income", format.Currency(s.TotalIncome)},
		{"Spent", format.Currency(s.TotalSpent)},
		{"Net", format.Currency(s.NetAmount)},
		{"Budget used", format.Percentage(s.BudgetUsedPercentage)},
		{"Transactions", strconv.Itoa(s.TransactionCount)},
	}
}

func outputSummaryTable(w io.Writer, period string, s ledger.Summary) error {
	t := createStyledTable(period, "")
	for _, r := range summaryRows(s) {
		t.Row(r...)
	}

	fmt.Fprintln(w, t)
	return nil
}

func newStatsCmd(open ledgerOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show monthly statistics",
		Long: `Show income and expenses for a month, spending by category, budget usage
derived from that month's transactions, and the monthly trend for the year.`,
		Example: `  finpal stats --month 2025-02`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputFormat, err := validateOutputFormat(cmd)
			if err != nil {
				return err
			}

			store, err := open(cmd.Context())
			if err != nil {
				return err
			}

			month, _ := cmd.Flags().GetString("month")
			year, mon, err := statistics.ParseMonth(month, store.Now())
			if err != nil {
				return err
			}

			report := statistics.Compute(store.Transactions(), store.Budgets(), year, mon, store.Now())

			switch outputFormat {
			case jsonOutputFormat:
				return outputJSON(cmd.OutOrStdout(), report)
			default:
				return outputStatsTables(cmd.OutOrStdout(), report)
			}
		},
	}

	cmd.Flags().String("month", "", "Month to report (YYYY-MM, defaults to the current month)")
	addOutputFlag(cmd)
	return cmd
}

func outputStatsTables(w io.Writer, r statistics.Report) error {
	totals := createStyledTable(r.Title(), "")
	totals.Row("Income", format.Currency(r.Income))
	totals.Row("Expenses", format.Currency(r.Expenses))
	totals.Row("Net", format.Currency(r.Income-r.Expenses))
	fmt.Fprintln(w, totals)

	if len(r.Categories) > 0 {
		categories := createStyledTable("CATEGORY", "SPENT")
		for _, c := range r.Categories {
			categories.Row(c.Category, format.Currency(c.Amount))
		}
		fmt.Fprintln(w, categories)
	}

	if len(r.Budgets) > 0 {
		budgets := createStyledTable("BUDGET", "SPENT", "LIMIT", "USED")
		for _, u := range r.Budgets {
			budgets.Row(u.Budget.Category, format.Currency(u.Spent), format.Currency(u.Budget.Amount), format.Percentage(u.Percentage))
		}
		fmt.Fprintln(w, budgets)
	}

	trend := createStyledTable("MONTH", "INCOME", "EXPENSES")
	for _, m := range r.Trend {
		trend.Row(m.Month.String()[:3], format.CompactNumber(m.Income), format.CompactNumber(m.Expense))
	}
	fmt.Fprintln(w, trend)

	return nil
}
