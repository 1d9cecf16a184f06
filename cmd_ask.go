package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Rshep3087/finpal/assistant"
	"github.com/Rshep3087/finpal/ledger"
)

func newAskCmd(open ledgerOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the assistant about your finances",
		Long: `Ask the assistant a single question. The mock assistant answers from canned
replies; the anthropic assistant sees this month's summary, categories and goals.
Offline mode always uses the mock assistant.`,
		Example: `  finpal ask how much did I spend this month`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return fmt.Errorf("a question is required")
			}

			store, err := open(cmd.Context())
			if err != nil {
				return err
			}

			remote, err := newResponder(cfg, store)
			if err != nil {
				return err
			}
			ai := newAIAssistant(remote, assistant.NewSimulator(nil), store.Offline)

			ctx, cancel := context.WithTimeout(cmd.Context(), aiResponseTimeout)
			defer cancel()

			conv := assistant.NewConversation(store.Now)
			resp, err := conv.Ask(ctx, ai, question)
			if err != nil {
				return fmt.Errorf("assistant failed: %w", err)
			}
			log.Debug("assistant replied", "has_chart", resp.HasChart)

			fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
			if resp.HasChart {
				now := store.Now()
				monthly := ledger.MonthTransactions(store.Transactions(), now.Year(), now.Month(), now.Location())
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprintln(cmd.OutOrStdout(), spendingChart(monthly))
			}
			return nil
		},
	}

	return cmd
}
