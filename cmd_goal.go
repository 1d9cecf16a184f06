package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Rshep3087/finpal/format"
	"github.com/Rshep3087/finpal/ledger"
)

// goalCommand encapsulates the dependencies for the goal commands.
type goalCommand struct {
	open ledgerOpener
}

func newGoalCmd(open ledgerOpener) *cobra.Command {
	g := goalCommand{open: open}

	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Savings goal commands",
		Long:  `Commands for creating savings goals and tracking progress towards them.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		Args:  cobra.NoArgs,
		RunE:  g.list,
	}
	addOutputFlag(listCmd)

	addCmd := &cobra.Command{
		Use:     "add",
		Short:   "Create a goal",
		Example: `  finpal goal add --name "New Laptop" --target 1500 --deadline 2025-12-01`,
		Args:    cobra.NoArgs,
		RunE:    g.add,
	}
	addCmd.Flags().String("name", "", "Goal name (required)")
	addCmd.Flags().String("target", "", "Target amount (required)")
	addCmd.Flags().String("deadline", "", "Target date (YYYY-MM-DD)")
	addCmd.Flags().String("color", "", "Display color, e.g. #2A9D8F (defaults to the next palette color)")
	addCmd.MarkFlagRequired("name")
	addCmd.MarkFlagRequired("target")

	contributeCmd := &cobra.Command{
		Use:     "contribute <id> <amount>",
		Short:   "Add money to a goal",
		Long:    `Add money to a goal. A negative amount withdraws.`,
		Example: `  finpal goal contribute goal-1 50`,
		Args:    cobra.ExactArgs(2),
		RunE:    g.contribute,
	}

	cmd.AddCommand(listCmd, addCmd, contributeCmd)
	return cmd
}

func (g *goalCommand) list(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	store, err := g.open(cmd.Context())
	if err != nil {
		return err
	}

	goals := store.Goals()
	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), goals)
	default:
		return outputGoalsTable(cmd.OutOrStdout(), goals)
	}
}

func (g *goalCommand) add(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := g.open(ctx)
	if err != nil {
		return err
	}

	values := goalFormValues{}
	values.name, _ = cmd.Flags().GetString("name")
	values.target, _ = cmd.Flags().GetString("target")
	values.deadline, _ = cmd.Flags().GetString("deadline")
	values.color, _ = cmd.Flags().GetString("color")
	if values.color == "" {
		values.color = ledger.GoalColors[len(store.Goals())%len(ledger.GoalColors)]
	}

	if strings.TrimSpace(values.deadline) != "" {
		if _, err := ledger.ParseDate(values.deadline, store.Now().Location()); err != nil {
			return fmt.Errorf("invalid deadline: %s (expected YYYY-MM-DD)", values.deadline)
		}
	}

	goal, ok := values.goal(store.Now().Location())
	if !ok {
		return fmt.Errorf("a name and a numeric target are required (got %q, %q)", values.name, values.target)
	}

	saved := store.AddGoal(ctx, goal)
	log.Debug("goal added", "id", saved.ID)
	return outputGoalsTable(cmd.OutOrStdout(), []ledger.Goal{saved})
}

func (g *goalCommand) contribute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id := args[0]
	amount, err := ledger.ParseAmount(args[1])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}

	store, err := g.open(ctx)
	if err != nil {
		return err
	}

	if !store.UpdateGoalProgress(ctx, id, amount) {
		return fmt.Errorf("no goal with id %s", id)
	}

	goal, _ := store.Goal(id)
	log.Infof("%s: %s of %s saved (%s)",
		goal.Name,
		format.Currency(goal.CurrentAmount),
		format.Currency(goal.TargetAmount),
		format.Percentage(goal.Progress()),
	)
	return nil
}

func goalRow(g ledger.Goal) []string {
	deadline := "-"
	if g.Deadline != nil {
		deadline = g.Deadline.Format("2006-01-02")
	}

	return []string{
		g.ID,
		g.Name,
		format.Currency(g.CurrentAmount),
		format.Currency(g.TargetAmount),
		format.Percentage(g.Progress()),
		deadline,
	}
}

func outputGoalsTable(w io.Writer, goals []ledger.Goal) error {
	t := createStyledTable(
		"ID",
		"NAME",
		"SAVED",
		"TARGET",
		"PROGRESS",
		"DEADLINE",
	)

	for _, g := range goals {
		t.Row(goalRow(g)...)
	}

	fmt.Fprintln(w, t)
	return nil
}
