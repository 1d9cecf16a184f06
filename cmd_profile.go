package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Rshep3087/finpal/config"
	"github.com/Rshep3087/finpal/ledger"
)

// profileCommand encapsulates the dependencies for the profile commands.
type profileCommand struct {
	open ledgerOpener
}

func newProfileCmd(open ledgerOpener) *cobra.Command {
	p := profileCommand{open: open}

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Preference commands",
		Long:  `Commands for the preferences stored with your data: theme and offline mode.`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show preferences and settings",
		Args:  cobra.NoArgs,
		RunE:  p.show,
	}
	addOutputFlag(showCmd)

	themeCmd := &cobra.Command{
		Use:       "theme <light|dark|system>",
		Short:     "Set the theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(ledger.LightTheme), string(ledger.DarkTheme), string(ledger.SystemTheme)},
		RunE:      p.theme,
	}

	offlineCmd := &cobra.Command{
		Use:   "offline <true|false>",
		Short: "Turn offline mode on or off",
		Long:  `Turn offline mode on or off. While offline the assistant uses canned answers.`,
		Args:  cobra.ExactArgs(1),
		RunE:  p.offline,
	}

	cmd.AddCommand(showCmd, themeCmd, offlineCmd)
	return cmd
}

func (p *profileCommand) show(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	store, err := p.open(cmd.Context())
	if err != nil {
		return err
	}

	prefs := config.Preferences{Theme: string(store.Theme()), Offline: store.Offline()}

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), struct {
			Theme   string `json:"theme"`
			Offline bool   `json:"offline"`
		}{Theme: prefs.Theme, Offline: prefs.Offline})
	default:
		return outputProfileTable(cmd.OutOrStdout(), config.Rows(cfg, prefs))
	}
}

func (p *profileCommand) theme(cmd *cobra.Command, args []string) error {
	theme := ledger.Theme(strings.ToLower(args[0]))
	if !theme.Valid() {
		return fmt.Errorf("invalid theme: %s (must be light, dark or system)", args[0])
	}

	store, err := p.open(cmd.Context())
	if err != nil {
		return err
	}

	store.SetTheme(cmd.Context(), theme)
	log.Infof("Theme set to %s", theme)
	return nil
}

func (p *profileCommand) offline(cmd *cobra.Command, args []string) error {
	offline, err := strconv.ParseBool(args[0])
	if err != nil {
		return fmt.Errorf("invalid value: %s (must be true or false)", args[0])
	}

	store, err := p.open(cmd.Context())
	if err != nil {
		return err
	}

	store.SetOffline(cmd.Context(), offline)
	log.Infof("Offline mode set to %t", offline)
	return nil
}

func outputProfileTable(w io.Writer, rows [][]string) error {
	t := createStyledTable("SETTING", "VALUE", "DESCRIPTION")
	for _, r := range rows {
		t.Row(r...)
	}

	fmt.Fprintln(w, t)
	return nil
}
