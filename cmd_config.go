package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Rshep3087/finpal/config"
)

// configCommand encapsulates the dependencies for the config commands.
type configCommand struct {
	fs afero.Fs
}

func newConfigCmd(fsys afero.Fs) *cobra.Command {
	c := configCommand{fs: fsys}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration file commands",
		Long: `Commands for the TOML configuration file.

Settings are read from --config, or the first of ./finpal.toml,
<user config dir>/finpal/config.toml, ~/.finpal.toml,
~/.config/finpal/config.toml and /etc/finpal/config.toml.
Environment variables prefixed FINPAL_ and flags take precedence.`,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Args:  cobra.NoArgs,
		RunE:  c.init,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	initCmd.Flags().String("path", "", "Where to write the file (default is <user config dir>/finpal/config.toml)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved settings",
		Args:  cobra.NoArgs,
		RunE:  c.show,
	}
	addOutputFlag(showCmd)

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func (c *configCommand) init(cmd *cobra.Command, _ []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path, _ := cmd.Flags().GetString("path")
	if path == "" {
		path = defaultConfigPath()
	}

	if err := writeConfigFile(c.fs, path, cfg, force); err != nil {
		return err
	}

	log.Info("Wrote config file", "path", path)
	return nil
}

func (c *configCommand) show(cmd *cobra.Command, _ []string) error {
	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	path := cfgFile
	if path == "" {
		path = findConfigFile(c.fs, getConfigFilePaths())
	}
	if path != "" {
		// Parse errors are reported here even though viper skipped the file.
		if _, err := loadConfigFromFile(c.fs, path); err != nil {
			return err
		}
	}

	switch outputFormat {
	case jsonOutputFormat:
		shown := cfg
		shown.AnthropicAPIKey = config.MaskSensitiveValue(shown.AnthropicAPIKey)
		return outputJSON(cmd.OutOrStdout(), struct {
			File   string        `json:"file"`
			Config config.Config `json:"config"`
		}{File: path, Config: shown})
	default:
		return outputConfigTable(cmd.OutOrStdout(), path, cfg)
	}
}

func outputConfigTable(w io.Writer, path string, c config.Config) error {
	if path == "" {
		path = "(none, using defaults)"
	}
	fmt.Fprintf(w, "Config file: %s\n", path)

	t := createStyledTable("SETTING", "VALUE", "DESCRIPTION")
	for _, r := range config.SettingRows(c) {
		t.Row(r...)
	}

	fmt.Fprintln(w, t)
	return nil
}
