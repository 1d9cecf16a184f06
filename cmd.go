package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rshep3087/finpal/config"
	"github.com/Rshep3087/finpal/ledger"
	"github.com/Rshep3087/finpal/storage"
)

const (
	jsonOutputFormat  = "json"
	tableOutputFormat = "table"
)

// Global variables for configuration.
var (
	cfgFile       string
	debug         bool
	dataDir       string
	storageDriver string
	assistantName string
	apiKey        string
	microphone    string
	camera        string

	cfg     config.Config
	backend storage.Backend
)

// ledgerOpener loads the ledger for a command.
type ledgerOpener func(ctx context.Context) (*ledger.Store, error)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "A terminal personal finance tracker",
	Long: `Track expenses and income, set budgets and savings goals, and ask an assistant
about your spending, from a terminal UI or the command line.`,
	RunE: func(c *cobra.Command, _ []string) error {
		// Start TUI when no subcommands are provided
		return rootAction(c.Context(), cfg)
	},
}

// rootPersistentPreRunE loads the config, sets up logging and opens storage.
// It is attached to rootCmd in init to avoid an initialization cycle through
// needsStorage.
func rootPersistentPreRunE(cmd *cobra.Command, _ []string) error {
	cfg = currentConfig()

	// Setup logging
	log.SetLevel(log.InfoLevel)
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if !needsStorage(cmd) {
		return nil
	}

	var err error
	backend, err = storage.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	log.Debug("storage opened", "driver", cfg.Storage, "data_dir", cfg.DataDir)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = rootPersistentPreRunE

	cobra.OnInitialize(initConfig)
	cobra.OnFinalize(closeBackend)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.finpal.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory the ledger is stored in (default is the user config dir)")
	rootCmd.PersistentFlags().StringVar(&storageDriver, "storage", config.StorageFile, "storage backend: file or sqlite")
	rootCmd.PersistentFlags().StringVar(&assistantName, "assistant", config.AssistantMock, "assistant backend: mock or anthropic")
	rootCmd.PersistentFlags().StringVar(&apiKey, "anthropic-api-key", "", "the API key for the anthropic assistant")
	rootCmd.PersistentFlags().StringVar(&microphone, "microphone", "", "audio file used in place of a microphone")
	rootCmd.PersistentFlags().StringVar(&camera, "camera", "", "image file used in place of a camera")

	// Bind flags to viper
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("storage", rootCmd.PersistentFlags().Lookup("storage"))
	_ = viper.BindPFlag("assistant", rootCmd.PersistentFlags().Lookup("assistant"))
	_ = viper.BindPFlag("anthropic_api_key", rootCmd.PersistentFlags().Lookup("anthropic-api-key"))
	_ = viper.BindPFlag("microphone", rootCmd.PersistentFlags().Lookup("microphone"))
	_ = viper.BindPFlag("camera", rootCmd.PersistentFlags().Lookup("camera"))

	// Bind environment variables
	_ = viper.BindEnv("anthropic_api_key", "FINPAL_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")

	// Add subcommands
	fsys := afero.NewOsFs()
	rootCmd.AddCommand(newAddCmd(openLedger, fsys))
	rootCmd.AddCommand(newTransactionCmd(openLedger))
	rootCmd.AddCommand(newBudgetCmd(openLedger))
	rootCmd.AddCommand(newGoalCmd(openLedger))
	rootCmd.AddCommand(newSummaryCmd(openLedger))
	rootCmd.AddCommand(newStatsCmd(openLedger))
	rootCmd.AddCommand(newExportCmd(openLedger, fsys))
	rootCmd.AddCommand(newClearCmd(openLedger))
	rootCmd.AddCommand(newAskCmd(openLedger))
	rootCmd.AddCommand(newProfileCmd(openLedger))
	rootCmd.AddCommand(newConfigCmd(fsys))
	rootCmd.AddCommand(newServeCmd(openLedger))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A missing .env is the common case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("Error reading .env file", "error", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in multiple locations (in order of precedence)
		// Current directory (highest precedence)
		viper.AddConfigPath(".")
		viper.SetConfigName(appName)
		viper.SetConfigType("toml")

		// User config directory
		if configDir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(configDir, appName))
		}

		// User home directory
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(filepath.Join(home, ".config", appName))
		}

		// System-wide config directory (lowest precedence)
		viper.AddConfigPath(filepath.Join("/etc", appName))
	}

	viper.SetEnvPrefix(appName)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		log.Debug("Config file not found or error reading", "error", err)
	} else {
		log.Debug("Using config file", "file", viper.ConfigFileUsed())
	}

	// Bound flags take precedence inside viper when they were set.
	debug = viper.GetBool("debug")
	dataDir = viper.GetString("data_dir")
	storageDriver = viper.GetString("storage")
	assistantName = viper.GetString("assistant")
	apiKey = viper.GetString("anthropic_api_key")
	microphone = viper.GetString("microphone")
	camera = viper.GetString("camera")
}

// currentConfig collects the resolved settings.
func currentConfig() config.Config {
	c := config.Config{
		Debug:           debug,
		DataDir:         dataDir,
		Storage:         storageDriver,
		Assistant:       assistantName,
		AnthropicAPIKey: apiKey,
		Microphone:      microphone,
		Camera:          camera,
	}

	if err := viper.UnmarshalKey("colors", &c.Colors); err != nil {
		log.Warn("Ignoring invalid colors in config", "error", err)
	}

	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}

	return c
}

func defaultDataDir() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, appName)
	}
	return "." + appName
}

// needsStorage reports whether cmd reads or writes the ledger. The config
// commands only touch the config file.
func needsStorage(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" && c.Parent() == rootCmd {
			return false
		}
	}
	return true
}

func closeBackend() {
	if backend == nil {
		return
	}
	if err := backend.Close(); err != nil {
		log.Error("failed to close storage", "error", err)
	}
	backend = nil
}

// openLedger loads the ledger from the open backend. Store confirmations
// are logged.
func openLedger(ctx context.Context) (*ledger.Store, error) {
	if backend == nil {
		return nil, errors.New("storage is not open")
	}

	store := ledger.NewStore(backend,
		ledger.WithLogger(log.Default()),
		ledger.WithNotifier(func(message string) {
			log.Info(message)
		}),
	)

	if err := store.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	return store, nil
}

// Utility functions for output formatting.
func outputJSON(w io.Writer, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(w, string(jsonData))
	return nil
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", tableOutputFormat, "Output format: table or json")
}

// validateOutputFormat returns the --output flag after checking it.
func validateOutputFormat(cmd *cobra.Command) (string, error) {
	outputFormat, _ := cmd.Flags().GetString("output")

	validFormats := []string{tableOutputFormat, jsonOutputFormat}
	if !slices.Contains(validFormats, outputFormat) {
		return "", fmt.Errorf("invalid output format: %s (must be one of %v)", outputFormat, validFormats)
	}

	return outputFormat, nil
}

func createStyledTable(headers ...string) *table.Table {
	var (
		green     = lipgloss.Color("#2A9D8F")
		gray      = lipgloss.Color("245")
		lightGray = lipgloss.Color("241")

		headerStyle  = lipgloss.NewStyle().Foreground(green).Bold(true).Align(lipgloss.Center)
		cellStyle    = lipgloss.NewStyle().Padding(0, 1)
		oddRowStyle  = cellStyle.Foreground(gray)
		evenRowStyle = cellStyle.Foreground(lightGray)
	)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(green)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers(headers...)
}
