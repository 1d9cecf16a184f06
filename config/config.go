package config

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Storage drivers and assistant backends accepted in Config.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"

	AssistantMock      = "mock"
	AssistantAnthropic = "anthropic"
)

// Config represents the application configuration structure.
type Config struct {
	// Debug enables debug logging
	Debug bool `toml:"debug"`
	// DataDir is where the ledger is persisted
	DataDir string `toml:"data_dir"`
	// Storage selects the persistence backend, "file" or "sqlite"
	Storage string `toml:"storage"`
	// Assistant selects the assistant backend, "mock" or "anthropic"
	Assistant string `toml:"assistant"`
	// AnthropicAPIKey is required when Assistant is "anthropic"
	AnthropicAPIKey string `toml:"anthropic_api_key"`
	// Microphone is an audio file used in place of a microphone
	Microphone string `toml:"microphone,omitempty"`
	// Camera is an image file used in place of a camera
	Camera string `toml:"camera,omitempty"`
	// Colors overrides the default color scheme
	Colors Colors `toml:"colors"`
}

// Colors are hex or ANSI color overrides. Empty values keep the default.
type Colors struct {
	Primary       string `toml:"primary,omitempty" mapstructure:"primary"`
	Error         string `toml:"error,omitempty" mapstructure:"error"`
	Success       string `toml:"success,omitempty" mapstructure:"success"`
	Warning       string `toml:"warning,omitempty" mapstructure:"warning"`
	Muted         string `toml:"muted,omitempty" mapstructure:"muted"`
	Income        string `toml:"income,omitempty" mapstructure:"income"`
	Expense       string `toml:"expense,omitempty" mapstructure:"expense"`
	Border        string `toml:"border,omitempty" mapstructure:"border"`
	Background    string `toml:"background,omitempty" mapstructure:"background"`
	Text          string `toml:"text,omitempty" mapstructure:"text"`
	SecondaryText string `toml:"secondary_text,omitempty" mapstructure:"secondary_text"`
}

// Preferences are the user settings persisted alongside the ledger.
type Preferences struct {
	Theme   string
	Offline bool
}

// Model represents the profile and settings view model.
type Model struct {
	configTable table.Model
}

// New creates a new profile view model.
func New() Model {
	configTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Setting", Width: 24},
			{Title: "Value", Width: 36},
			{Title: "Description", Width: 50},
		}),
	)

	tableStyle := table.DefaultStyles()
	tableStyle.Selected = tableStyle.Selected.
		Foreground(lipgloss.Color("#2A9D8F"))

	configTable.SetStyles(tableStyle)

	return Model{configTable: configTable}
}

// SetFocus sets the focus state of the settings table.
func (m *Model) SetFocus(focus bool) {
	if focus {
		m.configTable.Focus()
	} else {
		m.configTable.Blur()
	}
}

// SetSize sets the size of the settings table.
func (m *Model) SetSize(width, height int) {
	m.configTable.SetHeight(height)
	m.configTable.SetWidth(width)
}

// MaskSensitiveValue hides all but the first four characters of value.
func MaskSensitiveValue(value string) string {
	if value == "" {
		return "(not set)"
	}

	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}

	return value[:4] + strings.Repeat("*", len(value)-4)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Rows returns the preferences and settings as setting, value, description
// triples.
func Rows(config Config, prefs Preferences) [][]string {
	return append([][]string{
		{"Theme", prefs.Theme, "Appearance: light, dark or system"},
		{"Offline Mode", strconv.FormatBool(prefs.Offline), "Work without network features"},
	}, SettingRows(config)...)
}

// SettingRows returns the file and flag settings without the preferences.
func SettingRows(config Config) [][]string {
	return [][]string{
		{"Debug", strconv.FormatBool(config.Debug), "Enable debug logging"},
		{"Data Directory", config.DataDir, "Where the ledger is stored"},
		{"Storage", orDefault(config.Storage, StorageFile), "Persistence backend"},
		{"Assistant", orDefault(config.Assistant, AssistantMock), "Assistant backend"},
		{"Anthropic API Key", MaskSensitiveValue(config.AnthropicAPIKey), "Key for the anthropic assistant"},
		{"Microphone", orDefault(config.Microphone, "(placeholder)"), "Audio file used for voice entry"},
		{"Camera", orDefault(config.Camera, "(placeholder)"), "Image file used for receipt scanning"},
	}
}

// SetConfig sets the configuration and preferences shown by the view.
func (m *Model) SetConfig(config Config, prefs Preferences) {
	var rows []table.Row
	for _, r := range Rows(config, prefs) {
		rows = append(rows, table.Row(r))
	}
	m.configTable.SetRows(rows)
}

// Init initializes the profile view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles updates to the profile view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.configTable, cmd = m.configTable.Update(msg)
	return m, cmd
}

// View renders the profile view.
func (m Model) View() string {
	return m.configTable.View()
}
