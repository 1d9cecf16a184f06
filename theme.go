package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rshep3087/finpal/config"
	"github.com/Rshep3087/finpal/ledger"
	"github.com/Rshep3087/finpal/statistics"
)

// Theme contains all the colors used throughout the application.
type Theme struct {
	Primary       lipgloss.Color
	Error         lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Muted         lipgloss.Color
	Income        lipgloss.Color
	Expense       lipgloss.Color
	Border        lipgloss.Color
	Background    lipgloss.Color
	Text          lipgloss.Color
	SecondaryText lipgloss.Color
}

// newTheme creates a Theme from config.Colors.
func newTheme(colors config.Colors) Theme {
	return Theme{
		Primary:       parseColor(colors.Primary, "#2A9D8F"),
		Error:         parseColor(colors.Error, "#E63946"),
		Success:       parseColor(colors.Success, "#2A9D8F"),
		Warning:       parseColor(colors.Warning, "#E9C46A"),
		Muted:         parseColor(colors.Muted, "#828282"),
		Income:        parseColor(colors.Income, "#2A9D8F"),
		Expense:       parseColor(colors.Expense, "#E76F51"),
		Border:        parseColor(colors.Border, "#264653"),
		Background:    parseColor(colors.Background, "#264653"),
		Text:          parseColor(colors.Text, "#FAFAFA"),
		SecondaryText: parseColor(colors.SecondaryText, "#888888"),
	}
}

// parseColor returns colorStr as a hex or ANSI color, or defaultColor when
// colorStr is empty.
func parseColor(colorStr, defaultColor string) lipgloss.Color {
	if colorStr == "" {
		return lipgloss.Color(defaultColor)
	}
	return lipgloss.Color(colorStr)
}

// statisticsColors maps the theme onto the statistics view.
func (t Theme) statisticsColors() statistics.Colors {
	return statistics.Colors{
		Primary: string(t.Primary),
		Income:  string(t.Income),
		Expense: string(t.Expense),
	}
}

// applyAppearance forces the light or dark palette. The system theme keeps
// whatever the terminal reports.
func applyAppearance(theme ledger.Theme, terminalDark bool) {
	switch theme {
	case ledger.LightTheme:
		lipgloss.SetHasDarkBackground(false)
	case ledger.DarkTheme:
		lipgloss.SetHasDarkBackground(true)
	default:
		lipgloss.SetHasDarkBackground(terminalDark)
	}
}

// nextTheme cycles light, dark, system.
func nextTheme(theme ledger.Theme) ledger.Theme {
	switch theme {
	case ledger.LightTheme:
		return ledger.DarkTheme
	case ledger.DarkTheme:
		return ledger.SystemTheme
	}
	return ledger.LightTheme
}
