package main

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rshep3087/finpal/overview"
)

type styles struct {
	docStyle          lipgloss.Style
	titleStyle        lipgloss.Style
	headingStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	notificationStyle lipgloss.Style
	mutedStyle        lipgloss.Style
	incomeStyle       lipgloss.Style
	expenseStyle      lipgloss.Style
	panelStyle        lipgloss.Style
	userBubbleStyle   lipgloss.Style
	aiBubbleStyle     lipgloss.Style
}

func createStyles(theme Theme) styles {
	return styles{
		docStyle: lipgloss.NewStyle().Margin(1, standardMargin),
		titleStyle: lipgloss.NewStyle().Foreground(
			lipgloss.AdaptiveColor{Light: "#000000", Dark: string(theme.Primary)},
		).Bold(true),
		headingStyle:      lipgloss.NewStyle().Bold(true),
		errorStyle:        lipgloss.NewStyle().Foreground(theme.Error).Bold(true),
		notificationStyle: lipgloss.NewStyle().Foreground(theme.Success).Italic(true),
		mutedStyle:        lipgloss.NewStyle().Foreground(theme.Muted),
		incomeStyle:       lipgloss.NewStyle().Foreground(theme.Income),
		expenseStyle:      lipgloss.NewStyle().Foreground(theme.Expense),
		panelStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, standardMargin),
		userBubbleStyle: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: string(theme.Text)}).
			Background(theme.Primary).
			Padding(0, 1),
		aiBubbleStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}

func createOverviewStyles(theme Theme) overview.Styles {
	return overview.Styles{
		IncomeStyle:   lipgloss.NewStyle().Foreground(theme.Income),
		SpentStyle:    lipgloss.NewStyle().Foreground(theme.Expense),
		WarningStyle:  lipgloss.NewStyle().Foreground(theme.Warning),
		TreeRootStyle: lipgloss.NewStyle().Foreground(theme.Muted),
		CategoryStyle: lipgloss.NewStyle().Foreground(theme.SecondaryText),
		GoalStyle:     lipgloss.NewStyle().Foreground(theme.Success),
		MutedStyle:    lipgloss.NewStyle().Foreground(theme.Muted),
		SummaryStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, standardMargin),
	}
}

func createHelpModel(theme Theme) help.Model {
	helpModel := help.New()
	helpModel.ShortSeparator = " + "
	helpModel.Styles = help.Styles{
		Ellipsis:       lipgloss.NewStyle().Foreground(theme.SecondaryText),
		ShortKey:       lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		ShortDesc:      lipgloss.NewStyle().Foreground(theme.Text),
		ShortSeparator: lipgloss.NewStyle().Foreground(theme.SecondaryText),
		FullKey:        lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		FullDesc:       lipgloss.NewStyle().Foreground(theme.Text),
		FullSeparator:  lipgloss.NewStyle().Foreground(theme.SecondaryText),
	}
	return helpModel
}
