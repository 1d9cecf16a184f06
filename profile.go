package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/Rshep3087/finpal/ledger"
)

const (
	exportFormatJSON = "json"
	exportFormatXLSX = "xlsx"
)

type profileKeyMap struct {
	theme      key.Binding
	offline    key.Binding
	exportJSON key.Binding
	exportXLSX key.Binding
	clear      key.Binding
}

func newProfileKeyMap() profileKeyMap {
	return profileKeyMap{
		theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "cycle theme"),
		),
		offline: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "toggle offline"),
		),
		exportJSON: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export json"),
		),
		exportXLSX: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "export xlsx"),
		),
		clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all data"),
		),
	}
}

func (k profileKeyMap) bindings() []key.Binding {
	return []key.Binding{k.theme, k.offline, k.exportJSON, k.exportXLSX, k.clear}
}

// exportFileName returns the default file name for format.
func exportFileName(format string) (string, error) {
	switch format {
	case "", exportFormatJSON:
		return ledger.ExportFileName, nil
	case exportFormatXLSX:
		return ledger.ExportXLSXFileName, nil
	}
	return "", fmt.Errorf("unknown export format: %s (must be %s or %s)", format, exportFormatJSON, exportFormatXLSX)
}

// exportTransactions writes transactions to path in format.
func exportTransactions(fsys afero.Fs, path, format string, transactions []ledger.Transaction) error {
	write := ledger.ExportJSON
	if format == exportFormatXLSX {
		write = ledger.ExportXLSX
	}

	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(f, transactions); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (m *model) exportCmd(format string) tea.Cmd {
	fsys, ts := m.fs, m.store.Transactions()
	return func() tea.Msg {
		path, err := exportFileName(format)
		if err != nil {
			return exportedMsg{err: err}
		}

		err = exportTransactions(fsys, path, format, ts)
		return exportedMsg{path: path, count: len(ts), err: err}
	}
}

func newClearForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Clear all data?").
				Description("Every transaction, budget, goal and setting is removed. Sample data is generated again.").
				Affirmative("Clear").
				Negative("Cancel"),
		),
	)
}

func (m *model) clearCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		return clearedMsg{err: store.Clear(ctx)}
	}
}

func updateProfile(msg tea.Msg, m *model) tea.Cmd {
	if formActive(m.clearForm) {
		form, cmd := m.clearForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.clearForm = f
		}

		if m.clearForm.State == huh.StateCompleted && m.clearForm.GetBool("confirm") {
			return m.clearCmd()
		}
		return cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.profileKeys.theme):
			ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			defer cancel()

			theme := nextTheme(m.store.Theme())
			m.store.SetTheme(ctx, theme)
			applyAppearance(theme, m.terminalDark)
			log.Debug("theme changed", "theme", theme)
			return tea.Batch(m.refresh(), m.notify(fmt.Sprintf("Theme set to %s", theme)))

		case key.Matches(msg, m.profileKeys.offline):
			ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			defer cancel()

			offline := !m.store.Offline()
			m.store.SetOffline(ctx, offline)
			text := "Offline mode off"
			if offline {
				text = "Offline mode on. The assistant uses canned answers."
			}
			return tea.Batch(m.refresh(), m.notify(text))

		case key.Matches(msg, m.profileKeys.exportJSON):
			return m.exportCmd(exportFormatJSON)

		case key.Matches(msg, m.profileKeys.exportXLSX):
			return m.exportCmd(exportFormatXLSX)

		case key.Matches(msg, m.profileKeys.clear):
			m.clearForm = newClearForm()
			return tea.Batch(m.clearForm.Init(), tea.WindowSize())
		}
	}

	var cmd tea.Cmd
	m.configView, cmd = m.configView.Update(msg)
	return cmd
}

func profileView(m model) string {
	if formActive(m.clearForm) {
		return m.clearForm.View()
	}

	help := make([]string, 0, len(m.profileKeys.bindings()))
	for _, b := range m.profileKeys.bindings() {
		help = append(help, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}

	return m.configView.View() + "\n\n" + m.styles.mutedStyle.Render(strings.Join(help, " • "))
}
