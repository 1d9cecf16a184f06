package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/Rshep3087/finpal/capture"
	"github.com/Rshep3087/finpal/format"
	"github.com/Rshep3087/finpal/ledger"
	"github.com/Rshep3087/finpal/parse"
)

// newDevice returns the file stand-in for kind, or a placeholder when no
// file is configured.
func newDevice(fsys afero.Fs, kind capture.Kind, path string) capture.Device {
	if path == "" {
		return capture.Placeholder(kind)
	}
	return capture.FileDevice(fsys, kind, path)
}

// recordVoice captures from the microphone, transcribes the recording and
// classifies the transcript. The stream is released before it returns.
func recordVoice(ctx context.Context, session *capture.Session, transcriber parse.SpeechTranscriber, classifier parse.TextClassifier) (string, ledger.Transaction, error) {
	var transcript string
	err := session.Capture(ctx, func(stream capture.Stream) error {
		var err error
		transcript, err = transcriber.Transcribe(ctx, stream)
		return err
	})
	if err != nil {
		return "", ledger.Transaction{}, err
	}

	t, err := classifier.Classify(ctx, transcript)
	if err != nil {
		return transcript, ledger.Transaction{}, fmt.Errorf("classifying transcript: %w", err)
	}
	return transcript, t, nil
}

// scanReceipt captures one frame from the camera and extracts a draft
// transaction from it. The stream is released before it returns.
func scanReceipt(ctx context.Context, session *capture.Session, extractor parse.ReceiptExtractor) (ledger.Transaction, error) {
	var t ledger.Transaction
	err := session.Capture(ctx, func(stream capture.Stream) error {
		var err error
		t, err = extractor.Extract(ctx, stream)
		return err
	})
	return t, err
}

type captureStatus int

const (
	captureIdle captureStatus = iota
	captureRunning
	captureReview
	captureFailed
)

// captureEntry is the state of the voice or receipt entry screen.
type captureEntry struct {
	session    *capture.Session
	status     captureStatus
	transcript string
	draft      ledger.Transaction
	err        error
}

func newCaptureEntry(device capture.Device) *captureEntry {
	return &captureEntry{session: capture.NewSession(device)}
}

func (c *captureEntry) reset() {
	c.status = captureIdle
	c.transcript = ""
	c.draft = ledger.Transaction{}
	c.err = nil
}

type captureResultMsg struct {
	kind       capture.Kind
	transcript string
	draft      ledger.Transaction
	err        error
}

type captureKeyMap struct {
	start   key.Binding
	save    key.Binding
	discard key.Binding
}

func newCaptureKeyMap() captureKeyMap {
	return captureKeyMap{
		start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		save: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter", "save"),
		),
		discard: key.NewBinding(
			key.WithKeys("n", "backspace"),
			key.WithHelp("n", "discard and retry"),
		),
	}
}

func (m *model) startCapture(entry *captureEntry, kind capture.Kind) tea.Cmd {
	entry.status = captureRunning
	entry.err = nil

	session, transcriber, classifier, extractor := entry.session, m.transcriber, m.classifier, m.extractor
	run := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), captureTimeout)
		defer cancel()

		if kind == capture.Microphone {
			transcript, t, err := recordVoice(ctx, session, transcriber, classifier)
			return captureResultMsg{kind: kind, transcript: transcript, draft: t, err: err}
		}

		t, err := scanReceipt(ctx, session, extractor)
		return captureResultMsg{kind: kind, draft: t, err: err}
	}

	return tea.Batch(run, m.loadingSpinner.Tick)
}

func (m *model) handleCaptureResult(msg captureResultMsg) tea.Cmd {
	entry := m.voice
	if msg.kind == capture.Camera {
		entry = m.camera
	}

	if msg.err != nil {
		entry.status = captureFailed
		entry.err = msg.err
		log.Error("capture failed", "kind", msg.kind, "error", msg.err)

		if errors.Is(msg.err, capture.ErrDeviceUnavailable) {
			return m.notify(fmt.Sprintf("Could not access the %s. Press enter to try again.", msg.kind))
		}
		return m.notify(fmt.Sprintf("Capture failed: %s", msg.err))
	}

	entry.status = captureReview
	entry.transcript = msg.transcript
	entry.draft = msg.draft
	return nil
}

func updateCaptureEntry(msg tea.Msg, m *model, entry *captureEntry, kind capture.Kind) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if entry.status != captureRunning {
			return nil
		}
		var cmd tea.Cmd
		m.loadingSpinner, cmd = m.loadingSpinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch entry.status {
		case captureIdle, captureFailed:
			if key.Matches(msg, m.captureKeys.start) {
				return m.startCapture(entry, kind)
			}

		case captureReview:
			switch {
			case key.Matches(msg, m.captureKeys.save):
				t := entry.draft
				entry.reset()
				m.sessionState = overviewState
				return tea.Batch(m.refresh(), m.addTransaction(t))

			case key.Matches(msg, m.captureKeys.discard):
				entry.reset()
				return nil
			}
		}
	}

	return nil
}

func captureEntryView(m model, entry *captureEntry, kind capture.Kind) string {
	var b strings.Builder

	title, prompt := "Voice Entry", "Press enter and describe your expense, e.g. \"Spent $45 on lunch at the Italian place\"."
	if kind == capture.Camera {
		title, prompt = "Scan Receipt", "Press enter to capture a photo of your receipt."
	}

	b.WriteString(m.styles.headingStyle.Render(title) + "\n\n")

	switch entry.status {
	case captureIdle:
		b.WriteString(prompt)
		b.WriteString("\n\n" + m.styles.mutedStyle.Render("enter start • esc back"))

	case captureRunning:
		if kind == capture.Microphone {
			fmt.Fprintf(&b, "%s Listening...", m.loadingSpinner.View())
		} else {
			fmt.Fprintf(&b, "%s Processing receipt...", m.loadingSpinner.View())
		}

	case captureFailed:
		b.WriteString(m.styles.errorStyle.Render(entry.err.Error()))
		b.WriteString("\n\n" + m.styles.mutedStyle.Render("enter retry • esc back"))

	case captureReview:
		if entry.transcript != "" {
			fmt.Fprintf(&b, "Heard: %q\n\n", entry.transcript)
		}
		b.WriteString(m.styles.panelStyle.Render(draftView(entry.draft)))
		b.WriteString("\n\n" + m.styles.mutedStyle.Render("enter save • n retry • esc back"))
	}

	return b.String()
}

func draftView(t ledger.Transaction) string {
	lines := []string{
		fmt.Sprintf("Amount:      %s", format.Currency(t.Amount)),
		fmt.Sprintf("Description: %s", t.Description),
		fmt.Sprintf("Category:    %s", t.Category),
		fmt.Sprintf("Type:        %s", t.Type),
		fmt.Sprintf("Date:        %s", format.LongDate(t.Date)),
	}
	if t.Location != "" {
		lines = append(lines, fmt.Sprintf("Location:    %s", t.Location))
	}
	return strings.Join(lines, "\n")
}
