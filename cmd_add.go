package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Rshep3087/finpal/capture"
	"github.com/Rshep3087/finpal/ledger"
	"github.com/Rshep3087/finpal/parse"
)

// Entry methods accepted by add --method.
const (
	manualMethod = "manual"
	voiceMethod  = "voice"
	cameraMethod = "camera"
)

// manualEntry holds the add flags used by the manual method.
type manualEntry struct {
	amount        string
	description   string
	category      string
	kind          string
	date          string
	paymentMethod string
	location      string
	tags          []string
}

// transaction validates the entry. Unlike the TUI form, bad input is
// reported instead of dropped.
func (e manualEntry) transaction(now time.Time) (ledger.Transaction, error) {
	amount, err := ledger.ParseAmount(e.amount)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("invalid amount %q: %w", e.amount, err)
	}

	kind := ledger.TransactionType(strings.ToLower(e.kind))
	if kind == "" {
		kind = ledger.Expense
	}
	if !kind.Valid() {
		return ledger.Transaction{}, fmt.Errorf("invalid type: %s (must be expense, income or transfer)", e.kind)
	}

	date, err := ledger.ParseDate(e.date, now.Location())
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", e.date)
	}
	if date.IsZero() {
		date = now
	}

	t := newTransaction(amount, strings.TrimSpace(e.description), strings.TrimSpace(e.category), kind, date)
	t.PaymentMethod = e.paymentMethod
	t.Location = e.location
	if len(e.tags) > 0 {
		t.Tags = e.tags
	}
	return t, nil
}

// addCommand encapsulates the dependencies for the add command.
type addCommand struct {
	open ledgerOpener
	fs   afero.Fs
}

func newAddCmd(open ledgerOpener, fsys afero.Fs) *cobra.Command {
	add := addCommand{open: open, fs: fsys}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record a transaction manually, from a voice recording or from a receipt photo.

The voice and camera methods read the configured microphone or camera file
(or --audio/--image) and save the recognised draft.`,
		Example: `  finpal add --amount 12.50 --description "Lunch" --category Dining
  finpal add --method voice --audio memo.wav
  finpal add --method camera --image receipt.jpg`,
		Args: cobra.NoArgs,
		RunE: add.run,
	}

	cmd.Flags().String("method", manualMethod, "Entry method: manual, voice or camera")
	cmd.Flags().String("amount", "", "Transaction amount (required for manual entry)")
	cmd.Flags().String("description", "", "What the money was for")
	cmd.Flags().String("category", ledger.UncategorizedCategory, "Category name")
	cmd.Flags().String("type", string(ledger.Expense), "Transaction type: expense, income or transfer")
	cmd.Flags().String("date", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().String("payment-method", "", "How it was paid")
	cmd.Flags().String("location", "", "Where it happened")
	cmd.Flags().StringSlice("tags", []string{}, "Tags (can be specified multiple times)")
	cmd.Flags().String("audio", "", "Audio file for the voice method (defaults to the configured microphone)")
	cmd.Flags().String("image", "", "Image file for the camera method (defaults to the configured camera)")
	addOutputFlag(cmd)

	return cmd
}

func (a *addCommand) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	outputFormat, err := validateOutputFormat(cmd)
	if err != nil {
		return err
	}

	method, _ := cmd.Flags().GetString("method")
	switch method {
	case manualMethod, voiceMethod, cameraMethod:
	default:
		return fmt.Errorf("invalid method: %s (must be %s, %s or %s)", method, manualMethod, voiceMethod, cameraMethod)
	}

	if method == manualMethod && !cmd.Flags().Changed("amount") {
		return fmt.Errorf("--amount is required for %s entry", manualMethod)
	}

	store, err := a.open(ctx)
	if err != nil {
		return err
	}

	var t ledger.Transaction
	switch method {
	case manualMethod:
		t, err = manualEntryFromFlags(cmd).transaction(store.Now())
	case voiceMethod:
		audio, _ := cmd.Flags().GetString("audio")
		t, err = a.fromVoice(ctx, store, firstNonEmpty(audio, cfg.Microphone))
	case cameraMethod:
		image, _ := cmd.Flags().GetString("image")
		t, err = a.fromReceipt(ctx, store, firstNonEmpty(image, cfg.Camera))
	}
	if err != nil {
		return err
	}

	saved := store.AddTransaction(ctx, t)
	log.Debug("transaction added", "id", saved.ID, "method", method)

	switch outputFormat {
	case jsonOutputFormat:
		return outputJSON(cmd.OutOrStdout(), saved)
	default:
		return outputTransactionsTable(cmd.OutOrStdout(), []ledger.Transaction{saved})
	}
}

func manualEntryFromFlags(cmd *cobra.Command) manualEntry {
	var e manualEntry
	e.amount, _ = cmd.Flags().GetString("amount")
	e.description, _ = cmd.Flags().GetString("description")
	e.category, _ = cmd.Flags().GetString("category")
	e.kind, _ = cmd.Flags().GetString("type")
	e.date, _ = cmd.Flags().GetString("date")
	e.paymentMethod, _ = cmd.Flags().GetString("payment-method")
	e.location, _ = cmd.Flags().GetString("location")
	e.tags, _ = cmd.Flags().GetStringSlice("tags")
	return e
}

func (a *addCommand) fromVoice(ctx context.Context, store *ledger.Store, path string) (ledger.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	session := capture.NewSession(newDevice(a.fs, capture.Microphone, path))
	transcript, t, err := recordVoice(ctx, session, parse.NewMockTranscriber(nil), parse.KeywordClassifier{Now: store.Now})
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("voice entry failed: %w", err)
	}

	log.Info("Heard", "transcript", transcript)
	return t, nil
}

func (a *addCommand) fromReceipt(ctx context.Context, store *ledger.Store, path string) (ledger.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	extractor := parse.NewMockReceiptExtractor(nil)
	extractor.Now = store.Now

	session := capture.NewSession(newDevice(a.fs, capture.Camera, path))
	t, err := scanReceipt(ctx, session, extractor)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("receipt scan failed: %w", err)
	}
	return t, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
