// Package parse turns free text, receipt images and recorded speech into
// draft transactions. The implementations here are keyword and random
// stand-ins; real OCR or speech backends satisfy the same interfaces.
package parse

import (
	"context"
	"io"

	"github.com/Rshep3087/finpal/ledger"
)

// TextClassifier extracts a draft transaction from a sentence.
type TextClassifier interface {
	Classify(ctx context.Context, text string) (ledger.Transaction, error)
}

// ReceiptExtractor extracts a draft transaction from a receipt image.
type ReceiptExtractor interface {
	Extract(ctx context.Context, image io.Reader) (ledger.Transaction, error)
}

// SpeechTranscriber converts recorded audio into text.
type SpeechTranscriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (string, error)
}
