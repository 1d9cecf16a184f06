package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Default export file names.
const (
	ExportFileName     = "my_financial_data.json"
	ExportXLSXFileName = "my_financial_data.xlsx"
)

// ExportJSON writes transactions as a JSON array. An empty collection is
// written as [].
func ExportJSON(w io.Writer, transactions []Transaction) error {
	if transactions == nil {
		transactions = []Transaction{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(transactions); err != nil {
		return fmt.Errorf("encoding transactions: %w", err)
	}
	return nil
}

const exportSheet = "Transactions"

var exportColumns = []string{"Date", "Description", "Category", "Type", "Amount", "Payment Method", "Location", "Tags"}

// ExportXLSX writes transactions to a spreadsheet with a single
// "Transactions" sheet.
func ExportXLSX(w io.Writer, transactions []Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, header := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, t := range transactions {
		row := []any{
			t.Date.Format("2006-01-02"),
			t.Description,
			t.Category,
			string(t.Type),
			t.Amount,
			t.PaymentMethod,
			t.Location,
			strings.Join(t.Tags, ", "),
		}
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", i+2, err)
			}
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 12)
	_ = f.SetColWidth(exportSheet, "B", "B", 32)
	_ = f.SetColWidth(exportSheet, "C", "H", 16)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
