// Package export produces the outward-facing data formats: the CSV report
// and the JSON backup file.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"billetera/internal/core"
)

// ErrEmptyLedger is returned when there is nothing to export.
var ErrEmptyLedger = errors.New("no transactions to export")

// utf8BOM makes spreadsheet applications detect the encoding correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{"Fecha", "Descripción", "Categoría", "Tipo", "Monto"}

// WriteCSV renders the transaction report: a header, one row per
// transaction with the amount signed by kind, a blank line, and a final
// balance row. The output starts with a UTF-8 byte-order marker.
func WriteCSV(w io.Writer, txns []core.Transaction) error {
	if len(txns) == 0 {
		return ErrEmptyLedger
	}

	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write byte-order marker: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	var balance int64
	for _, t := range txns {
		signed := t.SignedCents()
		balance += signed

		label := "Gasto"
		if t.Kind == core.Income {
			label = "Ingreso"
		}

		row := []string{
			t.Date.String(),
			t.Description,
			string(t.Category.Normalize()),
			label,
			core.Money{Cents: signed}.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	// Blank separator line, then the summary row. The separator bypasses
	// the csv writer, which would quote a lone empty field.
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write separator: %w", err)
	}
	total := core.Money{Cents: balance}
	if err := cw.Write([]string{"", "", "", "BALANCE TOTAL", total.String()}); err != nil {
		return fmt.Errorf("write balance row: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
