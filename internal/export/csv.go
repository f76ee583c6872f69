package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rafaelalmeida/fatura-parser/internal/domain"
)

// CSVExporter writes the plain transaction CSV: one row per transaction,
// ISO dates, exact decimal amounts.
type CSVExporter struct{}

var csvHeaders = []string{"date", "description", "amount", "category"}

// Export writes the statement's transactions to w.
func (CSVExporter) Export(st *domain.Statement, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("CSVExporter.Export: writing header: %w", err)
	}
	for _, tx := range st.Transactions {
		record := []string{
			tx.Date.Format("2006-01-02"),
			tx.Description,
			tx.Amount.String(),
			tx.Category,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("CSVExporter.Export: writing row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("CSVExporter.Export: flushing: %w", err)
	}
	return nil
}
