package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rafaelalmeida/fatura-parser/internal/domain"
)

// JSONExporter writes the full-fidelity serialization: every statement and
// transaction field, nested installment/international/card structures
// included. Currency values render as exact decimal strings and dates as
// ISO 8601 (both come from the domain types' marshalers).
type JSONExporter struct{}

// Export writes the statement to w as indented JSON.
func (JSONExporter) Export(st *domain.Statement, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(st); err != nil {
		return fmt.Errorf("JSONExporter.Export: %w", err)
	}
	return nil
}

// ReadJSON loads a statement back from its full-fidelity serialization.
func ReadJSON(r io.Reader) (*domain.Statement, error) {
	var st domain.Statement
	if err := json.NewDecoder(r).Decode(&st); err != nil {
		return nil, fmt.Errorf("export.ReadJSON: %w", err)
	}
	return &st, nil
}
