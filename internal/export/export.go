// Package export renders a parsed statement into the supported sink
// formats: a YNAB-style ledger CSV with a reconciliation checksum, a plain
// CSV, and a full-fidelity JSON document.
package export

import (
	"fmt"
	"strings"
)

// Format is the closed set of export variants.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYNAB Format = "ynab"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatYNAB:
		return FormatYNAB, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("export.ParseFormat: unknown format %q (want csv, ynab, or json)", s)
}

// Extension returns the file extension for a format's output.
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".csv"
}

// DefaultOutputPath derives an output path from the input file name,
// e.g. "fatura.pdf" -> "fatura_parsed.json".
func DefaultOutputPath(input string, f Format) string {
	base := input
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base + "_parsed" + f.Extension()
}
