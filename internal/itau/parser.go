// Package itau parses Itaú credit-card fatura page text into a normalized
// statement. The engine is deterministic and single-threaded: a main pass
// walks each page's two columns collecting plain and installment
// transactions, and a dedicated second pass reassembles the multi-line
// international transactions the main pass diverts around.
package itau

import (
	"time"

	"github.com/rafaelalmeida/fatura-parser/internal/domain"
	"github.com/rafaelalmeida/fatura-parser/internal/pdftext"
	"github.com/rs/zerolog"
)

const issuerName = "Itaú"

// Parser parses one document per call; a Parser is reusable across
// documents and invocations do not interact.
type Parser struct {
	log zerolog.Logger

	// FallbackYear completes DD/MM dates when page one carries no statement
	// date. Zero means the current year at parse time.
	FallbackYear int
}

// New returns a parser logging through the given logger.
func New(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

func (p *Parser) fallbackYear() int {
	if p.FallbackYear != 0 {
		return p.FallbackYear
	}
	return time.Now().Year()
}

// ParseFile opens the PDF at path and parses it. A missing or unreadable
// file is the only fatal error class; everything past open degrades
// gracefully per column or line.
func (p *Parser) ParseFile(path string) (*domain.Statement, error) {
	doc, err := pdftext.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return p.Parse(doc, path), nil
}

// Parse runs the three passes over an already-open source: summary fields
// from page one, the column walk, then the international pass. Same input
// always yields the same statement in the same order.
func (p *Parser) Parse(src pdftext.Source, sourceName string) *domain.Statement {
	st := domain.NewStatement(sourceName, issuerName)

	if src.NumPages() >= 1 {
		if text, err := src.PageText(1); err == nil {
			parseSummary(text, st)
		} else {
			p.log.Debug().Err(err).Msg("summary page extraction failed")
		}
	}

	p.walkPages(src, st)
	p.walkInternational(src, st)

	p.log.Info().
		Str("source", sourceName).
		Int("transactions", len(st.Transactions)).
		Int("cards", len(st.Cards)).
		Str("calculated_total", st.CalculatedTotal().String()).
		Str("declared_total", st.TotalAmount.String()).
		Msg("statement parsed")

	return st
}
