package itau

import (
	"strings"

	"github.com/rafaelalmeida/fatura-parser/internal/domain"
	"github.com/rafaelalmeida/fatura-parser/internal/pdftext"
)

// Column boundaries in page points, calibrated to the two-column transaction
// table of the statement layout. The columns are visually independent and
// logically unrelated within one pass.
const (
	leftColumnStart  = 140
	leftColumnEnd    = 355
	rightColumnStart = 355
)

var (
	leftColumn  = pdftext.Region{MinX: leftColumnStart, MaxX: leftColumnEnd}
	rightColumn = pdftext.Region{MinX: rightColumnStart}
)

// walkPages runs the main pass: every page carrying the transaction-table
// markers is cropped into left and right columns, each fed through the
// classifier in isolation, left first. Section state survives column and
// page boundaries, since a card's block may legitimately span both.
func (p *Parser) walkPages(src pdftext.Source, st *domain.Statement) {
	year := st.StatementYear(p.fallbackYear())
	state := walkState{}

	for page := 1; page <= src.NumPages(); page++ {
		full, err := src.PageText(page)
		if err != nil {
			p.log.Debug().Int("page", page).Err(err).Msg("page text extraction failed")
			continue
		}
		// Summary-only and blank pages carry no transaction table.
		if !strings.Contains(full, markerTransactions) || !strings.Contains(full, markerTableHeader) {
			continue
		}

		for _, region := range []pdftext.Region{leftColumn, rightColumn} {
			text, err := src.RegionText(page, region)
			if err != nil {
				// A malformed crop yields an empty column, never an abort.
				p.log.Debug().Int("page", page).Err(err).Msg("column extraction failed")
				continue
			}
			state = p.walkColumn(text, year, state, st)
		}
	}
}

// walkColumn classifies one column's lines, appending plain and installment
// transactions and returning the advanced section state.
func (p *Parser) walkColumn(text string, year int, state walkState, st *domain.Statement) walkState {
	lines := strings.Split(text, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		class := classifyLine(line)
		if class == classCardHeader {
			if holder, digits := cardHeaderParts(line); digits != "" {
				st.RegisterCard(holder, digits)
			}
		}

		next, handled := state.transition(class, line)
		state = next
		if handled || state.skipping() {
			continue
		}

		tx, ok := parseCandidate(line, year, state.currentCard)
		if !ok {
			continue
		}
		if i+1 < len(lines) {
			if annotated, consumed := annotate(tx, lines[i+1]); consumed {
				tx = annotated
				i++
			}
		}
		st.Append(tx)
	}
	return state
}
