package itau

import (
	"strings"

	"github.com/rafaelalmeida/fatura-parser/internal/domain"
	"github.com/rafaelalmeida/fatura-parser/internal/money"
	"github.com/rafaelalmeida/fatura-parser/internal/pdftext"
	"github.com/shopspring/decimal"
)

// pendingIntl accumulates one international transaction while its lines are
// being collected. The source layout spreads a single logical transaction
// across a header line (date, merchant, home-currency amount), a detail line
// (city, foreign amount, currency code) and a closing exchange-rate line.
type pendingIntl struct {
	tx         domain.Transaction
	city       string
	origAmount decimal.Decimal
	currency   string
	rate       decimal.Decimal
}

// flush finalizes the pending transaction into the statement. Partial data
// is better than dropped data: the transaction is recorded even when its
// detail line never arrived; the International block is attached only when
// its invariants (positive original amount and rate) hold.
func (pd *pendingIntl) flush(st *domain.Statement) {
	tx := pd.tx
	if pd.origAmount.IsPositive() && pd.currency != "" && pd.rate.IsPositive() {
		tx.International = &domain.International{
			OriginalAmount: pd.origAmount,
			Currency:       pd.currency,
			ExchangeRate:   pd.rate,
			City:           pd.city,
		}
	}
	st.Append(tx)
}

// walkInternational is the dedicated second pass: it re-walks every page
// whose text carries the international banner, column by column, running a
// separate small state machine that reassembles multi-line transactions.
func (p *Parser) walkInternational(src pdftext.Source, st *domain.Statement) {
	year := st.StatementYear(p.fallbackYear())

	for page := 1; page <= src.NumPages(); page++ {
		full, err := src.PageText(page)
		if err != nil || !strings.Contains(full, markerIntlSection) {
			continue
		}

		for _, region := range []pdftext.Region{leftColumn, rightColumn} {
			text, err := src.RegionText(page, region)
			if err != nil {
				p.log.Debug().Int("page", page).Err(err).Msg("intl column extraction failed")
				continue
			}
			if !strings.Contains(text, markerIntlSection) {
				continue
			}
			p.walkIntlColumn(text, year, st)
		}
	}
}

func (p *Parser) walkIntlColumn(text string, year int, st *domain.Statement) {
	lines := strings.Split(text, "\n")

	inSection := false
	var pending *pendingIntl

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if strings.Contains(line, markerIntlSection) {
			inSection = true
			if m := cardFinalPattern.FindStringSubmatch(line); m != nil {
				st.RegisterCard("", m[1])
			}
			continue
		}
		if !inSection {
			continue
		}

		// Section total: flush, but stay in the section — the IOF line
		// follows it.
		if strings.Contains(line, "Total transa") && strings.Contains(line, "inter") {
			if pending != nil {
				pending.flush(st)
				pending = nil
			}
			continue
		}

		// IOF is a tax total surfaced by the exporter as one synthetic row,
		// never a parsed transaction.
		if strings.Contains(line, "Repasse") && strings.Contains(line, "IOF") {
			if m := iofIntlPattern.FindStringSubmatch(line); m != nil {
				st.IOFInternational = money.ParseBRL(m[1])
			}
			continue
		}

		if strings.Contains(line, "Total lan") && strings.Contains(line, "inter") {
			inSection = false
			continue
		}
		if strings.Contains(line, "Total dos lan") {
			if pending != nil {
				pending.flush(st)
				pending = nil
			}
			inSection = false
			continue
		}

		// Card banners inside the section only feed the card registry; the
		// finalized transactions stay unattributed.
		if isCardHeader(line) {
			if holder, digits := cardHeaderParts(line); digits != "" {
				st.RegisterCard(holder, digits)
			}
			continue
		}

		// The exchange-rate line is the normal terminator of one
		// international transaction.
		if strings.Contains(line, "Dólar") && strings.Contains(line, "Conversão") {
			if pending != nil {
				if m := exchangeRatePattern.FindStringSubmatch(line); m != nil {
					pending.rate = money.ParseBRL(m[1])
				}
				pending.flush(st)
				pending = nil
			}
			continue
		}

		// A new header line flushes whatever was pending first.
		if dateMatch := datePattern.FindStringSubmatch(line); dateMatch != nil {
			if pending != nil {
				pending.flush(st)
				pending = nil
			}
			rest := strings.TrimSpace(line[len(dateMatch[0]):])
			m := amountPattern.FindStringSubmatchIndex(rest)
			if m == nil {
				continue
			}
			date, err := money.ParseDayMonth(dateMatch[1], year)
			if err != nil {
				continue
			}
			pending = &pendingIntl{tx: domain.Transaction{
				Date:        date,
				Description: strings.TrimSpace(rest[:m[0]]),
				Amount:      money.ParseBRL(rest[m[2]:m[3]]),
				// International transactions are not attributed to a card
				// line in the source layout.
				CardLastDigits: "",
				Kind:           domain.KindSinglePayment,
				PaymentMethod:  domain.PaymentOnline,
			}}
			continue
		}

		// Detail line: "CITY-TOKENS 36,00 USD 5,31" attaches foreign
		// amount, currency, and city without flushing.
		if pending != nil {
			if m := intlDetailsPattern.FindStringSubmatch(line); m != nil {
				pending.city = strings.TrimSpace(m[1])
				pending.origAmount = money.ParseBRL(m[2])
				pending.currency = m[3]
			}
		}
	}

	if pending != nil {
		pending.flush(st)
	}
}
