package itau

import (
	"strings"

	"github.com/rafaelalmeida/fatura-parser/internal/domain"
	"github.com/rafaelalmeida/fatura-parser/internal/money"
)

// lineClass is the classifier's verdict for one physical line.
type lineClass int

const (
	classNoise lineClass = iota
	classFutureBanner
	classIntlBanner
	classCardHeader
	classRegularBanner // "Lançamentos : compras e saques" table header
	classSubtotal
	classTotal
	classCandidate // starts with a DD/MM token; may still fail amount parsing
)

// classifyLine decides what a trimmed line is. The checks are ordered:
// banners take precedence over the noise vocabulary, and only lines opening
// with a date token survive as transaction candidates.
func classifyLine(line string) lineClass {
	if line == "" {
		return classNoise
	}
	if strings.Contains(strings.ToLower(line), markerFutureSection) ||
		strings.Contains(line, markerFutureSectionAlt) {
		return classFutureBanner
	}
	if strings.Contains(line, markerIntlSection) {
		return classIntlBanner
	}
	if isCardHeader(line) {
		return classCardHeader
	}
	if strings.Contains(line, markerTransactions) &&
		strings.Contains(line, "compras") && strings.Contains(line, "saques") {
		return classRegularBanner
	}
	for _, skip := range noiseVocabulary {
		if strings.Contains(line, skip) {
			return classNoise
		}
	}
	if strings.Contains(line, markerCardSubtotal) {
		return classSubtotal
	}
	if strings.HasPrefix(line, "Total") || strings.Contains(line, "LTotal") {
		return classTotal
	}
	if datePattern.MatchString(line) {
		return classCandidate
	}
	return classNoise
}

// isCardHeader reports whether a line is a card banner ("HOLDER - final
// NNNN"). The holder prefix must be upper case, which keeps subtotal lines
// mentioning "final" from matching.
func isCardHeader(line string) bool {
	return strings.Contains(strings.ToLower(line), "final") &&
		cardHeaderPattern.MatchString(line)
}

// cardHeaderParts extracts holder name and last four digits from a card
// banner line.
func cardHeaderParts(line string) (holder, lastDigits string) {
	m := cardHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return "", ""
	}
	return strings.TrimSpace(m[1]), m[2]
}

// parseCandidate turns a date-opening line into a transaction. It tries the
// installment shape first ("DESC 08/10 342,61") and falls back to a plain
// trailing amount. A description of one character or less is a false
// positive (section totals that happen to open with a date-shaped token).
// ok is false when the line is not a transaction after all.
func parseCandidate(line string, year int, card string) (tx domain.Transaction, ok bool) {
	dateMatch := datePattern.FindStringSubmatch(line)
	if dateMatch == nil {
		return domain.Transaction{}, false
	}
	rest := strings.TrimSpace(line[len(dateMatch[0]):])

	date, err := money.ParseDayMonth(dateMatch[1], year)
	if err != nil {
		return domain.Transaction{}, false
	}

	if m := installmentPattern.FindStringSubmatchIndex(rest); m != nil {
		groups := installmentPattern.FindStringSubmatch(rest)
		current := atoi2(groups[1])
		total := atoi2(groups[2])
		desc := strings.TrimSpace(rest[:m[0]])
		if len(desc) < 2 || current < 1 || current > total {
			return domain.Transaction{}, false
		}
		return domain.Transaction{
			Date:           date,
			Description:    desc,
			Amount:         money.ParseBRL(groups[3]),
			CardLastDigits: card,
			Kind:           domain.KindInstallment,
			Installment:    &domain.Installment{Current: current, Total: total},
			PaymentMethod:  domain.PaymentUnknown,
		}, true
	}

	m := amountPattern.FindStringSubmatchIndex(rest)
	if m == nil {
		return domain.Transaction{}, false
	}
	desc := strings.TrimSpace(rest[:m[0]])
	if len(desc) < 2 {
		return domain.Transaction{}, false
	}
	return domain.Transaction{
		Date:           date,
		Description:    desc,
		Amount:         money.ParseBRL(rest[m[2]:m[3]]),
		CardLastDigits: card,
		Kind:           domain.KindSinglePayment,
		PaymentMethod:  domain.PaymentUnknown,
	}, true
}

// annotate attaches a "CATEGORY . Location" lookahead line to a transaction.
// The location is uppercased; consumed reports whether the line matched and
// the caller should advance the cursor an extra step.
func annotate(tx domain.Transaction, next string) (domain.Transaction, bool) {
	m := categoryLocationPattern.FindStringSubmatch(strings.TrimSpace(next))
	if m == nil {
		return tx, false
	}
	tx.Category = strings.TrimSpace(m[1])
	tx.Location = strings.ToUpper(strings.TrimSpace(m[2]))
	return tx, true
}

func atoi2(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	return n
}
