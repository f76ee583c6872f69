package itau

import (
	"github.com/rafaelalmeida/fatura-parser/internal/domain"
	"github.com/rafaelalmeida/fatura-parser/internal/money"
)

// parseSummary scans page one's uncropped text for the six summary fields.
// Each field is independently optional; absence leaves the zero default and
// is not an error.
func parseSummary(text string, st *domain.Statement) {
	if m := totalFaturaPattern.FindStringSubmatch(text); m != nil {
		st.TotalAmount = money.ParseBRL(m[1])
	}
	if m := previousBalancePattern.FindStringSubmatch(text); m != nil {
		st.PreviousBalance = money.ParseBRL(m[1])
	}
	if m := paymentPattern.FindStringSubmatch(text); m != nil {
		if d, err := money.ParseFullDate(m[1]); err == nil {
			st.PaymentDate = d
		}
		st.PaymentMade = money.ParseBRL(m[2])
	}
	if m := currentChargesPattern.FindStringSubmatch(text); m != nil {
		st.CurrentCharges = money.ParseBRL(m[1])
	}
	if m := dueDatePattern.FindStringSubmatch(text); m != nil {
		if d, err := money.ParseFullDate(m[1]); err == nil {
			st.DueDate = d
		}
	}
	if m := statementDatePattern.FindStringSubmatch(text); m != nil {
		if d, err := money.ParseFullDate(m[1]); err == nil {
			st.StatementDate = d
		}
	}
}
