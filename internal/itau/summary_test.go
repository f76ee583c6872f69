package itau

import (
	"testing"

	"github.com/rafaelalmeida/fatura-parser/internal/domain"
)

func TestParseSummary_FieldsAreIndependentlyOptional(t *testing.T) {
	st := domain.NewStatement("sample.pdf", issuerName)
	parseSummary("Vencimento : 20/11/2025", st)

	if st.DueDate.IsZero() {
		t.Error("due date should be set")
	}
	if !st.StatementDate.IsZero() {
		t.Error("statement date should stay zero")
	}
	if !st.TotalAmount.IsZero() {
		t.Error("total amount should stay zero")
	}
	if !st.PaymentDate.IsZero() || !st.PaymentMade.IsZero() {
		t.Error("payment fields should stay zero")
	}
}

func TestParseSummary_Empty(t *testing.T) {
	st := domain.NewStatement("sample.pdf", issuerName)
	parseSummary("", st)

	if len(st.Transactions) != 0 || !st.TotalAmount.IsZero() {
		t.Error("empty page one must leave all defaults")
	}
}

func TestParseSummary_PaymentLine(t *testing.T) {
	st := domain.NewStatement("sample.pdf", issuerName)
	parseSummary("Pagamento efetuado em 10/10/2025 - 27.579,80", st)

	if got := st.PaymentDate.Format("2006-01-02"); got != "2025-10-10" {
		t.Errorf("payment date = %s", got)
	}
	if st.PaymentMade.String() != "27579.8" {
		t.Errorf("payment made = %s", st.PaymentMade)
	}
}
