package itau

import (
	"testing"

	"github.com/rafaelalmeida/fatura-parser/internal/domain"
	"github.com/rs/zerolog"
)

func walkIntl(t *testing.T, text string) *domain.Statement {
	t.Helper()
	st := domain.NewStatement("sample.pdf", issuerName)
	p := New(zerolog.Nop())
	p.walkIntlColumn(text, 2025, st)
	return st
}

func TestWalkIntl_HeaderWithoutDetailStillFlushed(t *testing.T) {
	// Partial data is better than dropped data: the detail line never
	// arrived, so the transaction is recorded without an International block.
	st := walkIntl(t, `Lançamentos internacionais
20/10 GITHUB INC 191,16
Dólar de Conversão R $ 5,31
Total dos lançamentos 191,16`)

	if len(st.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(st.Transactions))
	}
	tx := st.Transactions[0]
	if tx.International != nil {
		t.Error("no detail line: International block must be absent")
	}
	if tx.PaymentMethod != domain.PaymentOnline {
		t.Error("international pass output is always tagged online")
	}
}

func TestWalkIntl_NewHeaderFlushesPending(t *testing.T) {
	st := walkIntl(t, `Lançamentos internacionais
20/10 GITHUB INC 191,16
21/10 OPENAI 53,10
Dólar de Conversão R $ 5,31
Total dos lançamentos 244,26`)

	if len(st.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(st.Transactions))
	}
	if st.Transactions[0].Description != "GITHUB INC" {
		t.Errorf("first = %q", st.Transactions[0].Description)
	}
	if st.Transactions[1].Description != "OPENAI" {
		t.Errorf("second = %q", st.Transactions[1].Description)
	}
}

func TestWalkIntl_SectionTotalFlushesAndIOFFollows(t *testing.T) {
	st := walkIntl(t, `Lançamentos internacionais ( final 8001 )
20/10 GITHUB INC 191,16
SAN FRANCISCO 36,00 USD 5,31
Total transações inter. em R $ 191,16
Repasse de IOF em R $ 45,00
Total lançamentos inter. em R $ 236,16`)

	if len(st.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(st.Transactions))
	}
	// Flushed by the section total before any exchange-rate line: the rate
	// invariant cannot hold, so no International block is attached.
	if st.Transactions[0].International != nil {
		t.Error("rate never seen: International block must be absent")
	}
	if st.IOFInternational.String() != "45" {
		t.Errorf("iof = %s, want 45", st.IOFInternational)
	}
	if _, ok := st.Cards["8001"]; !ok {
		t.Error("card on the section banner must be registered")
	}
}

func TestWalkIntl_LinesOutsideSectionIgnored(t *testing.T) {
	st := walkIntl(t, `20/10 BEFORE SECTION 10,00
Lançamentos internacionais
Total dos lançamentos 0,00`)

	if len(st.Transactions) != 0 {
		t.Fatalf("got %d transactions, want 0", len(st.Transactions))
	}
}
