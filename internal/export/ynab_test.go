package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/rafaelalmeida/fatura-parser/internal/domain"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func sampleStatement() *domain.Statement {
	st := domain.NewStatement("fatura.pdf", "Itaú")
	st.StatementDate = date(2025, 11, 6)
	st.PaymentDate = date(2025, 10, 10)
	st.PaymentMade = d("27579.80")
	st.IOFInternational = d("45.00")
	st.TotalAmount = d("675.86")

	st.Append(domain.Transaction{
		Date: date(2025, 10, 16), Description: "REDENTOR QUIOSQUE PARK",
		Amount: d("125.95"), Category: "ALIMENTAÇÃO", Location: "BELO HORIZONT",
		CardLastDigits: "5415", Kind: domain.KindSinglePayment,
		PaymentMethod: domain.PaymentUnknown,
	})
	st.Append(domain.Transaction{
		Date: date(2025, 3, 26), Description: "AUTO JAPAN",
		Amount: d("342.61"), CardLastDigits: "5415",
		Kind:          domain.KindInstallment,
		Installment:   &domain.Installment{Current: 8, Total: 10},
		PaymentMethod: domain.PaymentUnknown,
	})
	st.Append(domain.Transaction{
		Date: date(2025, 10, 18), Description: "APPLE.COM/BILL",
		Amount: d("-28.86"), CardLastDigits: "5415",
		Kind: domain.KindSinglePayment, PaymentMethod: domain.PaymentUnknown,
	})
	st.Append(domain.Transaction{
		Date: date(2025, 10, 20), Description: "GITHUB INC",
		Amount: d("191.16"), Kind: domain.KindSinglePayment,
		International: &domain.International{
			OriginalAmount: d("36.00"), Currency: "USD",
			ExchangeRate: d("5.31"), City: "SAN FRANCISCO",
		},
		PaymentMethod: domain.PaymentOnline,
	})
	return st
}

func exportRows(t *testing.T, st *domain.Statement) ([]map[string]string, decimal.Decimal) {
	t.Helper()
	var buf bytes.Buffer
	checksum, err := YNABExporter{}.Export(st, &buf)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	r := csv.NewReader(&buf)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("no output")
	}
	headers := records[0]
	if strings.Join(headers, ",") != "Date,Payee,Memo,Outflow,Inflow" {
		t.Fatalf("headers = %v", headers)
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := map[string]string{}
		for i, h := range headers {
			row[h] = rec[i]
		}
		rows = append(rows, row)
	}
	return rows, checksum
}

func findRow(rows []map[string]string, payee string) map[string]string {
	for _, r := range rows {
		if r["Payee"] == payee {
			return r
		}
	}
	return nil
}

func TestExport_ChecksumMatchesDeclaredTotal(t *testing.T) {
	st := sampleStatement()
	_, checksum := exportRows(t, st)
	// Transactions + IOF, settlement excluded: 630.86 + 45.00 = 675.86.
	if !checksum.Equal(st.TotalAmount) {
		t.Errorf("checksum = %s, declared = %s", checksum, st.TotalAmount)
	}
}

func TestExport_RowCount(t *testing.T) {
	rows, _ := exportRows(t, sampleStatement())
	// 4 transactions + IOF + payment.
	if len(rows) != 6 {
		t.Fatalf("got %d rows, want 6", len(rows))
	}
}

func TestExport_InstallmentEffectiveDate(t *testing.T) {
	rows, _ := exportRows(t, sampleStatement())
	row := findRow(rows, "AUTO JAPAN")
	if row == nil {
		t.Fatal("AUTO JAPAN row missing")
	}
	if row["Date"] != "01/11/2025" {
		t.Errorf("date = %s, want first of statement month 01/11/2025", row["Date"])
	}
	for _, frag := range []string{"card:5415", "orig:26/03/2025", "parcela:8/10"} {
		if !strings.Contains(row["Memo"], frag) {
			t.Errorf("memo %q missing fragment %q", row["Memo"], frag)
		}
	}
	if row["Outflow"] != "342.61" {
		t.Errorf("outflow = %s", row["Outflow"])
	}
}

func TestExport_PlainTransactionKeepsPurchaseDate(t *testing.T) {
	rows, _ := exportRows(t, sampleStatement())
	row := findRow(rows, "REDENTOR QUIOSQUE PARK")
	if row == nil {
		t.Fatal("row missing")
	}
	if row["Date"] != "16/10/2025" {
		t.Errorf("date = %s, want 16/10/2025", row["Date"])
	}
	if !strings.Contains(row["Memo"], "loc:BELO HORIZONT") || !strings.Contains(row["Memo"], "cat:ALIMENTAÇÃO") {
		t.Errorf("memo = %q", row["Memo"])
	}
}

func TestExport_CreditAsInflow(t *testing.T) {
	rows, _ := exportRows(t, sampleStatement())
	row := findRow(rows, "APPLE.COM/BILL")
	if row == nil {
		t.Fatal("row missing")
	}
	if row["Inflow"] != "28.86" || row["Outflow"] != "" {
		t.Errorf("inflow = %q, outflow = %q", row["Inflow"], row["Outflow"])
	}
}

func TestExport_InternationalMemo(t *testing.T) {
	rows, _ := exportRows(t, sampleStatement())
	row := findRow(rows, "GITHUB INC")
	if row == nil {
		t.Fatal("row missing")
	}
	if !strings.Contains(row["Memo"], "intl:36.00USD@5.31") {
		t.Errorf("memo = %q, want intl fragment", row["Memo"])
	}
	if !strings.Contains(row["Memo"], "city:SAN FRANCISCO") {
		t.Errorf("memo = %q, want city fragment", row["Memo"])
	}
	if strings.Contains(row["Memo"], "card:") {
		t.Error("international rows carry no card fragment")
	}
}

func TestExport_IOFSyntheticRow(t *testing.T) {
	rows, _ := exportRows(t, sampleStatement())
	row := findRow(rows, "IOF Internacional")
	if row == nil {
		t.Fatal("IOF row missing")
	}
	if row["Date"] != "01/11/2025" {
		t.Errorf("date = %s, want 01/11/2025", row["Date"])
	}
	if row["Outflow"] != "45.00" || row["Inflow"] != "" {
		t.Errorf("outflow = %q, inflow = %q", row["Outflow"], row["Inflow"])
	}
	if row["Memo"] != "iof" {
		t.Errorf("memo = %q, want iof", row["Memo"])
	}
}

func TestExport_PaymentRowExcludedFromChecksum(t *testing.T) {
	rows, checksum := exportRows(t, sampleStatement())
	row := findRow(rows, "Pagamento Fatura Anterior")
	if row == nil {
		t.Fatal("payment row missing")
	}
	if row["Date"] != "10/10/2025" {
		t.Errorf("date = %s, want 10/10/2025", row["Date"])
	}
	if row["Inflow"] != "27579.80" || row["Outflow"] != "" {
		t.Errorf("inflow = %q, outflow = %q", row["Inflow"], row["Outflow"])
	}
	if row["Memo"] != "payment" {
		t.Errorf("memo = %q, want payment", row["Memo"])
	}
	if checksum.Equal(d("675.86").Add(d("27579.80"))) {
		t.Error("settlement must not be part of the checksum")
	}
}

func TestExport_EmptyStatement(t *testing.T) {
	st := domain.NewStatement("empty.pdf", "Itaú")

	var buf bytes.Buffer
	checksum, err := YNABExporter{}.Export(st, &buf)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !checksum.IsZero() {
		t.Errorf("checksum = %s, want 0", checksum)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "Date,") {
		t.Errorf("expected only the header row, got %q", buf.String())
	}
}

func TestExport_NoStatementDateUsesCurrentMonth(t *testing.T) {
	st := domain.NewStatement("fatura.pdf", "Itaú")
	st.Append(domain.Transaction{
		Date: date(2025, 3, 26), Description: "AUTO JAPAN", Amount: d("342.61"),
		Kind:        domain.KindInstallment,
		Installment: &domain.Installment{Current: 8, Total: 10},
	})

	e := YNABExporter{now: func() time.Time { return date(2026, 2, 14) }}
	rows, _ := e.Rows(st)
	if got := rows[0].Date; !got.Equal(date(2026, 2, 1)) {
		t.Errorf("effective date = %v, want 2026-02-01", got)
	}
}

func TestExport_StampAppendsTimestampFragment(t *testing.T) {
	st := sampleStatement()
	stamp := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	rows, _ := YNABExporter{Stamp: stamp}.Rows(st)

	for _, r := range rows {
		if !strings.HasSuffix(r.Memo, "exported:2026-08-25T12:00:00Z") {
			t.Errorf("memo %q missing stamp suffix", r.Memo)
		}
	}
}
