package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rafaelalmeida/fatura-parser/internal/domain"
	"github.com/rafaelalmeida/fatura-parser/internal/money"
	"github.com/shopspring/decimal"
)

// ynabHeaders is the fixed column order of the ledger sink.
var ynabHeaders = []string{"Date", "Payee", "Memo", "Outflow", "Inflow"}

// Synthetic row payees.
const (
	payeeIOF     = "IOF Internacional"
	payeePayment = "Pagamento Fatura Anterior"
)

// Row is one rendered ledger line. Outflow and Inflow are mutually
// exclusive; the unused one stays an empty string, never zero.
type Row struct {
	Date    time.Time
	Payee   string
	Memo    string
	Outflow string
	Inflow  string
}

// YNABExporter renders a statement as a YNAB-importable CSV and accumulates
// the reconciliation checksum: current-period transactions plus IOF,
// excluding the prior-period settlement row.
type YNABExporter struct {
	// Stamp, when nonzero, is appended to every memo as the last fragment
	// ("exported:<RFC3339>"). The zero value leaves memos unstamped.
	Stamp time.Time

	// now supplies the effective billing month when the statement date is
	// unknown; tests pin it. Nil means time.Now.
	now func() time.Time
}

// Export writes the header and all rows to w and returns the checksum for
// caller-side reconciliation against the declared grand total.
func (e YNABExporter) Export(st *domain.Statement, w io.Writer) (decimal.Decimal, error) {
	rows, checksum := e.Rows(st)

	cw := csv.NewWriter(w)
	if err := cw.Write(ynabHeaders); err != nil {
		return decimal.Zero, fmt.Errorf("YNABExporter.Export: writing header: %w", err)
	}
	for _, r := range rows {
		record := []string{money.FormatDate(r.Date), r.Payee, r.Memo, r.Outflow, r.Inflow}
		if err := cw.Write(record); err != nil {
			return decimal.Zero, fmt.Errorf("YNABExporter.Export: writing row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return decimal.Zero, fmt.Errorf("YNABExporter.Export: flushing: %w", err)
	}
	return checksum, nil
}

// Rows renders the statement to ledger rows without touching a sink.
func (e YNABExporter) Rows(st *domain.Statement) ([]Row, decimal.Decimal) {
	effective := e.effectiveDate(st)
	checksum := decimal.Zero

	rows := make([]Row, 0, len(st.Transactions)+2)
	for _, tx := range st.Transactions {
		rows = append(rows, e.transactionRow(tx, effective))
		checksum = checksum.Add(tx.Amount)
	}

	if st.IOFInternational.IsPositive() {
		rows = append(rows, Row{
			Date:    effective,
			Payee:   payeeIOF,
			Memo:    e.stampMemo([]string{"iof"}),
			Outflow: st.IOFInternational.StringFixed(2),
		})
		checksum = checksum.Add(st.IOFInternational)
	}

	// Settlement of the prior period: rendered, but never part of the
	// current-period checksum.
	if st.PaymentMade.IsPositive() && !st.PaymentDate.IsZero() {
		rows = append(rows, Row{
			Date:   st.PaymentDate,
			Payee:  payeePayment,
			Memo:   e.stampMemo([]string{"payment"}),
			Inflow: st.PaymentMade.StringFixed(2),
		})
	}

	return rows, checksum
}

// effectiveDate is the billing-month date substituted for installment rows:
// the first day of the statement month, or of the current month when the
// statement date is unknown.
func (e YNABExporter) effectiveDate(st *domain.Statement) time.Time {
	base := st.StatementDate
	if base.IsZero() {
		if e.now != nil {
			base = e.now()
		} else {
			base = time.Now()
		}
	}
	return time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (e YNABExporter) transactionRow(tx domain.Transaction, effective time.Time) Row {
	date := tx.Date
	var fragments []string

	if tx.CardLastDigits != "" {
		fragments = append(fragments, "card:"+tx.CardLastDigits)
	}
	if tx.Kind == domain.KindInstallment {
		// The row lands on the billing month; the purchase date survives in
		// the memo.
		date = effective
		fragments = append(fragments, "orig:"+money.FormatDate(tx.Date))
		if tx.Installment != nil {
			fragments = append(fragments, fmt.Sprintf("parcela:%d/%d", tx.Installment.Current, tx.Installment.Total))
		}
	}
	if intl := tx.International; intl != nil {
		fragments = append(fragments, fmt.Sprintf("intl:%s%s@%s",
			intl.OriginalAmount.StringFixed(2), intl.Currency, intl.ExchangeRate.StringFixed(2)))
		if intl.City != "" {
			fragments = append(fragments, "city:"+intl.City)
		}
	}
	if tx.Location != "" {
		fragments = append(fragments, "loc:"+tx.Location)
	}
	if tx.Category != "" {
		fragments = append(fragments, "cat:"+tx.Category)
	}

	row := Row{
		Date:  date,
		Payee: tx.Description,
		Memo:  e.stampMemo(fragments),
	}
	switch {
	case tx.Amount.IsPositive():
		row.Outflow = tx.Amount.StringFixed(2)
	case tx.Amount.IsNegative():
		row.Inflow = tx.Amount.Abs().StringFixed(2)
	}
	return row
}

func (e YNABExporter) stampMemo(fragments []string) string {
	if !e.Stamp.IsZero() {
		fragments = append(fragments, "exported:"+e.Stamp.UTC().Format(time.RFC3339))
	}
	return strings.Join(fragments, "; ")
}
