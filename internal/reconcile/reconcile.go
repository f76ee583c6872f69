// Package reconcile cross-checks the parsed ledger against the statement's
// self-reported total. A mismatch is never an error: it is reported as data,
// because known source-document inconsistencies produce benign, fixed
// discrepancies for a given input.
package reconcile

import (
	"fmt"

	"github.com/rafaelalmeida/fatura-parser/internal/domain"
	"github.com/shopspring/decimal"
)

// Class tags the outcome of a reconciliation check.
type Class string

const (
	// ClassMatch: transactions + IOF equal the declared grand total exactly.
	ClassMatch Class = "match"
	// ClassSignArtifact: the difference equals exactly twice one credit's
	// magnitude — the upstream text renderer detached that credit's sign.
	// Parsed amounts are never adjusted to force reconciliation.
	ClassSignArtifact Class = "sign_artifact"
	// ClassUnexplained: any other nonzero difference.
	ClassUnexplained Class = "unexplained"
)

// Report is the reconciliation result for one statement.
type Report struct {
	Declared   decimal.Decimal `json:"declared"`
	Calculated decimal.Decimal `json:"calculated"`
	IOF        decimal.Decimal `json:"iof"`
	// Diff = Declared - (Calculated + IOF).
	Diff  decimal.Decimal `json:"diff"`
	Class Class           `json:"class"`
}

// Matches reports whether the statement reconciled exactly.
func (r Report) Matches() bool { return r.Class == ClassMatch }

// String renders a one-line human-readable summary.
func (r Report) String() string {
	if r.Matches() {
		return fmt.Sprintf("reconciled: declared %s = transactions %s + iof %s",
			r.Declared.StringFixed(2), r.Calculated.StringFixed(2), r.IOF.StringFixed(2))
	}
	return fmt.Sprintf("discrepancy %s (%s): declared %s, transactions %s + iof %s",
		r.Diff.StringFixed(2), r.Class, r.Declared.StringFixed(2),
		r.Calculated.StringFixed(2), r.IOF.StringFixed(2))
}

// Check compares the statement's calculated total plus IOF against the
// declared grand total and classifies any difference.
func Check(st *domain.Statement) Report {
	calculated := st.CalculatedTotal()
	diff := st.TotalAmount.Sub(calculated.Add(st.IOFInternational))

	r := Report{
		Declared:   st.TotalAmount,
		Calculated: calculated,
		IOF:        st.IOFInternational,
		Diff:       diff,
	}
	switch {
	case diff.IsZero():
		r.Class = ClassMatch
	case isSignArtifact(st, diff):
		r.Class = ClassSignArtifact
	default:
		r.Class = ClassUnexplained
	}
	return r
}

// isSignArtifact reports whether the difference equals twice the magnitude
// of some single parsed credit, the signature of the upstream sign-detach
// rendering bug.
func isSignArtifact(st *domain.Statement, diff decimal.Decimal) bool {
	two := decimal.New(2, 0)
	target := diff.Abs()
	for _, tx := range st.Transactions {
		if tx.IsCredit() && tx.Amount.Abs().Mul(two).Equal(target) {
			return true
		}
	}
	return false
}
