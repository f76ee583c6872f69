package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the closed set of transaction variants a fatura can
// contain. International purchases are plain single-payment transactions
// carrying an International block; they are never presented as installments.
type TransactionKind string

const (
	KindSinglePayment TransactionKind = "a_vista"
	KindInstallment   TransactionKind = "parcelada"
)

// PaymentMethod classifies how a transaction was made. The statement layout
// only exposes this indirectly: international purchases carry no card line,
// so they are tagged online; everything else stays unknown.
type PaymentMethod string

const (
	PaymentUnknown PaymentMethod = "unknown"
	PaymentOnline  PaymentMethod = "online"
)

// Installment identifies one share of a purchase billed across periods,
// e.g. 8/10. Current is 1-based and never exceeds Total.
type Installment struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// International holds the foreign-currency details of a purchase converted
// into the statement's home currency.
type International struct {
	OriginalAmount decimal.Decimal `json:"original_amount"`
	Currency       string          `json:"currency"`
	ExchangeRate   decimal.Decimal `json:"exchange_rate"`
	City           string          `json:"city,omitempty"`
}

// Card describes one physical card appearing on the statement.
type Card struct {
	Holder     string `json:"holder,omitempty"`
	LastDigits string `json:"last_digits"`
}

// Transaction is one purchase, credit, or reversal line from the statement.
// Amount is signed in the home currency: positive = charge, negative =
// credit/refund. Date is the purchase date; for installments it is the
// original purchase date, not the billing date.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`

	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`

	// CardLastDigits is empty for international transactions, which the
	// statement does not attribute to a specific card line.
	CardLastDigits string `json:"card_last_digits,omitempty"`

	Kind          TransactionKind `json:"kind"`
	Installment   *Installment    `json:"installment,omitempty"`
	International *International  `json:"international,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

// IsCredit reports whether the transaction is a credit/refund.
func (t Transaction) IsCredit() bool {
	return t.Amount.IsNegative()
}

// Valid checks the structural invariants of a transaction.
func (t Transaction) Valid() bool {
	if t.Kind == KindInstallment {
		if t.Installment == nil {
			return false
		}
		if t.Installment.Current < 1 || t.Installment.Current > t.Installment.Total {
			return false
		}
	}
	if t.International != nil {
		if !t.International.OriginalAmount.IsPositive() {
			return false
		}
		if !t.International.ExchangeRate.IsPositive() {
			return false
		}
	}
	return true
}
