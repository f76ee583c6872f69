package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is one parsed billing-period document for one card account.
// It is built incrementally during parsing and treated as immutable input
// by the exporters once the parse completes.
type Statement struct {
	SourceFile string `json:"source_file"`
	CardIssuer string `json:"card_issuer,omitempty"`

	// Transactions is append-only during parsing; order is parse order,
	// not chronological.
	Transactions []Transaction   `json:"transactions"`
	Cards        map[string]Card `json:"cards,omitempty"`

	StatementDate time.Time `json:"statement_date,omitzero"`
	DueDate       time.Time `json:"due_date,omitzero"`
	PaymentDate   time.Time `json:"payment_date,omitzero"`

	PreviousBalance  decimal.Decimal `json:"previous_balance"`
	PaymentMade      decimal.Decimal `json:"payment_made"`
	CurrentCharges   decimal.Decimal `json:"current_charges"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	IOFInternational decimal.Decimal `json:"iof_international"`
}

// NewStatement returns an empty statement for the given source file.
func NewStatement(sourceFile, issuer string) *Statement {
	return &Statement{
		SourceFile:   sourceFile,
		CardIssuer:   issuer,
		Transactions: []Transaction{},
		Cards:        map[string]Card{},
	}
}

// Append adds a transaction to the statement in parse order.
func (s *Statement) Append(t Transaction) {
	s.Transactions = append(s.Transactions, t)
}

// RegisterCard records a card descriptor the first time its last four
// digits are seen. Later sightings keep the original holder name.
func (s *Statement) RegisterCard(holder, lastDigits string) {
	if lastDigits == "" {
		return
	}
	if _, ok := s.Cards[lastDigits]; ok {
		return
	}
	s.Cards[lastDigits] = Card{Holder: holder, LastDigits: lastDigits}
}

// CalculatedTotal is the sum of all transaction amounts. It must be compared
// against TotalAmount as a reconciliation check, never assumed equal.
func (s *Statement) CalculatedTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range s.Transactions {
		sum = sum.Add(t.Amount)
	}
	return sum
}

// StatementYear is the year used to complete DD/MM transaction dates.
// fallback applies when the statement date was not found on page one.
func (s *Statement) StatementYear(fallback int) int {
	if s.StatementDate.IsZero() {
		return fallback
	}
	return s.StatementDate.Year()
}
