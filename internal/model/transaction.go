package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType carries the direction of a transaction. The stored amount
// is always positive; sign lives here.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single dated money movement against an account,
// optionally classified against an envelope.
type Transaction struct {
	ID          string
	AccountID   string
	EnvelopeID  string // empty = income or unclassified expense
	PayeeID     string
	Amount      decimal.Decimal // always > 0
	Type        TransactionType
	Description string
	Date        time.Time // calendar date, distinct from CreatedAt
	CreatedAt   time.Time
	// IsTransfer marks the legs of an account-to-account transfer so
	// income/spending aggregates can exclude them. Envelope transfer legs
	// are deliberately not marked: they cancel within one account and
	// count as category-neutral reallocation.
	IsTransfer bool
	// TransferGroupID links the two legs of a transfer pair. Empty for
	// ordinary transactions.
	TransferGroupID string
}
