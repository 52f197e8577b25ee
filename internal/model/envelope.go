package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Envelope is a budget category with a monthly funding target. Its available
// balance is derived: funding accrued since creation plus money moved in,
// minus spending and money moved out.
type Envelope struct {
	ID       string
	Name     string
	Category string          // mandatory, non-empty
	Budget   decimal.Decimal // default monthly budget amount
	Estimate decimal.Decimal // informational only, never used in balance math
	DueDay   int             // day of month a bill is due, 0 = none
	// OrderIndex positions the envelope within the ledger-wide display
	// order. A single counter is shared across categories.
	OrderIndex int
	CreatedAt  time.Time
}

// Allocation overrides an envelope's default budget amount for one month.
// Absence of an allocation for a month means the default applies.
type Allocation struct {
	EnvelopeID string
	Month      string // "YYYY-MM"
	Amount     decimal.Decimal
}
