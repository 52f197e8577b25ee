package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a money container. Its balance is never stored; it is always
// derived from InitialBalance plus the account's transactions.
type Account struct {
	ID             string
	Name           string
	Type           string // optional tag: checking, savings, credit, cash
	InitialBalance decimal.Decimal
	CreatedAt      time.Time
}
