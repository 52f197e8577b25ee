package model

import "time"

// Payee is the counterparty of a transaction. Transfers use well-known
// synthetic payees resolved by name.
type Payee struct {
	ID        string
	Name      string
	Category  string // optional default category
	CreatedAt time.Time
}
