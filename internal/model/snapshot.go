package model

// Snapshot is the full serializable state of one ledger: the four base
// collections plus the two auxiliary ones. The persistence layer loads a
// Snapshot at startup and writes one back after mutations; the engine never
// sees anything else.
type Snapshot struct {
	Accounts      []Account
	Envelopes     []Envelope
	Payees        []Payee
	Transactions  []Transaction
	Allocations   []Allocation
	CategoryOrder []string
}
