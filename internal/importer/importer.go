package importer

import (
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BankRow is one parsed row of a bank CSV export. Amount keeps the bank's
// sign convention: negative is money out, positive is money in. The engine
// splits the sign into transaction type on booking.
type BankRow struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Reference   string
}

// Parser converts a bank CSV file into BankRows.
type Parser interface {
	Parse(r io.Reader) ([]BankRow, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	r.Register(&GenericParser{})
	return r
}
