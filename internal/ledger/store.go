package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/budgetbook-dev/budgetbook/internal/model"
)

type allocKey struct {
	envelopeID string
	month      string
}

// Store holds one ledger's collections in memory with lookup by id. It owns
// no business rules; all writes go through a Service. A Store is not safe
// for concurrent use — the engine assumes a single writer.
type Store struct {
	accounts    map[string]model.Account
	accountIDs  []string
	envelopes   map[string]model.Envelope
	envelopeIDs []string
	payees      map[string]model.Payee
	payeeIDs    []string

	// transactions stay sorted by date descending, ties broken by
	// insertion order.
	transactions []model.Transaction

	allocations   map[allocKey]decimal.Decimal
	categoryOrder []string

	ready bool
}

// NewStore creates an empty, not-yet-ready Store.
func NewStore() *Store {
	return &Store{
		accounts:    make(map[string]model.Account),
		envelopes:   make(map[string]model.Envelope),
		payees:      make(map[string]model.Payee),
		allocations: make(map[allocKey]decimal.Decimal),
	}
}

// Load replaces the Store's contents with a snapshot and marks the Store
// ready. Transactions are re-sorted; slice order is preserved for equal
// dates.
func (s *Store) Load(snap model.Snapshot) {
	s.accounts = make(map[string]model.Account, len(snap.Accounts))
	s.accountIDs = s.accountIDs[:0]
	for _, a := range snap.Accounts {
		s.accounts[a.ID] = a
		s.accountIDs = append(s.accountIDs, a.ID)
	}

	s.envelopes = make(map[string]model.Envelope, len(snap.Envelopes))
	s.envelopeIDs = s.envelopeIDs[:0]
	for _, e := range snap.Envelopes {
		s.envelopes[e.ID] = e
		s.envelopeIDs = append(s.envelopeIDs, e.ID)
	}

	s.payees = make(map[string]model.Payee, len(snap.Payees))
	s.payeeIDs = s.payeeIDs[:0]
	for _, p := range snap.Payees {
		s.payees[p.ID] = p
		s.payeeIDs = append(s.payeeIDs, p.ID)
	}

	s.transactions = append(s.transactions[:0], snap.Transactions...)
	sort.SliceStable(s.transactions, func(i, j int) bool {
		return s.transactions[i].Date.After(s.transactions[j].Date)
	})

	s.allocations = make(map[allocKey]decimal.Decimal, len(snap.Allocations))
	for _, a := range snap.Allocations {
		s.allocations[allocKey{a.EnvelopeID, a.Month}] = a.Amount
	}

	s.categoryOrder = append(s.categoryOrder[:0], snap.CategoryOrder...)
	s.ready = true
}

// Snapshot exports the Store's full contents for persistence.
func (s *Store) Snapshot() model.Snapshot {
	snap := model.Snapshot{
		Accounts:      s.Accounts(),
		Envelopes:     s.Envelopes(),
		Payees:        s.Payees(),
		Transactions:  s.Transactions(),
		CategoryOrder: append([]string(nil), s.categoryOrder...),
	}
	for k, amount := range s.allocations {
		snap.Allocations = append(snap.Allocations, model.Allocation{
			EnvelopeID: k.envelopeID,
			Month:      k.month,
			Amount:     amount,
		})
	}
	sort.Slice(snap.Allocations, func(i, j int) bool {
		a, b := snap.Allocations[i], snap.Allocations[j]
		if a.EnvelopeID != b.EnvelopeID {
			return a.EnvelopeID < b.EnvelopeID
		}
		return a.Month < b.Month
	})
	return snap
}

// Ready reports whether an initial load has completed.
func (s *Store) Ready() bool {
	return s.ready
}

// Account returns an account by id.
func (s *Store) Account(id string) (model.Account, bool) {
	a, ok := s.accounts[id]
	return a, ok
}

// Accounts returns all accounts in creation order.
func (s *Store) Accounts() []model.Account {
	out := make([]model.Account, 0, len(s.accountIDs))
	for _, aid := range s.accountIDs {
		out = append(out, s.accounts[aid])
	}
	return out
}

// PutAccount inserts or replaces an account.
func (s *Store) PutAccount(a model.Account) {
	if _, ok := s.accounts[a.ID]; !ok {
		s.accountIDs = append(s.accountIDs, a.ID)
	}
	s.accounts[a.ID] = a
}

// Envelope returns an envelope by id.
func (s *Store) Envelope(id string) (model.Envelope, bool) {
	e, ok := s.envelopes[id]
	return e, ok
}

// Envelopes returns all envelopes in creation order.
func (s *Store) Envelopes() []model.Envelope {
	out := make([]model.Envelope, 0, len(s.envelopeIDs))
	for _, eid := range s.envelopeIDs {
		out = append(out, s.envelopes[eid])
	}
	return out
}

// EnvelopesInCategory returns the category's envelopes sorted by order index.
func (s *Store) EnvelopesInCategory(category string) []model.Envelope {
	var out []model.Envelope
	for _, eid := range s.envelopeIDs {
		if e := s.envelopes[eid]; e.Category == category {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}

// Categories returns the distinct category names referenced by envelopes,
// in first-seen creation order.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, eid := range s.envelopeIDs {
		c := s.envelopes[eid].Category
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// PutEnvelope inserts or replaces an envelope.
func (s *Store) PutEnvelope(e model.Envelope) {
	if _, ok := s.envelopes[e.ID]; !ok {
		s.envelopeIDs = append(s.envelopeIDs, e.ID)
	}
	s.envelopes[e.ID] = e
}

// RemoveEnvelope deletes an envelope by id.
func (s *Store) RemoveEnvelope(id string) {
	if _, ok := s.envelopes[id]; !ok {
		return
	}
	delete(s.envelopes, id)
	for i, eid := range s.envelopeIDs {
		if eid == id {
			s.envelopeIDs = append(s.envelopeIDs[:i], s.envelopeIDs[i+1:]...)
			break
		}
	}
}

// MaxOrderIndex returns the highest envelope order index, 0 when empty.
func (s *Store) MaxOrderIndex() int {
	max := 0
	for _, e := range s.envelopes {
		if e.OrderIndex > max {
			max = e.OrderIndex
		}
	}
	return max
}

// Payee returns a payee by id.
func (s *Store) Payee(id string) (model.Payee, bool) {
	p, ok := s.payees[id]
	return p, ok
}

// PayeeByName returns the first payee with an exact name match.
func (s *Store) PayeeByName(name string) (model.Payee, bool) {
	for _, pid := range s.payeeIDs {
		if p := s.payees[pid]; p.Name == name {
			return p, true
		}
	}
	return model.Payee{}, false
}

// Payees returns all payees in creation order.
func (s *Store) Payees() []model.Payee {
	out := make([]model.Payee, 0, len(s.payeeIDs))
	for _, pid := range s.payeeIDs {
		out = append(out, s.payees[pid])
	}
	return out
}

// PutPayee inserts or replaces a payee.
func (s *Store) PutPayee(p model.Payee) {
	if _, ok := s.payees[p.ID]; !ok {
		s.payeeIDs = append(s.payeeIDs, p.ID)
	}
	s.payees[p.ID] = p
}

// Transaction returns a transaction by id.
func (s *Store) Transaction(id string) (model.Transaction, bool) {
	for _, t := range s.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return model.Transaction{}, false
}

// Transactions returns all transactions sorted by date descending.
func (s *Store) Transactions() []model.Transaction {
	return append([]model.Transaction(nil), s.transactions...)
}

// InsertTransaction inserts t keeping the date-descending sort. Among equal
// dates the newly inserted transaction lands last.
func (s *Store) InsertTransaction(t model.Transaction) {
	i := sort.Search(len(s.transactions), func(i int) bool {
		return s.transactions[i].Date.Before(t.Date)
	})
	s.transactions = append(s.transactions, model.Transaction{})
	copy(s.transactions[i+1:], s.transactions[i:])
	s.transactions[i] = t
}

// ReplaceTransaction swaps the stored transaction with the same id. If the
// date changed, the transaction is repositioned to keep the sort.
func (s *Store) ReplaceTransaction(t model.Transaction) bool {
	for i, old := range s.transactions {
		if old.ID != t.ID {
			continue
		}
		if old.Date.Equal(t.Date) {
			s.transactions[i] = t
			return true
		}
		s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
		s.InsertTransaction(t)
		return true
	}
	return false
}

// RemoveTransaction deletes a transaction by id.
func (s *Store) RemoveTransaction(id string) bool {
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return true
		}
	}
	return false
}

// Allocation returns the explicit budget override for an envelope-month.
func (s *Store) Allocation(envelopeID, month string) (decimal.Decimal, bool) {
	amount, ok := s.allocations[allocKey{envelopeID, month}]
	return amount, ok
}

// SetAllocation stores a budget override for an envelope-month.
func (s *Store) SetAllocation(envelopeID, month string, amount decimal.Decimal) {
	s.allocations[allocKey{envelopeID, month}] = amount
}

// RemoveAllocationsFor deletes every override belonging to an envelope.
func (s *Store) RemoveAllocationsFor(envelopeID string) {
	for k := range s.allocations {
		if k.envelopeID == envelopeID {
			delete(s.allocations, k)
		}
	}
}

// CategoryOrder returns the display order of categories.
func (s *Store) CategoryOrder() []string {
	return append([]string(nil), s.categoryOrder...)
}

// SetCategoryOrder replaces the display order of categories.
func (s *Store) SetCategoryOrder(order []string) {
	s.categoryOrder = append([]string(nil), order...)
}
