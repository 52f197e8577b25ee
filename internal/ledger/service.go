package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbook-dev/budgetbook/internal/id"
	"github.com/budgetbook-dev/budgetbook/internal/model"
)

// Service provides every engine operation over one injected Store: entity
// CRUD, the transaction writer, the transfer orchestrator, the ordering
// manager, and the pure derivation functions. Operations run synchronously
// to completion; there is no internal concurrency.
type Service struct {
	store *Store
	now   func() time.Time
}

// NewService creates a Service over a Store.
func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Store exposes the underlying Store for read access and persistence.
func (s *Service) Store() *Store {
	return s.store
}

// AccountParams holds the caller-supplied fields of a new account.
type AccountParams struct {
	Name           string
	Type           string
	InitialBalance decimal.Decimal
}

// AddAccount validates and creates an account.
func (s *Service) AddAccount(params AccountParams) (model.Account, error) {
	if !s.store.Ready() {
		return model.Account{}, ErrNotReady
	}
	if strings.TrimSpace(params.Name) == "" {
		return model.Account{}, ValidationError{Field: "name", Reason: "must not be empty"}
	}

	acct := model.Account{
		ID:             id.New(),
		Name:           params.Name,
		Type:           params.Type,
		InitialBalance: params.InitialBalance,
		CreatedAt:      s.now(),
	}
	s.store.PutAccount(acct)
	return acct, nil
}

// AccountUpdate holds optional account fields to merge. Nil means unchanged.
type AccountUpdate struct {
	Name           *string
	Type           *string
	InitialBalance *decimal.Decimal
}

// UpdateAccount merges fields into an existing account.
func (s *Service) UpdateAccount(accountID string, update AccountUpdate) (model.Account, error) {
	if !s.store.Ready() {
		return model.Account{}, ErrNotReady
	}
	acct, ok := s.store.Account(accountID)
	if !ok {
		return model.Account{}, notFound("account", accountID)
	}
	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return model.Account{}, ValidationError{Field: "name", Reason: "must not be empty"}
		}
		acct.Name = *update.Name
	}
	if update.Type != nil {
		acct.Type = *update.Type
	}
	if update.InitialBalance != nil {
		acct.InitialBalance = *update.InitialBalance
	}
	s.store.PutAccount(acct)
	return acct, nil
}

// EnvelopeParams holds the caller-supplied fields of a new envelope.
type EnvelopeParams struct {
	Name     string
	Category string
	Budget   decimal.Decimal
	Estimate decimal.Decimal
	DueDay   int
}

// AddEnvelope validates and creates an envelope. A first envelope in a new
// category appends that category to the display order.
func (s *Service) AddEnvelope(params EnvelopeParams) (model.Envelope, error) {
	if !s.store.Ready() {
		return model.Envelope{}, ErrNotReady
	}
	if strings.TrimSpace(params.Name) == "" {
		return model.Envelope{}, ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(params.Category) == "" {
		return model.Envelope{}, ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if params.Budget.IsNegative() {
		return model.Envelope{}, ValidationError{Field: "budget", Reason: "must not be negative"}
	}
	if params.DueDay < 0 || params.DueDay > 31 {
		return model.Envelope{}, ValidationError{Field: "dueDay", Reason: "must be between 1 and 31"}
	}

	env := model.Envelope{
		ID:         id.New(),
		Name:       params.Name,
		Category:   params.Category,
		Budget:     params.Budget,
		Estimate:   params.Estimate,
		DueDay:     params.DueDay,
		OrderIndex: s.store.MaxOrderIndex() + 1,
		CreatedAt:  s.now(),
	}
	s.store.PutEnvelope(env)
	s.syncCategoryOrder()
	return env, nil
}

// EnvelopeUpdate holds optional envelope fields to merge. Nil means
// unchanged.
type EnvelopeUpdate struct {
	Name     *string
	Category *string
	Budget   *decimal.Decimal
	Estimate *decimal.Decimal
	DueDay   *int
}

// UpdateEnvelope merges fields into an existing envelope, keeping the
// category order list in sync when the category changes.
func (s *Service) UpdateEnvelope(envelopeID string, update EnvelopeUpdate) (model.Envelope, error) {
	if !s.store.Ready() {
		return model.Envelope{}, ErrNotReady
	}
	env, ok := s.store.Envelope(envelopeID)
	if !ok {
		return model.Envelope{}, notFound("envelope", envelopeID)
	}
	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return model.Envelope{}, ValidationError{Field: "name", Reason: "must not be empty"}
		}
		env.Name = *update.Name
	}
	if update.Category != nil {
		if strings.TrimSpace(*update.Category) == "" {
			return model.Envelope{}, ValidationError{Field: "category", Reason: "must not be empty"}
		}
		env.Category = *update.Category
	}
	if update.Budget != nil {
		if update.Budget.IsNegative() {
			return model.Envelope{}, ValidationError{Field: "budget", Reason: "must not be negative"}
		}
		env.Budget = *update.Budget
	}
	if update.Estimate != nil {
		env.Estimate = *update.Estimate
	}
	if update.DueDay != nil {
		if *update.DueDay < 0 || *update.DueDay > 31 {
			return model.Envelope{}, ValidationError{Field: "dueDay", Reason: "must be between 1 and 31"}
		}
		env.DueDay = *update.DueDay
	}
	s.store.PutEnvelope(env)
	s.syncCategoryOrder()
	return env, nil
}

// DeleteEnvelope removes an envelope and its monthly overrides. Transactions
// that reference it keep their envelope id; derivations treat the stale
// reference as zero.
func (s *Service) DeleteEnvelope(envelopeID string) error {
	if !s.store.Ready() {
		return ErrNotReady
	}
	if _, ok := s.store.Envelope(envelopeID); !ok {
		return notFound("envelope", envelopeID)
	}
	s.store.RemoveEnvelope(envelopeID)
	s.store.RemoveAllocationsFor(envelopeID)
	s.syncCategoryOrder()
	return nil
}

// PayeeParams holds the caller-supplied fields of a new payee.
type PayeeParams struct {
	Name     string
	Category string
}

// AddPayee validates and creates a payee.
func (s *Service) AddPayee(params PayeeParams) (model.Payee, error) {
	if !s.store.Ready() {
		return model.Payee{}, ErrNotReady
	}
	if strings.TrimSpace(params.Name) == "" {
		return model.Payee{}, ValidationError{Field: "name", Reason: "must not be empty"}
	}
	p := model.Payee{
		ID:        id.New(),
		Name:      params.Name,
		Category:  params.Category,
		CreatedAt: s.now(),
	}
	s.store.PutPayee(p)
	return p, nil
}

// PayeeUpdate holds optional payee fields to merge. Nil means unchanged.
type PayeeUpdate struct {
	Name     *string
	Category *string
}

// UpdatePayee merges fields into an existing payee.
func (s *Service) UpdatePayee(payeeID string, update PayeeUpdate) (model.Payee, error) {
	if !s.store.Ready() {
		return model.Payee{}, ErrNotReady
	}
	p, ok := s.store.Payee(payeeID)
	if !ok {
		return model.Payee{}, notFound("payee", payeeID)
	}
	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return model.Payee{}, ValidationError{Field: "name", Reason: "must not be empty"}
		}
		p.Name = *update.Name
	}
	if update.Category != nil {
		p.Category = *update.Category
	}
	s.store.PutPayee(p)
	return p, nil
}

// SetMonthlyAllocation stores an explicit budget override for an
// envelope-month. Month is a "YYYY-MM" key.
func (s *Service) SetMonthlyAllocation(envelopeID, month string, amount decimal.Decimal) error {
	if !s.store.Ready() {
		return ErrNotReady
	}
	if _, ok := s.store.Envelope(envelopeID); !ok {
		return notFound("envelope", envelopeID)
	}
	if _, err := id.ParseMonthKey(month); err != nil {
		return ValidationError{Field: "month", Reason: "must be in YYYY-MM form"}
	}
	if amount.IsNegative() {
		return ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	s.store.SetAllocation(envelopeID, month, amount)
	return nil
}

// syncCategoryOrder reconciles the category order list with the categories
// currently referenced by envelopes: vanished categories drop out, new ones
// append at the end, surviving ones keep their position.
func (s *Service) syncCategoryOrder() {
	current := s.store.Categories()
	exists := make(map[string]bool, len(current))
	for _, c := range current {
		exists[c] = true
	}

	var order []string
	seen := make(map[string]bool)
	for _, c := range s.store.CategoryOrder() {
		if exists[c] && !seen[c] {
			order = append(order, c)
			seen[c] = true
		}
	}
	for _, c := range current {
		if !seen[c] {
			order = append(order, c)
			seen[c] = true
		}
	}
	s.store.SetCategoryOrder(order)
}
