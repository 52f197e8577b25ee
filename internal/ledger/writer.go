package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbook-dev/budgetbook/internal/id"
	"github.com/budgetbook-dev/budgetbook/internal/model"
)

// TransactionParams holds the caller-supplied fields of a new transaction.
type TransactionParams struct {
	AccountID       string
	EnvelopeID      string // empty for income or unclassified expense
	PayeeID         string
	Amount          decimal.Decimal
	Type            model.TransactionType
	Description     string
	Date            time.Time
	IsTransfer      bool
	TransferGroupID string
}

// AddTransaction validates and appends a transaction. The date is
// normalized to a UTC calendar date; the collection stays sorted by date
// descending with ties broken by insertion order.
func (s *Service) AddTransaction(params TransactionParams) (model.Transaction, error) {
	if !s.store.Ready() {
		return model.Transaction{}, ErrNotReady
	}
	if err := s.validateTransaction(params); err != nil {
		return model.Transaction{}, err
	}

	txn := model.Transaction{
		ID:              id.New(),
		AccountID:       params.AccountID,
		EnvelopeID:      params.EnvelopeID,
		PayeeID:         params.PayeeID,
		Amount:          params.Amount,
		Type:            params.Type,
		Description:     params.Description,
		Date:            DateOnly(params.Date),
		CreatedAt:       s.now(),
		IsTransfer:      params.IsTransfer,
		TransferGroupID: params.TransferGroupID,
	}
	s.store.InsertTransaction(txn)
	return txn, nil
}

func (s *Service) validateTransaction(params TransactionParams) error {
	if params.PayeeID == "" {
		return ValidationError{Field: "payeeId", Reason: "must not be empty"}
	}
	if _, ok := s.store.Account(params.AccountID); !ok {
		return ValidationError{Field: "accountId", Reason: "unknown account"}
	}
	if params.EnvelopeID != "" {
		if _, ok := s.store.Envelope(params.EnvelopeID); !ok {
			return ValidationError{Field: "envelopeId", Reason: "unknown envelope"}
		}
	}
	if !params.Type.Valid() {
		return ValidationError{Field: "type", Reason: "must be income or expense"}
	}
	if !params.Amount.IsPositive() {
		return ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if params.Date.IsZero() {
		return ValidationError{Field: "date", Reason: "must be set"}
	}
	return nil
}

// TransactionUpdate holds optional transaction fields to merge. Nil means
// unchanged. Cross-field consistency is the caller's responsibility:
// changing the type to income does not clear the envelope id.
type TransactionUpdate struct {
	AccountID   *string
	EnvelopeID  *string
	PayeeID     *string
	Amount      *decimal.Decimal
	Type        *model.TransactionType
	Description *string
	Date        *time.Time
}

// UpdateTransaction merges fields into an existing transaction by id.
func (s *Service) UpdateTransaction(txnID string, update TransactionUpdate) (model.Transaction, error) {
	if !s.store.Ready() {
		return model.Transaction{}, ErrNotReady
	}
	txn, ok := s.store.Transaction(txnID)
	if !ok {
		return model.Transaction{}, notFound("transaction", txnID)
	}
	if update.AccountID != nil {
		if _, ok := s.store.Account(*update.AccountID); !ok {
			return model.Transaction{}, ValidationError{Field: "accountId", Reason: "unknown account"}
		}
		txn.AccountID = *update.AccountID
	}
	if update.EnvelopeID != nil {
		if *update.EnvelopeID != "" {
			if _, ok := s.store.Envelope(*update.EnvelopeID); !ok {
				return model.Transaction{}, ValidationError{Field: "envelopeId", Reason: "unknown envelope"}
			}
		}
		txn.EnvelopeID = *update.EnvelopeID
	}
	if update.PayeeID != nil {
		if *update.PayeeID == "" {
			return model.Transaction{}, ValidationError{Field: "payeeId", Reason: "must not be empty"}
		}
		txn.PayeeID = *update.PayeeID
	}
	if update.Amount != nil {
		if !update.Amount.IsPositive() {
			return model.Transaction{}, ValidationError{Field: "amount", Reason: "must be positive"}
		}
		txn.Amount = *update.Amount
	}
	if update.Type != nil {
		if !update.Type.Valid() {
			return model.Transaction{}, ValidationError{Field: "type", Reason: "must be income or expense"}
		}
		txn.Type = *update.Type
	}
	if update.Description != nil {
		txn.Description = *update.Description
	}
	if update.Date != nil {
		if update.Date.IsZero() {
			return model.Transaction{}, ValidationError{Field: "date", Reason: "must be set"}
		}
		txn.Date = DateOnly(*update.Date)
	}
	s.store.ReplaceTransaction(txn)
	return txn, nil
}

// DeleteTransaction removes a transaction by id. Deleting one leg of a
// transfer pair does not touch its sibling.
func (s *Service) DeleteTransaction(txnID string) error {
	if !s.store.Ready() {
		return ErrNotReady
	}
	if !s.store.RemoveTransaction(txnID) {
		return notFound("transaction", txnID)
	}
	return nil
}
