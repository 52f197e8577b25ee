package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbook-dev/budgetbook/internal/id"
	"github.com/budgetbook-dev/budgetbook/internal/model"
)

// Synthetic payee names used to book transfer legs. Resolved by name and
// lazily created, so repeated transfers reuse one payee.
const (
	AccountTransferPayee  = "Internal Account Transfer"
	EnvelopeTransferPayee = "Internal Budget Transfer"
)

// TransferResult reports the two legs written for a committed transfer.
type TransferResult struct {
	GroupID string
	Out     model.Transaction // the expense leg
	In      model.Transaction // the income leg
}

// AccountTransferParams describes a move of money between two accounts.
type AccountTransferParams struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Date          time.Time
	Description   string // optional, derived from account names when empty
}

// TransferBetweenAccounts books a transfer as two linked legs: an expense
// on the source account and an income on the destination, both marked
// IsTransfer so aggregates can exclude them, neither tied to an envelope.
// All validation happens before the first write; the operation commits both
// legs or none.
func (s *Service) TransferBetweenAccounts(params AccountTransferParams) (TransferResult, error) {
	if !s.store.Ready() {
		return TransferResult{}, ErrNotReady
	}
	if params.FromAccountID == params.ToAccountID {
		return TransferResult{}, ValidationError{Field: "toAccountId", Reason: "must differ from source account"}
	}
	if !params.Amount.IsPositive() {
		return TransferResult{}, ValidationError{Field: "amount", Reason: "must be positive"}
	}
	from, ok := s.store.Account(params.FromAccountID)
	if !ok {
		return TransferResult{}, ValidationError{Field: "fromAccountId", Reason: "unknown account"}
	}
	to, ok := s.store.Account(params.ToAccountID)
	if !ok {
		return TransferResult{}, ValidationError{Field: "toAccountId", Reason: "unknown account"}
	}
	if params.Date.IsZero() {
		return TransferResult{}, ValidationError{Field: "date", Reason: "must be set"}
	}

	payee := s.ensurePayee(AccountTransferPayee)
	group := id.New()

	outDesc := params.Description
	inDesc := params.Description
	if params.Description == "" {
		outDesc = fmt.Sprintf("Transfer to %s", to.Name)
		inDesc = fmt.Sprintf("Transfer from %s", from.Name)
	}

	out, err := s.AddTransaction(TransactionParams{
		AccountID:       params.FromAccountID,
		PayeeID:         payee.ID,
		Amount:          params.Amount,
		Type:            model.TypeExpense,
		Description:     outDesc,
		Date:            params.Date,
		IsTransfer:      true,
		TransferGroupID: group,
	})
	if err != nil {
		return TransferResult{}, err
	}
	in, err := s.AddTransaction(TransactionParams{
		AccountID:       params.ToAccountID,
		PayeeID:         payee.ID,
		Amount:          params.Amount,
		Type:            model.TypeIncome,
		Description:     inDesc,
		Date:            params.Date,
		IsTransfer:      true,
		TransferGroupID: group,
	})
	if err != nil {
		return TransferResult{}, err
	}

	return TransferResult{GroupID: group, Out: out, In: in}, nil
}

// EnvelopeTransferParams describes a reallocation between two envelopes.
// Both legs post to the same account: envelope transfers move budget, not
// money.
type EnvelopeTransferParams struct {
	FromEnvelopeID string
	ToEnvelopeID   string
	AccountID      string
	Amount         decimal.Decimal
	Date           time.Time
	Description    string
}

// TransferBetweenEnvelopes books a reallocation as two legs on one account:
// an expense against the source envelope and an income against the
// destination. The legs are not marked IsTransfer — that flag is reserved
// for account-level transfers.
func (s *Service) TransferBetweenEnvelopes(params EnvelopeTransferParams) (TransferResult, error) {
	if !s.store.Ready() {
		return TransferResult{}, ErrNotReady
	}
	if params.FromEnvelopeID == params.ToEnvelopeID {
		return TransferResult{}, ValidationError{Field: "toEnvelopeId", Reason: "must differ from source envelope"}
	}
	if !params.Amount.IsPositive() {
		return TransferResult{}, ValidationError{Field: "amount", Reason: "must be positive"}
	}
	from, ok := s.store.Envelope(params.FromEnvelopeID)
	if !ok {
		return TransferResult{}, ValidationError{Field: "fromEnvelopeId", Reason: "unknown envelope"}
	}
	to, ok := s.store.Envelope(params.ToEnvelopeID)
	if !ok {
		return TransferResult{}, ValidationError{Field: "toEnvelopeId", Reason: "unknown envelope"}
	}
	if _, ok := s.store.Account(params.AccountID); !ok {
		return TransferResult{}, ValidationError{Field: "accountId", Reason: "unknown account"}
	}
	if params.Date.IsZero() {
		return TransferResult{}, ValidationError{Field: "date", Reason: "must be set"}
	}

	payee := s.ensurePayee(EnvelopeTransferPayee)
	group := id.New()

	outDesc := params.Description
	inDesc := params.Description
	if params.Description == "" {
		outDesc = fmt.Sprintf("Transfer to %s", to.Name)
		inDesc = fmt.Sprintf("Transfer from %s", from.Name)
	}

	out, err := s.AddTransaction(TransactionParams{
		AccountID:       params.AccountID,
		EnvelopeID:      params.FromEnvelopeID,
		PayeeID:         payee.ID,
		Amount:          params.Amount,
		Type:            model.TypeExpense,
		Description:     outDesc,
		Date:            params.Date,
		TransferGroupID: group,
	})
	if err != nil {
		return TransferResult{}, err
	}
	in, err := s.AddTransaction(TransactionParams{
		AccountID:       params.AccountID,
		EnvelopeID:      params.ToEnvelopeID,
		PayeeID:         payee.ID,
		Amount:          params.Amount,
		Type:            model.TypeIncome,
		Description:     inDesc,
		Date:            params.Date,
		TransferGroupID: group,
	})
	if err != nil {
		return TransferResult{}, err
	}

	return TransferResult{GroupID: group, Out: out, In: in}, nil
}

// ensurePayee resolves a synthetic payee by name, creating it on first use.
func (s *Service) ensurePayee(name string) model.Payee {
	if p, ok := s.store.PayeeByName(name); ok {
		return p
	}
	p := model.Payee{
		ID:        id.New(),
		Name:      name,
		CreatedAt: s.now(),
	}
	s.store.PutPayee(p)
	return p
}
