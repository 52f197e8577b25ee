package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbook-dev/budgetbook/internal/model"
)

func TestAddTransaction_NormalizesDate(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	acct := mustAccount(t, svc, "Checking", "0")
	payee := mustPayee(t, svc, "Safeway")

	loc := time.FixedZone("PDT", -7*3600)
	txn, err := svc.AddTransaction(TransactionParams{
		AccountID: acct.ID,
		PayeeID:   payee.ID,
		Amount:    dec("12.50"),
		Type:      model.TypeExpense,
		Date:      time.Date(2026, 8, 10, 23, 45, 12, 0, loc),
	})
	require.NoError(t, err)
	assert.Equal(t, date(2026, 8, 10), txn.Date)
	assert.Equal(t, date(2026, 8, 15), txn.CreatedAt)
	assert.NotEmpty(t, txn.ID)
}

func TestAddTransaction_Rejections(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	acct := mustAccount(t, svc, "Checking", "0")
	payee := mustPayee(t, svc, "Safeway")

	base := TransactionParams{
		AccountID: acct.ID,
		PayeeID:   payee.ID,
		Amount:    dec("10"),
		Type:      model.TypeExpense,
		Date:      date(2026, 8, 10),
	}

	tests := []struct {
		name   string
		mutate func(*TransactionParams)
		field  string
	}{
		{"empty payee", func(p *TransactionParams) { p.PayeeID = "" }, "payeeId"},
		{"unknown account", func(p *TransactionParams) { p.AccountID = "nope" }, "accountId"},
		{"unknown envelope", func(p *TransactionParams) { p.EnvelopeID = "nope" }, "envelopeId"},
		{"zero amount", func(p *TransactionParams) { p.Amount = dec("0") }, "amount"},
		{"negative amount", func(p *TransactionParams) { p.Amount = dec("-5") }, "amount"},
		{"bad type", func(p *TransactionParams) { p.Type = "refund" }, "type"},
		{"zero date", func(p *TransactionParams) { p.Date = time.Time{} }, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := base
			tt.mutate(&params)
			_, err := svc.AddTransaction(params)
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.Empty(t, svc.Store().Transactions(), "rejections must not write")
}

func TestAddTransaction_SortOrder(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	acct := mustAccount(t, svc, "Checking", "0")
	payee := mustPayee(t, svc, "Safeway")

	add := func(desc string, d time.Time) {
		_, err := svc.AddTransaction(TransactionParams{
			AccountID:   acct.ID,
			PayeeID:     payee.ID,
			Amount:      dec("1"),
			Type:        model.TypeExpense,
			Description: desc,
			Date:        d,
		})
		require.NoError(t, err)
	}

	add("middle", date(2026, 8, 10))
	add("oldest", date(2026, 8, 1))
	add("newest", date(2026, 8, 14))
	add("middle-later", date(2026, 8, 10)) // same day, inserted after

	txns := svc.Store().Transactions()
	require.Len(t, txns, 4)
	assert.Equal(t, "newest", txns[0].Description)
	assert.Equal(t, "middle", txns[1].Description)
	assert.Equal(t, "middle-later", txns[2].Description)
	assert.Equal(t, "oldest", txns[3].Description)
}

func TestUpdateTransaction_PartialMerge(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	acct := mustAccount(t, svc, "Checking", "0")
	env := mustEnvelope(t, svc, "Groceries", "Essentials", "200")
	payee := mustPayee(t, svc, "Safeway")

	txn, err := svc.AddTransaction(TransactionParams{
		AccountID:  acct.ID,
		EnvelopeID: env.ID,
		PayeeID:    payee.ID,
		Amount:     dec("50"),
		Type:       model.TypeExpense,
		Date:       date(2026, 8, 10),
	})
	require.NoError(t, err)

	amount := dec("75.25")
	desc := "weekly shop"
	got, err := svc.UpdateTransaction(txn.ID, TransactionUpdate{Amount: &amount, Description: &desc})
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(dec("75.25")))
	assert.Equal(t, "weekly shop", got.Description)
	assert.Equal(t, env.ID, got.EnvelopeID, "untouched fields survive")

	// Flipping the type does not clear the envelope — caller's job.
	income := model.TypeIncome
	got, err = svc.UpdateTransaction(txn.ID, TransactionUpdate{Type: &income})
	require.NoError(t, err)
	assert.Equal(t, model.TypeIncome, got.Type)
	assert.Equal(t, env.ID, got.EnvelopeID)
}

func TestUpdateTransaction_DateChangeResorts(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	acct := mustAccount(t, svc, "Checking", "0")
	payee := mustPayee(t, svc, "Safeway")

	first, err := svc.AddTransaction(TransactionParams{
		AccountID: acct.ID, PayeeID: payee.ID, Amount: dec("1"),
		Type: model.TypeExpense, Description: "a", Date: date(2026, 8, 1),
	})
	require.NoError(t, err)
	_, err = svc.AddTransaction(TransactionParams{
		AccountID: acct.ID, PayeeID: payee.ID, Amount: dec("1"),
		Type: model.TypeExpense, Description: "b", Date: date(2026, 8, 5),
	})
	require.NoError(t, err)

	newDate := date(2026, 8, 12)
	_, err = svc.UpdateTransaction(first.ID, TransactionUpdate{Date: &newDate})
	require.NoError(t, err)

	txns := svc.Store().Transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, "a", txns[0].Description)
	assert.Equal(t, "b", txns[1].Description)
}

func TestUpdateTransaction_Rejections(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	acct := mustAccount(t, svc, "Checking", "0")
	payee := mustPayee(t, svc, "Safeway")

	txn, err := svc.AddTransaction(TransactionParams{
		AccountID: acct.ID, PayeeID: payee.ID, Amount: dec("10"),
		Type: model.TypeExpense, Date: date(2026, 8, 10),
	})
	require.NoError(t, err)

	_, err = svc.UpdateTransaction("nope", TransactionUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)

	bad := dec("-1")
	_, err = svc.UpdateTransaction(txn.ID, TransactionUpdate{Amount: &bad})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)

	unknown := "nope"
	_, err = svc.UpdateTransaction(txn.ID, TransactionUpdate{AccountID: &unknown})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "accountId", verr.Field)
}

func TestDeleteTransaction(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	acct := mustAccount(t, svc, "Checking", "100")
	payee := mustPayee(t, svc, "Safeway")

	txn, err := svc.AddTransaction(TransactionParams{
		AccountID: acct.ID, PayeeID: payee.ID, Amount: dec("10"),
		Type: model.TypeExpense, Date: date(2026, 8, 10),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(txn.ID))
	assert.Empty(t, svc.Store().Transactions())
	assert.True(t, svc.AccountBalance(acct.ID).Equal(dec("100")))

	assert.ErrorIs(t, svc.DeleteTransaction(txn.ID), ErrNotFound)
}

func TestDeleteTransaction_TransferLegOrphansSibling(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	a := mustAccount(t, svc, "Checking", "1000")
	b := mustAccount(t, svc, "Savings", "500")

	res, err := svc.TransferBetweenAccounts(AccountTransferParams{
		FromAccountID: a.ID, ToAccountID: b.ID,
		Amount: dec("100"), Date: date(2026, 8, 10),
	})
	require.NoError(t, err)

	// Deleting one leg leaves the other in place, unflagged.
	require.NoError(t, svc.DeleteTransaction(res.Out.ID))
	txns := svc.Store().Transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, res.In.ID, txns[0].ID)
	assert.Equal(t, res.GroupID, txns[0].TransferGroupID)
}
