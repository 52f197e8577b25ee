package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbook-dev/budgetbook/internal/model"
)

func TestStore_ReadyGate(t *testing.T) {
	store := NewStore()
	assert.False(t, store.Ready())

	store.Load(model.Snapshot{})
	assert.True(t, store.Ready())
}

func TestStore_LoadSortsTransactions(t *testing.T) {
	store := NewStore()
	store.Load(model.Snapshot{
		Transactions: []model.Transaction{
			{ID: "t1", Date: date(2026, 8, 1)},
			{ID: "t2", Date: date(2026, 8, 20)},
			{ID: "t3", Date: date(2026, 8, 10)},
			{ID: "t4", Date: date(2026, 8, 10)}, // tie, keeps slice order
		},
	})

	txns := store.Transactions()
	require.Len(t, txns, 4)
	assert.Equal(t, "t2", txns[0].ID)
	assert.Equal(t, "t3", txns[1].ID)
	assert.Equal(t, "t4", txns[2].ID)
	assert.Equal(t, "t1", txns[3].ID)
}

func TestStore_SnapshotRoundTrip(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	acct := mustAccount(t, svc, "Checking", "1000")
	env := mustEnvelope(t, svc, "Groceries", "Essentials", "200")
	payee := mustPayee(t, svc, "Safeway")
	_, err := svc.AddTransaction(TransactionParams{
		AccountID: acct.ID, EnvelopeID: env.ID, PayeeID: payee.ID,
		Amount: dec("50"), Type: model.TypeExpense, Date: date(2026, 8, 10),
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetMonthlyAllocation(env.ID, "2026-08", dec("250")))

	snap := svc.Store().Snapshot()

	reloaded := NewStore()
	reloaded.Load(snap)
	svc2 := NewService(reloaded)
	svc2.now = svc.now

	assert.Equal(t, svc.Store().Snapshot(), reloaded.Snapshot())
	assert.True(t, svc2.AccountBalance(acct.ID).Equal(dec("950")))
	assert.True(t, svc2.EnvelopeBalance(env.ID).Equal(dec("200")))
}

func TestStore_ReplaceTransactionRepositions(t *testing.T) {
	store := NewStore()
	store.Load(model.Snapshot{
		Transactions: []model.Transaction{
			{ID: "t1", Date: date(2026, 8, 20)},
			{ID: "t2", Date: date(2026, 8, 10)},
		},
	})

	require.True(t, store.ReplaceTransaction(model.Transaction{ID: "t2", Date: date(2026, 8, 25)}))
	txns := store.Transactions()
	assert.Equal(t, "t2", txns[0].ID)
	assert.Equal(t, "t1", txns[1].ID)

	assert.False(t, store.ReplaceTransaction(model.Transaction{ID: "nope"}))
}

func TestStore_RemoveEnvelope(t *testing.T) {
	store := NewStore()
	store.Load(model.Snapshot{
		Envelopes: []model.Envelope{
			{ID: "e1", Category: "A"},
			{ID: "e2", Category: "B"},
		},
	})

	store.RemoveEnvelope("e1")
	assert.Len(t, store.Envelopes(), 1)
	assert.Equal(t, []string{"B"}, store.Categories())

	// Removing twice is a no-op.
	store.RemoveEnvelope("e1")
	assert.Len(t, store.Envelopes(), 1)
}
