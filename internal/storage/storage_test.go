package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbook-dev/budgetbook/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "budgetbook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoad_FreshDatabase(t *testing.T) {
	store := openTestStore(t)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Accounts)
	assert.Empty(t, snap.Transactions)
	assert.Empty(t, snap.CategoryOrder)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	snap := model.Snapshot{
		Accounts: []model.Account{
			{ID: "a1", Name: "Checking", Type: "checking", InitialBalance: dec("1000"), CreatedAt: created},
			{ID: "a2", Name: "Visa", Type: "credit", InitialBalance: dec("-250.75"), CreatedAt: created},
		},
		Envelopes: []model.Envelope{
			{ID: "e1", Name: "Groceries", Category: "Essentials", Budget: dec("200"), Estimate: dec("180"), DueDay: 0, OrderIndex: 1, CreatedAt: created},
			{ID: "e2", Name: "Rent", Category: "Essentials", Budget: dec("1200"), DueDay: 1, OrderIndex: 2, CreatedAt: created},
		},
		Payees: []model.Payee{
			{ID: "p1", Name: "Safeway", Category: "Essentials", CreatedAt: created},
		},
		Transactions: []model.Transaction{
			{
				ID: "t1", AccountID: "a1", EnvelopeID: "e1", PayeeID: "p1",
				Amount: dec("42.17"), Type: model.TypeExpense, Description: "weekly shop",
				Date:      time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
				CreatedAt: created,
			},
			{
				ID: "t2", AccountID: "a1", PayeeID: "p1",
				Amount: dec("100"), Type: model.TypeIncome,
				Date:       time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC),
				CreatedAt:  created,
				IsTransfer: true, TransferGroupID: "g1",
			},
		},
		Allocations: []model.Allocation{
			{EnvelopeID: "e1", Month: "2026-08", Amount: dec("250")},
		},
		CategoryOrder: []string{"Essentials"},
	}

	require.NoError(t, store.Save(ctx, snap))

	got, err := store.Load(ctx)
	require.NoError(t, err)

	require.Len(t, got.Accounts, 2)
	assert.True(t, got.Accounts[1].InitialBalance.Equal(dec("-250.75")))
	assert.Equal(t, created, got.Accounts[0].CreatedAt)

	require.Len(t, got.Envelopes, 2)
	assert.Equal(t, 1, got.Envelopes[1].DueDay)
	assert.True(t, got.Envelopes[0].Estimate.Equal(dec("180")))

	require.Len(t, got.Transactions, 2)
	assert.True(t, got.Transactions[0].IsTransfer, "date desc: t2 first")
	assert.Equal(t, "g1", got.Transactions[0].TransferGroupID)
	assert.True(t, got.Transactions[1].Amount.Equal(dec("42.17")))
	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), got.Transactions[1].Date)

	require.Len(t, got.Allocations, 1)
	assert.True(t, got.Allocations[0].Amount.Equal(dec("250")))
	assert.Equal(t, []string{"Essentials"}, got.CategoryOrder)
}

func TestSave_ReplacesPreviousSnapshot(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, model.Snapshot{
		Accounts: []model.Account{{ID: "a1", Name: "Old", InitialBalance: dec("1"), CreatedAt: created}},
	}))
	require.NoError(t, store.Save(ctx, model.Snapshot{
		Accounts: []model.Account{{ID: "a2", Name: "New", InitialBalance: dec("2"), CreatedAt: created}},
	}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Accounts, 1)
	assert.Equal(t, "a2", got.Accounts[0].ID)
}

func TestOpen_ReopenExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budgetbook.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), model.Snapshot{
		CategoryOrder: []string{"Essentials", "Fun"},
	}))
	require.NoError(t, store.Close())

	// Reopening runs migrations as a no-op and keeps the data.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Essentials", "Fun"}, got.CategoryOrder)
}
