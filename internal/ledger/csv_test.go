package ledger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbook-dev/budgetbook/internal/model"
)

func TestWriteReadTransactions(t *testing.T) {
	txns := []model.Transaction{
		{
			ID:          "t1",
			AccountID:   "a1",
			EnvelopeID:  "e1",
			PayeeID:     "p1",
			Amount:      dec("42.17"),
			Type:        model.TypeExpense,
			Description: "groceries, etc.",
			Date:        date(2026, 8, 10),
			CreatedAt:   time.Date(2026, 8, 10, 14, 3, 2, 0, time.UTC),
		},
		{
			ID:              "t2",
			AccountID:       "a1",
			PayeeID:         "p2",
			Amount:          dec("100.00"),
			Type:            model.TypeIncome,
			Date:            date(2026, 8, 12),
			CreatedAt:       time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC),
			IsTransfer:      true,
			TransferGroupID: "g1",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txns))

	got, err := ReadTransactions(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].ID)
	assert.True(t, got[0].Amount.Equal(dec("42.17")))
	assert.Equal(t, date(2026, 8, 10), got[0].Date)
	assert.Equal(t, "groceries, etc.", got[0].Description)
	assert.True(t, got[1].IsTransfer)
	assert.Equal(t, "g1", got[1].TransferGroupID)
}

func TestReadTransactions_Empty(t *testing.T) {
	got, err := ReadTransactions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadTransactions_BadRow(t *testing.T) {
	in := Header + "\n" +
		"t1,not-a-date,expense,10.00,a1,,p1,,false,,2026-08-10T00:00:00Z\n"
	_, err := ReadTransactions(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")

	in = Header + "\n" +
		"t1,2026-08-10,expense,ten,a1,,p1,,false,,2026-08-10T00:00:00Z\n"
	_, err = ReadTransactions(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}
