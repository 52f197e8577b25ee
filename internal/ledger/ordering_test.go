package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorderCategories(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	mustEnvelope(t, svc, "Rent", "Essentials", "1200")
	mustEnvelope(t, svc, "Games", "Fun", "40")
	mustEnvelope(t, svc, "Gifts", "Giving", "25")

	require.NoError(t, svc.ReorderCategories([]string{"Fun", "Giving", "Essentials"}))
	assert.Equal(t, []string{"Fun", "Giving", "Essentials"}, svc.Store().CategoryOrder())
}

func TestReorderCategories_Idempotent(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	mustEnvelope(t, svc, "Rent", "Essentials", "1200")
	mustEnvelope(t, svc, "Games", "Fun", "40")

	current := svc.Store().CategoryOrder()
	require.NoError(t, svc.ReorderCategories(current))
	assert.Equal(t, current, svc.Store().CategoryOrder())
}

func TestReorderCategories_SetMismatch(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	mustEnvelope(t, svc, "Rent", "Essentials", "1200")
	mustEnvelope(t, svc, "Games", "Fun", "40")

	var verr ValidationError

	// Dropped category.
	err := svc.ReorderCategories([]string{"Fun"})
	assert.ErrorAs(t, err, &verr)

	// Invented category.
	err = svc.ReorderCategories([]string{"Fun", "Essentials", "Travel"})
	assert.ErrorAs(t, err, &verr)

	// Duplicate hiding a drop.
	err = svc.ReorderCategories([]string{"Fun", "Fun"})
	assert.ErrorAs(t, err, &verr)

	assert.Equal(t, []string{"Essentials", "Fun"}, svc.Store().CategoryOrder(),
		"rejections leave the order untouched")
}

func TestReorderEnvelopesWithinCategory(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	rent := mustEnvelope(t, svc, "Rent", "Essentials", "1200")     // index 1
	games := mustEnvelope(t, svc, "Games", "Fun", "40")            // index 2
	grocer := mustEnvelope(t, svc, "Groceries", "Essentials", "200") // index 3
	books := mustEnvelope(t, svc, "Books", "Fun", "20")            // index 4

	require.NoError(t, svc.ReorderEnvelopesWithinCategory("Essentials", []string{grocer.ID, rent.ID}))

	// Essentials held slots {1, 3}; those slots are redistributed.
	got, _ := svc.Store().Envelope(grocer.ID)
	assert.Equal(t, 1, got.OrderIndex)
	got, _ = svc.Store().Envelope(rent.ID)
	assert.Equal(t, 3, got.OrderIndex)

	// Other categories keep their positions.
	got, _ = svc.Store().Envelope(games.ID)
	assert.Equal(t, 2, got.OrderIndex)
	got, _ = svc.Store().Envelope(books.ID)
	assert.Equal(t, 4, got.OrderIndex)

	ordered := svc.Store().EnvelopesInCategory("Essentials")
	require.Len(t, ordered, 2)
	assert.Equal(t, grocer.ID, ordered[0].ID)
	assert.Equal(t, rent.ID, ordered[1].ID)
}

func TestReorderEnvelopesWithinCategory_Rejections(t *testing.T) {
	svc := newTestService(date(2026, 8, 15))
	rent := mustEnvelope(t, svc, "Rent", "Essentials", "1200")
	games := mustEnvelope(t, svc, "Games", "Fun", "40")

	err := svc.ReorderEnvelopesWithinCategory("Travel", []string{rent.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	var verr ValidationError
	err = svc.ReorderEnvelopesWithinCategory("Essentials", []string{rent.ID, games.ID})
	assert.ErrorAs(t, err, &verr, "envelope from another category")

	err = svc.ReorderEnvelopesWithinCategory("Essentials", nil)
	assert.ErrorAs(t, err, &verr)
}
