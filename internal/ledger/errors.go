package ledger

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned by write operations before the initial snapshot
// load has completed.
var ErrNotReady = errors.New("ledger not loaded")

// ErrNotFound is wrapped by operations that reference a missing entity.
// Read/derivation paths never return it; they treat missing references as
// contributing zero.
var ErrNotFound = errors.New("not found")

// ValidationError describes a single rejected field. Rejections surface as
// structured values so a caller can display them without losing state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}
