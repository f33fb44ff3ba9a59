package storage

import (
	"errors"
	"fmt"

	"github.com/mmynk/expenses/internal/models"
)

var (
	// ErrNotFound is returned when an id is absent from the store.
	ErrNotFound = errors.New("entity not found")

	// ErrTypeMismatch is returned when a stored variant differs from the
	// one the caller declared. It is always a programming error.
	ErrTypeMismatch = models.ErrTypeMismatch

	// ErrConflict is matched by every *ConflictError.
	ErrConflict = errors.New("version conflict")

	// ErrInvalidReference is returned when a written foreign key points at
	// an id the store does not hold.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrUnknownIndex is returned by FindByKey for an index the store does not keep.
	ErrUnknownIndex = errors.New("unknown index")

	// ErrInvalidKey is returned by FindByKey for a key the index cannot hold.
	ErrInvalidKey = errors.New("invalid index key")

	// ErrDuplicateKey is returned when a write would give a unique index key
	// a second owner, such as a login name already held by another person.
	ErrDuplicateKey = errors.New("duplicate key")
)

// ConflictError reports a write computed against a stale version.
type ConflictError struct {
	ID int64

	// Submitted is the version carried by the write, or -1 if it had none.
	Submitted int64

	// Stored is the version currently held by the store.
	Stored int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict on entity %d: submitted %d, stored %d", e.ID, e.Submitted, e.Stored)
}

// Is lets errors.Is(err, ErrConflict) match.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
