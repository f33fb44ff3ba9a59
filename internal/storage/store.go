// Package storage provides abstractions over the expenses entity store and
// the write journal kept beside it.
package storage

import (
	"context"

	"github.com/mmynk/expenses/internal/models"
)

// Index names a secondary index maintained by the store.
type Index string

const (
	// IndexPersonByLogin maps a login name to at most one Person id.
	IndexPersonByLogin Index = "person-by-login"

	// IndexReportsByReporter maps a Person id (decimal) to the ids of the
	// reports it filed, in insertion order.
	IndexReportsByReporter Index = "reports-by-reporter"
)

// EntityStore defines the operations callers may run against the store.
// Every record handed back is a resolved copy owned by the caller.
type EntityStore interface {
	// Write creates delta when it has no id, or applies it as a partial
	// update of the stored record when it does. Updates must carry the
	// version they were computed against; a stale version fails with a
	// *ConflictError. Returns a fresh read of the stored result.
	Write(ctx context.Context, delta models.Entity) (models.Entity, error)

	// Read returns a copy of the stored record with ref's id and variant,
	// with every relationship resolved. Only ref's id and kind are consulted.
	Read(ctx context.Context, ref models.Entity) (models.Entity, error)

	// Lookup returns a copy of the record with the given id, whatever its variant.
	Lookup(ctx context.Context, id int64) (models.Entity, error)

	// FindByKey returns the ids an index holds for key.
	FindByKey(ctx context.Context, index Index, key string) ([]int64, error)

	// List returns copies of every record of a kind, ordered by id.
	List(ctx context.Context, kind models.Kind) ([]models.Entity, error)
}

// JournalEntry is one accepted write as recorded in the journal.
type JournalEntry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string

	EntityID int64
	Version  int64
	Kind     models.Kind

	// Payload is the written record in wire form (JSON).
	Payload []byte

	// RecordedAt is the Unix timestamp (milliseconds) the entry was appended.
	RecordedAt int64
}

// Journal is an append-only audit trail of accepted writes.
// The store is never rebuilt from it.
type Journal interface {
	// Append records one accepted write. The entry ID and RecordedAt are
	// filled in by the journal when empty.
	Append(ctx context.Context, entry *JournalEntry) error

	// Entries returns every entry for an entity, oldest first.
	Entries(ctx context.Context, entityID int64) ([]JournalEntry, error)

	// Close releases any resources held by the journal.
	Close() error
}
