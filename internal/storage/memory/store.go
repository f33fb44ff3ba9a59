// Package memory provides the in-memory implementation of storage.EntityStore.
//
// The store owns a canonical table of records keyed by id plus two derived
// indices. Stored records are never handed out: every read returns a copy
// whose relationships are resolved against the table, and every write
// builds a brand-new record value for the next version.
package memory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/expenses/internal/models"
	"github.com/mmynk/expenses/internal/storage"
)

// Ensure Store implements storage.EntityStore
var _ storage.EntityStore = (*Store)(nil)

// Store is an in-memory, versioned entity store safe for concurrent use.
// A single lock covers the table, the indices and the id counter.
type Store struct {
	mu sync.RWMutex

	records map[int64]models.Entity
	lastID  int64

	// derived indices, rebuilt incrementally on every write
	byLogin    map[string]int64
	byReporter map[int64][]int64

	logger     *slog.Logger
	registerer prometheus.Registerer
	metrics    *metrics
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for write outcomes. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithRegisterer registers the store's metrics with reg.
// Without it the metrics are kept but not exported.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Store) {
		s.registerer = reg
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		records:    make(map[int64]models.Entity),
		byLogin:    make(map[string]int64),
		byReporter: make(map[int64][]int64),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = newMetrics(s.registerer)
	return s
}

// Len returns the number of records held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Write creates or updates a record. See storage.EntityStore.
func (s *Store) Write(ctx context.Context, delta models.Entity) (models.Entity, error) {
	if models.IsNil(delta) {
		return nil, fmt.Errorf("%w: nil entity", storage.ErrTypeMismatch)
	}

	start := time.Now()
	op := opCreate
	if _, ok := models.IDOf(delta); ok {
		op = opUpdate
	}

	s.mu.Lock()
	out, err := s.write(delta)
	s.mu.Unlock()

	s.metrics.observeWrite(delta.Kind(), op, err, time.Since(start))
	s.logWrite(ctx, delta, op, out, err)
	return out, err
}

func (s *Store) write(delta models.Entity) (models.Entity, error) {
	var next, prev models.Entity

	id, ok := models.IDOf(delta)
	if !ok {
		id = s.lastID + 1
		next = models.Clone(delta, id, 0)
	} else {
		stored, found := s.records[id]
		if !found {
			return nil, fmt.Errorf("%w: %s %d", storage.ErrNotFound, delta.Kind(), id)
		}
		if stored.Kind() != delta.Kind() {
			return nil, fmt.Errorf("%w: entity %d is a %s, not a %s", storage.ErrTypeMismatch, id, stored.Kind(), delta.Kind())
		}

		storedVersion, _ := models.VersionOf(stored)
		submitted, hasVersion := models.VersionOf(delta)
		if !hasVersion {
			submitted = -1
		}
		if submitted != storedVersion {
			return nil, &storage.ConflictError{ID: id, Submitted: submitted, Stored: storedVersion}
		}

		// caller-supplied fields first, then whatever the caller left unset
		next = models.Blank(stored, id, storedVersion+1)
		if err := models.Merge(next, delta); err != nil {
			return nil, err
		}
		if err := models.Merge(next, stored); err != nil {
			return nil, err
		}
		prev = stored
	}

	if err := models.Visit[error](next, linker{records: s.records}); err != nil {
		return nil, err
	}

	if err := models.Visit[error](next, keyChecker{store: s, id: id}); err != nil {
		return nil, err
	}

	models.Visit[struct{}](next, indexer{store: s, id: id, prev: prev})
	s.records[id] = next
	if id > s.lastID {
		s.lastID = id
	}

	return newReader(s.records).read(id, next.Kind())
}

// Read returns a resolved copy of the record ref identifies.
func (s *Store) Read(ctx context.Context, ref models.Entity) (models.Entity, error) {
	if models.IsNil(ref) {
		return nil, fmt.Errorf("%w: nil entity", storage.ErrTypeMismatch)
	}
	id, ok := models.IDOf(ref)
	if !ok {
		s.metrics.observeRead(opRead, storage.ErrNotFound)
		return nil, fmt.Errorf("%w: %s has no id", storage.ErrNotFound, ref.Kind())
	}

	out, err := view(s, func(r *reader) (models.Entity, error) {
		return r.read(id, ref.Kind())
	})
	s.metrics.observeRead(opRead, err)
	return out, err
}

// Lookup returns a resolved copy of the record with the given id.
func (s *Store) Lookup(ctx context.Context, id int64) (models.Entity, error) {
	out, err := view(s, func(r *reader) (models.Entity, error) {
		return r.read(id, "")
	})
	s.metrics.observeRead(opLookup, err)
	return out, err
}

// List returns resolved copies of every record of kind, ordered by id.
func (s *Store) List(ctx context.Context, kind models.Kind) ([]models.Entity, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", storage.ErrTypeMismatch, kind)
	}

	out, err := view(s, func(r *reader) ([]models.Entity, error) {
		ids := make([]int64, 0)
		for id, e := range s.records {
			if e.Kind() == kind {
				ids = append(ids, id)
			}
		}
		slices.Sort(ids)
		return r.readAll(ids, kind)
	})
	s.metrics.observeRead(opList, err)
	return out, err
}

// FindByKey returns the ids held by index under key. A key with no entry
// yields an empty result, not an error.
func (s *Store) FindByKey(ctx context.Context, index storage.Index, key string) ([]int64, error) {
	out, err := view(s, func(*reader) ([]int64, error) {
		return s.findByKey(index, key)
	})
	s.metrics.observeRead(opFind, err)
	return out, err
}

func (s *Store) findByKey(index storage.Index, key string) ([]int64, error) {
	switch index {
	case storage.IndexPersonByLogin:
		if id, ok := s.byLogin[key]; ok {
			return []int64{id}, nil
		}
		return nil, nil
	case storage.IndexReportsByReporter:
		personID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: reporter key %q is not an id", storage.ErrInvalidKey, key)
		}
		return slices.Clone(s.byReporter[personID]), nil
	}
	return nil, fmt.Errorf("%w: %q", storage.ErrUnknownIndex, index)
}

// FindPersonByLogin returns a resolved copy of the person with the given login.
func (s *Store) FindPersonByLogin(ctx context.Context, login string) (*models.Person, error) {
	out, err := view(s, func(r *reader) (*models.Person, error) {
		id, ok := s.byLogin[login]
		if !ok {
			return nil, fmt.Errorf("%w: no person with login %q", storage.ErrNotFound, login)
		}
		e, err := r.read(id, models.KindPerson)
		if err != nil {
			return nil, err
		}
		return e.(*models.Person), nil
	})
	s.metrics.observeRead(opFind, err)
	return out, err
}

// FindReportsByReporter returns resolved copies of the reports whose
// reporter is personID, in the order they were first filed.
func (s *Store) FindReportsByReporter(ctx context.Context, personID int64) ([]*models.GroupReport, error) {
	out, err := view(s, func(r *reader) ([]*models.GroupReport, error) {
		entities, err := r.readAll(s.byReporter[personID], models.KindReport)
		if err != nil {
			return nil, err
		}
		reports := make([]*models.GroupReport, len(entities))
		for i, e := range entities {
			reports[i] = e.(*models.GroupReport)
		}
		return reports, nil
	})
	s.metrics.observeRead(opFind, err)
	return out, err
}

// view runs fn under the read lock with a reader whose memo lives for
// this call only.
func view[T any](s *Store, fn func(*reader) (T, error)) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(newReader(s.records))
}

func (s *Store) logWrite(ctx context.Context, delta models.Entity, op string, out models.Entity, err error) {
	if err == nil {
		id, _ := models.IDOf(out)
		version, _ := models.VersionOf(out)
		s.logger.DebugContext(ctx, "Entity written",
			"kind", out.Kind(),
			"op", op,
			"id", id,
			"version", version,
		)
		return
	}

	var conflict *storage.ConflictError
	if errors.As(err, &conflict) {
		s.logger.WarnContext(ctx, "Write rejected: stale version",
			"kind", delta.Kind(),
			"id", conflict.ID,
			"submitted", conflict.Submitted,
			"stored", conflict.Stored,
		)
		return
	}
	s.logger.DebugContext(ctx, "Write rejected",
		"kind", delta.Kind(),
		"op", op,
		"error", err,
	)
}
