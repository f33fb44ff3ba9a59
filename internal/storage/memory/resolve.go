package memory

import (
	"fmt"

	"github.com/mmynk/expenses/internal/models"
	"github.com/mmynk/expenses/internal/storage"
)

// reader produces resolved copies of stored records. Its memo holds at most
// one copy per id, so a cycle such as a self-supervising person resolves to
// the copy already in progress instead of recursing forever.
type reader struct {
	records map[int64]models.Entity
	memo    map[int64]models.Entity
}

func newReader(records map[int64]models.Entity) *reader {
	return &reader{
		records: records,
		memo:    make(map[int64]models.Entity),
	}
}

// read returns the resolved copy of id. An empty kind accepts any variant.
func (r *reader) read(id int64, kind models.Kind) (models.Entity, error) {
	if cp, ok := r.memo[id]; ok {
		if kind != "" && cp.Kind() != kind {
			return nil, fmt.Errorf("%w: entity %d is a %s, not a %s", storage.ErrTypeMismatch, id, cp.Kind(), kind)
		}
		return cp, nil
	}

	stored, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: entity %d", storage.ErrNotFound, id)
	}
	if kind != "" && stored.Kind() != kind {
		return nil, fmt.Errorf("%w: entity %d is a %s, not a %s", storage.ErrTypeMismatch, id, stored.Kind(), kind)
	}

	cp := models.Copy(stored)
	r.memo[id] = cp
	if err := models.Visit[error](cp, resolver{r: r}); err != nil {
		return nil, err
	}
	return cp, nil
}

func (r *reader) readAll(ids []int64, kind models.Kind) ([]models.Entity, error) {
	out := make([]models.Entity, 0, len(ids))
	for _, id := range ids {
		e, err := r.read(id, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// resolver replaces every foreign key of a copy with the resolved copy of
// the record it names.
type resolver struct {
	r *reader
}

func (resolver) VisitCurrency(*models.Currency) error { return nil }

func (v resolver) VisitPerson(p *models.Person) error {
	var err error
	p.Supervisor, err = resolve(v.r, p.Supervisor)
	return err
}

func (v resolver) VisitGroupReport(g *models.GroupReport) error {
	var err error
	if g.Reporter, err = resolve(v.r, g.Reporter); err != nil {
		return err
	}
	g.ApprovedSupervisor, err = resolve(v.r, g.ApprovedSupervisor)
	return err
}

func (v resolver) VisitLineItem(li *models.LineItem) error {
	var err error
	if li.Currency, err = resolve(v.r, li.Currency); err != nil {
		return err
	}
	li.Report, err = resolve(v.r, li.Report)
	return err
}

func resolve[T any, P interface {
	*T
	models.Entity
}](r *reader, ref P) (P, error) {
	if ref == nil {
		return nil, nil
	}
	id, ok := models.IDOf(ref)
	if !ok {
		return nil, fmt.Errorf("%w: %s reference without id", storage.ErrInvalidReference, ref.Kind())
	}
	e, err := r.read(id, ref.Kind())
	if err != nil {
		return nil, err
	}
	return e.(P), nil
}
