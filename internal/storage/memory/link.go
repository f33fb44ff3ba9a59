package memory

import (
	"fmt"

	"github.com/mmynk/expenses/internal/models"
	"github.com/mmynk/expenses/internal/storage"
)

// linker checks every foreign key of a record about to be stored and
// reduces it to an identity-only reference. Caller-owned objects never end
// up inside the table.
type linker struct {
	records map[int64]models.Entity
}

func (linker) VisitCurrency(*models.Currency) error { return nil }

func (l linker) VisitPerson(p *models.Person) error {
	var err error
	p.Supervisor, err = link(l.records, p.Supervisor)
	return err
}

func (l linker) VisitGroupReport(g *models.GroupReport) error {
	var err error
	if g.Reporter, err = link(l.records, g.Reporter); err != nil {
		return err
	}
	g.ApprovedSupervisor, err = link(l.records, g.ApprovedSupervisor)
	return err
}

func (l linker) VisitLineItem(li *models.LineItem) error {
	var err error
	if li.Currency, err = link(l.records, li.Currency); err != nil {
		return err
	}
	li.Report, err = link(l.records, li.Report)
	return err
}

func link[T any, P interface {
	*T
	models.Entity
}](records map[int64]models.Entity, ref P) (P, error) {
	if ref == nil {
		return nil, nil
	}
	id, ok := models.IDOf(ref)
	if !ok {
		return nil, fmt.Errorf("%w: %s reference has no id", storage.ErrInvalidReference, ref.Kind())
	}
	target, ok := records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s %d does not exist", storage.ErrInvalidReference, ref.Kind(), id)
	}
	if target.Kind() != ref.Kind() {
		return nil, fmt.Errorf("%w: reference to %d expects a %s, stored a %s", storage.ErrTypeMismatch, id, ref.Kind(), target.Kind())
	}
	return models.Ref[T, P](id), nil
}
