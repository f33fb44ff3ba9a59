package models

import "fmt"

// Merge fills every unset field of sparse with the value held by source.
// Fields already set on sparse are left alone, as is the envelope, so
// merging the same source twice changes nothing the second time.
//
// Value fields are copied; references to other records are shared.
// Merging two different variants returns ErrTypeMismatch.
func Merge(sparse, source Entity) error {
	if IsNil(sparse) {
		return fmt.Errorf("%w: nil record", ErrTypeMismatch)
	}
	return Visit[error](sparse, merger{source: source})
}

type merger struct {
	source Entity
}

func (m merger) VisitCurrency(c *Currency) error {
	src, ok := m.source.(*Currency)
	if !ok || src == nil {
		return mismatch(c, m.source)
	}
	fill(&c.Code, src.Code)
	fill(&c.Name, src.Name)
	return nil
}

func (m merger) VisitPerson(p *Person) error {
	src, ok := m.source.(*Person)
	if !ok || src == nil {
		return mismatch(p, m.source)
	}
	fill(&p.UserName, src.UserName)
	fill(&p.DisplayName, src.DisplayName)
	fillRef(&p.Supervisor, src.Supervisor)
	return nil
}

func (m merger) VisitGroupReport(r *GroupReport) error {
	src, ok := m.source.(*GroupReport)
	if !ok || src == nil {
		return mismatch(r, m.source)
	}
	fill(&r.Created, src.Created)
	fill(&r.Purpose, src.Purpose)
	fillRef(&r.Reporter, src.Reporter)
	fillRef(&r.ApprovedSupervisor, src.ApprovedSupervisor)
	fill(&r.Status, src.Status)
	return nil
}

func (m merger) VisitLineItem(li *LineItem) error {
	src, ok := m.source.(*LineItem)
	if !ok || src == nil {
		return mismatch(li, m.source)
	}
	fill(&li.Amount, src.Amount)
	fillRef(&li.Currency, src.Currency)
	fill(&li.Incurred, src.Incurred)
	fill(&li.Purpose, src.Purpose)
	fillRef(&li.Report, src.Report)
	return nil
}

func fill[T any](dst **T, src *T) {
	if *dst == nil {
		*dst = dup(src)
	}
}

func fillRef[T any](dst **T, src *T) {
	if *dst == nil {
		*dst = src
	}
}

func dup[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
