package models

// Clone returns a field-for-field copy of e stamped with id and version.
func Clone(e Entity, id, version int64) Entity {
	return Visit[Entity](e, cloner{fields: true, id: &id, version: &version})
}

// Copy returns a field-for-field copy of e keeping its stamp.
func Copy(e Entity) Entity {
	return Visit[Entity](e, cloner{fields: true})
}

// Blank returns a record of the same variant as e carrying only the stamp.
func Blank(e Entity, id, version int64) Entity {
	return Visit[Entity](e, cloner{id: &id, version: &version})
}

// CloneAs is Clone for callers holding a concrete variant.
func CloneAs[T Entity](e T, id, version int64) T {
	return Clone(e, id, version).(T)
}

// CopyAs is Copy for callers holding a concrete variant.
func CopyAs[T Entity](e T) T {
	return Copy(e).(T)
}

// EditOf returns a sparse edit of e: same id and version, every other field
// unset. Set the fields to change and write it back to the store; the
// fields left unset keep their stored values.
func EditOf[T Entity](e T) T {
	return Visit[Entity](e, cloner{}).(T)
}

// cloner copies a record. With fields unset only the envelope survives;
// a nil id keeps the source stamp.
type cloner struct {
	fields      bool
	id, version *int64
}

func (c cloner) stamp(src *Envelope) Envelope {
	if c.id != nil {
		return Envelope{ID: dup(c.id), Version: dup(c.version)}
	}
	return Envelope{ID: dup(src.ID), Version: dup(src.Version)}
}

func (c cloner) VisitCurrency(src *Currency) Entity {
	out := &Currency{Envelope: c.stamp(&src.Envelope)}
	if c.fields {
		out.Code = dup(src.Code)
		out.Name = dup(src.Name)
	}
	return out
}

func (c cloner) VisitPerson(src *Person) Entity {
	out := &Person{Envelope: c.stamp(&src.Envelope)}
	if c.fields {
		out.UserName = dup(src.UserName)
		out.DisplayName = dup(src.DisplayName)
		out.Supervisor = src.Supervisor
	}
	return out
}

func (c cloner) VisitGroupReport(src *GroupReport) Entity {
	out := &GroupReport{Envelope: c.stamp(&src.Envelope)}
	if c.fields {
		out.Created = dup(src.Created)
		out.Purpose = dup(src.Purpose)
		out.Reporter = src.Reporter
		out.ApprovedSupervisor = src.ApprovedSupervisor
		out.Status = dup(src.Status)
	}
	return out
}

func (c cloner) VisitLineItem(src *LineItem) Entity {
	out := &LineItem{Envelope: c.stamp(&src.Envelope)}
	if c.fields {
		out.Amount = dup(src.Amount)
		out.Currency = src.Currency
		out.Incurred = dup(src.Incurred)
		out.Purpose = dup(src.Purpose)
		out.Report = src.Report
	}
	return out
}
