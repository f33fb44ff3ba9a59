package memory

import (
	"fmt"
	"slices"

	"github.com/mmynk/expenses/internal/models"
	"github.com/mmynk/expenses/internal/storage"
)

// keyChecker rejects a record that would take a unique index key from
// another record. It runs before indexer so a rejected write leaves every
// index untouched.
type keyChecker struct {
	store *Store
	id    int64
}

func (keyChecker) VisitCurrency(*models.Currency) error { return nil }

func (k keyChecker) VisitPerson(p *models.Person) error {
	if p.UserName == nil {
		return nil
	}
	if owner, ok := k.store.byLogin[*p.UserName]; ok && owner != k.id {
		return fmt.Errorf("%w: login %q belongs to person %d", storage.ErrDuplicateKey, *p.UserName, owner)
	}
	return nil
}

func (keyChecker) VisitGroupReport(*models.GroupReport) error { return nil }

func (keyChecker) VisitLineItem(*models.LineItem) error { return nil }

// indexer brings the secondary indices in line with a record about to
// replace prev (nil on create). Only persons and reports are indexed.
type indexer struct {
	store *Store
	id    int64
	prev  models.Entity
}

func (indexer) VisitCurrency(*models.Currency) struct{} { return struct{}{} }

func (ix indexer) VisitPerson(p *models.Person) struct{} {
	if old, ok := ix.prev.(*models.Person); ok && old.UserName != nil {
		if p.UserName == nil || *p.UserName != *old.UserName {
			delete(ix.store.byLogin, *old.UserName)
		}
	}
	if p.UserName != nil {
		ix.store.byLogin[*p.UserName] = ix.id
	}
	return struct{}{}
}

func (ix indexer) VisitGroupReport(g *models.GroupReport) struct{} {
	reporter, hasReporter := refID(g.Reporter)
	if old, ok := ix.prev.(*models.GroupReport); ok {
		if was, ok := refID(old.Reporter); ok && (!hasReporter || was != reporter) {
			ix.store.dropReport(was, ix.id)
		}
	}
	if hasReporter {
		ix.store.addReport(reporter, ix.id)
	}
	return struct{}{}
}

func (indexer) VisitLineItem(*models.LineItem) struct{} { return struct{}{} }

func refID(p *models.Person) (int64, bool) {
	if p == nil {
		return 0, false
	}
	return models.IDOf(p)
}

func (s *Store) addReport(personID, reportID int64) {
	ids := s.byReporter[personID]
	if slices.Contains(ids, reportID) {
		return
	}
	s.byReporter[personID] = append(ids, reportID)
}

func (s *Store) dropReport(personID, reportID int64) {
	ids := slices.DeleteFunc(s.byReporter[personID], func(id int64) bool { return id == reportID })
	if len(ids) == 0 {
		delete(s.byReporter, personID)
		return
	}
	s.byReporter[personID] = ids
}
