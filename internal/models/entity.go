package models

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch is returned when two records that must share a variant do not.
var ErrTypeMismatch = errors.New("entity type mismatch")

// Kind names a record variant.
type Kind string

const (
	KindCurrency Kind = "currency"
	KindPerson   Kind = "person"
	KindReport   Kind = "report"
	KindLineItem Kind = "line_item"
)

// Kinds lists every variant in a stable order.
var Kinds = []Kind{KindCurrency, KindPerson, KindReport, KindLineItem}

// Valid reports whether k names a known variant.
func (k Kind) Valid() bool {
	switch k {
	case KindCurrency, KindPerson, KindReport, KindLineItem:
		return true
	}
	return false
}

// Envelope carries the identity and version stamp shared by every record.
// Both are nil until the store first writes the record and are set together.
type Envelope struct {
	// ID is assigned by the store on first write and never reassigned.
	ID *int64

	// Version starts at 0 and grows by one on every accepted write.
	Version *int64
}

func (e *Envelope) envelope() *Envelope { return e }

// Stamped reports whether the store has assigned an id.
func (e *Envelope) Stamped() bool { return e.ID != nil }

// Entity is implemented by the pointer type of every variant.
type Entity interface {
	Kind() Kind
	envelope() *Envelope
}

// IsNil reports whether e is nil or a nil pointer to one of the variants.
func IsNil(e Entity) bool {
	switch e := e.(type) {
	case nil:
		return true
	case *Currency:
		return e == nil
	case *Person:
		return e == nil
	case *GroupReport:
		return e == nil
	case *LineItem:
		return e == nil
	}
	return false
}

// IDOf returns the record's id, if set.
func IDOf(e Entity) (int64, bool) {
	env := e.envelope()
	if env.ID == nil {
		return 0, false
	}
	return *env.ID, true
}

// VersionOf returns the record's version, if set.
func VersionOf(e Entity) (int64, bool) {
	env := e.envelope()
	if env.Version == nil {
		return 0, false
	}
	return *env.Version, true
}

// New returns an empty record of the given kind.
func New(kind Kind) (Entity, error) {
	switch kind {
	case KindCurrency:
		return &Currency{}, nil
	case KindPerson:
		return &Person{}, nil
	case KindReport:
		return &GroupReport{}, nil
	case KindLineItem:
		return &LineItem{}, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrTypeMismatch, kind)
}

func stamp(e Entity, id, version int64) {
	env := e.envelope()
	env.ID = &id
	env.Version = &version
}

func mismatch(want, got Entity) error {
	if got == nil {
		return fmt.Errorf("%w: expected %s, got nil", ErrTypeMismatch, want.Kind())
	}
	return fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, want.Kind(), got.Kind())
}
