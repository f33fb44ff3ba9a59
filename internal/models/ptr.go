package models

import "time"

// String returns a pointer to s.
func String(s string) *string { return &s }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Time returns a pointer to t.
func Time(t time.Time) *time.Time { return &t }

// Ref returns an identity-only reference to the record with the given id,
// for use as a foreign key. T must be a variant pointer type.
func Ref[T any, P interface {
	*T
	Entity
}](id int64) P {
	p := P(new(T))
	p.envelope().ID = &id
	return p
}
