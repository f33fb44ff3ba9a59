package models

import "fmt"

// Visitor is one operation over records, with exactly one case per variant.
// Adding a variant adds a method here, which breaks every operation that
// does not handle it yet.
type Visitor[R any] interface {
	VisitCurrency(*Currency) R
	VisitPerson(*Person) R
	VisitGroupReport(*GroupReport) R
	VisitLineItem(*LineItem) R
}

// Visit dispatches e to the matching case of v.
func Visit[R any](e Entity, v Visitor[R]) R {
	switch e := e.(type) {
	case *Currency:
		return v.VisitCurrency(e)
	case *Person:
		return v.VisitPerson(e)
	case *GroupReport:
		return v.VisitGroupReport(e)
	case *LineItem:
		return v.VisitLineItem(e)
	}
	panic(fmt.Sprintf("models: unhandled entity %T", e))
}
