package models

// Currency is a unit of account line items are billed in.
type Currency struct {
	Envelope

	// Code is the ISO-style currency code (e.g., "USD").
	Code *string

	// Name is the display name (e.g., "US Dollar").
	Name *string
}

// Kind implements Entity.
func (*Currency) Kind() Kind { return KindCurrency }
