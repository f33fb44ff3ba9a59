package models

import "time"

// GroupReport is an expense report filed by a reporter.
type GroupReport struct {
	Envelope

	// Created is when the report was opened.
	Created *time.Time

	// Purpose describes what the expenses were for (e.g., "Trip").
	Purpose *string

	// Reporter is the person who filed the report.
	Reporter *Person

	// ApprovedSupervisor is the person who approved the report, once approved.
	ApprovedSupervisor *Person

	// Status is the lifecycle state. See Status for legal transitions.
	Status *Status
}

// Kind implements Entity.
func (*GroupReport) Kind() Kind { return KindReport }

// LineItem is a single expense on a report.
type LineItem struct {
	Envelope

	// Amount is the expense amount in Currency.
	Amount *float64

	Currency *Currency

	// Incurred is when the expense happened.
	Incurred *time.Time

	Purpose *string

	// Report is the report this item belongs to.
	Report *GroupReport
}

// Kind implements Entity.
func (*LineItem) Kind() Kind { return KindLineItem }
