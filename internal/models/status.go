package models

import "fmt"

// Status is the lifecycle state of a GroupReport.
//
// Legal transitions:
//
//	Draft     -> Submitted
//	Submitted -> Approved | Declined
//	Approved  -> Paid | Declined
//	Declined  -> Draft
//
// The store accepts any status on any write; enforcing the table is left to
// the layer calling the store.
type Status int

const (
	StatusDraft Status = iota
	StatusSubmitted
	StatusApproved
	StatusDeclined
	StatusPaid
)

var statusNames = map[Status]string{
	StatusDraft:     "draft",
	StatusSubmitted: "submitted",
	StatusApproved:  "approved",
	StatusDeclined:  "declined",
	StatusPaid:      "paid",
}

var transitions = map[Status][]Status{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusDeclined},
	StatusApproved:  {StatusPaid, StatusDeclined},
	StatusDeclined:  {StatusDraft},
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// ParseStatus maps a status name back to its value.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", name)
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Ptr returns a pointer to a copy of s, for building sparse records.
func (s Status) Ptr() *Status { return &s }
