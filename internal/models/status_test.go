package models

import "testing"

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusDraft, StatusSubmitted, true},
		{StatusDraft, StatusApproved, false},
		{StatusSubmitted, StatusApproved, true},
		{StatusSubmitted, StatusDeclined, true},
		{StatusSubmitted, StatusPaid, false},
		{StatusApproved, StatusPaid, true},
		{StatusApproved, StatusDeclined, true},
		{StatusDeclined, StatusDraft, true},
		{StatusDeclined, StatusSubmitted, false},
		{StatusPaid, StatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	for s := range statusNames {
		got, err := ParseStatus(s.String())
		if err != nil {
			t.Fatalf("ParseStatus(%q) failed: %v", s.String(), err)
		}
		if got != s {
			t.Errorf("ParseStatus(%q) = %v, want %v", s.String(), got, s)
		}
	}

	if _, err := ParseStatus("shredded"); err == nil {
		t.Error("expected error for unknown status")
	}
}
