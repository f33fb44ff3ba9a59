package models

import (
	"errors"
	"testing"
	"time"
)

func fullPerson() *Person {
	return &Person{
		Envelope:    Envelope{ID: ptr(int64(7)), Version: ptr(int64(2))},
		UserName:    String("abc"),
		DisplayName: String("Able"),
		Supervisor:  Ref[Person](3),
	}
}

func ptr[T any](v T) *T { return &v }

func TestMergeFillsOnlyUnsetFields(t *testing.T) {
	sparse := &Person{DisplayName: String("Baker")}
	source := fullPerson()

	if err := Merge(sparse, source); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if *sparse.DisplayName != "Baker" {
		t.Errorf("display name: expected 'Baker', got '%s'", *sparse.DisplayName)
	}
	if sparse.UserName == nil || *sparse.UserName != "abc" {
		t.Errorf("user name: expected 'abc', got %v", sparse.UserName)
	}
	if sparse.Supervisor != source.Supervisor {
		t.Error("supervisor: expected reference to be shared with source")
	}
	if sparse.ID != nil || sparse.Version != nil {
		t.Error("envelope: expected merge to leave the stamp unset")
	}
}

func TestMergeDoesNotAliasValues(t *testing.T) {
	sparse := &Currency{}
	source := &Currency{Code: String("USD"), Name: String("US Dollar")}

	if err := Merge(sparse, source); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	*sparse.Code = "EUR"

	if *source.Code != "USD" {
		t.Errorf("source code changed through merged copy: got '%s'", *source.Code)
	}
}

func TestMergeIdempotent(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	source := &GroupReport{
		Created:  &created,
		Purpose:  String("Trip"),
		Reporter: Ref[Person](1),
		Status:   StatusSubmitted.Ptr(),
	}

	once := &GroupReport{Purpose: String("Conference")}
	if err := Merge(once, source); err != nil {
		t.Fatalf("first Merge failed: %v", err)
	}
	twice := CopyAs(once)
	if err := Merge(twice, source); err != nil {
		t.Fatalf("second Merge failed: %v", err)
	}

	if *twice.Purpose != *once.Purpose || !twice.Created.Equal(*once.Created) ||
		*twice.Status != *once.Status || twice.Reporter != once.Reporter {
		t.Errorf("second merge changed the record: once=%+v twice=%+v", once, twice)
	}
	if *once.Purpose != "Conference" {
		t.Errorf("purpose: expected 'Conference', got '%s'", *once.Purpose)
	}
}

func TestMergeFullRecordIsNoop(t *testing.T) {
	full := &LineItem{
		Amount:   Float(12.5),
		Currency: Ref[Currency](1),
		Incurred: Time(time.Unix(1700000000, 0)),
		Purpose:  String("Taxi"),
		Report:   Ref[GroupReport](2),
	}
	other := &LineItem{
		Amount:   Float(99),
		Currency: Ref[Currency](9),
		Incurred: Time(time.Unix(0, 0)),
		Purpose:  String("Hotel"),
		Report:   Ref[GroupReport](8),
	}
	before := CopyAs(full)

	if err := Merge(full, other); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if *full.Amount != *before.Amount || *full.Purpose != *before.Purpose ||
		full.Currency != before.Currency || full.Report != before.Report ||
		!full.Incurred.Equal(*before.Incurred) {
		t.Errorf("full record changed: before=%+v after=%+v", before, full)
	}
}

func TestMergeTypeMismatch(t *testing.T) {
	tests := []struct {
		name   string
		sparse Entity
		source Entity
	}{
		{"person from currency", &Person{}, &Currency{}},
		{"report from line item", &GroupReport{}, &LineItem{}},
		{"currency from nil", &Currency{}, nil},
		{"person from nil person", &Person{}, (*Person)(nil)},
		{"nil person", (*Person)(nil), &Person{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Merge(tt.sparse, tt.source)
			if !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("expected ErrTypeMismatch, got %v", err)
			}
		})
	}
}
