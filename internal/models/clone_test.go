package models

import "testing"

func TestCloneOverridesStamp(t *testing.T) {
	src := fullPerson()

	out := CloneAs(src, 11, 0)

	if id, _ := IDOf(out); id != 11 {
		t.Errorf("id: expected 11, got %d", id)
	}
	if v, _ := VersionOf(out); v != 0 {
		t.Errorf("version: expected 0, got %d", v)
	}
	if *out.UserName != "abc" || *out.DisplayName != "Able" {
		t.Errorf("fields not copied: %+v", out)
	}
	if out.UserName == src.UserName {
		t.Error("user name pointer shared with source")
	}
	if id, _ := IDOf(src); id != 7 {
		t.Errorf("source id changed: got %d", id)
	}
}

func TestCopyKeepsStamp(t *testing.T) {
	src := fullPerson()

	out := CopyAs(src)

	if out == src {
		t.Fatal("expected a new record")
	}
	if *out.ID != 7 || *out.Version != 2 {
		t.Errorf("stamp: expected 7/2, got %d/%d", *out.ID, *out.Version)
	}
	if out.ID == src.ID {
		t.Error("id pointer shared with source")
	}
}

func TestBlankKeepsOnlyStamp(t *testing.T) {
	out := Blank(fullPerson(), 7, 3).(*Person)

	if *out.Version != 3 {
		t.Errorf("version: expected 3, got %d", *out.Version)
	}
	if out.UserName != nil || out.DisplayName != nil || out.Supervisor != nil {
		t.Errorf("expected every field unset, got %+v", out)
	}
}

func TestEditOf(t *testing.T) {
	src := &LineItem{
		Envelope: Envelope{ID: ptr(int64(4)), Version: ptr(int64(1))},
		Amount:   Float(3),
		Purpose:  String("Lunch"),
	}

	edit := EditOf(src)

	if *edit.ID != 4 || *edit.Version != 1 {
		t.Errorf("stamp: expected 4/1, got %d/%d", *edit.ID, *edit.Version)
	}
	if edit.Amount != nil || edit.Purpose != nil {
		t.Errorf("expected sparse edit, got %+v", edit)
	}
}

func TestRef(t *testing.T) {
	ref := Ref[GroupReport](5)

	if id, ok := IDOf(ref); !ok || id != 5 {
		t.Errorf("id: expected 5, got %d (set=%v)", id, ok)
	}
	if _, ok := VersionOf(ref); ok {
		t.Error("expected reference without version")
	}
	if ref.Kind() != KindReport {
		t.Errorf("kind: expected report, got %s", ref.Kind())
	}
}
