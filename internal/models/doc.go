// Package models defines the records kept by the expenses entity store.
//
// # Variants
//
// The record set is closed and fixed at compile time:
//   - Currency: a code and a display name
//   - Person: a login name, a display name and an optional supervisor
//   - GroupReport: an expense report filed by a person
//   - LineItem: one expense on a report, in some currency
//
// Every variant embeds an Envelope holding the id and version stamped by the
// store. All other fields are pointers so that a record can be sparse: a nil
// field means "not set" rather than a zero value.
//
// # Operations
//
// Logic that differs per variant is written as a Visitor, with one method
// per variant, and dispatched through Visit. Merge, Clone, Copy, Blank and
// EditOf are the visitors the store builds its write and read paths from.
//
// # Relationships
//
// Foreign keys are typed references (*Person, *Currency, *GroupReport). The
// store keeps only the referenced id and hands back resolved copies on every
// read, so a reference held by a caller is never the store's own record.
package models
