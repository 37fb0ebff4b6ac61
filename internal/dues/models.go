// Package dues implements the entitlement matching and due reconciliation
// engine: it joins the student roster against the catalog on normalized keys,
// applies per-item eligibility constraints, and reports which students still
// owe receipt of which items.
//
// Everything here is a pure function over immutable snapshots. Nothing is
// persisted; every query recomputes from the current roster and catalog.
package dues

import (
	"github.com/shopspring/decimal"

	"kitledger/internal/catalog"
	"kitledger/internal/roster"
)

// MatchRecord is the per-student reconciliation result. It only exists for
// students with at least one mapped item and at least one pending item.
//
// Invariants:
//   - PendingItems ⊆ MappedItems (by item ID)
//   - IssuedCount == len(MappedItems) - len(PendingItems)
//   - IssuedValue == max(MappedValue - PendingValue, 0)
type MatchRecord struct {
	Student      roster.Student  `json:"student"`
	MappedItems  []catalog.Item  `json:"mapped_items"`
	PendingItems []catalog.Item  `json:"pending_items"`
	IssuedCount  int             `json:"issued_count"`
	MappedValue  decimal.Decimal `json:"mapped_value"`
	PendingValue decimal.Decimal `json:"pending_value"`
	IssuedValue  decimal.Decimal `json:"issued_value"`
}

// DueStats summarizes a record set. It is always computed over the currently
// filtered records, never the unfiltered universe.
type DueStats struct {
	TotalStudents       int             `json:"total_students"`
	TotalPendingItems   int             `json:"total_pending_items"`
	TotalPendingAmount  decimal.Decimal `json:"total_pending_amount"`
	ImpactedCourseCount int             `json:"impacted_course_count"`
}

// Filters narrows a record set. All fields are optional and AND-combined.
// Course and Branch compare under Normalize; Search is a case-insensitive
// substring match on student name or student number.
type Filters struct {
	Search   string
	Course   string
	Year     *int
	Branch   string
	Semester *int
}

// Page is one slice of a filtered, ordered record set.
type Page struct {
	Records   []MatchRecord
	Total     int
	PageCount int
}
