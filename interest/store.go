/*
store.go - Persistence interface for calculation history

PURPOSE:
  The engine itself is pure and keeps no state. Services built on it keep
  a history of the calculations they ran so that results can be listed,
  fetched again and audited. This file defines that record and the
  interface between the service and the database.

APPEND-ONLY CONTRACT:
  - Save(): Single record write
  - NO Update() or Delete() methods exist
  A record describes a computation that already happened.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - interest/store/memory.go: In-memory for testing

SEE ALSO:
  - api/handlers.go: Saves a record per computation
*/
package interest

import (
	"context"
	"time"
)

// CalculationKind names the operation a record was produced by.
type CalculationKind string

const (
	KindSingle  CalculationKind = "single"
	KindRunning CalculationKind = "running"
)

// CalculationRecord is a computation that ran, with its input as JSON.
type CalculationRecord struct {
	ID         string
	Kind       CalculationKind
	Convention Convention
	Compound   CompoundMode
	InputJSON  string
	Amount     Cents
	NextDate   Date
	AnchorDay  int
	CreatedAt  time.Time

	// Events is the itemized schedule. List leaves it empty; Get fills it.
	Events Schedule
}

// Cursor returns the cursor stored with the record.
func (r CalculationRecord) Cursor() Cursor {
	return Cursor{Next: r.NextDate, AnchorDay: r.AnchorDay}
}

// CalculationStore persists calculation records.
type CalculationStore interface {
	// Save persists a record. IDs are unique.
	Save(ctx context.Context, rec CalculationRecord) error

	// Get returns ErrRecordNotFound when id is unknown.
	Get(ctx context.Context, id string) (CalculationRecord, error)

	// List returns the newest records first, at most limit (0 = all).
	List(ctx context.Context, filter RecordFilter) ([]CalculationRecord, error)
}

type RecordFilter struct {
	Kind  CalculationKind // empty = all
	Limit int
}
