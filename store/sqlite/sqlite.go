/*
Package sqlite provides a SQLite-backed implementation of interest.CalculationStore.

PURPOSE:
  Keeps the history of calculations run by the API server so they can be
  listed and fetched again. In production the same schema works on
  PostgreSQL with minor dialect changes.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on either table
  - No DELETE statements outside Reset (tests and demos)

KEY TABLES:
  calculations:       One row per computation (input JSON, amount, cursor)
  calculation_events: Itemized accrual events, ordered by seq

INDEXES:
  - idx_calculations_created: Newest-first listing (hot path)
  - idx_calculations_kind:    Filtering by kind

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. An in-memory database is pinned to
  one connection, since every new connection would open an empty database.

WAL MODE:
  File databases are opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./data/interest.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - interest/store.go: Interface definition
  - interest/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/interest-engine/interest"
)

const (
	memoryPath = ":memory:"

	// Fixed-width so that created_at sorts lexically.
	timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store implements interest.CalculationStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ interest.CalculationStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	dsn := dbPath + "?_foreign_keys=on&_journal_mode=WAL"
	if dbPath == memoryPath {
		dsn = dbPath + "?_foreign_keys=on"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == memoryPath {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		convention TEXT NOT NULL,
		compound TEXT NOT NULL,
		input_json TEXT NOT NULL,
		amount INTEGER NOT NULL,
		next_date TEXT,
		anchor_day INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calculations_created
		ON calculations(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_calculations_kind
		ON calculations(kind);

	CREATE TABLE IF NOT EXISTS calculation_events (
		calculation_id TEXT NOT NULL REFERENCES calculations(id),
		seq INTEGER NOT NULL,
		at TEXT NOT NULL,
		kind TEXT NOT NULL,
		amount INTEGER NOT NULL,
		balance INTEGER NOT NULL,
		days INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (calculation_id, seq)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CALCULATION STORE (interest.CalculationStore interface)
// =============================================================================

// Save writes the record and its events atomically.
func (s *Store) Save(ctx context.Context, rec interest.CalculationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	_, err = sqlTx.ExecContext(ctx, `
		INSERT INTO calculations
		(id, kind, convention, compound, input_json, amount, next_date, anchor_day, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		string(rec.Kind),
		rec.Convention.String(),
		rec.Compound.String(),
		rec.InputJSON,
		int64(rec.Amount),
		nullString(rec.NextDate.String()),
		rec.AnchorDay,
		rec.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return interest.ErrDuplicateRecord
		}
		return fmt.Errorf("failed to save calculation: %w", err)
	}

	for i, e := range rec.Events {
		_, err := sqlTx.ExecContext(ctx, `
			INSERT INTO calculation_events (calculation_id, seq, at, kind, amount, balance, days)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, rec.ID, i, e.At.String(), string(e.Kind), int64(e.Amount), int64(e.Balance), e.Days)
		if err != nil {
			return fmt.Errorf("failed to save event %d: %w", i, err)
		}
	}

	return sqlTx.Commit()
}

// Get returns a record with its events.
func (s *Store) Get(ctx context.Context, id string) (interest.CalculationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, selectCalculations+` WHERE id = ?`, id)
	rec, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return interest.CalculationRecord{}, interest.ErrRecordNotFound
	}
	if err != nil {
		return interest.CalculationRecord{}, err
	}

	rec.Events, err = s.loadEvents(ctx, id)
	if err != nil {
		return interest.CalculationRecord{}, err
	}
	return rec, nil
}

// List returns records newest first, without their events.
func (s *Store) List(ctx context.Context, filter interest.RecordFilter) ([]interest.CalculationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		where []string
		args  []any
	)
	if filter.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(filter.Kind))
	}

	query := selectCalculations
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculations: %w", err)
	}
	defer rows.Close()

	records := []interest.CalculationRecord{}
	for rows.Next() {
		rec, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

const selectCalculations = `
	SELECT id, kind, convention, compound, input_json, amount, next_date, anchor_day, created_at
	FROM calculations`

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row scanner) (interest.CalculationRecord, error) {
	var (
		rec        interest.CalculationRecord
		kind       string
		convention string
		compound   string
		amount     int64
		nextDate   sql.NullString
		createdAt  string
	)

	err := row.Scan(&rec.ID, &kind, &convention, &compound, &rec.InputJSON,
		&amount, &nextDate, &rec.AnchorDay, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, err
	}
	if err != nil {
		return rec, fmt.Errorf("failed to scan calculation: %w", err)
	}

	rec.Kind = interest.CalculationKind(kind)
	rec.Amount = interest.Cents(amount)
	if rec.Convention, err = interest.ParseConvention(convention); err != nil {
		return rec, fmt.Errorf("calculation %s: %w", rec.ID, err)
	}
	if rec.Compound, err = interest.ParseCompoundMode(compound); err != nil {
		return rec, fmt.Errorf("calculation %s: %w", rec.ID, err)
	}
	if nextDate.Valid {
		if rec.NextDate, err = interest.ParseDate(nextDate.String); err != nil {
			return rec, fmt.Errorf("calculation %s: %w", rec.ID, err)
		}
	}
	rec.CreatedAt, _ = time.Parse(timestampLayout, createdAt)

	return rec, nil
}

func (s *Store) loadEvents(ctx context.Context, id string) (interest.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT at, kind, amount, balance, days
		FROM calculation_events
		WHERE calculation_id = ?
		ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events interest.Schedule
	for rows.Next() {
		var (
			e       interest.AccrualEvent
			at      string
			kind    string
			amount  int64
			balance int64
		)
		if err := rows.Scan(&at, &kind, &amount, &balance, &e.Days); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if e.At, err = interest.ParseDate(at); err != nil {
			return nil, err
		}
		e.Kind = interest.AccrualKind(kind)
		e.Amount = interest.Cents(amount)
		e.Balance = interest.Cents(balance)
		events = append(events, e)
	}
	return events, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"calculation_events", "calculations"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY"))
}
