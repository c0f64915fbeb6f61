// Package store handles SQLite call log persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/ivrstats/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const dateLayout = "2006-01-02"

// RequiredColumns lists the call_attempts columns a readable database must carry.
var RequiredColumns = []string{"consent_result", "time_attempted", "date_attempted", "duration_seconds"}

// Store wraps SQLite access for call attempts.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// OpenReadOnly opens an existing database for reading. The file is neither
// created nor migrated.
func OpenReadOnly(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on ping failure.
			_ = cerr
		}
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS call_attempts (
			id INTEGER PRIMARY KEY,
			consent_result TEXT NOT NULL,
			time_attempted TEXT NOT NULL,
			date_attempted TEXT NOT NULL,
			duration_seconds REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_call_attempts_date ON call_attempts(date_attempted);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRecords appends call attempts in a single transaction and returns the count written.
func (s *Store) InsertRecords(ctx context.Context, records []model.Record) (n int, err error) {
	if len(records) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO call_attempts (consent_result, time_attempted, date_attempted, duration_seconds)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, r := range records {
		if _, err = stmt.ExecContext(ctx, r.ConsentResult, r.TimeAttempted, formatDate(r.DateAttempted), r.DurationSeconds); err != nil {
			return 0, err
		}
		n++
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}

// ListRecords returns every stored call attempt in insertion order.
// Dates that fail to parse come back as the zero time.
func (s *Store) ListRecords(ctx context.Context) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT consent_result, time_attempted, date_attempted, duration_seconds
		FROM call_attempts
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		var date string
		if err := rows.Scan(&r.ConsentResult, &r.TimeAttempted, &date, &r.DurationSeconds); err != nil {
			return nil, err
		}
		if date != "" {
			if parsed, err := time.Parse(dateLayout, date); err == nil {
				r.DateAttempted = parsed
			}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Columns returns the column names of the call_attempts table.
// The result is empty when the table does not exist.
func (s *Store) Columns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `PRAGMA table_info(call_attempts)`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cols, nil
}

// CountRecords returns the number of stored call attempts.
func (s *Store) CountRecords(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM call_attempts`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
