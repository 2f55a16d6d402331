package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database holding all tracker data.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// Set connection pool (single connection for SQLite)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, logger: logger}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS expenses (
		id          INTEGER PRIMARY KEY,
		date        TEXT NOT NULL,
		category    TEXT NOT NULL,
		description TEXT,
		amount      REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);

	CREATE TABLE IF NOT EXISTS documents (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		expiry_date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id   INTEGER PRIMARY KEY,
		task TEXT NOT NULL,
		done INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_logs (
		id          INTEGER PRIMARY KEY,
		date        TEXT NOT NULL,
		days        REAL NOT NULL,
		description TEXT
	);

	CREATE TABLE IF NOT EXISTS allowance_logs (
		id               INTEGER PRIMARY KEY,
		date             TEXT NOT NULL,
		start_date       TEXT,
		end_date         TEXT,
		overseas_days    REAL NOT NULL,
		overtime_days    REAL NOT NULL,
		allowance_amount REAL NOT NULL,
		overtime_amount  REAL NOT NULL,
		total_earned     REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS loans_master (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		description     TEXT NOT NULL,
		total_amount    REAL NOT NULL,
		monthly_payment REAL NOT NULL,
		start_date      TEXT NOT NULL,
		duration_months INTEGER NOT NULL,
		due_day         INTEGER,
		status          TEXT NOT NULL DEFAULT 'Ongoing'
	);

	CREATE TABLE IF NOT EXISTS loan_payments (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		loan_id      INTEGER NOT NULL REFERENCES loans_master(id),
		payment_date TEXT NOT NULL,
		amount_paid  REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_loan_payments_loan ON loan_payments(loan_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Query executes a read statement and returns column names plus raw rows.
// This is the narrow interface the assistant's structured-query tool consumes;
// the SELECT-only gate lives in the tool, not here.
func (s *Store) Query(ctx context.Context, query string, params ...any) ([]string, [][]any, error) {
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, nil, fmt.Errorf("database error executing query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		out = append(out, vals)
	}
	return cols, out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
