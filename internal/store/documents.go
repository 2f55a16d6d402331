package store

import (
	"context"
	"database/sql"
	"fmt"

	"lifedash/internal/domain"
)

func (s *Store) AddDocument(ctx context.Context, d domain.Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (name, expiry_date) VALUES (?, ?)`,
		d.Name, d.ExpiryDate,
	)
	return err
}

func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, expiry_date FROM documents ORDER BY expiry_date ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// DocumentsExpiring returns documents expiring in the given year, narrowed to
// a single month when month is 1-12. Month 0 means the whole year.
func (s *Store) DocumentsExpiring(ctx context.Context, year, month int) ([]domain.Document, error) {
	query := `SELECT id, name, expiry_date FROM documents WHERE STRFTIME('%Y', expiry_date) = ?`
	params := []any{fmt.Sprintf("%d", year)}
	if month != 0 {
		query += ` AND STRFTIME('%m', expiry_date) = ?`
		params = append(params, fmt.Sprintf("%02d", month))
	}
	query += ` ORDER BY expiry_date ASC`

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// DocumentsExpiringBefore returns documents whose expiry date falls on or
// before the given ISO date, soonest first. Used by the reminder command.
func (s *Store) DocumentsExpiringBefore(ctx context.Context, date string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, expiry_date FROM documents WHERE expiry_date <= ? ORDER BY expiry_date ASC`,
		date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

func scanDocuments(rows *sql.Rows) ([]domain.Document, error) {
	var out []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.Name, &d.ExpiryDate); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
