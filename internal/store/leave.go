package store

import (
	"context"

	"lifedash/internal/domain"
)

func (s *Store) LogLeave(ctx context.Context, l domain.LeaveLog) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leave_logs (date, days, description) VALUES (?, ?, ?)`,
		l.Date, l.Days, l.Description,
	)
	return err
}

func (s *Store) ListLeave(ctx context.Context) ([]domain.LeaveLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, days, description FROM leave_logs ORDER BY date DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LeaveLog
	for rows.Next() {
		var l domain.LeaveLog
		if err := rows.Scan(&l.ID, &l.Date, &l.Days, &l.Description); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// LeaveTaken sums all logged leave days.
func (s *Store) LeaveTaken(ctx context.Context) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(days), 0) FROM leave_logs`).Scan(&total)
	return total, err
}
