package store

import (
	"context"

	"lifedash/internal/domain"
)

func (s *Store) LogAllowance(ctx context.Context, a domain.AllowanceLog) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO allowance_logs
		 (date, start_date, end_date, overseas_days, overtime_days, allowance_amount, overtime_amount, total_earned)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Date, a.StartDate, a.EndDate, a.OverseasDays, a.OvertimeDays,
		a.AllowanceAmount, a.OvertimeAmount, a.TotalEarned,
	)
	return err
}

func (s *Store) ListAllowances(ctx context.Context) ([]domain.AllowanceLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, start_date, end_date, overseas_days, overtime_days,
		        allowance_amount, overtime_amount, total_earned
		 FROM allowance_logs ORDER BY date DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AllowanceLog
	for rows.Next() {
		var a domain.AllowanceLog
		if err := rows.Scan(&a.ID, &a.Date, &a.StartDate, &a.EndDate,
			&a.OverseasDays, &a.OvertimeDays,
			&a.AllowanceAmount, &a.OvertimeAmount, &a.TotalEarned); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
