package store

import (
	"context"

	"lifedash/internal/domain"
)

func (s *Store) AddExpense(ctx context.Context, e domain.Expense) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (date, category, description, amount) VALUES (?, ?, ?, ?)`,
		e.Date, e.Category, e.Description, e.Amount,
	)
	return err
}

// ListExpenses returns expenses, optionally filtered to a YYYY-MM month,
// newest first.
func (s *Store) ListExpenses(ctx context.Context, month string) ([]domain.Expense, error) {
	query := `SELECT id, date, category, description, amount FROM expenses`
	var params []any
	if month != "" {
		query += ` WHERE SUBSTR(date, 1, 7) = ?`
		params = append(params, month)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Category, &e.Description, &e.Amount); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ExpenseTotal sums expenses for a YYYY-MM month, or all expenses when month
// is empty. Zero rows yield a clean 0.
func (s *Store) ExpenseTotal(ctx context.Context, month string) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses`
	var params []any
	if month != "" {
		query += ` WHERE SUBSTR(date, 1, 7) = ?`
		params = append(params, month)
	}

	var total float64
	err := s.db.QueryRowContext(ctx, query, params...).Scan(&total)
	return total, err
}
