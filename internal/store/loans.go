package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lifedash/internal/domain"
)

func (s *Store) AddLoan(ctx context.Context, l domain.Loan) (int64, error) {
	if l.Status == "" {
		l.Status = domain.LoanStatusOngoing
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO loans_master
		 (description, total_amount, monthly_payment, start_date, duration_months, due_day, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.Description, l.TotalAmount, l.MonthlyPayment, l.StartDate, l.DurationMonths, l.DueDay, l.Status,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) GetLoan(ctx context.Context, id int64) (*domain.Loan, error) {
	var l domain.Loan
	var dueDay sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, description, total_amount, monthly_payment, start_date, duration_months, due_day, status
		 FROM loans_master WHERE id = ?`, id,
	).Scan(&l.ID, &l.Description, &l.TotalAmount, &l.MonthlyPayment, &l.StartDate, &l.DurationMonths, &dueDay, &l.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no loan with id %d", id)
	}
	if err != nil {
		return nil, err
	}
	l.DueDay = int(dueDay.Int64)
	return &l, nil
}

func (s *Store) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, total_amount, monthly_payment, start_date, duration_months, due_day, status
		 FROM loans_master ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Loan
	for rows.Next() {
		var l domain.Loan
		var dueDay sql.NullInt64
		if err := rows.Scan(&l.ID, &l.Description, &l.TotalAmount, &l.MonthlyPayment,
			&l.StartDate, &l.DurationMonths, &dueDay, &l.Status); err != nil {
			return nil, err
		}
		l.DueDay = int(dueDay.Int64)
		out = append(out, l)
	}
	return out, rows.Err()
}

// AddLoanPayment records a payment and flips the loan to Paid once the paid
// total reaches the loan amount.
func (s *Store) AddLoanPayment(ctx context.Context, p domain.LoanPayment) error {
	loan, err := s.GetLoan(ctx, p.LoanID)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO loan_payments (loan_id, payment_date, amount_paid) VALUES (?, ?, ?)`,
		p.LoanID, p.Date, p.AmountPaid,
	)
	if err != nil {
		return err
	}

	paid, err := s.LoanPaid(ctx, p.LoanID)
	if err != nil {
		return err
	}
	if paid >= loan.TotalAmount && loan.Status != domain.LoanStatusPaid {
		_, err = s.db.ExecContext(ctx,
			`UPDATE loans_master SET status = ? WHERE id = ?`, domain.LoanStatusPaid, p.LoanID)
	}
	return err
}

// LoanPaid sums all payments against a loan.
func (s *Store) LoanPaid(ctx context.Context, loanID int64) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_paid), 0) FROM loan_payments WHERE loan_id = ?`, loanID,
	).Scan(&total)
	return total, err
}
