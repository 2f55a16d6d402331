package finance

import (
	"testing"
	"time"
)

func TestAllowance(t *testing.T) {
	tests := []struct {
		name                            string
		base, fiscal, overseas, ot, pct float64
		wantAllowance, wantOvertime     float64
	}{
		{"typical month", 5000, 22, 10, 2, 20, 454.55, 454.55},
		{"no days worked", 5000, 22, 0, 0, 20, 0, 0},
		{"zero fiscal days", 5000, 0, 10, 2, 20, 0, 0},
		{"full rate", 4400, 22, 5, 0, 100, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowance, overtime := Allowance(tt.base, tt.fiscal, tt.overseas, tt.ot, tt.pct)
			if allowance != tt.wantAllowance {
				t.Errorf("allowance = %v, want %v", allowance, tt.wantAllowance)
			}
			if overtime != tt.wantOvertime {
				t.Errorf("overtime = %v, want %v", overtime, tt.wantOvertime)
			}
		})
	}
}

func TestLoanBalance(t *testing.T) {
	if got := LoanBalance(12000, 4500); got != 7500 {
		t.Errorf("balance = %v, want 7500", got)
	}
	// Overpayment clamps to zero.
	if got := LoanBalance(1000, 1200); got != 0 {
		t.Errorf("overpaid balance = %v, want 0", got)
	}
}

func TestMonthsRemaining(t *testing.T) {
	if got := MonthsRemaining(7500, 500); got != 15 {
		t.Errorf("months = %d, want 15", got)
	}
	// Partial final month still counts.
	if got := MonthsRemaining(7501, 500); got != 16 {
		t.Errorf("months = %d, want 16", got)
	}
	if got := MonthsRemaining(0, 500); got != 0 {
		t.Errorf("months = %d, want 0", got)
	}
}

func TestPayoffDate(t *testing.T) {
	from := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	got := PayoffDate(from, 1000, 500)
	want := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("payoff = %v, want %v", got, want)
	}
}

func TestLeaveBalance(t *testing.T) {
	if got := LeaveBalance(12, 2.5, 4); got != 10.5 {
		t.Errorf("balance = %v, want 10.5", got)
	}
}
