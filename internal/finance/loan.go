package finance

import (
	"math"
	"time"
)

// LoanBalance returns the amount still owed given the loan total and the sum
// of payments made so far. Never negative.
func LoanBalance(totalAmount, paid float64) float64 {
	balance := roundCents(totalAmount - paid)
	if balance < 0 {
		return 0
	}
	return balance
}

// MonthsRemaining estimates how many monthly payments are left on a balance.
func MonthsRemaining(balance, monthlyPayment float64) int {
	if balance <= 0 || monthlyPayment <= 0 {
		return 0
	}
	return int(math.Ceil(balance / monthlyPayment))
}

// PayoffDate projects the month the balance reaches zero, counting whole
// months forward from the given date.
func PayoffDate(from time.Time, balance, monthlyPayment float64) time.Time {
	return from.AddDate(0, MonthsRemaining(balance, monthlyPayment), 0)
}
