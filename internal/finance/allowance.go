// Package finance holds the pure arithmetic behind the trackers: salary
// allowances, loan balances, and leave entitlement.
package finance

import "math"

// Allowance computes the overseas allowance and overtime amount for a pay
// period. The daily rate is the monthly base spread over the fiscal working
// days; overseas days earn ratePct percent of it, overtime days earn it in
// full. Both results are rounded half-up to cents.
func Allowance(baseSalary, fiscalDays, overseasDays, overtimeDays, ratePct float64) (allowance, overtime float64) {
	if fiscalDays <= 0 {
		return 0, 0
	}
	dailyRate := baseSalary / fiscalDays
	allowance = roundCents(dailyRate * overseasDays * ratePct / 100)
	overtime = roundCents(dailyRate * overtimeDays)
	return allowance, overtime
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
