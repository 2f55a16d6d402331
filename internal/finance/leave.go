package finance

// LeaveBalance returns remaining leave days: entitlement plus carry-over,
// minus days taken.
func LeaveBalance(annualDays, carriedOver, taken float64) float64 {
	return annualDays + carriedOver - taken
}
