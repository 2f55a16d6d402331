package domain

// Entities stored in the SQLite database. Dates are ISO strings (YYYY-MM-DD),
// matching the column format the structured-query tool's SUBSTR filters rely on.

type Expense struct {
	ID          int64
	Date        string
	Category    string
	Description string
	Amount      float64
}

type Document struct {
	ID         int64
	Name       string
	ExpiryDate string
}

type Task struct {
	ID   int64
	Task string
	Done bool
}

type LeaveLog struct {
	ID          int64
	Date        string
	Days        float64
	Description string
}

// AllowanceLog records one computed salary-allowance round.
type AllowanceLog struct {
	ID              int64
	Date            string
	StartDate       string
	EndDate         string
	OverseasDays    float64
	OvertimeDays    float64
	AllowanceAmount float64
	OvertimeAmount  float64
	TotalEarned     float64
}

const (
	LoanStatusOngoing = "Ongoing"
	LoanStatusPaid    = "Paid"
)

type Loan struct {
	ID             int64
	Description    string
	TotalAmount    float64
	MonthlyPayment float64
	StartDate      string
	DurationMonths int
	DueDay         int
	Status         string
}

type LoanPayment struct {
	ID         int64
	LoanID     int64
	Date       string
	AmountPaid float64
}

// SalarySettings is the salary configuration kept in the settings table.
type SalarySettings struct {
	MonthlyBase     float64 `json:"monthly_base"`
	TotalFiscalDays float64 `json:"total_fiscal_days"`
	OverseasRatePct float64 `json:"overseas_allowance_rate"`
}

// LeaveSettings is the leave entitlement kept in the settings table.
type LeaveSettings struct {
	AnnualDays  float64 `json:"annual_leave_days"`
	StartDate   string  `json:"start_date"`
	CarriedOver float64 `json:"carried_over_days"`
}
