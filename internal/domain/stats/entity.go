package stats

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorizedHours holds classified hours per pay category, rounded to two decimals.
type CategorizedHours struct {
	Regular  decimal.Decimal
	Early    decimal.Decimal
	Overtime decimal.Decimal
	Night    decimal.Decimal
	Holiday  decimal.Decimal
}

func (h CategorizedHours) IsZero() bool {
	return h.Regular.IsZero() && h.Early.IsZero() && h.Overtime.IsZero() &&
		h.Night.IsZero() && h.Holiday.IsZero()
}

// MonthlyStats is the per-employee per-month aggregate, keyed by
// (EmployeeID, Year, Month).
type MonthlyStats struct {
	ID         string
	EmployeeID string
	Year       int
	Month      int

	RegularHours     decimal.Decimal
	EarlyHours       decimal.Decimal
	OvertimeHours    decimal.Decimal
	NightHours       decimal.Decimal
	HolidayHours     decimal.Decimal
	TotalWorkMinutes int

	WorkDays          int
	LateDays          int
	EarlyLeaveDays    int
	AbsentDays        int
	AnnualLeaveDays   int
	MorningHalfDays   int
	AfternoonHalfDays int

	SkippedRecordCount    int
	AttendanceHash        string
	AttendanceRecordCount int
	LastCalculatedAt      time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Hours returns the hour buckets as a CategorizedHours value.
func (m MonthlyStats) Hours() CategorizedHours {
	return CategorizedHours{
		Regular:  m.RegularHours,
		Early:    m.EarlyHours,
		Overtime: m.OvertimeHours,
		Night:    m.NightHours,
		Holiday:  m.HolidayHours,
	}
}

// SetHours copies h into the hour buckets.
func (m *MonthlyStats) SetHours(h CategorizedHours) {
	m.RegularHours = h.Regular
	m.EarlyHours = h.Early
	m.OvertimeHours = h.Overtime
	m.NightHours = h.Night
	m.HolidayHours = h.Holiday
}

// Outcome is what a batch run did with one employee.
type Outcome string

const (
	OutcomeInserted  Outcome = "inserted"
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeError     Outcome = "error"
)
