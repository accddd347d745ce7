package stats

import (
	"time"

	"github.com/cmlabs-hris/worktime-stats/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== REQUEST DTOs ==========

type RunAggregationRequest struct {
	Year       int     `json:"year" validate:"required,min=2000,max=2100"`
	Month      int     `json:"month" validate:"required,min=1,max=12"`
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitempty,min=1,max=64"`
	// Force recomputes even when the attendance hash is unchanged.
	Force bool `json:"force"`
}

func (r *RunAggregationRequest) Validate() error {
	return validator.Struct(r)
}

type MonthlyStatsQuery struct {
	Year  int `json:"year" validate:"required,min=2000,max=2100"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

func (q *MonthlyStatsQuery) Validate() error {
	return validator.Struct(q)
}

// ========== RESPONSE DTOs ==========

type EmployeeFailure struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

type RunSummary struct {
	RunID      string            `json:"run_id"`
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	Employees  int               `json:"employees"`
	Inserted   int               `json:"inserted"`
	Updated    int               `json:"updated"`
	Unchanged  int               `json:"unchanged"`
	Errors     int               `json:"errors"`
	Failures   []EmployeeFailure `json:"failures,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// Record tallies one employee outcome.
func (s *RunSummary) Record(employeeID string, outcome Outcome, err error) {
	switch outcome {
	case OutcomeInserted:
		s.Inserted++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeUnchanged:
		s.Unchanged++
	case OutcomeError:
		s.Errors++
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		s.Failures = append(s.Failures, EmployeeFailure{EmployeeID: employeeID, Error: msg})
	}
}

type MonthlyStatsResponse struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	RegularHours     decimal.Decimal `json:"regular_hours"`
	EarlyHours       decimal.Decimal `json:"early_hours"`
	OvertimeHours    decimal.Decimal `json:"overtime_hours"`
	NightHours       decimal.Decimal `json:"night_hours"`
	HolidayHours     decimal.Decimal `json:"holiday_hours"`
	TotalWorkMinutes int             `json:"total_work_minutes"`

	WorkDays          int `json:"work_days"`
	LateDays          int `json:"late_days"`
	EarlyLeaveDays    int `json:"early_leave_days"`
	AbsentDays        int `json:"absent_days"`
	AnnualLeaveDays   int `json:"annual_leave_days"`
	MorningHalfDays   int `json:"morning_half_days"`
	AfternoonHalfDays int `json:"afternoon_half_days"`

	SkippedRecordCount    int       `json:"skipped_record_count"`
	AttendanceRecordCount int       `json:"attendance_record_count"`
	AttendanceHash        string    `json:"attendance_hash"`
	LastCalculatedAt      time.Time `json:"last_calculated_at"`
}

func NewMonthlyStatsResponse(m MonthlyStats) MonthlyStatsResponse {
	return MonthlyStatsResponse{
		EmployeeID:            m.EmployeeID,
		Year:                  m.Year,
		Month:                 m.Month,
		RegularHours:          m.RegularHours,
		EarlyHours:            m.EarlyHours,
		OvertimeHours:         m.OvertimeHours,
		NightHours:            m.NightHours,
		HolidayHours:          m.HolidayHours,
		TotalWorkMinutes:      m.TotalWorkMinutes,
		WorkDays:              m.WorkDays,
		LateDays:              m.LateDays,
		EarlyLeaveDays:        m.EarlyLeaveDays,
		AbsentDays:            m.AbsentDays,
		AnnualLeaveDays:       m.AnnualLeaveDays,
		MorningHalfDays:       m.MorningHalfDays,
		AfternoonHalfDays:     m.AfternoonHalfDays,
		SkippedRecordCount:    m.SkippedRecordCount,
		AttendanceRecordCount: m.AttendanceRecordCount,
		AttendanceHash:        m.AttendanceHash,
		LastCalculatedAt:      m.LastCalculatedAt,
	}
}
