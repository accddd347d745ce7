package attendance

import (
	"fmt"
	"strings"
	"time"
)

type ShiftType string

const (
	ShiftDay   ShiftType = "day"
	ShiftNight ShiftType = "night"
)

// ParseShiftType maps a stored value onto the closed shift set.
// An empty value is a day shift.
func ParseShiftType(s string) (ShiftType, error) {
	switch ShiftType(strings.ToLower(strings.TrimSpace(s))) {
	case "", ShiftDay:
		return ShiftDay, nil
	case ShiftNight:
		return ShiftNight, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShiftType, s)
}

type SalaryType string

const (
	SalaryHourly  SalaryType = "hourly"
	SalaryMonthly SalaryType = "monthly"
	SalaryAnnual  SalaryType = "annual"
)

// ParseSalaryType maps a stored value onto the closed salary set.
// An empty value is hourly.
func ParseSalaryType(s string) (SalaryType, error) {
	switch SalaryType(strings.ToLower(strings.TrimSpace(s))) {
	case "", SalaryHourly:
		return SalaryHourly, nil
	case SalaryMonthly:
		return SalaryMonthly, nil
	case SalaryAnnual:
		return SalaryAnnual, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSalaryType, s)
}

// IsFixed reports whether the salary is paid per period rather than per hour.
func (s SalaryType) IsFixed() bool {
	return s == SalaryMonthly || s == SalaryAnnual
}

type Status string

const (
	StatusNone             Status = ""
	StatusPresent          Status = "present"
	StatusLate             Status = "late"
	StatusEarlyLeave       Status = "early_leave"
	StatusAbsent           Status = "absent"
	StatusAnnualLeave      Status = "annual_leave"
	StatusHalfDayMorning   Status = "half_day_morning"
	StatusHalfDayAfternoon Status = "half_day_afternoon"
)

// ParseStatus maps a stored value onto the closed status set. Unknown values
// are reported as an error and should be treated as StatusNone by callers.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusNone, StatusPresent, StatusLate, StatusEarlyLeave, StatusAbsent,
		StatusAnnualLeave, StatusHalfDayMorning, StatusHalfDayAfternoon:
		return st, nil
	}
	return StatusNone, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Record is one attendance row for one employee on one calendar date.
// CheckIn and CheckOut are "HH:MM" strings; empty means not recorded.
type Record struct {
	EmployeeID string
	Date       time.Time
	CheckIn    string
	CheckOut   string
	ShiftType  ShiftType
	SalaryType SalaryType
	Status     Status
	IsHoliday  bool
}

// HasSession reports whether both ends of the work session were recorded.
func (r Record) HasSession() bool {
	return r.CheckIn != "" && r.CheckOut != ""
}
