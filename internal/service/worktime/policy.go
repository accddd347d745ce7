package worktime

import (
	"slices"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/attendance"
)

// Category is a set of pay buckets a window feeds.
type Category uint8

const (
	CategoryRegular Category = 1 << iota
	CategoryEarly
	CategoryOvertime
	CategoryNight
	CategoryHoliday
)

func (c Category) Has(o Category) bool {
	return c&o != 0
}

// Window is a span of the extended minute axis [Start,End) whose worked
// minutes are credited to every category in Targets.
type Window struct {
	Name          string
	Start         int
	End           int
	Targets       Category
	ExcludeBreaks bool
}

// Policy is the classification rule for one (holiday, shift, salary) branch.
// A policy with CapMinutes set ignores Windows and credits the whole session,
// net of breaks, to holiday, with the part above the cap also credited to overtime.
type Policy struct {
	Name       string
	Windows    []Window
	CapMinutes int
}

var (
	holidayWindowedPolicy = Policy{
		Name: "holiday_windowed",
		Windows: []Window{
			{Name: "early_holiday", Start: 240, End: 390, Targets: CategoryHoliday, ExcludeBreaks: true},
			{Name: "holiday_base", Start: 390, End: 930, Targets: CategoryHoliday, ExcludeBreaks: true},
			{Name: "holiday_overtime", Start: 930, End: 1950, Targets: CategoryHoliday | CategoryOvertime, ExcludeBreaks: true},
		},
	}

	holidayCappedPolicy = Policy{
		Name:       "holiday_capped",
		CapMinutes: 480,
	}

	nightShiftPolicy = Policy{
		Name: "night_shift",
		Windows: []Window{
			{Name: "base", Start: 1140, End: 1320, Targets: CategoryRegular, ExcludeBreaks: true},
			{Name: "night", Start: 1320, End: 1680, Targets: CategoryNight},
			{Name: "night_overtime", Start: 1680, End: 1800, Targets: CategoryNight | CategoryOvertime},
			{Name: "overtime", Start: 1800, End: 1950, Targets: CategoryOvertime},
		},
	}

	dayShiftPolicy = Policy{
		Name: "day_shift",
		Windows: []Window{
			{Name: "early", Start: 240, End: 510, Targets: CategoryEarly},
			{Name: "regular", Start: 510, End: 1050, Targets: CategoryRegular, ExcludeBreaks: true},
			{Name: "overtime", Start: 1080, End: 1320, Targets: CategoryOvertime, ExcludeBreaks: true},
			// 22:00 through 03:59 the next day
			{Name: "night_overtime", Start: 1320, End: 1679, Targets: CategoryNight | CategoryOvertime},
		},
	}
)

// Policies returns copies of every classification policy.
func Policies() []Policy {
	all := []Policy{holidayWindowedPolicy, holidayCappedPolicy, nightShiftPolicy, dayShiftPolicy}
	for i := range all {
		all[i].Windows = slices.Clone(all[i].Windows)
	}
	return all
}

// SelectPolicy picks the policy for a record's branch. Unknown shift or salary
// values are errors; empty values take the day-shift and hourly defaults.
func SelectPolicy(isHoliday bool, shift attendance.ShiftType, salary attendance.SalaryType) (Policy, error) {
	sh, err := attendance.ParseShiftType(string(shift))
	if err != nil {
		return Policy{}, err
	}
	sa, err := attendance.ParseSalaryType(string(salary))
	if err != nil {
		return Policy{}, err
	}

	switch {
	case isHoliday && (sh == attendance.ShiftNight || sa == attendance.SalaryHourly):
		return holidayWindowedPolicy, nil
	case isHoliday:
		return holidayCappedPolicy, nil
	case sh == attendance.ShiftNight:
		return nightShiftPolicy, nil
	default:
		return dayShiftPolicy, nil
	}
}

// Apply classifies the session [start,end) and returns minutes per category.
func (p Policy) Apply(start, end int) Minutes {
	var m Minutes
	if end <= start {
		return m
	}

	if p.CapMinutes > 0 {
		net := max(0, end-start-ExcludedMinutes(start, end))
		m.credit(CategoryHoliday, net)
		m.credit(CategoryOvertime, max(0, net-p.CapMinutes))
		return m
	}

	for _, w := range p.Windows {
		s, e := max(start, w.Start), min(end, w.End)
		if e <= s {
			continue
		}
		net := e - s
		if w.ExcludeBreaks {
			net = max(0, net-ExcludedMinutes(s, e))
		}
		m.credit(w.Targets, net)
	}
	return m
}
