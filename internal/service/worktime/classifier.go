package worktime

import (
	"github.com/cmlabs-hris/worktime-stats/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-stats/internal/domain/stats"
	"github.com/shopspring/decimal"
)

// HourPlaces is the rounding applied when minutes become hours.
const HourPlaces = 2

var minutesPerHour = decimal.NewFromInt(60)

// Minutes accumulates integer minutes per category before the single
// conversion to hours.
type Minutes struct {
	Regular  int
	Early    int
	Overtime int
	Night    int
	Holiday  int
}

func (m *Minutes) credit(targets Category, n int) {
	if targets.Has(CategoryRegular) {
		m.Regular += n
	}
	if targets.Has(CategoryEarly) {
		m.Early += n
	}
	if targets.Has(CategoryOvertime) {
		m.Overtime += n
	}
	if targets.Has(CategoryNight) {
		m.Night += n
	}
	if targets.Has(CategoryHoliday) {
		m.Holiday += n
	}
}

// Add returns the per-category sum of m and o.
func (m Minutes) Add(o Minutes) Minutes {
	return Minutes{
		Regular:  m.Regular + o.Regular,
		Early:    m.Early + o.Early,
		Overtime: m.Overtime + o.Overtime,
		Night:    m.Night + o.Night,
		Holiday:  m.Holiday + o.Holiday,
	}
}

// Hours converts to hours rounded to HourPlaces.
func (m Minutes) Hours() stats.CategorizedHours {
	return stats.CategorizedHours{
		Regular:  toHours(m.Regular),
		Early:    toHours(m.Early),
		Overtime: toHours(m.Overtime),
		Night:    toHours(m.Night),
		Holiday:  toHours(m.Holiday),
	}
}

func toHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour).Round(HourPlaces)
}

// Classifier maps attendance sessions onto pay-category minutes.
type Classifier struct{}

// NewClassifier returns a Classifier using the built-in policy tables.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify splits one record's session into pay categories.
//
// A record without both check-in and check-out yields zero hours and no error.
// An unparseable time or unknown shift/salary yields zero hours and an error the
// caller is expected to count and move past.
func (c *Classifier) Classify(rec attendance.Record) (stats.CategorizedHours, error) {
	m, err := c.ClassifyMinutes(rec)
	if err != nil {
		return stats.CategorizedHours{}, err
	}
	return m.Hours(), nil
}

// ClassifyMinutes is Classify without the conversion to hours.
func (c *Classifier) ClassifyMinutes(rec attendance.Record) (Minutes, error) {
	if !rec.HasSession() {
		return Minutes{}, nil
	}

	start, end, err := Session(rec)
	if err != nil {
		return Minutes{}, err
	}

	policy, err := SelectPolicy(rec.IsHoliday, rec.ShiftType, rec.SalaryType)
	if err != nil {
		return Minutes{}, err
	}

	return policy.Apply(start, end), nil
}

// Session parses the record's times into a midnight-aware minute interval.
func Session(rec attendance.Record) (start, end int, err error) {
	in, err := ParseClock(rec.CheckIn)
	if err != nil {
		return 0, 0, err
	}
	out, err := ParseClock(rec.CheckOut)
	if err != nil {
		return 0, 0, err
	}
	start, end = SessionSpan(in, out)
	return start, end, nil
}
