package stats

import (
	"log/slog"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-stats/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-stats/internal/service/worktime"
)

// Aggregator folds one employee's month of attendance into MonthlyStats.
type Aggregator struct {
	classifier *worktime.Classifier
}

func NewAggregator(classifier *worktime.Classifier) *Aggregator {
	return &Aggregator{classifier: classifier}
}

// Aggregate is pure: the result depends only on the multiset of records.
// Minutes are summed across the month and converted to hours once, so
// rounding never compounds per record. Hash, ID and timestamps are left for
// the caller.
func (a *Aggregator) Aggregate(employeeID string, year, month int, records []attendance.Record) stats.MonthlyStats {
	result := stats.MonthlyStats{
		EmployeeID:            employeeID,
		Year:                  year,
		Month:                 month,
		AttendanceRecordCount: len(records),
	}

	var minutes worktime.Minutes
	for _, rec := range records {
		if rec.HasSession() {
			m, gross, err := a.classify(rec)
			if err != nil {
				slog.Warn("Stats: skipping hours for malformed attendance record",
					"employee_id", employeeID,
					"date", rec.Date.Format("2006-01-02"),
					"error", err)
				result.SkippedRecordCount++
			} else {
				minutes = minutes.Add(m)
				result.TotalWorkMinutes += gross
			}
		}

		countStatus(&result, effectiveStatus(rec))
	}

	result.SetHours(minutes.Hours())
	return result
}

// classify returns the record's categorized minutes and its gross span.
func (a *Aggregator) classify(rec attendance.Record) (worktime.Minutes, int, error) {
	start, end, err := worktime.Session(rec)
	if err != nil {
		return worktime.Minutes{}, 0, err
	}
	m, err := a.classifier.ClassifyMinutes(rec)
	if err != nil {
		return worktime.Minutes{}, 0, err
	}
	return m, end - start, nil
}

// effectiveStatus treats a row with no status but a full session as present.
func effectiveStatus(rec attendance.Record) attendance.Status {
	if rec.Status == attendance.StatusNone && rec.HasSession() {
		return attendance.StatusPresent
	}
	return rec.Status
}

func countStatus(s *stats.MonthlyStats, status attendance.Status) {
	switch status {
	case attendance.StatusPresent:
		s.WorkDays++
	case attendance.StatusLate:
		s.WorkDays++
		s.LateDays++
	case attendance.StatusEarlyLeave:
		s.WorkDays++
		s.EarlyLeaveDays++
	case attendance.StatusHalfDayMorning:
		s.WorkDays++
		s.MorningHalfDays++
	case attendance.StatusHalfDayAfternoon:
		s.WorkDays++
		s.AfternoonHalfDays++
	case attendance.StatusAbsent:
		s.AbsentDays++
	case attendance.StatusAnnualLeave:
		s.AnnualLeaveDays++
	}
}
