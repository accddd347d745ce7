package stats

import (
	"math/rand"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-stats/internal/service/worktime"
	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func dayRecord(employeeID string, d int, in, out string, status attendance.Status) attendance.Record {
	return attendance.Record{
		EmployeeID: employeeID,
		Date:       day(d),
		CheckIn:    in,
		CheckOut:   out,
		ShiftType:  attendance.ShiftDay,
		SalaryType: attendance.SalaryHourly,
		Status:     status,
	}
}

func TestAggregator_StatusCounts(t *testing.T) {
	records := []attendance.Record{
		dayRecord("emp-1", 3, "08:30", "17:30", attendance.StatusPresent),
		dayRecord("emp-1", 4, "08:45", "17:30", attendance.StatusLate),
		dayRecord("emp-1", 5, "08:30", "16:00", attendance.StatusEarlyLeave),
		dayRecord("emp-1", 6, "08:30", "12:00", attendance.StatusHalfDayMorning),
		dayRecord("emp-1", 7, "13:00", "17:30", attendance.StatusHalfDayAfternoon),
		dayRecord("emp-1", 10, "", "", attendance.StatusAbsent),
		dayRecord("emp-1", 11, "", "", attendance.StatusAnnualLeave),
		dayRecord("emp-1", 12, "08:30", "17:30", attendance.StatusNone),
		dayRecord("emp-1", 13, "", "", attendance.StatusNone),
		dayRecord("emp-1", 14, "8h30", "17:30", attendance.StatusLate),
	}

	got := NewAggregator(worktime.NewClassifier()).Aggregate("emp-1", 2025, 3, records)

	assert.Equal(t, "emp-1", got.EmployeeID)
	assert.Equal(t, 2025, got.Year)
	assert.Equal(t, 3, got.Month)
	assert.Equal(t, 10, got.AttendanceRecordCount)
	assert.Equal(t, 7, got.WorkDays)
	assert.Equal(t, 2, got.LateDays)
	assert.Equal(t, 1, got.EarlyLeaveDays)
	assert.Equal(t, 1, got.MorningHalfDays)
	assert.Equal(t, 1, got.AfternoonHalfDays)
	assert.Equal(t, 1, got.AbsentDays)
	assert.Equal(t, 1, got.AnnualLeaveDays)
	assert.Equal(t, 1, got.SkippedRecordCount)
}

func TestAggregator_SumsHoursAndMinutes(t *testing.T) {
	records := []attendance.Record{
		dayRecord("emp-1", 3, "08:30", "17:30", attendance.StatusPresent),
		dayRecord("emp-1", 4, "08:30", "17:30", attendance.StatusPresent),
		dayRecord("emp-1", 5, "21:00", "02:00", attendance.StatusPresent),
	}

	got := NewAggregator(worktime.NewClassifier()).Aggregate("emp-1", 2025, 3, records)

	assert.Equal(t, "16.00", got.RegularHours.StringFixed(2))
	assert.Equal(t, "5.00", got.OvertimeHours.StringFixed(2))
	assert.Equal(t, "4.00", got.NightHours.StringFixed(2))
	assert.Equal(t, "0.00", got.EarlyHours.StringFixed(2))
	assert.Equal(t, "0.00", got.HolidayHours.StringFixed(2))
	assert.Equal(t, 540+540+300, got.TotalWorkMinutes)
	assert.Equal(t, 3, got.WorkDays)
}

func TestAggregator_RoundsMonthlyTotalOnce(t *testing.T) {
	// three 20 minute sessions are exactly one hour
	var records []attendance.Record
	for d := 3; d <= 5; d++ {
		records = append(records, dayRecord("emp-1", d, "08:30", "08:50", attendance.StatusPresent))
	}

	got := NewAggregator(worktime.NewClassifier()).Aggregate("emp-1", 2025, 3, records)

	assert.Equal(t, "1.00", got.RegularHours.StringFixed(2))
	assert.Equal(t, 60, got.TotalWorkMinutes)
}

func TestAggregator_ManyShortSessionsDoNotCompound(t *testing.T) {
	// 30 one-minute sessions: 0.0167h each would round up to 0.02 on its own
	var records []attendance.Record
	for d := 1; d <= 30; d++ {
		records = append(records, dayRecord("emp-1", d, "08:30", "08:31", attendance.StatusPresent))
	}

	got := NewAggregator(worktime.NewClassifier()).Aggregate("emp-1", 2025, 3, records)

	assert.Equal(t, 30, got.TotalWorkMinutes)
	assert.Equal(t, "0.50", got.RegularHours.StringFixed(2))
	assert.Equal(t, 30, got.WorkDays)
}

func TestAggregator_MixedCategoriesRoundOnce(t *testing.T) {
	// 21:50-22:10 is 10 overtime + 10 night-overtime minutes per day
	var records []attendance.Record
	for d := 1; d <= 6; d++ {
		records = append(records, dayRecord("emp-1", d, "21:50", "22:10", attendance.StatusPresent))
	}

	got := NewAggregator(worktime.NewClassifier()).Aggregate("emp-1", 2025, 3, records)

	// 120 overtime minutes and 60 night minutes in total
	assert.Equal(t, "2.00", got.OvertimeHours.StringFixed(2))
	assert.Equal(t, "1.00", got.NightHours.StringFixed(2))
}

func TestAggregator_OrderIndependent(t *testing.T) {
	records := []attendance.Record{
		dayRecord("emp-1", 3, "08:30", "17:30", attendance.StatusPresent),
		dayRecord("emp-1", 4, "06:10", "19:20", attendance.StatusLate),
		dayRecord("emp-1", 5, "21:00", "02:00", attendance.StatusPresent),
		dayRecord("emp-1", 6, "", "", attendance.StatusAbsent),
		{EmployeeID: "emp-1", Date: day(8), CheckIn: "07:00", CheckOut: "18:20", ShiftType: attendance.ShiftDay, SalaryType: attendance.SalaryMonthly, IsHoliday: true},
		{EmployeeID: "emp-1", Date: day(9), CheckIn: "19:00", CheckOut: "07:00", ShiftType: attendance.ShiftNight, SalaryType: attendance.SalaryHourly, Status: attendance.StatusPresent},
	}

	agg := NewAggregator(worktime.NewClassifier())
	want := agg.Aggregate("emp-1", 2025, 3, records)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := append([]attendance.Record(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := agg.Aggregate("emp-1", 2025, 3, shuffled)
		assert.True(t, want.RegularHours.Equal(got.RegularHours))
		assert.True(t, want.EarlyHours.Equal(got.EarlyHours))
		assert.True(t, want.OvertimeHours.Equal(got.OvertimeHours))
		assert.True(t, want.NightHours.Equal(got.NightHours))
		assert.True(t, want.HolidayHours.Equal(got.HolidayHours))
		assert.Equal(t, want.TotalWorkMinutes, got.TotalWorkMinutes)
		assert.Equal(t, want.WorkDays, got.WorkDays)
		assert.Equal(t, want.LateDays, got.LateDays)
		assert.Equal(t, want.AbsentDays, got.AbsentDays)
	}
}

func TestAggregator_EmptyMonth(t *testing.T) {
	got := NewAggregator(worktime.NewClassifier()).Aggregate("emp-1", 2025, 3, nil)

	assert.Equal(t, 0, got.AttendanceRecordCount)
	assert.True(t, got.Hours().IsZero())
	assert.Zero(t, got.WorkDays)
}
