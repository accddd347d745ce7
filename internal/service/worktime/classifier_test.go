package worktime

import (
	"fmt"
	"testing"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-stats/internal/domain/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hoursWant struct {
	regular, early, overtime, night, holiday string
}

func assertHours(t *testing.T, want hoursWant, got stats.CategorizedHours) {
	t.Helper()
	assert.Equal(t, want.regular, got.Regular.StringFixed(2), "regular")
	assert.Equal(t, want.early, got.Early.StringFixed(2), "early")
	assert.Equal(t, want.overtime, got.Overtime.StringFixed(2), "overtime")
	assert.Equal(t, want.night, got.Night.StringFixed(2), "night")
	assert.Equal(t, want.holiday, got.Holiday.StringFixed(2), "holiday")
}

func record(in, out string, shift attendance.ShiftType, salary attendance.SalaryType, holiday bool) attendance.Record {
	return attendance.Record{
		EmployeeID: "emp-1",
		CheckIn:    in,
		CheckOut:   out,
		ShiftType:  shift,
		SalaryType: salary,
		IsHoliday:  holiday,
	}
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name string
		rec  attendance.Record
		want hoursWant
	}{
		{
			name: "day shift standard hours with lunch excluded",
			rec:  record("08:30", "17:30", attendance.ShiftDay, attendance.SalaryHourly, false),
			want: hoursWant{"8.00", "0.00", "0.00", "0.00", "0.00"},
		},
		{
			name: "day shift session spanning lunch",
			rec:  record("11:30", "13:30", attendance.ShiftDay, attendance.SalaryHourly, false),
			want: hoursWant{"1.00", "0.00", "0.00", "0.00", "0.00"},
		},
		{
			name: "day shift early start",
			rec:  record("06:00", "12:00", attendance.ShiftDay, attendance.SalaryMonthly, false),
			want: hoursWant{"3.50", "2.50", "0.00", "0.00", "0.00"},
		},
		{
			name: "day shift crossing midnight",
			rec:  record("21:00", "02:00", attendance.ShiftDay, attendance.SalaryHourly, false),
			want: hoursWant{"0.00", "0.00", "5.00", "4.00", "0.00"},
		},
		{
			name: "day shift full day into overtime",
			rec:  record("08:30", "20:00", attendance.ShiftDay, attendance.SalaryHourly, false),
			want: hoursWant{"8.00", "0.00", "2.00", "0.00", "0.00"},
		},
		{
			name: "day shift minutes before early window are not counted",
			rec:  record("02:00", "06:00", attendance.ShiftDay, attendance.SalaryHourly, false),
			want: hoursWant{"0.00", "2.00", "0.00", "0.00", "0.00"},
		},
		{
			name: "hourly holiday session",
			rec:  record("06:00", "16:00", attendance.ShiftDay, attendance.SalaryHourly, true),
			want: hoursWant{"0.00", "0.00", "0.50", "0.00", "9.00"},
		},
		{
			name: "monthly holiday session over cap",
			rec:  record("08:00", "18:00", attendance.ShiftDay, attendance.SalaryMonthly, true),
			want: hoursWant{"0.00", "0.00", "0.50", "0.00", "8.50"},
		},
		{
			name: "annual holiday session under cap",
			rec:  record("09:00", "15:00", attendance.ShiftDay, attendance.SalaryAnnual, true),
			want: hoursWant{"0.00", "0.00", "0.00", "0.00", "5.00"},
		},
		{
			name: "night shift full session",
			rec:  record("19:00", "07:00", attendance.ShiftNight, attendance.SalaryHourly, false),
			want: hoursWant{"3.00", "0.00", "3.00", "8.00", "0.00"},
		},
		{
			name: "night shift on holiday uses windowed holiday policy",
			rec:  record("19:00", "07:00", attendance.ShiftNight, attendance.SalaryMonthly, true),
			want: hoursWant{"0.00", "0.00", "11.00", "0.00", "11.00"},
		},
		{
			name: "night shift minutes past 32:30 are not counted",
			rec:  record("19:00", "09:00", attendance.ShiftNight, attendance.SalaryHourly, false),
			want: hoursWant{"3.00", "0.00", "4.50", "8.00", "0.00"},
		},
		{
			name: "defaults apply to empty shift and salary",
			rec:  record("08:30", "17:30", "", "", false),
			want: hoursWant{"8.00", "0.00", "0.00", "0.00", "0.00"},
		},
	}

	c := NewClassifier()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Classify(tc.rec)
			require.NoError(t, err)
			assertHours(t, tc.want, got)
		})
	}
}

func TestClassifier_RoundsOnceAfterSummingWindows(t *testing.T) {
	// 10 minutes in the overtime window and 10 in night overtime. Rounding
	// each window separately would give 0.34.
	got, err := NewClassifier().Classify(record("21:50", "22:10", attendance.ShiftDay, attendance.SalaryHourly, false))
	require.NoError(t, err)
	assert.Equal(t, "0.33", got.Overtime.StringFixed(2))
	assert.Equal(t, "0.17", got.Night.StringFixed(2))
}

func TestClassifier_MissingTimesYieldZero(t *testing.T) {
	c := NewClassifier()
	for _, rec := range []attendance.Record{
		record("08:00", "", attendance.ShiftDay, attendance.SalaryHourly, false),
		record("", "17:00", attendance.ShiftDay, attendance.SalaryHourly, false),
		record("", "", attendance.ShiftNight, attendance.SalaryHourly, true),
	} {
		got, err := c.Classify(rec)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	}
}

func TestClassifier_MalformedRecords(t *testing.T) {
	c := NewClassifier()

	got, err := c.Classify(record("25:00", "17:00", attendance.ShiftDay, attendance.SalaryHourly, false))
	assert.ErrorIs(t, err, attendance.ErrMalformedTime)
	assert.True(t, got.IsZero())

	got, err = c.Classify(record("08:00", "17:00", "swing", attendance.SalaryHourly, false))
	assert.ErrorIs(t, err, attendance.ErrUnknownShiftType)
	assert.True(t, got.IsZero())

	got, err = c.Classify(record("08:00", "17:00", attendance.ShiftDay, "weekly", false))
	assert.ErrorIs(t, err, attendance.ErrUnknownSalaryType)
	assert.True(t, got.IsZero())
}

func TestClassifier_DayShiftCoversWorkedMinutesOnce(t *testing.T) {
	c := NewClassifier()
	for start := 240; start < 1320; start += 15 {
		for end := start; end <= 1320; end += 15 {
			in := fmt.Sprintf("%02d:%02d", start/60, start%60)
			out := fmt.Sprintf("%02d:%02d", end/60, end%60)
			m, err := c.ClassifyMinutes(record(in, out, attendance.ShiftDay, attendance.SalaryHourly, false))
			require.NoError(t, err)

			want := end - start - ExcludedMinutes(start, end)
			got := m.Regular + m.Early + m.Overtime + m.Night
			assert.Equal(t, want, got, "%s-%s", in, out)
			assert.Zero(t, m.Holiday)
		}
	}
}

func TestClassifier_HolidayHoursDominate(t *testing.T) {
	c := NewClassifier()
	for _, salary := range []attendance.SalaryType{attendance.SalaryHourly, attendance.SalaryMonthly, attendance.SalaryAnnual} {
		m, err := c.ClassifyMinutes(record("07:00", "19:00", attendance.ShiftDay, salary, true))
		require.NoError(t, err)
		assert.Zero(t, m.Regular, salary)
		assert.Zero(t, m.Early, salary)
		assert.Zero(t, m.Night, salary)
		assert.LessOrEqual(t, m.Overtime, m.Holiday, salary)
	}
}

func TestSelectPolicy(t *testing.T) {
	tests := []struct {
		holiday bool
		shift   attendance.ShiftType
		salary  attendance.SalaryType
		want    string
	}{
		{true, attendance.ShiftNight, attendance.SalaryMonthly, "holiday_windowed"},
		{true, attendance.ShiftDay, attendance.SalaryHourly, "holiday_windowed"},
		{true, attendance.ShiftDay, attendance.SalaryMonthly, "holiday_capped"},
		{true, attendance.ShiftDay, attendance.SalaryAnnual, "holiday_capped"},
		{false, attendance.ShiftNight, attendance.SalaryAnnual, "night_shift"},
		{false, attendance.ShiftDay, attendance.SalaryHourly, "day_shift"},
		{false, attendance.ShiftDay, attendance.SalaryMonthly, "day_shift"},
	}
	for _, tc := range tests {
		p, err := SelectPolicy(tc.holiday, tc.shift, tc.salary)
		require.NoError(t, err)
		assert.Equal(t, tc.want, p.Name)
	}
}

func TestPolicies_AreCopies(t *testing.T) {
	first := Policies()
	for i := range first {
		for j := range first[i].Windows {
			first[i].Windows[j].Start = -1
		}
	}
	for _, p := range Policies() {
		for _, w := range p.Windows {
			assert.GreaterOrEqual(t, w.Start, 0, "%s/%s", p.Name, w.Name)
			assert.Less(t, w.Start, w.End, "%s/%s", p.Name, w.Name)
		}
	}
}
