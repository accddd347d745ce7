package postgresql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-stats/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// ListByMonth implements attendance.Repository.
func (r *attendanceRepository) ListByMonth(ctx context.Context, year, month int, employeeID *string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query := `
		SELECT a.employee_id, a.date,
			   COALESCE(to_char(a.check_in, 'HH24:MI'), ''),
			   COALESCE(to_char(a.check_out, 'HH24:MI'), ''),
			   a.shift_type, a.salary_type, COALESCE(a.status, ''),
			   h.date IS NOT NULL AS is_holiday
		FROM attendance_records a
		LEFT JOIN holidays h ON h.date = a.date
		WHERE a.date >= $1 AND a.date < $2
		  AND ($3::text IS NULL OR a.employee_id = $3)
		ORDER BY a.employee_id, a.date
	`

	rows, err := q.Query(ctx, query, from, to, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		var shift, salary, status string
		if err := rows.Scan(
			&rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
			&shift, &salary, &status, &rec.IsHoliday,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}

		// unknown shift or salary values are kept so classification can reject them
		rec.ShiftType = attendance.ShiftType(shift)
		rec.SalaryType = attendance.SalaryType(salary)
		rec.Status, err = attendance.ParseStatus(status)
		if err != nil {
			slog.Warn("Stats: ignoring unknown attendance status",
				"employee_id", rec.EmployeeID,
				"date", rec.Date.Format("2006-01-02"),
				"error", err)
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}
