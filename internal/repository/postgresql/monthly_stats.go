package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-stats/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type monthlyStatsRepository struct {
	db *database.DB
}

func NewMonthlyStatsRepository(db *database.DB) stats.Repository {
	return &monthlyStatsRepository{db: db}
}

const monthlyStatsColumns = `
	id, employee_id, year, month,
	regular_hours, early_hours, overtime_hours, night_hours, holiday_hours, total_work_minutes,
	work_days, late_days, early_leave_days, absent_days, annual_leave_days,
	morning_half_days, afternoon_half_days,
	skipped_record_count, attendance_hash, attendance_record_count, last_calculated_at,
	created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMonthlyStats(row rowScanner) (stats.MonthlyStats, error) {
	var s stats.MonthlyStats
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Year, &s.Month,
		&s.RegularHours, &s.EarlyHours, &s.OvertimeHours, &s.NightHours, &s.HolidayHours, &s.TotalWorkMinutes,
		&s.WorkDays, &s.LateDays, &s.EarlyLeaveDays, &s.AbsentDays, &s.AnnualLeaveDays,
		&s.MorningHalfDays, &s.AfternoonHalfDays,
		&s.SkippedRecordCount, &s.AttendanceHash, &s.AttendanceRecordCount, &s.LastCalculatedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Ping implements stats.Repository.
func (r *monthlyStatsRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// FindOne implements stats.Repository.
func (r *monthlyStatsRepository) FindOne(ctx context.Context, employeeID string, year, month int) (*stats.MonthlyStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + monthlyStatsColumns + `
		FROM monthly_stats
		WHERE employee_id = $1 AND year = $2 AND month = $3
	`

	s, err := scanMonthlyStats(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get monthly stats: %w", err)
	}
	return &s, nil
}

// Upsert implements stats.Repository.
func (r *monthlyStatsRepository) Upsert(ctx context.Context, s stats.MonthlyStats) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_stats (
			employee_id, year, month,
			regular_hours, early_hours, overtime_hours, night_hours, holiday_hours, total_work_minutes,
			work_days, late_days, early_leave_days, absent_days, annual_leave_days,
			morning_half_days, afternoon_half_days,
			skipped_record_count, attendance_hash, attendance_record_count, last_calculated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		ON CONFLICT (employee_id, year, month) DO UPDATE SET
			regular_hours = EXCLUDED.regular_hours,
			early_hours = EXCLUDED.early_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			night_hours = EXCLUDED.night_hours,
			holiday_hours = EXCLUDED.holiday_hours,
			total_work_minutes = EXCLUDED.total_work_minutes,
			work_days = EXCLUDED.work_days,
			late_days = EXCLUDED.late_days,
			early_leave_days = EXCLUDED.early_leave_days,
			absent_days = EXCLUDED.absent_days,
			annual_leave_days = EXCLUDED.annual_leave_days,
			morning_half_days = EXCLUDED.morning_half_days,
			afternoon_half_days = EXCLUDED.afternoon_half_days,
			skipped_record_count = EXCLUDED.skipped_record_count,
			attendance_hash = EXCLUDED.attendance_hash,
			attendance_record_count = EXCLUDED.attendance_record_count,
			last_calculated_at = EXCLUDED.last_calculated_at,
			updated_at = NOW()
		RETURNING (xmax = 0) AS inserted
	`

	var inserted bool
	err := q.QueryRow(ctx, query,
		s.EmployeeID, s.Year, s.Month,
		s.RegularHours, s.EarlyHours, s.OvertimeHours, s.NightHours, s.HolidayHours, s.TotalWorkMinutes,
		s.WorkDays, s.LateDays, s.EarlyLeaveDays, s.AbsentDays, s.AnnualLeaveDays,
		s.MorningHalfDays, s.AfternoonHalfDays,
		s.SkippedRecordCount, s.AttendanceHash, s.AttendanceRecordCount, s.LastCalculatedAt,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert monthly stats: %w", err)
	}
	return inserted, nil
}

// ListByMonth implements stats.Repository.
func (r *monthlyStatsRepository) ListByMonth(ctx context.Context, year, month int) ([]stats.MonthlyStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + monthlyStatsColumns + `
		FROM monthly_stats
		WHERE year = $1 AND month = $2
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly stats: %w", err)
	}
	defer rows.Close()

	var result []stats.MonthlyStats
	for rows.Next() {
		s, err := scanMonthlyStats(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly stats: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly stats: %w", err)
	}
	return result, nil
}
