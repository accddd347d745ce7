package stats

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/attendance"
	"github.com/cmlabs-hris/worktime-stats/internal/domain/stats"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type StatsServiceImpl struct {
	attendanceRepo attendance.Repository
	statsRepo      stats.Repository
	aggregator     *Aggregator
	concurrency    int
	now            func() time.Time
}

// NewStatsService wires the batch driver. A non-positive concurrency uses one
// worker per CPU.
func NewStatsService(
	attendanceRepo attendance.Repository,
	statsRepo stats.Repository,
	aggregator *Aggregator,
	concurrency int,
) stats.Service {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &StatsServiceImpl{
		attendanceRepo: attendanceRepo,
		statsRepo:      statsRepo,
		aggregator:     aggregator,
		concurrency:    concurrency,
		now:            time.Now,
	}
}

type employeeGroup struct {
	employeeID string
	records    []attendance.Record
}

// RunMonthlyAggregation implements stats.Service.
func (s *StatsServiceImpl) RunMonthlyAggregation(ctx context.Context, req stats.RunAggregationRequest) (stats.RunSummary, error) {
	if err := req.Validate(); err != nil {
		return stats.RunSummary{}, err
	}

	summary := stats.RunSummary{
		RunID:     uuid.NewString(),
		Year:      req.Year,
		Month:     req.Month,
		StartedAt: s.now(),
	}
	logger := slog.With("run_id", summary.RunID, "year", req.Year, "month", req.Month)

	if err := s.statsRepo.Ping(ctx); err != nil {
		return stats.RunSummary{}, fmt.Errorf("%w: %w", stats.ErrStoreUnavailable, err)
	}

	records, err := s.attendanceRepo.ListByMonth(ctx, req.Year, req.Month, req.EmployeeID)
	if err != nil {
		return stats.RunSummary{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	groups := groupByEmployee(records)
	summary.Employees = len(groups)
	logger.Info("Stats: starting monthly aggregation", "employees", len(groups), "records", len(records))

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for _, grp := range groups {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcome, err := s.processEmployee(ctx, grp, req)
			if err != nil {
				logger.Error("Stats: failed to aggregate employee", "employee_id", grp.employeeID, "error", err)
			}

			mu.Lock()
			summary.Record(grp.employeeID, outcome, err)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(summary.Failures, func(a, b stats.EmployeeFailure) int {
		return cmp.Compare(a.EmployeeID, b.EmployeeID)
	})
	summary.FinishedAt = s.now()

	logger.Info("Stats: monthly aggregation finished",
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"unchanged", summary.Unchanged,
		"errors", summary.Errors,
		"duration", summary.FinishedAt.Sub(summary.StartedAt))

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("monthly aggregation interrupted: %w", err)
	}
	return summary, nil
}

// processEmployee runs hash, compare, aggregate and upsert for one employee.
// A panic is reported as that employee's failure.
func (s *StatsServiceImpl) processEmployee(ctx context.Context, grp employeeGroup, req stats.RunAggregationRequest) (outcome stats.Outcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			outcome, err = stats.OutcomeError, fmt.Errorf("panic while aggregating: %v", p)
		}
	}()

	hash := Hash(grp.records)

	existing, err := s.statsRepo.FindOne(ctx, grp.employeeID, req.Year, req.Month)
	if err != nil {
		return stats.OutcomeError, fmt.Errorf("failed to load existing stats: %w", err)
	}
	if existing != nil && !req.Force && existing.AttendanceHash == hash {
		return stats.OutcomeUnchanged, nil
	}

	result := s.aggregator.Aggregate(grp.employeeID, req.Year, req.Month, grp.records)
	result.AttendanceHash = hash
	result.LastCalculatedAt = s.now()

	inserted, err := s.statsRepo.Upsert(ctx, result)
	if err != nil {
		return stats.OutcomeError, fmt.Errorf("failed to save stats: %w", err)
	}
	if inserted {
		return stats.OutcomeInserted, nil
	}
	return stats.OutcomeUpdated, nil
}

// groupByEmployee partitions records by employee, ordered by employee ID.
func groupByEmployee(records []attendance.Record) []employeeGroup {
	byEmployee := make(map[string][]attendance.Record)
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = append(byEmployee[rec.EmployeeID], rec)
	}

	groups := make([]employeeGroup, 0, len(byEmployee))
	for id, recs := range byEmployee {
		groups = append(groups, employeeGroup{employeeID: id, records: recs})
	}
	slices.SortFunc(groups, func(a, b employeeGroup) int {
		return cmp.Compare(a.employeeID, b.employeeID)
	})
	return groups
}

// GetEmployeeStats implements stats.Service.
func (s *StatsServiceImpl) GetEmployeeStats(ctx context.Context, employeeID string, year, month int) (stats.MonthlyStatsResponse, error) {
	q := stats.MonthlyStatsQuery{Year: year, Month: month}
	if err := q.Validate(); err != nil {
		return stats.MonthlyStatsResponse{}, err
	}

	result, err := s.statsRepo.FindOne(ctx, employeeID, year, month)
	if err != nil {
		return stats.MonthlyStatsResponse{}, err
	}
	if result == nil {
		return stats.MonthlyStatsResponse{}, stats.ErrMonthlyStatsNotFound
	}
	return stats.NewMonthlyStatsResponse(*result), nil
}

// ListMonthlyStats implements stats.Service.
func (s *StatsServiceImpl) ListMonthlyStats(ctx context.Context, year, month int) ([]stats.MonthlyStatsResponse, error) {
	q := stats.MonthlyStatsQuery{Year: year, Month: month}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	results, err := s.statsRepo.ListByMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	responses := make([]stats.MonthlyStatsResponse, 0, len(results))
	for _, r := range results {
		responses = append(responses, stats.NewMonthlyStatsResponse(r))
	}
	return responses, nil
}
