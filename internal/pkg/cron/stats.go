package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/stats"
)

type StatsJobs struct {
	statsService      stats.Service
	location          *time.Location
	previousMonthDays int
	now               func() time.Time
}

func NewStatsJobs(statsService stats.Service, location *time.Location, previousMonthDays int) *StatsJobs {
	if location == nil {
		location = time.UTC
	}
	return &StatsJobs{
		statsService:      statsService,
		location:          location,
		previousMonthDays: previousMonthDays,
		now:               time.Now,
	}
}

func (j *StatsJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(Job{
		Name:     "aggregate_monthly_stats",
		Interval: interval,
		Timeout:  interval,
		Fn:       j.AggregateRecentMonths,
	})
}

type period struct {
	year  int
	month int
}

// periods returns the current month and, early in a month, the previous one.
func (j *StatsJobs) periods() []period {
	now := j.now().In(j.location)
	current := period{year: now.Year(), month: int(now.Month())}
	if now.Day() > j.previousMonthDays {
		return []period{current}
	}

	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, j.location).AddDate(0, -1, 0)
	return []period{{year: prev.Year(), month: int(prev.Month())}, current}
}

// AggregateRecentMonths refreshes monthly stats for the recent periods. A
// failing period does not stop the next one.
func (j *StatsJobs) AggregateRecentMonths(ctx context.Context) error {
	var errs []error
	for _, p := range j.periods() {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		summary, err := j.statsService.RunMonthlyAggregation(ctx, stats.RunAggregationRequest{Year: p.year, Month: p.month})
		if err != nil {
			slog.Error("Cron: Failed to aggregate monthly stats", "year", p.year, "month", p.month, "error", err)
			errs = append(errs, fmt.Errorf("aggregate %04d-%02d: %w", p.year, p.month, err))
			continue
		}

		slog.Info("Cron: Monthly stats aggregated",
			"run_id", summary.RunID,
			"year", p.year,
			"month", p.month,
			"inserted", summary.Inserted,
			"updated", summary.Updated,
			"unchanged", summary.Unchanged,
			"errors", summary.Errors)
	}
	return errors.Join(errs...)
}
