package stats

import "context"

type Service interface {
	// RunMonthlyAggregation recomputes stats for every employee with attendance
	// in the requested month, skipping employees whose rows are unchanged.
	RunMonthlyAggregation(ctx context.Context, req RunAggregationRequest) (RunSummary, error)

	GetEmployeeStats(ctx context.Context, employeeID string, year, month int) (MonthlyStatsResponse, error)
	ListMonthlyStats(ctx context.Context, year, month int) ([]MonthlyStatsResponse, error)
}
