package stats

import "context"

// Repository persists monthly statistics keyed by (employee, year, month).
type Repository interface {
	// Ping checks that the store is reachable before a batch starts.
	Ping(ctx context.Context) error

	// FindOne returns nil, nil when no record exists for the key.
	FindOne(ctx context.Context, employeeID string, year, month int) (*MonthlyStats, error)

	// Upsert writes the record atomically per key and reports whether it was inserted.
	Upsert(ctx context.Context, s MonthlyStats) (inserted bool, err error)

	ListByMonth(ctx context.Context, year, month int) ([]MonthlyStats, error)
}
