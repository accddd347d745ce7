package attendance

import "context"

// Repository is the read-only attendance source for statistics.
type Repository interface {
	// ListByMonth returns every row dated inside the given month, optionally
	// narrowed to a single employee. Rows come back ordered by employee and date.
	ListByMonth(ctx context.Context, year, month int, employeeID *string) ([]Record, error)
}
