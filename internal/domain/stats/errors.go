package stats

import "errors"

var (
	ErrMonthlyStatsNotFound = errors.New("monthly stats not found")
	ErrStoreUnavailable     = errors.New("statistics store unavailable")
)
