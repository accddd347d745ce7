package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/auth"
	"github.com/cmlabs-hris/worktime-stats/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-stats/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, auth.ErrEmployeeAccessDenied):
		Forbidden(w, "Access to this employee is not allowed")

	// Stats domain errors
	case errors.Is(err, stats.ErrMonthlyStatsNotFound):
		NotFound(w, "Monthly stats not found")
	case errors.Is(err, stats.ErrStoreUnavailable):
		ServiceUnavailable(w, "Stats store is unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
