package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/worktime-stats/internal/domain/stats"
	"github.com/cmlabs-hris/worktime-stats/internal/handler/http/response"
	"github.com/cmlabs-hris/worktime-stats/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type StatsHandler interface {
	RunAggregation(w http.ResponseWriter, r *http.Request)
	ListMonthly(w http.ResponseWriter, r *http.Request)
	GetEmployeeMonthly(w http.ResponseWriter, r *http.Request)
}

type statsHandlerImpl struct {
	statsService stats.Service
}

func NewStatsHandler(statsService stats.Service) StatsHandler {
	return &statsHandlerImpl{statsService: statsService}
}

func (h *statsHandlerImpl) RunAggregation(w http.ResponseWriter, r *http.Request) {
	var req stats.RunAggregationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	summary, err := h.statsService.RunMonthlyAggregation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly aggregation completed", summary)
}

func (h *statsHandlerImpl) ListMonthly(w http.ResponseWriter, r *http.Request) {
	year, month, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	result, err := h.statsService.ListMonthlyStats(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{Year: year, Month: month, TotalItems: len(result)})
}

func (h *statsHandlerImpl) GetEmployeeMonthly(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	year, month, ok := parsePeriod(w, r)
	if !ok {
		return
	}

	result, err := h.statsService.GetEmployeeStats(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// parsePeriod reads the year and month query parameters. Missing values are
// left zero for validation to reject; non-numeric values are a bad request.
func parsePeriod(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	details := map[string]string{}

	if y := r.URL.Query().Get("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil {
			details["year"] = "year must be a number"
		}
		year = v
	}
	if m := r.URL.Query().Get("month"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil {
			details["month"] = "month must be a number"
		}
		month = v
	}

	if len(details) > 0 {
		response.BadRequest(w, "Invalid query parameters", details)
		return 0, 0, false
	}
	return year, month, true
}
