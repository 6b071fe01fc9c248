package analytics_api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"snow-tracker/internal/analytics"
	"snow-tracker/internal/charts"
	"snow-tracker/internal/logger"
	"snow-tracker/internal/utils"
)

// Handler handles dashboard analytics HTTP endpoints
type Handler struct {
	Service *analytics.Service
	Logger  *logger.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(service *analytics.Service, logger *logger.Logger) *Handler {
	return &Handler{
		Service: service,
		Logger:  logger,
	}
}

// RegisterRoutes registers the analytics routes on a chi router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/dashboard", func(r chi.Router) {
		r.Get("/filters", h.GetFilters)
		r.Get("/metrics", h.GetMetrics)
		r.Get("/charts", h.GetCharts)
		r.Get("/summary", h.GetSummary)
		r.Get("/revenue", h.GetRevenueByResort)
		r.Get("/lifts", h.GetLifts)
		r.Get("/incidents", h.GetIncidents)
		r.Get("/export", h.ExportMetrics)
	})
}

// Filter is a parsed dashboard filter
type Filter struct {
	Resort    string
	StartDate time.Time
	EndDate   time.Time
}

// ParseFilter reads resort, start_date and end_date from the query. Missing
// values default to the first resort and the dataset coverage.
func ParseFilter(service *analytics.Service, r *http.Request) (Filter, error) {
	query := r.URL.Query()
	first, last := service.DefaultRange()

	f := Filter{Resort: query.Get("resort"), StartDate: first, EndDate: last}
	if f.Resort == "" {
		if resorts := service.Resorts(); len(resorts) > 0 {
			f.Resort = resorts[0]
		}
	}

	if v := query.Get("start_date"); v != "" {
		start, err := analytics.ParseDate(v)
		if err != nil {
			return f, err
		}
		f.StartDate = start
	}
	if v := query.Get("end_date"); v != "" {
		end, err := analytics.ParseDate(v)
		if err != nil {
			return f, err
		}
		f.EndDate = end
	}
	return f, nil
}

// computeFromRequest parses the filter and runs it, writing the error response itself.
func (h *Handler) computeFromRequest(w http.ResponseWriter, r *http.Request) (*analytics.Metrics, bool) {
	filter, err := ParseFilter(h.Service, r)
	if err == nil {
		var metrics *analytics.Metrics
		metrics, err = h.Service.ComputeMetrics(filter.Resort, filter.StartDate, filter.EndDate)
		if err == nil {
			return metrics, true
		}
	}

	if errors.Is(err, analytics.ErrInvalidFilter) || errors.Is(err, analytics.ErrInvalidRange) || errors.Is(err, analytics.ErrInvalidDate) {
		h.Logger.Warn("ANALYTICS", "Rejected dashboard filter: "+err.Error())
		utils.SendJSONResponse(h.Logger, w, http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return nil, false
	}

	h.Logger.Error("ANALYTICS", "Error computing metrics: "+err.Error())
	utils.SendJSONResponse(h.Logger, w, http.StatusInternalServerError, utils.ErrorResponse("Failed to compute metrics"))
	return nil, false
}

// GetFilters returns the selectable resorts and the default date range
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	first, last := h.Service.DefaultRange()
	utils.SendJSONResponse(h.Logger, w, http.StatusOK, map[string]interface{}{
		"resorts":    h.Service.Resorts(),
		"start_date": first.Format("2006-01-02"),
		"end_date":   last.Format("2006-01-02"),
	})
}

// GetMetrics handles the filtered metrics request
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, ok := h.computeFromRequest(w, r)
	if !ok {
		return
	}
	h.Logger.Debug("ANALYTICS", fmt.Sprintf("Computed metrics for %s %s..%s: %d booking points",
		metrics.Resort, metrics.StartDate, metrics.EndDate, len(metrics.BookingSeries)))
	utils.SendJSONResponse(h.Logger, w, http.StatusOK, metrics)
}

// GetCharts returns the filtered figures plus the static lift and incident figures
func (h *Handler) GetCharts(w http.ResponseWriter, r *http.Request) {
	metrics, ok := h.computeFromRequest(w, r)
	if !ok {
		return
	}
	data := h.Service.Dataset()
	utils.SendJSONResponse(h.Logger, w, http.StatusOK, charts.BuildDashboard(metrics, data.Lifts, data.Incidents))
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	utils.SendJSONResponse(h.Logger, w, http.StatusOK, h.Service.Dataset().Summary)
}

func (h *Handler) GetRevenueByResort(w http.ResponseWriter, r *http.Request) {
	utils.SendJSONResponse(h.Logger, w, http.StatusOK, h.Service.RevenueByResort())
}

func (h *Handler) GetLifts(w http.ResponseWriter, r *http.Request) {
	utils.SendJSONResponse(h.Logger, w, http.StatusOK, h.Service.Dataset().Lifts)
}

func (h *Handler) GetIncidents(w http.ResponseWriter, r *http.Request) {
	utils.SendJSONResponse(h.Logger, w, http.StatusOK, h.Service.Dataset().Incidents)
}
