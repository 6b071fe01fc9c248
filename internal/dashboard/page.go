package dashboard

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"snow-tracker/internal/analytics"
	analytics_api "snow-tracker/internal/analytics/api"
	"snow-tracker/internal/charts"
	"snow-tracker/internal/logger"
	"snow-tracker/internal/models"
	"snow-tracker/internal/reservations"
	"snow-tracker/internal/view"
)

// FilterForm holds the selector values echoed back into the page.
type FilterForm struct {
	Resort    string
	StartDate string
	EndDate   string
}

// PageData is what the dashboard template renders.
type PageData struct {
	Resorts      []string
	Filter       FilterForm
	Summary      models.DashboardSummary
	Metrics      *analytics.Metrics
	Charts       *charts.Dashboard
	Reservations []models.ReservationRecord
}

type Handler struct {
	Analytics    *analytics.Service
	Reservations *reservations.Service
	View         *view.Engine
	Logger       *logger.Logger
}

func NewHandler(a *analytics.Service, res *reservations.Service, engine *view.Engine, logger *logger.Logger) *Handler {
	return &Handler{Analytics: a, Reservations: res, View: engine, Logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Page)
}

// Page renders the dashboard for the selected filter. A bad filter keeps the
// user's input in the form and shows the error banner instead of charts.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	data := h.Analytics.Dataset()
	page := PageData{
		Resorts: h.Analytics.Resorts(),
		Summary: data.Summary,
		Filter: FilterForm{
			Resort:    r.URL.Query().Get("resort"),
			StartDate: r.URL.Query().Get("start_date"),
			EndDate:   r.URL.Query().Get("end_date"),
		},
	}
	status := http.StatusOK
	var banner string

	filter, err := analytics_api.ParseFilter(h.Analytics, r)
	if err == nil {
		page.Metrics, err = h.Analytics.ComputeMetrics(filter.Resort, filter.StartDate, filter.EndDate)
	}
	switch {
	case err == nil:
		page.Filter = FilterForm{Resort: page.Metrics.Resort, StartDate: page.Metrics.StartDate, EndDate: page.Metrics.EndDate}
		figures := charts.BuildDashboard(page.Metrics, data.Lifts, data.Incidents)
		page.Charts = &figures
	case errors.Is(err, analytics.ErrInvalidFilter), errors.Is(err, analytics.ErrInvalidRange), errors.Is(err, analytics.ErrInvalidDate):
		h.Logger.Warn("DASHBOARD", "Rejected filter: "+err.Error())
		status = http.StatusBadRequest
		banner = err.Error()
	default:
		h.Logger.Error("DASHBOARD", "Failed to compute metrics: "+err.Error())
		status = http.StatusInternalServerError
		banner = "Failed to compute metrics"
	}

	if h.Reservations != nil {
		page.Reservations, err = h.Reservations.List(r.Context(), reservations.ListOptions{SortBy: "id"})
		if err != nil {
			h.Logger.Error("DASHBOARD", "Failed to list reservations: "+err.Error())
		}
	}

	err = h.View.Render(w, status, "dashboard", view.TemplateData{
		Title:       "Dashboard",
		CurrentPath: "/",
		Error:       banner,
		Data:        page,
	})
	if err != nil {
		h.Logger.Error("VIEW", "Failed to render dashboard: "+err.Error())
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
