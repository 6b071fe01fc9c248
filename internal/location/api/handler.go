package location_api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"snow-tracker/internal/location"
	"snow-tracker/internal/logger"
	"snow-tracker/internal/utils"
)

// Handler serves the gateway endpoints
type Handler struct {
	Service *location.Service
	Logger  *logger.Logger
}

func NewHandler(service *location.Service, logger *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

// RegisterRoutes registers the gateway routes on a chi router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/location", h.GetLocation)
	r.Get("/api/weather", h.GetWeather)
	r.Get("/api/resorts", h.ListResorts)
	r.Get("/api/road-closures", h.ListRoadClosures)
}

// GetLocation always answers 200; an upstream failure shows up as {}.
func (h *Handler) GetLocation(w http.ResponseWriter, r *http.Request) {
	utils.SendJSONResponse(h.Logger, w, http.StatusOK, h.Service.GetUserLocation(r.Context()))
}

// GetWeather validates lat/lon. The weather upstream is not wired.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	lat := r.URL.Query().Get("lat")
	lon := r.URL.Query().Get("lon")
	if lat == "" || lon == "" {
		utils.SendJSONResponse(h.Logger, w, http.StatusBadRequest, utils.ErrorResponse("Missing lat or lon parameters"))
		return
	}

	if _, err := strconv.ParseFloat(lat, 64); err != nil {
		utils.SendJSONResponse(h.Logger, w, http.StatusBadRequest, utils.ErrorResponse("Invalid lat or lon parameters"))
		return
	}
	if _, err := strconv.ParseFloat(lon, 64); err != nil {
		utils.SendJSONResponse(h.Logger, w, http.StatusBadRequest, utils.ErrorResponse("Invalid lat or lon parameters"))
		return
	}

	h.Logger.Debug("WEATHER", "Weather lookup requested but no upstream is configured")
	utils.SendJSONResponse(h.Logger, w, http.StatusNotImplemented, utils.ErrorResponse("Weather lookup is not enabled"))
}

func (h *Handler) ListResorts(w http.ResponseWriter, r *http.Request) {
	utils.SendJSONResponse(h.Logger, w, http.StatusOK, h.Service.ListResorts())
}

func (h *Handler) ListRoadClosures(w http.ResponseWriter, r *http.Request) {
	utils.SendJSONResponse(h.Logger, w, http.StatusOK, h.Service.ListRoadClosures())
}
