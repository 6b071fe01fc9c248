package reservations_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"snow-tracker/internal/logger"
	"snow-tracker/internal/reservations"
	"snow-tracker/internal/utils"
)

// Handler serves the read-only reservation table
type Handler struct {
	Service *reservations.Service
	Logger  *logger.Logger
}

func NewHandler(service *reservations.Service, logger *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: logger}
}

// RegisterRoutes registers the reservation routes on a chi router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/reservations", func(r chi.Router) {
		r.Get("/", h.ListReservations)
		r.Get("/{reservationId}", h.GetReservation)
		r.Get("/{reservationId}/qr", h.GetReservationQR)
		r.Get("/{reservationId}/confirmation.pdf", h.GetReservationPDF)
	})
}

// ListReservations handles GET /api/reservations with optional filters and sorting
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	options := reservations.ListOptions{
		Status:        query.Get("status"),
		PaymentStatus: query.Get("payment_status"),
		Resort:        query.Get("resort"),
		SortBy:        query.Get("sort"),
		SortDesc:      query.Get("order") == "desc",
	}

	var err error
	if options.Limit, err = intParam(query.Get("limit")); err != nil {
		utils.SendJSONResponse(h.Logger, w, http.StatusBadRequest, utils.ErrorResponse("limit must be an integer"))
		return
	}
	if options.Offset, err = intParam(query.Get("offset")); err != nil {
		utils.SendJSONResponse(h.Logger, w, http.StatusBadRequest, utils.ErrorResponse("offset must be an integer"))
		return
	}

	records, err := h.Service.List(r.Context(), options)
	if errors.Is(err, reservations.ErrInvalidOptions) {
		h.Logger.Warn("RESERVATION", err.Error())
		utils.SendJSONResponse(h.Logger, w, http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}
	if err != nil {
		h.Logger.Error("RESERVATION", "Error listing reservations: "+err.Error())
		utils.SendJSONResponse(h.Logger, w, http.StatusInternalServerError, utils.ErrorResponse("Error fetching reservations"))
		return
	}

	utils.SendJSONResponse(h.Logger, w, http.StatusOK, records)
}

func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reservationId")

	record, err := h.Service.Get(r.Context(), id)
	if errors.Is(err, reservations.ErrNotFound) {
		utils.SendJSONResponse(h.Logger, w, http.StatusNotFound, utils.ErrorResponse("Reservation not found"))
		return
	}
	if err != nil {
		h.Logger.Error("RESERVATION", fmt.Sprintf("Error fetching reservation %s: %v", id, err))
		utils.SendJSONResponse(h.Logger, w, http.StatusInternalServerError, utils.ErrorResponse("Error fetching reservation"))
		return
	}

	utils.SendJSONResponse(h.Logger, w, http.StatusOK, record)
}

// GetReservationQR returns the confirmation QR code as a PNG
func (h *Handler) GetReservationQR(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reservationId")

	img, err := h.Service.ConfirmationQR(r.Context(), id)
	if errors.Is(err, reservations.ErrNotFound) {
		utils.SendJSONResponse(h.Logger, w, http.StatusNotFound, utils.ErrorResponse("Reservation not found"))
		return
	}
	if err != nil {
		h.Logger.Error("RESERVATION", fmt.Sprintf("Error generating QR for %s: %v", id, err))
		utils.SendJSONResponse(h.Logger, w, http.StatusInternalServerError, utils.ErrorResponse("Error generating QR code"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		h.Logger.Error("HTTP", fmt.Sprintf("Error writing QR response: %v", err))
	}
}

// GetReservationPDF returns the printable confirmation
func (h *Handler) GetReservationPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reservationId")

	doc, err := h.Service.ConfirmationPDF(r.Context(), id)
	if errors.Is(err, reservations.ErrNotFound) {
		utils.SendJSONResponse(h.Logger, w, http.StatusNotFound, utils.ErrorResponse("Reservation not found"))
		return
	}
	if err != nil {
		h.Logger.Error("RESERVATION", fmt.Sprintf("Error generating confirmation for %s: %v", id, err))
		utils.SendJSONResponse(h.Logger, w, http.StatusInternalServerError, utils.ErrorResponse("Error generating confirmation"))
		return
	}

	filename := "confirmation-" + reservations.NormalizeID(id)[1:] + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.Logger.Error("HTTP", fmt.Sprintf("Error writing confirmation response: %v", err))
	}
}

func intParam(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
