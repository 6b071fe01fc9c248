package reservations_api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snow-tracker/internal/dataset"
	"snow-tracker/internal/logger"
	"snow-tracker/internal/models"
	"snow-tracker/internal/reservations"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	db, err := reservations.OpenMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Seed(ctx, dataset.Generate(dataset.Options{Seed: 3}).Reservations))

	h := NewHandler(reservations.NewService(db), logger.NewWriterLogger(io.Discard, false))
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestListReservations(t *testing.T) {
	r := setupRouter(t)

	rec := get(r, "/api/reservations/?status=Confirmed")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.ReservationRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "#12345", got[0].ID)
}

func TestListReservations_BadParams(t *testing.T) {
	r := setupRouter(t)

	assert.Equal(t, http.StatusBadRequest, get(r, "/api/reservations/?limit=ten").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/reservations/?status=Lost").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/reservations/?sort=price").Code)
}

func TestGetReservation(t *testing.T) {
	r := setupRouter(t)

	rec := get(r, "/api/reservations/12346")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user":"Alice B."`)

	rec = get(r, "/api/reservations/%2312347")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"payment_status":"Refunded"`)

	assert.Equal(t, http.StatusNotFound, get(r, "/api/reservations/1").Code)
}

func TestGetReservationQR(t *testing.T) {
	r := setupRouter(t)

	rec := get(r, "/api/reservations/12345/qr")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", rec.Body.String()[:4])

	assert.Equal(t, http.StatusNotFound, get(r, "/api/reservations/404/qr").Code)
}

func TestGetReservationPDF(t *testing.T) {
	r := setupRouter(t)

	rec := get(r, "/api/reservations/12345/confirmation.pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "confirmation-12345.pdf")
	assert.Equal(t, "%PDF-", rec.Body.String()[:5])

	assert.Equal(t, http.StatusNotFound, get(r, "/api/reservations/404/confirmation.pdf").Code)
}
