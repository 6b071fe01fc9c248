package dashboard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snow-tracker/internal/analytics"
	"snow-tracker/internal/dataset"
	"snow-tracker/internal/logger"
	"snow-tracker/internal/reservations"
	"snow-tracker/internal/view"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	data := dataset.Generate(dataset.Options{
		StartDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		Days:      10,
		Seed:      7,
	})

	db, err := reservations.OpenMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Seed(ctx, data.Reservations))

	engine, err := view.NewEngine()
	require.NoError(t, err)

	h := NewHandler(
		analytics.NewService(data, dataset.DefaultResorts, 100),
		reservations.NewService(db),
		engine,
		logger.NewWriterLogger(io.Discard, false),
	)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPage_Defaults(t *testing.T) {
	rec := get(newRouter(t), "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<option value="Bear Mountain" selected>`)
	assert.Contains(t, body, `value="2025-04-01"`)
	assert.Contains(t, body, `value="2025-04-10"`)
	assert.Contains(t, body, "Bookings Over Time - Bear Mountain")
	assert.Contains(t, body, "#12345")
	assert.NotContains(t, body, `class="banner error"`)
}

func TestPage_Filtered(t *testing.T) {
	rec := get(newRouter(t), "/?resort=Lake+Tahoe&start_date=2025-04-03&end_date=2025-04-05")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<option value="Lake Tahoe" selected>`)
	assert.Contains(t, body, "Revenue - Lake Tahoe")
}

func TestPage_InvalidFilter(t *testing.T) {
	r := newRouter(t)

	for _, target := range []string{
		"/?resort=Narnia",
		"/?start_date=2025-04-05&end_date=2025-04-01",
		"/?start_date=yesterday",
	} {
		rec := get(r, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), `class="banner error"`, target)
	}
}
