package reservations

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snow-tracker/internal/dataset"
	"snow-tracker/internal/models"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	db, err := OpenMemory(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Seed(ctx, dataset.Generate(dataset.Options{Seed: 1}).Reservations))
	return NewService(db)
}

func ids(records []models.ReservationRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestList_DefaultOrderIsInsertionOrder(t *testing.T) {
	svc := setupTestService(t)

	got, err := svc.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"#12345", "#12346", "#12347"}, ids(got))
	assert.Equal(t, "John D.", got[0].User)
	assert.Equal(t, "10:00–11:00 AM", got[0].TimeSlot)
}

func TestList_Filters(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	got, err := svc.List(ctx, ListOptions{Status: models.ReservationPending})
	require.NoError(t, err)
	assert.Equal(t, []string{"#12346"}, ids(got))

	got, err = svc.List(ctx, ListOptions{PaymentStatus: models.PaymentRefunded})
	require.NoError(t, err)
	assert.Equal(t, []string{"#12347"}, ids(got))

	got, err = svc.List(ctx, ListOptions{Resort: "Bear Mountain"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#12345"}, ids(got))

	got, err = svc.List(ctx, ListOptions{Resort: "Nowhere"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_SortAndPaginate(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	got, err := svc.List(ctx, ListOptions{SortBy: "user"})
	require.NoError(t, err)
	assert.Equal(t, []string{"#12346", "#12345", "#12347"}, ids(got))

	got, err = svc.List(ctx, ListOptions{SortBy: "id", SortDesc: true, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"#12347", "#12346"}, ids(got))

	got, err = svc.List(ctx, ListOptions{Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"#12346", "#12347"}, ids(got))
}

func TestList_InvalidOptions(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	for _, opts := range []ListOptions{
		{Status: "Lost"},
		{PaymentStatus: "Maybe"},
		{SortBy: "price"},
		{Limit: -1},
		{Limit: 1000},
		{Offset: -3},
	} {
		_, err := svc.List(ctx, opts)
		assert.True(t, errors.Is(err, ErrInvalidOptions), "%+v", opts)
	}
}

func TestGet(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	got, err := svc.Get(ctx, "12346")
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", got.User)

	got, err = svc.Get(ctx, "#12347")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, got.PaymentStatus)

	_, err = svc.Get(ctx, "#99999")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestConfirmationQR(t *testing.T) {
	svc := setupTestService(t)

	data, err := svc.ConfirmationQR(context.Background(), "#12345")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())

	_, err = svc.ConfirmationQR(context.Background(), "#00000")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestConfirmationPDF(t *testing.T) {
	svc := setupTestService(t)

	data, err := svc.ConfirmationPDF(context.Background(), "12346")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	_, err = svc.ConfirmationPDF(context.Background(), "#00000")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestOpenMemory_IsolatedDatabases(t *testing.T) {
	ctx := context.Background()
	a, err := OpenMemory(ctx)
	require.NoError(t, err)
	defer a.Close()
	b, err := OpenMemory(ctx)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Seed(ctx, []models.ReservationRecord{{ID: "#1", User: "U", Resort: "R", Status: models.ReservationPending, PaymentStatus: models.PaymentUnpaid}}))

	got, err := b.List(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "#12345", NormalizeID("12345"))
	assert.Equal(t, "#12345", NormalizeID(" #12345 "))
	assert.Equal(t, "", NormalizeID(""))
}
