package location

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snow-tracker/internal/logger"
)

type stubUpstream struct {
	mu       sync.Mutex
	calls    int
	location map[string]any
	err      error
}

func (s *stubUpstream) FetchLocation(context.Context) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.location, nil
}

func (s *stubUpstream) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubUpstream) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)}
}

func quietLogger() *logger.Logger {
	return logger.NewWriterLogger(io.Discard, true)
}

func sampleLocation() map[string]any {
	return map[string]any{"city": "Big Bear Lake", "region": "California", "loc": "34.2439,-116.9114"}
}

func TestGetUserLocation_CachesForTTL(t *testing.T) {
	clock := newFakeClock()
	up := &stubUpstream{location: sampleLocation()}
	svc := NewService(NewMemoryCache().WithClock(clock.Now), up, 300*time.Second, quietLogger())
	ctx := context.Background()

	assert.Equal(t, sampleLocation(), svc.GetUserLocation(ctx))
	clock.Advance(299 * time.Second)
	assert.Equal(t, sampleLocation(), svc.GetUserLocation(ctx))
	assert.Equal(t, 1, up.callCount())

	clock.Advance(time.Second)
	svc.GetUserLocation(ctx)
	assert.Equal(t, 2, up.callCount())
}

func TestGetUserLocation_FailureYieldsEmptyObject(t *testing.T) {
	up := &stubUpstream{err: errors.New("connection refused")}
	svc := NewService(NewMemoryCache(), up, time.Minute, quietLogger())

	got := svc.GetUserLocation(context.Background())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetUserLocation_LaterFailureKeepsCachedValue(t *testing.T) {
	clock := newFakeClock()
	up := &stubUpstream{location: sampleLocation()}
	svc := NewService(NewMemoryCache().WithClock(clock.Now), up, 300*time.Second, quietLogger())
	ctx := context.Background()

	require.Equal(t, sampleLocation(), svc.GetUserLocation(ctx))

	up.fail(errors.New("upstream down"))
	clock.Advance(10 * time.Second)

	assert.Equal(t, sampleLocation(), svc.GetUserLocation(ctx))
	assert.Equal(t, 1, up.callCount())
}

func TestGetUserLocation_EmptyResultCachedUntilExpiry(t *testing.T) {
	clock := newFakeClock()
	up := &stubUpstream{err: errors.New("timeout")}
	svc := NewService(NewMemoryCache().WithClock(clock.Now), up, 300*time.Second, quietLogger())
	ctx := context.Background()

	assert.Empty(t, svc.GetUserLocation(ctx))
	clock.Advance(time.Minute)
	assert.Empty(t, svc.GetUserLocation(ctx))
	assert.Equal(t, 1, up.callCount())

	up.fail(nil)
	up.location = sampleLocation()
	clock.Advance(5 * time.Minute)
	assert.Equal(t, sampleLocation(), svc.GetUserLocation(ctx))
	assert.Equal(t, 2, up.callCount())
}

func TestCacheEmpty_DoesNotReplaceLiveValue(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, CacheKey, sampleLocation(), time.Minute))

	svc := NewService(cache, &stubUpstream{}, time.Minute, quietLogger())
	assert.Equal(t, sampleLocation(), svc.cacheEmpty(ctx))

	got, ok, err := cache.Get(ctx, CacheKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleLocation(), got)
}

func TestGetUserLocation_NoUpstream(t *testing.T) {
	svc := NewService(nil, nil, 0, quietLogger())
	assert.Empty(t, svc.GetUserLocation(context.Background()))
}

func TestGetUserLocation_ConcurrentReaders(t *testing.T) {
	up := &stubUpstream{location: sampleLocation()}
	svc := NewService(NewMemoryCache(), up, time.Minute, quietLogger())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, sampleLocation(), svc.GetUserLocation(ctx))
		}()
	}
	wg.Wait()
	assert.GreaterOrEqual(t, up.callCount(), 1)
}

func TestListResorts(t *testing.T) {
	svc := NewService(nil, nil, 0, quietLogger())

	got := svc.ListResorts()
	require.Len(t, got, 15)
	assert.Equal(t, "Mammoth Mountain", got[0].Name)
	assert.InDelta(t, 37.6304, got[0].Lat, 1e-9)
	assert.InDelta(t, -118.8753, got[0].Lon, 1e-9)

	got[0].Name = "changed"
	assert.Equal(t, "Mammoth Mountain", svc.ListResorts()[0].Name)
}

func TestListRoadClosures(t *testing.T) {
	svc := NewService(nil, nil, 0, quietLogger())
	got := svc.ListRoadClosures()
	require.Len(t, got, 2)
	assert.Equal(t, "Closed", got[0].Status)
}

type ctxRecordingUpstream struct {
	ctxErr error
}

func (u *ctxRecordingUpstream) FetchLocation(ctx context.Context) (map[string]any, error) {
	u.ctxErr = ctx.Err()
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("lookup has no deadline")
	}
	return sampleLocation(), nil
}

func TestGetUserLocation_LookupOutlivesCaller(t *testing.T) {
	up := &ctxRecordingUpstream{}
	svc := NewService(NewMemoryCache(), up, time.Minute, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, sampleLocation(), svc.GetUserLocation(ctx))
	assert.NoError(t, up.ctxErr)
}
