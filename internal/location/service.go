package location

import (
	"context"
	"fmt"
	"time"

	"snow-tracker/internal/logger"
	"snow-tracker/internal/models"
)

// CacheKey is the single key the location is cached under. The lookup is
// process-wide, not per caller.
const CacheKey = "user_location"

// DefaultTTL matches CACHE_DEFAULT_TIMEOUT.
const DefaultTTL = 300 * time.Second

// DefaultFetchTimeout bounds one upstream lookup.
const DefaultFetchTimeout = 10 * time.Second

// Upstream fetches the current location object.
type Upstream interface {
	FetchLocation(ctx context.Context) (map[string]any, error)
}

// Service answers the gateway lookups.
type Service struct {
	cache        Cache
	upstream     Upstream
	ttl          time.Duration
	fetchTimeout time.Duration
	logger       *logger.Logger
}

func NewService(cache Cache, upstream Upstream, ttl time.Duration, log *logger.Logger) *Service {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		cache:        cache,
		upstream:     upstream,
		ttl:          ttl,
		fetchTimeout: DefaultFetchTimeout,
		logger:       log,
	}
}

// WithFetchTimeout sets the bound on a single upstream lookup.
func (s *Service) WithFetchTimeout(d time.Duration) *Service {
	if d > 0 {
		s.fetchTimeout = d
	}
	return s
}

// GetUserLocation returns the cached location or fetches it. Failures are
// logged and produce an empty object; they are never returned to the caller.
// An empty result is cached for the TTL but never replaces a live value.
func (s *Service) GetUserLocation(ctx context.Context) map[string]any {
	cached, ok, err := s.cache.Get(ctx, CacheKey)
	if err != nil {
		s.logger.Warn("CACHE", fmt.Sprintf("Location cache read failed, treating as miss: %v", err))
	} else if ok {
		s.logger.LogCache("HIT", CacheKey, "serving cached location")
		return cached
	}
	s.logger.LogCache("MISS", CacheKey, "fetching location from upstream")

	if s.upstream == nil {
		s.logger.Error("GATEWAY", "Error fetching user location: no upstream configured")
		return s.cacheEmpty(ctx)
	}

	// The cached result is shared by every caller, so the lookup must not be
	// cut short when the request that triggered it goes away.
	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
	defer cancel()

	location, err := s.upstream.FetchLocation(fetchCtx)
	if err != nil {
		s.logger.Error("GATEWAY", fmt.Sprintf("Error fetching user location: %v", err))
		return s.cacheEmpty(ctx)
	}

	if err := s.cache.Set(ctx, CacheKey, location, s.ttl); err != nil {
		s.logger.Warn("CACHE", fmt.Sprintf("Failed to cache location: %v", err))
	}
	s.logger.LogGateway("LOCATION", "Location fetched successfully")
	return location
}

func (s *Service) cacheEmpty(ctx context.Context) map[string]any {
	empty := map[string]any{}
	stored, err := s.cache.Add(ctx, CacheKey, empty, s.ttl)
	if err != nil {
		s.logger.Warn("CACHE", fmt.Sprintf("Failed to cache empty location: %v", err))
		return empty
	}
	if !stored {
		// Another request cached a value while this one was failing.
		if cached, ok, err := s.cache.Get(ctx, CacheKey); err == nil && ok {
			return cached
		}
	}
	return empty
}

var resorts = []models.ResortInfo{
	{Name: "Mammoth Mountain", Lat: 37.6304, Lon: -118.8753},
	{Name: "Big Bear Mountain", Lat: 34.2364, Lon: -116.8893},
	{Name: "Mt. Baldy", Lat: 34.2701, Lon: -117.6220},
	{Name: "Breckenridge", Lat: 39.4817, Lon: -106.0384},
	{Name: "Vail", Lat: 39.6403, Lon: -106.3742},
	{Name: "Aspen Snowmass", Lat: 39.2089, Lon: -106.9496},
	{Name: "Park City Mountain", Lat: 40.6514, Lon: -111.5070},
	{Name: "Deer Valley Resort", Lat: 40.6203, Lon: -111.4780},
	{Name: "Jackson Hole", Lat: 43.5873, Lon: -110.8270},
	{Name: "Killington", Lat: 43.6266, Lon: -72.7967},
	{Name: "Stowe Mountain Resort", Lat: 44.5336, Lon: -72.7815},
	{Name: "Whiteface Mountain", Lat: 44.3650, Lon: -73.9021},
	{Name: "Mount Hood Meadows", Lat: 45.3313, Lon: -121.6623},
	{Name: "Steamboat Resort", Lat: 40.4570, Lon: -106.8054},
	{Name: "Heavenly Mountain", Lat: 38.9351, Lon: -119.9398},
}

// ListResorts returns the fixed resort list. Callers get their own copy.
func (s *Service) ListResorts() []models.ResortInfo {
	out := make([]models.ResortInfo, len(resorts))
	copy(out, resorts)
	return out
}

var roadClosures = []models.RoadClosure{
	{ID: 1, Location: "I-15 near Big Bear", Status: "Closed", Details: "Accident on highway."},
	{ID: 2, Location: "CA-138 near Mammoth", Status: "Delayed", Details: "Heavy snowfall causing delays."},
}

func (s *Service) ListRoadClosures() []models.RoadClosure {
	out := make([]models.RoadClosure, len(roadClosures))
	copy(out, roadClosures)
	return out
}
