package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/chiraitori/farm-management-api/internal/api/metrics"
	"github.com/chiraitori/farm-management-api/internal/core/domain"
	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

// WeatherCache memoizes the last upstream snapshot for a fixed duration.
// It is injected (not a package global) so tests can construct and reset it.
type WeatherCache struct {
	mu        sync.Mutex
	snapshot  *domain.WeatherSnapshot
	fetchedAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewWeatherCache creates a cache with the given lifetime. A non-positive
// ttl defaults to 30 minutes.
func NewWeatherCache(ttl time.Duration) *WeatherCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &WeatherCache{ttl: ttl, now: time.Now}
}

func (c *WeatherCache) get() (*domain.WeatherSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.snapshot, true
}

func (c *WeatherCache) put(s *domain.WeatherSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = s
	c.fetchedAt = c.now()
}

// Reset clears the cached snapshot.
func (c *WeatherCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
	c.fetchedAt = time.Time{}
}

// WeatherService serves dashboard weather, hitting the upstream API at most
// once per cache lifetime. Weather is advisory only, so a stale-by-seconds
// read is acceptable.
type WeatherService struct {
	provider ports.WeatherProvider
	cache    *WeatherCache
	logger   zerolog.Logger
}

func NewWeatherService(provider ports.WeatherProvider, cache *WeatherCache, logger zerolog.Logger) *WeatherService {
	if cache == nil {
		cache = NewWeatherCache(0)
	}
	return &WeatherService{provider: provider, cache: cache, logger: logger}
}

func (s *WeatherService) Current(ctx context.Context) (*domain.WeatherSnapshot, error) {
	if snap, ok := s.cache.get(); ok {
		metrics.WeatherCacheTotal.WithLabelValues("hit").Inc()
		return snap, nil
	}
	metrics.WeatherCacheTotal.WithLabelValues("miss").Inc()

	snap, err := s.provider.Current(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("weather fetch failed")
		return nil, domain.ErrWeatherUnavailable
	}

	s.cache.put(snap)
	return snap, nil
}
