// internal/weather/service.go
package weather

import (
	"context"

	"github.com/go-redis/redis/v8"

	"growingtogether/internal/config"
)

// Service serves the site weather snapshot. Lookups never fail: when the
// upstream provider and the cache are both unavailable the canned site
// forecast is returned instead.
type Service interface {
	Current(ctx context.Context) *Snapshot
}

// NewService builds the weather service. cache may be nil to run without
// Redis.
func NewService(cfg config.WeatherConfig, cache *redis.Client) Service {
	return newService(cfg, cache)
}
