package ports

import (
	"context"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
)

// WeatherProvider fetches current conditions from an upstream API.
type WeatherProvider interface {
	Current(ctx context.Context) (*domain.WeatherSnapshot, error)
}

// WeatherService serves (possibly cached) weather snapshots.
type WeatherService interface {
	Current(ctx context.Context) (*domain.WeatherSnapshot, error)
}
