package weather

import (
	"agrotech-backend/internal/models"
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Ensure RateLimitedProvider implements Provider.
var _ Provider = (*RateLimitedProvider)(nil)

// RateLimitedProvider wraps a Provider with a token bucket shared by current and forecast calls.
type RateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedProvider allows rps requests per second with the given burst.
func NewRateLimitedProvider(provider Provider, rps float64, burst int) *RateLimitedProvider {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

func (r *RateLimitedProvider) Name() string { return r.name }

// Current waits for the limiter, then forwards to the wrapped provider.
func (r *RateLimitedProvider) Current(ctx context.Context, at Coordinates) (*models.WeatherReading, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Current(ctx, at)
}

// Forecast waits for the limiter, then forwards to the wrapped provider.
func (r *RateLimitedProvider) Forecast(ctx context.Context, at Coordinates) ([]models.ForecastDay, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Forecast(ctx, at)
}
