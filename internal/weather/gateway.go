package weather

import (
	"agrotech-backend/internal/metrics"
	"agrotech-backend/internal/models"
	"context"
	"fmt"
	"log"
	"time"
)

const gatewayName = "weather"

// Gateway serves weather from the live provider when one is configured and
// from the mock otherwise. Live failures are logged and replaced by mock data;
// callers never see provider errors.
type Gateway struct {
	live        Provider // nil when no API key is configured
	mock        Provider
	callTimeout time.Duration
}

// NewGateway selects the provider strategy once. live may be nil.
// callTimeout bounds each live call including any rate limiter wait; zero
// leaves only the request deadline. loc dates the mock forecast.
func NewGateway(live Provider, callTimeout time.Duration, loc *time.Location) *Gateway {
	if live == nil {
		log.Println("WARN [WeatherGateway]: OpenWeather API key not configured, serving mock weather data.")
	} else {
		log.Printf("[WeatherGateway] Using live provider %s", live.Name())
	}
	return &Gateway{live: live, mock: NewMockProvider(loc), callTimeout: callTimeout}
}

func (g *Gateway) liveContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.callTimeout)
}

// Configured reports whether a live provider is in use.
func (g *Gateway) Configured() bool {
	return g.live != nil
}

// Current returns the current reading at the given coordinates. The error is
// non-nil only if the mock itself fails.
func (g *Gateway) Current(ctx context.Context, at Coordinates) (*models.WeatherReading, error) {
	if g.live != nil {
		liveCtx, cancel := g.liveContext(ctx)
		reading, err := g.live.Current(liveCtx, at)
		cancel()
		metrics.ObserveUpstream(g.live.Name(), err)
		if err == nil {
			return reading, nil
		}
		log.Printf("ERROR [WeatherGateway] Current: %s failed for (%.4f, %.4f), using mock: %v", g.live.Name(), at.Lat, at.Lon, err)
		metrics.ObserveFallback(gatewayName, metrics.ReasonUpstreamError)
	} else {
		metrics.ObserveFallback(gatewayName, metrics.ReasonUnconfigured)
	}

	reading, err := g.mock.Current(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("mock weather failed: %w", err)
	}
	return reading, nil
}

// Forecast returns up to MaxForecastDays daily summaries. The error is non-nil
// only if the mock itself fails.
func (g *Gateway) Forecast(ctx context.Context, at Coordinates) ([]models.ForecastDay, error) {
	if g.live != nil {
		liveCtx, cancel := g.liveContext(ctx)
		days, err := g.live.Forecast(liveCtx, at)
		cancel()
		metrics.ObserveUpstream(g.live.Name(), err)
		if err == nil {
			return days, nil
		}
		log.Printf("ERROR [WeatherGateway] Forecast: %s failed for (%.4f, %.4f), using mock: %v", g.live.Name(), at.Lat, at.Lon, err)
		metrics.ObserveFallback(gatewayName, metrics.ReasonUpstreamError)
	} else {
		metrics.ObserveFallback(gatewayName, metrics.ReasonUnconfigured)
	}

	days, err := g.mock.Forecast(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("mock forecast failed: %w", err)
	}
	return days, nil
}
