package weather

import (
	"agrotech-backend/internal/models"
	"context"
)

// Provider is a source of current conditions and daily forecasts.
// The live OpenWeather client and the mock both satisfy it.
type Provider interface {
	Name() string
	Current(ctx context.Context, at Coordinates) (*models.WeatherReading, error)
	Forecast(ctx context.Context, at Coordinates) ([]models.ForecastDay, error)
}
