package weather

import (
	"agrotech-backend/internal/models"
	"context"
	"math/rand"
	"time"
)

// Ensure MockProvider implements Provider.
var _ Provider = (*MockProvider)(nil)

// MockProvider serves fixed readings so the dashboard renders without a provider key.
type MockProvider struct {
	intN func(n int) int
	now  func() time.Time
	loc  *time.Location
}

// NewMockProvider dates forecasts on the calendar of loc. nil means the server's local zone.
func NewMockProvider(loc *time.Location) *MockProvider {
	if loc == nil {
		loc = time.Local
	}
	return &MockProvider{intN: rand.Intn, now: time.Now, loc: loc}
}

func (m *MockProvider) Name() string { return "Mock" }

// Current returns the same reading for every location.
func (m *MockProvider) Current(context.Context, Coordinates) (*models.WeatherReading, error) {
	return &models.WeatherReading{
		Temp:        28,
		Humidity:    65,
		WindSpeed:   12,
		Condition:   models.ConditionSunny,
		Description: "céu limpo",
		Icon:        "01d",
		FeelsLike:   30,
		Pressure:    1015,
	}, nil
}

var mockPattern = []struct {
	condition       models.Condition
	description     string
	icon            string
	rainProbability int
}{
	{models.ConditionSunny, "céu limpo", "01d", 10},
	{models.ConditionCloudy, "nublado", "03d", 30},
	{models.ConditionRainy, "chuva", "10d", 75},
	{models.ConditionSunny, "céu limpo", "01d", 10},
	{models.ConditionCloudy, "nublado", "03d", 30},
}

// Forecast returns five days starting today with a fixed condition pattern and jittered temperatures.
func (m *MockProvider) Forecast(context.Context, Coordinates) ([]models.ForecastDay, error) {
	today := m.now().In(m.loc)
	days := make([]models.ForecastDay, 0, len(mockPattern))
	for i, p := range mockPattern {
		days = append(days, models.ForecastDay{
			Date:            today.AddDate(0, 0, i).Format("2006-01-02"),
			Temp:            25 + m.intN(10),
			TempMin:         20 + m.intN(5),
			TempMax:         30 + m.intN(5),
			Humidity:        50 + m.intN(40),
			Condition:       p.condition,
			Description:     p.description,
			Icon:            p.icon,
			RainProbability: p.rainProbability,
		})
	}
	return days, nil
}
