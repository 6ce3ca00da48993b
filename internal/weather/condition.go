package weather

import "agrotech-backend/internal/models"

// MapCondition collapses an OpenWeather condition code into the dashboard's
// three conditions. Thunderstorm, drizzle, rain and snow (2xx-6xx) are rainy,
// overcast codes from 801 up are cloudy, everything else (clear sky,
// atmosphere 7xx) is sunny.
func MapCondition(code int) models.Condition {
	switch {
	case code >= 200 && code < 700:
		return models.ConditionRainy
	case code >= 801:
		return models.ConditionCloudy
	default:
		return models.ConditionSunny
	}
}
