package weather

import (
	"agrotech-backend/internal/models"
	"math"
)

// MaxForecastDays is the number of calendar days returned by a forecast.
const MaxForecastDays = 5

// Sample is one intraday forecast point (OpenWeather returns one every 3 hours).
type Sample struct {
	Date        string // YYYY-MM-DD, in the provider's reference time zone
	Temp        float64
	Humidity    float64
	Code        int
	Description string
	Icon        string
	Pop         float64 // probability of precipitation, 0..1
}

// AggregateForecast groups samples by date in arrival order and summarizes
// each day: mean and extremes for temperature, mean humidity, and the
// condition, icon and rain probability of the day's middle sample. Only the
// first MaxForecastDays dates are kept.
func AggregateForecast(samples []Sample) []models.ForecastDay {
	var order []string
	byDate := make(map[string][]Sample)
	for _, s := range samples {
		if _, seen := byDate[s.Date]; !seen {
			order = append(order, s.Date)
		}
		byDate[s.Date] = append(byDate[s.Date], s)
	}
	if len(order) > MaxForecastDays {
		order = order[:MaxForecastDays]
	}

	days := make([]models.ForecastDay, 0, len(order))
	for _, date := range order {
		items := byDate[date]
		var tempSum, humiditySum float64
		tempMin, tempMax := math.Inf(1), math.Inf(-1)
		for _, s := range items {
			tempSum += s.Temp
			humiditySum += s.Humidity
			tempMin = math.Min(tempMin, s.Temp)
			tempMax = math.Max(tempMax, s.Temp)
		}
		n := float64(len(items))
		mid := items[len(items)/2]

		days = append(days, models.ForecastDay{
			Date:            date,
			Temp:            roundHalfUp(tempSum / n),
			TempMin:         roundHalfUp(tempMin),
			TempMax:         roundHalfUp(tempMax),
			Humidity:        roundHalfUp(humiditySum / n),
			Condition:       MapCondition(mid.Code),
			Description:     mid.Description,
			Icon:            mid.Icon,
			RainProbability: roundHalfUp(mid.Pop * 100),
		})
	}
	return days
}

// roundHalfUp rounds .5 towards positive infinity (-2.5 becomes -2).
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
