package models

// Condition is the normalized weather condition shown by the dashboard.
type Condition string

const (
	ConditionSunny  Condition = "sunny"
	ConditionCloudy Condition = "cloudy"
	ConditionRainy  Condition = "rainy"
)

// WeatherReading is the current weather at a location.
type WeatherReading struct {
	Temp        int       `json:"temp"`      // °C
	Humidity    int       `json:"humidity"`  // %
	WindSpeed   int       `json:"windSpeed"` // km/h
	Condition   Condition `json:"condition"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	FeelsLike   int       `json:"feelsLike"`
	Pressure    int       `json:"pressure"` // hPa
}

// ForecastDay summarizes one calendar day of forecast samples.
type ForecastDay struct {
	Date            string    `json:"date"` // YYYY-MM-DD
	Temp            int       `json:"temp"`
	TempMin         int       `json:"tempMin"`
	TempMax         int       `json:"tempMax"`
	Humidity        int       `json:"humidity"`
	Condition       Condition `json:"condition"`
	Description     string    `json:"description"`
	Icon            string    `json:"icon"`
	RainProbability int       `json:"rainProbability"` // %
}
