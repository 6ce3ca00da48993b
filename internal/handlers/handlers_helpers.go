package handlers

import (
	"agrotech-backend/internal/market"
	"agrotech-backend/internal/weather"
	"net/http"
	"strconv"
)

// locationFromQuery resolves ?lat=&lon= when both are valid, else ?location=
// against the known city table. The returned name is empty for raw coordinates.
func locationFromQuery(r *http.Request) (string, weather.Coordinates) {
	q := r.URL.Query()
	if at, ok := weather.ParseCoordinates(q.Get("lat"), q.Get("lon")); ok {
		return "", at
	}
	return weather.Resolve(q.Get("location"))
}

// daysFromQuery parses ?days=, defaulting when missing or unparsable and capping at the maximum.
func daysFromQuery(r *http.Request) int {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil {
		return market.DefaultHistoryDays
	}
	return market.ClampDays(days)
}
