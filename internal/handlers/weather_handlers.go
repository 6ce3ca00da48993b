package handlers

import (
	"agrotech-backend/internal/models"
	"agrotech-backend/internal/weather"
	"agrotech-backend/pkg/httputil"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// WeatherGateway defines the interface expected from the weather gateway.
type WeatherGateway interface {
	Current(ctx context.Context, at weather.Coordinates) (*models.WeatherReading, error)
	Forecast(ctx context.Context, at weather.Coordinates) ([]models.ForecastDay, error)
}

// PlantingAnalyst turns a forecast into a planting recommendation.
type PlantingAnalyst interface {
	AnalyzePlanting(ctx context.Context, crop string, forecast []models.ForecastDay) string
}

const defaultCrop = "soja"

type WeatherHandler struct {
	gateway WeatherGateway
	analyst PlantingAnalyst
}

func NewWeatherHandler(gateway WeatherGateway, analyst PlantingAnalyst) *WeatherHandler {
	return &WeatherHandler{gateway: gateway, analyst: analyst}
}

// HandleCurrent handles GET /api/weather/current.
func (h *WeatherHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	_, at := locationFromQuery(r)
	reading, err := h.gateway.Current(r.Context(), at)
	if err != nil {
		log.Printf("ERROR [WeatherHandler] Current: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch weather data")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, reading)
}

// HandleForecast handles GET /api/weather/forecast.
func (h *WeatherHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	_, at := locationFromQuery(r)
	days, err := h.gateway.Forecast(r.Context(), at)
	if err != nil {
		log.Printf("ERROR [WeatherHandler] Forecast: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch forecast")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, days)
}

// HandlePlantingAnalysis handles GET /api/weather/planting-analysis.
func (h *WeatherHandler) HandlePlantingAnalysis(w http.ResponseWriter, r *http.Request) {
	crop := strings.TrimSpace(r.URL.Query().Get("crop"))
	if crop == "" {
		crop = defaultCrop
	}
	name, at := locationFromQuery(r)
	if name == "" {
		name = fmt.Sprintf("%.4f, %.4f", at.Lat, at.Lon)
	}

	days, err := h.gateway.Forecast(r.Context(), at)
	if err != nil {
		log.Printf("ERROR [WeatherHandler] PlantingAnalysis: %v", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to analyze planting conditions")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, models.PlantingAnalysisResponse{
		Crop:     crop,
		Location: name,
		Analysis: h.analyst.AnalyzePlanting(r.Context(), crop, days),
	})
}
