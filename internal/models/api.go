package models

import (
	"time"

	"github.com/google/uuid"
)

// --- Request Structs ---

// RegisterRequest defines the expected body for the register endpoint.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest defines the expected body for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// --- Response Structs ---

// UserResponse defines the user information returned by the API.
// Avoid returning sensitive info like HashedPassword.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// AuthResponse defines the response body for successful authentication.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ErrorResponse defines the standard structure for API errors.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HealthServices flags which collaborators have a credential or connection string configured.
type HealthServices struct {
	API      bool `json:"api"`
	Database bool `json:"database"`
	Weather  bool `json:"weather"`
	AI       bool `json:"ai"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Services  HealthServices `json:"services"`
}

// PlantingAnalysisResponse is returned by GET /api/weather/planting-analysis.
type PlantingAnalysisResponse struct {
	Crop     string `json:"crop"`
	Location string `json:"location"`
	Analysis string `json:"analysis"`
}

// MarketAnalysisResponse is returned by GET /api/market/history/{commodity}/analysis.
type MarketAnalysisResponse struct {
	Commodity string `json:"commodity"`
	Analysis  string `json:"analysis"`
}
