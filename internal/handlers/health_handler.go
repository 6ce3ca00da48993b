package handlers

import (
	"agrotech-backend/internal/config"
	"agrotech-backend/internal/models"
	"agrotech-backend/pkg/httputil"
	"net/http"
	"time"
)

// HealthHandler reports which collaborators are configured. It does not contact them.
type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// HandleHealth handles GET /api/health.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Services: models.HealthServices{
			API:      true,
			Database: h.cfg.DatabaseConfigured(),
			Weather:  h.cfg.WeatherConfigured(),
			AI:       h.cfg.ChatConfigured(),
		},
	})
}
