package api

import (
	"agrotech-backend/internal/config"
	"agrotech-backend/internal/handlers"
	"agrotech-backend/internal/metrics"
	"agrotech-backend/pkg/httputil"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	AuthHandler    *handlers.AuthHandler
	WeatherHandler *handlers.WeatherHandler
	MarketHandler  *handlers.MarketHandler
	ChatHandler    *handlers.ChatHandler
	HealthHandler  *handlers.HealthHandler
	Config         *config.Config
}

const defaultRequestTimeout = 60 * time.Second

func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.RequestTimeout <= 0 {
		return defaultRequestTimeout
	}
	return cfg.RequestTimeout
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout(deps.Config)))
	r.Use(metrics.Middleware)

	// --- CORS Configuration ---
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, http.StatusNotFound, "Route not found")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", deps.HealthHandler.HandleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.AuthHandler.HandleRegister)
			r.Post("/login", deps.AuthHandler.HandleLogin)
			r.With(JwtAuthMiddleware(deps.Config.JWTSecret)).Get("/me", deps.AuthHandler.HandleMe)
		})

		r.Route("/weather", func(r chi.Router) {
			r.Get("/current", deps.WeatherHandler.HandleCurrent)
			r.Get("/forecast", deps.WeatherHandler.HandleForecast)
			r.Get("/planting-analysis", deps.WeatherHandler.HandlePlantingAnalysis)
		})

		r.Route("/market", func(r chi.Router) {
			r.Get("/prices", deps.MarketHandler.HandleListPrices)
			r.Get("/prices/{commodity}", deps.MarketHandler.HandleGetPrice)
			r.Get("/history/{commodity}", deps.MarketHandler.HandleGetHistory)
			r.Get("/history/{commodity}/analysis", deps.MarketHandler.HandleAnalyzeHistory)
		})

		r.With(OptionalAuthMiddleware(deps.Config.JWTSecret)).Post("/chat", deps.ChatHandler.HandleChat)
	})

	return r
}
