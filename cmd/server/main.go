package main

import (
	"agrotech-backend/internal/api"
	"agrotech-backend/internal/chat"
	"agrotech-backend/internal/config"
	"agrotech-backend/internal/handlers"
	"agrotech-backend/internal/market"
	"agrotech-backend/internal/services"
	"agrotech-backend/internal/store"
	"agrotech-backend/internal/store/memory"
	"agrotech-backend/internal/store/postgres"
	"agrotech-backend/internal/weather"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	log.Println("Starting AgroTech Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize the user store
	var userStore store.Store
	if cfg.DatabaseConfigured() {
		dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second) // Timeout for initial connection
		defer dbCancel()

		dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("FATAL: Unable to create database connection pool: %v\n", err)
		}
		defer dbpool.Close()

		userStore = postgres.NewPostgresStore(dbpool)
		if err := userStore.Ping(dbCtx); err != nil {
			log.Fatalf("FATAL: Unable to ping database: %v\n", err)
		}
		if err := postgres.Migrate(dbCtx, dbpool); err != nil {
			log.Fatalf("FATAL: Unable to apply database schema: %v\n", err)
		}
		log.Println("Postgres store initialized.")
	} else {
		log.Println("WARN: DATABASE_URL not set, accounts are kept in memory and lost on restart.")
		userStore = memory.NewMemoryStore()
	}

	// 3. Initialize gateways. Live providers are chosen once, here.
	var liveWeather weather.Provider
	if cfg.WeatherConfigured() {
		liveWeather = weather.NewRateLimitedProvider(
			weather.NewOpenWeatherProvider(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.UpstreamTimeout),
			cfg.WeatherRateLimit, 1)
	}
	weatherGateway := weather.NewGateway(liveWeather, cfg.UpstreamTimeout, cfg.Location)

	var liveChat chat.Provider
	if cfg.ChatConfigured() {
		liveChat = chat.NewRateLimitedProvider(
			chat.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.UpstreamTimeout),
			cfg.ChatRateLimit, 1)
	}
	chatGateway := chat.NewGateway(liveChat, cfg.UpstreamTimeout)

	prices := market.NewGenerator(cfg.Location)

	// --- Initialize Services ---
	authService := services.NewAuthService(userStore, cfg)
	log.Println("AuthService initialized.")

	// --- Initialize Handlers ---
	routerDeps := api.RouterDependencies{
		AuthHandler:    handlers.NewAuthHandler(authService),
		WeatherHandler: handlers.NewWeatherHandler(weatherGateway, chatGateway),
		MarketHandler:  handlers.NewMarketHandler(prices, chatGateway),
		ChatHandler:    handlers.NewChatHandler(chatGateway),
		HealthHandler:  handlers.NewHealthHandler(cfg),
		Config:         cfg,
	}

	// 4. Setup Router
	router := api.NewRouter(routerDeps)
	log.Println("HTTP router configured.")

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// The write deadline outlasts the router's request timeout.
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  120 * time.Second,
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
		log.Fatal("Forcing shutdown due to error.")
	}

	log.Println("Server shutdown complete.")
}
