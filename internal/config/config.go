package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts without one

	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret = "agrotech-secret-dev-key"
	defaultTimeZone  = "America/Sao_Paulo"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	HTTPPort        string
	JWTSecret       string
	TokenExpiration time.Duration
	DatabaseURL     string // Optional. Empty means the in-memory user store is used.

	OpenWeatherAPIKey  string // Empty means mock weather.
	OpenWeatherBaseURL string
	OpenAIAPIKey       string // Empty means canned chat replies.
	OpenAIBaseURL      string
	OpenAIModel        string

	RequestTimeout   time.Duration // Deadline of a whole API request.
	UpstreamTimeout  time.Duration // Budget of one gateway call, rate limiter wait included.
	WeatherRateLimit float64       // Requests per second towards the weather provider.
	ChatRateLimit    float64       // Requests per second towards the chat provider.

	AllowedOrigins []string

	// Location gives the calendar for "today" in price histories and mock forecasts.
	Location *time.Location
}

// WeatherConfigured reports whether a weather provider credential is present.
func (c *Config) WeatherConfigured() bool { return c.OpenWeatherAPIKey != "" }

// ChatConfigured reports whether a chat provider credential is present.
func (c *Config) ChatConfigured() bool { return c.OpenAIAPIKey != "" }

// DatabaseConfigured reports whether a persistence connection string is present.
func (c *Config) DatabaseConfigured() bool { return c.DatabaseURL != "" }

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
	}

	jwtSecret := getEnv("JWT_SECRET", defaultJWTSecret)
	if jwtSecret == defaultJWTSecret {
		log.Println("WARN: JWT_SECRET is using the development default. CHANGE THIS IN PRODUCTION!")
	}

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		JWTSecret:          jwtSecret,
		TokenExpiration:    time.Hour * time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24*7)),
		DatabaseURL:        getSecretEnv("DATABASE_URL"),
		OpenWeatherAPIKey:  getSecretEnv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		OpenAIAPIKey:       getSecretEnv("OPENAI_API_KEY"),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		RequestTimeout:     time.Second * time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 30)),
		UpstreamTimeout:    time.Second * time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 10)),
		WeatherRateLimit:   getEnvFloat("WEATHER_RATE_LIMIT_RPS", 1),
		ChatRateLimit:      getEnvFloat("CHAT_RATE_LIMIT_RPS", 2),
		AllowedOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5000,http://localhost:5173")),
		Location:           loadLocation(getEnv("TIMEZONE", defaultTimeZone)),
	}

	// planting-analysis makes two sequential gateway calls
	if minRequest := 2*cfg.UpstreamTimeout + 5*time.Second; cfg.RequestTimeout < minRequest {
		log.Printf("Warning: REQUEST_TIMEOUT_SECONDS %s is below two upstream calls, raising to %s", cfg.RequestTimeout, minRequest)
		cfg.RequestTimeout = minRequest
	}

	log.Printf("Loaded config: Port=%s, DB=%t, Weather=%t, AI=%t, TokenExp=%s",
		cfg.HTTPPort, cfg.DatabaseConfigured(), cfg.WeatherConfigured(), cfg.ChatConfigured(), cfg.TokenExpiration)

	return cfg, nil
}

// WriteTimeout is the HTTP server write deadline. It outlasts RequestTimeout
// so a handler that hit the request deadline can still write its response.
func (c *Config) WriteTimeout() time.Duration {
	return c.RequestTimeout + 5*time.Second
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: Invalid TIMEZONE '%s', using server local time. Error: %v", name, err)
		return time.Local
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Env variable %s not set, using default: %s", key, fallback)
	return fallback
}

// getSecretEnv is getEnv for credentials: the value is never logged.
func getSecretEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		log.Printf("Env variable %s not set", key)
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := getEnv(key, strconv.Itoa(fallback))
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: Invalid %s '%s', using default %d. Error: %v", key, raw, fallback, err)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := getEnv(key, strconv.FormatFloat(fallback, 'f', -1, 64))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		log.Printf("Warning: Invalid %s '%s', using default %g. Error: %v", key, raw, fallback, err)
		return fallback
	}
	return f
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
