package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port string
	// Core
	BaseCurrency    string
	RefreshSchedule string // integer seconds or a cron expression
	// Provider
	Provider     string
	ProviderURL  string
	FetchTimeout time.Duration
	// Storage
	Storage     string
	DatabaseURL string
	BadgerPath  string
	// Rate limiting
	RateLimitBackend string
	RateLimitMax     int
	RateLimitWindow  time.Duration
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:              getEnv("ENV", "local"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Port:             getEnv("PORT", "8080"),
		BaseCurrency:     getEnv("BASE_CURRENCY", "USD"),
		RefreshSchedule:  getEnv("REFRESH_SCHEDULE", "3600"),
		Provider:         getEnv("PROVIDER", "exchangerateapi"),
		ProviderURL:      getEnv("EXCHANGE_API_BASE", "https://open.er-api.com"),
		FetchTimeout:     time.Duration(atoiDef(getEnv("FETCH_TIMEOUT_MS", "10000"), 10000)) * time.Millisecond,
		Storage:          getEnv("STORAGE", "pg"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		BadgerPath:       getEnv("BADGER_PATH", "data/rates"),
		RateLimitBackend: getEnv("RATE_LIMIT_BACKEND", "none"),
		RateLimitMax:     atoiDef(getEnv("RATE_LIMIT_MAX", "60"), 60),
		RateLimitWindow:  time.Duration(atoiDef(getEnv("RATE_LIMIT_WINDOW_MS", "60000"), 60000)) * time.Millisecond,
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          atoiDef(getEnv("REDIS_DB", "0"), 0),
	}
}
