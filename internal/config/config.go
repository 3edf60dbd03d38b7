package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Backend (cmd/app).
	Port           string
	GatewayURL     string
	RequestTimeout time.Duration
	ServiceToken   string
	JWTSecret      string
	RedisAddr      string
	RateLimitRPS   float64
	RateLimitBurst int
	InFlightTTL    time.Duration

	// Client (cmd/dashctl).
	DashboardURL      string
	DashboardToken    string
	Locale            string
	CurrencyPrefix    string
	AlertDismissDelay time.Duration
	ToastDelay        time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		GatewayURL:   getEnv("API_GATEWAY_URL", "http://localhost:8000"),
		ServiceToken: getEnv("SERVICE_TOKEN", "service_shared_secret_change_this"),
		JWTSecret:    getEnv("JWT_SECRET", "secret-key"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),

		DashboardURL:   getEnv("DASHBOARD_URL", "http://localhost:8080"),
		DashboardToken: getEnv("DASHBOARD_TOKEN", ""),
		Locale:         getEnv("DASHBOARD_LOCALE", "id-ID"),
		CurrencyPrefix: getEnv("CURRENCY_PREFIX", "Rp"),
	}

	timeoutSecs, err := getFloat("API_REQUEST_TIMEOUT", 20)
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = time.Duration(timeoutSecs * float64(time.Second))

	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}
	if cfg.InFlightTTL, err = getDuration("INFLIGHT_TTL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.AlertDismissDelay, err = getDuration("ALERT_DISMISS_DELAY", 4*time.Second); err != nil {
		return nil, err
	}
	if cfg.ToastDelay, err = getDuration("TOAST_DELAY", 3*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
