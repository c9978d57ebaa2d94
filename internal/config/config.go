package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/airport-delays/pkg/client"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		LogLevel     string
		TimeZone     string
	}

	Feed struct {
		Endpoints      []string
		RequestTimeout time.Duration
	}

	Scheduler struct {
		RefreshInterval time.Duration
		CycleTimeout    time.Duration
	}

	CircuitBreaker struct {
		Threshold int
		Timeout   time.Duration
	}

	Retry struct {
		MaxRetries int
		Delay      time.Duration
		Multiplier float64
	}

	Render struct {
		ArcSteps int
	}

	NATS struct {
		URL     string
		Subject string
	}

	Redis struct {
		Addr string
		Key  string
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("FIBER_PORT", "8080")
	cfg.Server.ReadTimeout = parseDuration(getEnv("FIBER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("FIBER_WRITE_TIMEOUT", "10s"))
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.Server.TimeZone = getEnv("DISPLAY_TIMEZONE", "Local")

	// Status feed configuration
	cfg.Feed.Endpoints = splitList(getEnv("FEED_ENDPOINTS", strings.Join(client.DefaultFAAEndpoints, ",")))
	cfg.Feed.RequestTimeout = parseDuration(getEnv("FEED_REQUEST_TIMEOUT", "6s"))

	// Scheduler configuration
	cfg.Scheduler.RefreshInterval = parseDuration(getEnv("REFRESH_INTERVAL", "5m"))
	cfg.Scheduler.CycleTimeout = parseDuration(getEnv("REFRESH_CYCLE_TIMEOUT", "60s"))

	// Circuit breaker configuration
	cfg.CircuitBreaker.Threshold = parseInt(getEnv("CIRCUIT_BREAKER_THRESHOLD", "3"))
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	// Retry configuration
	cfg.Retry.MaxRetries = parseInt(getEnv("FEED_MAX_RETRIES", "0"))
	cfg.Retry.Delay = parseDuration(getEnv("FEED_RETRY_DELAY", "1s"))
	cfg.Retry.Multiplier = parseFloat(getEnv("FEED_RETRY_MULTIPLIER", "2"))

	cfg.Render.ArcSteps = parseInt(getEnv("ROUTE_ARC_STEPS", "64"))

	// Publishers are disabled when their address is empty
	cfg.NATS.URL = getEnv("NATS_URL", "")
	cfg.NATS.Subject = getEnv("NATS_SUBJECT", "airport.delays.board")
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Key = getEnv("REDIS_KEY", "airport-delays:board")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if len(c.Feed.Endpoints) == 0 {
		return fmt.Errorf("FEED_ENDPOINTS must list at least one endpoint template")
	}
	for _, e := range c.Feed.Endpoints {
		if !strings.Contains(e, client.CodePlaceholder) {
			return fmt.Errorf("feed endpoint %q is missing the %s placeholder", e, client.CodePlaceholder)
		}
	}
	if c.Feed.RequestTimeout <= 0 {
		return fmt.Errorf("FEED_REQUEST_TIMEOUT must be positive")
	}
	if c.Scheduler.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive")
	}
	if c.Render.ArcSteps < 1 {
		return fmt.Errorf("ROUTE_ARC_STEPS must be at least 1")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid DISPLAY_TIMEZONE: %w", err)
	}
	return nil
}

// Location resolves the time zone used for display timestamps.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Server.TimeZone)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}
