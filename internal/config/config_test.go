package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobby-s-dev/airport-delays/pkg/client"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DISPLAY_TIMEZONE", "UTC")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, client.DefaultFAAEndpoints, cfg.Feed.Endpoints)
	assert.Equal(t, 6*time.Second, cfg.Feed.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.RefreshInterval)
	assert.Equal(t, 60*time.Second, cfg.Scheduler.CycleTimeout)
	assert.Equal(t, 3, cfg.CircuitBreaker.Threshold)
	assert.Equal(t, 0, cfg.Retry.MaxRetries)
	assert.Equal(t, 2.0, cfg.Retry.Multiplier)
	assert.Equal(t, 64, cfg.Render.ArcSteps)
	assert.Empty(t, cfg.NATS.URL)
	assert.Equal(t, "airport.delays.board", cfg.NATS.Subject)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "airport-delays:board", cfg.Redis.Key)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DISPLAY_TIMEZONE", "America/New_York")
	t.Setenv("REFRESH_INTERVAL", "90s")
	t.Setenv("FEED_ENDPOINTS", " http://a/{code} , ,http://b/{code}")
	t.Setenv("ROUTE_ARC_STEPS", "16")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.Scheduler.RefreshInterval)
	assert.Equal(t, []string{"http://a/{code}", "http://b/{code}"}, cfg.Feed.Endpoints)
	assert.Equal(t, 16, cfg.Render.ArcSteps)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing placeholder": {"FEED_ENDPOINTS": "http://a/status"},
		"bad interval":        {"REFRESH_INTERVAL": "soon"},
		"zero steps":          {"ROUTE_ARC_STEPS": "0"},
		"bad zone":            {"DISPLAY_TIMEZONE": "Mars/Olympus"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("DISPLAY_TIMEZONE", "UTC")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
