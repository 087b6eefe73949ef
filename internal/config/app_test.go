package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadAppConfig_RateLimitDefaults(t *testing.T) {
	cfg := LoadAppConfig()

	assert.Equal(t, 30, cfg.Server.RateLimit)
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)
}

func TestLoadAppConfig_RateLimitFromEnv(t *testing.T) {
	t.Setenv("SERVER_RATE_LIMIT", "120")
	t.Setenv("SERVER_RATE_WINDOW", "30s")

	cfg := LoadAppConfig()

	assert.Equal(t, 120, cfg.Server.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
}
