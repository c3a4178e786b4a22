package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":5000", cfg.EndpointAddr)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 10*time.Minute, cfg.ResetTokenValidity)
	assert.Equal(t, 24*time.Hour, cfg.VerificationTokenValidity)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.True(t, cfg.DevMode)
}

func TestParseJson_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")

	j := map[string]any{
		"endpoint_addr":           ":9999",
		"secret_key":              "from-json",
		"token_validity_duration": "48h",
		"rate_limit_max":          5,
		"dev_mode":                false,
	}
	b, err := json.Marshal(j)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	oldArgs := os.Args
	os.Args = []string{"server", "-c", path}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddr)
	assert.Equal(t, "from-json", cfg.SecretKey)
	assert.Equal(t, 48*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.False(t, cfg.DevMode)
	// untouched fields keep their defaults
	assert.Equal(t, 10*time.Minute, cfg.ResetTokenValidity)
}

func TestParseJson_NoFlagNoop(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"server"}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	assert.Equal(t, ":5000", cfg.EndpointAddr)
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_EXPIRES_IN", "168h")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "42")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "from-env", cfg.SecretKey)
	assert.Equal(t, 168*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 42, cfg.RateLimitMax)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestParseFlags_Overlay(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"server", "-a", ":7777", "-t", "24"}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7777", cfg.EndpointAddr)
	assert.Equal(t, 24*time.Hour, cfg.TokenValidityDuration)
}
