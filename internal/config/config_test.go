package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "HISTORY_URL", "ENS_URL", "HTTP_TIMEOUT", "REFRESH_INTERVAL",
		"RESOLVE_WORKERS", "ENS_FAILURE_POLICY", "BET_POLICY", "TIME_ZONE",
		"REDIS_URL", "REDIS_PASSWORD", "REDIS_DB", "IDENTITY_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultHistoryURL, cfg.HistoryURL)
	assert.Equal(t, DefaultENSURL, cfg.ENSURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 8, cfg.ResolveWorkers)
	assert.Equal(t, FailureRetry, cfg.ENSFailurePolicy)
	assert.Equal(t, BetPolicyFirst, cfg.BetPolicy)
	assert.Zero(t, cfg.RefreshInterval)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENS_URL", "http://ens.local/resolve")
	t.Setenv("RESOLVE_WORKERS", "3")
	t.Setenv("ENS_FAILURE_POLICY", "CACHE")
	t.Setenv("BET_POLICY", "all")
	t.Setenv("REFRESH_INTERVAL", "30s")
	t.Setenv("REDIS_URL", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://ens.local/resolve/", cfg.ENSURL)
	assert.Equal(t, 3, cfg.ResolveWorkers)
	assert.Equal(t, FailureCache, cfg.ENSFailurePolicy)
	assert.Equal(t, BetPolicyAll, cfg.BetPolicy)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"workers not a number", "RESOLVE_WORKERS", "many"},
		{"zero workers", "RESOLVE_WORKERS", "0"},
		{"unknown failure policy", "ENS_FAILURE_POLICY", "forever"},
		{"unknown bet policy", "BET_POLICY", "last"},
		{"bad timeout", "HTTP_TIMEOUT", "soon"},
		{"negative interval", "REFRESH_INTERVAL", "-1m"},
		{"bad time zone", "TIME_ZONE", "Mars/Olympus"},
		{"bad redis db", "REDIS_DB", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
