package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultHistoryURL = "https://oracle.imamkatz.com/api/history"
	DefaultENSURL     = "https://api.ensideas.com/ens/resolve/"
)

// FailurePolicy decides what the identity cache does with a failed ENS lookup.
type FailurePolicy string

const (
	FailureRetry FailurePolicy = "retry"
	FailureCache FailurePolicy = "cache"
)

// BetPolicy decides which bets of a round are counted.
type BetPolicy string

const (
	BetPolicyFirst BetPolicy = "first"
	BetPolicyAll   BetPolicy = "all"
)

type Config struct {
	Port string
	Env  string

	HistoryURL  string
	ENSURL      string
	HTTPTimeout time.Duration

	ResolveWorkers   int
	ENSFailurePolicy FailurePolicy
	BetPolicy        BetPolicy
	RefreshInterval  time.Duration
	Location         *time.Location

	RedisURL    string
	RedisPass   string
	RedisDB     int
	IdentityTTL time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		HistoryURL: getEnv("HISTORY_URL", DefaultHistoryURL),
		ENSURL:     getEnv("ENS_URL", DefaultENSURL),
		RedisURL:   os.Getenv("REDIS_URL"),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getDuration("REFRESH_INTERVAL", 0); err != nil {
		return nil, err
	}
	if cfg.IdentityTTL, err = getDuration("IDENTITY_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ResolveWorkers, err = getInt("RESOLVE_WORKERS", 8); err != nil {
		return nil, err
	}
	if cfg.ResolveWorkers < 1 {
		return nil, fmt.Errorf("RESOLVE_WORKERS must be at least 1, got %d", cfg.ResolveWorkers)
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	if cfg.ENSFailurePolicy, err = parseFailurePolicy(getEnv("ENS_FAILURE_POLICY", string(FailureRetry))); err != nil {
		return nil, err
	}
	if cfg.BetPolicy, err = parseBetPolicy(getEnv("BET_POLICY", string(BetPolicyFirst))); err != nil {
		return nil, err
	}

	cfg.Location, err = time.LoadLocation(getEnv("TIME_ZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE: %w", err)
	}

	if !strings.HasSuffix(cfg.ENSURL, "/") {
		cfg.ENSURL += "/"
	}

	return cfg, nil
}

// RedisEnabled reports whether the shared identity store is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != ""
}

func parseFailurePolicy(raw string) (FailurePolicy, error) {
	switch p := FailurePolicy(strings.ToLower(strings.TrimSpace(raw))); p {
	case FailureRetry, FailureCache:
		return p, nil
	default:
		return "", fmt.Errorf("invalid ENS_FAILURE_POLICY %q: want retry or cache", raw)
	}
}

func parseBetPolicy(raw string) (BetPolicy, error) {
	switch p := BetPolicy(strings.ToLower(strings.TrimSpace(raw))); p {
	case BetPolicyFirst, BetPolicyAll:
		return p, nil
	default:
		return "", fmt.Errorf("invalid BET_POLICY %q: want first or all", raw)
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}
