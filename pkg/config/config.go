package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Ledger
	BaseCurrency string

	// Exchange rates
	RateSourceURL       string
	RateSourceAPIKey    string
	RateRefreshInterval time.Duration
	RateFetchTimeout    time.Duration

	// Feed ingestion
	FeedFetchTimeout time.Duration
	FeedLookbackDays int

	// Sync scheduler interval classes
	SyncRealtimeInterval time.Duration
	SyncHourlyInterval   time.Duration
	SyncDailyInterval    time.Duration

	// Revaluation; zero disables the periodic task
	RevalueInterval time.Duration

	// Credential sealing key, 32 bytes hex-encoded
	SecretStoreKey string

	// Rate limiting, ulule/limiter format (e.g. "100-M")
	RateLimit string

	// Analytics; empty disables PostHog
	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BASE_CURRENCY", "INR")
	viper.SetDefault("RATE_SOURCE_URL", "")
	viper.SetDefault("RATE_SOURCE_API_KEY", "")
	viper.SetDefault("RATE_REFRESH_INTERVAL", "1h")
	viper.SetDefault("RATE_FETCH_TIMEOUT", "10s")
	viper.SetDefault("FEED_FETCH_TIMEOUT", "30s")
	viper.SetDefault("FEED_LOOKBACK_DAYS", 90)
	viper.SetDefault("SYNC_REALTIME_INTERVAL", "1m")
	viper.SetDefault("SYNC_HOURLY_INTERVAL", "1h")
	viper.SetDefault("SYNC_DAILY_INTERVAL", "24h")
	viper.SetDefault("REVALUE_INTERVAL", "24h")
	viper.SetDefault("SECRET_STORE_KEY", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.BaseCurrency = viper.GetString("BASE_CURRENCY")
	if len(cfg.BaseCurrency) != 3 {
		return nil, fmt.Errorf("BASE_CURRENCY must be a 3-letter ISO code, got %q", cfg.BaseCurrency)
	}

	cfg.RateSourceURL = viper.GetString("RATE_SOURCE_URL")
	if cfg.RateSourceURL == "" {
		log.Println("Warning: RATE_SOURCE_URL environment variable not set. Rate refreshes will fail until configured.")
	}
	cfg.RateSourceAPIKey = viper.GetString("RATE_SOURCE_API_KEY")

	cfg.RateRefreshInterval = parseDurationOr("RATE_REFRESH_INTERVAL", time.Hour)
	cfg.RateFetchTimeout = parseDurationOr("RATE_FETCH_TIMEOUT", 10*time.Second)
	cfg.FeedFetchTimeout = parseDurationOr("FEED_FETCH_TIMEOUT", 30*time.Second)

	cfg.FeedLookbackDays = viper.GetInt("FEED_LOOKBACK_DAYS")
	if cfg.FeedLookbackDays <= 0 {
		log.Printf("Warning: Invalid FEED_LOOKBACK_DAYS (%d). Defaulting to 90.\n", cfg.FeedLookbackDays)
		cfg.FeedLookbackDays = 90
	}

	cfg.SyncRealtimeInterval = parseDurationOr("SYNC_REALTIME_INTERVAL", time.Minute)
	cfg.SyncHourlyInterval = parseDurationOr("SYNC_HOURLY_INTERVAL", time.Hour)
	cfg.SyncDailyInterval = parseDurationOr("SYNC_DAILY_INTERVAL", 24*time.Hour)

	// Zero is a valid value here: it disables the periodic revaluation task.
	revalueStr := viper.GetString("REVALUE_INTERVAL")
	revalueInterval, err := time.ParseDuration(revalueStr)
	if err != nil || revalueInterval < 0 {
		revalueInterval = 24 * time.Hour
		if revalueStr != "" {
			log.Printf("Warning: Invalid value for REVALUE_INTERVAL (%q). Defaulting to %s.\n", revalueStr, revalueInterval)
		}
	}
	cfg.RevalueInterval = revalueInterval

	cfg.SecretStoreKey = viper.GetString("SECRET_STORE_KEY")
	if cfg.SecretStoreKey == "" {
		log.Println("Warning: SECRET_STORE_KEY environment variable not set. Connection registration will fail until configured.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

// parseDurationOr reads a viper duration key, falling back with a warning.
func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s (%q). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

// SyncIntervalFor maps an interval class name onto its configured duration.
// Unknown classes fall back to the daily interval.
func (c *Config) SyncIntervalFor(class string) time.Duration {
	switch class {
	case "REALTIME":
		return c.SyncRealtimeInterval
	case "HOURLY":
		return c.SyncHourlyInterval
	case "DAILY":
		return c.SyncDailyInterval
	}
	return c.SyncDailyInterval
}
