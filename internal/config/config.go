package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the gateway settings, read from the environment.
type Config struct {
	Port               string        `mapstructure:"PORT"`
	CatalogBaseURL     string        `mapstructure:"CATALOG_BASE_URL"`
	RedisURL           string        `mapstructure:"REDIS_URL"`
	DatabaseURL        string        `mapstructure:"DATABASE_URL"`
	MigrationsDir      string        `mapstructure:"MIGRATIONS_DIR"`
	NearbyPolicy       string        `mapstructure:"NEARBY_POLICY"`
	RateLimitPerMinute int           `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	DetailCacheTTL     time.Duration `mapstructure:"DETAIL_CACHE_TTL"`
}

var keys = []string{
	"PORT",
	"CATALOG_BASE_URL",
	"REDIS_URL",
	"DATABASE_URL",
	"MIGRATIONS_DIR",
	"NEARBY_POLICY",
	"RATE_LIMIT_PER_MINUTE",
	"DETAIL_CACHE_TTL",
}

// Load reads the process environment.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper applies defaults to v and decodes it into a Config.
func FromViper(v *viper.Viper) (Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("CATALOG_BASE_URL", "https://quietravel.vercel.app/api")
	v.SetDefault("NEARBY_POLICY", "shuffle")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("DETAIL_CACHE_TTL", time.Hour)

	// AutomaticEnv only answers Get calls; Unmarshal needs the keys bound.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", k, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Port = strings.TrimPrefix(strings.TrimSpace(cfg.Port), ":")
	cfg.NearbyPolicy = strings.ToLower(strings.TrimSpace(cfg.NearbyPolicy))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.NearbyPolicy {
	case "", "shuffle", "distance":
	default:
		return fmt.Errorf("NEARBY_POLICY %q: want shuffle or distance", c.NearbyPolicy)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}
	if c.DetailCacheTTL <= 0 {
		return fmt.Errorf("DETAIL_CACHE_TTL must be positive, got %s", c.DetailCacheTTL)
	}
	return nil
}

// Addr is the listen address for http.Server.
func (c Config) Addr() string { return ":" + c.Port }
