// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

// Package config loads Gridiron's configuration from built-in defaults, an
// optional YAML file and the environment, in that order of increasing
// precedence, and validates the result before anything starts.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Slowdown SlowdownConfig `koanf:"slowdown"`
	Ledger   LedgerConfig   `koanf:"ledger"`
	Database DatabaseConfig `koanf:"database"`
	Cache    CacheConfig    `koanf:"cache"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// DevMode lets requests without an Authorization header through as
	// anonymous callers regardless of origin.
	DevMode bool `koanf:"dev_mode"`
}

// Addr is host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SecurityConfig holds identity and entitlement settings.
type SecurityConfig struct {
	// TrustedOrigin is the first-party site allowed to call without a key.
	// It is also the only CORS origin.
	TrustedOrigin string `koanf:"trusted_origin" validate:"omitempty,url"`

	// TokenPepper keys the BLAKE2b digest used to look tokens up.
	TokenPepper string `koanf:"token_pepper" validate:"max=64"`

	// MaxTier is the highest subscription tier the entitlement policy knows.
	MaxTier int `koanf:"max_tier" validate:"gte=1,lte=32"`

	// PremiumRoutes are both tier-gated and exempt from the monthly quota.
	PremiumRoutes []PremiumRoute `koanf:"premium_routes" validate:"dive"`

	IPRateLimit IPRateLimitConfig `koanf:"ip_rate_limit"`
}

// PremiumRoute is one entry of the shared premium route table.
type PremiumRoute struct {
	Path    string `koanf:"path" validate:"required,routepath"`
	MinTier int    `koanf:"min_tier" validate:"gte=1"`
}

// IPRateLimitConfig is a coarse per-IP limit applied before authentication.
type IPRateLimitConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Requests int           `koanf:"requests" validate:"gte=1"`
	Window   time.Duration `koanf:"window" validate:"gt=0"`
}

// SlowdownConfig lists progressive-delay rules. The first match wins.
type SlowdownConfig struct {
	Rules []SlowdownRule `koanf:"rules" validate:"dive"`
}

// SlowdownRule mirrors slowdown.Rule in configuration form. Durations are
// in milliseconds to match the values operators already publish.
type SlowdownRule struct {
	Path       string   `koanf:"path" validate:"required,routepath"`
	Methods    []string `koanf:"methods" validate:"dive,oneof=GET HEAD POST PUT PATCH DELETE OPTIONS"`
	WindowMs   int      `koanf:"window_ms" validate:"gte=1"`
	DelayAfter int      `koanf:"delay_after" validate:"gte=0"`
	DelayMs    int      `koanf:"delay_ms" validate:"gte=1"`
	MaxDelayMs int      `koanf:"max_delay_ms" validate:"gte=0"`
}

// LedgerConfig controls the quota ledger circuit breaker.
type LedgerConfig struct {
	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig maps onto gobreaker.Settings.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests" validate:"gte=1"`
	Interval         time.Duration `koanf:"interval" validate:"gte=0"`
	Timeout          time.Duration `koanf:"timeout" validate:"gt=0"`
	FailureThreshold uint32        `koanf:"failure_threshold" validate:"gte=1"`
}

// DatabaseConfig selects and tunes the SQL backend.
type DatabaseConfig struct {
	// Driver is duckdb (embedded, single instance) or pgx (PostgreSQL).
	Driver       string `koanf:"driver" validate:"oneof=duckdb pgx"`
	DSN          string `koanf:"dsn" validate:"required"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `koanf:"max_idle_conns" validate:"gte=0"`
	Migrate      bool   `koanf:"migrate"`
	SeedDevData  bool   `koanf:"seed_dev_data"`

	// DevAPIKey is the plaintext key of the seeded development caller. A
	// random key is generated and logged when seeding without one.
	DevAPIKey string `koanf:"dev_api_key"`
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	Backend       string        `koanf:"backend" validate:"oneof=memory redis"`
	TTL           time.Duration `koanf:"ttl" validate:"gt=0"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db" validate:"gte=0"`
}

// LoggingConfig feeds logging.Init.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// PremiumTiers returns the premium route table keyed by path.
func (s SecurityConfig) PremiumTiers() map[string]int {
	out := make(map[string]int, len(s.PremiumRoutes))
	for _, r := range s.PremiumRoutes {
		out[r.Path] = r.MinTier
	}
	return out
}
