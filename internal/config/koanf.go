// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/gridiron/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			MaxTier: 6,
			PremiumRoutes: []PremiumRoute{
				{Path: "/live/plays", MinTier: 1},
				{Path: "/games/weather", MinTier: 1},
				{Path: "/scoreboard", MinTier: 1},
			},
			IPRateLimit: IPRateLimitConfig{
				Enabled:  false,
				Requests: 600,
				Window:   time.Minute,
			},
		},
		Slowdown: SlowdownConfig{
			Rules: []SlowdownRule{
				{
					Path:       "/stats/player/season",
					Methods:    []string{"GET"},
					WindowMs:   10000,
					DelayAfter: 15,
					DelayMs:    250,
					MaxDelayMs: 2000,
				},
			},
		},
		Ledger: LedgerConfig{
			Breaker: BreakerConfig{
				MaxRequests:      1,
				Interval:         60 * time.Second,
				Timeout:          30 * time.Second,
				FailureThreshold: 5,
			},
		},
		Database: DatabaseConfig{
			Driver:       "duckdb",
			DSN:          "data/gridiron.duckdb",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			Migrate:      true,
		},
		Cache: CacheConfig{
			Backend:   "memory",
			TTL:       5 * time.Minute,
			RedisAddr: "localhost:6379",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file if one is
// found, then mapped environment variables. The result is validated.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envMappings lists every environment variable Gridiron reads. Anything
// else in the environment is ignored. Lists (premium routes, slowdown
// rules) are file-only.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"port":                  "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"dev_mode":              "server.dev_mode",

	"cors_origin":            "security.trusted_origin",
	"token_pepper":           "security.token_pepper",
	"max_patreon_tier":       "security.max_tier",
	"ip_rate_limit_enabled":  "security.ip_rate_limit.enabled",
	"ip_rate_limit_requests": "security.ip_rate_limit.requests",
	"ip_rate_limit_window":   "security.ip_rate_limit.window",

	"ledger_breaker_max_requests":      "ledger.breaker.max_requests",
	"ledger_breaker_interval":          "ledger.breaker.interval",
	"ledger_breaker_timeout":           "ledger.breaker.timeout",
	"ledger_breaker_failure_threshold": "ledger.breaker.failure_threshold",

	"db_driver":         "database.driver",
	"database_url":      "database.dsn",
	"db_max_open_conns": "database.max_open_conns",
	"db_max_idle_conns": "database.max_idle_conns",
	"db_migrate":        "database.migrate",
	"db_seed_dev_data":  "database.seed_dev_data",
	"dev_api_key":       "database.dev_api_key",

	"cache_backend":  "cache.backend",
	"cache_ttl":      "cache.ttl",
	"redis_addr":     "cache.redis_addr",
	"redis_password": "cache.redis_password",
	"redis_db":       "cache.redis_db",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped names return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
