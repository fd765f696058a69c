// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/gridiron/internal/validation"
)

// normalize canonicalizes values operators commonly write loosely:
// lower-case HTTP methods and trailing slashes on route paths.
func (c *Config) normalize() {
	for i := range c.Slowdown.Rules {
		r := &c.Slowdown.Rules[i]
		r.Path = trimSlash(r.Path)
		for j, m := range r.Methods {
			r.Methods[j] = strings.ToUpper(strings.TrimSpace(m))
		}
	}
	for i := range c.Security.PremiumRoutes {
		c.Security.PremiumRoutes[i].Path = trimSlash(c.Security.PremiumRoutes[i].Path)
	}
	c.Database.Driver = strings.ToLower(c.Database.Driver)
	c.Cache.Backend = strings.ToLower(c.Cache.Backend)
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
}

func trimSlash(p string) string {
	p = strings.TrimSpace(p)
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

// Validate runs the struct tag rules and then the cross-field checks.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	var errs []error

	seen := make(map[string]bool, len(c.Security.PremiumRoutes))
	for _, r := range c.Security.PremiumRoutes {
		if seen[r.Path] {
			errs = append(errs, fmt.Errorf("security.premium_routes: duplicate path %s", r.Path))
		}
		seen[r.Path] = true
		if r.MinTier > c.Security.MaxTier {
			errs = append(errs, fmt.Errorf("security.premium_routes: %s requires tier %d above max_tier %d",
				r.Path, r.MinTier, c.Security.MaxTier))
		}
	}

	for _, r := range c.Slowdown.Rules {
		if r.MaxDelayMs != 0 && r.MaxDelayMs < r.DelayMs {
			errs = append(errs, fmt.Errorf("slowdown.rules %s: max_delay_ms %d is below delay_ms %d",
				r.Path, r.MaxDelayMs, r.DelayMs))
		}
	}

	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		errs = append(errs, errors.New("cache.redis_addr is required when cache.backend is redis"))
	}

	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, fmt.Errorf("database.max_idle_conns %d exceeds max_open_conns %d",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns))
	}

	return errors.Join(errs...)
}
