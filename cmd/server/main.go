// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/google/uuid"

	"github.com/tomtom215/gridiron/internal/api"
	"github.com/tomtom215/gridiron/internal/auth"
	"github.com/tomtom215/gridiron/internal/authz"
	"github.com/tomtom215/gridiron/internal/cache"
	"github.com/tomtom215/gridiron/internal/config"
	"github.com/tomtom215/gridiron/internal/database"
	"github.com/tomtom215/gridiron/internal/logging"
	"github.com/tomtom215/gridiron/internal/quota"
	"github.com/tomtom215/gridiron/internal/slowdown"
	"github.com/tomtom215/gridiron/internal/supervisor"
	"github.com/tomtom215/gridiron/internal/supervisor/services"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Gridiron stopped with an error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})
	logging.Info().
		Str("db_driver", cfg.Database.Driver).
		Str("cache_backend", cfg.Cache.Backend).
		Bool("dev_mode", cfg.Server.DevMode).
		Int("slowdown_rules", len(cfg.Slowdown.Rules)).
		Int("premium_routes", len(cfg.Security.PremiumRoutes)).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	hasher, err := auth.NewTokenHasher(cfg.Security.TokenPepper)
	if err != nil {
		return err
	}
	if cfg.Database.SeedDevData {
		if err := seedDevData(ctx, db, hasher, cfg.Database.DevAPIKey); err != nil {
			return err
		}
	}

	premium := cfg.Security.PremiumTiers()
	gate, err := authz.NewGate(premium, cfg.Security.MaxTier)
	if err != nil {
		return err
	}

	store, err := newCacheStore(ctx, &cfg.Cache)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	router := api.NewRouter(api.RouterDeps{
		Handler: api.NewHandler(db),
		Resolver: auth.NewResolver(db, hasher, auth.ResolverOptions{
			TrustedOrigin: cfg.Security.TrustedOrigin,
			DevMode:       cfg.Server.DevMode,
			PremiumPaths:  premium,
		}),
		Gate:     gate,
		Governor: slowdown.New(slowdown.RulesFromConfig(cfg.Slowdown.Rules)),
		Quota: quota.New(
			quota.NewBreakerLedger(db, cfg.Ledger.Breaker),
			quota.Options{ExemptPaths: sortedKeys(premium)},
		),
		Chi:      api.NewChiMiddleware(chiConfig(cfg)),
		Cache:    store,
		CacheTTL: cfg.Cache.TTL,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}
	if mem, ok := store.(*cache.MemoryStore); ok {
		tree.AddDataService(mem)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// seedDevData loads the fixture dataset. Without a configured key a random
// one is generated and logged so the seeded caller is usable.
func seedDevData(ctx context.Context, db *database.DB, hasher *auth.TokenHasher, key string) error {
	if key == "" {
		key = uuid.NewString()
		logging.Warn().Str("api_key", key).Msg("Generated development API key; set DEV_API_KEY to fix it")
	}
	if err := db.SeedDevData(ctx, hasher.Hash(key)); err != nil {
		return err
	}
	logging.Info().Int64("user_id", database.DevUserID).Msg("Development data seeded")
	return nil
}

func newCacheStore(ctx context.Context, cfg *config.CacheConfig) (cache.Store, error) {
	if cfg.Backend == "redis" {
		store, err := cache.NewRedisStore(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return cache.NewMemoryStore(cfg.TTL), nil
}

func chiConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	c := api.DefaultChiMiddlewareConfig()
	if cfg.Security.TrustedOrigin != "" {
		c.CORSAllowedOrigins = []string{cfg.Security.TrustedOrigin}
	}
	c.RateLimitDisabled = !cfg.Security.IPRateLimit.Enabled
	c.RateLimitRequests = cfg.Security.IPRateLimit.Requests
	c.RateLimitWindow = cfg.Security.IPRateLimit.Window
	return c
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
