// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/gridiron/internal/auth"
	"github.com/tomtom215/gridiron/internal/authz"
	"github.com/tomtom215/gridiron/internal/cache"
	"github.com/tomtom215/gridiron/internal/middleware"
	"github.com/tomtom215/gridiron/internal/quota"
	"github.com/tomtom215/gridiron/internal/slowdown"
)

// RouterDeps are the collaborators the router wires together. Cache is
// optional; without it every resource is served from the database.
type RouterDeps struct {
	Handler  *Handler
	Resolver *auth.Resolver
	Gate     *authz.Gate
	Governor *slowdown.Governor
	Quota    *quota.Quota
	Chi      *ChiMiddleware

	Cache    cache.Store
	CacheTTL time.Duration
}

// Router owns route registration.
type Router struct {
	deps RouterDeps
}

// NewRouter returns a Router. A nil Chi gets the default configuration.
func NewRouter(deps RouterDeps) *Router {
	if deps.Chi == nil {
		deps.Chi = NewChiMiddleware(nil)
	}
	return &Router{deps: deps}
}

// Setup builds the handler tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()
	d := router.deps

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
	r.Use(d.Chi.CORS())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteMessage(w, http.StatusNotFound, "Not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", d.Handler.HealthLive)
		r.Get("/ready", d.Handler.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(d.Chi.RateLimit())
		r.Use(chiMiddleware(d.Resolver.Authenticate))
		r.Use(chiMiddleware(d.Gate.Entitle))
		r.Use(chiMiddleware(d.Governor.Middleware))
		r.Use(chiMiddleware(d.Quota.Enforce))
		r.Use(chiMiddleware(d.Quota.RecordUsage))

		r.Get("/info", d.Handler.Info)
		r.Get("/teams", router.cached(d.Handler.Teams))
		r.Get("/games", d.Handler.Games)
		r.Get("/plays", d.Handler.Plays)
		r.Get("/stats/player/season", d.Handler.PlayerSeasonStats)
		r.Get("/ratings/sp", router.cached(d.Handler.SPRatings))
		r.Get("/recruiting/players", router.cached(d.Handler.Recruits))

		// Premium: tier-gated and quota exempt.
		r.Get("/live/plays", d.Handler.LivePlays)
		r.Get("/games/weather", d.Handler.GameWeather)
		r.Get("/scoreboard", d.Handler.Scoreboard)
	})

	return r
}

func (router *Router) cached(h http.HandlerFunc) http.HandlerFunc {
	if router.deps.Cache == nil {
		return h
	}
	return cache.Handler(router.deps.Cache, router.deps.CacheTTL, h)
}
