// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/gridiron/internal/logging"
	"github.com/tomtom215/gridiron/internal/middleware"
)

const readyTimeout = 2 * time.Second

type healthStatus struct {
	Status string `json:"status"`
}

// HealthLive answers 200 whenever the process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, healthStatus{Status: "ok"})
}

// HealthReady answers 200 when the database answers a ping, else 503.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
		middleware.WriteJSON(w, http.StatusServiceUnavailable, healthStatus{Status: "unavailable"})
		return
	}
	middleware.WriteJSON(w, http.StatusOK, healthStatus{Status: "ok"})
}
