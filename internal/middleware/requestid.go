// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tomtom215/gridiron/internal/logging"
)

// RequestIDHeader is read from the request and echoed on the response.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request an id. A caller-supplied X-Request-ID is
// kept when it parses as a UUID, otherwise a new one is generated. The id
// and a fresh correlation id are attached to the logging context.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = logging.GenerateRequestID()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := logging.ContextWithRequestID(r.Context(), id)
		ctx = logging.ContextWithNewCorrelationID(ctx)
		next(w, r.WithContext(ctx))
	}
}
