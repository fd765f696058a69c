// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package cache

import (
	"bytes"
	"net/http"
	"time"

	"github.com/tomtom215/gridiron/internal/logging"
	"github.com/tomtom215/gridiron/internal/metrics"
)

// HeaderCache reports HIT or MISS on cached routes.
const HeaderCache = "X-Cache"

// Handler serves next through store. Keys are the path plus the query
// parameters in sorted order. Store errors degrade to a miss.
func Handler(store Store, ttl time.Duration, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := GenerateKey(r.URL.Path, r.URL.Query())
		backend := store.Backend()

		data, ok, err := store.Get(ctx, key)
		switch {
		case err != nil:
			metrics.RecordCacheLookup(backend, "error")
			logging.Ctx(ctx).Warn().Err(err).Str("backend", backend).Msg("Cache lookup failed")
		case ok:
			metrics.RecordCacheLookup(backend, "hit")
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Header().Set(HeaderCache, "HIT")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
			return
		default:
			metrics.RecordCacheLookup(backend, "miss")
		}

		rec := &recorder{ResponseWriter: w}
		w.Header().Set(HeaderCache, "MISS")
		next(rec, r)

		if rec.status == http.StatusOK && rec.body.Len() > 0 {
			if err := store.Set(ctx, key, rec.body.Bytes(), ttl); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("backend", backend).Msg("Cache store failed")
			}
		}
	}
}

// recorder passes the response through while keeping a copy of the body.
type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
