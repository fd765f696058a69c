// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package middleware

import (
	"net/http"
)

// CommitHook runs once, after the handler has chosen a status and before
// the status line is written. Headers in h may still be changed.
type CommitHook func(status int, h http.Header)

// InterceptWriter splits a response into a prepare phase (headers and
// status chosen) and a commit phase (status line and body sent). Hooks
// registered with OnCommit run between the two.
type InterceptWriter struct {
	http.ResponseWriter
	hooks     []CommitHook
	status    int
	committed bool
}

// NewInterceptWriter wraps w. Callers must call Commit after the handler
// returns so that a handler which wrote nothing still triggers the hooks.
func NewInterceptWriter(w http.ResponseWriter) *InterceptWriter {
	return &InterceptWriter{ResponseWriter: w}
}

// OnCommit registers a hook. Hooks run in registration order.
func (w *InterceptWriter) OnCommit(hook CommitHook) {
	w.hooks = append(w.hooks, hook)
}

// WriteHeader runs the hooks and then sends the status line. Informational
// 1xx statuses other than 101 pass straight through without committing.
func (w *InterceptWriter) WriteHeader(code int) {
	if w.committed {
		return
	}
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		w.ResponseWriter.WriteHeader(code)
		return
	}

	w.committed = true
	w.status = code
	for _, hook := range w.hooks {
		hook(code, w.ResponseWriter.Header())
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write commits with 200 if the handler has not chosen a status yet.
func (w *InterceptWriter) Write(b []byte) (int, error) {
	if !w.committed {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Commit finalizes a response whose handler wrote nothing. It is a no-op
// once the response has been committed.
func (w *InterceptWriter) Commit() {
	if !w.committed {
		w.WriteHeader(http.StatusOK)
	}
}

// Status is the committed status, or 0 before commit.
func (w *InterceptWriter) Status() int {
	return w.status
}

// Committed reports whether the status line has been sent.
func (w *InterceptWriter) Committed() bool {
	return w.committed
}

// Flush commits and flushes when the underlying writer supports it.
func (w *InterceptWriter) Flush() {
	w.Commit()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *InterceptWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
