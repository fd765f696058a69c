// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/plays", "200"))
	RecordAPIRequest("GET", "/plays", "200", 12*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/plays", "200"))
	if after-before != 1 {
		t.Errorf("requests counter moved by %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - base; got != 2 {
		t.Errorf("active = %v, want 2", got)
	}
	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests) - base; got != 0 {
		t.Errorf("active = %v, want 0", got)
	}
}

func TestRecordDBQueryCountsErrorsOnly(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("metrics_test_op"))
	RecordDBQuery("metrics_test_op", time.Millisecond, nil)
	RecordDBQuery("metrics_test_op", time.Millisecond, errors.New("boom"))
	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("metrics_test_op"))
	if after-before != 1 {
		t.Errorf("errors moved by %v, want 1", after-before)
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	tests := []struct {
		to   string
		want float64
	}{
		{"open", 2},
		{"half-open", 1},
		{"closed", 0},
	}
	for _, tt := range tests {
		t.Run(tt.to, func(t *testing.T) {
			RecordBreakerTransition("metrics-test", "x", tt.to)
			if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("metrics-test")); got != tt.want {
				t.Errorf("state gauge = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordSlowdown(t *testing.T) {
	before := testutil.ToFloat64(SlowdownDelayed.WithLabelValues("/metrics/test"))
	RecordSlowdown("/metrics/test", 500*time.Millisecond)
	if got := testutil.ToFloat64(SlowdownDelayed.WithLabelValues("/metrics/test")) - before; got != 1 {
		t.Errorf("delayed counter moved by %v, want 1", got)
	}
}
