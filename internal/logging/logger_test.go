// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInitWritesServiceField(t *testing.T) {
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	Debug().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"service":"gridiron"`) {
		t.Errorf("missing service field: %s", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("missing message: %s", out)
	}
}

func TestCtxAddsRequestAndCorrelationIDs(t *testing.T) {
	buf := captureGlobal(t)

	ctx := ContextWithRequestID(context.Background(), "req-123")
	ctx = ContextWithCorrelationID(ctx, "corr-9")
	Ctx(ctx).Info().Msg("with ids")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-123"`) {
		t.Errorf("missing request_id: %s", out)
	}
	if !strings.Contains(out, `"correlation_id":"corr-9"`) {
		t.Errorf("missing correlation_id: %s", out)
	}
}

func TestGeneratedIDs(t *testing.T) {
	if id := GenerateRequestID(); len(id) != 36 {
		t.Errorf("request id length = %d, want 36", len(id))
	}
	if id := GenerateCorrelationID(); len(id) != 8 {
		t.Errorf("correlation id length = %d, want 8", len(id))
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("expected empty request id on bare context")
	}
	ctx := ContextWithNewCorrelationID(context.Background())
	if CorrelationIDFromContext(ctx) == "" {
		t.Error("expected generated correlation id")
	}
}

func TestSlogHandlerBridgesAttrsAndGroups(t *testing.T) {
	buf := captureGlobal(t)

	logger := NewSlogLogger().With("supervisor", "gridiron").WithGroup("svc")
	logger.Warn("service restarted", slog.Int("attempt", 2), slog.Duration("backoff", time.Second))

	out := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"supervisor":"gridiron"`,
		`"svc.attempt":2`,
		`"message":"service restarted"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSamplerSuppressesAndReports(t *testing.T) {
	buf := captureGlobal(t)

	s := NewSampler(2, time.Hour)
	for i := 0; i < 5; i++ {
		s.Do(Error, func(e *zerolog.Event) { e.Msg("ledger down") })
	}

	if n := strings.Count(buf.String(), "ledger down"); n != 2 {
		t.Fatalf("got %d lines, want 2", n)
	}
	if got := s.suppressed.Load(); got != 3 {
		t.Errorf("suppressed = %d, want 3", got)
	}
}
