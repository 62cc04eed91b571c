// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chi "github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_status.go -source=./handlers.go
//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

func newTestAPI(ctrl *gomock.Controller) (*API, *MockPingerInterface, *MockMonitorInterface) {
	mockPinger := NewMockPingerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	return NewAPI(mockPinger, mockTracer, mockMonitor, mockLogger), mockPinger, mockMonitor
}

func serve(a *API, method, target string) *httptest.ResponseRecorder {
	mux := chi.NewMux()
	a.RegisterEndpoints(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestAPI_Status(t *testing.T) {
	t.Run("healthy database reports ok", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		a, pinger, monitor := newTestAPI(ctrl)
		pinger.EXPECT().Ping(gomock.Any()).Return(nil)
		monitor.EXPECT().SetDependencyAvailability(map[string]string{"dependency": "postgres"}, 1.0).Return(nil)

		rec := serve(a, http.MethodGet, "/api/v0/status")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body["status"] != "ok" {
			t.Errorf("expected status ok, got %v", body["status"])
		}
	})

	t.Run("failing database reports degraded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		a, pinger, monitor := newTestAPI(ctrl)
		pinger.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
		monitor.EXPECT().SetDependencyAvailability(map[string]string{"dependency": "postgres"}, 0.0).Return(nil)

		rec := serve(a, http.MethodGet, "/api/v0/status")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}

func TestAPI_Version(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a, _, _ := newTestAPI(ctrl)
	rec := serve(a, http.MethodGet, "/api/v0/version")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["version"] == "" {
		t.Error("expected a version string")
	}
}
