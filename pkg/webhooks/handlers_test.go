// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chi "github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/agencyos/portal/internal/ratelimit"
	"github.com/agencyos/portal/internal/types"
)

const testSecret = "hook-secret"

func newTestAPI(ctrl *gomock.Controller) (*API, *MockServiceInterface) {
	mockService := NewMockServiceInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})
	mockLogger.EXPECT().Security().AnyTimes().Return(mockSecurity)
	mockSecurity.EXPECT().AuthnFailure(gomock.Any()).AnyTimes()

	limits := ratelimit.NewMiddleware(
		ratelimit.NewLimiter(ratelimit.NewInMemoryCounterStore(), time.Minute, mockLogger),
		false,
		mockLogger,
	)

	return NewAPI(mockService, testSecret, limits, mockTracer, mockMonitor, mockLogger), mockService
}

func postHook(a *API, secret, body string) *httptest.ResponseRecorder {
	mux := chi.NewMux()
	a.RegisterEndpoints(mux)

	req := httptest.NewRequest(http.MethodPost, "/api/v0/webhooks/registration", strings.NewReader(body))
	if secret != "" {
		req.Header.Set(secretHeader, secret)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAPI_Registration(t *testing.T) {
	t.Run("valid hook provisions a profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		a, service := newTestAPI(ctrl)
		service.EXPECT().HandleRegistration(gomock.Any(), "identity-1", "new@acme.test", "New User").
			Return(&types.Profile{ID: "identity-1", Email: "new@acme.test"}, nil)

		rec := postHook(a, testSecret, `{"identity":{"id":"identity-1","traits":{"email":"new@acme.test","name":"New User"}}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("wrong secret is unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		a, _ := newTestAPI(ctrl)
		rec := postHook(a, "wrong", `{"identity":{"id":"identity-1","traits":{"email":"new@acme.test"}}}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("missing secret is unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		a, _ := newTestAPI(ctrl)
		rec := postHook(a, "", `{}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed body is a validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		a, _ := newTestAPI(ctrl)
		rec := postHook(a, testSecret, `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
