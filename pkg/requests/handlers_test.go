// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package requests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/identity"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/ratelimit"
	"github.com/agencyos/portal/internal/types"
)

func newTestAPI(ctrl *gomock.Controller) (*API, *MockServiceInterface) {
	mockService := NewMockServiceInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})

	noopLogger := logging.NewNoopLogger()
	limits := ratelimit.NewMiddleware(
		ratelimit.NewLimiter(ratelimit.NewInMemoryCounterStore(), time.Minute, noopLogger),
		false,
		noopLogger,
	)

	return NewAPI(mockService, limits, mockTracer, mockMonitor, mockLogger), mockService
}

func serve(api *API, req *http.Request, principal *types.Principal) *httptest.ResponseRecorder {
	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	if principal != nil {
		req = req.WithContext(identity.WithPrincipal(req.Context(), principal))
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) httptypes.ErrorEnvelope {
	t.Helper()
	var envelope httptypes.ErrorEnvelope
	if err := json.NewDecoder(rr.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding error envelope: %v", err)
	}
	return envelope
}

func TestAPI_CreateRequest(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, mockService := newTestAPI(ctrl)
		mockService.EXPECT().CreateRequest(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *types.Principal, input *CreateRequestInput) (*types.Request, error) {
				if input.Title != "Logo refresh" {
					t.Errorf("expected title to pass through, got %q", input.Title)
				}
				return &types.Request{ID: "req-1", Title: input.Title, Status: types.StatusQueue}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/api/v0/requests", strings.NewReader(`{"title":"Logo refresh"}`))
		rr := serve(api, req, clientCaller)

		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, _ := newTestAPI(ctrl)
		req := httptest.NewRequest(http.MethodPost, "/api/v0/requests", strings.NewReader(`{not json`))
		rr := serve(api, req, clientCaller)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if envelope := decodeEnvelope(t, rr); envelope.Code != httptypes.CodeValidation {
			t.Errorf("expected code %s, got %s", httptypes.CodeValidation, envelope.Code)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, _ := newTestAPI(ctrl)
		req := httptest.NewRequest(http.MethodPost, "/api/v0/requests", strings.NewReader(`{"description":"no title"}`))
		rr := serve(api, req, clientCaller)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("no principal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, _ := newTestAPI(ctrl)
		req := httptest.NewRequest(http.MethodPost, "/api/v0/requests", strings.NewReader(`{"title":"x"}`))
		rr := serve(api, req, nil)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})
}

func TestAPI_Transition(t *testing.T) {
	t.Run("forbidden transition maps to envelope", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, mockService := newTestAPI(ctrl)
		mockService.EXPECT().Transition(gomock.Any(), gomock.Any(), "req-1", types.StatusDone).
			Return(nil, httptypes.NewForbiddenError("role may not perform this status change"))

		req := httptest.NewRequest(http.MethodPost, "/api/v0/requests/req-1/status", strings.NewReader(`{"status":"done"}`))
		rr := serve(api, req, clientCaller)

		if rr.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rr.Code)
		}
		if envelope := decodeEnvelope(t, rr); envelope.Code != httptypes.CodeForbidden {
			t.Errorf("expected code %s, got %s", httptypes.CodeForbidden, envelope.Code)
		}
	})

	t.Run("invalid transition carries details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, mockService := newTestAPI(ctrl)
		mockService.EXPECT().Transition(gomock.Any(), gomock.Any(), "req-1", types.RequestStatus("archived")).
			Return(nil, httptypes.NewInvalidTransitionError("queue", "archived"))

		req := httptest.NewRequest(http.MethodPost, "/api/v0/requests/req-1/status", strings.NewReader(`{"status":"archived"}`))
		rr := serve(api, req, adminCaller)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		envelope := decodeEnvelope(t, rr)
		if envelope.Code != httptypes.CodeInvalidTransition {
			t.Errorf("expected code %s, got %s", httptypes.CodeInvalidTransition, envelope.Code)
		}
		if envelope.Details["from"] != "queue" || envelope.Details["to"] != "archived" {
			t.Errorf("expected from/to details, got %v", envelope.Details)
		}
	})

	t.Run("success returns the updated request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, mockService := newTestAPI(ctrl)
		mockService.EXPECT().Transition(gomock.Any(), gomock.Any(), "req-1", types.StatusActive).
			Return(&types.Request{ID: "req-1", Status: types.StatusActive}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v0/requests/req-1/status", strings.NewReader(`{"status":"active"}`))
		rr := serve(api, req, adminCaller)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var request types.Request
		if err := json.NewDecoder(rr.Body).Decode(&request); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if request.Status != types.StatusActive {
			t.Errorf("expected active, got %s", request.Status)
		}
	})
}

func TestAPI_Assign(t *testing.T) {
	t.Run("null user_id unassigns", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, mockService := newTestAPI(ctrl)
		mockService.EXPECT().Assign(gomock.Any(), gomock.Any(), "req-1", nil).
			Return(&types.Request{ID: "req-1", Status: types.StatusActive}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v0/requests/req-1/assign", strings.NewReader(`{"user_id":null}`))
		rr := serve(api, req, adminCaller)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("invalid assignee maps to envelope", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, mockService := newTestAPI(ctrl)
		mockService.EXPECT().Assign(gomock.Any(), gomock.Any(), "req-1", gomock.Any()).
			Return(nil, httptypes.NewInvalidAssigneeError("client-9"))

		req := httptest.NewRequest(http.MethodPost, "/api/v0/requests/req-1/assign", strings.NewReader(`{"user_id":"client-9"}`))
		rr := serve(api, req, adminCaller)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if envelope := decodeEnvelope(t, rr); envelope.Code != httptypes.CodeInvalidAssignee {
			t.Errorf("expected code %s, got %s", httptypes.CodeInvalidAssignee, envelope.Code)
		}
	})
}

func TestAPI_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api, mockService := newTestAPI(ctrl)
	mockService.EXPECT().DeleteRequest(gomock.Any(), gomock.Any(), "req-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v0/requests/req-1", nil)
	rr := serve(api, req, clientCaller)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}

func TestAPI_List(t *testing.T) {
	t.Run("status filter validated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, _ := newTestAPI(ctrl)
		req := httptest.NewRequest(http.MethodGet, "/api/v0/requests?status=bogus", nil)
		rr := serve(api, req, adminCaller)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("filters forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, mockService := newTestAPI(ctrl)
		mockService.EXPECT().ListRequests(gomock.Any(), gomock.Any(), ListFilter{CompanyID: "company-b", Status: types.StatusReview}).
			Return([]*types.Request{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v0/requests?company_id=company-b&status=review", nil)
		rr := serve(api, req, adminCaller)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	})
}

func TestAPI_Update(t *testing.T) {
	t.Run("empty patch rejected by service", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, mockService := newTestAPI(ctrl)
		mockService.EXPECT().UpdateRequest(gomock.Any(), gomock.Any(), "req-1", map[string]any{}).
			Return(nil, httptypes.NewValidationError("no updatable fields in request body", nil))

		req := httptest.NewRequest(http.MethodPatch, "/api/v0/requests/req-1", strings.NewReader(`{}`))
		rr := serve(api, req, clientCaller)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("recognized fields forwarded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api, mockService := newTestAPI(ctrl)
		mockService.EXPECT().UpdateRequest(gomock.Any(), gomock.Any(), "req-1", map[string]any{"title": "New title", "priority": "high"}).
			Return(&types.Request{ID: "req-1", Title: "New title", Priority: types.PriorityHigh}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/api/v0/requests/req-1", strings.NewReader(`{"title":"New title","priority":"high"}`))
		rr := serve(api, req, clientCaller)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
	})
}

func TestAPI_Comments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api, mockService := newTestAPI(ctrl)
	mockService.EXPECT().AddComment(gomock.Any(), gomock.Any(), "req-1", "looks great").
		Return(&types.RequestComment{ID: "comment-1", RequestID: "req-1", Body: "looks great"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v0/requests/req-1/comments", strings.NewReader(`{"body":"looks great"}`))
	rr := serve(api, req, clientCaller)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
}
