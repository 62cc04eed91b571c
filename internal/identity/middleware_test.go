// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/types"
	"github.com/agencyos/portal/pkg/authentication"
)

//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_tracer.go -source=../tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_profiles.go -source=./interfaces.go

func TestMiddleware_ResolvePrincipal(t *testing.T) {
	companyID := "company-1"

	tests := []struct {
		name               string
		userID             string
		setupMocks         func(*gomock.Controller, *MockLoggerInterface) ProfileStoreInterface
		expectedStatusCode int
		expectedRole       types.Role
	}{
		{
			name:   "No authenticated user - rejects request",
			userID: "",
			setupMocks: func(ctrl *gomock.Controller, _ *MockLoggerInterface) ProfileStoreInterface {
				return NewMockProfileStoreInterface(ctrl)
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "Authenticated user without a profile - rejects request",
			userID: "user-no-profile",
			setupMocks: func(ctrl *gomock.Controller, logger *MockLoggerInterface) ProfileStoreInterface {
				mockProfiles := NewMockProfileStoreInterface(ctrl)
				mockProfiles.EXPECT().GetProfileByID(gomock.Any(), "user-no-profile").Return(nil, storage.ErrNotFound)
				mockSecurity := NewMockSecurityLoggerInterface(ctrl)
				mockSecurity.EXPECT().AuthnFailure("user-no-profile")
				logger.EXPECT().Security().Return(mockSecurity)
				return mockProfiles
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "Storage failure - internal error",
			userID: "user-1",
			setupMocks: func(ctrl *gomock.Controller, logger *MockLoggerInterface) ProfileStoreInterface {
				mockProfiles := NewMockProfileStoreInterface(ctrl)
				mockProfiles.EXPECT().GetProfileByID(gomock.Any(), "user-1").Return(nil, fmt.Errorf("connection refused"))
				logger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any())
				return mockProfiles
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
		{
			name:   "Client profile resolves",
			userID: "user-2",
			setupMocks: func(ctrl *gomock.Controller, _ *MockLoggerInterface) ProfileStoreInterface {
				mockProfiles := NewMockProfileStoreInterface(ctrl)
				mockProfiles.EXPECT().GetProfileByID(gomock.Any(), "user-2").Return(&types.Profile{
					ID:        "user-2",
					Role:      types.RoleClient,
					CompanyID: &companyID,
				}, nil)
				return mockProfiles
			},
			expectedStatusCode: http.StatusOK,
			expectedRole:       types.RoleClient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer.EXPECT().Start(gomock.Any(), "identity.Middleware.ResolvePrincipal").
				DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
					return ctx, trace.SpanFromContext(ctx)
				})

			mockProfiles := tt.setupMocks(ctrl, mockLogger)
			middleware := NewMiddleware(mockProfiles, mockTracer, mockMonitor, mockLogger)

			var resolved *types.Principal
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				resolved, _ = GetPrincipal(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.userID != "" {
				req = req.WithContext(authentication.WithUserID(req.Context(), tt.userID))
			}
			rr := httptest.NewRecorder()

			middleware.ResolvePrincipal()(handler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tt.expectedStatusCode, rr.Code)
			}
			if tt.expectedStatusCode == http.StatusOK {
				if resolved == nil {
					t.Fatal("expected a principal in the handler context")
				}
				if resolved.Role != tt.expectedRole {
					t.Errorf("expected role %q, got %q", tt.expectedRole, resolved.Role)
				}
			}
		})
	}
}

func TestMiddleware_RequireAdmin(t *testing.T) {
	companyID := "company-1"

	tests := []struct {
		name               string
		principal          *types.Principal
		setupMocks         func(*gomock.Controller, *MockLoggerInterface)
		expectedStatusCode int
	}{
		{
			name:               "No principal - rejects request",
			principal:          nil,
			setupMocks:         func(*gomock.Controller, *MockLoggerInterface) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:      "Client principal - forbidden",
			principal: &types.Principal{UserID: "user-2", Role: types.RoleClient, CompanyID: &companyID},
			setupMocks: func(ctrl *gomock.Controller, logger *MockLoggerInterface) {
				mockSecurity := NewMockSecurityLoggerInterface(ctrl)
				mockSecurity.EXPECT().AuthzFailure("user-2", "admin-only route")
				logger.EXPECT().Security().Return(mockSecurity)
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:               "Admin principal - allowed",
			principal:          &types.Principal{UserID: "admin-1", Role: types.RoleAdmin},
			setupMocks:         func(*gomock.Controller, *MockLoggerInterface) {},
			expectedStatusCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockProfiles := NewMockProfileStoreInterface(ctrl)

			tt.setupMocks(ctrl, mockLogger)

			middleware := NewMiddleware(mockProfiles, mockTracer, mockMonitor, mockLogger)

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.principal != nil {
				req = req.WithContext(WithPrincipal(req.Context(), tt.principal))
			}
			rr := httptest.NewRecorder()

			middleware.RequireAdmin()(handler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tt.expectedStatusCode, rr.Code)
			}
		})
	}
}
