// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package profiles

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/kratos"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package profiles -destination ./mock_profiles.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package profiles -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package profiles -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package profiles -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

var (
	companyA     = "company-a"
	adminCaller  = &types.Principal{UserID: "admin-1", Role: types.RoleAdmin}
	clientCaller = &types.Principal{UserID: "client-1", Role: types.RoleClient, CompanyID: &companyA}
)

type profileMocks struct {
	storage *MockStorageInterface
	kratos  *MockKratosClientInterface
}

func newTestProfileService(ctrl *gomock.Controller) (*Service, profileMocks) {
	mockStorage := NewMockStorageInterface(ctrl)
	mockKratos := NewMockKratosClientInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	mockSecurity := NewMockSecurityLoggerInterface(ctrl)
	mockSecurity.EXPECT().AuthnFailure(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Security().AnyTimes().Return(mockSecurity)

	s := NewService(mockStorage, mockKratos, mockTracer, mockMonitor, mockLogger)
	return s, profileMocks{storage: mockStorage, kratos: mockKratos}
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	if got := httptypes.AsAPIError(err).Code; got != code {
		t.Errorf("expected error code %q, got %q (%v)", code, got, err)
	}
}

func TestService_GetProfile(t *testing.T) {
	t.Run("returns the caller's profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestProfileService(ctrl)
		m.storage.EXPECT().GetProfileByID(gomock.Any(), "client-1").
			Return(&types.Profile{ID: "client-1", Email: "c@acme.test", Role: types.RoleClient}, nil)

		profile, err := s.GetProfile(context.Background(), clientCaller)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if profile.ID != "client-1" {
			t.Errorf("expected profile client-1, got %s", profile.ID)
		}
	})

	t.Run("missing profile maps to not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestProfileService(ctrl)
		m.storage.EXPECT().GetProfileByID(gomock.Any(), "client-1").Return(nil, storage.ErrNotFound)

		_, err := s.GetProfile(context.Background(), clientCaller)
		expectCode(t, err, httptypes.CodeNotFound)
	})
}

func TestService_UpdateName(t *testing.T) {
	t.Run("updates the full name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestProfileService(ctrl)
		m.storage.EXPECT().UpdateProfileName(gomock.Any(), "client-1", "Ada Lovelace").
			Return(&types.Profile{ID: "client-1", FullName: "Ada Lovelace"}, nil)

		profile, err := s.UpdateName(context.Background(), clientCaller, "Ada Lovelace")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if profile.FullName != "Ada Lovelace" {
			t.Errorf("expected updated name, got %q", profile.FullName)
		}
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestProfileService(ctrl)
		_, err := s.UpdateName(context.Background(), clientCaller, "")
		expectCode(t, err, httptypes.CodeValidation)
	})

	t.Run("missing profile maps to not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestProfileService(ctrl)
		m.storage.EXPECT().UpdateProfileName(gomock.Any(), "client-1", "Ada").Return(nil, storage.ErrNotFound)

		_, err := s.UpdateName(context.Background(), clientCaller, "Ada")
		expectCode(t, err, httptypes.CodeNotFound)
	})
}

func TestService_ChangePassword(t *testing.T) {
	clientProfile := &types.Profile{ID: "client-1", Email: "c@acme.test", Role: types.RoleClient}

	tests := []struct {
		name     string
		password string
		wantCode string
	}{
		{name: "valid password", password: "Sup3rSecret"},
		{name: "too short", password: "Ab1", wantCode: httptypes.CodeValidation},
		{name: "too long", password: "A1" + strings.Repeat("x", 80), wantCode: httptypes.CodeValidation},
		{name: "no uppercase", password: "sup3rsecret", wantCode: httptypes.CodeValidation},
		{name: "no lowercase", password: "SUP3RSECRET", wantCode: httptypes.CodeValidation},
		{name: "no digit", password: "SuperSecret", wantCode: httptypes.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestProfileService(ctrl)
			if tt.wantCode == "" {
				m.storage.EXPECT().GetProfileByID(gomock.Any(), "client-1").Return(clientProfile, nil)
				m.kratos.EXPECT().VerifyPassword(gomock.Any(), "c@acme.test", "0ldSecret").Return(nil)
				m.kratos.EXPECT().UpdateIdentityPassword(gomock.Any(), "client-1", tt.password).Return(nil)
			}

			err := s.ChangePassword(context.Background(), clientCaller, "0ldSecret", tt.password)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			expectCode(t, err, tt.wantCode)
		})
	}

	t.Run("wrong current password is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestProfileService(ctrl)
		m.storage.EXPECT().GetProfileByID(gomock.Any(), "client-1").Return(clientProfile, nil)
		m.kratos.EXPECT().VerifyPassword(gomock.Any(), "c@acme.test", "guess").
			Return(kratos.ErrInvalidCredentials)

		err := s.ChangePassword(context.Background(), clientCaller, "guess", "Sup3rSecret")
		expectCode(t, err, httptypes.CodeForbidden)
	})

	t.Run("identity provider failure maps to internal error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestProfileService(ctrl)
		m.storage.EXPECT().GetProfileByID(gomock.Any(), "client-1").Return(clientProfile, nil)
		m.kratos.EXPECT().VerifyPassword(gomock.Any(), "c@acme.test", "0ldSecret").Return(nil)
		m.kratos.EXPECT().UpdateIdentityPassword(gomock.Any(), "client-1", "Sup3rSecret").
			Return(errors.New("kratos unavailable"))

		err := s.ChangePassword(context.Background(), clientCaller, "0ldSecret", "Sup3rSecret")
		expectCode(t, err, httptypes.CodeInternal)
	})
}

func TestService_ListTeamMembers(t *testing.T) {
	t.Run("admin sees the admin roster", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestProfileService(ctrl)
		m.storage.EXPECT().ListAdminProfiles(gomock.Any()).
			Return([]*types.Profile{{ID: "admin-1"}, {ID: "admin-2"}}, nil)

		members, err := s.ListTeamMembers(context.Background(), adminCaller)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(members) != 2 {
			t.Errorf("expected 2 members, got %d", len(members))
		}
	})

	t.Run("client sees only their company", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestProfileService(ctrl)
		m.storage.EXPECT().ListProfilesByCompany(gomock.Any(), companyA).
			Return([]*types.Profile{{ID: "client-1"}}, nil)

		members, err := s.ListTeamMembers(context.Background(), clientCaller)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(members) != 1 || members[0].ID != "client-1" {
			t.Errorf("unexpected members %v", members)
		}
	})

	t.Run("client without a company is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestProfileService(ctrl)
		orphan := &types.Principal{UserID: "client-9", Role: types.RoleClient}
		_, err := s.ListTeamMembers(context.Background(), orphan)
		expectCode(t, err, httptypes.CodeForbidden)
	})
}
