// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package companies

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package companies -destination ./mock_companies.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package companies -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package companies -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package companies -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

var (
	companyA     = "company-a"
	adminCaller  = &types.Principal{UserID: "admin-1", Role: types.RoleAdmin}
	clientCaller = &types.Principal{UserID: "client-1", Role: types.RoleClient, CompanyID: &companyA}
)

func newTestCompanyService(ctrl *gomock.Controller) (*Service, *MockStorageInterface) {
	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Security().AnyTimes().Return(mockSecurity)
	mockSecurity.EXPECT().AuthzFailure(gomock.Any(), gomock.Any()).AnyTimes()

	return NewService(mockStorage, mockTracer, mockMonitor, mockLogger), mockStorage
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

func TestService_GetSubscription(t *testing.T) {
	t.Run("returns plan usage and services", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestCompanyService(ctrl)
		m.EXPECT().GetCompanyByID(gomock.Any(), companyA).
			Return(&types.Company{ID: companyA, Plan: "growth", MaxActiveLimit: 5, Active: true}, nil)
		m.EXPECT().CountActiveRequestsByCompany(gomock.Any(), companyA).Return(3, nil)
		m.EXPECT().ListClientServicesByCompany(gomock.Any(), companyA).
			Return([]*types.ClientService{{ID: "svc-1", CompanyID: companyA, Name: "design"}}, nil)

		sub, err := s.GetSubscription(context.Background(), clientCaller)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sub.MaxActiveLimit != 5 || sub.ActiveRequests != 3 {
			t.Errorf("unexpected usage %d/%d", sub.ActiveRequests, sub.MaxActiveLimit)
		}
		if len(sub.Services) != 1 {
			t.Errorf("expected 1 service, got %d", len(sub.Services))
		}
	})

	t.Run("caller without a company gets not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestCompanyService(ctrl)
		_, err := s.GetSubscription(context.Background(), adminCaller)
		expectCode(t, err, httptypes.CodeNotFound)
	})

	t.Run("vanished company maps to not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestCompanyService(ctrl)
		m.EXPECT().GetCompanyByID(gomock.Any(), companyA).Return(nil, storage.ErrNotFound)

		_, err := s.GetSubscription(context.Background(), clientCaller)
		expectCode(t, err, httptypes.CodeNotFound)
	})
}

func TestService_CreateCompany(t *testing.T) {
	t.Run("admin creates an active company", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestCompanyService(ctrl)
		m.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *types.Company) (*types.Company, error) {
			if !c.Active {
				t.Error("expected new companies to start active")
			}
			if c.MaxActiveLimit != 5 {
				t.Errorf("expected limit 5, got %d", c.MaxActiveLimit)
			}
			c.ID = "company-new"
			return c, nil
		})

		company, err := s.CreateCompany(context.Background(), adminCaller, CreateCompanyInput{Name: "Acme", Plan: "growth", MaxActiveLimit: 5})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if company.ID != "company-new" {
			t.Errorf("unexpected company %v", company)
		}
	})

	t.Run("client is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestCompanyService(ctrl)
		_, err := s.CreateCompany(context.Background(), clientCaller, CreateCompanyInput{Name: "Acme", MaxActiveLimit: 5})
		expectCode(t, err, httptypes.CodeForbidden)
	})

	t.Run("zero limit is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestCompanyService(ctrl)
		_, err := s.CreateCompany(context.Background(), adminCaller, CreateCompanyInput{Name: "Acme"})
		expectCode(t, err, httptypes.CodeValidation)
	})

	t.Run("duplicate name maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestCompanyService(ctrl)
		m.EXPECT().CreateCompany(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)

		_, err := s.CreateCompany(context.Background(), adminCaller, CreateCompanyInput{Name: "Acme", MaxActiveLimit: 5})
		expectCode(t, err, httptypes.CodeConflict)
	})
}

func TestService_UpdateCompany(t *testing.T) {
	t.Run("admin patches known fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestCompanyService(ctrl)
		m.EXPECT().UpdateCompany(gomock.Any(), gomock.Any(), []string{"plan", "max_active_limit"}).Return(nil)
		m.EXPECT().GetCompanyByID(gomock.Any(), companyA).
			Return(&types.Company{ID: companyA, Plan: "scale", MaxActiveLimit: 10}, nil)

		updated, err := s.UpdateCompany(context.Background(), adminCaller, companyA,
			&types.Company{Plan: "scale", MaxActiveLimit: 10}, []string{"plan", "max_active_limit"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.Plan != "scale" {
			t.Errorf("expected updated plan, got %q", updated.Plan)
		}
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestCompanyService(ctrl)
		_, err := s.UpdateCompany(context.Background(), adminCaller, companyA, &types.Company{}, []string{"created_at"})
		expectCode(t, err, httptypes.CodeValidation)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestCompanyService(ctrl)
		_, err := s.UpdateCompany(context.Background(), clientCaller, companyA, &types.Company{Plan: "scale"}, []string{"plan"})
		expectCode(t, err, httptypes.CodeForbidden)
	})

	t.Run("missing company maps to not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestCompanyService(ctrl)
		m.EXPECT().UpdateCompany(gomock.Any(), gomock.Any(), []string{"plan"}).Return(storage.ErrNotFound)

		_, err := s.UpdateCompany(context.Background(), adminCaller, "missing", &types.Company{Plan: "scale"}, []string{"plan"})
		expectCode(t, err, httptypes.CodeNotFound)
	})
}

func TestService_ListCompanies(t *testing.T) {
	t.Run("admin lists all", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestCompanyService(ctrl)
		m.EXPECT().ListCompanies(gomock.Any()).
			Return([]*types.Company{{ID: "a"}, {ID: "b"}}, nil)

		companies, err := s.ListCompanies(context.Background(), adminCaller)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(companies) != 2 {
			t.Errorf("expected 2 companies, got %d", len(companies))
		}
	})

	t.Run("client is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestCompanyService(ctrl)
		_, err := s.ListCompanies(context.Background(), clientCaller)
		expectCode(t, err, httptypes.CodeForbidden)
	})
}
