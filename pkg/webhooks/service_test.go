// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_webhooks.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

var companyA = "company-a"

type webhookMocks struct {
	storage  *MockStorageInterface
	txRunner *MockTxRunnerInterface
}

func newTestWebhookService(ctrl *gomock.Controller) (*Service, webhookMocks) {
	mockStorage := NewMockStorageInterface(ctrl)
	mockTxRunner := NewMockTxRunnerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Security().AnyTimes().Return(mockSecurity)
	mockSecurity.EXPECT().AuthnFailure(gomock.Any()).AnyTimes()

	s := NewService(mockStorage, mockTxRunner, mockTracer, mockMonitor, mockLogger)
	return s, webhookMocks{storage: mockStorage, txRunner: mockTxRunner}
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

func pendingInvitation() *types.Invitation {
	return &types.Invitation{
		ID:        "inv-1",
		Email:     "new@acme.test",
		Role:      types.RoleClient,
		CompanyID: &companyA,
		Status:    types.InvitationPending,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestService_HandleRegistration(t *testing.T) {
	t.Run("invited identity gets a profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestWebhookService(ctrl)
		m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), "new@acme.test").Return(pendingInvitation(), nil)
		m.txRunner.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
		m.storage.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *types.Profile) (*types.Profile, error) {
			if p.ID != "identity-1" {
				t.Errorf("expected profile ID to be the identity ID, got %s", p.ID)
			}
			if p.Role != types.RoleClient || p.CompanyID == nil || *p.CompanyID != companyA {
				t.Errorf("expected role and company inherited from the invitation, got %v", p)
			}
			return p, nil
		})
		m.storage.EXPECT().MarkInvitationAccepted(gomock.Any(), "inv-1", gomock.Any()).Return(nil)

		profile, err := s.HandleRegistration(context.Background(), "identity-1", "new@acme.test", "New User")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if profile.FullName != "New User" {
			t.Errorf("expected full name carried over, got %q", profile.FullName)
		}
	})

	t.Run("uninvited email is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestWebhookService(ctrl)
		m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), "stranger@acme.test").Return(nil, storage.ErrNotFound)

		_, err := s.HandleRegistration(context.Background(), "identity-2", "stranger@acme.test", "")
		expectCode(t, err, httptypes.CodeForbidden)
	})

	t.Run("expired invitation is rejected and marked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestWebhookService(ctrl)
		stale := pendingInvitation()
		stale.ExpiresAt = time.Now().Add(-time.Hour)
		m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), "new@acme.test").Return(stale, nil)
		m.storage.EXPECT().MarkInvitationExpired(gomock.Any(), "inv-1").Return(nil)

		_, err := s.HandleRegistration(context.Background(), "identity-1", "new@acme.test", "")
		expectCode(t, err, httptypes.CodeInvitationExpired)
	})

	t.Run("concurrent accept rolls back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestWebhookService(ctrl)
		m.storage.EXPECT().GetPendingInvitationByEmail(gomock.Any(), "new@acme.test").Return(pendingInvitation(), nil)
		m.txRunner.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
		m.storage.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *types.Profile) (*types.Profile, error) {
			return p, nil
		})
		m.storage.EXPECT().MarkInvitationAccepted(gomock.Any(), "inv-1", gomock.Any()).Return(storage.ErrNotFound)

		_, err := s.HandleRegistration(context.Background(), "identity-1", "new@acme.test", "")
		expectCode(t, err, httptypes.CodeNotFound)
	})

	t.Run("missing identity fields are rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestWebhookService(ctrl)
		_, err := s.HandleRegistration(context.Background(), "", "new@acme.test", "")
		expectCode(t, err, httptypes.CodeValidation)
	})
}
