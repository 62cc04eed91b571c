// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package invitations -destination ./mock_invitations.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitations -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitations -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invitations -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

var (
	companyA     = "company-a"
	adminCaller  = &types.Principal{UserID: "admin-1", Role: types.RoleAdmin}
	clientCaller = &types.Principal{UserID: "client-1", Role: types.RoleClient, CompanyID: &companyA}
)

type invitationMocks struct {
	storage  *MockStorageInterface
	txRunner *MockTxRunnerInterface
	kratos   *MockKratosClientInterface
}

func newTestInvitationService(ctrl *gomock.Controller) (*Service, invitationMocks) {
	mockStorage := NewMockStorageInterface(ctrl)
	mockTxRunner := NewMockTxRunnerInterface(ctrl)
	mockKratos := NewMockKratosClientInterface(ctrl)
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
	mockSecurity.EXPECT().AuthzFailure(gomock.Any(), gomock.Any()).AnyTimes()

	s := NewService(mockStorage, mockTxRunner, mockKratos, 168*time.Hour, mockTracer, mockMonitor, mockLogger)
	return s, invitationMocks{storage: mockStorage, txRunner: mockTxRunner, kratos: mockKratos}
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

func TestService_Invite(t *testing.T) {
	t.Run("admin invites a client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestInvitationService(ctrl)
		m.storage.EXPECT().GetCompanyByID(gomock.Any(), companyA).Return(&types.Company{ID: companyA, Active: true}, nil)
		m.kratos.EXPECT().GetIdentityIDByEmail(gomock.Any(), "new@client.test").Return("", nil)
		m.storage.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, i *types.Invitation) (*types.Invitation, error) {
			if len(i.Token) != 36 {
				t.Errorf("expected a 36 character token, got %d", len(i.Token))
			}
			if i.Status != types.InvitationPending {
				t.Errorf("expected pending status, got %s", i.Status)
			}
			if remaining := time.Until(i.ExpiresAt); remaining < 167*time.Hour || remaining > 169*time.Hour {
				t.Errorf("expiry not near the configured lifetime: %v", remaining)
			}
			i.ID = "inv-1"
			return i, nil
		})

		invitation, err := s.Invite(context.Background(), adminCaller, "new@client.test", types.RoleClient, &companyA)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if invitation.InvitedBy != "admin-1" {
			t.Errorf("expected invited_by admin-1, got %s", invitation.InvitedBy)
		}
	})

	t.Run("client cannot invite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestInvitationService(ctrl)
		_, err := s.Invite(context.Background(), clientCaller, "new@client.test", types.RoleClient, &companyA)
		expectCode(t, err, httptypes.CodeForbidden)
	})

	t.Run("client invitation requires a company", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestInvitationService(ctrl)
		_, err := s.Invite(context.Background(), adminCaller, "new@client.test", types.RoleClient, nil)
		expectCode(t, err, httptypes.CodeValidation)
	})

	t.Run("duplicate pending invitation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestInvitationService(ctrl)
		m.kratos.EXPECT().GetIdentityIDByEmail(gomock.Any(), "new@agency.test").Return("", nil)
		m.storage.EXPECT().CreateInvitation(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)

		_, err := s.Invite(context.Background(), adminCaller, "new@agency.test", types.RoleAdmin, nil)
		expectCode(t, err, httptypes.CodeConflict)
	})

	t.Run("already registered email conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestInvitationService(ctrl)
		m.kratos.EXPECT().GetIdentityIDByEmail(gomock.Any(), "taken@agency.test").Return("identity-9", nil)

		_, err := s.Invite(context.Background(), adminCaller, "taken@agency.test", types.RoleAdmin, nil)
		expectCode(t, err, httptypes.CodeConflict)
	})
}

func TestService_Validate(t *testing.T) {
	token := "11111111-2222-3333-4444-555555555555"

	t.Run("pending invitation is valid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestInvitationService(ctrl)
		m.storage.EXPECT().GetInvitationByToken(gomock.Any(), token).Return(&types.Invitation{
			ID:        "inv-1",
			Email:     "new@client.test",
			Role:      types.RoleClient,
			Status:    types.InvitationPending,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)

		validity, err := s.Validate(context.Background(), token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !validity.Valid || validity.Status != types.InvitationPending {
			t.Errorf("expected a valid pending invitation, got %+v", validity)
		}
	})

	t.Run("stale pending invitation is marked expired", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestInvitationService(ctrl)
		m.storage.EXPECT().GetInvitationByToken(gomock.Any(), token).Return(&types.Invitation{
			ID:        "inv-1",
			Status:    types.InvitationPending,
			ExpiresAt: time.Now().Add(-time.Hour),
		}, nil)
		m.storage.EXPECT().MarkInvitationExpired(gomock.Any(), "inv-1").Return(nil)

		validity, err := s.Validate(context.Background(), token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if validity.Valid || validity.Status != types.InvitationExpired {
			t.Errorf("expected an expired invitation, got %+v", validity)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestInvitationService(ctrl)
		m.storage.EXPECT().GetInvitationByToken(gomock.Any(), token).Return(nil, storage.ErrNotFound)

		_, err := s.Validate(context.Background(), token)
		expectCode(t, err, httptypes.CodeNotFound)
	})
}

func TestService_Accept(t *testing.T) {
	token := "11111111-2222-3333-4444-555555555555"

	pending := func() *types.Invitation {
		return &types.Invitation{
			ID:        "inv-1",
			Email:     "new@client.test",
			Role:      types.RoleClient,
			CompanyID: &companyA,
			Status:    types.InvitationPending,
			ExpiresAt: time.Now().Add(time.Hour),
		}
	}

	t.Run("accept provisions identity and profile", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestInvitationService(ctrl)
		m.storage.EXPECT().GetInvitationByToken(gomock.Any(), token).Return(pending(), nil)
		m.kratos.EXPECT().CreateIdentityWithPassword(gomock.Any(), "new@client.test", "", "Str0ngpass").Return("identity-1", nil)
		m.txRunner.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
		m.storage.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *types.Profile) (*types.Profile, error) {
			if p.ID != "identity-1" {
				t.Errorf("profile ID must be the identity ID, got %s", p.ID)
			}
			if p.Role != types.RoleClient || p.CompanyID == nil || *p.CompanyID != companyA {
				t.Errorf("profile must inherit invitation role and company: %+v", p)
			}
			return p, nil
		})
		m.storage.EXPECT().MarkInvitationAccepted(gomock.Any(), "inv-1", gomock.Any()).Return(nil)

		profile, err := s.Accept(context.Background(), token, "Str0ngpass")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.Email != "new@client.test" {
			t.Errorf("unexpected profile email %s", profile.Email)
		}
	})

	t.Run("expired invitation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestInvitationService(ctrl)
		stale := pending()
		stale.ExpiresAt = time.Now().Add(-time.Hour)
		m.storage.EXPECT().GetInvitationByToken(gomock.Any(), token).Return(stale, nil)
		m.storage.EXPECT().MarkInvitationExpired(gomock.Any(), "inv-1").Return(nil)

		_, err := s.Accept(context.Background(), token, "Str0ngpass")
		expectCode(t, err, httptypes.CodeInvitationExpired)
	})

	t.Run("second accept of the same token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestInvitationService(ctrl)
		used := pending()
		used.Status = types.InvitationAccepted
		m.storage.EXPECT().GetInvitationByToken(gomock.Any(), token).Return(used, nil)

		_, err := s.Accept(context.Background(), token, "Str0ngpass")
		expectCode(t, err, httptypes.CodeNotFound)
	})

	t.Run("race on accept rolls back and deletes the identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestInvitationService(ctrl)
		m.storage.EXPECT().GetInvitationByToken(gomock.Any(), token).Return(pending(), nil)
		m.kratos.EXPECT().CreateIdentityWithPassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("identity-1", nil)
		m.txRunner.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
		m.storage.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).Return(&types.Profile{ID: "identity-1"}, nil)
		m.storage.EXPECT().MarkInvitationAccepted(gomock.Any(), "inv-1", gomock.Any()).Return(storage.ErrNotFound)
		m.kratos.EXPECT().DeleteIdentity(gomock.Any(), "identity-1").Return(nil)

		_, err := s.Accept(context.Background(), token, "Str0ngpass")
		expectCode(t, err, httptypes.CodeNotFound)
	})

	t.Run("identity cleanup failure still reports the accept error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestInvitationService(ctrl)
		m.storage.EXPECT().GetInvitationByToken(gomock.Any(), token).Return(pending(), nil)
		m.kratos.EXPECT().CreateIdentityWithPassword(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("identity-1", nil)
		m.txRunner.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
		m.storage.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
		m.kratos.EXPECT().DeleteIdentity(gomock.Any(), "identity-1").Return(errors.New("kratos unavailable"))

		_, err := s.Accept(context.Background(), token, "Str0ngpass")
		expectCode(t, err, httptypes.CodeConflict)
	})
}
