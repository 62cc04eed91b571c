// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/agencyos/portal/internal/authorization"
	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/tracing"
	"github.com/agencyos/portal/internal/types"
)

type Service struct {
	storage  StorageInterface
	txRunner TxRunnerInterface
	kratos   KratosClientInterface
	lifetime time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	txRunner TxRunnerInterface,
	kratos KratosClientInterface,
	lifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		txRunner: txRunner,
		kratos:   kratos,
		lifetime: lifetime,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (s *Service) Invite(ctx context.Context, caller *types.Principal, email string, role types.Role, companyID *string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.Invite")
	defer span.End()

	if !authorization.CanInvite(caller.Role) {
		s.logger.Security().AuthzFailure(caller.UserID, "invitation creation")
		return nil, httptypes.NewForbiddenError("only admins may create invitations")
	}
	if !role.Valid() {
		return nil, httptypes.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}
	if role == types.RoleClient {
		if companyID == nil || *companyID == "" {
			return nil, httptypes.NewValidationError("client invitations require company_id", nil)
		}
		if _, err := s.storage.GetCompanyByID(ctx, *companyID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, httptypes.NewNotFoundError("company not found")
			}
			s.logger.Errorf("loading company %s: %v", *companyID, err)
			return nil, httptypes.NewInternalError()
		}
	}

	// A lookup failure does not block the invitation, the duplicate is
	// caught again at accept time.
	if identityID, err := s.kratos.GetIdentityIDByEmail(ctx, email); err == nil && identityID != "" {
		return nil, httptypes.NewConflictError("an account already exists for this email")
	}

	invitation, err := s.storage.CreateInvitation(ctx, &types.Invitation{
		Email:     email,
		Role:      role,
		CompanyID: companyID,
		Token:     uuid.NewString(),
		Status:    types.InvitationPending,
		ExpiresAt: time.Now().UTC().Add(s.lifetime),
		InvitedBy: caller.UserID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, httptypes.NewConflictError("a pending invitation already exists for this email")
		}
		s.logger.Errorf("creating invitation for %s: %v", email, err)
		return nil, httptypes.NewInternalError()
	}

	s.logger.Infof("invitation %s created for %s (%s)", invitation.ID, email, role)
	return invitation, nil
}

func (s *Service) ListInvitations(ctx context.Context, caller *types.Principal) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.ListInvitations")
	defer span.End()

	if !authorization.CanInvite(caller.Role) {
		s.logger.Security().AuthzFailure(caller.UserID, "invitation listing")
		return nil, httptypes.NewForbiddenError("only admins may list invitations")
	}

	list, err := s.storage.ListInvitations(ctx)
	if err != nil {
		s.logger.Errorf("listing invitations: %v", err)
		return nil, httptypes.NewInternalError()
	}
	return list, nil
}

// Validate checks a token without consuming it. An invitation whose expiry
// passed is marked expired as a side effect so subsequent reads agree.
func (s *Service) Validate(ctx context.Context, token string) (*Validity, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.Validate")
	defer span.End()

	invitation, err := s.loadPendingCheck(ctx, token)
	if err != nil {
		return nil, err
	}

	return &Validity{
		Valid:  invitation.Status == types.InvitationPending,
		Email:  invitation.Email,
		Role:   invitation.Role,
		Status: invitation.Status,
	}, nil
}

func (s *Service) Accept(ctx context.Context, token, password string) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "invitations.Service.Accept")
	defer span.End()

	invitation, err := s.loadPendingCheck(ctx, token)
	if err != nil {
		return nil, err
	}
	switch invitation.Status {
	case types.InvitationPending:
	case types.InvitationExpired:
		return nil, httptypes.NewInvitationExpiredError()
	default:
		return nil, httptypes.NewNotFoundError("invitation not found or already used")
	}

	identityID, err := s.kratos.CreateIdentityWithPassword(ctx, invitation.Email, "", password)
	if err != nil {
		s.logger.Errorf("creating identity for %s: %v", invitation.Email, err)
		return nil, httptypes.NewInternalError()
	}

	var profile *types.Profile
	err = s.txRunner.WithTx(ctx, func(txCtx context.Context) error {
		profile, err = s.storage.CreateProfile(txCtx, &types.Profile{
			ID:        identityID,
			Email:     invitation.Email,
			Role:      invitation.Role,
			CompanyID: invitation.CompanyID,
		})
		if err != nil {
			return err
		}
		// Guarded update: fails with ErrNotFound if the row is no longer
		// pending, rolling back the profile insert on a double accept.
		return s.storage.MarkInvitationAccepted(txCtx, invitation.ID, time.Now().UTC())
	})
	if err != nil {
		// The identity was created before the transaction. Without a profile
		// row it can never sign in, so delete it rather than strand it.
		if delErr := s.kratos.DeleteIdentity(ctx, identityID); delErr != nil {
			s.logger.Errorf("deleting identity %s after failed accept of invitation %s: %v", identityID, invitation.ID, delErr)
		} else {
			s.logger.Infof("deleted identity %s after failed accept of invitation %s", identityID, invitation.ID)
		}

		if errors.Is(err, storage.ErrNotFound) {
			return nil, httptypes.NewNotFoundError("invitation not found or already used")
		}
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, httptypes.NewConflictError("a profile already exists for this identity")
		}
		s.logger.Errorf("accepting invitation %s: %v", invitation.ID, err)
		return nil, httptypes.NewInternalError()
	}

	s.logger.Infof("invitation %s accepted, profile %s created", invitation.ID, profile.ID)
	return profile, nil
}

// loadPendingCheck resolves a token and lazily expires a stale pending row.
func (s *Service) loadPendingCheck(ctx context.Context, token string) (*types.Invitation, error) {
	invitation, err := s.storage.GetInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httptypes.NewNotFoundError("invitation not found or already used")
		}
		s.logger.Errorf("loading invitation by token: %v", err)
		return nil, httptypes.NewInternalError()
	}

	if invitation.Status == types.InvitationPending && invitation.IsExpired(time.Now().UTC()) {
		if err := s.storage.MarkInvitationExpired(ctx, invitation.ID); err != nil {
			s.logger.Warnf("marking invitation %s expired: %v", invitation.ID, err)
		}
		invitation.Status = types.InvitationExpired
	}
	return invitation, nil
}
