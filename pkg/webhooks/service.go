// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"time"

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

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	txRunner TxRunnerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		txRunner: txRunner,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// HandleRegistration provisions a profile for an identity that registered
// through the Kratos self-service flow. The portal is invite only: without a
// live pending invitation for the registration email the hook rejects the
// registration and Kratos rolls the identity back.
func (s *Service) HandleRegistration(ctx context.Context, identityID, email, fullName string) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	if identityID == "" || email == "" {
		return nil, httptypes.NewValidationError("identity id and email are required", nil)
	}

	invitation, err := s.storage.GetPendingInvitationByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Security().AuthnFailure(email)
			return nil, httptypes.NewForbiddenError("registration is by invitation only")
		}
		s.logger.Errorf("looking up invitation for %s: %v", email, err)
		return nil, httptypes.NewInternalError()
	}

	if invitation.IsExpired(time.Now().UTC()) {
		if err := s.storage.MarkInvitationExpired(ctx, invitation.ID); err != nil {
			s.logger.Warnf("marking invitation %s expired: %v", invitation.ID, err)
		}
		return nil, httptypes.NewInvitationExpiredError()
	}

	var profile *types.Profile
	err = s.txRunner.WithTx(ctx, func(txCtx context.Context) error {
		profile, err = s.storage.CreateProfile(txCtx, &types.Profile{
			ID:        identityID,
			Email:     email,
			FullName:  fullName,
			Role:      invitation.Role,
			CompanyID: invitation.CompanyID,
		})
		if err != nil {
			return err
		}
		// Guarded update: fails with ErrNotFound if the row is no longer
		// pending, rolling back the profile insert on a concurrent accept.
		return s.storage.MarkInvitationAccepted(txCtx, invitation.ID, time.Now().UTC())
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httptypes.NewNotFoundError("invitation not found or already used")
		}
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, httptypes.NewConflictError("a profile already exists for this identity")
		}
		s.logger.Errorf("provisioning profile for identity %s: %v", identityID, err)
		return nil, httptypes.NewInternalError()
	}

	s.logger.Infof("registration hook provisioned profile %s from invitation %s", profile.ID, invitation.ID)
	return profile, nil
}
