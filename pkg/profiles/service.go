// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package profiles

import (
	"context"
	"errors"
	"unicode"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/kratos"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/tracing"
	"github.com/agencyos/portal/internal/types"
)

type Service struct {
	storage StorageInterface
	kratos  KratosClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	kratos KratosClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		kratos:  kratos,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (s *Service) GetProfile(ctx context.Context, caller *types.Principal) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "profiles.Service.GetProfile")
	defer span.End()

	profile, err := s.storage.GetProfileByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httptypes.NewNotFoundError("profile not found")
		}
		s.logger.Errorf("loading profile %s: %v", caller.UserID, err)
		return nil, httptypes.NewInternalError()
	}
	return profile, nil
}

func (s *Service) UpdateName(ctx context.Context, caller *types.Principal, fullName string) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "profiles.Service.UpdateName")
	defer span.End()

	if fullName == "" {
		return nil, httptypes.NewValidationError("full_name is required", nil)
	}

	profile, err := s.storage.UpdateProfileName(ctx, caller.UserID, fullName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httptypes.NewNotFoundError("profile not found")
		}
		s.logger.Errorf("updating profile %s: %v", caller.UserID, err)
		return nil, httptypes.NewInternalError()
	}
	return profile, nil
}

// ChangePassword re-authenticates the caller with their current password,
// enforces the complexity policy, and delegates the credential update to the
// identity provider.
func (s *Service) ChangePassword(ctx context.Context, caller *types.Principal, currentPassword, newPassword string) error {
	ctx, span := s.tracer.Start(ctx, "profiles.Service.ChangePassword")
	defer span.End()

	if err := checkPasswordComplexity(newPassword); err != nil {
		return err
	}

	profile, err := s.storage.GetProfileByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return httptypes.NewNotFoundError("profile not found")
		}
		s.logger.Errorf("loading profile %s: %v", caller.UserID, err)
		return httptypes.NewInternalError()
	}

	if err := s.kratos.VerifyPassword(ctx, profile.Email, currentPassword); err != nil {
		if errors.Is(err, kratos.ErrInvalidCredentials) {
			s.logger.Security().AuthnFailure(caller.UserID)
			return httptypes.NewForbiddenError("current password is incorrect")
		}
		s.logger.Errorf("verifying password for %s: %v", caller.UserID, err)
		return httptypes.NewInternalError()
	}

	if err := s.kratos.UpdateIdentityPassword(ctx, caller.UserID, newPassword); err != nil {
		s.logger.Errorf("updating password for %s: %v", caller.UserID, err)
		return httptypes.NewInternalError()
	}

	s.logger.Infof("password changed for profile %s", caller.UserID)
	return nil
}

func (s *Service) ListTeamMembers(ctx context.Context, caller *types.Principal) ([]*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "profiles.Service.ListTeamMembers")
	defer span.End()

	var (
		members []*types.Profile
		err     error
	)
	if caller.IsAdmin() {
		members, err = s.storage.ListAdminProfiles(ctx)
	} else {
		if caller.CompanyID == nil {
			return nil, httptypes.NewForbiddenError("caller has no company")
		}
		members, err = s.storage.ListProfilesByCompany(ctx, *caller.CompanyID)
	}
	if err != nil {
		s.logger.Errorf("listing team members for %s: %v", caller.UserID, err)
		return nil, httptypes.NewInternalError()
	}
	return members, nil
}

// checkPasswordComplexity requires 8 to 72 characters with at least one
// upper, one lower, and one digit. The 72 byte ceiling matches the identity
// provider's bcrypt backend.
func checkPasswordComplexity(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return httptypes.NewValidationError("password must be between 8 and 72 characters", nil)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return httptypes.NewValidationError("password must contain an uppercase letter, a lowercase letter, and a digit", nil)
	}
	return nil
}
