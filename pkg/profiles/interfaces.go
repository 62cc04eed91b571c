// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package profiles

import (
	"context"

	"github.com/agencyos/portal/internal/types"
)

type StorageInterface interface {
	GetProfileByID(ctx context.Context, id string) (*types.Profile, error)
	UpdateProfileName(ctx context.Context, id, fullName string) (*types.Profile, error)
	ListAdminProfiles(ctx context.Context) ([]*types.Profile, error)
	ListProfilesByCompany(ctx context.Context, companyID string) ([]*types.Profile, error)
}

type KratosClientInterface interface {
	VerifyPassword(ctx context.Context, email, password string) error
	UpdateIdentityPassword(ctx context.Context, identityID, password string) error
}

type ServiceInterface interface {
	GetProfile(ctx context.Context, caller *types.Principal) (*types.Profile, error)
	UpdateName(ctx context.Context, caller *types.Principal, fullName string) (*types.Profile, error)
	ChangePassword(ctx context.Context, caller *types.Principal, currentPassword, newPassword string) error
	ListTeamMembers(ctx context.Context, caller *types.Principal) ([]*types.Profile, error)
}
