// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

import (
	"context"
	"time"

	"github.com/agencyos/portal/internal/types"
)

type StorageInterface interface {
	CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error)
	ListInvitations(ctx context.Context) ([]*types.Invitation, error)
	MarkInvitationAccepted(ctx context.Context, id string, acceptedAt time.Time) error
	MarkInvitationExpired(ctx context.Context, id string) error

	CreateProfile(ctx context.Context, p *types.Profile) (*types.Profile, error)
	GetCompanyByID(ctx context.Context, id string) (*types.Company, error)
}

// TxRunnerInterface runs fn inside a database transaction. Storage calls made
// with the derived context join that transaction.
type TxRunnerInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

type KratosClientInterface interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	CreateIdentityWithPassword(ctx context.Context, email, fullName, password string) (string, error)
	DeleteIdentity(ctx context.Context, identityID string) error
}

// Validity is the non-mutating accept check result.
type Validity struct {
	Valid  bool                   `json:"valid"`
	Email  string                 `json:"email,omitempty"`
	Role   types.Role             `json:"role,omitempty"`
	Status types.InvitationStatus `json:"status"`
}

type ServiceInterface interface {
	Invite(ctx context.Context, caller *types.Principal, email string, role types.Role, companyID *string) (*types.Invitation, error)
	ListInvitations(ctx context.Context, caller *types.Principal) ([]*types.Invitation, error)
	Validate(ctx context.Context, token string) (*Validity, error)
	Accept(ctx context.Context, token, password string) (*types.Profile, error)
}
