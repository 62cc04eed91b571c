// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"time"

	"github.com/agencyos/portal/internal/types"
)

type StorageInterface interface {
	GetPendingInvitationByEmail(ctx context.Context, email string) (*types.Invitation, error)
	MarkInvitationAccepted(ctx context.Context, id string, acceptedAt time.Time) error
	MarkInvitationExpired(ctx context.Context, id string) error
	CreateProfile(ctx context.Context, p *types.Profile) (*types.Profile, error)
}

type TxRunnerInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identityID, email, fullName string) (*types.Profile, error)
}
