// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"

	"github.com/agencyos/portal/internal/types"
)

type ProfileStoreInterface interface {
	// GetProfileByID loads the profile for an authenticated user ID
	GetProfileByID(ctx context.Context, id string) (*types.Profile, error)
}
