// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notifications

import (
	"context"

	"github.com/agencyos/portal/internal/types"
)

type StorageInterface interface {
	ListNotificationsByProfile(ctx context.Context, profileID string) ([]*types.Notification, error)
	MarkNotificationsRead(ctx context.Context, profileID string, ids []string) (int64, error)
}

type ServiceInterface interface {
	ListNotifications(ctx context.Context, caller *types.Principal) ([]*types.Notification, error)
	MarkRead(ctx context.Context, caller *types.Principal, ids []string) (int64, error)
}
