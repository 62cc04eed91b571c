// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notifications

import (
	"context"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/tracing"
	"github.com/agencyos/portal/internal/types"
)

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (s *Service) ListNotifications(ctx context.Context, caller *types.Principal) ([]*types.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "notifications.Service.ListNotifications")
	defer span.End()

	notifications, err := s.storage.ListNotificationsByProfile(ctx, caller.UserID)
	if err != nil {
		s.logger.Errorf("listing notifications for %s: %v", caller.UserID, err)
		return nil, httptypes.NewInternalError()
	}
	return notifications, nil
}

// MarkRead marks the given notifications as read. An empty id list marks all
// of the caller's notifications. Ids belonging to other profiles are ignored
// by the scoped update rather than rejected.
func (s *Service) MarkRead(ctx context.Context, caller *types.Principal, ids []string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "notifications.Service.MarkRead")
	defer span.End()

	updated, err := s.storage.MarkNotificationsRead(ctx, caller.UserID, ids)
	if err != nil {
		s.logger.Errorf("marking notifications read for %s: %v", caller.UserID, err)
		return 0, httptypes.NewInternalError()
	}
	return updated, nil
}
