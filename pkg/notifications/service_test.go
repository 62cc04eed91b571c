// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notifications

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package notifications -destination ./mock_notifications.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package notifications -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package notifications -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package notifications -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

var clientCaller = &types.Principal{UserID: "client-1", Role: types.RoleClient}

func newTestNotificationService(ctrl *gomock.Controller) (*Service, *MockStorageInterface) {
	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	return NewService(mockStorage, mockTracer, mockMonitor, mockLogger), mockStorage
}

func TestService_ListNotifications(t *testing.T) {
	t.Run("returns the caller's notifications", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestNotificationService(ctrl)
		m.EXPECT().ListNotificationsByProfile(gomock.Any(), "client-1").
			Return([]*types.Notification{{ID: "n-1", ProfileID: "client-1"}}, nil)

		notifications, err := s.ListNotifications(context.Background(), clientCaller)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(notifications) != 1 || notifications[0].ID != "n-1" {
			t.Errorf("unexpected notifications %v", notifications)
		}
	})

	t.Run("storage failure maps to internal error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestNotificationService(ctrl)
		m.EXPECT().ListNotificationsByProfile(gomock.Any(), "client-1").Return(nil, errors.New("boom"))

		_, err := s.ListNotifications(context.Background(), clientCaller)
		if got := httptypes.AsAPIError(err).Code; got != httptypes.CodeInternal {
			t.Errorf("expected internal_error, got %q", got)
		}
	})
}

func TestService_MarkRead(t *testing.T) {
	t.Run("marks the given ids", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestNotificationService(ctrl)
		ids := []string{"n-1", "n-2"}
		m.EXPECT().MarkNotificationsRead(gomock.Any(), "client-1", ids).Return(int64(2), nil)

		updated, err := s.MarkRead(context.Background(), clientCaller, ids)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated != 2 {
			t.Errorf("expected 2 updated, got %d", updated)
		}
	})

	t.Run("empty id list marks everything", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestNotificationService(ctrl)
		m.EXPECT().MarkNotificationsRead(gomock.Any(), "client-1", nil).Return(int64(7), nil)

		updated, err := s.MarkRead(context.Background(), clientCaller, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated != 7 {
			t.Errorf("expected 7 updated, got %d", updated)
		}
	})
}
