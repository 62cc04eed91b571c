// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workflows

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/agencyos/portal/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package workflows -destination ./mock_workflows.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package workflows -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package workflows -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package workflows -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

func newTestEngine(ctrl *gomock.Controller) (*Engine, *MockEngineStorageInterface) {
	mockStorage := NewMockEngineStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	return NewEngine(mockStorage, mockTracer, mockMonitor, mockLogger), mockStorage
}

func request() *types.Request {
	return &types.Request{
		ID:        "req-1",
		CompanyID: "company-a",
		Title:     "Logo refresh",
		Status:    types.StatusQueue,
		Priority:  types.PriorityHigh,
		CreatedBy: "client-1",
	}
}

func TestEngine_Dispatch(t *testing.T) {
	adminID := "admin-1"

	testCases := []struct {
		name       string
		event      types.WorkflowEvent
		rules      []*types.WorkflowRule
		setupMocks func(*MockEngineStorageInterface)
	}{
		{
			name:  "assign rule fires on request_created",
			event: types.WorkflowEvent{Kind: types.EventRequestCreated, Request: request()},
			rules: []*types.WorkflowRule{{
				ID:           "rule-1",
				TriggerType:  TriggerRequestCreated,
				ActionType:   ActionAssign,
				ActionConfig: map[string]any{"user_id": adminID},
			}},
			setupMocks: func(m *MockEngineStorageInterface) {
				m.EXPECT().GetProfileByID(gomock.Any(), adminID).Return(&types.Profile{ID: adminID, Role: types.RoleAdmin}, nil)
				m.EXPECT().UpdateRequestAssignee(gomock.Any(), "req-1", &adminID).Return(request(), nil)
			},
		},
		{
			name: "status condition gates the rule",
			event: types.WorkflowEvent{
				Kind:       types.EventStatusChange,
				Request:    request(),
				FromStatus: types.StatusQueue,
				ToStatus:   types.StatusActive,
			},
			rules: []*types.WorkflowRule{{
				ID:                "rule-1",
				TriggerType:       TriggerStatusChange,
				TriggerConditions: map[string]any{"to_status": "done"},
				ActionType:        ActionNotify,
			}},
			setupMocks: func(*MockEngineStorageInterface) {},
		},
		{
			name: "notify creator on matching status change",
			event: types.WorkflowEvent{
				Kind:       types.EventStatusChange,
				Request:    request(),
				FromStatus: types.StatusReview,
				ToStatus:   types.StatusDone,
			},
			rules: []*types.WorkflowRule{{
				ID:                "rule-1",
				Name:              "Done ping",
				TriggerType:       TriggerStatusChange,
				TriggerConditions: map[string]any{"to_status": "done"},
				ActionType:        ActionNotify,
				ActionConfig:      map[string]any{"title": "Request completed"},
			}},
			setupMocks: func(m *MockEngineStorageInterface) {
				m.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *types.Notification) (*types.Notification, error) {
					if n.ProfileID != "client-1" {
						t.Errorf("notification went to %s, expected client-1", n.ProfileID)
					}
					if n.Title != "Request completed" {
						t.Errorf("unexpected title %q", n.Title)
					}
					return n, nil
				})
			},
		},
		{
			name:  "notify admins fans out",
			event: types.WorkflowEvent{Kind: types.EventRequestCreated, Request: request()},
			rules: []*types.WorkflowRule{{
				ID:           "rule-1",
				TriggerType:  TriggerRequestCreated,
				ActionType:   ActionNotify,
				ActionConfig: map[string]any{"target": "admins"},
			}},
			setupMocks: func(m *MockEngineStorageInterface) {
				m.EXPECT().ListAdminProfiles(gomock.Any()).Return([]*types.Profile{{ID: "admin-1"}, {ID: "admin-2"}}, nil)
				m.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).Times(2).Return(&types.Notification{}, nil)
			},
		},
		{
			name:  "priority condition mismatch skips rule",
			event: types.WorkflowEvent{Kind: types.EventRequestCreated, Request: request()},
			rules: []*types.WorkflowRule{{
				ID:                "rule-1",
				TriggerType:       TriggerRequestCreated,
				TriggerConditions: map[string]any{"priority": "low"},
				ActionType:        ActionSetPriority,
				ActionConfig:      map[string]any{"priority": "high"},
			}},
			setupMocks: func(*MockEngineStorageInterface) {},
		},
		{
			name:  "set_priority rule mutates through storage",
			event: types.WorkflowEvent{Kind: types.EventRequestCreated, Request: request()},
			rules: []*types.WorkflowRule{{
				ID:                "rule-1",
				TriggerType:       TriggerRequestCreated,
				TriggerConditions: map[string]any{"priority": "high"},
				ActionType:        ActionSetPriority,
				ActionConfig:      map[string]any{"priority": "medium"},
			}},
			setupMocks: func(m *MockEngineStorageInterface) {
				m.EXPECT().UpdateRequestFields(gomock.Any(), "req-1", map[string]any{"priority": "medium"}).Return(request(), nil)
			},
		},
		{
			name:  "trigger mismatch skips rule",
			event: types.WorkflowEvent{Kind: types.EventRequestCreated, Request: request()},
			rules: []*types.WorkflowRule{{
				ID:          "rule-1",
				TriggerType: TriggerStatusChange,
				ActionType:  ActionNotify,
			}},
			setupMocks: func(*MockEngineStorageInterface) {},
		},
		{
			name:  "action failure is swallowed",
			event: types.WorkflowEvent{Kind: types.EventRequestCreated, Request: request()},
			rules: []*types.WorkflowRule{{
				ID:           "rule-1",
				TriggerType:  TriggerRequestCreated,
				ActionType:   ActionAssign,
				ActionConfig: map[string]any{"user_id": adminID},
			}},
			setupMocks: func(m *MockEngineStorageInterface) {
				m.EXPECT().GetProfileByID(gomock.Any(), adminID).Return(nil, errors.New("db down"))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			engine, mockStorage := newTestEngine(ctrl)
			mockStorage.EXPECT().ListWorkflowRules(gomock.Any(), true).Return(tc.rules, nil)
			tc.setupMocks(mockStorage)

			engine.Dispatch(context.Background(), tc.event)
		})
	}
}

func TestEngine_AssignActionRejectsNonAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, mockStorage := newTestEngine(ctrl)
	clientID := "client-9"
	mockStorage.EXPECT().ListWorkflowRules(gomock.Any(), true).Return([]*types.WorkflowRule{{
		ID:           "rule-1",
		TriggerType:  TriggerRequestCreated,
		ActionType:   ActionAssign,
		ActionConfig: map[string]any{"user_id": clientID},
	}}, nil)
	mockStorage.EXPECT().GetProfileByID(gomock.Any(), clientID).Return(&types.Profile{ID: clientID, Role: types.RoleClient}, nil)
	// No UpdateRequestAssignee expectation: the action must not run.

	engine.Dispatch(context.Background(), types.WorkflowEvent{Kind: types.EventRequestCreated, Request: request()})
}
