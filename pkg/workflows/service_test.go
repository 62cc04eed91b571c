// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workflows

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/types"
)

var (
	companyA     = "company-a"
	adminCaller  = &types.Principal{UserID: "admin-1", Role: types.RoleAdmin}
	clientCaller = &types.Principal{UserID: "client-1", Role: types.RoleClient, CompanyID: &companyA}
)

func newTestWorkflowService(ctrl *gomock.Controller) (*Service, *MockStorageInterface) {
	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Security().AnyTimes().Return(mockSecurity)
	mockSecurity.EXPECT().AuthzFailure(gomock.Any(), gomock.Any()).AnyTimes()

	return NewService(mockStorage, mockTracer, mockMonitor, mockLogger), mockStorage
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	if got := httptypes.AsAPIError(err).Code; got != code {
		t.Errorf("expected error code %q, got %q (%v)", code, got, err)
	}
}

func validRule() *types.WorkflowRule {
	return &types.WorkflowRule{
		Name:         "Auto-assign logos",
		TriggerType:  TriggerRequestCreated,
		ActionType:   ActionAssign,
		ActionConfig: map[string]any{"user_id": "admin-2"},
		IsActive:     true,
	}
}

func TestService_CreateRule(t *testing.T) {
	t.Run("admin creates a valid rule", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, mockStorage := newTestWorkflowService(ctrl)
		mockStorage.EXPECT().CreateWorkflowRule(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rule *types.WorkflowRule) (*types.WorkflowRule, error) {
			if rule.CreatedBy != "admin-1" {
				t.Errorf("expected created_by admin-1, got %s", rule.CreatedBy)
			}
			rule.ID = "rule-1"
			return rule, nil
		})

		created, err := s.CreateRule(context.Background(), adminCaller, validRule())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID == "" {
			t.Error("expected rule ID to be set")
		}
	})

	t.Run("client is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestWorkflowService(ctrl)
		_, err := s.CreateRule(context.Background(), clientCaller, validRule())
		expectCode(t, err, httptypes.CodeForbidden)
	})

	t.Run("unknown trigger rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestWorkflowService(ctrl)
		rule := validRule()
		rule.TriggerType = "request_archived"
		_, err := s.CreateRule(context.Background(), adminCaller, rule)
		expectCode(t, err, httptypes.CodeValidation)
	})

	t.Run("unknown action rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestWorkflowService(ctrl)
		rule := validRule()
		rule.ActionType = "escalate"
		_, err := s.CreateRule(context.Background(), adminCaller, rule)
		expectCode(t, err, httptypes.CodeValidation)
	})
}

func TestService_UpdateRule(t *testing.T) {
	t.Run("paths pass through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, mockStorage := newTestWorkflowService(ctrl)
		mockStorage.EXPECT().UpdateWorkflowRule(gomock.Any(), gomock.Any(), []string{"is_active"}).
			Return(&types.WorkflowRule{ID: "rule-1", IsActive: false}, nil)

		updated, err := s.UpdateRule(context.Background(), adminCaller, "rule-1", &types.WorkflowRule{IsActive: false}, []string{"is_active"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.IsActive {
			t.Error("expected rule to be deactivated")
		}
	})

	t.Run("missing rule", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, mockStorage := newTestWorkflowService(ctrl)
		mockStorage.EXPECT().UpdateWorkflowRule(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)

		_, err := s.UpdateRule(context.Background(), adminCaller, "rule-404", &types.WorkflowRule{Name: "x"}, []string{"name"})
		expectCode(t, err, httptypes.CodeNotFound)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestWorkflowService(ctrl)
		_, err := s.UpdateRule(context.Background(), clientCaller, "rule-1", &types.WorkflowRule{}, []string{"name"})
		expectCode(t, err, httptypes.CodeForbidden)
	})
}

func TestService_DeleteRule(t *testing.T) {
	t.Run("admin deletes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, mockStorage := newTestWorkflowService(ctrl)
		mockStorage.EXPECT().DeleteWorkflowRule(gomock.Any(), "rule-1").Return(nil)

		if err := s.DeleteRule(context.Background(), adminCaller, "rule-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("client is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestWorkflowService(ctrl)
		err := s.DeleteRule(context.Background(), clientCaller, "rule-1")
		expectCode(t, err, httptypes.CodeForbidden)
	})
}
