// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workflows

import (
	"context"

	"github.com/agencyos/portal/internal/types"
)

type StorageInterface interface {
	CreateWorkflowRule(ctx context.Context, rule *types.WorkflowRule) (*types.WorkflowRule, error)
	GetWorkflowRuleByID(ctx context.Context, id string) (*types.WorkflowRule, error)
	ListWorkflowRules(ctx context.Context, activeOnly bool) ([]*types.WorkflowRule, error)
	UpdateWorkflowRule(ctx context.Context, rule *types.WorkflowRule, paths []string) (*types.WorkflowRule, error)
	DeleteWorkflowRule(ctx context.Context, id string) error
}

// EngineStorageInterface is what rule actions mutate through. The engine
// never calls back into the request service, so a rule firing on a status
// change cannot recurse.
type EngineStorageInterface interface {
	ListWorkflowRules(ctx context.Context, activeOnly bool) ([]*types.WorkflowRule, error)
	UpdateRequestAssignee(ctx context.Context, id string, assigneeID *string) (*types.Request, error)
	UpdateRequestFields(ctx context.Context, id string, fields map[string]any) (*types.Request, error)
	GetProfileByID(ctx context.Context, id string) (*types.Profile, error)
	ListAdminProfiles(ctx context.Context) ([]*types.Profile, error)
	CreateNotification(ctx context.Context, n *types.Notification) (*types.Notification, error)
}

type ServiceInterface interface {
	CreateRule(ctx context.Context, caller *types.Principal, rule *types.WorkflowRule) (*types.WorkflowRule, error)
	ListRules(ctx context.Context, caller *types.Principal) ([]*types.WorkflowRule, error)
	UpdateRule(ctx context.Context, caller *types.Principal, id string, rule *types.WorkflowRule, paths []string) (*types.WorkflowRule, error)
	DeleteRule(ctx context.Context, caller *types.Principal, id string) error
}
