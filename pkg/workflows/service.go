// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workflows

import (
	"context"
	"errors"

	"github.com/agencyos/portal/internal/authorization"
	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/tracing"
	"github.com/agencyos/portal/internal/types"
)

var validTriggers = map[string]bool{
	TriggerRequestCreated: true,
	TriggerStatusChange:   true,
}

var validActions = map[string]bool{
	ActionAssign:      true,
	ActionSetPriority: true,
	ActionNotify:      true,
}

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

func (s *Service) CreateRule(ctx context.Context, caller *types.Principal, rule *types.WorkflowRule) (*types.WorkflowRule, error) {
	ctx, span := s.tracer.Start(ctx, "workflows.Service.CreateRule")
	defer span.End()

	if !authorization.CanManageWorkflows(caller.Role) {
		s.logger.Security().AuthzFailure(caller.UserID, "workflow management")
		return nil, httptypes.NewForbiddenError("only admins may manage workflows")
	}
	if err := validateRule(rule); err != nil {
		return nil, err
	}

	rule.CreatedBy = caller.UserID
	created, err := s.storage.CreateWorkflowRule(ctx, rule)
	if err != nil {
		s.logger.Errorf("creating workflow rule: %v", err)
		return nil, httptypes.NewInternalError()
	}
	return created, nil
}

func (s *Service) ListRules(ctx context.Context, caller *types.Principal) ([]*types.WorkflowRule, error) {
	ctx, span := s.tracer.Start(ctx, "workflows.Service.ListRules")
	defer span.End()

	if !authorization.CanManageWorkflows(caller.Role) {
		s.logger.Security().AuthzFailure(caller.UserID, "workflow management")
		return nil, httptypes.NewForbiddenError("only admins may manage workflows")
	}

	rules, err := s.storage.ListWorkflowRules(ctx, false)
	if err != nil {
		s.logger.Errorf("listing workflow rules: %v", err)
		return nil, httptypes.NewInternalError()
	}
	return rules, nil
}

func (s *Service) UpdateRule(ctx context.Context, caller *types.Principal, id string, rule *types.WorkflowRule, paths []string) (*types.WorkflowRule, error) {
	ctx, span := s.tracer.Start(ctx, "workflows.Service.UpdateRule")
	defer span.End()

	if !authorization.CanManageWorkflows(caller.Role) {
		s.logger.Security().AuthzFailure(caller.UserID, "workflow management")
		return nil, httptypes.NewForbiddenError("only admins may manage workflows")
	}
	if len(paths) == 0 {
		return nil, httptypes.NewValidationError("no updatable fields in request body", nil)
	}
	for _, path := range paths {
		switch path {
		case "trigger_type":
			if !validTriggers[rule.TriggerType] {
				return nil, httptypes.NewValidationError("unknown trigger_type", map[string]any{"trigger_type": rule.TriggerType})
			}
		case "action_type":
			if !validActions[rule.ActionType] {
				return nil, httptypes.NewValidationError("unknown action_type", map[string]any{"action_type": rule.ActionType})
			}
		}
	}

	rule.ID = id
	updated, err := s.storage.UpdateWorkflowRule(ctx, rule, paths)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httptypes.NewNotFoundError("workflow rule not found")
		}
		s.logger.Errorf("updating workflow rule %s: %v", id, err)
		return nil, httptypes.NewInternalError()
	}
	return updated, nil
}

func (s *Service) DeleteRule(ctx context.Context, caller *types.Principal, id string) error {
	ctx, span := s.tracer.Start(ctx, "workflows.Service.DeleteRule")
	defer span.End()

	if !authorization.CanManageWorkflows(caller.Role) {
		s.logger.Security().AuthzFailure(caller.UserID, "workflow management")
		return httptypes.NewForbiddenError("only admins may manage workflows")
	}

	if err := s.storage.DeleteWorkflowRule(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return httptypes.NewNotFoundError("workflow rule not found")
		}
		s.logger.Errorf("deleting workflow rule %s: %v", id, err)
		return httptypes.NewInternalError()
	}
	return nil
}

func validateRule(rule *types.WorkflowRule) error {
	if rule.Name == "" {
		return httptypes.NewValidationError("rule name is required", nil)
	}
	if !validTriggers[rule.TriggerType] {
		return httptypes.NewValidationError("unknown trigger_type", map[string]any{"trigger_type": rule.TriggerType})
	}
	if !validActions[rule.ActionType] {
		return httptypes.NewValidationError("unknown action_type", map[string]any{"action_type": rule.ActionType})
	}
	return nil
}
