// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workflows

import (
	"context"
	"errors"

	"github.com/agencyos/portal/internal/db"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/tracing"
	"github.com/agencyos/portal/internal/types"
)

// Trigger and action vocabulary for workflow rules.
const (
	TriggerRequestCreated = types.EventRequestCreated
	TriggerStatusChange   = types.EventStatusChange

	ActionAssign      = "assign"
	ActionSetPriority = "set_priority"
	ActionNotify      = "notify"
)

// Engine evaluates active workflow rules against lifecycle events and runs
// the matching actions. Action failures are logged and never surfaced to the
// request that produced the event.
type Engine struct {
	storage EngineStorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewEngine(
	storage EngineStorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Engine {
	return &Engine{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (e *Engine) Dispatch(ctx context.Context, event types.WorkflowEvent) {
	ctx, span := e.tracer.Start(ctx, "workflows.Engine.Dispatch")
	defer span.End()

	// Actions run outside the request transaction: a failed action write
	// inside it would abort the transaction that carried the event's
	// primary mutation.
	ctx = db.ContextWithoutTx(ctx)

	rules, err := e.storage.ListWorkflowRules(ctx, true)
	if err != nil {
		e.logger.Errorf("listing workflow rules for %s event: %v", event.Kind, err)
		return
	}

	for _, rule := range rules {
		if rule.TriggerType != event.Kind {
			continue
		}
		if !e.conditionsMatch(rule.TriggerConditions, event) {
			continue
		}
		e.execute(ctx, rule, event)
	}
}

// conditionsMatch checks the supported equality conditions. Unknown condition
// keys fail the match so a typo never makes a rule fire on everything.
func (e *Engine) conditionsMatch(conditions map[string]any, event types.WorkflowEvent) bool {
	for key, want := range conditions {
		var got string
		switch key {
		case "status":
			got = string(event.Request.Status)
		case "to_status":
			got = string(event.ToStatus)
		case "priority":
			got = string(event.Request.Priority)
		default:
			return false
		}
		if want != got {
			return false
		}
	}
	return true
}

func (e *Engine) execute(ctx context.Context, rule *types.WorkflowRule, event types.WorkflowEvent) {
	var err error
	switch rule.ActionType {
	case ActionAssign:
		err = e.runAssign(ctx, rule, event)
	case ActionSetPriority:
		err = e.runSetPriority(ctx, rule, event)
	case ActionNotify:
		err = e.runNotify(ctx, rule, event)
	default:
		e.logger.Warnf("workflow rule %s has unknown action %q", rule.ID, rule.ActionType)
		return
	}
	if err != nil {
		e.logger.Errorf("workflow rule %s (%s) on request %s: %v", rule.ID, rule.ActionType, event.Request.ID, err)
		return
	}
	e.logger.Infof("workflow rule %s (%s) applied to request %s", rule.ID, rule.ActionType, event.Request.ID)
}

func (e *Engine) runAssign(ctx context.Context, rule *types.WorkflowRule, event types.WorkflowEvent) error {
	userID, _ := rule.ActionConfig["user_id"].(string)
	if userID == "" {
		return errors.New("assign action requires user_id in action_config")
	}

	profile, err := e.storage.GetProfileByID(ctx, userID)
	if err != nil {
		return err
	}
	if profile.Role != types.RoleAdmin {
		return errors.New("assign action target is not an admin")
	}

	_, err = e.storage.UpdateRequestAssignee(ctx, event.Request.ID, &userID)
	return err
}

func (e *Engine) runSetPriority(ctx context.Context, rule *types.WorkflowRule, event types.WorkflowEvent) error {
	priority, _ := rule.ActionConfig["priority"].(string)
	if !types.RequestPriority(priority).Valid() {
		return errors.New("set_priority action requires a valid priority in action_config")
	}

	_, err := e.storage.UpdateRequestFields(ctx, event.Request.ID, map[string]any{"priority": priority})
	if errors.Is(err, storage.ErrNotFound) {
		// Request deleted between event and action, nothing to do.
		return nil
	}
	return err
}

// runNotify delivers a notification to the configured target: "creator"
// (default) or "admins".
func (e *Engine) runNotify(ctx context.Context, rule *types.WorkflowRule, event types.WorkflowEvent) error {
	title, _ := rule.ActionConfig["title"].(string)
	body, _ := rule.ActionConfig["body"].(string)
	if title == "" {
		title = rule.Name
	}
	if body == "" {
		body = event.Request.Title
	}

	target, _ := rule.ActionConfig["target"].(string)
	var recipients []string
	switch target {
	case "admins":
		admins, err := e.storage.ListAdminProfiles(ctx)
		if err != nil {
			return err
		}
		for _, admin := range admins {
			recipients = append(recipients, admin.ID)
		}
	case "creator", "":
		recipients = []string{event.Request.CreatedBy}
	default:
		return errors.New("notify action has unknown target " + target)
	}

	for _, profileID := range recipients {
		_, err := e.storage.CreateNotification(ctx, &types.Notification{
			ProfileID: profileID,
			Kind:      "workflow",
			Title:     title,
			Body:      body,
			RequestID: &event.Request.ID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
