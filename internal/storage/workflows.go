// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agencyos/portal/internal/types"
)

const workflowColumns = "id, name, trigger_type, trigger_conditions, action_type, action_config, is_active, created_by, created_at, updated_at"

func scanWorkflowRule(row sq.RowScanner) (*types.WorkflowRule, error) {
	var rule types.WorkflowRule
	var conditions, config []byte

	err := row.Scan(&rule.ID, &rule.Name, &rule.TriggerType, &conditions,
		&rule.ActionType, &config, &rule.IsActive, &rule.CreatedBy, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan workflow rule: %w", err)
	}

	if len(conditions) > 0 {
		if err := json.Unmarshal(conditions, &rule.TriggerConditions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal trigger conditions: %w", err)
		}
	}
	if len(config) > 0 {
		if err := json.Unmarshal(config, &rule.ActionConfig); err != nil {
			return nil, fmt.Errorf("failed to unmarshal action config: %w", err)
		}
	}

	return &rule, nil
}

func (s *Storage) CreateWorkflowRule(ctx context.Context, rule *types.WorkflowRule) (*types.WorkflowRule, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateWorkflowRule")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate workflow rule ID: %w", err)
	}

	conditions, err := json.Marshal(rule.TriggerConditions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trigger conditions: %w", err)
	}
	config, err := json.Marshal(rule.ActionConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal action config: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("workflow_rules").
		Columns("id", "name", "trigger_type", "trigger_conditions", "action_type", "action_config", "is_active", "created_by").
		Values(id.String(), rule.Name, rule.TriggerType, conditions, rule.ActionType, config, rule.IsActive, rule.CreatedBy).
		Suffix("RETURNING " + workflowColumns).
		QueryRowContext(ctx)

	created, err := scanWorkflowRule(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert workflow rule: %w", err)
	}

	return created, nil
}

func (s *Storage) GetWorkflowRuleByID(ctx context.Context, id string) (*types.WorkflowRule, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetWorkflowRuleByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(workflowColumns).
		From("workflow_rules").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	return scanWorkflowRule(row)
}

func (s *Storage) ListWorkflowRules(ctx context.Context, activeOnly bool) ([]*types.WorkflowRule, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListWorkflowRules")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(workflowColumns).
		From("workflow_rules").
		OrderBy("created_at")

	if activeOnly {
		query = query.Where(sq.Eq{"is_active": true})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow rules: %w", err)
	}
	defer rows.Close()

	var rules []*types.WorkflowRule
	for rows.Next() {
		var rule types.WorkflowRule
		var conditions, config []byte
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.TriggerType, &conditions,
			&rule.ActionType, &config, &rule.IsActive, &rule.CreatedBy, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workflow rule: %w", err)
		}
		if len(conditions) > 0 {
			if err := json.Unmarshal(conditions, &rule.TriggerConditions); err != nil {
				return nil, fmt.Errorf("failed to unmarshal trigger conditions: %w", err)
			}
		}
		if len(config) > 0 {
			if err := json.Unmarshal(config, &rule.ActionConfig); err != nil {
				return nil, fmt.Errorf("failed to unmarshal action config: %w", err)
			}
		}
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return rules, nil
}

// UpdateWorkflowRule follows PATCH semantics, touching only the columns named
// in paths.
func (s *Storage) UpdateWorkflowRule(ctx context.Context, rule *types.WorkflowRule, paths []string) (*types.WorkflowRule, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateWorkflowRule")
	defer span.End()

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "name":
			updateMap["name"] = rule.Name
		case "trigger_type":
			updateMap["trigger_type"] = rule.TriggerType
		case "trigger_conditions":
			conditions, err := json.Marshal(rule.TriggerConditions)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal trigger conditions: %w", err)
			}
			updateMap["trigger_conditions"] = conditions
		case "action_type":
			updateMap["action_type"] = rule.ActionType
		case "action_config":
			config, err := json.Marshal(rule.ActionConfig)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal action config: %w", err)
			}
			updateMap["action_config"] = config
		case "is_active":
			updateMap["is_active"] = rule.IsActive
		}
	}

	if len(updateMap) == 0 {
		return s.GetWorkflowRuleByID(ctx, rule.ID)
	}

	row := s.db.Statement(ctx).
		Update("workflow_rules").
		SetMap(updateMap).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": rule.ID}).
		Suffix("RETURNING " + workflowColumns).
		QueryRowContext(ctx)

	return scanWorkflowRule(row)
}

func (s *Storage) DeleteWorkflowRule(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteWorkflowRule")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("workflow_rules").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete workflow rule: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
