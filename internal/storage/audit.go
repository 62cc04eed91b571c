// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/agencyos/portal/internal/types"
)

// CreateAuditLog appends one audit row. The before/after value maps are stored
// whole as jsonb, never partial diffs, so history can be reconstructed later.
func (s *Storage) CreateAuditLog(ctx context.Context, entry *types.AuditLog) error {
	ctx, span := s.tracer.Start(ctx, "storage.CreateAuditLog")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate audit log ID: %w", err)
	}

	oldValues, err := json.Marshal(entry.OldValues)
	if err != nil {
		return fmt.Errorf("failed to marshal old values: %w", err)
	}
	newValues, err := json.Marshal(entry.NewValues)
	if err != nil {
		return fmt.Errorf("failed to marshal new values: %w", err)
	}

	_, err = s.db.Statement(ctx).
		Insert("audit_logs").
		Columns("id", "company_id", "user_id", "action", "entity_type", "entity_id", "old_values", "new_values").
		Values(id.String(), entry.CompanyID, entry.UserID, entry.Action, entry.EntityType, entry.EntityID, oldValues, newValues).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

func (s *Storage) ListAuditLogsByEntity(ctx context.Context, entityType, entityID string) ([]*types.AuditLog, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAuditLogsByEntity")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "company_id", "user_id", "action", "entity_type", "entity_id", "old_values", "new_values", "created_at").
		From("audit_logs").
		Where(sq.Eq{"entity_type": entityType, "entity_id": entityID}).
		OrderBy("created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var entries []*types.AuditLog
	for rows.Next() {
		var entry types.AuditLog
		var oldValues, newValues []byte
		if err := rows.Scan(&entry.ID, &entry.CompanyID, &entry.UserID, &entry.Action,
			&entry.EntityType, &entry.EntityID, &oldValues, &newValues, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		if len(oldValues) > 0 {
			if err := json.Unmarshal(oldValues, &entry.OldValues); err != nil {
				return nil, fmt.Errorf("failed to unmarshal old values: %w", err)
			}
		}
		if len(newValues) > 0 {
			if err := json.Unmarshal(newValues, &entry.NewValues); err != nil {
				return nil, fmt.Errorf("failed to unmarshal new values: %w", err)
			}
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}
