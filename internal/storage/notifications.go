// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/agencyos/portal/internal/types"
)

func (s *Storage) CreateNotification(ctx context.Context, n *types.Notification) (*types.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateNotification")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate notification ID: %w", err)
	}

	var created types.Notification
	err = s.db.Statement(ctx).
		Insert("notifications").
		Columns("id", "profile_id", "kind", "title", "body", "request_id").
		Values(id.String(), n.ProfileID, n.Kind, n.Title, n.Body, n.RequestID).
		Suffix(`RETURNING id, profile_id, kind, title, body, request_id, read, created_at`).
		QueryRowContext(ctx).
		Scan(&created.ID, &created.ProfileID, &created.Kind, &created.Title, &created.Body,
			&created.RequestID, &created.Read, &created.CreatedAt)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert notification: %w", err)
	}

	return &created, nil
}

func (s *Storage) ListNotificationsByProfile(ctx context.Context, profileID string) ([]*types.Notification, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListNotificationsByProfile")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "profile_id", "kind", "title", "body", "request_id", "read", "created_at").
		From("notifications").
		Where(sq.Eq{"profile_id": profileID}).
		OrderBy("created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*types.Notification
	for rows.Next() {
		var n types.Notification
		if err := rows.Scan(&n.ID, &n.ProfileID, &n.Kind, &n.Title, &n.Body,
			&n.RequestID, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return notifications, nil
}

// MarkNotificationsRead marks the given notifications read, scoped to the
// owning profile so one caller can never touch another's rows. An empty ids
// slice marks everything the profile owns.
func (s *Storage) MarkNotificationsRead(ctx context.Context, profileID string, ids []string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.MarkNotificationsRead")
	defer span.End()

	query := s.db.Statement(ctx).
		Update("notifications").
		Set("read", true).
		Where(sq.Eq{"profile_id": profileID, "read": false})

	if len(ids) > 0 {
		query = query.Where(sq.Eq{"id": ids})
	}

	res, err := query.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rows, nil
}
