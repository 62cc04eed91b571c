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

func (s *Storage) CreateComment(ctx context.Context, c *types.RequestComment) (*types.RequestComment, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateComment")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate comment ID: %w", err)
	}

	var created types.RequestComment
	err = s.db.Statement(ctx).
		Insert("request_comments").
		Columns("id", "request_id", "author_id", "body").
		Values(id.String(), c.RequestID, c.AuthorID, c.Body).
		Suffix("RETURNING id, request_id, author_id, body, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.RequestID, &created.AuthorID, &created.Body, &created.CreatedAt)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	return &created, nil
}

func (s *Storage) ListCommentsByRequest(ctx context.Context, requestID string) ([]*types.RequestComment, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCommentsByRequest")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "request_id", "author_id", "body", "created_at").
		From("request_comments").
		Where(sq.Eq{"request_id": requestID}).
		OrderBy("created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*types.RequestComment
	for rows.Next() {
		var c types.RequestComment
		if err := rows.Scan(&c.ID, &c.RequestID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return comments, nil
}
