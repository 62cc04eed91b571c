// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agencyos/portal/internal/types"
)

var requestColumns = []string{
	"id", "company_id", "title", "description", "status", "priority",
	"assigned_to", "assets_link", "video_brief", "due_date",
	"created_by", "created_at", "updated_at",
}

func requestReturning() string {
	return "RETURNING " + strings.Join(requestColumns, ", ")
}

func scanRequest(row sq.RowScanner) (*types.Request, error) {
	var r types.Request
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.Title, &r.Description, &r.Status, &r.Priority,
		&r.AssignedTo, &r.AssetsLink, &r.VideoBrief, &r.DueDate,
		&r.CreatedBy, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan request: %w", err)
	}
	return &r, nil
}

func (s *Storage) CreateRequest(ctx context.Context, r *types.Request) (*types.Request, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateRequest")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate request ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("requests").
		Columns("id", "company_id", "title", "description", "status", "priority",
			"assigned_to", "assets_link", "video_brief", "due_date", "created_by").
		Values(id.String(), r.CompanyID, r.Title, r.Description, r.Status, r.Priority,
			r.AssignedTo, r.AssetsLink, r.VideoBrief, r.DueDate, r.CreatedBy).
		Suffix(requestReturning()).
		QueryRowContext(ctx)

	created, err := scanRequest(row)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert request: %w", err)
	}

	return created, nil
}

func (s *Storage) GetRequestByID(ctx context.Context, id string) (*types.Request, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetRequestByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(requestColumns...).
		From("requests").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	return scanRequest(row)
}

func (s *Storage) ListRequests(ctx context.Context, filter RequestFilter) ([]*types.Request, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListRequests")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(requestColumns...).
		From("requests").
		OrderBy("created_at DESC")

	if filter.CompanyID != "" {
		query = query.Where(sq.Eq{"company_id": filter.CompanyID})
	}
	if filter.Status != "" {
		query = query.Where(sq.Eq{"status": filter.Status})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []*types.Request
	for rows.Next() {
		var r types.Request
		if err := rows.Scan(
			&r.ID, &r.CompanyID, &r.Title, &r.Description, &r.Status, &r.Priority,
			&r.AssignedTo, &r.AssetsLink, &r.VideoBrief, &r.DueDate,
			&r.CreatedBy, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

func (s *Storage) UpdateRequestStatus(ctx context.Context, id string, status types.RequestStatus) (*types.Request, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateRequestStatus")
	defer span.End()

	row := s.db.Statement(ctx).
		Update("requests").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix(requestReturning()).
		QueryRowContext(ctx)

	return scanRequest(row)
}

func (s *Storage) UpdateRequestAssignee(ctx context.Context, id string, assigneeID *string) (*types.Request, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateRequestAssignee")
	defer span.End()

	row := s.db.Statement(ctx).
		Update("requests").
		Set("assigned_to", assigneeID).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix(requestReturning()).
		QueryRowContext(ctx)

	req, err := scanRequest(row)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, err
	}
	return req, nil
}

func (s *Storage) UpdateRequestFields(ctx context.Context, id string, fields map[string]any) (*types.Request, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateRequestFields")
	defer span.End()

	if len(fields) == 0 {
		return s.GetRequestByID(ctx, id)
	}

	update := s.db.Statement(ctx).
		Update("requests").
		SetMap(fields).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix(requestReturning())

	return scanRequest(update.QueryRowContext(ctx))
}

func (s *Storage) DeleteRequest(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteRequest")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("requests").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
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

func (s *Storage) CountActiveRequestsByCompany(ctx context.Context, companyID string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountActiveRequestsByCompany")
	defer span.End()

	var count int
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("requests").
		Where(sq.Eq{"company_id": companyID}).
		Where(sq.NotEq{"status": types.StatusDone}).
		QueryRowContext(ctx).
		Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count active requests: %w", err)
	}

	return count, nil
}
