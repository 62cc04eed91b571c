// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agencyos/portal/internal/types"
)

const invitationColumns = "id, email, role, company_id, token, status, expires_at, invited_by, accepted_at, created_at"

func (s *Storage) CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvitation")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation ID: %w", err)
	}

	var created types.Invitation
	err = s.db.Statement(ctx).
		Insert("invitations").
		Columns("id", "email", "role", "company_id", "token", "status", "expires_at", "invited_by").
		Values(id.String(), i.Email, i.Role, i.CompanyID, i.Token, types.InvitationPending, i.ExpiresAt, i.InvitedBy).
		Suffix("RETURNING "+invitationColumns).
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Email, &created.Role, &created.CompanyID, &created.Token,
			&created.Status, &created.ExpiresAt, &created.InvitedBy, &created.AcceptedAt, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert invitation: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInvitationByToken")
	defer span.End()

	var i types.Invitation
	err := s.db.Statement(ctx).
		Select(invitationColumns).
		From("invitations").
		Where(sq.Eq{"token": token}).
		QueryRowContext(ctx).
		Scan(&i.ID, &i.Email, &i.Role, &i.CompanyID, &i.Token,
			&i.Status, &i.ExpiresAt, &i.InvitedBy, &i.AcceptedAt, &i.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return &i, nil
}

func (s *Storage) GetPendingInvitationByEmail(ctx context.Context, email string) (*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPendingInvitationByEmail")
	defer span.End()

	var i types.Invitation
	err := s.db.Statement(ctx).
		Select(invitationColumns).
		From("invitations").
		Where(sq.Eq{"email": email, "status": types.InvitationPending}).
		OrderBy("created_at DESC").
		Limit(1).
		QueryRowContext(ctx).
		Scan(&i.ID, &i.Email, &i.Role, &i.CompanyID, &i.Token,
			&i.Status, &i.ExpiresAt, &i.InvitedBy, &i.AcceptedAt, &i.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invitation by email: %w", err)
	}

	return &i, nil
}

func (s *Storage) ListInvitations(ctx context.Context) ([]*types.Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListInvitations")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(invitationColumns).
		From("invitations").
		OrderBy("created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*types.Invitation
	for rows.Next() {
		var i types.Invitation
		if err := rows.Scan(&i.ID, &i.Email, &i.Role, &i.CompanyID, &i.Token,
			&i.Status, &i.ExpiresAt, &i.InvitedBy, &i.AcceptedAt, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, &i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invitations, nil
}

// MarkInvitationAccepted flips a pending invitation to accepted. The status
// guard in the WHERE clause makes concurrent double-accepts lose with
// ErrNotFound rather than silently re-accepting.
func (s *Storage) MarkInvitationAccepted(ctx context.Context, id string, acceptedAt time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.MarkInvitationAccepted")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("invitations").
		Set("status", types.InvitationAccepted).
		Set("accepted_at", acceptedAt).
		Where(sq.Eq{"id": id, "status": types.InvitationPending}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to accept invitation: %w", err)
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

func (s *Storage) MarkInvitationExpired(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.MarkInvitationExpired")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("invitations").
		Set("status", types.InvitationExpired).
		Where(sq.Eq{"id": id, "status": types.InvitationPending}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to expire invitation: %w", err)
	}

	return nil
}
