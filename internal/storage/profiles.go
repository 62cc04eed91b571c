// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/agencyos/portal/internal/types"
)

const profileColumns = "id, email, full_name, role, company_id, created_at, updated_at"

// CreateProfile inserts a profile row. The ID is the external identity ID, not
// generated here.
func (s *Storage) CreateProfile(ctx context.Context, p *types.Profile) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateProfile")
	defer span.End()

	var created types.Profile
	err := s.db.Statement(ctx).
		Insert("profiles").
		Columns("id", "email", "full_name", "role", "company_id").
		Values(p.ID, p.Email, p.FullName, p.Role, p.CompanyID).
		Suffix("RETURNING " + profileColumns).
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Email, &created.FullName, &created.Role, &created.CompanyID, &created.CreatedAt, &created.UpdatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetProfileByID(ctx context.Context, id string) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetProfileByID")
	defer span.End()

	var p types.Profile
	err := s.db.Statement(ctx).
		Select(profileColumns).
		From("profiles").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.CompanyID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

func (s *Storage) UpdateProfileName(ctx context.Context, id, fullName string) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateProfileName")
	defer span.End()

	var p types.Profile
	err := s.db.Statement(ctx).
		Update("profiles").
		Set("full_name", fullName).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + profileColumns).
		QueryRowContext(ctx).
		Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.CompanyID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &p, nil
}

func (s *Storage) ListAdminProfiles(ctx context.Context) ([]*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAdminProfiles")
	defer span.End()

	return s.listProfiles(ctx, sq.Eq{"role": types.RoleAdmin})
}

func (s *Storage) ListProfilesByCompany(ctx context.Context, companyID string) ([]*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListProfilesByCompany")
	defer span.End()

	return s.listProfiles(ctx, sq.Eq{"company_id": companyID})
}

func (s *Storage) listProfiles(ctx context.Context, where sq.Eq) ([]*types.Profile, error) {
	rows, err := s.db.Statement(ctx).
		Select(profileColumns).
		From("profiles").
		Where(where).
		OrderBy("full_name").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*types.Profile
	for rows.Next() {
		var p types.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.CompanyID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return profiles, nil
}
