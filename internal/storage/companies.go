// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agencyos/portal/internal/types"
)

func (s *Storage) CreateCompany(ctx context.Context, c *types.Company) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCompany")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate company ID: %w", err)
	}

	var created types.Company
	err = s.db.Statement(ctx).
		Insert("companies").
		Columns("id", "name", "plan", "max_active_limit", "active").
		Values(id.String(), c.Name, c.Plan, c.MaxActiveLimit, c.Active).
		Suffix("RETURNING id, name, plan, max_active_limit, active, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Name, &created.Plan, &created.MaxActiveLimit, &created.Active, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert company: %w", err)
	}

	return &created, nil
}

func (s *Storage) GetCompanyByID(ctx context.Context, id string) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCompanyByID")
	defer span.End()

	var c types.Company
	err := s.db.Statement(ctx).
		Select("id", "name", "plan", "max_active_limit", "active", "created_at").
		From("companies").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&c.ID, &c.Name, &c.Plan, &c.MaxActiveLimit, &c.Active, &c.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &c, nil
}

func (s *Storage) ListCompanies(ctx context.Context) ([]*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCompanies")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "name", "plan", "max_active_limit", "active", "created_at").
		From("companies").
		OrderBy("name").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []*types.Company
	for rows.Next() {
		var c types.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Plan, &c.MaxActiveLimit, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return companies, nil
}

// UpdateCompany follows PATCH semantics, touching only the columns named in paths.
func (s *Storage) UpdateCompany(ctx context.Context, c *types.Company, paths []string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateCompany")
	defer span.End()

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "name":
			updateMap["name"] = c.Name
		case "plan":
			updateMap["plan"] = c.Plan
		case "max_active_limit":
			updateMap["max_active_limit"] = c.MaxActiveLimit
		case "active":
			updateMap["active"] = c.Active
		}
	}

	if len(updateMap) == 0 {
		return nil
	}

	res, err := s.db.Statement(ctx).
		Update("companies").
		SetMap(updateMap).
		Where(sq.Eq{"id": c.ID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
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

func (s *Storage) ListClientServicesByCompany(ctx context.Context, companyID string) ([]*types.ClientService, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListClientServicesByCompany")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "company_id", "name", "description", "active").
		From("client_services").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("name").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list client services: %w", err)
	}
	defer rows.Close()

	var services []*types.ClientService
	for rows.Next() {
		var cs types.ClientService
		if err := rows.Scan(&cs.ID, &cs.CompanyID, &cs.Name, &cs.Description, &cs.Active); err != nil {
			return nil, fmt.Errorf("failed to scan client service: %w", err)
		}
		services = append(services, &cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return services, nil
}
