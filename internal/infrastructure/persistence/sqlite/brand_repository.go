package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seenlyhq/seenly/internal/domain"
)

// CreateBrand inserts a new brand.
func (s *Store) CreateBrand(ctx context.Context, brand *domain.Brand) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO brands (id, workspace_id, name, domain, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		brand.ID, brand.WorkspaceID, brand.Name, brand.Domain, brand.CreatedAt.UTC(), brand.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// FindBrandByID retrieves a brand scoped to the workspace.
func (s *Store) FindBrandByID(ctx context.Context, workspaceID, brandID string) (*domain.Brand, error) {
	var b domain.Brand
	err := s.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, name, domain, created_at, updated_at
		FROM brands
		WHERE id = ? AND workspace_id = ?`,
		brandID, workspaceID).Scan(&b.ID, &b.WorkspaceID, &b.Name, &b.Domain, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrBrandNotFound, brandID)
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return &b, nil
}

// ListBrands retrieves one page of the workspace's brands in creation order.
func (s *Store) ListBrands(ctx context.Context, workspaceID string, params domain.ListBrandsParams) (*domain.PagedBrands, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM brands WHERE workspace_id = ?`, workspaceID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count brands: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, workspace_id, name, domain, created_at, updated_at
		FROM brands
		WHERE workspace_id = ?
		ORDER BY created_at, id
		LIMIT ? OFFSET ?`,
		workspaceID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	var brands []*domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.WorkspaceID, &b.Name, &b.Domain, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		b.CreatedAt = b.CreatedAt.UTC()
		b.UpdatedAt = b.UpdatedAt.UTC()
		brands = append(brands, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read brands: %w", err)
	}

	return &domain.PagedBrands{
		Brands:     brands,
		TotalCount: total,
		HasMore:    params.Offset+len(brands) < total,
	}, nil
}

// UpdateBrand persists brand field changes.
func (s *Store) UpdateBrand(ctx context.Context, brand *domain.Brand) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE brands
		SET name = ?, domain = ?, updated_at = ?
		WHERE id = ? AND workspace_id = ?`,
		brand.Name, brand.Domain, brand.UpdatedAt.UTC(), brand.ID, brand.WorkspaceID)
	if err != nil {
		return fmt.Errorf("failed to update brand: %w", err)
	}
	return checkRowsAffected(result, domain.ErrBrandNotFound, brand.ID)
}

// DeleteBrand removes a brand; tasks, tags, workstreams, and content cascade.
func (s *Store) DeleteBrand(ctx context.Context, workspaceID, brandID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM brands WHERE id = ? AND workspace_id = ?`, brandID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	return checkRowsAffected(result, domain.ErrBrandNotFound, brandID)
}
