package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seenlyhq/seenly/internal/domain"
)

// CreateBrand inserts a new brand.
func (s *Store) CreateBrand(ctx context.Context, brand *domain.Brand) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO brands (id, workspace_id, name, domain, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		brand.ID, brand.WorkspaceID, brand.Name, brand.Domain, brand.CreatedAt, brand.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// FindBrandByID retrieves a brand scoped to the workspace.
func (s *Store) FindBrandByID(ctx context.Context, workspaceID, brandID string) (*domain.Brand, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, workspace_id, name, domain, created_at, updated_at
		FROM brands
		WHERE id = $1 AND workspace_id = $2`,
		brandID, workspaceID)

	brand, err := scanBrand(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrBrandNotFound, brandID)
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return brand, nil
}

// ListBrands retrieves one page of the workspace's brands in creation order.
func (s *Store) ListBrands(ctx context.Context, workspaceID string, params domain.ListBrandsParams) (*domain.PagedBrands, error) {
	var total int
	if err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM brands WHERE workspace_id = $1`, workspaceID).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count brands: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, workspace_id, name, domain, created_at, updated_at
		FROM brands
		WHERE workspace_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`,
		workspaceID, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	var brands []*domain.Brand
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, brand)
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
	tag, err := s.pool.Exec(ctx, `
		UPDATE brands
		SET name = $1, domain = $2, updated_at = $3
		WHERE id = $4 AND workspace_id = $5`,
		brand.Name, brand.Domain, brand.UpdatedAt, brand.ID, brand.WorkspaceID)
	if err != nil {
		return fmt.Errorf("failed to update brand: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrBrandNotFound, brand.ID)
}

// DeleteBrand removes a brand; tasks, tags, workstreams, and content cascade.
func (s *Store) DeleteBrand(ctx context.Context, workspaceID, brandID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM brands WHERE id = $1 AND workspace_id = $2`, brandID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrBrandNotFound, brandID)
}

func scanBrand(row pgx.Row) (*domain.Brand, error) {
	var b domain.Brand
	if err := row.Scan(&b.ID, &b.WorkspaceID, &b.Name, &b.Domain, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return &b, nil
}
