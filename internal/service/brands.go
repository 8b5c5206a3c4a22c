package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seenlyhq/seenly/internal/domain"
)

// CreateBrand validates and persists a new brand for the workspace.
func (s *Service) CreateBrand(ctx context.Context, workspaceID, name, domainName string) (*domain.Brand, error) {
	validName, err := domain.NewName(name)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate brand ID: %w", err)
	}

	now := time.Now().UTC()
	brand := &domain.Brand{
		ID:          id.String(),
		WorkspaceID: workspaceID,
		Name:        validName.String(),
		Domain:      domainName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateBrand(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	return brand, nil
}

// GetBrand fetches a single brand scoped to the workspace.
func (s *Service) GetBrand(ctx context.Context, workspaceID, brandID string) (*domain.Brand, error) {
	return s.store.FindBrandByID(ctx, workspaceID, brandID)
}

// ListBrands returns one page of the workspace's brands.
func (s *Service) ListBrands(ctx context.Context, workspaceID string, params domain.ListBrandsParams) (*domain.PagedBrands, error) {
	params.Limit = s.pageSize(params.Limit)
	params.Offset = max(params.Offset, 0)
	return s.store.ListBrands(ctx, workspaceID, params)
}

// UpdateBrand applies a partial brand update.
func (s *Service) UpdateBrand(ctx context.Context, workspaceID string, params domain.UpdateBrandParams) (*domain.Brand, error) {
	brand, err := s.store.FindBrandByID(ctx, workspaceID, params.BrandID)
	if err != nil {
		return nil, err
	}

	for _, field := range params.UpdateMask {
		switch field {
		case "name":
			if params.Name != nil {
				name, err := domain.NewName(*params.Name)
				if err != nil {
					return nil, err
				}
				brand.Name = name.String()
			}
		case "domain":
			if params.Domain != nil {
				brand.Domain = *params.Domain
			}
		}
	}
	brand.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateBrand(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}

	return brand, nil
}

// DeleteBrand removes a brand and, through the schema, its tasks, tags, and
// content.
func (s *Service) DeleteBrand(ctx context.Context, workspaceID, brandID string) error {
	return s.store.DeleteBrand(ctx, workspaceID, brandID)
}
