package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seenlyhq/seenly/internal/domain"
)

// CreateTag creates a brand-scoped tag. Names are unique per brand,
// case-insensitively.
func (s *Service) CreateTag(ctx context.Context, workspaceID, brandID, name, color string) (*domain.Tag, error) {
	validName, err := domain.NewName(name)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.FindBrandByID(ctx, workspaceID, brandID); err != nil {
		return nil, err
	}

	existing, err := s.store.FindTagByName(ctx, brandID, validName.String())
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check tag name: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateTagName
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tag ID: %w", err)
	}

	tag := &domain.Tag{
		ID:        id.String(),
		BrandID:   brandID,
		Name:      validName.String(),
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return tag, nil
}

// ListTags returns a brand's tags.
func (s *Service) ListTags(ctx context.Context, workspaceID, brandID string) ([]domain.Tag, error) {
	if _, err := s.store.FindBrandByID(ctx, workspaceID, brandID); err != nil {
		return nil, err
	}
	return s.store.ListTagsByBrand(ctx, workspaceID, brandID)
}

// UpdateTag applies a partial tag update. Renaming a tag does not rewrite the
// name stored on tasks: historical tasks keep the old text until explicitly
// changed.
func (s *Service) UpdateTag(ctx context.Context, workspaceID string, params domain.UpdateTagParams) (*domain.Tag, error) {
	tag, err := s.store.FindTagByID(ctx, workspaceID, params.TagID)
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
				duplicate, err := s.store.FindTagByName(ctx, tag.BrandID, name.String())
				if err != nil && !errors.Is(err, domain.ErrNotFound) {
					return nil, fmt.Errorf("failed to check tag name: %w", err)
				}
				if duplicate != nil && duplicate.ID != tag.ID {
					return nil, domain.ErrDuplicateTagName
				}
				tag.Name = name.String()
			}
		case "color":
			if params.Color != nil {
				tag.Color = *params.Color
			}
		}
	}

	if err := s.store.UpdateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	return tag, nil
}

// DeleteTag removes the tag only. Tasks keep the tag's name as free text;
// filters referencing the deleted id simply stop matching.
func (s *Service) DeleteTag(ctx context.Context, workspaceID, tagID string) error {
	return s.store.DeleteTag(ctx, workspaceID, tagID)
}
