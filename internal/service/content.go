package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seenlyhq/seenly/internal/domain"
)

// CreateContent creates a brand-scoped content piece, starting as a draft
// unless a status is given.
func (s *Service) CreateContent(ctx context.Context, workspaceID, brandID, title, body, status string) (*domain.Content, error) {
	validTitle, err := domain.NewName(title)
	if err != nil {
		return nil, err
	}

	contentStatus := domain.ContentStatusDraft
	if status != "" {
		contentStatus, err = domain.NewContentStatus(status)
		if err != nil {
			return nil, err
		}
	}

	if _, err := s.store.FindBrandByID(ctx, workspaceID, brandID); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate content ID: %w", err)
	}

	now := time.Now().UTC()
	content := &domain.Content{
		ID:        id.String(),
		BrandID:   brandID,
		Title:     validTitle.String(),
		Body:      body,
		Status:    contentStatus,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateContent(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}

	return content, nil
}

// GetContent fetches a single content piece scoped to the workspace.
func (s *Service) GetContent(ctx context.Context, workspaceID, contentID string) (*domain.Content, error) {
	return s.store.FindContentByID(ctx, workspaceID, contentID)
}

// ListContent returns a brand's content pieces.
func (s *Service) ListContent(ctx context.Context, workspaceID, brandID string) ([]domain.Content, error) {
	if _, err := s.store.FindBrandByID(ctx, workspaceID, brandID); err != nil {
		return nil, err
	}
	return s.store.ListContentByBrand(ctx, workspaceID, brandID)
}

// UpdateContent applies a partial content update.
func (s *Service) UpdateContent(ctx context.Context, workspaceID string, params domain.UpdateContentParams) (*domain.Content, error) {
	content, err := s.store.FindContentByID(ctx, workspaceID, params.ContentID)
	if err != nil {
		return nil, err
	}

	for _, field := range params.UpdateMask {
		switch field {
		case "title":
			if params.Title != nil {
				title, err := domain.NewName(*params.Title)
				if err != nil {
					return nil, err
				}
				content.Title = title.String()
			}
		case "body":
			if params.Body != nil {
				content.Body = *params.Body
			}
		case "status":
			if params.Status != nil {
				content.Status = *params.Status
			}
		case "asset_object":
			content.AssetObject = params.AssetObject
		}
	}
	content.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateContent(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to update content: %w", err)
	}

	return content, nil
}

// DeleteContent removes a content piece.
func (s *Service) DeleteContent(ctx context.Context, workspaceID, contentID string) error {
	return s.store.DeleteContent(ctx, workspaceID, contentID)
}
