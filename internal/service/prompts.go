package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seenlyhq/seenly/internal/domain"
)

// CreatePrompt registers an AEO probe prompt for the workspace. New prompts
// start active.
func (s *Service) CreatePrompt(ctx context.Context, workspaceID, text, engine string) (*domain.Prompt, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrPromptTextRequired
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate prompt ID: %w", err)
	}

	now := time.Now().UTC()
	prompt := &domain.Prompt{
		ID:          id.String(),
		WorkspaceID: workspaceID,
		Text:        text,
		Engine:      engine,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreatePrompt(ctx, prompt); err != nil {
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}

	return prompt, nil
}

// GetPrompt fetches a single prompt scoped to the workspace.
func (s *Service) GetPrompt(ctx context.Context, workspaceID, promptID string) (*domain.Prompt, error) {
	return s.store.FindPromptByID(ctx, workspaceID, promptID)
}

// ListPrompts returns the workspace's probe prompts.
func (s *Service) ListPrompts(ctx context.Context, workspaceID string) ([]domain.Prompt, error) {
	return s.store.ListPrompts(ctx, workspaceID)
}

// UpdatePrompt applies a partial prompt update.
func (s *Service) UpdatePrompt(ctx context.Context, workspaceID string, params domain.UpdatePromptParams) (*domain.Prompt, error) {
	prompt, err := s.store.FindPromptByID(ctx, workspaceID, params.PromptID)
	if err != nil {
		return nil, err
	}

	for _, field := range params.UpdateMask {
		switch field {
		case "text":
			if params.Text != nil {
				text := strings.TrimSpace(*params.Text)
				if text == "" {
					return nil, domain.ErrPromptTextRequired
				}
				prompt.Text = text
			}
		case "engine":
			if params.Engine != nil {
				prompt.Engine = *params.Engine
			}
		case "is_active":
			if params.IsActive != nil {
				prompt.IsActive = *params.IsActive
			}
		}
	}
	prompt.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdatePrompt(ctx, prompt); err != nil {
		return nil, fmt.Errorf("failed to update prompt: %w", err)
	}

	return prompt, nil
}

// DeletePrompt removes a probe prompt.
func (s *Service) DeletePrompt(ctx context.Context, workspaceID, promptID string) error {
	return s.store.DeletePrompt(ctx, workspaceID, promptID)
}
