package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seenlyhq/seenly/internal/domain"
)

// ConnectIntegration records a new provider connection for the workspace.
// The connection starts in the connected state; providers that need an OAuth
// round-trip flip it later via UpdateIntegration.
func (s *Service) ConnectIntegration(ctx context.Context, workspaceID, provider string, config map[string]any) (*domain.Integration, error) {
	if provider == "" {
		return nil, domain.ErrProviderRequired
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate integration ID: %w", err)
	}

	now := time.Now().UTC()
	integration := &domain.Integration{
		ID:          id.String(),
		WorkspaceID: workspaceID,
		Provider:    provider,
		Status:      domain.IntegrationStatusConnected,
		Config:      config,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateIntegration(ctx, integration); err != nil {
		return nil, fmt.Errorf("failed to create integration: %w", err)
	}

	return integration, nil
}

// GetIntegration fetches a single integration scoped to the workspace.
func (s *Service) GetIntegration(ctx context.Context, workspaceID, integrationID string) (*domain.Integration, error) {
	return s.store.FindIntegrationByID(ctx, workspaceID, integrationID)
}

// ListIntegrations returns the workspace's provider connections.
func (s *Service) ListIntegrations(ctx context.Context, workspaceID string) ([]domain.Integration, error) {
	return s.store.ListIntegrations(ctx, workspaceID)
}

// UpdateIntegration applies a partial integration update. Config, when masked,
// replaces the stored map wholesale.
func (s *Service) UpdateIntegration(ctx context.Context, workspaceID string, params domain.UpdateIntegrationParams) (*domain.Integration, error) {
	integration, err := s.store.FindIntegrationByID(ctx, workspaceID, params.IntegrationID)
	if err != nil {
		return nil, err
	}

	for _, field := range params.UpdateMask {
		switch field {
		case "status":
			if params.Status != nil {
				integration.Status = *params.Status
			}
		case "config":
			integration.Config = params.Config
		}
	}
	integration.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateIntegration(ctx, integration); err != nil {
		return nil, fmt.Errorf("failed to update integration: %w", err)
	}

	return integration, nil
}

// DisconnectIntegration removes a provider connection.
func (s *Service) DisconnectIntegration(ctx context.Context, workspaceID, integrationID string) error {
	return s.store.DeleteIntegration(ctx, workspaceID, integrationID)
}
