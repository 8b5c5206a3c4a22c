package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seenlyhq/seenly/internal/domain"
)

// CreateWorkspace inserts a new workspace. Used by the CLI during onboarding.
func (s *Store) CreateWorkspace(ctx context.Context, workspace *domain.Workspace) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO workspaces (id, name, created_at)
		VALUES ($1, $2, $3)`,
		workspace.ID, workspace.Name, workspace.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	return nil
}

// === Integrations ===

// CreateIntegration inserts a new integration; config is stored as JSONB.
func (s *Store) CreateIntegration(ctx context.Context, integration *domain.Integration) error {
	config, err := marshalConfig(integration.Config)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO integrations (id, workspace_id, provider, status, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		integration.ID, integration.WorkspaceID, integration.Provider,
		string(integration.Status), config, integration.CreatedAt, integration.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create integration: %w", err)
	}
	return nil
}

// FindIntegrationByID retrieves a workspace's integration.
func (s *Store) FindIntegrationByID(ctx context.Context, workspaceID, integrationID string) (*domain.Integration, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, workspace_id, provider, status, config, created_at, updated_at
		FROM integrations
		WHERE id = $1 AND workspace_id = $2`,
		integrationID, workspaceID)

	integration, err := scanIntegration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIntegrationNotFound, integrationID)
		}
		return nil, fmt.Errorf("failed to get integration: %w", err)
	}
	return integration, nil
}

// ListIntegrations retrieves the workspace's integrations in creation order.
func (s *Store) ListIntegrations(ctx context.Context, workspaceID string) ([]domain.Integration, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, workspace_id, provider, status, config, created_at, updated_at
		FROM integrations
		WHERE workspace_id = $1
		ORDER BY created_at, id`,
		workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list integrations: %w", err)
	}
	defer rows.Close()

	var integrations []domain.Integration
	for rows.Next() {
		integration, err := scanIntegration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan integration: %w", err)
		}
		integrations = append(integrations, *integration)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read integrations: %w", err)
	}
	return integrations, nil
}

// UpdateIntegration persists integration field changes.
func (s *Store) UpdateIntegration(ctx context.Context, integration *domain.Integration) error {
	config, err := marshalConfig(integration.Config)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE integrations
		SET status = $1, config = $2, updated_at = $3
		WHERE id = $4 AND workspace_id = $5`,
		string(integration.Status), config, integration.UpdatedAt,
		integration.ID, integration.WorkspaceID)
	if err != nil {
		return fmt.Errorf("failed to update integration: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrIntegrationNotFound, integration.ID)
}

// DeleteIntegration removes an integration.
func (s *Store) DeleteIntegration(ctx context.Context, workspaceID, integrationID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM integrations WHERE id = $1 AND workspace_id = $2`,
		integrationID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete integration: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrIntegrationNotFound, integrationID)
}

// === Subscriptions ===

// GetSubscription retrieves the workspace's cached subscription row.
func (s *Store) GetSubscription(ctx context.Context, workspaceID string) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := s.pool.QueryRow(ctx, `
		SELECT workspace_id, plan, status, current_period_end, prompt_usage, prompt_limit, updated_at
		FROM subscriptions
		WHERE workspace_id = $1`,
		workspaceID).Scan(&sub.WorkspaceID, &sub.Plan, &sub.Status,
		&sub.CurrentPeriodEnd, &sub.PromptUsage, &sub.PromptLimit, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSubscriptionNotFound, workspaceID)
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	sub.UpdatedAt = sub.UpdatedAt.UTC()
	if sub.CurrentPeriodEnd != nil {
		utc := sub.CurrentPeriodEnd.UTC()
		sub.CurrentPeriodEnd = &utc
	}
	return &sub, nil
}

// UpsertSubscription writes the billing provider's view of the workspace.
func (s *Store) UpsertSubscription(ctx context.Context, sub *domain.Subscription) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO subscriptions (workspace_id, plan, status, current_period_end, prompt_usage, prompt_limit, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (workspace_id) DO UPDATE
		SET plan = EXCLUDED.plan,
			status = EXCLUDED.status,
			current_period_end = EXCLUDED.current_period_end,
			prompt_usage = EXCLUDED.prompt_usage,
			prompt_limit = EXCLUDED.prompt_limit,
			updated_at = EXCLUDED.updated_at`,
		sub.WorkspaceID, sub.Plan, sub.Status, sub.CurrentPeriodEnd,
		sub.PromptUsage, sub.PromptLimit, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

// === Members ===

// UpsertMember writes the cached identity-provider record for a member.
func (s *Store) UpsertMember(ctx context.Context, member *domain.Member) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO members (id, workspace_id, name, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id, workspace_id) DO UPDATE
		SET name = EXCLUDED.name,
			avatar_url = EXCLUDED.avatar_url`,
		member.ID, member.WorkspaceID, member.Name, member.AvatarURL)
	if err != nil {
		return fmt.Errorf("failed to upsert member: %w", err)
	}
	return nil
}

// ListMembers retrieves the workspace's cached member records.
func (s *Store) ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, workspace_id, name, avatar_url
		FROM members
		WHERE workspace_id = $1
		ORDER BY name, id`,
		workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.Name, &m.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read members: %w", err)
	}
	return members, nil
}

func scanIntegration(row pgx.Row) (*domain.Integration, error) {
	var (
		i      domain.Integration
		status string
		config []byte
	)
	if err := row.Scan(&i.ID, &i.WorkspaceID, &i.Provider, &status, &config, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	i.Status = domain.IntegrationStatus(status)
	i.CreatedAt = i.CreatedAt.UTC()
	i.UpdatedAt = i.UpdatedAt.UTC()
	if len(config) > 0 {
		if err := json.Unmarshal(config, &i.Config); err != nil {
			return nil, fmt.Errorf("failed to decode integration config: %w", err)
		}
	}
	return &i, nil
}

func marshalConfig(config map[string]any) ([]byte, error) {
	if config == nil {
		return nil, nil
	}
	data, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to encode integration config: %w", err)
	}
	return data, nil
}
