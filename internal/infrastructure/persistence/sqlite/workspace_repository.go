package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/seenlyhq/seenly/internal/domain"
)

// CreateWorkspace inserts a new workspace. Used by the CLI during onboarding.
func (s *Store) CreateWorkspace(ctx context.Context, workspace *domain.Workspace) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO workspaces (id, name, created_at)
		VALUES (?, ?, ?)`,
		workspace.ID, workspace.Name, workspace.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	return nil
}

// === Integrations ===

// CreateIntegration inserts a new integration; config is stored as JSON text.
func (s *Store) CreateIntegration(ctx context.Context, integration *domain.Integration) error {
	config, err := marshalConfig(integration.Config)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO integrations (id, workspace_id, provider, status, config, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		integration.ID, integration.WorkspaceID, integration.Provider,
		string(integration.Status), config, integration.CreatedAt.UTC(), integration.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create integration: %w", err)
	}
	return nil
}

// FindIntegrationByID retrieves a workspace's integration.
func (s *Store) FindIntegrationByID(ctx context.Context, workspaceID, integrationID string) (*domain.Integration, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, provider, status, config, created_at, updated_at
		FROM integrations
		WHERE id = ? AND workspace_id = ?`,
		integrationID, workspaceID)

	integration, err := scanIntegration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIntegrationNotFound, integrationID)
		}
		return nil, fmt.Errorf("failed to get integration: %w", err)
	}
	return integration, nil
}

// ListIntegrations retrieves the workspace's integrations in creation order.
func (s *Store) ListIntegrations(ctx context.Context, workspaceID string) ([]domain.Integration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, workspace_id, provider, status, config, created_at, updated_at
		FROM integrations
		WHERE workspace_id = ?
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

	result, err := s.db.ExecContext(ctx, `
		UPDATE integrations
		SET status = ?, config = ?, updated_at = ?
		WHERE id = ? AND workspace_id = ?`,
		string(integration.Status), config, integration.UpdatedAt.UTC(),
		integration.ID, integration.WorkspaceID)
	if err != nil {
		return fmt.Errorf("failed to update integration: %w", err)
	}
	return checkRowsAffected(result, domain.ErrIntegrationNotFound, integration.ID)
}

// DeleteIntegration removes an integration.
func (s *Store) DeleteIntegration(ctx context.Context, workspaceID, integrationID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM integrations WHERE id = ? AND workspace_id = ?`,
		integrationID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete integration: %w", err)
	}
	return checkRowsAffected(result, domain.ErrIntegrationNotFound, integrationID)
}

// === Subscriptions ===

// GetSubscription retrieves the workspace's cached subscription row.
func (s *Store) GetSubscription(ctx context.Context, workspaceID string) (*domain.Subscription, error) {
	var (
		sub       domain.Subscription
		periodEnd sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT workspace_id, plan, status, current_period_end, prompt_usage, prompt_limit, updated_at
		FROM subscriptions
		WHERE workspace_id = ?`,
		workspaceID).Scan(&sub.WorkspaceID, &sub.Plan, &sub.Status,
		&periodEnd, &sub.PromptUsage, &sub.PromptLimit, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSubscriptionNotFound, workspaceID)
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	sub.CurrentPeriodEnd = timePtr(periodEnd)
	sub.UpdatedAt = sub.UpdatedAt.UTC()
	return &sub, nil
}

// UpsertSubscription writes the billing provider's view of the workspace.
func (s *Store) UpsertSubscription(ctx context.Context, sub *domain.Subscription) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (workspace_id, plan, status, current_period_end, prompt_usage, prompt_limit, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (workspace_id) DO UPDATE
		SET plan = excluded.plan,
			status = excluded.status,
			current_period_end = excluded.current_period_end,
			prompt_usage = excluded.prompt_usage,
			prompt_limit = excluded.prompt_limit,
			updated_at = excluded.updated_at`,
		sub.WorkspaceID, sub.Plan, sub.Status, nullTime(sub.CurrentPeriodEnd),
		sub.PromptUsage, sub.PromptLimit, sub.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

// === Members ===

// UpsertMember writes the cached identity-provider record for a member.
func (s *Store) UpsertMember(ctx context.Context, member *domain.Member) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO members (id, workspace_id, name, avatar_url)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id, workspace_id) DO UPDATE
		SET name = excluded.name,
			avatar_url = excluded.avatar_url`,
		member.ID, member.WorkspaceID, member.Name, member.AvatarURL)
	if err != nil {
		return fmt.Errorf("failed to upsert member: %w", err)
	}
	return nil
}

// ListMembers retrieves the workspace's cached member records.
func (s *Store) ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, workspace_id, name, avatar_url
		FROM members
		WHERE workspace_id = ?
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

func scanIntegration(row rowScanner) (*domain.Integration, error) {
	var (
		i      domain.Integration
		status string
		config sql.NullString
	)
	if err := row.Scan(&i.ID, &i.WorkspaceID, &i.Provider, &status, &config, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	i.Status = domain.IntegrationStatus(status)
	i.CreatedAt = i.CreatedAt.UTC()
	i.UpdatedAt = i.UpdatedAt.UTC()
	if config.Valid && config.String != "" {
		if err := json.Unmarshal([]byte(config.String), &i.Config); err != nil {
			return nil, fmt.Errorf("failed to decode integration config: %w", err)
		}
	}
	return &i, nil
}

func marshalConfig(config map[string]any) (sql.NullString, error) {
	if config == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(config)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode integration config: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
