package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seenlyhq/seenly/internal/domain"
)

// CreatePrompt inserts a new probe prompt.
func (s *Store) CreatePrompt(ctx context.Context, prompt *domain.Prompt) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prompts (id, workspace_id, text, engine, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		prompt.ID, prompt.WorkspaceID, prompt.Text, prompt.Engine,
		prompt.IsActive, prompt.CreatedAt.UTC(), prompt.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create prompt: %w", err)
	}
	return nil
}

// FindPromptByID retrieves a workspace's prompt.
func (s *Store) FindPromptByID(ctx context.Context, workspaceID, promptID string) (*domain.Prompt, error) {
	var p domain.Prompt
	err := s.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, text, engine, is_active, created_at, updated_at
		FROM prompts
		WHERE id = ? AND workspace_id = ?`,
		promptID, workspaceID).Scan(&p.ID, &p.WorkspaceID, &p.Text, &p.Engine, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPromptNotFound, promptID)
		}
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

// ListPrompts retrieves the workspace's prompts in creation order.
func (s *Store) ListPrompts(ctx context.Context, workspaceID string) ([]domain.Prompt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, workspace_id, text, engine, is_active, created_at, updated_at
		FROM prompts
		WHERE workspace_id = ?
		ORDER BY created_at, id`,
		workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []domain.Prompt
	for rows.Next() {
		var p domain.Prompt
		if err := rows.Scan(&p.ID, &p.WorkspaceID, &p.Text, &p.Engine, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		p.UpdatedAt = p.UpdatedAt.UTC()
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prompts: %w", err)
	}
	return prompts, nil
}

// UpdatePrompt persists prompt field changes.
func (s *Store) UpdatePrompt(ctx context.Context, prompt *domain.Prompt) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE prompts
		SET text = ?, engine = ?, is_active = ?, updated_at = ?
		WHERE id = ? AND workspace_id = ?`,
		prompt.Text, prompt.Engine, prompt.IsActive, prompt.UpdatedAt.UTC(),
		prompt.ID, prompt.WorkspaceID)
	if err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}
	return checkRowsAffected(result, domain.ErrPromptNotFound, prompt.ID)
}

// DeletePrompt removes a prompt.
func (s *Store) DeletePrompt(ctx context.Context, workspaceID, promptID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM prompts WHERE id = ? AND workspace_id = ?`,
		promptID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	return checkRowsAffected(result, domain.ErrPromptNotFound, promptID)
}
