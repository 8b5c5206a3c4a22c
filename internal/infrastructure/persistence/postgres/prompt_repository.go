package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seenlyhq/seenly/internal/domain"
)

// CreatePrompt inserts a new probe prompt.
func (s *Store) CreatePrompt(ctx context.Context, prompt *domain.Prompt) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO prompts (id, workspace_id, text, engine, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		prompt.ID, prompt.WorkspaceID, prompt.Text, prompt.Engine,
		prompt.IsActive, prompt.CreatedAt, prompt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create prompt: %w", err)
	}
	return nil
}

// FindPromptByID retrieves a workspace's prompt.
func (s *Store) FindPromptByID(ctx context.Context, workspaceID, promptID string) (*domain.Prompt, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, workspace_id, text, engine, is_active, created_at, updated_at
		FROM prompts
		WHERE id = $1 AND workspace_id = $2`,
		promptID, workspaceID)

	prompt, err := scanPrompt(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPromptNotFound, promptID)
		}
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}
	return prompt, nil
}

// ListPrompts retrieves the workspace's prompts in creation order.
func (s *Store) ListPrompts(ctx context.Context, workspaceID string) ([]domain.Prompt, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, workspace_id, text, engine, is_active, created_at, updated_at
		FROM prompts
		WHERE workspace_id = $1
		ORDER BY created_at, id`,
		workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []domain.Prompt
	for rows.Next() {
		prompt, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		prompts = append(prompts, *prompt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prompts: %w", err)
	}
	return prompts, nil
}

// UpdatePrompt persists prompt field changes.
func (s *Store) UpdatePrompt(ctx context.Context, prompt *domain.Prompt) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE prompts
		SET text = $1, engine = $2, is_active = $3, updated_at = $4
		WHERE id = $5 AND workspace_id = $6`,
		prompt.Text, prompt.Engine, prompt.IsActive, prompt.UpdatedAt,
		prompt.ID, prompt.WorkspaceID)
	if err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrPromptNotFound, prompt.ID)
}

// DeletePrompt removes a prompt.
func (s *Store) DeletePrompt(ctx context.Context, workspaceID, promptID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM prompts WHERE id = $1 AND workspace_id = $2`,
		promptID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrPromptNotFound, promptID)
}

func scanPrompt(row pgx.Row) (*domain.Prompt, error) {
	var p domain.Prompt
	if err := row.Scan(&p.ID, &p.WorkspaceID, &p.Text, &p.Engine, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}
