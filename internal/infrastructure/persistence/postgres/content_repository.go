package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seenlyhq/seenly/internal/domain"
)

// CreateContent inserts a new content piece.
func (s *Store) CreateContent(ctx context.Context, content *domain.Content) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO content (id, brand_id, title, body, status, asset_object, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		content.ID, content.BrandID, content.Title, content.Body,
		string(content.Status), content.AssetObject, content.CreatedAt, content.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

// FindContentByID retrieves a content piece, scoping through its brand's workspace.
func (s *Store) FindContentByID(ctx context.Context, workspaceID, contentID string) (*domain.Content, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT c.id, c.brand_id, c.title, c.body, c.status, c.asset_object, c.created_at, c.updated_at
		FROM content c
		JOIN brands b ON b.id = c.brand_id
		WHERE c.id = $1 AND b.workspace_id = $2`,
		contentID, workspaceID)

	content, err := scanContent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrContentNotFound, contentID)
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return content, nil
}

// ListContentByBrand retrieves a brand's content in creation order.
func (s *Store) ListContentByBrand(ctx context.Context, workspaceID, brandID string) ([]domain.Content, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.brand_id, c.title, c.body, c.status, c.asset_object, c.created_at, c.updated_at
		FROM content c
		JOIN brands b ON b.id = c.brand_id
		WHERE c.brand_id = $1 AND b.workspace_id = $2
		ORDER BY c.created_at, c.id`,
		brandID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	defer rows.Close()

	var pieces []domain.Content
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		pieces = append(pieces, *content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	return pieces, nil
}

// UpdateContent persists content field changes.
func (s *Store) UpdateContent(ctx context.Context, content *domain.Content) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE content
		SET title = $1, body = $2, status = $3, asset_object = $4, updated_at = $5
		WHERE id = $6`,
		content.Title, content.Body, string(content.Status), content.AssetObject,
		content.UpdatedAt, content.ID)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrContentNotFound, content.ID)
}

// DeleteContent removes a content piece.
func (s *Store) DeleteContent(ctx context.Context, workspaceID, contentID string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM content c
		USING brands b
		WHERE c.id = $1 AND b.id = c.brand_id AND b.workspace_id = $2`,
		contentID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrContentNotFound, contentID)
}

func scanContent(row pgx.Row) (*domain.Content, error) {
	var (
		c      domain.Content
		status string
	)
	if err := row.Scan(&c.ID, &c.BrandID, &c.Title, &c.Body, &status, &c.AssetObject, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Status = domain.ContentStatus(status)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}
