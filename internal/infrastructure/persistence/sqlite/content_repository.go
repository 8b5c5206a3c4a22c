package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seenlyhq/seenly/internal/domain"
)

// CreateContent inserts a new content piece.
func (s *Store) CreateContent(ctx context.Context, content *domain.Content) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO content (id, brand_id, title, body, status, asset_object, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		content.ID, content.BrandID, content.Title, content.Body,
		string(content.Status), nullString(content.AssetObject),
		content.CreatedAt.UTC(), content.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}
	return nil
}

// FindContentByID retrieves a content piece, scoping through its brand's workspace.
func (s *Store) FindContentByID(ctx context.Context, workspaceID, contentID string) (*domain.Content, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.brand_id, c.title, c.body, c.status, c.asset_object, c.created_at, c.updated_at
		FROM content c
		JOIN brands b ON b.id = c.brand_id
		WHERE c.id = ? AND b.workspace_id = ?`,
		contentID, workspaceID)

	content, err := scanContent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrContentNotFound, contentID)
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return content, nil
}

// ListContentByBrand retrieves a brand's content in creation order.
func (s *Store) ListContentByBrand(ctx context.Context, workspaceID, brandID string) ([]domain.Content, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.brand_id, c.title, c.body, c.status, c.asset_object, c.created_at, c.updated_at
		FROM content c
		JOIN brands b ON b.id = c.brand_id
		WHERE c.brand_id = ? AND b.workspace_id = ?
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
	result, err := s.db.ExecContext(ctx, `
		UPDATE content
		SET title = ?, body = ?, status = ?, asset_object = ?, updated_at = ?
		WHERE id = ?`,
		content.Title, content.Body, string(content.Status),
		nullString(content.AssetObject), content.UpdatedAt.UTC(), content.ID)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}
	return checkRowsAffected(result, domain.ErrContentNotFound, content.ID)
}

// DeleteContent removes a content piece.
func (s *Store) DeleteContent(ctx context.Context, workspaceID, contentID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM content
		WHERE id = ? AND brand_id IN (SELECT id FROM brands WHERE workspace_id = ?)`,
		contentID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return checkRowsAffected(result, domain.ErrContentNotFound, contentID)
}

func scanContent(row rowScanner) (*domain.Content, error) {
	var (
		c           domain.Content
		status      string
		assetObject sql.NullString
	)
	if err := row.Scan(&c.ID, &c.BrandID, &c.Title, &c.Body, &status, &assetObject, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Status = domain.ContentStatus(status)
	c.AssetObject = stringPtr(assetObject)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}
