package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/seenlyhq/seenly/internal/domain"
)

// isUniqueViolation checks for a SQLite unique-constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CreateTag inserts a new tag.
func (s *Store) CreateTag(ctx context.Context, tag *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, brand_id, name, color, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		tag.ID, tag.BrandID, tag.Name, tag.Color, tag.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateTagName, tag.Name)
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// FindTagByID retrieves a tag, scoping through its brand's workspace.
func (s *Store) FindTagByID(ctx context.Context, workspaceID, tagID string) (*domain.Tag, error) {
	var t domain.Tag
	err := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.brand_id, t.name, t.color, t.created_at
		FROM tags t
		JOIN brands b ON b.id = t.brand_id
		WHERE t.id = ? AND b.workspace_id = ?`,
		tagID, workspaceID).Scan(&t.ID, &t.BrandID, &t.Name, &t.Color, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTagNotFound, tagID)
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

// FindTagByName retrieves a tag by name within a brand, case-insensitively.
func (s *Store) FindTagByName(ctx context.Context, brandID, name string) (*domain.Tag, error) {
	var t domain.Tag
	err := s.db.QueryRowContext(ctx, `
		SELECT id, brand_id, name, color, created_at
		FROM tags
		WHERE brand_id = ? AND lower(name) = lower(?)`,
		brandID, name).Scan(&t.ID, &t.BrandID, &t.Name, &t.Color, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTagNotFound, name)
		}
		return nil, fmt.Errorf("failed to get tag by name: %w", err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

// ListTagsByBrand retrieves a brand's tags in creation order.
func (s *Store) ListTagsByBrand(ctx context.Context, workspaceID, brandID string) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.brand_id, t.name, t.color, t.created_at
		FROM tags t
		JOIN brands b ON b.id = t.brand_id
		WHERE t.brand_id = ? AND b.workspace_id = ?
		ORDER BY t.created_at, t.id`,
		brandID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return collectTags(rows)
}

// ListTagsByWorkspace retrieves every tag across the workspace's brands.
func (s *Store) ListTagsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.brand_id, t.name, t.color, t.created_at
		FROM tags t
		JOIN brands b ON b.id = t.brand_id
		WHERE b.workspace_id = ?
		ORDER BY t.created_at, t.id`,
		workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspace tags: %w", err)
	}
	return collectTags(rows)
}

// UpdateTag persists tag field changes.
func (s *Store) UpdateTag(ctx context.Context, tag *domain.Tag) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tags SET name = ?, color = ? WHERE id = ?`,
		tag.Name, tag.Color, tag.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateTagName, tag.Name)
		}
		return fmt.Errorf("failed to update tag: %w", err)
	}
	return checkRowsAffected(result, domain.ErrTagNotFound, tag.ID)
}

// DeleteTag removes the tag row only. Tasks keep tag_name as free text.
func (s *Store) DeleteTag(ctx context.Context, workspaceID, tagID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM tags
		WHERE id = ? AND brand_id IN (SELECT id FROM brands WHERE workspace_id = ?)`,
		tagID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return checkRowsAffected(result, domain.ErrTagNotFound, tagID)
}

func collectTags(rows *sql.Rows) ([]domain.Tag, error) {
	defer rows.Close()
	var tags []domain.Tag
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.BrandID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		t.CreatedAt = t.CreatedAt.UTC()
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}
	return tags, nil
}
