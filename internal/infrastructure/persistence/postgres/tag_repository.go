package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seenlyhq/seenly/internal/domain"
)

// CreateTag inserts a new tag. Name uniqueness within a brand is enforced by
// a case-insensitive unique index.
func (s *Store) CreateTag(ctx context.Context, tag *domain.Tag) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tags (id, brand_id, name, color, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		tag.ID, tag.BrandID, tag.Name, tag.Color, tag.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "idx_tags_brand_name") {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateTagName, tag.Name)
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// FindTagByID retrieves a tag, scoping through its brand's workspace.
func (s *Store) FindTagByID(ctx context.Context, workspaceID, tagID string) (*domain.Tag, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT t.id, t.brand_id, t.name, t.color, t.created_at
		FROM tags t
		JOIN brands b ON b.id = t.brand_id
		WHERE t.id = $1 AND b.workspace_id = $2`,
		tagID, workspaceID)

	tag, err := scanTag(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTagNotFound, tagID)
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return tag, nil
}

// FindTagByName retrieves a tag by name within a brand, case-insensitively.
func (s *Store) FindTagByName(ctx context.Context, brandID, name string) (*domain.Tag, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, brand_id, name, color, created_at
		FROM tags
		WHERE brand_id = $1 AND lower(name) = lower($2)`,
		brandID, name)

	tag, err := scanTag(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTagNotFound, name)
		}
		return nil, fmt.Errorf("failed to get tag by name: %w", err)
	}
	return tag, nil
}

// ListTagsByBrand retrieves a brand's tags in creation order.
func (s *Store) ListTagsByBrand(ctx context.Context, workspaceID, brandID string) ([]domain.Tag, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.id, t.brand_id, t.name, t.color, t.created_at
		FROM tags t
		JOIN brands b ON b.id = t.brand_id
		WHERE t.brand_id = $1 AND b.workspace_id = $2
		ORDER BY t.created_at, t.id`,
		brandID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return collectTags(rows)
}

// ListTagsByWorkspace retrieves every tag across the workspace's brands,
// used to resolve tag filter chips.
func (s *Store) ListTagsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Tag, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.id, t.brand_id, t.name, t.color, t.created_at
		FROM tags t
		JOIN brands b ON b.id = t.brand_id
		WHERE b.workspace_id = $1
		ORDER BY t.created_at, t.id`,
		workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspace tags: %w", err)
	}
	return collectTags(rows)
}

// UpdateTag persists tag field changes.
func (s *Store) UpdateTag(ctx context.Context, tag *domain.Tag) error {
	cmdTag, err := s.pool.Exec(ctx, `
		UPDATE tags SET name = $1, color = $2 WHERE id = $3`,
		tag.Name, tag.Color, tag.ID)
	if err != nil {
		if isUniqueViolation(err, "idx_tags_brand_name") {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateTagName, tag.Name)
		}
		return fmt.Errorf("failed to update tag: %w", err)
	}
	return checkRowsAffected(cmdTag, domain.ErrTagNotFound, tag.ID)
}

// DeleteTag removes the tag row only. Tasks keep tag_name as free text.
func (s *Store) DeleteTag(ctx context.Context, workspaceID, tagID string) error {
	cmdTag, err := s.pool.Exec(ctx, `
		DELETE FROM tags t
		USING brands b
		WHERE t.id = $1 AND b.id = t.brand_id AND b.workspace_id = $2`,
		tagID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return checkRowsAffected(cmdTag, domain.ErrTagNotFound, tagID)
}

func scanTag(row pgx.Row) (*domain.Tag, error) {
	var t domain.Tag
	if err := row.Scan(&t.ID, &t.BrandID, &t.Name, &t.Color, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func collectTags(rows pgx.Rows) ([]domain.Tag, error) {
	defer rows.Close()
	var tags []domain.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, *tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}
	return tags, nil
}
