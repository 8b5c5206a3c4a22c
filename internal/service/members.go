package service

import (
	"context"
	"fmt"

	"github.com/seenlyhq/seenly/internal/domain"
)

// SyncMember upserts a workspace member record from the identity provider.
// The member id is the provider's opaque subject; it is never generated here.
func (s *Service) SyncMember(ctx context.Context, workspaceID, memberID, name, avatarURL string) (*domain.Member, error) {
	if memberID == "" {
		return nil, domain.ErrInvalidID
	}

	member := &domain.Member{
		ID:          memberID,
		WorkspaceID: workspaceID,
		Name:        name,
		AvatarURL:   avatarURL,
	}

	if err := s.store.UpsertMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to upsert member: %w", err)
	}

	return member, nil
}

// ListMembers returns the workspace's cached member records, used to populate
// assignee pickers and resolve assignee filters.
func (s *Service) ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error) {
	return s.store.ListMembers(ctx, workspaceID)
}
