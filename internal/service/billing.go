package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seenlyhq/seenly/internal/domain"
)

// BillingEvent is a normalized webhook payload from the billing provider.
// The provider is the source of truth; this service only caches its view.
type BillingEvent struct {
	WorkspaceID      string
	Plan             string
	Status           string
	CurrentPeriodEnd *time.Time
	PromptUsage      int
	PromptLimit      int
}

// GetSubscription returns the cached subscription for the workspace. A
// workspace that has never received a billing event reads as a free plan
// rather than an error.
func (s *Service) GetSubscription(ctx context.Context, workspaceID string) (*domain.Subscription, error) {
	sub, err := s.store.GetSubscription(ctx, workspaceID)
	if errors.Is(err, domain.ErrSubscriptionNotFound) {
		return &domain.Subscription{
			WorkspaceID: workspaceID,
			Plan:        "free",
			Status:      "active",
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// HandleBillingEvent upserts the cached subscription row from a provider
// webhook. Dashboard reads never write this row.
func (s *Service) HandleBillingEvent(ctx context.Context, event BillingEvent) error {
	if event.WorkspaceID == "" {
		return fmt.Errorf("billing event missing workspace: %w", domain.ErrInvalidID)
	}

	sub := &domain.Subscription{
		WorkspaceID:      event.WorkspaceID,
		Plan:             event.Plan,
		Status:           event.Status,
		CurrentPeriodEnd: event.CurrentPeriodEnd,
		PromptUsage:      event.PromptUsage,
		PromptLimit:      event.PromptLimit,
		UpdatedAt:        time.Now().UTC(),
	}

	if err := s.store.UpsertSubscription(ctx, sub); err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}
