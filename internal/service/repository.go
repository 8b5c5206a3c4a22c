package service

import (
	"context"

	"github.com/seenlyhq/seenly/internal/domain"
)

// Store is the persistence surface the application services depend on.
// Every lookup is scoped by workspace: a row belonging to another tenant is
// indistinguishable from a missing row.
type Store interface {
	// Brands
	CreateBrand(ctx context.Context, brand *domain.Brand) error
	FindBrandByID(ctx context.Context, workspaceID, brandID string) (*domain.Brand, error)
	ListBrands(ctx context.Context, workspaceID string, params domain.ListBrandsParams) (*domain.PagedBrands, error)
	UpdateBrand(ctx context.Context, brand *domain.Brand) error
	DeleteBrand(ctx context.Context, workspaceID, brandID string) error

	// Tasks
	CreateTask(ctx context.Context, task *domain.Task) error
	FindTaskByID(ctx context.Context, workspaceID, taskID string) (*domain.Task, error)
	// ListTasks returns the workspace's tasks in creation order, optionally
	// narrowed to a brand or workstream. Chip filtering happens above.
	ListTasks(ctx context.Context, workspaceID string, params domain.ListTasksParams) ([]domain.Task, error)
	UpdateTask(ctx context.Context, task *domain.Task) error
	DeleteTask(ctx context.Context, workspaceID, taskID string) error

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	FindTagByID(ctx context.Context, workspaceID, tagID string) (*domain.Tag, error)
	FindTagByName(ctx context.Context, brandID, name string) (*domain.Tag, error)
	ListTagsByBrand(ctx context.Context, workspaceID, brandID string) ([]domain.Tag, error)
	ListTagsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Tag, error)
	UpdateTag(ctx context.Context, tag *domain.Tag) error
	DeleteTag(ctx context.Context, workspaceID, tagID string) error

	// Content
	CreateContent(ctx context.Context, content *domain.Content) error
	FindContentByID(ctx context.Context, workspaceID, contentID string) (*domain.Content, error)
	ListContentByBrand(ctx context.Context, workspaceID, brandID string) ([]domain.Content, error)
	UpdateContent(ctx context.Context, content *domain.Content) error
	DeleteContent(ctx context.Context, workspaceID, contentID string) error

	// Integrations
	CreateIntegration(ctx context.Context, integration *domain.Integration) error
	FindIntegrationByID(ctx context.Context, workspaceID, integrationID string) (*domain.Integration, error)
	ListIntegrations(ctx context.Context, workspaceID string) ([]domain.Integration, error)
	UpdateIntegration(ctx context.Context, integration *domain.Integration) error
	DeleteIntegration(ctx context.Context, workspaceID, integrationID string) error

	// Subscription (one cached row per workspace)
	GetSubscription(ctx context.Context, workspaceID string) (*domain.Subscription, error)
	UpsertSubscription(ctx context.Context, sub *domain.Subscription) error

	// Prompts
	CreatePrompt(ctx context.Context, prompt *domain.Prompt) error
	FindPromptByID(ctx context.Context, workspaceID, promptID string) (*domain.Prompt, error)
	ListPrompts(ctx context.Context, workspaceID string) ([]domain.Prompt, error)
	UpdatePrompt(ctx context.Context, prompt *domain.Prompt) error
	DeletePrompt(ctx context.Context, workspaceID, promptID string) error

	// Members (read-through cache of the identity provider)
	UpsertMember(ctx context.Context, member *domain.Member) error
	ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error)
}
