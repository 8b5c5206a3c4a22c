package service

import (
	"context"
	"strings"
	"sync"

	"github.com/seenlyhq/seenly/internal/domain"
)

// fakeStore is an in-memory Store for service tests. Workspace scoping
// mirrors the real repositories: a row owned by another workspace reads as
// not found.
type fakeStore struct {
	mu sync.Mutex

	brands        map[string]*domain.Brand
	tasks         map[string]*domain.Task
	taskOrder     []string
	tags          map[string]*domain.Tag
	content       map[string]*domain.Content
	integrations  map[string]*domain.Integration
	subscriptions map[string]*domain.Subscription
	prompts       map[string]*domain.Prompt
	members       map[string]*domain.Member
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		brands:        make(map[string]*domain.Brand),
		tasks:         make(map[string]*domain.Task),
		tags:          make(map[string]*domain.Tag),
		content:       make(map[string]*domain.Content),
		integrations:  make(map[string]*domain.Integration),
		subscriptions: make(map[string]*domain.Subscription),
		prompts:       make(map[string]*domain.Prompt),
		members:       make(map[string]*domain.Member),
	}
}

// brandWorkspace reports the workspace owning a brand, or "" if unknown.
func (f *fakeStore) brandWorkspace(brandID string) string {
	if b, ok := f.brands[brandID]; ok {
		return b.WorkspaceID
	}
	return ""
}

func (f *fakeStore) CreateBrand(_ context.Context, brand *domain.Brand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *brand
	f.brands[brand.ID] = &copied
	return nil
}

func (f *fakeStore) FindBrandByID(_ context.Context, workspaceID, brandID string) (*domain.Brand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.brands[brandID]
	if !ok || b.WorkspaceID != workspaceID {
		return nil, domain.ErrBrandNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeStore) ListBrands(_ context.Context, workspaceID string, params domain.ListBrandsParams) (*domain.PagedBrands, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*domain.Brand
	for _, b := range f.brands {
		if b.WorkspaceID == workspaceID {
			copied := *b
			all = append(all, &copied)
		}
	}
	total := len(all)
	offset := min(params.Offset, total)
	end := min(offset+params.Limit, total)
	return &domain.PagedBrands{
		Brands:     all[offset:end],
		TotalCount: total,
		HasMore:    end < total,
	}, nil
}

func (f *fakeStore) UpdateBrand(_ context.Context, brand *domain.Brand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.brands[brand.ID]; !ok {
		return domain.ErrBrandNotFound
	}
	copied := *brand
	f.brands[brand.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteBrand(_ context.Context, workspaceID, brandID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.brands[brandID]
	if !ok || b.WorkspaceID != workspaceID {
		return domain.ErrBrandNotFound
	}
	delete(f.brands, brandID)
	return nil
}

func (f *fakeStore) CreateTask(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *task
	f.tasks[task.ID] = &copied
	f.taskOrder = append(f.taskOrder, task.ID)
	return nil
}

func (f *fakeStore) FindTaskByID(_ context.Context, workspaceID, taskID string) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok || f.brandWorkspace(t.BrandID) != workspaceID {
		return nil, domain.ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeStore) ListTasks(_ context.Context, workspaceID string, params domain.ListTasksParams) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Task
	for _, id := range f.taskOrder {
		t, ok := f.tasks[id]
		if !ok || f.brandWorkspace(t.BrandID) != workspaceID {
			continue
		}
		if params.BrandID != nil && t.BrandID != *params.BrandID {
			continue
		}
		if params.WorkstreamID != nil {
			if t.WorkstreamID == nil || *t.WorkstreamID != *params.WorkstreamID {
				continue
			}
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeStore) UpdateTask(_ context.Context, task *domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteTask(_ context.Context, workspaceID, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[taskID]
	if !ok || f.brandWorkspace(t.BrandID) != workspaceID {
		return domain.ErrTaskNotFound
	}
	delete(f.tasks, taskID)
	return nil
}

func (f *fakeStore) CreateTag(_ context.Context, tag *domain.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *tag
	f.tags[tag.ID] = &copied
	return nil
}

func (f *fakeStore) FindTagByID(_ context.Context, workspaceID, tagID string) (*domain.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tags[tagID]
	if !ok || f.brandWorkspace(t.BrandID) != workspaceID {
		return nil, domain.ErrTagNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeStore) FindTagByName(_ context.Context, brandID, name string) (*domain.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tags {
		if t.BrandID == brandID && strings.EqualFold(t.Name, name) {
			copied := *t
			return &copied, nil
		}
	}
	return nil, domain.ErrTagNotFound
}

func (f *fakeStore) ListTagsByBrand(_ context.Context, workspaceID, brandID string) ([]domain.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Tag
	for _, t := range f.tags {
		if t.BrandID == brandID && f.brandWorkspace(brandID) == workspaceID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeStore) ListTagsByWorkspace(_ context.Context, workspaceID string) ([]domain.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Tag
	for _, t := range f.tags {
		if f.brandWorkspace(t.BrandID) == workspaceID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateTag(_ context.Context, tag *domain.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tags[tag.ID]; !ok {
		return domain.ErrTagNotFound
	}
	copied := *tag
	f.tags[tag.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteTag(_ context.Context, workspaceID, tagID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tags[tagID]
	if !ok || f.brandWorkspace(t.BrandID) != workspaceID {
		return domain.ErrTagNotFound
	}
	delete(f.tags, tagID)
	return nil
}

func (f *fakeStore) CreateContent(_ context.Context, content *domain.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *content
	f.content[content.ID] = &copied
	return nil
}

func (f *fakeStore) FindContentByID(_ context.Context, workspaceID, contentID string) (*domain.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.content[contentID]
	if !ok || f.brandWorkspace(c.BrandID) != workspaceID {
		return nil, domain.ErrContentNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeStore) ListContentByBrand(_ context.Context, workspaceID, brandID string) ([]domain.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Content
	for _, c := range f.content {
		if c.BrandID == brandID && f.brandWorkspace(brandID) == workspaceID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateContent(_ context.Context, content *domain.Content) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.content[content.ID]; !ok {
		return domain.ErrContentNotFound
	}
	copied := *content
	f.content[content.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteContent(_ context.Context, workspaceID, contentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.content[contentID]
	if !ok || f.brandWorkspace(c.BrandID) != workspaceID {
		return domain.ErrContentNotFound
	}
	delete(f.content, contentID)
	return nil
}

func (f *fakeStore) CreateIntegration(_ context.Context, integration *domain.Integration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *integration
	f.integrations[integration.ID] = &copied
	return nil
}

func (f *fakeStore) FindIntegrationByID(_ context.Context, workspaceID, integrationID string) (*domain.Integration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.integrations[integrationID]
	if !ok || i.WorkspaceID != workspaceID {
		return nil, domain.ErrIntegrationNotFound
	}
	copied := *i
	return &copied, nil
}

func (f *fakeStore) ListIntegrations(_ context.Context, workspaceID string) ([]domain.Integration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Integration
	for _, i := range f.integrations {
		if i.WorkspaceID == workspaceID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateIntegration(_ context.Context, integration *domain.Integration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.integrations[integration.ID]; !ok {
		return domain.ErrIntegrationNotFound
	}
	copied := *integration
	f.integrations[integration.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteIntegration(_ context.Context, workspaceID, integrationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.integrations[integrationID]
	if !ok || i.WorkspaceID != workspaceID {
		return domain.ErrIntegrationNotFound
	}
	delete(f.integrations, integrationID)
	return nil
}

func (f *fakeStore) GetSubscription(_ context.Context, workspaceID string) (*domain.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subscriptions[workspaceID]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStore) UpsertSubscription(_ context.Context, sub *domain.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *sub
	f.subscriptions[sub.WorkspaceID] = &copied
	return nil
}

func (f *fakeStore) CreatePrompt(_ context.Context, prompt *domain.Prompt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *prompt
	f.prompts[prompt.ID] = &copied
	return nil
}

func (f *fakeStore) FindPromptByID(_ context.Context, workspaceID, promptID string) (*domain.Prompt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prompts[promptID]
	if !ok || p.WorkspaceID != workspaceID {
		return nil, domain.ErrPromptNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) ListPrompts(_ context.Context, workspaceID string) ([]domain.Prompt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Prompt
	for _, p := range f.prompts {
		if p.WorkspaceID == workspaceID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdatePrompt(_ context.Context, prompt *domain.Prompt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.prompts[prompt.ID]; !ok {
		return domain.ErrPromptNotFound
	}
	copied := *prompt
	f.prompts[prompt.ID] = &copied
	return nil
}

func (f *fakeStore) DeletePrompt(_ context.Context, workspaceID, promptID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prompts[promptID]
	if !ok || p.WorkspaceID != workspaceID {
		return domain.ErrPromptNotFound
	}
	delete(f.prompts, promptID)
	return nil
}

func (f *fakeStore) UpsertMember(_ context.Context, member *domain.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *member
	f.members[member.ID] = &copied
	return nil
}

func (f *fakeStore) ListMembers(_ context.Context, workspaceID string) ([]domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Member
	for _, m := range f.members {
		if m.WorkspaceID == workspaceID {
			out = append(out, *m)
		}
	}
	return out, nil
}
