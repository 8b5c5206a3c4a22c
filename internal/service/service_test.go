package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenlyhq/seenly/internal/domain"
	"github.com/seenlyhq/seenly/internal/filter"
)

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return New(store, 50, 200), store
}

func seedBrand(t *testing.T, svc *Service, workspaceID, name string) *domain.Brand {
	t.Helper()
	brand, err := svc.CreateBrand(context.Background(), workspaceID, name, name+".com")
	require.NoError(t, err)
	return brand
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	brand := seedBrand(t, svc, "ws-1", "Acme")

	t.Run("minimal task gets defaults", func(t *testing.T) {
		task, err := svc.CreateTask(ctx, "ws-1", CreateTaskParams{
			BrandID: brand.ID,
			Name:    "  Write pillar page  ",
			Status:  "todo",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, "Write pillar page", task.Name)
		assert.Equal(t, domain.TaskStatusTodo, task.Status)
		assert.Equal(t, domain.TaskPriorityNone, task.Priority)
		assert.Nil(t, task.TagName)
		assert.Nil(t, task.DueLabel)
	})

	t.Run("due date derives label", func(t *testing.T) {
		due := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
		task, err := svc.CreateTask(ctx, "ws-1", CreateTaskParams{
			BrandID: brand.ID,
			Name:    "Refresh comparisons",
			Status:  "in-progress",
			DueAt:   &due,
		})
		require.NoError(t, err)
		require.NotNil(t, task.DueLabel)
		assert.Equal(t, "Fri, Mar 13", *task.DueLabel)
	})

	t.Run("tag id resolves to stored name", func(t *testing.T) {
		tag, err := svc.CreateTag(ctx, "ws-1", brand.ID, "SEO", "#10b981")
		require.NoError(t, err)

		task, err := svc.CreateTask(ctx, "ws-1", CreateTaskParams{
			BrandID: brand.ID,
			Name:    "Audit schema markup",
			Status:  "todo",
			TagID:   &tag.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, task.TagName)
		assert.Equal(t, "SEO", *task.TagName)
	})

	t.Run("unknown tag id fails", func(t *testing.T) {
		missing := "no-such-tag"
		_, err := svc.CreateTask(ctx, "ws-1", CreateTaskParams{
			BrandID: brand.ID,
			Name:    "Orphan",
			Status:  "todo",
			TagID:   &missing,
		})
		assert.ErrorIs(t, err, domain.ErrTagNotFound)
	})

	t.Run("brand in another workspace is not found", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, "ws-2", CreateTaskParams{
			BrandID: brand.ID,
			Name:    "Cross-tenant",
			Status:  "todo",
		})
		assert.ErrorIs(t, err, domain.ErrBrandNotFound)
	})

	t.Run("validation errors", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, "ws-1", CreateTaskParams{Name: "x", Status: "todo"})
		assert.ErrorIs(t, err, domain.ErrBrandRequired)

		_, err = svc.CreateTask(ctx, "ws-1", CreateTaskParams{BrandID: brand.ID, Name: "  ", Status: "todo"})
		assert.ErrorIs(t, err, domain.ErrNameRequired)

		_, err = svc.CreateTask(ctx, "ws-1", CreateTaskParams{BrandID: brand.ID, Name: "x", Status: "blocked"})
		assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	brand := seedBrand(t, svc, "ws-1", "Acme")

	task, err := svc.CreateTask(ctx, "ws-1", CreateTaskParams{
		BrandID: brand.ID,
		Name:    "Draft FAQ",
		Status:  "todo",
	})
	require.NoError(t, err)

	t.Run("only masked fields change", func(t *testing.T) {
		done := domain.TaskStatusDone
		ignored := "New name"
		updated, err := svc.UpdateTask(ctx, "ws-1", domain.UpdateTaskParams{
			TaskID:     task.ID,
			UpdateMask: []string{domain.FieldStatus},
			Status:     &done,
			Name:       &ignored, // not in mask
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusDone, updated.Status)
		assert.Equal(t, "Draft FAQ", updated.Name)
	})

	t.Run("masked nil clears optional", func(t *testing.T) {
		due := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
		updated, err := svc.UpdateTask(ctx, "ws-1", domain.UpdateTaskParams{
			TaskID:     task.ID,
			UpdateMask: []string{domain.FieldDueAt},
			DueAt:      &due,
		}, nil)
		require.NoError(t, err)
		require.NotNil(t, updated.DueLabel)

		updated, err = svc.UpdateTask(ctx, "ws-1", domain.UpdateTaskParams{
			TaskID:     task.ID,
			UpdateMask: []string{domain.FieldDueAt},
		}, nil)
		require.NoError(t, err)
		assert.Nil(t, updated.DueAt)
		assert.Nil(t, updated.DueLabel)
	})

	t.Run("masked tag resolves by id", func(t *testing.T) {
		tag, err := svc.CreateTag(ctx, "ws-1", brand.ID, "Content", "#6366f1")
		require.NoError(t, err)

		updated, err := svc.UpdateTask(ctx, "ws-1", domain.UpdateTaskParams{
			TaskID:     task.ID,
			UpdateMask: []string{domain.FieldTag},
		}, &tag.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.TagName)
		assert.Equal(t, "Content", *updated.TagName)

		// nil tag id with the field masked clears it
		updated, err = svc.UpdateTask(ctx, "ws-1", domain.UpdateTaskParams{
			TaskID:     task.ID,
			UpdateMask: []string{domain.FieldTag},
		}, nil)
		require.NoError(t, err)
		assert.Nil(t, updated.TagName)
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := svc.UpdateTask(ctx, "ws-1", domain.UpdateTaskParams{
			TaskID:     "ghost",
			UpdateMask: []string{domain.FieldStatus},
		}, nil)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestListTasksFiltering(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	brand := seedBrand(t, svc, "ws-1", "Acme")

	tag, err := svc.CreateTag(ctx, "ws-1", brand.ID, "SEO", "#10b981")
	require.NoError(t, err)

	mk := func(name, status string, tagID *string) *domain.Task {
		task, err := svc.CreateTask(ctx, "ws-1", CreateTaskParams{
			BrandID: brand.ID,
			Name:    name,
			Status:  status,
			TagID:   tagID,
		})
		require.NoError(t, err)
		return task
	}

	t1 := mk("tagged todo", "todo", &tag.ID)
	mk("untagged done", "done", nil)
	t3 := mk("untagged todo", "todo", nil)

	t.Run("no chips returns everything in order", func(t *testing.T) {
		page, err := svc.ListTasks(ctx, "ws-1", nil, domain.ListTasksParams{})
		require.NoError(t, err)
		assert.Equal(t, 3, page.TotalCount)
		assert.False(t, page.HasMore)
	})

	t.Run("status chip narrows", func(t *testing.T) {
		page, err := svc.ListTasks(ctx, "ws-1",
			[]filter.Chip{filter.NewChip(filter.KeyStatus, "todo")},
			domain.ListTasksParams{})
		require.NoError(t, err)
		require.Len(t, page.Tasks, 2)
		assert.Equal(t, t1.ID, page.Tasks[0].ID)
		assert.Equal(t, t3.ID, page.Tasks[1].ID)
	})

	t.Run("tag chip resolves id to name", func(t *testing.T) {
		page, err := svc.ListTasks(ctx, "ws-1",
			[]filter.Chip{filter.NewChip(filter.KeyTag, tag.ID)},
			domain.ListTasksParams{})
		require.NoError(t, err)
		require.Len(t, page.Tasks, 1)
		assert.Equal(t, t1.ID, page.Tasks[0].ID)
	})

	t.Run("deleted tag chip matches nothing", func(t *testing.T) {
		require.NoError(t, svc.DeleteTag(ctx, "ws-1", tag.ID))

		page, err := svc.ListTasks(ctx, "ws-1",
			[]filter.Chip{filter.NewChip(filter.KeyTag, tag.ID)},
			domain.ListTasksParams{})
		require.NoError(t, err)
		assert.Empty(t, page.Tasks)
		assert.Equal(t, 0, page.TotalCount)

		// The task itself still carries the name as free text.
		got, err := svc.GetTask(ctx, "ws-1", t1.ID)
		require.NoError(t, err)
		require.NotNil(t, got.TagName)
		assert.Equal(t, "SEO", *got.TagName)
	})

	t.Run("pagination runs after filtering", func(t *testing.T) {
		page, err := svc.ListTasks(ctx, "ws-1",
			[]filter.Chip{filter.NewChip(filter.KeyStatus, "todo")},
			domain.ListTasksParams{Limit: 1})
		require.NoError(t, err)
		require.Len(t, page.Tasks, 1)
		assert.Equal(t, 2, page.TotalCount)
		assert.True(t, page.HasMore)

		page, err = svc.ListTasks(ctx, "ws-1",
			[]filter.Chip{filter.NewChip(filter.KeyStatus, "todo")},
			domain.ListTasksParams{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page.Tasks, 1)
		assert.Equal(t, t3.ID, page.Tasks[0].ID)
		assert.False(t, page.HasMore)
	})

	t.Run("offset past end yields empty page", func(t *testing.T) {
		page, err := svc.ListTasks(ctx, "ws-1", nil, domain.ListTasksParams{Offset: 50})
		require.NoError(t, err)
		assert.Empty(t, page.Tasks)
		assert.Equal(t, 3, page.TotalCount)
	})
}

func TestTags(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	brand := seedBrand(t, svc, "ws-1", "Acme")

	t.Run("duplicate name is rejected case-insensitively", func(t *testing.T) {
		_, err := svc.CreateTag(ctx, "ws-1", brand.ID, "SEO", "#10b981")
		require.NoError(t, err)

		_, err = svc.CreateTag(ctx, "ws-1", brand.ID, "seo", "#ef4444")
		assert.ErrorIs(t, err, domain.ErrDuplicateTagName)
	})

	t.Run("rename keeps historical task text", func(t *testing.T) {
		tag, err := svc.CreateTag(ctx, "ws-1", brand.ID, "Backlinks", "#f59e0b")
		require.NoError(t, err)

		task, err := svc.CreateTask(ctx, "ws-1", CreateTaskParams{
			BrandID: brand.ID,
			Name:    "Outreach batch",
			Status:  "todo",
			TagID:   &tag.ID,
		})
		require.NoError(t, err)

		newName := "Link building"
		_, err = svc.UpdateTag(ctx, "ws-1", domain.UpdateTagParams{
			TagID:      tag.ID,
			UpdateMask: []string{"name"},
			Name:       &newName,
		})
		require.NoError(t, err)

		got, err := svc.GetTask(ctx, "ws-1", task.ID)
		require.NoError(t, err)
		require.NotNil(t, got.TagName)
		assert.Equal(t, "Backlinks", *got.TagName)
	})

	t.Run("rename onto itself is allowed", func(t *testing.T) {
		tag, err := svc.CreateTag(ctx, "ws-1", brand.ID, "Reporting", "#8b5cf6")
		require.NoError(t, err)

		same := "reporting"
		updated, err := svc.UpdateTag(ctx, "ws-1", domain.UpdateTagParams{
			TagID:      tag.ID,
			UpdateMask: []string{"name"},
			Name:       &same,
		})
		require.NoError(t, err)
		assert.Equal(t, "reporting", updated.Name)
	})
}

func TestBrands(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	t.Run("update mask", func(t *testing.T) {
		brand := seedBrand(t, svc, "ws-1", "Acme")

		newDomain := "acme.io"
		updated, err := svc.UpdateBrand(ctx, "ws-1", domain.UpdateBrandParams{
			BrandID:    brand.ID,
			UpdateMask: []string{"domain"},
			Domain:     &newDomain,
		})
		require.NoError(t, err)
		assert.Equal(t, "Acme", updated.Name)
		assert.Equal(t, "acme.io", updated.Domain)
	})

	t.Run("workspace isolation", func(t *testing.T) {
		brand := seedBrand(t, svc, "ws-1", "Globex")

		_, err := svc.GetBrand(ctx, "ws-2", brand.ID)
		assert.ErrorIs(t, err, domain.ErrBrandNotFound)

		err = svc.DeleteBrand(ctx, "ws-2", brand.ID)
		assert.ErrorIs(t, err, domain.ErrBrandNotFound)
	})

	t.Run("list pagination clamps", func(t *testing.T) {
		svc, _ := newTestService(t)
		for _, name := range []string{"A", "B", "C"} {
			seedBrand(t, svc, "ws-p", name)
		}

		page, err := svc.ListBrands(ctx, "ws-p", domain.ListBrandsParams{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, page.Brands, 2)
		assert.Equal(t, 3, page.TotalCount)
		assert.True(t, page.HasMore)
	})
}

func TestContent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	brand := seedBrand(t, svc, "ws-1", "Acme")

	t.Run("defaults to draft", func(t *testing.T) {
		content, err := svc.CreateContent(ctx, "ws-1", brand.ID, "Best CRM tools", "intro...", "")
		require.NoError(t, err)
		assert.Equal(t, domain.ContentStatusDraft, content.Status)
	})

	t.Run("publish via mask", func(t *testing.T) {
		content, err := svc.CreateContent(ctx, "ws-1", brand.ID, "Pricing guide", "", "draft")
		require.NoError(t, err)

		published := domain.ContentStatusPublished
		updated, err := svc.UpdateContent(ctx, "ws-1", domain.UpdateContentParams{
			ContentID:  content.ID,
			UpdateMask: []string{"status"},
			Status:     &published,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ContentStatusPublished, updated.Status)
		assert.Equal(t, "Pricing guide", updated.Title)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := svc.CreateContent(ctx, "ws-1", brand.ID, "Bad", "", "archived")
		assert.ErrorIs(t, err, domain.ErrInvalidContentStatus)
	})
}

func TestSubscription(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	t.Run("unknown workspace reads as free plan", func(t *testing.T) {
		sub, err := svc.GetSubscription(ctx, "ws-new")
		require.NoError(t, err)
		assert.Equal(t, "free", sub.Plan)
		assert.Equal(t, "active", sub.Status)
	})

	t.Run("billing event upserts the cache", func(t *testing.T) {
		periodEnd := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
		err := svc.HandleBillingEvent(ctx, BillingEvent{
			WorkspaceID:      "ws-1",
			Plan:             "growth",
			Status:           "active",
			CurrentPeriodEnd: &periodEnd,
			PromptUsage:      120,
			PromptLimit:      500,
		})
		require.NoError(t, err)

		sub, err := svc.GetSubscription(ctx, "ws-1")
		require.NoError(t, err)
		assert.Equal(t, "growth", sub.Plan)
		assert.Equal(t, 120, sub.PromptUsage)
		require.NotNil(t, sub.CurrentPeriodEnd)
		assert.True(t, periodEnd.Equal(*sub.CurrentPeriodEnd))
	})

	t.Run("event without workspace is rejected", func(t *testing.T) {
		err := svc.HandleBillingEvent(ctx, BillingEvent{Plan: "growth"})
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})
}

func TestPrompts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	t.Run("create trims and starts active", func(t *testing.T) {
		prompt, err := svc.CreatePrompt(ctx, "ws-1", "  best crm for startups  ", "chatgpt")
		require.NoError(t, err)
		assert.Equal(t, "best crm for startups", prompt.Text)
		assert.True(t, prompt.IsActive)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		_, err := svc.CreatePrompt(ctx, "ws-1", "   ", "chatgpt")
		assert.ErrorIs(t, err, domain.ErrPromptTextRequired)
	})

	t.Run("deactivate via mask", func(t *testing.T) {
		prompt, err := svc.CreatePrompt(ctx, "ws-1", "top seo agencies", "perplexity")
		require.NoError(t, err)

		inactive := false
		updated, err := svc.UpdatePrompt(ctx, "ws-1", domain.UpdatePromptParams{
			PromptID:   prompt.ID,
			UpdateMask: []string{"is_active"},
			IsActive:   &inactive,
		})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
		assert.Equal(t, "top seo agencies", updated.Text)
	})

	t.Run("workspace isolation", func(t *testing.T) {
		prompt, err := svc.CreatePrompt(ctx, "ws-1", "compare analytics tools", "gemini")
		require.NoError(t, err)

		_, err = svc.GetPrompt(ctx, "ws-2", prompt.ID)
		assert.ErrorIs(t, err, domain.ErrPromptNotFound)
	})
}

func TestIntegrations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	t.Run("connect and disconnect", func(t *testing.T) {
		integration, err := svc.ConnectIntegration(ctx, "ws-1", "search-console", map[string]any{
			"property": "sc-domain:acme.com",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.IntegrationStatusConnected, integration.Status)

		errStatus := domain.IntegrationStatusError
		updated, err := svc.UpdateIntegration(ctx, "ws-1", domain.UpdateIntegrationParams{
			IntegrationID: integration.ID,
			UpdateMask:    []string{"status"},
			Status:        &errStatus,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.IntegrationStatusError, updated.Status)
		assert.Equal(t, "sc-domain:acme.com", updated.Config["property"])

		require.NoError(t, svc.DisconnectIntegration(ctx, "ws-1", integration.ID))
		_, err = svc.GetIntegration(ctx, "ws-1", integration.ID)
		assert.ErrorIs(t, err, domain.ErrIntegrationNotFound)
	})

	t.Run("provider required", func(t *testing.T) {
		_, err := svc.ConnectIntegration(ctx, "ws-1", "", nil)
		assert.ErrorIs(t, err, domain.ErrProviderRequired)
	})
}

func TestMembers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	member, err := svc.SyncMember(ctx, "ws-1", "user_2abc", "Dana", "https://img.example/dana.png")
	require.NoError(t, err)
	assert.Equal(t, "Dana", member.Name)

	// Re-sync overwrites the cached record.
	_, err = svc.SyncMember(ctx, "ws-1", "user_2abc", "Dana K", "")
	require.NoError(t, err)

	members, err := svc.ListMembers(ctx, "ws-1")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Dana K", members[0].Name)

	_, err = svc.SyncMember(ctx, "ws-1", "", "Nameless", "")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
