package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seenlyhq/seenly/internal/domain"
	"github.com/seenlyhq/seenly/internal/filter"
)

// CreateTaskParams carries the caller-supplied fields for a new task.
// BrandID, Name, and Status are required; everything else is optional.
type CreateTaskParams struct {
	BrandID      string
	WorkstreamID *string

	Name        string
	Description *string
	Status      string
	Priority    string

	// TagID references a tag; it is resolved to the tag's name at creation
	// time and the name is what the task stores.
	TagID      *string
	AssigneeID *string
	StartAt    *time.Time
	DueAt      *time.Time
}

// CreateTask validates and persists a new task for the workspace.
func (s *Service) CreateTask(ctx context.Context, workspaceID string, params CreateTaskParams) (*domain.Task, error) {
	if params.BrandID == "" {
		return nil, domain.ErrBrandRequired
	}

	name, err := domain.NewName(params.Name)
	if err != nil {
		return nil, err
	}

	status, err := domain.NewTaskStatus(params.Status)
	if err != nil {
		return nil, err
	}

	priority, err := domain.NewTaskPriority(params.Priority)
	if err != nil {
		return nil, err
	}

	// Ownership check doubles as existence check: a brand in another
	// workspace reads as not found.
	if _, err := s.store.FindBrandByID(ctx, workspaceID, params.BrandID); err != nil {
		return nil, err
	}

	tagName, err := s.resolveTagName(ctx, workspaceID, params.TagID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate task ID: %w", err)
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:           id.String(),
		BrandID:      params.BrandID,
		WorkstreamID: params.WorkstreamID,
		Name:         name.String(),
		Description:  params.Description,
		Status:       status,
		Priority:     priority,
		TagName:      tagName,
		AssigneeID:   params.AssigneeID,
		StartAt:      params.StartAt,
		DueAt:        params.DueAt,
		DueLabel:     domain.DeriveDueLabel(params.DueAt),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask fetches a single task scoped to the workspace.
func (s *Service) GetTask(ctx context.Context, workspaceID, taskID string) (*domain.Task, error) {
	return s.store.FindTaskByID(ctx, workspaceID, taskID)
}

// UpdateTask applies a partial update. Only fields named in the update mask
// change; mutations are last-write-wins. TagID, when the tag field is masked,
// is resolved to a name first (nil clears the tag).
func (s *Service) UpdateTask(ctx context.Context, workspaceID string, params domain.UpdateTaskParams, tagID *string) (*domain.Task, error) {
	task, err := s.store.FindTaskByID(ctx, workspaceID, params.TaskID)
	if err != nil {
		return nil, err
	}

	for _, field := range params.UpdateMask {
		if field != domain.FieldTag {
			continue
		}
		tagName, err := s.resolveTagName(ctx, workspaceID, tagID)
		if err != nil {
			return nil, err
		}
		params.TagName = tagName
	}

	if params.Name != nil {
		name, err := domain.NewName(*params.Name)
		if err != nil {
			return nil, err
		}
		trimmed := name.String()
		params.Name = &trimmed
	}

	params.Apply(task, time.Now().UTC())

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task. No soft delete.
func (s *Service) DeleteTask(ctx context.Context, workspaceID, taskID string) error {
	return s.store.DeleteTask(ctx, workspaceID, taskID)
}

// ListTasks returns the chip-filtered task page for the workspace.
//
// The repository narrows by brand/workstream only; the chip predicate runs in
// memory over the fetched collection together with the live tag set, so a
// chip pointing at a deleted tag silently matches nothing.
func (s *Service) ListTasks(ctx context.Context, workspaceID string, chips []filter.Chip, params domain.ListTasksParams) (*domain.PagedTasks, error) {
	limit := s.pageSize(params.Limit)
	offset := max(params.Offset, 0)

	fetchParams := params
	fetchParams.Limit = 0 // fetch the full window; pagination happens after filtering
	fetchParams.Offset = 0

	tasks, err := s.store.ListTasks(ctx, workspaceID, fetchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tags, err := s.store.ListTagsByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	visible := filter.Visible(tasks, tags, chips)

	total := len(visible)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)

	return &domain.PagedTasks{
		Tasks:      visible[offset:end],
		TotalCount: total,
		HasMore:    end < total,
	}, nil
}

// resolveTagName maps an optional tag id to the tag's stored name.
// A nil id stays nil; an id that no longer resolves is an explicit error at
// write time (reads degrade silently instead, see the filter package).
func (s *Service) resolveTagName(ctx context.Context, workspaceID string, tagID *string) (*string, error) {
	if tagID == nil {
		return nil, nil
	}
	tag, err := s.store.FindTagByID(ctx, workspaceID, *tagID)
	if err != nil {
		return nil, err
	}
	return &tag.Name, nil
}
