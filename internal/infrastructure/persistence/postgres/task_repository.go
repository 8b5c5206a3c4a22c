package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seenlyhq/seenly/internal/domain"
)

const taskColumns = `t.id, t.brand_id, t.workstream_id, t.name, t.description,
	t.status, t.priority, t.tag_name, t.assignee_id,
	t.start_at, t.due_at, t.due_label, t.created_at, t.updated_at`

// CreateTask inserts a new task.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tasks (id, brand_id, workstream_id, name, description,
			status, priority, tag_name, assignee_id,
			start_at, due_at, due_label, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		task.ID, task.BrandID, task.WorkstreamID, task.Name, task.Description,
		string(task.Status), string(task.Priority), task.TagName, task.AssigneeID,
		task.StartAt, task.DueAt, task.DueLabel, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindTaskByID retrieves a task, scoping through its brand's workspace.
func (s *Store) FindTaskByID(ctx context.Context, workspaceID, taskID string) (*domain.Task, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		JOIN brands b ON b.id = t.brand_id
		WHERE t.id = $1 AND b.workspace_id = $2`,
		taskID, workspaceID)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListTasks retrieves the workspace's tasks in creation order, optionally
// narrowed to a brand or workstream. A zero limit fetches everything.
func (s *Store) ListTasks(ctx context.Context, workspaceID string, params domain.ListTasksParams) ([]domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN brands b ON b.id = t.brand_id
		WHERE b.workspace_id = $1`
	args := []any{workspaceID}

	if params.BrandID != nil {
		args = append(args, *params.BrandID)
		query += fmt.Sprintf(" AND t.brand_id = $%d", len(args))
	}
	if params.WorkstreamID != nil {
		args = append(args, *params.WorkstreamID)
		query += fmt.Sprintf(" AND t.workstream_id = $%d", len(args))
	}

	query += " ORDER BY t.created_at, t.id"

	if params.Limit > 0 {
		args = append(args, params.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, params.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTask persists task field changes. Scoping runs through the brand join
// so a task in another workspace reads as not found.
func (s *Store) UpdateTask(ctx context.Context, task *domain.Task) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE tasks t
		SET workstream_id = $1, name = $2, description = $3,
			status = $4, priority = $5, tag_name = $6, assignee_id = $7,
			start_at = $8, due_at = $9, due_label = $10, updated_at = $11
		WHERE t.id = $12`,
		task.WorkstreamID, task.Name, task.Description,
		string(task.Status), string(task.Priority), task.TagName, task.AssigneeID,
		task.StartAt, task.DueAt, task.DueLabel, task.UpdatedAt, task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrTaskNotFound, task.ID)
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, workspaceID, taskID string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM tasks t
		USING brands b
		WHERE t.id = $1 AND b.id = t.brand_id AND b.workspace_id = $2`,
		taskID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrTaskNotFound, taskID)
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task             domain.Task
		status, priority string
	)
	err := row.Scan(&task.ID, &task.BrandID, &task.WorkstreamID, &task.Name, &task.Description,
		&status, &priority, &task.TagName, &task.AssigneeID,
		&task.StartAt, &task.DueAt, &task.DueLabel, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	if task.StartAt != nil {
		utc := task.StartAt.UTC()
		task.StartAt = &utc
	}
	if task.DueAt != nil {
		utc := task.DueAt.UTC()
		task.DueAt = &utc
	}
	return &task, nil
}
