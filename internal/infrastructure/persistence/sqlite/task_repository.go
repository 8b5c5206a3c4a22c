package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seenlyhq/seenly/internal/domain"
)

const taskColumns = `t.id, t.brand_id, t.workstream_id, t.name, t.description,
	t.status, t.priority, t.tag_name, t.assignee_id,
	t.start_at, t.due_at, t.due_label, t.created_at, t.updated_at`

// CreateTask inserts a new task.
func (s *Store) CreateTask(ctx context.Context, task *domain.Task) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, brand_id, workstream_id, name, description,
			status, priority, tag_name, assignee_id,
			start_at, due_at, due_label, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.BrandID, nullString(task.WorkstreamID), task.Name, nullString(task.Description),
		string(task.Status), string(task.Priority), nullString(task.TagName), nullString(task.AssigneeID),
		nullTime(task.StartAt), nullTime(task.DueAt), nullString(task.DueLabel),
		task.CreatedAt.UTC(), task.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindTaskByID retrieves a task, scoping through its brand's workspace.
func (s *Store) FindTaskByID(ctx context.Context, workspaceID, taskID string) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		JOIN brands b ON b.id = t.brand_id
		WHERE t.id = ? AND b.workspace_id = ?`,
		taskID, workspaceID)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		WHERE b.workspace_id = ?`
	args := []any{workspaceID}

	if params.BrandID != nil {
		query += " AND t.brand_id = ?"
		args = append(args, *params.BrandID)
	}
	if params.WorkstreamID != nil {
		query += " AND t.workstream_id = ?"
		args = append(args, *params.WorkstreamID)
	}

	query += " ORDER BY t.created_at, t.id"

	if params.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, params.Limit, params.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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

// UpdateTask persists task field changes.
func (s *Store) UpdateTask(ctx context.Context, task *domain.Task) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET workstream_id = ?, name = ?, description = ?,
			status = ?, priority = ?, tag_name = ?, assignee_id = ?,
			start_at = ?, due_at = ?, due_label = ?, updated_at = ?
		WHERE id = ?`,
		nullString(task.WorkstreamID), task.Name, nullString(task.Description),
		string(task.Status), string(task.Priority), nullString(task.TagName), nullString(task.AssigneeID),
		nullTime(task.StartAt), nullTime(task.DueAt), nullString(task.DueLabel),
		task.UpdatedAt.UTC(), task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return checkRowsAffected(result, domain.ErrTaskNotFound, task.ID)
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, workspaceID, taskID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks
		WHERE id = ? AND brand_id IN (SELECT id FROM brands WHERE workspace_id = ?)`,
		taskID, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkRowsAffected(result, domain.ErrTaskNotFound, taskID)
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task                                           domain.Task
		status, priority                               string
		workstreamID, description, tagName, assigneeID sql.NullString
		dueLabel                                       sql.NullString
		startAt, dueAt                                 sql.NullTime
	)
	err := row.Scan(&task.ID, &task.BrandID, &workstreamID, &task.Name, &description,
		&status, &priority, &tagName, &assigneeID,
		&startAt, &dueAt, &dueLabel, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}

	task.WorkstreamID = stringPtr(workstreamID)
	task.Description = stringPtr(description)
	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	task.TagName = stringPtr(tagName)
	task.AssigneeID = stringPtr(assigneeID)
	task.StartAt = timePtr(startAt)
	task.DueAt = timePtr(dueAt)
	task.DueLabel = stringPtr(dueLabel)
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return &task, nil
}
