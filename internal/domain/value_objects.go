package domain

import (
	"fmt"
	"strings"
)

// TaskStatus is the closed set of task states.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

// TaskPriority is the closed set of task priorities.
type TaskPriority string

const (
	TaskPriorityNone   TaskPriority = "no-priority"
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// ContentStatus is the publication state of a content piece.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
)

// IntegrationStatus is the connection state of an integration.
type IntegrationStatus string

const (
	IntegrationStatusConnected    IntegrationStatus = "connected"
	IntegrationStatusDisconnected IntegrationStatus = "disconnected"
	IntegrationStatusError        IntegrationStatus = "error"
)

// Name is a validated entity name (1-255 characters after trimming).
type Name struct {
	value string
}

// NewName creates a Name, validating the input.
func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)

	if s == "" {
		return Name{}, ErrNameRequired
	}

	if len(s) > 255 {
		return Name{}, ErrNameTooLong
	}

	return Name{value: s}, nil
}

// String returns the name value.
func (n Name) String() string {
	return n.value
}

// NewTaskStatus validates and creates a TaskStatus.
func NewTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.ToLower(s))

	switch status {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidTaskStatus, s)
	}
}

// NewTaskPriority validates and creates a TaskPriority.
// An empty input falls back to TaskPriorityNone.
func NewTaskPriority(s string) (TaskPriority, error) {
	if s == "" {
		return TaskPriorityNone, nil
	}

	priority := TaskPriority(strings.ToLower(s))

	switch priority {
	case TaskPriorityNone, TaskPriorityLow, TaskPriorityMedium,
		TaskPriorityHigh, TaskPriorityUrgent:
		return priority, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidTaskPriority, s)
	}
}

// NewContentStatus validates and creates a ContentStatus.
func NewContentStatus(s string) (ContentStatus, error) {
	status := ContentStatus(strings.ToLower(s))

	switch status {
	case ContentStatusDraft, ContentStatusPublished:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidContentStatus, s)
	}
}

// NewIntegrationStatus validates and creates an IntegrationStatus.
func NewIntegrationStatus(s string) (IntegrationStatus, error) {
	status := IntegrationStatus(strings.ToLower(s))

	switch status {
	case IntegrationStatusConnected, IntegrationStatusDisconnected, IntegrationStatusError:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidIntegrationStatus, s)
	}
}
