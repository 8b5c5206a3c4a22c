package domain

import "time"

// Field names for Task update masks.
// Only fields named in the mask are modified; a masked field whose value
// pointer is nil clears the stored optional.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldTag         = "tag"
	FieldAssignee    = "assignee_id"
	FieldWorkstream  = "workstream_id"
	FieldStartAt     = "start_at"
	FieldDueAt       = "due_at"
)

// UpdateTaskParams contains parameters for a partial task update.
//
// UpdateMask lists the fields to touch. Fields absent from the mask keep
// their stored values regardless of what the pointers hold. There is no
// version token: task mutations are last-write-wins.
type UpdateTaskParams struct {
	TaskID string

	UpdateMask []string

	Name         *string
	Description  *string
	Status       *TaskStatus
	Priority     *TaskPriority
	TagName      *string
	AssigneeID   *string
	WorkstreamID *string
	StartAt      *time.Time
	DueAt        *time.Time
}

// Apply folds the masked fields into the task and refreshes UpdatedAt.
// DueLabel is re-derived whenever due_at is in the mask.
func (p UpdateTaskParams) Apply(task *Task, now time.Time) {
	for _, field := range p.UpdateMask {
		switch field {
		case FieldName:
			if p.Name != nil {
				task.Name = *p.Name
			}
		case FieldDescription:
			task.Description = p.Description
		case FieldStatus:
			if p.Status != nil {
				task.Status = *p.Status
			}
		case FieldPriority:
			if p.Priority != nil {
				task.Priority = *p.Priority
			}
		case FieldTag:
			task.TagName = p.TagName
		case FieldAssignee:
			task.AssigneeID = p.AssigneeID
		case FieldWorkstream:
			task.WorkstreamID = p.WorkstreamID
		case FieldStartAt:
			task.StartAt = p.StartAt
		case FieldDueAt:
			task.DueAt = p.DueAt
			task.DueLabel = DeriveDueLabel(p.DueAt)
		}
	}
	task.UpdatedAt = now
}

// DeriveDueLabel formats a target date into the display string shown on task
// cards, e.g. "Fri, Mar 14". Nil in, nil out.
func DeriveDueLabel(due *time.Time) *string {
	if due == nil {
		return nil
	}
	label := due.Format("Mon, Jan 2")
	return &label
}

// UpdateBrandParams contains parameters for a partial brand update.
type UpdateBrandParams struct {
	BrandID    string
	UpdateMask []string

	Name   *string
	Domain *string
}

// UpdateTagParams contains parameters for a partial tag update.
type UpdateTagParams struct {
	TagID      string
	UpdateMask []string

	Name  *string
	Color *string
}

// UpdateContentParams contains parameters for a partial content update.
type UpdateContentParams struct {
	ContentID  string
	UpdateMask []string

	Title       *string
	Body        *string
	Status      *ContentStatus
	AssetObject *string
}

// UpdateIntegrationParams contains parameters for a partial integration update.
type UpdateIntegrationParams struct {
	IntegrationID string
	UpdateMask    []string

	Status *IntegrationStatus
	Config map[string]any
}

// UpdatePromptParams contains parameters for a partial prompt update.
type UpdatePromptParams struct {
	PromptID   string
	UpdateMask []string

	Text     *string
	Engine   *string
	IsActive *bool
}
