package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenlyhq/seenly/internal/domain"
)

func strPtr(s string) *string { return &s }

func taskIDs(tasks []domain.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func sampleTasks() []domain.Task {
	return []domain.Task{
		{ID: "t1", BrandID: "b1", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityHigh},
		{ID: "t2", BrandID: "b1", Status: domain.TaskStatusDone, Priority: domain.TaskPriorityLow},
		{ID: "t3", BrandID: "b2", Status: domain.TaskStatusInProgress, Priority: domain.TaskPriorityHigh,
			TagName: strPtr("Research"), AssigneeID: strPtr("m1")},
	}
}

func TestVisibleNoFilterIdentity(t *testing.T) {
	tasks := sampleTasks()

	visible := Visible(tasks, nil, nil)

	// Full collection, original order.
	assert.Equal(t, []string{"t1", "t2", "t3"}, taskIDs(visible))
}

func TestVisibleDisjunctionWithinKey(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Status: domain.TaskStatusTodo},
		{ID: "t2", Status: domain.TaskStatusDone},
	}
	chips := []Chip{
		NewChip(KeyStatus, "todo"),
		NewChip(KeyStatus, "done"),
	}

	visible := Visible(tasks, nil, chips)
	assert.Equal(t, []string{"t1", "t2"}, taskIDs(visible))
}

func TestVisibleConjunctionAcrossKeys(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityHigh},
		{ID: "t2", Status: domain.TaskStatusDone, Priority: domain.TaskPriorityLow},
	}
	chips := []Chip{
		NewChip(KeyStatus, "todo"),
		NewChip(KeyStatus, "done"),
		NewChip(KeyPriority, "high"),
	}

	visible := Visible(tasks, nil, chips)
	assert.Equal(t, []string{"t1"}, taskIDs(visible))
}

func TestVisibleIdempotence(t *testing.T) {
	tasks := sampleTasks()
	chips := []Chip{NewChip(KeyPriority, "high")}

	once := Visible(tasks, nil, chips)
	twice := Visible(once, nil, chips)

	assert.Equal(t, taskIDs(once), taskIDs(twice))
}

func TestVisibleTagResolution(t *testing.T) {
	tasks := sampleTasks()
	tags := []domain.Tag{
		{ID: "tag-1", BrandID: "b2", Name: "research"},
	}

	// Chip carries the tag id; the task stores the name. Matching is
	// case-insensitive through the id->name resolution.
	visible := Visible(tasks, tags, []Chip{NewChip(KeyTag, "tag-1")})
	assert.Equal(t, []string{"t3"}, taskIDs(visible))
}

func TestVisibleDeletedTagMatchesNothing(t *testing.T) {
	tasks := sampleTasks()

	// No tag with this id exists anymore: the constraint is unsatisfiable
	// for every task, and filtering never errors.
	require.NotPanics(t, func() {
		visible := Visible(tasks, nil, []Chip{NewChip(KeyTag, "deleted-tag-id")})
		assert.Empty(t, visible)
	})
}

func TestVisibleUnknownChipsIgnored(t *testing.T) {
	tasks := sampleTasks()
	chips := []Chip{
		{Key: KeyUnknown, Raw: "utm_source", Value: "newsletter"},
	}

	visible := Visible(tasks, nil, chips)
	assert.Equal(t, []string{"t1", "t2", "t3"}, taskIDs(visible))
}

func TestVisibleBrandAndAssignee(t *testing.T) {
	tasks := sampleTasks()

	byBrand := Visible(tasks, nil, []Chip{NewChip(KeyBrand, "b1")})
	assert.Equal(t, []string{"t1", "t2"}, taskIDs(byBrand))

	byAssignee := Visible(tasks, nil, []Chip{NewChip(KeyAssignee, "m1")})
	assert.Equal(t, []string{"t3"}, taskIDs(byAssignee))

	// Tasks without an assignee can never satisfy an assignee constraint.
	none := Visible(tasks, nil, []Chip{NewChip(KeyAssignee, "nobody")})
	assert.Empty(t, none)
}

func TestVisibleEndToEndScenario(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityHigh},
		{ID: "t2", Status: domain.TaskStatusDone, Priority: domain.TaskPriorityLow},
	}

	withChip := Visible(tasks, nil, []Chip{NewChip(KeyStatus, "todo")})
	assert.Equal(t, []string{"t1"}, taskIDs(withChip))

	removed := Visible(tasks, nil, nil)
	assert.Equal(t, []string{"t1", "t2"}, taskIDs(removed))
}
