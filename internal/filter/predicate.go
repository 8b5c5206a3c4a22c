package filter

import (
	"strings"

	"github.com/seenlyhq/seenly/internal/domain"
)

// constraint is the disjunction of accepted values for one key.
// A nil values slice means the key is unconstrained.
type constraint struct {
	active bool
	values []string // lowercase
}

func (c *constraint) add(value string) {
	c.active = true
	c.values = append(c.values, strings.ToLower(value))
}

func (c *constraint) matches(value string) bool {
	if !c.active {
		return true
	}
	value = strings.ToLower(value)
	for _, v := range c.values {
		if v == value {
			return true
		}
	}
	return false
}

// matchesOptional applies the constraint to an optional field: an absent
// field can never satisfy an active constraint.
func (c *constraint) matchesOptional(value *string) bool {
	if !c.active {
		return true
	}
	if value == nil {
		return false
	}
	return c.matches(*value)
}

// Visible returns the subset of tasks matching the active chip set, in input
// order. For every key with at least one chip the task's field must match at
// least one value (case-insensitive); keys without chips impose no
// constraint. Unknown chips are ignored.
//
// Tag chips hold tag identifiers while tasks store tag names, so ids are
// resolved through the live tag collection first. A chip whose id resolves to
// no current tag (deleted tag) contributes no acceptable name: if no chip of
// the tag set resolves, the constraint is unsatisfiable and matches nothing.
// That is a silent miss, never an error.
//
// Pure function of (tasks, tags, chips): no side effects, deterministic.
func Visible(tasks []domain.Task, tags []domain.Tag, chips []Chip) []domain.Task {
	var status, priority, tagNames, brand, assignee constraint

	tagNameByID := make(map[string]string, len(tags))
	for _, tag := range tags {
		tagNameByID[tag.ID] = tag.Name
	}

	for _, chip := range chips {
		switch chip.Key {
		case KeyStatus:
			status.add(chip.Value)
		case KeyPriority:
			priority.add(chip.Value)
		case KeyTag:
			tagNames.active = true
			if name, ok := tagNameByID[chip.Value]; ok {
				tagNames.values = append(tagNames.values, strings.ToLower(name))
			}
		case KeyBrand:
			brand.add(chip.Value)
		case KeyAssignee:
			assignee.add(chip.Value)
		case KeyUnknown:
			// Carried for downstream consumers, excluded from built-in predicates.
		}
	}

	visible := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if !status.matches(string(task.Status)) {
			continue
		}
		if !priority.matches(string(task.Priority)) {
			continue
		}
		if !tagNames.matchesOptional(task.TagName) {
			continue
		}
		if !brand.matches(task.BrandID) {
			continue
		}
		if !assignee.matchesOptional(task.AssigneeID) {
			continue
		}
		visible = append(visible, task)
	}
	return visible
}
