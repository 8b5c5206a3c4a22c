// Package board implements the weekly task board's drag reconciliation: an
// ordered per-day view of task ids kept separate from the server-owned task
// dates, with instant local moves and tracked persistence of cross-day drops.
package board

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/seenlyhq/seenly/internal/domain"
)

var (
	// ErrDragInProgress indicates a drag session is already active.
	// The board supports a single active drag at a time.
	ErrDragInProgress = errors.New("drag already in progress")

	// ErrNoActiveDrag indicates Drop or Cancel was called without BeginDrag.
	ErrNoActiveDrag = errors.New("no active drag session")

	// ErrTaskNotOnBoard indicates the task id is not placed on any day column.
	ErrTaskNotOnBoard = errors.New("task not on board")

	// ErrDayNotOnBoard indicates the target day is outside the board's week.
	ErrDayNotOnBoard = errors.New("day not on board")
)

// PersistFunc writes a task's new date to the backing store.
type PersistFunc func(ctx context.Context, taskID string, day time.Time) error

// CardState tracks the persistence outcome of a card's last cross-day move.
type CardState int

const (
	// CardSettled: no move in flight and the last one (if any) stuck.
	CardSettled CardState = iota
	// CardPending: the date write for the last drop has not resolved yet.
	CardPending
	// CardFailed: the date write failed and the local placement was reverted.
	CardFailed
)

type dragSession struct {
	taskID    string
	sourceDay time.Time
	sourceIdx int
}

// Board holds a week of day columns, each an ordered list of task ids.
//
// The id lists are view state: same-day reordering changes them without any
// network call (ordering is not persisted), while a cross-day move also
// writes the task's date through the persist func. A failed write reverts the
// local placement, so the board never drifts from the store silently.
type Board struct {
	mu sync.Mutex

	days    []time.Time
	columns map[time.Time][]string
	states  map[string]CardState

	drag    *dragSession
	persist PersistFunc
}

// New creates a board for the 7 days starting at weekStart (normalized to
// midnight UTC).
func New(weekStart time.Time, persist PersistFunc) *Board {
	b := &Board{
		columns: make(map[time.Time][]string, 7),
		states:  make(map[string]CardState),
		persist: persist,
	}
	day := normalizeDay(weekStart)
	for range 7 {
		b.days = append(b.days, day)
		b.columns[day] = nil
		day = day.AddDate(0, 0, 1)
	}
	return b
}

func normalizeDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Load places tasks into day columns by due date, in input order. Tasks
// without a due date or outside the board's week are skipped.
func (b *Board) Load(tasks []domain.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, task := range tasks {
		if task.DueAt == nil {
			continue
		}
		day := normalizeDay(*task.DueAt)
		if _, ok := b.columns[day]; !ok {
			continue
		}
		b.columns[day] = append(b.columns[day], task.ID)
	}
}

// Days returns the board's day keys in order.
func (b *Board) Days() []time.Time {
	return slices.Clone(b.days)
}

// Column returns a copy of the ordered task ids for a day.
func (b *Board) Column(day time.Time) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.columns[normalizeDay(day)])
}

// State reports the persistence state of a card's last cross-day move.
func (b *Board) State(taskID string) CardState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.states[taskID]
}

// BeginDrag captures the dragged task's identity and originating day.
// Only one drag session may be active; a second BeginDrag before Drop or
// Cancel returns ErrDragInProgress.
func (b *Board) BeginDrag(taskID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.drag != nil {
		return ErrDragInProgress
	}

	for _, day := range b.days {
		if idx := slices.Index(b.columns[day], taskID); idx >= 0 {
			b.drag = &dragSession{taskID: taskID, sourceDay: day, sourceIdx: idx}
			return nil
		}
	}
	return ErrTaskNotOnBoard
}

// Cancel abandons the active drag session without moving anything.
func (b *Board) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drag = nil
}

// Drop ends the active drag session on the target day.
//
// Within the source day the column is reordered locally to put the card at
// index; nothing is persisted. Across days the card is removed from the
// source column, appended to the target column, and the task's date is
// written through the persist func. On write failure the card is restored to
// its original day and position and marked CardFailed; the error is returned.
func (b *Board) Drop(ctx context.Context, day time.Time, index int) error {
	b.mu.Lock()

	if b.drag == nil {
		b.mu.Unlock()
		return ErrNoActiveDrag
	}
	drag := *b.drag
	b.drag = nil

	target := normalizeDay(day)
	if _, ok := b.columns[target]; !ok {
		b.mu.Unlock()
		return ErrDayNotOnBoard
	}

	if target.Equal(drag.sourceDay) {
		b.reorderLocked(drag.sourceDay, drag.sourceIdx, index)
		b.mu.Unlock()
		return nil
	}

	// Cross-day move: apply locally first for instant feedback.
	b.columns[drag.sourceDay] = slices.Delete(b.columns[drag.sourceDay], drag.sourceIdx, drag.sourceIdx+1)
	b.columns[target] = append(b.columns[target], drag.taskID)
	b.states[drag.taskID] = CardPending
	persist := b.persist
	b.mu.Unlock()

	var err error
	if persist != nil {
		err = persist(ctx, drag.taskID, target)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		// Revert the placement: the store still holds the old date.
		col := b.columns[target]
		if idx := slices.Index(col, drag.taskID); idx >= 0 {
			b.columns[target] = slices.Delete(col, idx, idx+1)
		}
		src := b.columns[drag.sourceDay]
		at := min(drag.sourceIdx, len(src))
		b.columns[drag.sourceDay] = slices.Insert(src, at, drag.taskID)
		b.states[drag.taskID] = CardFailed
		return err
	}

	b.states[drag.taskID] = CardSettled
	return nil
}

// reorderLocked moves a card within one column. Indexes are clamped.
func (b *Board) reorderLocked(day time.Time, from, to int) {
	col := b.columns[day]
	if from < 0 || from >= len(col) {
		return
	}
	id := col[from]
	col = slices.Delete(col, from, from+1)
	to = min(max(to, 0), len(col))
	b.columns[day] = slices.Insert(col, to, id)
}
