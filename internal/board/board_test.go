package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenlyhq/seenly/internal/domain"
)

var weekStart = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC) // a Monday

func dayPtr(t time.Time) *time.Time { return &t }

// persistRecorder records date writes and optionally fails them.
type persistRecorder struct {
	calls []string
	err   error
}

func (p *persistRecorder) persist(_ context.Context, taskID string, day time.Time) error {
	p.calls = append(p.calls, taskID+"@"+day.Format("2006-01-02"))
	return p.err
}

func loadedBoard(t *testing.T, persist PersistFunc) *Board {
	t.Helper()
	b := New(weekStart, persist)
	b.Load([]domain.Task{
		{ID: "t1", DueAt: dayPtr(weekStart)},
		{ID: "t2", DueAt: dayPtr(weekStart)},
		{ID: "t3", DueAt: dayPtr(weekStart.AddDate(0, 0, 1))},
		{ID: "t4"}, // no due date: not on the board
	})
	return b
}

func TestLoadPlacesTasksByDueDate(t *testing.T) {
	b := loadedBoard(t, nil)

	assert.Equal(t, []string{"t1", "t2"}, b.Column(weekStart))
	assert.Equal(t, []string{"t3"}, b.Column(weekStart.AddDate(0, 0, 1)))
	assert.Len(t, b.Days(), 7)
}

func TestSameDayReorderDoesNotPersist(t *testing.T) {
	rec := &persistRecorder{}
	b := loadedBoard(t, rec.persist)

	require.NoError(t, b.BeginDrag("t1"))
	require.NoError(t, b.Drop(context.Background(), weekStart, 1))

	assert.Equal(t, []string{"t2", "t1"}, b.Column(weekStart))
	assert.Empty(t, rec.calls, "ordering is view state only")
	assert.Equal(t, CardSettled, b.State("t1"))
}

func TestCrossDayDropPersistsDate(t *testing.T) {
	rec := &persistRecorder{}
	b := loadedBoard(t, rec.persist)
	tuesday := weekStart.AddDate(0, 0, 1)

	require.NoError(t, b.BeginDrag("t1"))
	require.NoError(t, b.Drop(context.Background(), tuesday, 0))

	assert.Equal(t, []string{"t2"}, b.Column(weekStart))
	assert.Equal(t, []string{"t3", "t1"}, b.Column(tuesday), "card is appended to the target column")
	assert.Equal(t, []string{"t1@2026-03-10"}, rec.calls)
	assert.Equal(t, CardSettled, b.State("t1"))
}

func TestCrossDayDropFailureRevertsPlacement(t *testing.T) {
	rec := &persistRecorder{err: errors.New("store unavailable")}
	b := loadedBoard(t, rec.persist)
	tuesday := weekStart.AddDate(0, 0, 1)

	require.NoError(t, b.BeginDrag("t1"))
	err := b.Drop(context.Background(), tuesday, 0)
	require.Error(t, err)

	// Local placement reverted to the original day and position.
	assert.Equal(t, []string{"t1", "t2"}, b.Column(weekStart))
	assert.Equal(t, []string{"t3"}, b.Column(tuesday))
	assert.Equal(t, CardFailed, b.State("t1"))
}

func TestSingleActiveDragSession(t *testing.T) {
	b := loadedBoard(t, nil)

	require.NoError(t, b.BeginDrag("t1"))
	assert.ErrorIs(t, b.BeginDrag("t2"), ErrDragInProgress)

	b.Cancel()
	assert.NoError(t, b.BeginDrag("t2"))
	b.Cancel()
}

func TestDropWithoutDrag(t *testing.T) {
	b := loadedBoard(t, nil)
	assert.ErrorIs(t, b.Drop(context.Background(), weekStart, 0), ErrNoActiveDrag)
}

func TestDragUnknownTask(t *testing.T) {
	b := loadedBoard(t, nil)
	assert.ErrorIs(t, b.BeginDrag("missing"), ErrTaskNotOnBoard)
}

func TestDropOutsideWeek(t *testing.T) {
	b := loadedBoard(t, nil)
	require.NoError(t, b.BeginDrag("t1"))
	assert.ErrorIs(t, b.Drop(context.Background(), weekStart.AddDate(0, 0, 14), 0), ErrDayNotOnBoard)
}
