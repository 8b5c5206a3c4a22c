package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures navigate and chip-setter calls for loop assertions.
type recorder struct {
	navigations []string
	chipSets    [][]Chip
}

func (r *recorder) navigate(query string)  { r.navigations = append(r.navigations, query) }
func (r *recorder) setChips(chips []Chip) { r.chipSets = append(r.chipSets, chips) }

func TestApplyWritesURLOnce(t *testing.T) {
	rec := &recorder{}
	r := NewReconciler(rec.navigate, rec.setChips)

	r.Apply([]Chip{NewChip(KeyStatus, "todo")})

	require.Len(t, rec.navigations, 1)
	assert.Equal(t, "status=todo", rec.navigations[0])
	assert.Len(t, rec.chipSets, 1)
	assert.Equal(t, StateIdle, r.State())
}

func TestLoopSuppressionOnEcho(t *testing.T) {
	rec := &recorder{}
	r := NewReconciler(rec.navigate, rec.setChips)

	// User applies a filter, triggering a URL write...
	r.Apply([]Chip{NewChip(KeyStatus, "todo")})
	require.Len(t, rec.navigations, 1)
	written := rec.navigations[0]

	// ...immediately followed by the browser echoing the same query string.
	r.ObserveURL(written)

	// The chip-state setter ran exactly once, for the user-initiated change.
	assert.Len(t, rec.chipSets, 1)
	assert.Len(t, rec.navigations, 1, "echo must not trigger another write")
	assert.Equal(t, StateIdle, r.State())
}

func TestSuppressionIsOneShot(t *testing.T) {
	rec := &recorder{}
	r := NewReconciler(rec.navigate, rec.setChips)

	r.Apply([]Chip{NewChip(KeyStatus, "todo")})
	written := rec.navigations[0]

	r.ObserveURL(written) // consumes the suppression
	r.ObserveURL(written) // unchanged query string: still a no-op
	assert.Len(t, rec.chipSets, 1)

	// A genuinely different URL change re-parses.
	r.ObserveURL("status=done")
	require.Len(t, rec.chipSets, 2)
	chips := rec.chipSets[1]
	require.Len(t, chips, 1)
	assert.Equal(t, KeyStatus, chips[0].Key)
	assert.Equal(t, "done", chips[0].Value)
}

func TestObserveURLExternalChange(t *testing.T) {
	rec := &recorder{}
	r := NewReconciler(rec.navigate, rec.setChips)

	// Back/forward navigation or a shared link: parse into chips without
	// writing back to the URL.
	r.ObserveURL("priority=high&priority=urgent&utm_source=mail")

	require.Len(t, rec.chipSets, 1)
	assert.Empty(t, rec.navigations)

	chips := r.Chips()
	require.Len(t, chips, 3)

	var priorities, unknowns int
	for _, chip := range chips {
		switch chip.Key {
		case KeyPriority:
			priorities++
		case KeyUnknown:
			unknowns++
		}
	}
	assert.Equal(t, 2, priorities)
	assert.Equal(t, 1, unknowns)
}

func TestRemoveChip(t *testing.T) {
	rec := &recorder{}
	r := NewReconciler(rec.navigate, rec.setChips)

	r.Apply([]Chip{
		NewChip(KeyStatus, "todo"),
		NewChip(KeyStatus, "done"),
	})
	r.Remove(KeyStatus, "todo")

	require.Len(t, rec.navigations, 2)
	assert.Equal(t, "status=done", rec.navigations[1])

	chips := r.Chips()
	require.Len(t, chips, 1)
	assert.Equal(t, "done", chips[0].Value)
}

func TestApplyEmptyChipsClearsQuery(t *testing.T) {
	rec := &recorder{}
	r := NewReconciler(rec.navigate, rec.setChips)

	r.Apply([]Chip{NewChip(KeyStatus, "todo")})
	r.Apply(nil)

	require.Len(t, rec.navigations, 2)
	assert.Equal(t, "", rec.navigations[1])
	assert.Empty(t, r.Chips())
}

func TestObserveURLMalformedQuery(t *testing.T) {
	rec := &recorder{}
	r := NewReconciler(rec.navigate, rec.setChips)

	require.NotPanics(t, func() {
		r.ObserveURL("status=todo&oops=%zz")
	})
	assert.Equal(t, StateIdle, r.State())
}

func TestReconcilersAreInstanceScoped(t *testing.T) {
	recA, recB := &recorder{}, &recorder{}
	a := NewReconciler(recA.navigate, recA.setChips)
	b := NewReconciler(recB.navigate, recB.setChips)

	a.Apply([]Chip{NewChip(KeyBrand, "b1")})

	// A second board rendered concurrently sees none of the first's state.
	assert.Empty(t, b.Chips())
	assert.Empty(t, recB.navigations)
}
