package filter

import "sync"

// State is the reconciler's position in its synchronization loop.
type State int

const (
	StateIdle State = iota
	StateSyncingFromURL
	StateSyncingToURL
)

// Reconciler keeps three pieces of state consistent without update cycles:
// the observed URL query string, the in-memory chip list, and (through the
// onChips callback) whatever derives from the chips.
//
// Changes flow in both directions. A user-initiated change pushes to the URL
// through navigate; an externally observed URL change parses back into chips.
// A write performed by the reconciler must never re-trigger a read of the
// same value: the just-written query string is held as a one-shot suppression
// and consumed by the next matching observation.
//
// State is instance-scoped. Rendering several boards concurrently gets each
// its own reconciler; there are no package-level singletons to leak across
// instances.
type Reconciler struct {
	mu sync.Mutex

	state State
	chips []Chip

	// lastSeen is the most recently acknowledged query string.
	lastSeen string

	// pendingEcho holds the query string written by the last Apply until the
	// URL observer echoes it back exactly once.
	pendingEcho *string

	navigate func(query string)
	onChips  func(chips []Chip)
}

// NewReconciler creates a reconciler. navigate performs the non-scrolling
// replace of the current URL's query string; onChips receives every chip-state
// change, from either direction. Both may be nil.
func NewReconciler(navigate func(query string), onChips func(chips []Chip)) *Reconciler {
	return &Reconciler{
		navigate: navigate,
		onChips:  onChips,
	}
}

// State reports the current loop state. Outside of Apply and ObserveURL the
// reconciler is always Idle.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Chips returns a copy of the current chip list.
func (r *Reconciler) Chips() []Chip {
	r.mu.Lock()
	defer r.mu.Unlock()
	chips := make([]Chip, len(r.chips))
	copy(chips, r.chips)
	return chips
}

// Apply installs a user-initiated chip set (filter popover "Apply") and
// pushes the encoded query string to the URL. The written value is recorded
// so the echoing URL-change event does not re-enter through ObserveURL.
func (r *Reconciler) Apply(chips []Chip) {
	r.mu.Lock()
	r.state = StateSyncingToURL

	r.chips = make([]Chip, len(chips))
	copy(r.chips, chips)

	query := Encode(r.chips).Encode()
	r.lastSeen = query
	r.pendingEcho = &query

	navigate := r.navigate
	onChips := r.onChips
	snapshot := make([]Chip, len(r.chips))
	copy(snapshot, r.chips)

	r.state = StateIdle
	r.mu.Unlock()

	if onChips != nil {
		onChips(snapshot)
	}
	if navigate != nil {
		navigate(query)
	}
}

// Remove drops one chip (chip removal button) and pushes the rest, same as
// Apply. Removing a chip that is not present is a no-op apply.
func (r *Reconciler) Remove(key Key, value string) {
	r.mu.Lock()
	next := make([]Chip, 0, len(r.chips))
	for _, chip := range r.chips {
		if chip.Key == key && chip.Value == value {
			continue
		}
		next = append(next, chip)
	}
	r.mu.Unlock()

	r.Apply(next)
}

// ObserveURL feeds an observed URL query-string change into the loop. The
// one-shot echo of a self-initiated write is consumed silently; an unchanged
// query string is ignored; anything else is parsed into chips and installed.
func (r *Reconciler) ObserveURL(rawQuery string) {
	r.mu.Lock()

	if r.pendingEcho != nil && rawQuery == *r.pendingEcho {
		r.pendingEcho = nil
		r.lastSeen = rawQuery
		r.mu.Unlock()
		return
	}

	if rawQuery == r.lastSeen {
		r.mu.Unlock()
		return
	}

	r.state = StateSyncingFromURL
	r.chips = DecodeQuery(rawQuery)
	r.lastSeen = rawQuery

	onChips := r.onChips
	snapshot := make([]Chip, len(r.chips))
	copy(snapshot, r.chips)

	r.state = StateIdle
	r.mu.Unlock()

	if onChips != nil {
		onChips(snapshot)
	}
}
