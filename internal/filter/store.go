package filter

import (
	"fmt"
	"sync"
	"time"

	"vitrine/internal/catalog"
)

// Status tracks the lifecycle of the current result set.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	}
	return "idle"
}

// ResultSet is the most recent server response for the current state. It is
// replaced wholesale on success; on failure the previous items stay visible
// and only the status and error change.
type ResultSet struct {
	Items       []catalog.Product
	Total       int
	Status      Status
	LastError   error
	LastUpdated time.Time
}

// Snapshot is an immutable view of the store at a point in time.
type Snapshot struct {
	State  State
	Bounds PriceRange
	Result ResultSet
}

// Store holds the canonical FilterState and ResultSet. It is safe for
// concurrent use: the UI reads snapshots while fetch completions write.
// Listeners registered with Subscribe run after every committed mutation.
type Store struct {
	mu        sync.RWMutex
	state     State
	bounds    PriceRange
	result    ResultSet
	nextSub   int
	listeners map[int]func()
}

// NewStore builds a store with the given initial state.
func NewStore(initial State) *Store {
	return &Store{
		state:     initial,
		listeners: make(map[int]func()),
	}
}

// Dispatch applies an action through the reducer, commits the new state,
// and notifies subscribers. It returns the committed state.
func (st *Store) Dispatch(a Action) State {
	st.mu.Lock()
	st.state = Apply(st.state, st.bounds, a)
	next := st.state
	st.mu.Unlock()

	st.notify()
	return next
}

// Replace overwrites the whole filter state, bypassing the reducer. Used
// when the state was produced elsewhere (URL parse, page clamping).
func (st *Store) Replace(s State) {
	st.mu.Lock()
	st.state = s
	st.mu.Unlock()

	st.notify()
}

// SetBounds records the catalog-wide price extent. A price selection that
// was tracking the old default follows the new bounds.
func (st *Store) SetBounds(b PriceRange) {
	st.mu.Lock()
	wasDefault := st.state.IsDefaultPrice(st.bounds)
	st.bounds = b
	if wasDefault {
		st.state.Price = b
	} else {
		st.state.Price = st.state.Price.Normalize(b)
	}
	st.mu.Unlock()

	st.notify()
}

// BeginLoad marks a fetch in flight.
func (st *Store) BeginLoad() {
	st.mu.Lock()
	st.result.Status = StatusLoading
	st.mu.Unlock()

	st.notify()
}

// ApplyResult replaces the result set with a fresh server page.
func (st *Store) ApplyResult(items []catalog.Product, total int) {
	st.mu.Lock()
	st.result.Items = cloneProducts(items)
	st.result.Total = total
	st.result.Status = StatusLoaded
	st.result.LastError = nil
	st.result.LastUpdated = time.Now()
	st.mu.Unlock()

	st.notify()
}

// FailResult records a fetch failure. Previous items are kept so the grid
// stays populated while the error is shown.
func (st *Store) FailResult(err error) {
	st.mu.Lock()
	st.result.Status = StatusFailed
	st.result.LastError = err
	st.result.LastUpdated = time.Now()
	st.mu.Unlock()

	st.notify()
}

// Snapshot returns a copy of the current state, bounds, and result set.
func (st *Store) Snapshot() Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()

	snap := Snapshot{
		State:  st.state,
		Bounds: st.bounds,
		Result: st.result,
	}
	snap.Result.Items = cloneProducts(st.result.Items)
	if st.result.LastError != nil {
		snap.Result.LastError = fmt.Errorf("%w", st.result.LastError)
	}
	return snap
}

// Subscribe registers a listener invoked after every committed mutation.
// The returned function removes the listener.
func (st *Store) Subscribe(fn func()) func() {
	st.mu.Lock()
	id := st.nextSub
	st.nextSub++
	if st.listeners == nil {
		st.listeners = make(map[int]func())
	}
	st.listeners[id] = fn
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.listeners, id)
		st.mu.Unlock()
	}
}

// notify runs listeners outside the lock so they can read snapshots.
func (st *Store) notify() {
	st.mu.RLock()
	fns := make([]func(), 0, len(st.listeners))
	for _, fn := range st.listeners {
		fns = append(fns, fn)
	}
	st.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

func cloneProducts(items []catalog.Product) []catalog.Product {
	if len(items) == 0 {
		return nil
	}
	dup := make([]catalog.Product, len(items))
	copy(dup, items)
	return dup
}
