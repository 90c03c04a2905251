package reactive

import (
	"slices"
	"sync"
)

// debugLog is set by platform-specific code
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// Signal is the interface for reactive values
type Signal[T any] interface {
	Get() T
	Set(T)
	Watch(fn func(T)) (cancel func())
}

var _ Signal[int] = (*State[int])(nil)

// State represents a reactive state value
type State[T any] struct {
	value T
	mu    sync.RWMutex

	// Watchers notified after every write, keyed by registration order
	watchers   map[uint64]func(T)
	nextID     uint64
	watchersMu sync.RWMutex
}

// NewState creates a new reactive state
func NewState[T any](initial T) *State[T] {
	return &State[T]{
		value:    initial,
		watchers: make(map[uint64]func(T)),
	}
}

// Get returns the current value
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies watchers
func (s *State[T]) Set(value T) {
	if debugLog != nil {
		debugLog("[State] Set called with value:", value)
	}

	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	s.notify(value)
}

// Update atomically reads, modifies, and writes the value
func (s *State[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	next := fn(s.value)
	s.value = next
	s.mu.Unlock()

	s.notify(next)
	return next
}

// Watch registers fn to run after every write. fn is not called for the
// current value. The returned function removes the watcher.
func (s *State[T]) Watch(fn func(T)) (cancel func()) {
	s.watchersMu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.watchersMu.Unlock()

	return func() {
		s.watchersMu.Lock()
		delete(s.watchers, id)
		s.watchersMu.Unlock()
	}
}

func (s *State[T]) notify(value T) {
	// Snapshot watchers so callbacks may register or cancel without deadlock
	s.watchersMu.RLock()
	ids := make([]uint64, 0, len(s.watchers))
	for id := range s.watchers {
		ids = append(ids, id)
	}
	fns := make(map[uint64]func(T), len(ids))
	for _, id := range ids {
		fns[id] = s.watchers[id]
	}
	s.watchersMu.RUnlock()

	if debugLog != nil {
		debugLog("[State] Notifying", len(fns), "watchers")
	}

	slices.Sort(ids)
	for _, id := range ids {
		fns[id](value)
	}
}
