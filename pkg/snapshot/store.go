package snapshot

import (
	"sync"
	"time"
)

// Store is an in-process cache of the latest state per variant.
// All methods are safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	states map[string]State
}

// NewStore returns an empty snapshot store
func NewStore() *Store {
	return &Store{
		states: make(map[string]State),
	}
}

// Put stores the state as the variant's latest view. The store assigns a
// monotonically increasing version per variant and stamps the update time.
func (s *Store) Put(state State) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := string(state.Variant)
	state.Version = s.states[key].Version + 1
	state.UpdatedAt = time.Now()
	s.states[key] = state

	return state
}

// Get returns the variant's latest view.
// ok is false if no round has published a state yet.
func (s *Store) Get(variant string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[variant]
	return state, ok
}
