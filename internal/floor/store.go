package floor

import (
	"sync"
	"time"
)

// Store owns the authoritative snapshot and serializes every intent against it.
// There is a single writer at a time; readers always get a private copy.
type Store struct {
	mu          sync.Mutex
	state       State
	now         func() time.Time
	subscribers []func(State)
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock used to stamp start times and orders.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store seeded with initial.
func NewStore(initial State, opts ...Option) *Store {
	s := &Store{
		state: initial.Clone(),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn to receive every new snapshot, in commit order.
// fn runs while the store is locked and must not dispatch.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Dispatch applies in atomically. On error the snapshot is left untouched.
func (s *Store) Dispatch(in Intent) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, in, s.now())
	if err != nil {
		return State{}, err
	}
	s.state = next
	for _, fn := range s.subscribers {
		fn(next.Clone())
	}
	return next.Clone(), nil
}
