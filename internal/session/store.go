package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

// State is the cached session snapshot. Empty fields mean "not set".
type State struct {
	Token       string
	WorkspaceID string
	UserName    string
	Role        domain.Role
}

// Authenticated reports whether a token is present and not yet expired.
// The role is advisory for navigation only; the backend stays
// authoritative.
func (s State) Authenticated() bool {
	if s.Token == "" {
		return false
	}
	return !PeekClaims(s.Token).Expired(time.Now())
}

// Store caches session state over a Storage backend and notifies
// subscribers on change. All methods are safe for concurrent use.
type Store struct {
	storage Storage

	mu        sync.Mutex
	state     State
	hydrated  bool
	watching  bool
	stopWatch func()
	nextID    int
	listeners map[int]func()
}

// NewStore wraps the given storage. Snapshot hydrates lazily on first use.
func NewStore(storage Storage) *Store {
	return &Store{
		storage:   storage,
		listeners: map[int]func(){},
	}
}

// Snapshot returns the current session state, hydrating from storage on the
// first call. Storage failures degrade to an empty session and never
// propagate to the caller.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrateLocked()
	return s.state
}

// Set replaces all four tracked fields, persists them, and notifies
// subscribers if at least one field actually changed. It is a full replace,
// not a merge: callers always pass the complete desired state.
func (s *Store) Set(next State) {
	if err := s.storage.Store(map[string]string{
		keyToken:       next.Token,
		keyWorkspaceID: next.WorkspaceID,
		keyUserName:    next.UserName,
		keyRole:        string(next.Role),
	}); err != nil {
		log.Warn().Err(err).Msg("session persistence failed; continuing in memory")
	}
	s.publish(next)
}

// Clear wipes the session.
func (s *Store) Clear() {
	s.Set(State{})
}

// Subscribe registers a change listener and returns its unsubscribe
// function. The first subscriber attaches the storage's external-change
// watcher, which republishes freshly read state when another process writes
// a tracked key.
func (s *Store) Subscribe(listener func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	attach := !s.watching
	if attach {
		s.watching = true
	}
	s.mu.Unlock()

	if attach {
		stop, err := s.storage.Watch(s.republishFromStorage)
		if err != nil {
			log.Warn().Err(err).Msg("session change watcher unavailable")
		} else {
			s.mu.Lock()
			s.stopWatch = stop
			s.mu.Unlock()
		}
	}

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Close detaches the external-change watcher.
func (s *Store) Close() {
	s.mu.Lock()
	stop := s.stopWatch
	s.stopWatch = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}

func (s *Store) hydrateLocked() {
	if s.hydrated {
		return
	}
	s.hydrated = true
	values, err := s.storage.Load()
	if err != nil {
		log.Warn().Err(err).Msg("session hydration failed; starting empty")
		return
	}
	s.state = stateFromValues(values)
}

func (s *Store) republishFromStorage() {
	values, err := s.storage.Load()
	if err != nil {
		return
	}
	s.publish(stateFromValues(values))
}

func (s *Store) publish(next State) {
	s.mu.Lock()
	s.hydrated = true
	if s.state == next {
		s.mu.Unlock()
		return
	}
	s.state = next
	listeners := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func stateFromValues(values map[string]string) State {
	return State{
		Token:       values[keyToken],
		WorkspaceID: values[keyWorkspaceID],
		UserName:    values[keyUserName],
		Role:        domain.Role(values[keyRole]),
	}
}
