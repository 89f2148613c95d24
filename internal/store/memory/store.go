package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yingnomad/remotelife/internal/domain"
	"github.com/yingnomad/remotelife/internal/store"
)

type entry struct {
	state   domain.GalleryState
	expires time.Time
}

// Store keeps sessions in process memory. Expired sessions are ignored on
// read and removed by Sweep.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]entry
	views    map[string]int64
	ttl      time.Duration
	now      func() time.Time
}

var (
	_ store.Store   = (*Store)(nil)
	_ store.Flusher = (*Store)(nil)
)

// New creates a memory store with the given session TTL.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = store.DefaultSessionTTL
	}
	return &Store{
		sessions: make(map[string]entry, 64),
		views:    make(map[string]int64),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) Load(_ context.Context, sessionID string) (domain.GalleryState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[sessionID]
	if !ok || s.now().After(e.expires) {
		return domain.GalleryState{}, nil
	}
	return e.state, nil
}

// Update runs fn under the store lock, so transitions of one session never
// interleave.
func (s *Store) Update(_ context.Context, sessionID string, fn store.UpdateFunc) (domain.GalleryState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var current domain.GalleryState
	if e, ok := s.sessions[sessionID]; ok && !now.After(e.expires) {
		current = e.state
	}

	next, err := fn(current)
	if err != nil {
		return current, err
	}
	s.sessions[sessionID] = entry{state: next, expires: now.Add(s.ttl)}
	return next, nil
}

func (s *Store) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// FlushSessions drops every session and returns how many there were.
func (s *Store) FlushSessions(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.sessions)
	s.sessions = make(map[string]entry, 64)
	return n, nil
}

func (s *Store) IncrementViews(_ context.Context, cityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.views[cityID]++
	return nil
}

func (s *Store) Views(_ context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int64, len(s.views))
	for k, v := range s.views {
		out[k] = v
	}
	return out, nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Mode() string { return "memory" }

// Len returns the number of stored sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// Sweep deletes sessions that expired before now and returns how many.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if now.After(e.expires) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
