// Package session keeps processed result sets in memory between the upload
// request and the follow-up result/export requests. Nothing is persisted:
// results are session-scoped and re-derived on the next upload.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pbf-price-service/internal/pricelist/model"
)

type entry struct {
	rs      *model.ResultSet
	created time.Time
}

type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[uuid.UUID]entry
}

func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, sessions: make(map[uuid.UUID]entry)}
}

// Put stores a result set under a fresh session id.
func (s *Store) Put(rs *model.ResultSet) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.sessions[id] = entry{rs: rs, created: time.Now()}
	s.mu.Unlock()
	return id
}

// Get returns the result set for id, or false when unknown or expired.
func (s *Store) Get(id uuid.UUID) (*model.ResultSet, bool) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && time.Since(e.created) > s.ttl {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, false
	}
	return e.rs, true
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts expired sessions every interval until ctx is done.
func (s *Store) Sweep(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			cutoff := time.Now().Add(-s.ttl)
			s.mu.Lock()
			for id, e := range s.sessions {
				if e.created.Before(cutoff) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
