package api

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry[T any] struct {
	mu      sync.Mutex
	value   T
	touched time.Time
}

// store keeps sessions in memory and forgets them after ttl of inactivity.
type store[T any] struct {
	mu    sync.Mutex
	items map[string]*entry[T]
	ttl   time.Duration
	now   func() time.Time
}

func newStore[T any](ttl time.Duration) *store[T] {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &store[T]{items: make(map[string]*entry[T]), ttl: ttl, now: time.Now}
}

func (s *store[T]) put(v T) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.items[id] = &entry[T]{value: v, touched: s.now()}
	s.mu.Unlock()
	return id
}

// get returns the session and marks it used.
func (s *store[T]) get(id string) (*entry[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.touched) > s.ttl {
		delete(s.items, id)
		return nil, false
	}
	e.touched = s.now()
	return e, true
}

func (s *store[T]) delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// evict drops idle sessions and reports how many were removed.
func (s *store[T]) evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, e := range s.items {
		if e.touched.Before(cutoff) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

func (s *store[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
