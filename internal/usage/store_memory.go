package usage

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu    sync.Mutex
	limit int
	data  map[string]Usage
}

func newMemoryStore(limit int) *memoryStore {
	return &memoryStore{limit: limit, data: make(map[string]Usage)}
}

func (s *memoryStore) Get(ctx context.Context, clientID string) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensure(clientID), nil
}

// ensure returns the client's quota, rolling the window at UTC midnight.
// Callers must hold mu.
func (s *memoryStore) ensure(clientID string) Usage {
	now := time.Now().UTC()
	u, ok := s.data[clientID]
	if !ok {
		u = Usage{Limit: s.limit, Used: 0, ResetsAt: nextReset(now)}
	}
	if !now.Before(u.ResetsAt) {
		u.Used = 0
		u.ResetsAt = nextReset(now)
	}
	s.data[clientID] = u
	return u
}

func (s *memoryStore) Consume(ctx context.Context, clientID string, n int) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ensure(clientID)
	if n <= 0 {
		return u, nil
	}
	if u.Used+n > u.Limit {
		return Usage{}, ErrLimitReached
	}
	u.Used += n
	s.data[clientID] = u
	return u, nil
}

func (s *memoryStore) Refund(ctx context.Context, clientID string, n int) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ensure(clientID)
	u.Used -= n
	if u.Used < 0 {
		u.Used = 0
	}
	s.data[clientID] = u
	return u, nil
}

func (s *memoryStore) Reset(ctx context.Context, clientID string) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ensure(clientID)
	u.Used = 0
	u.ResetsAt = nextReset(time.Now().UTC())
	s.data[clientID] = u
	return u, nil
}
