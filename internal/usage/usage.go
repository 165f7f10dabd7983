package usage

import (
	"context"
	"errors"
	"time"
)

// Usage is a client's scan-quota snapshot for the current day.
type Usage struct {
	Limit    int       `json:"limit"`
	Used     int       `json:"used"`
	ResetsAt time.Time `json:"resetsAt"`
}

// Remaining reports how many scans the client has left today.
func (u Usage) Remaining() int {
	if r := u.Limit - u.Used; r > 0 {
		return r
	}
	return 0
}

// ErrLimitReached indicates the client exhausted today's scan quota.
var ErrLimitReached = errors.New("daily scan limit reached")

type store interface {
	Get(ctx context.Context, clientID string) (Usage, error)
	Consume(ctx context.Context, clientID string, n int) (Usage, error)
	Refund(ctx context.Context, clientID string, n int) (Usage, error)
	Reset(ctx context.Context, clientID string) (Usage, error)
}

// Service manages scan quotas via an underlying store. Quotas reset at
// UTC midnight.
type Service struct {
	store store
}

// NewService constructs a Service with an in-memory store.
func NewService(dailyLimit int) *Service {
	return &Service{store: newMemoryStore(dailyLimit)}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store) *Service {
	return &Service{store: pgStore}
}

// Get returns the client's current quota, initializing it if absent.
func (s *Service) Get(ctx context.Context, clientID string) (Usage, error) {
	return s.store.Get(ctx, clientID)
}

// Consume records one scan if quota remains, returning ErrLimitReached
// otherwise.
func (s *Service) Consume(ctx context.Context, clientID string) (Usage, error) {
	return s.store.Consume(ctx, clientID, 1)
}

// Refund returns one scan to the client after a submission that never
// reached the model.
func (s *Service) Refund(ctx context.Context, clientID string) (Usage, error) {
	return s.store.Refund(ctx, clientID, 1)
}

// Reset zeroes the client's quota for the current day.
func (s *Service) Reset(ctx context.Context, clientID string) (Usage, error) {
	return s.store.Reset(ctx, clientID)
}

// nextReset is the upcoming UTC midnight.
func nextReset(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}
