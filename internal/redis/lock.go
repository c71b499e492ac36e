package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"transfleet/internal/domain"
)

// LockStore guards status submissions in Redis: at most one submission
// may be in flight per order, even across gateway replicas.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireSubmissionLock attempts to acquire the in-flight lock for an
// order. Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireSubmissionLock(ctx context.Context, kind domain.OrderKind, orderID string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, submissionLockKey(kind, orderID), "1", ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// ReleaseSubmissionLock releases the in-flight lock for an order.
func (s *LockStore) ReleaseSubmissionLock(ctx context.Context, kind domain.OrderKind, orderID string) error {
	return s.client.Del(ctx, submissionLockKey(kind, orderID)).Err()
}

func submissionLockKey(kind domain.OrderKind, orderID string) string {
	return fmt.Sprintf("lock:submission:%s:%s", kind, orderID)
}
