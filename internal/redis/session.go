package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"transfleet/internal/domain"
)

// SessionStore keeps the authenticated driver sessions, keyed by the
// upstream access token. This is the gateway's only durable local
// state; orders and repairs are never persisted here.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

const sessionKeyPrefix = "session:"

// Set stores a session for the given TTL.
func (s *SessionStore) Set(ctx context.Context, session domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+session.Token, data, ttl).Err()
}

// Get retrieves the session for a token. An unknown token returns nil
// with no error.
func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // No such session
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	session.Token = token
	return &session, nil
}

// Delete removes a session, forcing the next request to sign in again.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
