package redis

import (
	"context"
	"time"

	"transfleet/internal/domain"
)

// SessionStoreInterface defines the interface for session persistence.
type SessionStoreInterface interface {
	Set(ctx context.Context, session domain.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// LockStoreInterface defines the interface for submission locking.
type LockStoreInterface interface {
	AcquireSubmissionLock(ctx context.Context, kind domain.OrderKind, orderID string, ttl time.Duration) (bool, error)
	ReleaseSubmissionLock(ctx context.Context, kind domain.OrderKind, orderID string) error
}

// CacheStoreInterface defines the interface for name and profile
// caching.
type CacheStoreInterface interface {
	GetProvinceName(ctx context.Context, code string) (string, error)
	SetProvinceName(ctx context.Context, code, name string) error
	GetDistrictName(ctx context.Context, code string) (string, error)
	SetDistrictName(ctx context.Context, code, name string) error
	GetWardName(ctx context.Context, code string) (string, error)
	SetWardName(ctx context.Context, code, name string) error
	GetCustomerName(ctx context.Context, id string) (string, error)
	SetCustomerName(ctx context.Context, id, name string) error
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	SetProfile(ctx context.Context, userID string, profile *domain.Profile) error
	InvalidateProfile(ctx context.Context, userID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ SessionStoreInterface = (*SessionStore)(nil)
	_ LockStoreInterface    = (*LockStore)(nil)
	_ CacheStoreInterface   = (*CacheStore)(nil)
)
