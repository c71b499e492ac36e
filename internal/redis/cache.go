package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"transfleet/internal/domain"
)

// CacheStore handles entity caching in Redis: resolved display names
// for the address/customer lookups and the per-user driver profile.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	// Administrative-area names are effectively static.
	AreaNameCacheTTL = 24 * time.Hour
	// Customer display names change rarely but are server-editable.
	CustomerNameCacheTTL = 10 * time.Minute
	// Profile mirrors the upstream driver/vehicle detail.
	ProfileCacheTTL = 12 * time.Hour
)

// Key prefixes
const (
	provinceCachePrefix = "cache:province:"
	districtCachePrefix = "cache:district:"
	wardCachePrefix     = "cache:ward:"
	customerCachePrefix = "cache:customer:"
	profileCachePrefix  = "cache:profile:"
)

// GetProvinceName retrieves a cached province name. A cache miss
// returns "" with no error.
func (s *CacheStore) GetProvinceName(ctx context.Context, code string) (string, error) {
	return s.getName(ctx, provinceCachePrefix+code)
}

// SetProvinceName caches a resolved province name.
func (s *CacheStore) SetProvinceName(ctx context.Context, code, name string) error {
	return s.client.Set(ctx, provinceCachePrefix+code, name, AreaNameCacheTTL).Err()
}

// GetDistrictName retrieves a cached district name.
func (s *CacheStore) GetDistrictName(ctx context.Context, code string) (string, error) {
	return s.getName(ctx, districtCachePrefix+code)
}

// SetDistrictName caches a resolved district name.
func (s *CacheStore) SetDistrictName(ctx context.Context, code, name string) error {
	return s.client.Set(ctx, districtCachePrefix+code, name, AreaNameCacheTTL).Err()
}

// GetWardName retrieves a cached ward name.
func (s *CacheStore) GetWardName(ctx context.Context, code string) (string, error) {
	return s.getName(ctx, wardCachePrefix+code)
}

// SetWardName caches a resolved ward name.
func (s *CacheStore) SetWardName(ctx context.Context, code, name string) error {
	return s.client.Set(ctx, wardCachePrefix+code, name, AreaNameCacheTTL).Err()
}

// GetCustomerName retrieves a cached customer display name.
func (s *CacheStore) GetCustomerName(ctx context.Context, id string) (string, error) {
	return s.getName(ctx, customerCachePrefix+id)
}

// SetCustomerName caches a resolved customer display name.
func (s *CacheStore) SetCustomerName(ctx context.Context, id, name string) error {
	return s.client.Set(ctx, customerCachePrefix+id, name, CustomerNameCacheTTL).Err()
}

func (s *CacheStore) getName(ctx context.Context, key string) (string, error) {
	name, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // Cache miss
		}
		return "", err
	}
	return name, nil
}

// GetProfile retrieves a cached driver profile. A cache miss returns
// nil with no error.
func (s *CacheStore) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	data, err := s.client.Get(ctx, profileCachePrefix+userID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var profile domain.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetProfile stores a driver profile in cache.
func (s *CacheStore) SetProfile(ctx context.Context, userID string, profile *domain.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, profileCachePrefix+userID, data, ProfileCacheTTL).Err()
}

// InvalidateProfile removes a driver profile from cache.
func (s *CacheStore) InvalidateProfile(ctx context.Context, userID string) error {
	return s.client.Del(ctx, profileCachePrefix+userID).Err()
}
