package service

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"transfleet/internal/domain"
	"transfleet/internal/redis"
	"transfleet/internal/upstream"
)

// fallbackName is shown when a lookup cannot be resolved at all.
const fallbackName = "N/A"

// ResolutionService turns location codes and customer ids into display
// strings. Resolution is best effort: a failed lookup degrades to the
// order's free-text location (or "N/A") and never propagates an error,
// so a flaky geo endpoint cannot block the order list.
type ResolutionService struct {
	geo       upstream.GeoAPI
	customers upstream.CustomerAPI
	cache     redis.CacheStoreInterface
	group     singleflight.Group
}

// NewResolutionService creates a new ResolutionService.
func NewResolutionService(geo upstream.GeoAPI, customers upstream.CustomerAPI, cache redis.CacheStoreInterface) *ResolutionService {
	return &ResolutionService{geo: geo, customers: customers, cache: cache}
}

// ResolveLocation renders a route point as "ward, district, province",
// prefixed with the point's free text when present. The three lookups
// are independent fields and run concurrently; the ward endpoint is
// never called when the point has no ward code. Any lookup failure
// falls back to the free text, else "N/A".
func (s *ResolutionService) ResolveLocation(ctx context.Context, point domain.RoutePoint) string {
	var province, district, ward string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		province, err = s.lookup(gctx, "province", point.ProvinceCode, s.cacheProvince(), s.geo.ProvinceName)
		return err
	})
	g.Go(func() (err error) {
		district, err = s.lookup(gctx, "district", point.DistrictCode, s.cacheDistrict(), s.geo.DistrictName)
		return err
	})
	if point.WardCode != "" {
		g.Go(func() (err error) {
			ward, err = s.lookup(gctx, "ward", point.WardCode, s.cacheWard(), s.geo.WardName)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("address resolution degraded: %v", err)
		if point.LocationText != "" {
			return point.LocationText
		}
		return fallbackName
	}

	parts := make([]string, 0, 4)
	if point.LocationText != "" {
		parts = append(parts, point.LocationText)
	}
	if ward != "" {
		parts = append(parts, ward)
	}
	if district != "" {
		parts = append(parts, district)
	}
	if province != "" {
		parts = append(parts, province)
	}
	if len(parts) == 0 {
		return fallbackName
	}
	return strings.Join(parts, ", ")
}

// ResolveCustomer returns the customer's short display name, or "N/A"
// when the id is empty or the lookup fails.
func (s *ResolutionService) ResolveCustomer(ctx context.Context, id string) string {
	if id == "" {
		return fallbackName
	}

	name, err := s.lookup(ctx, "customer", id, cachePair{
		get: s.cache.GetCustomerName,
		set: s.cache.SetCustomerName,
	}, func(ctx context.Context, id string) (string, error) {
		customer, err := s.customers.GetCustomer(ctx, id)
		if err != nil {
			return "", err
		}
		return customer.ShortName, nil
	})
	if err != nil || name == "" {
		if err != nil {
			log.Printf("customer resolution degraded for %s: %v", id, err)
		}
		return fallbackName
	}
	return name
}

// cachePair binds one name kind to its cache accessors.
type cachePair struct {
	get func(ctx context.Context, key string) (string, error)
	set func(ctx context.Context, key, name string) error
}

func (s *ResolutionService) cacheProvince() cachePair {
	return cachePair{get: s.cache.GetProvinceName, set: s.cache.SetProvinceName}
}

func (s *ResolutionService) cacheDistrict() cachePair {
	return cachePair{get: s.cache.GetDistrictName, set: s.cache.SetDistrictName}
}

func (s *ResolutionService) cacheWard() cachePair {
	return cachePair{get: s.cache.GetWardName, set: s.cache.SetWardName}
}

// lookup resolves one name through the cache, collapsing concurrent
// lookups of the same key into a single upstream call.
func (s *ResolutionService) lookup(ctx context.Context, kind, key string, cache cachePair, fetch func(context.Context, string) (string, error)) (string, error) {
	if cached, err := cache.get(ctx, key); err == nil && cached != "" {
		return cached, nil
	}

	name, err, _ := s.group.Do(kind+":"+key, func() (any, error) {
		name, err := fetch(ctx, key)
		if err != nil {
			return "", err
		}
		if name != "" {
			if err := cache.set(ctx, key, name); err != nil {
				log.Printf("name cache write failed for %s %s: %v", kind, key, err)
			}
		}
		return name, nil
	})
	if err != nil {
		return "", err
	}
	return name.(string), nil
}
