package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/careers/internal/careers/domain"
	"github.com/aussiebroadwan/careers/internal/careers/store"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultDirectoryCacheSize = 1024
	DefaultDirectoryCacheTTL  = 30 * time.Second
)

// TenantDirectory resolves slugs to tenants. Hits are served from a bounded
// LRU whose entries expire after a TTL; misses are never cached so a freshly
// created tenant is visible immediately.
//
// The cache is local to the process. Invalidate only clears this replica, so
// other replicas may serve a stale profile until the TTL runs out.
type TenantDirectory struct {
	Store store.Store

	cache *expirable.LRU[string, domain.Tenant]
}

// NewTenantDirectory builds a directory over st. A size <= 0 disables the
// cache entirely.
func NewTenantDirectory(st store.Store, size int, ttl time.Duration) *TenantDirectory {
	d := &TenantDirectory{Store: st}
	if size > 0 {
		if ttl <= 0 {
			ttl = DefaultDirectoryCacheTTL
		}
		d.cache = expirable.NewLRU[string, domain.Tenant](size, nil, ttl)
	}
	return d
}

// Lookup returns the tenant for slug or store.ErrNotFound.
func (d *TenantDirectory) Lookup(ctx context.Context, slug string) (domain.Tenant, error) {
	if d.cache != nil {
		if t, ok := d.cache.Get(slug); ok {
			return t, nil
		}
	}

	t, err := d.Store.Tenants().GetTenantBySlug(ctx, slug)
	if err != nil {
		return domain.Tenant{}, err
	}

	if d.cache != nil {
		d.cache.Add(slug, t)
	}
	return t, nil
}

// Invalidate drops slug from the cache after a profile write.
func (d *TenantDirectory) Invalidate(slug string) {
	if d.cache != nil {
		d.cache.Remove(slug)
	}
}

// Len reports the number of cached tenants.
func (d *TenantDirectory) Len() int {
	if d.cache == nil {
		return 0
	}
	return d.cache.Len()
}
