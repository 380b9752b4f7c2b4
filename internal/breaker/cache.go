package breaker

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/metrics"
)

// SettingsSource resolves per-tenant breaker settings. Implementations that
// have no override for a tenant return the defaults they were given.
type SettingsSource func(ctx context.Context, tenantID string) (Settings, error)

// TenantCache hands out circuit breakers per tenant, creating them lazily
// and bounding how many live in this process. Lookups refresh recency;
// creating a breaker past capacity evicts the least-recently-used tenant.
// One mutex covers the whole get-or-create-or-evict sequence so concurrent
// callers for the same tenant always share one breaker instance.
type TenantCache struct {
	mu       sync.Mutex
	entries  *lru.Cache[string, *CircuitBreaker]
	store    Store
	defaults Settings
	settings SettingsSource
	logger   *logger.Logger
}

// NewTenantCache creates a bounded breaker cache. A nil store means every
// breaker gets the shared in-memory fallback; a nil settings source pins
// all tenants to the defaults.
func NewTenantCache(capacity int, store Store, defaults Settings, settings SettingsSource, log *logger.Logger) (*TenantCache, error) {
	if store == nil {
		store = NewMemoryStore()
	}

	c := &TenantCache{
		store:    store,
		defaults: defaults,
		settings: settings,
		logger:   log,
	}

	entries, err := lru.NewWithEvict(capacity, c.onEvict)
	if err != nil {
		return nil, fmt.Errorf("invalid breaker cache capacity %d: %w", capacity, err)
	}
	c.entries = entries
	return c, nil
}

// SetSettingsSource attaches the per-tenant settings resolver. Breakers
// already cached keep the settings they were built with until invalidated.
func (c *TenantCache) SetSettingsSource(settings SettingsSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = settings
}

// ForTenant returns the tenant's breaker, creating it on first access
func (c *TenantCache) ForTenant(ctx context.Context, tenantID string) (*CircuitBreaker, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if b, ok := c.entries.Get(tenantID); ok {
		return b, nil
	}

	settings := c.defaults
	if c.settings != nil {
		resolved, err := c.settings(ctx, tenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve breaker settings for tenant %s: %w", tenantID, err)
		}
		settings = resolved
	}

	b := New(tenantID, settings, c.store, c.logger)
	c.entries.Add(tenantID, b)
	metrics.SetBreakerCacheSize(float64(c.entries.Len()))
	return b, nil
}

// Invalidate drops a tenant's cached breaker so the next access rebuilds it
// with fresh settings.
func (c *TenantCache) Invalidate(tenantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Remove(tenantID)
	metrics.SetBreakerCacheSize(float64(c.entries.Len()))
}

// Len returns the number of cached breakers
func (c *TenantCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Tenants returns the cached tenant IDs from least to most recently used
func (c *TenantCache) Tenants() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Keys()
}

// Peek returns a cached breaker without refreshing its recency
func (c *TenantCache) Peek(tenantID string) (*CircuitBreaker, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Peek(tenantID)
}

func (c *TenantCache) onEvict(tenantID string, _ *CircuitBreaker) {
	metrics.RecordBreakerEviction()
	metrics.DeleteBreakerState(tenantID)
	c.logger.With("tenant_id", tenantID).Debug("Evicted tenant breaker from cache")
}
