package breaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func newTestCache(t *testing.T, capacity int, settings SettingsSource) *TenantCache {
	t.Helper()
	c, err := NewTenantCache(capacity, NewMemoryStore(), testSettings(), settings, testLogger())
	if err != nil {
		t.Fatalf("NewTenantCache() error = %v", err)
	}
	return c
}

func TestTenantCache_LazyCreateAndReuse(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, 4, nil)

	b1, err := c.ForTenant(ctx, "t1")
	if err != nil {
		t.Fatalf("ForTenant() error = %v", err)
	}
	b2, err := c.ForTenant(ctx, "t1")
	if err != nil {
		t.Fatalf("ForTenant() error = %v", err)
	}
	if b1 != b2 {
		t.Error("ForTenant() returned a new breaker for a cached tenant")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestTenantCache_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, 2, nil)

	c.ForTenant(ctx, "t1")
	c.ForTenant(ctx, "t2")

	// Touch t1 so t2 becomes the least recently used.
	c.ForTenant(ctx, "t1")

	// Inserting t3 must evict t2, not the most recently inserted t1.
	c.ForTenant(ctx, "t3")

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Peek("t2"); ok {
		t.Error("t2 still cached, want it evicted as least recently used")
	}
	if _, ok := c.Peek("t1"); !ok {
		t.Error("t1 evicted despite being most recently used")
	}
	if _, ok := c.Peek("t3"); !ok {
		t.Error("t3 missing right after insertion")
	}
}

func TestTenantCache_CapacityNeverExceeded(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, 3, nil)

	for i := 0; i < 10; i++ {
		c.ForTenant(ctx, fmt.Sprintf("tenant-%d", i))
		if got := c.Len(); got > 3 {
			t.Fatalf("Len() = %d after %d inserts, capacity 3 exceeded", got, i+1)
		}
	}
}

func TestTenantCache_PerTenantSettings(t *testing.T) {
	ctx := context.Background()
	source := func(_ context.Context, tenantID string) (Settings, error) {
		if tenantID == "vip" {
			return Settings{FailureThreshold: 10, RecoveryTimeout: time.Hour, MaxDailySavingsUSD: 9999}, nil
		}
		return testSettings(), nil
	}
	c := newTestCache(t, 4, source)

	vip, err := c.ForTenant(ctx, "vip")
	if err != nil {
		t.Fatalf("ForTenant() error = %v", err)
	}
	if vip.Settings().FailureThreshold != 10 {
		t.Errorf("vip threshold = %d, want 10", vip.Settings().FailureThreshold)
	}

	plain, _ := c.ForTenant(ctx, "t1")
	if plain.Settings().FailureThreshold != testSettings().FailureThreshold {
		t.Errorf("default threshold = %d, want %d", plain.Settings().FailureThreshold, testSettings().FailureThreshold)
	}
}

func TestTenantCache_SetSettingsSource(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, 4, nil)

	before, _ := c.ForTenant(ctx, "t1")
	c.SetSettingsSource(func(context.Context, string) (Settings, error) {
		return Settings{FailureThreshold: 7, RecoveryTimeout: time.Minute, MaxDailySavingsUSD: 50}, nil
	})

	// Cached breakers keep their original settings until invalidated.
	if before.Settings().FailureThreshold != testSettings().FailureThreshold {
		t.Errorf("cached threshold = %d, want %d", before.Settings().FailureThreshold, testSettings().FailureThreshold)
	}

	c.Invalidate("t1")
	after, err := c.ForTenant(ctx, "t1")
	if err != nil {
		t.Fatalf("ForTenant() error = %v", err)
	}
	if after.Settings().FailureThreshold != 7 {
		t.Errorf("rebuilt threshold = %d, want 7", after.Settings().FailureThreshold)
	}
}

func TestTenantCache_SettingsSourceErrorPropagates(t *testing.T) {
	ctx := context.Background()
	source := func(context.Context, string) (Settings, error) {
		return Settings{}, errors.New("settings store down")
	}
	c := newTestCache(t, 4, source)

	if _, err := c.ForTenant(ctx, "t1"); err == nil {
		t.Error("ForTenant() expected settings error to propagate, got nil")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after failed create, want 0", c.Len())
	}
}

func TestTenantCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, 4, nil)

	first, _ := c.ForTenant(ctx, "t1")
	c.Invalidate("t1")
	second, _ := c.ForTenant(ctx, "t1")

	if first == second {
		t.Error("ForTenant() after Invalidate() returned the stale breaker")
	}
}

func TestTenantCache_StateSurvivesEviction(t *testing.T) {
	// Evicting a breaker drops the in-process handle only; its persisted
	// state lives in the shared store and reattaches on the next access.
	ctx := context.Background()
	store := NewMemoryStore()
	c, err := NewTenantCache(1, store, testSettings(), nil, testLogger())
	if err != nil {
		t.Fatalf("NewTenantCache() error = %v", err)
	}

	b, _ := c.ForTenant(ctx, "t1")
	b.RecordFailure(ctx, errors.New("boom"))

	// Evict t1 by inserting another tenant into the capacity-1 cache.
	c.ForTenant(ctx, "t2")
	if _, ok := c.Peek("t1"); ok {
		t.Fatal("t1 still cached, want it evicted")
	}

	reborn, _ := c.ForTenant(ctx, "t1")
	status, err := reborn.Status(ctx)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.FailureCount != 1 {
		t.Errorf("failure count after re-create = %d, want 1", status.FailureCount)
	}
}

func TestNewTenantCache_RejectsNonPositiveCapacity(t *testing.T) {
	if _, err := NewTenantCache(0, NewMemoryStore(), testSettings(), nil, testLogger()); err == nil {
		t.Error("NewTenantCache(0) expected error, got nil")
	}
}
