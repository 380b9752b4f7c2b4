package services

import (
	"context"
	"testing"

	"github.com/wastegate/wastegate/internal/domain/tenant"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/testutil"
)

type invalidateRecorder struct {
	invalidated []string
}

func (r *invalidateRecorder) Invalidate(tenantID string) {
	r.invalidated = append(r.invalidated, tenantID)
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func bptr(v bool) *bool       { return &v }
func sptr(v string) *string   { return &v }

func newTenantFixture(t *testing.T) (tenant.Service, *testutil.MockTenantRepository, *invalidateRecorder) {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	repo := testutil.NewMockTenantRepository()
	rec := &invalidateRecorder{}
	return NewTenantService(repo, testConfig(), rec, log), repo, rec
}

func TestTenantService_Resolve_Defaults(t *testing.T) {
	svc, _, _ := newTenantFixture(t)

	settings, err := svc.Resolve(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if settings.TenantID != "t1" {
		t.Errorf("TenantID = %s, want t1", settings.TenantID)
	}
	if settings.KillSwitchThresholdUSD != 500 {
		t.Errorf("KillSwitchThresholdUSD = %v, want 500", settings.KillSwitchThresholdUSD)
	}
	if settings.KillSwitchScope != tenant.ScopeTenant {
		t.Errorf("KillSwitchScope = %s, want tenant", settings.KillSwitchScope)
	}
	if settings.FailureThreshold != 3 {
		t.Errorf("FailureThreshold = %d, want 3", settings.FailureThreshold)
	}
	if settings.RecoveryTimeoutSecs != 60 {
		t.Errorf("RecoveryTimeoutSecs = %d, want 60", settings.RecoveryTimeoutSecs)
	}
	if settings.MaxDailySavingsUSD != 1000 {
		t.Errorf("MaxDailySavingsUSD = %v, want 1000", settings.MaxDailySavingsUSD)
	}
	if settings.MinAgeEnabled {
		t.Error("MinAgeEnabled should default to false")
	}
	if settings.MinAgeDays != 7 {
		t.Errorf("MinAgeDays = %d, want 7", settings.MinAgeDays)
	}

	if _, err := svc.Resolve(context.Background(), ""); err == nil {
		t.Error("Resolve() without tenant ID should fail")
	}
}

func TestTenantService_Update(t *testing.T) {
	svc, repo, rec := newTenantFixture(t)
	ctx := context.Background()

	updated, err := svc.Update(ctx, "t1", tenant.Update{
		KillSwitchThresholdUSD: fptr(750),
		MonthlyCapEnabled:      bptr(true),
		MonthlyCapUSD:          fptr(5000),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.KillSwitchThresholdUSD != 750 {
		t.Errorf("KillSwitchThresholdUSD = %v, want 750", updated.KillSwitchThresholdUSD)
	}
	if !updated.MonthlyCapEnabled || updated.MonthlyCapUSD != 5000 {
		t.Errorf("monthly cap = %v/%v, want true/5000", updated.MonthlyCapEnabled, updated.MonthlyCapUSD)
	}
	// Untouched fields keep the installation defaults
	if updated.FailureThreshold != 3 {
		t.Errorf("FailureThreshold = %d, want 3", updated.FailureThreshold)
	}

	// The stored row holds the full effective settings, so later default
	// changes do not leak into tenants that have been customized.
	stored, err := repo.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("repo Get() error = %v", err)
	}
	if stored == nil {
		t.Fatal("settings row should be stored")
	}
	if stored.FailureThreshold != 3 {
		t.Errorf("stored FailureThreshold = %d, want 3", stored.FailureThreshold)
	}

	if len(rec.invalidated) != 1 || rec.invalidated[0] != "t1" {
		t.Errorf("invalidated = %v, want [t1]", rec.invalidated)
	}

	// A second partial update builds on the stored values
	updated, err = svc.Update(ctx, "t1", tenant.Update{FailureThreshold: iptr(5)})
	if err != nil {
		t.Fatalf("second Update() error = %v", err)
	}
	if updated.KillSwitchThresholdUSD != 750 {
		t.Errorf("KillSwitchThresholdUSD = %v, want 750 after unrelated update", updated.KillSwitchThresholdUSD)
	}
	if updated.FailureThreshold != 5 {
		t.Errorf("FailureThreshold = %d, want 5", updated.FailureThreshold)
	}
}

func TestTenantService_Update_Validation(t *testing.T) {
	svc, _, _ := newTenantFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		update tenant.Update
	}{
		{"negative kill-switch threshold", tenant.Update{KillSwitchThresholdUSD: fptr(-1)}},
		{"invalid scope", tenant.Update{KillSwitchScope: sptr("region")}},
		{"negative monthly cap", tenant.Update{MonthlyCapUSD: fptr(-100)}},
		{"zero failure threshold", tenant.Update{FailureThreshold: iptr(0)}},
		{"zero recovery timeout", tenant.Update{RecoveryTimeoutSecs: iptr(0)}},
		{"negative savings budget", tenant.Update{MaxDailySavingsUSD: fptr(-5)}},
		{"negative minimum age", tenant.Update{MinAgeDays: iptr(-1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Update(ctx, "t1", tc.update); err == nil {
				t.Errorf("Update(%+v) should fail", tc.update)
			}
		})
	}
}

func TestTenantService_Update_ValidScope(t *testing.T) {
	svc, _, _ := newTenantFixture(t)

	updated, err := svc.Update(context.Background(), "t1", tenant.Update{KillSwitchScope: sptr(tenant.ScopeGlobal)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.KillSwitchScope != tenant.ScopeGlobal {
		t.Errorf("KillSwitchScope = %s, want global", updated.KillSwitchScope)
	}
}

func TestTenantService_Reset(t *testing.T) {
	svc, repo, rec := newTenantFixture(t)
	ctx := context.Background()

	if _, err := svc.Update(ctx, "t1", tenant.Update{KillSwitchThresholdUSD: fptr(900)}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if err := svc.Reset(ctx, "t1"); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	stored, err := repo.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("repo Get() error = %v", err)
	}
	if stored != nil {
		t.Error("stored settings should be gone after reset")
	}

	settings, err := svc.Resolve(ctx, "t1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if settings.KillSwitchThresholdUSD != 500 {
		t.Errorf("KillSwitchThresholdUSD = %v, want default 500", settings.KillSwitchThresholdUSD)
	}

	// Update then reset, one invalidation each
	if len(rec.invalidated) != 2 {
		t.Errorf("invalidations = %d, want 2", len(rec.invalidated))
	}

	if err := svc.Reset(ctx, "missing"); err == nil {
		t.Error("Reset() without stored settings should fail")
	}
}

func TestTenantService_List(t *testing.T) {
	svc, _, _ := newTenantFixture(t)
	ctx := context.Background()

	for _, id := range []string{"t-b", "t-a", "t-c"} {
		if _, err := svc.Update(ctx, id, tenant.Update{MinAgeEnabled: bptr(true)}); err != nil {
			t.Fatalf("Update(%s) error = %v", id, err)
		}
	}

	settings, total, err := svc.List(ctx, 2, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(settings) != 2 {
		t.Fatalf("page = %d, want 2", len(settings))
	}
	if settings[0].TenantID != "t-a" || settings[1].TenantID != "t-b" {
		t.Errorf("order = [%s %s], want [t-a t-b]", settings[0].TenantID, settings[1].TenantID)
	}
}
