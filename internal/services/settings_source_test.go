package services

import (
	"context"
	"testing"
	"time"

	"github.com/wastegate/wastegate/internal/domain/tenant"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/testutil"
)

func TestGuardSettingsSource(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	tenants := NewTenantService(testutil.NewMockTenantRepository(), testConfig(), nil, log)
	source := NewGuardSettingsSource(tenants)
	ctx := context.Background()

	// Defaults for an unconfigured tenant
	settings, err := source.GuardSettings(ctx, "t1")
	if err != nil {
		t.Fatalf("GuardSettings() error = %v", err)
	}
	if settings.KillSwitchThresholdUSD != 500 {
		t.Errorf("KillSwitchThresholdUSD = %v, want 500", settings.KillSwitchThresholdUSD)
	}
	if settings.KillSwitchScope != tenant.ScopeTenant {
		t.Errorf("KillSwitchScope = %s, want tenant", settings.KillSwitchScope)
	}
	if settings.MonthlyCapEnabled {
		t.Error("MonthlyCapEnabled should default to false")
	}

	if _, err := tenants.Update(ctx, "t1", tenant.Update{
		KillSwitchThresholdUSD: fptr(900),
		MonthlyCapEnabled:      bptr(true),
		MonthlyCapUSD:          fptr(3000),
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	settings, err = source.GuardSettings(ctx, "t1")
	if err != nil {
		t.Fatalf("GuardSettings() error = %v", err)
	}
	if settings.KillSwitchThresholdUSD != 900 {
		t.Errorf("KillSwitchThresholdUSD = %v, want 900", settings.KillSwitchThresholdUSD)
	}
	if !settings.MonthlyCapEnabled || settings.MonthlyCapUSD != 3000 {
		t.Errorf("monthly cap = %v/%v, want true/3000", settings.MonthlyCapEnabled, settings.MonthlyCapUSD)
	}
}

func TestBreakerSettingsSource(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	tenants := NewTenantService(testutil.NewMockTenantRepository(), testConfig(), nil, log)
	source := BreakerSettingsSource(tenants)
	ctx := context.Background()

	settings, err := source(ctx, "t1")
	if err != nil {
		t.Fatalf("settings source error = %v", err)
	}
	if settings.FailureThreshold != 3 {
		t.Errorf("FailureThreshold = %d, want 3", settings.FailureThreshold)
	}
	if settings.RecoveryTimeout != time.Minute {
		t.Errorf("RecoveryTimeout = %v, want 1m", settings.RecoveryTimeout)
	}
	if settings.MaxDailySavingsUSD != 1000 {
		t.Errorf("MaxDailySavingsUSD = %v, want 1000", settings.MaxDailySavingsUSD)
	}

	if _, err := tenants.Update(ctx, "t1", tenant.Update{
		FailureThreshold:    iptr(5),
		RecoveryTimeoutSecs: iptr(120),
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	settings, err = source(ctx, "t1")
	if err != nil {
		t.Fatalf("settings source error = %v", err)
	}
	if settings.FailureThreshold != 5 {
		t.Errorf("FailureThreshold = %d, want 5", settings.FailureThreshold)
	}
	if settings.RecoveryTimeout != 2*time.Minute {
		t.Errorf("RecoveryTimeout = %v, want 2m", settings.RecoveryTimeout)
	}
}
