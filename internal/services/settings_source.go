package services

import (
	"context"
	"time"

	"github.com/wastegate/wastegate/internal/breaker"
	"github.com/wastegate/wastegate/internal/domain/tenant"
	"github.com/wastegate/wastegate/internal/guard"
)

// GuardSettingsSource adapts resolved tenant settings to the guard
// coordinator's view of them.
type GuardSettingsSource struct {
	tenants tenant.Service
}

// NewGuardSettingsSource creates a guard settings source
func NewGuardSettingsSource(tenants tenant.Service) *GuardSettingsSource {
	return &GuardSettingsSource{tenants: tenants}
}

// GuardSettings resolves the budget guard thresholds for a tenant
func (g *GuardSettingsSource) GuardSettings(ctx context.Context, tenantID string) (guard.Settings, error) {
	settings, err := g.tenants.Resolve(ctx, tenantID)
	if err != nil {
		return guard.Settings{}, err
	}
	return guard.Settings{
		KillSwitchThresholdUSD: settings.KillSwitchThresholdUSD,
		KillSwitchScope:        settings.KillSwitchScope,
		MonthlyCapEnabled:      settings.MonthlyCapEnabled,
		MonthlyCapUSD:          settings.MonthlyCapUSD,
	}, nil
}

// BreakerSettingsSource adapts resolved tenant settings to the breaker
// cache's settings source.
func BreakerSettingsSource(tenants tenant.Service) breaker.SettingsSource {
	return func(ctx context.Context, tenantID string) (breaker.Settings, error) {
		settings, err := tenants.Resolve(ctx, tenantID)
		if err != nil {
			return breaker.Settings{}, err
		}
		return breaker.Settings{
			FailureThreshold:   settings.FailureThreshold,
			RecoveryTimeout:    time.Duration(settings.RecoveryTimeoutSecs) * time.Second,
			MaxDailySavingsUSD: settings.MaxDailySavingsUSD,
		}, nil
	}
}
