package services

import (
	"context"
	"fmt"
	"time"

	"github.com/wastegate/wastegate/internal/config"
	"github.com/wastegate/wastegate/internal/domain/tenant"
	"github.com/wastegate/wastegate/internal/pkg/logger"
)

// BreakerInvalidator drops a tenant's cached breaker so changed settings
// take effect on the next execution.
type BreakerInvalidator interface {
	Invalidate(tenantID string)
}

// TenantService implements tenant.Service. Stored settings are partial:
// Resolve overlays them on the installation defaults from the environment.
type TenantService struct {
	repo     tenant.Repository
	defaults tenant.Settings
	breakers BreakerInvalidator
	logger   *logger.Logger
}

// NewTenantService creates a new tenant settings service. The invalidator
// may be nil in contexts without a breaker cache (CLI, migrations).
func NewTenantService(repo tenant.Repository, cfg *config.Config, breakers BreakerInvalidator, log *logger.Logger) tenant.Service {
	return &TenantService{
		repo: repo,
		defaults: tenant.Settings{
			KillSwitchThresholdUSD: cfg.Guard.KillSwitchThresholdUSD,
			KillSwitchScope:        cfg.Guard.KillSwitchScope,
			MonthlyCapEnabled:      cfg.Guard.MonthlyCapEnabled,
			MonthlyCapUSD:          cfg.Guard.MonthlyCapUSD,
			FailureThreshold:       cfg.Breaker.FailureThreshold,
			RecoveryTimeoutSecs:    int(cfg.Breaker.RecoveryTimeout / time.Second),
			MaxDailySavingsUSD:     cfg.Breaker.MaxDailySavingsUSD,
			MinAgeEnabled:          cfg.SafeOps.MinAgeEnabled,
			MinAgeDays:             cfg.SafeOps.MinAgeDays,
		},
		breakers: breakers,
		logger:   log,
	}
}

// Resolve returns the tenant's effective settings
func (s *TenantService) Resolve(ctx context.Context, tenantID string) (*tenant.Settings, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant ID is required")
	}

	stored, err := s.repo.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	effective := s.defaults
	effective.TenantID = tenantID
	if stored != nil {
		effective = *stored
	}
	return &effective, nil
}

// Update applies a partial settings update and returns the new effective
// settings. Fields left nil keep their current effective value.
func (s *TenantService) Update(ctx context.Context, tenantID string, update tenant.Update) (*tenant.Settings, error) {
	current, err := s.Resolve(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if update.KillSwitchThresholdUSD != nil {
		if *update.KillSwitchThresholdUSD < 0 {
			return nil, fmt.Errorf("kill-switch threshold must not be negative")
		}
		current.KillSwitchThresholdUSD = *update.KillSwitchThresholdUSD
	}
	if update.KillSwitchScope != nil {
		if !tenant.ValidScope(*update.KillSwitchScope) {
			return nil, fmt.Errorf("invalid kill-switch scope: %s", *update.KillSwitchScope)
		}
		current.KillSwitchScope = *update.KillSwitchScope
	}
	if update.MonthlyCapEnabled != nil {
		current.MonthlyCapEnabled = *update.MonthlyCapEnabled
	}
	if update.MonthlyCapUSD != nil {
		if *update.MonthlyCapUSD < 0 {
			return nil, fmt.Errorf("monthly cap must not be negative")
		}
		current.MonthlyCapUSD = *update.MonthlyCapUSD
	}
	if update.FailureThreshold != nil {
		if *update.FailureThreshold < 1 {
			return nil, fmt.Errorf("failure threshold must be at least 1")
		}
		current.FailureThreshold = *update.FailureThreshold
	}
	if update.RecoveryTimeoutSecs != nil {
		if *update.RecoveryTimeoutSecs < 1 {
			return nil, fmt.Errorf("recovery timeout must be at least 1 second")
		}
		current.RecoveryTimeoutSecs = *update.RecoveryTimeoutSecs
	}
	if update.MaxDailySavingsUSD != nil {
		if *update.MaxDailySavingsUSD < 0 {
			return nil, fmt.Errorf("daily savings budget must not be negative")
		}
		current.MaxDailySavingsUSD = *update.MaxDailySavingsUSD
	}
	if update.MinAgeEnabled != nil {
		current.MinAgeEnabled = *update.MinAgeEnabled
	}
	if update.MinAgeDays != nil {
		if *update.MinAgeDays < 0 {
			return nil, fmt.Errorf("minimum age must not be negative")
		}
		current.MinAgeDays = *update.MinAgeDays
	}

	if err := s.repo.Upsert(ctx, current); err != nil {
		return nil, err
	}

	if s.breakers != nil {
		s.breakers.Invalidate(tenantID)
	}

	s.logger.WithFields(map[string]interface{}{
		"tenant_id": tenantID,
	}).Info("Tenant settings updated")

	return current, nil
}

// Reset drops a tenant's stored settings, reverting it to the defaults
func (s *TenantService) Reset(ctx context.Context, tenantID string) error {
	if err := s.repo.Delete(ctx, tenantID); err != nil {
		return err
	}

	if s.breakers != nil {
		s.breakers.Invalidate(tenantID)
	}

	s.logger.WithFields(map[string]interface{}{
		"tenant_id": tenantID,
	}).Info("Tenant settings reset to defaults")

	return nil
}

// List retrieves tenants with stored settings
func (s *TenantService) List(ctx context.Context, limit, offset int) ([]*tenant.Settings, int64, error) {
	return s.repo.List(ctx, limit, offset)
}
