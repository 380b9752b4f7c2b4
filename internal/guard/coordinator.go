package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/wastegate/wastegate/internal/breaker"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/metrics"
)

// Kill-switch scopes. Tenant scope compares one tenant's realized savings
// against the threshold; global scope compares the whole installation's.
const (
	ScopeTenant = "tenant"
	ScopeGlobal = "global"
)

// Settings are the budget-guard thresholds in effect for one tenant
type Settings struct {
	KillSwitchThresholdUSD float64
	KillSwitchScope        string
	MonthlyCapEnabled      bool
	MonthlyCapUSD          float64
}

// Ledger aggregates the tenant-scoped money flows the guards compare
// against their thresholds.
type Ledger interface {
	// SumSavingsOn returns the savings realized on the given UTC day. An
	// empty tenantID sums across all tenants.
	SumSavingsOn(ctx context.Context, tenantID string, day time.Time) (float64, error)

	// SumCostInMonth returns the tenant's aggregated cloud cost for the
	// month containing the given time.
	SumCostInMonth(ctx context.Context, tenantID string, month time.Time) (float64, error)
}

// SettingsSource resolves the guard thresholds for a tenant
type SettingsSource interface {
	GuardSettings(ctx context.Context, tenantID string) (Settings, error)
}

// BreakerSource hands out the tenant's circuit breaker
type BreakerSource interface {
	ForTenant(ctx context.Context, tenantID string) (*breaker.CircuitBreaker, error)
}

// Notifier delivers the budget alert fired when a monthly cap is breached
type Notifier interface {
	SendBudgetAlert(ctx context.Context, tenantID string, spentUSD, capUSD float64) error
}

// Coordinator runs every guard a destructive action must clear, in a fixed
// order with fail-fast semantics: the kill-switch, the monthly hard cap,
// then the tenant's circuit breaker. A check that fails stops the sequence
// before any later check runs or produces side effects.
type Coordinator struct {
	ledger   Ledger
	settings SettingsSource
	breakers BreakerSource
	notifier Notifier
	logger   *logger.Logger
}

// NewCoordinator creates a guard coordinator. The notifier may be nil when
// no alert channel is configured.
func NewCoordinator(ledger Ledger, settings SettingsSource, breakers BreakerSource, notifier Notifier, log *logger.Logger) *Coordinator {
	return &Coordinator{
		ledger:   ledger,
		settings: settings,
		breakers: breakers,
		notifier: notifier,
		logger:   log,
	}
}

// CheckAll clears an action with the given estimated impact through all
// three guards. It returns nil when every guard passes, a *DeniedError when
// a gate blocks the action, and a plain error when a guard could not be
// evaluated at all.
func (c *Coordinator) CheckAll(ctx context.Context, tenantID string, estimatedImpactUSD float64) error {
	cfg, err := c.settings.GuardSettings(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to resolve guard settings for tenant %s: %w", tenantID, err)
	}

	if err := c.CheckKillSwitch(ctx, tenantID, cfg, estimatedImpactUSD); err != nil {
		return c.deny(err)
	}
	if err := c.CheckMonthlyCap(ctx, tenantID, cfg); err != nil {
		return c.deny(err)
	}
	if err := c.CheckBreaker(ctx, tenantID, estimatedImpactUSD); err != nil {
		return c.deny(err)
	}

	metrics.RecordGuardCheck("passed")
	return nil
}

// CheckKillSwitch verifies that today's realized savings plus this action's
// estimated impact stay under the kill-switch threshold for the configured
// scope.
func (c *Coordinator) CheckKillSwitch(ctx context.Context, tenantID string, cfg Settings, estimatedImpactUSD float64) error {
	scopeTenant := tenantID
	if cfg.KillSwitchScope == ScopeGlobal {
		scopeTenant = ""
	}

	realized, err := c.ledger.SumSavingsOn(ctx, scopeTenant, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to aggregate today's savings: %w", err)
	}

	if realized+estimatedImpactUSD > cfg.KillSwitchThresholdUSD {
		return Denied(CodeKillSwitchExceeded, fmt.Sprintf(
			"kill switch engaged: %.2f USD realized today plus %.2f USD estimated exceeds the %.2f USD threshold",
			realized, estimatedImpactUSD, cfg.KillSwitchThresholdUSD))
	}
	return nil
}

// CheckMonthlyCap verifies the tenant's aggregated cost for the current
// month has not already exceeded the configured cap. A breach triggers a
// budget alert through the notifier before the denial is returned.
func (c *Coordinator) CheckMonthlyCap(ctx context.Context, tenantID string, cfg Settings) error {
	if !cfg.MonthlyCapEnabled {
		return nil
	}

	spent, err := c.ledger.SumCostInMonth(ctx, tenantID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to aggregate monthly cost: %w", err)
	}

	if spent > cfg.MonthlyCapUSD {
		if c.notifier != nil {
			if alertErr := c.notifier.SendBudgetAlert(ctx, tenantID, spent, cfg.MonthlyCapUSD); alertErr != nil {
				c.logger.WithError(alertErr).Warn("Failed to deliver budget alert")
			}
		}
		return Denied(CodeMonthlyCapExceeded, fmt.Sprintf(
			"monthly hard cap exceeded: %.2f USD spent against a %.2f USD cap", spent, cfg.MonthlyCapUSD))
	}
	return nil
}

// CheckBreaker delegates admission to the tenant's circuit breaker
func (c *Coordinator) CheckBreaker(ctx context.Context, tenantID string, estimatedImpactUSD float64) error {
	b, err := c.breakers.ForTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	ok, err := b.CanExecute(ctx, estimatedImpactUSD)
	if err != nil {
		return err
	}
	if !ok {
		return Denied(CodeCircuitBreakerOpen, "circuit breaker open")
	}
	return nil
}

// deny records metrics for denials and passes every error through
func (c *Coordinator) deny(err error) error {
	if denied, ok := IsDenied(err); ok {
		metrics.RecordGuardCheck("denied")
		metrics.RecordGuardDenial(denied.Code)
		c.logger.WithFields(map[string]interface{}{
			"code":   denied.Code,
			"reason": denied.Reason,
		}).Warn("Guard denied action")
	}
	return err
}
