package guard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wastegate/wastegate/internal/breaker"
	"github.com/wastegate/wastegate/internal/pkg/logger"
)

type fakeLedger struct {
	tenantSavings float64
	globalSavings float64
	monthlyCost   float64
	savingsErr    error
	costErr       error
	costQueries   int
}

func (l *fakeLedger) SumSavingsOn(_ context.Context, tenantID string, _ time.Time) (float64, error) {
	if l.savingsErr != nil {
		return 0, l.savingsErr
	}
	if tenantID == "" {
		return l.globalSavings, nil
	}
	return l.tenantSavings, nil
}

func (l *fakeLedger) SumCostInMonth(context.Context, string, time.Time) (float64, error) {
	l.costQueries++
	if l.costErr != nil {
		return 0, l.costErr
	}
	return l.monthlyCost, nil
}

type fakeSettings struct {
	cfg Settings
	err error
}

func (s *fakeSettings) GuardSettings(context.Context, string) (Settings, error) {
	return s.cfg, s.err
}

type fakeBreakers struct {
	cache *breaker.TenantCache
}

func (f *fakeBreakers) ForTenant(ctx context.Context, tenantID string) (*breaker.CircuitBreaker, error) {
	return f.cache.ForTenant(ctx, tenantID)
}

type fakeNotifier struct {
	alerts int
	tenant string
}

func (n *fakeNotifier) SendBudgetAlert(_ context.Context, tenantID string, _, _ float64) error {
	n.alerts++
	n.tenant = tenantID
	return nil
}

func defaultGuardSettings() Settings {
	return Settings{
		KillSwitchThresholdUSD: 500,
		KillSwitchScope:        ScopeTenant,
		MonthlyCapEnabled:      true,
		MonthlyCapUSD:          10000,
	}
}

func newTestCoordinator(t *testing.T, ledger *fakeLedger, cfg Settings, notifier Notifier) (*Coordinator, *breaker.TenantCache) {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	cache, err := breaker.NewTenantCache(8, breaker.NewMemoryStore(), breaker.Settings{
		FailureThreshold:   3,
		RecoveryTimeout:    time.Minute,
		MaxDailySavingsUSD: 1000,
	}, nil, log)
	if err != nil {
		t.Fatalf("NewTenantCache() error = %v", err)
	}
	c := NewCoordinator(ledger, &fakeSettings{cfg: cfg}, &fakeBreakers{cache: cache}, notifier, log)
	return c, cache
}

func TestCoordinator_AllGuardsPass(t *testing.T) {
	ledger := &fakeLedger{tenantSavings: 100, monthlyCost: 2000}
	c, _ := newTestCoordinator(t, ledger, defaultGuardSettings(), nil)

	if err := c.CheckAll(context.Background(), "t1", 50); err != nil {
		t.Errorf("CheckAll() error = %v, want nil", err)
	}
}

func TestCoordinator_KillSwitch(t *testing.T) {
	tests := []struct {
		name     string
		realized float64
		impact   float64
		wantDeny bool
	}{
		{"well under threshold passes", 100, 50, false},
		{"impact pushing past threshold denies", 480, 30, true},
		{"landing exactly on threshold passes", 450, 50, false},
		{"already past threshold denies even zero impact", 600, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &fakeLedger{tenantSavings: tt.realized}
			cfg := defaultGuardSettings()
			cfg.MonthlyCapEnabled = false
			c, _ := newTestCoordinator(t, ledger, cfg, nil)

			err := c.CheckAll(context.Background(), "t1", tt.impact)
			denied, isDenied := IsDenied(err)
			if isDenied != tt.wantDeny {
				t.Fatalf("CheckAll() denial = %v, want %v (err %v)", isDenied, tt.wantDeny, err)
			}
			if tt.wantDeny && denied.Code != CodeKillSwitchExceeded {
				t.Errorf("denial code = %q, want %q", denied.Code, CodeKillSwitchExceeded)
			}
		})
	}
}

func TestCoordinator_KillSwitchGlobalScope(t *testing.T) {
	// Global scope compares the installation-wide total, not the tenant's.
	ledger := &fakeLedger{tenantSavings: 10, globalSavings: 490}
	cfg := defaultGuardSettings()
	cfg.KillSwitchScope = ScopeGlobal
	cfg.MonthlyCapEnabled = false
	c, _ := newTestCoordinator(t, ledger, cfg, nil)

	err := c.CheckAll(context.Background(), "t1", 20)
	denied, ok := IsDenied(err)
	if !ok {
		t.Fatalf("CheckAll() = %v, want global kill-switch denial", err)
	}
	if denied.Code != CodeKillSwitchExceeded {
		t.Errorf("denial code = %q, want %q", denied.Code, CodeKillSwitchExceeded)
	}
}

func TestCoordinator_MonthlyCap(t *testing.T) {
	ledger := &fakeLedger{tenantSavings: 0, monthlyCost: 12000}
	notifier := &fakeNotifier{}
	c, _ := newTestCoordinator(t, ledger, defaultGuardSettings(), notifier)

	err := c.CheckAll(context.Background(), "t1", 10)
	denied, ok := IsDenied(err)
	if !ok {
		t.Fatalf("CheckAll() = %v, want monthly cap denial", err)
	}
	if denied.Code != CodeMonthlyCapExceeded {
		t.Errorf("denial code = %q, want %q", denied.Code, CodeMonthlyCapExceeded)
	}
	if notifier.alerts != 1 || notifier.tenant != "t1" {
		t.Errorf("budget alert fired %d times for %q, want once for t1", notifier.alerts, notifier.tenant)
	}
}

func TestCoordinator_MonthlyCapDisabledSkipsQuery(t *testing.T) {
	ledger := &fakeLedger{monthlyCost: 999999}
	cfg := defaultGuardSettings()
	cfg.MonthlyCapEnabled = false
	c, _ := newTestCoordinator(t, ledger, cfg, nil)

	if err := c.CheckAll(context.Background(), "t1", 10); err != nil {
		t.Errorf("CheckAll() error = %v, want nil with cap disabled", err)
	}
	if ledger.costQueries != 0 {
		t.Errorf("monthly cost queried %d times with cap disabled, want 0", ledger.costQueries)
	}
}

func TestCoordinator_BreakerDenies(t *testing.T) {
	ledger := &fakeLedger{}
	cfg := defaultGuardSettings()
	cfg.MonthlyCapEnabled = false
	c, cache := newTestCoordinator(t, ledger, cfg, nil)

	// Trip t1's breaker.
	ctx := context.Background()
	b, _ := cache.ForTenant(ctx, "t1")
	for i := 0; i < 3; i++ {
		b.RecordFailure(ctx, errors.New("executor failed"))
	}

	err := c.CheckAll(ctx, "t1", 10)
	denied, ok := IsDenied(err)
	if !ok {
		t.Fatalf("CheckAll() = %v, want breaker denial", err)
	}
	if denied.Code != CodeCircuitBreakerOpen {
		t.Errorf("denial code = %q, want %q", denied.Code, CodeCircuitBreakerOpen)
	}
	if !strings.Contains(denied.Reason, "circuit breaker open") {
		t.Errorf("denial reason = %q, want it to say the breaker is open", denied.Reason)
	}

	// Other tenants are unaffected.
	if err := c.CheckAll(ctx, "t2", 10); err != nil {
		t.Errorf("CheckAll(t2) error = %v, want nil", err)
	}
}

func TestCoordinator_BreakerBudgetDenies(t *testing.T) {
	// The breaker check also covers the per-tenant daily savings budget.
	ledger := &fakeLedger{}
	cfg := defaultGuardSettings()
	cfg.MonthlyCapEnabled = false
	cfg.KillSwitchThresholdUSD = 100000
	c, cache := newTestCoordinator(t, ledger, cfg, nil)

	ctx := context.Background()
	b, _ := cache.ForTenant(ctx, "t1")
	b.RecordSuccess(ctx, 990)

	err := c.CheckAll(ctx, "t1", 20)
	denied, ok := IsDenied(err)
	if !ok {
		t.Fatalf("CheckAll() = %v, want breaker budget denial", err)
	}
	if denied.Code != CodeCircuitBreakerOpen {
		t.Errorf("denial code = %q, want %q", denied.Code, CodeCircuitBreakerOpen)
	}
}

func TestCoordinator_FailFastOrdering(t *testing.T) {
	// A kill-switch denial must stop the sequence before the monthly cap
	// query runs.
	ledger := &fakeLedger{tenantSavings: 10000, monthlyCost: 1}
	c, _ := newTestCoordinator(t, ledger, defaultGuardSettings(), nil)

	err := c.CheckAll(context.Background(), "t1", 10)
	denied, ok := IsDenied(err)
	if !ok || denied.Code != CodeKillSwitchExceeded {
		t.Fatalf("CheckAll() = %v, want kill-switch denial first", err)
	}
	if ledger.costQueries != 0 {
		t.Errorf("monthly cost queried %d times after kill-switch denial, want 0", ledger.costQueries)
	}
}

func TestCoordinator_InfrastructureErrorIsNotDenial(t *testing.T) {
	ledger := &fakeLedger{savingsErr: errors.New("ledger unavailable")}
	c, _ := newTestCoordinator(t, ledger, defaultGuardSettings(), nil)

	err := c.CheckAll(context.Background(), "t1", 10)
	if err == nil {
		t.Fatal("CheckAll() error = nil, want aggregation failure")
	}
	if _, ok := IsDenied(err); ok {
		t.Error("aggregation failure surfaced as a denial, want a plain error")
	}
}

func TestDeniedError_Message(t *testing.T) {
	err := Denied(CodeCircuitBreakerOpen, "circuit breaker open")
	if !strings.Contains(err.Error(), CodeCircuitBreakerOpen) || !strings.Contains(err.Error(), "circuit breaker open") {
		t.Errorf("Error() = %q, want code and reason present", err.Error())
	}
}
