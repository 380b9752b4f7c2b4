package breaker

import (
	"context"
	"strconv"
	"time"

	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/metrics"
)

// State is a circuit breaker state
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

// GaugeValue maps a state onto the numeric value exported to dashboards
func (s State) GaugeValue() float64 {
	switch s {
	case StateOpen:
		return 1
	case StateHalfOpen:
		return 2
	default:
		return 0
	}
}

// Settings tunes one tenant's circuit breaker
type Settings struct {
	FailureThreshold   int
	RecoveryTimeout    time.Duration
	MaxDailySavingsUSD float64
}

// Status is the operational snapshot exposed to dashboards
type Status struct {
	TenantID        string  `json:"tenant_id"`
	State           State   `json:"state"`
	FailureCount    int64   `json:"failure_count"`
	DailySavingsUSD float64 `json:"daily_savings_usd"`
	CanExecute      bool    `json:"can_execute"`
	LastError       string  `json:"last_error,omitempty"`
}

// CircuitBreaker guards one tenant's autonomous remediation. It opens after
// repeated execution failures, probes recovery after a cooldown, and caps
// the savings a tenant may realize per UTC day. All state lives in the
// backing Store so it survives this process; the daily rollover sequence is
// a read-modify-write and is not transactional across instances.
type CircuitBreaker struct {
	tenantID string
	settings Settings
	store    Store
	logger   *logger.Logger
}

// New creates a breaker for a tenant. A nil store falls back to a private
// in-memory store.
func New(tenantID string, settings Settings, store Store, log *logger.Logger) *CircuitBreaker {
	if store == nil {
		store = NewMemoryStore()
	}
	return &CircuitBreaker{
		tenantID: tenantID,
		settings: settings,
		store:    store,
		logger:   log.With("tenant_id", tenantID),
	}
}

// TenantID returns the tenant this breaker guards
func (b *CircuitBreaker) TenantID() string {
	return b.tenantID
}

// Settings returns the breaker's tuning
func (b *CircuitBreaker) Settings() Settings {
	return b.settings
}

// CanExecute reports whether an action with the given estimated savings may
// proceed. An open breaker whose recovery timeout has elapsed moves to
// half-open and admits this call as the probe. A closed or half-open
// breaker additionally enforces the per-tenant daily savings budget.
func (b *CircuitBreaker) CanExecute(ctx context.Context, estimatedSavings float64) (bool, error) {
	state, err := b.currentState(ctx)
	if err != nil {
		return false, err
	}

	if state == StateOpen {
		lastFailure, known, err := b.lastFailureAt(ctx)
		if err != nil {
			return false, err
		}
		if !known || time.Since(lastFailure) < b.settings.RecoveryTimeout {
			return false, nil
		}
		if err := b.setState(ctx, StateOpen, StateHalfOpen); err != nil {
			return false, err
		}
		b.logger.Info("Circuit breaker half-open, admitting probe")
		return true, nil
	}

	daily, err := b.rolledOverDailySavings(ctx)
	if err != nil {
		return false, err
	}
	if daily+estimatedSavings > b.settings.MaxDailySavingsUSD {
		b.logger.WithFields(map[string]interface{}{
			"daily_savings_usd": daily,
			"estimated_savings": estimatedSavings,
			"max_daily_usd":     b.settings.MaxDailySavingsUSD,
		}).Warn("Daily savings budget exhausted")
		return false, nil
	}
	return true, nil
}

// RecordSuccess notes a successful execution. A half-open breaker closes
// and forgets its failures; the realized savings always accumulate into the
// daily total.
func (b *CircuitBreaker) RecordSuccess(ctx context.Context, savings float64) error {
	state, err := b.currentState(ctx)
	if err != nil {
		return err
	}
	if state == StateHalfOpen {
		if err := b.closeAndClearFailures(ctx, StateHalfOpen); err != nil {
			return err
		}
		b.logger.Info("Circuit breaker closed after successful probe")
	}

	daily, err := b.rolledOverDailySavings(ctx)
	if err != nil {
		return err
	}
	if err := b.store.Set(ctx, b.key("daily_savings"), daily+savings, 0); err != nil {
		return errors.StoreBackendError("set", err)
	}
	return nil
}

// RecordFailure notes a failed execution. The failure count increments
// atomically; reaching the threshold opens the breaker.
func (b *CircuitBreaker) RecordFailure(ctx context.Context, cause error) error {
	count, err := b.store.Incr(ctx, b.key("failure_count"))
	if err != nil {
		return errors.StoreBackendError("incr", err)
	}
	if err := b.store.Set(ctx, b.key("last_failure_at"), time.Now().UTC().Format(time.RFC3339Nano), 0); err != nil {
		return errors.StoreBackendError("set", err)
	}
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	if err := b.store.Set(ctx, b.key("last_error"), message, 0); err != nil {
		return errors.StoreBackendError("set", err)
	}

	if count >= int64(b.settings.FailureThreshold) {
		state, err := b.currentState(ctx)
		if err != nil {
			return err
		}
		if state != StateOpen {
			if err := b.setState(ctx, state, StateOpen); err != nil {
				return err
			}
			b.logger.WithFields(map[string]interface{}{
				"failure_count": count,
				"threshold":     b.settings.FailureThreshold,
			}).Warn("Circuit breaker opened")
		}
	}
	return nil
}

// Reset forces the breaker closed and clears its failure state. Daily
// savings are untouched: a manual reset forgives failures, not budget.
func (b *CircuitBreaker) Reset(ctx context.Context) error {
	state, err := b.currentState(ctx)
	if err != nil {
		return err
	}
	if err := b.closeAndClearFailures(ctx, state); err != nil {
		return err
	}
	b.logger.Info("Circuit breaker reset")
	return nil
}

// Status returns the dashboard snapshot. CanExecute is evaluated with zero
// impact, so an open breaker past its recovery timeout will surface (and
// perform) the half-open transition here too.
func (b *CircuitBreaker) Status(ctx context.Context) (*Status, error) {
	canExecute, err := b.CanExecute(ctx, 0)
	if err != nil {
		return nil, err
	}
	state, err := b.currentState(ctx)
	if err != nil {
		return nil, err
	}
	failures, err := b.failureCount(ctx)
	if err != nil {
		return nil, err
	}
	daily, err := b.rolledOverDailySavings(ctx)
	if err != nil {
		return nil, err
	}
	lastError, _, err := b.getString(ctx, "last_error")
	if err != nil {
		return nil, err
	}

	return &Status{
		TenantID:        b.tenantID,
		State:           state,
		FailureCount:    failures,
		DailySavingsUSD: daily,
		CanExecute:      canExecute,
		LastError:       lastError,
	}, nil
}

// CurrentState reads the persisted state without side effects
func (b *CircuitBreaker) CurrentState(ctx context.Context) (State, error) {
	return b.currentState(ctx)
}

func (b *CircuitBreaker) key(field string) string {
	return "breaker:" + b.tenantID + ":" + field
}

func (b *CircuitBreaker) currentState(ctx context.Context) (State, error) {
	raw, found, err := b.store.Get(ctx, b.key("state"))
	if err != nil {
		return StateClosed, errors.StoreBackendError("get", err)
	}
	if !found {
		return StateClosed, nil
	}
	switch State(raw) {
	case StateOpen:
		return StateOpen, nil
	case StateHalfOpen:
		return StateHalfOpen, nil
	default:
		return StateClosed, nil
	}
}

func (b *CircuitBreaker) setState(ctx context.Context, from, to State) error {
	if err := b.store.Set(ctx, b.key("state"), string(to), 0); err != nil {
		return errors.StoreBackendError("set", err)
	}
	metrics.RecordBreakerTransition(string(from), string(to))
	metrics.SetBreakerState(b.tenantID, to.GaugeValue())
	return nil
}

func (b *CircuitBreaker) closeAndClearFailures(ctx context.Context, from State) error {
	if err := b.setState(ctx, from, StateClosed); err != nil {
		return err
	}
	for _, field := range []string{"failure_count", "last_failure_at", "last_error"} {
		if err := b.store.Delete(ctx, b.key(field)); err != nil {
			return errors.StoreBackendError("delete", err)
		}
	}
	return nil
}

func (b *CircuitBreaker) failureCount(ctx context.Context) (int64, error) {
	raw, found, err := b.store.Get(ctx, b.key("failure_count"))
	if err != nil {
		return 0, errors.StoreBackendError("get", err)
	}
	if !found {
		return 0, nil
	}
	count, parseErr := strconv.ParseInt(string(raw), 10, 64)
	if parseErr != nil {
		return 0, nil
	}
	return count, nil
}

func (b *CircuitBreaker) lastFailureAt(ctx context.Context) (time.Time, bool, error) {
	raw, found, err := b.getString(ctx, "last_failure_at")
	if err != nil || !found {
		return time.Time{}, false, err
	}
	ts, parseErr := time.Parse(time.RFC3339Nano, raw)
	if parseErr != nil {
		return time.Time{}, false, nil
	}
	return ts, true, nil
}

// rolledOverDailySavings returns the accumulated savings for today's UTC
// date, resetting the stored total to zero first when the stored date is
// stale. The reset is written through immediately so every reader after the
// rollover sees a fresh day.
func (b *CircuitBreaker) rolledOverDailySavings(ctx context.Context) (float64, error) {
	today := time.Now().UTC().Format("2006-01-02")

	storedDate, dateFound, err := b.getString(ctx, "daily_date")
	if err != nil {
		return 0, err
	}
	if !dateFound || storedDate != today {
		if err := b.store.Set(ctx, b.key("daily_savings"), 0.0, 0); err != nil {
			return 0, errors.StoreBackendError("set", err)
		}
		if err := b.store.Set(ctx, b.key("daily_date"), today, 0); err != nil {
			return 0, errors.StoreBackendError("set", err)
		}
		return 0, nil
	}

	raw, found, err := b.store.Get(ctx, b.key("daily_savings"))
	if err != nil {
		return 0, errors.StoreBackendError("get", err)
	}
	if !found {
		return 0, nil
	}
	daily, parseErr := strconv.ParseFloat(string(raw), 64)
	if parseErr != nil {
		return 0, nil
	}
	return daily, nil
}

func (b *CircuitBreaker) getString(ctx context.Context, field string) (string, bool, error) {
	raw, found, err := b.store.Get(ctx, b.key(field))
	if err != nil {
		return "", false, errors.StoreBackendError("get", err)
	}
	return string(raw), found, nil
}
