package worker

import (
	"context"
	"time"

	"github.com/wastegate/wastegate/internal/breaker"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/metrics"
)

// BreakerReporter periodically refreshes the breaker state gauges for every
// cached tenant. Transitions already update the gauge inline; the reporter
// covers the gaps, recovery timeouts that elapse without traffic and process
// restarts that reset the registry.
type BreakerReporter struct {
	cache    *breaker.TenantCache
	interval time.Duration
	logger   *logger.Logger
}

// NewBreakerReporter creates a new breaker reporter worker
func NewBreakerReporter(cache *breaker.TenantCache, interval time.Duration, log *logger.Logger) *BreakerReporter {
	return &BreakerReporter{
		cache:    cache,
		interval: interval,
		logger:   log,
	}
}

// Start begins the periodic reporting loop
func (w *BreakerReporter) Start(ctx context.Context) {
	w.logger.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("Starting breaker reporter worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.report(ctx)

	for {
		select {
		case <-ticker.C:
			w.report(ctx)
		case <-ctx.Done():
			w.logger.Info("Breaker reporter worker stopped")
			return
		}
	}
}

// report exports the current state of every cached breaker
func (w *BreakerReporter) report(ctx context.Context) {
	for _, tenantID := range w.cache.Tenants() {
		cb, ok := w.cache.Peek(tenantID)
		if !ok {
			continue
		}

		state, err := cb.CurrentState(ctx)
		if err != nil {
			w.logger.WithFields(map[string]interface{}{
				"tenant_id": tenantID,
			}).ErrorWithErr(err, "Failed to read breaker state")
			continue
		}

		metrics.SetBreakerState(tenantID, state.GaugeValue())
	}

	metrics.SetBreakerCacheSize(float64(w.cache.Len()))
}

// SetInterval updates the reporting interval for the next Start call
func (w *BreakerReporter) SetInterval(interval time.Duration) {
	w.interval = interval
	w.logger.WithFields(map[string]interface{}{
		"interval": interval.String(),
	}).Info("Updated breaker reporter interval")
}
