package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wastegate/wastegate/internal/config"
	"github.com/wastegate/wastegate/internal/domain/classification"
	"github.com/wastegate/wastegate/internal/domain/notification"
	"github.com/wastegate/wastegate/internal/domain/spend"
	"github.com/wastegate/wastegate/internal/domain/tenant"
	"github.com/wastegate/wastegate/internal/pkg/logger"
)

// JobService runs the recurring maintenance jobs: stale-recommendation
// expiry and the daily spend digest
type JobService struct {
	cfg      config.JobsConfig
	recs     classification.Service
	spend    spend.Service
	tenants  tenant.Service
	notifier notification.Service
	logger   *logger.Logger

	scheduler    *cron.Cron
	isRunning    bool
	runningMutex sync.RWMutex
}

// NewJobService creates a new job service
func NewJobService(
	cfg *config.Config,
	recs classification.Service,
	spendSvc spend.Service,
	tenants tenant.Service,
	notifier notification.Service,
	log *logger.Logger,
) *JobService {
	return &JobService{
		cfg:      cfg.Jobs,
		recs:     recs,
		spend:    spendSvc,
		tenants:  tenants,
		notifier: notifier,
		logger:   log,
	}
}

// Start registers the jobs and starts the scheduler
func (s *JobService) Start(ctx context.Context) error {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if !s.cfg.Enabled {
		s.logger.Info("Scheduled jobs are disabled")
		return nil
	}

	s.scheduler = cron.New()

	if _, err := s.scheduler.AddFunc(s.cfg.RecommendationExpireCron, func() {
		if _, err := s.RunRecommendationExpiry(context.Background()); err != nil {
			s.logger.ErrorWithErr(err, "Recommendation expiry job failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid recommendation expiry schedule: %w", err)
	}

	if _, err := s.scheduler.AddFunc(s.cfg.DailyDigestSchedule, func() {
		if _, err := s.RunDailyDigest(context.Background()); err != nil {
			s.logger.ErrorWithErr(err, "Daily digest job failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid daily digest schedule: %w", err)
	}

	s.scheduler.Start()
	s.isRunning = true

	s.logger.WithFields(map[string]interface{}{
		"expiry_schedule": s.cfg.RecommendationExpireCron,
		"digest_schedule": s.cfg.DailyDigestSchedule,
	}).Info("Job scheduler started")

	return nil
}

// Stop stops the job scheduler
func (s *JobService) Stop() error {
	s.runningMutex.Lock()
	defer s.runningMutex.Unlock()

	if !s.isRunning {
		return nil
	}

	s.scheduler.Stop()
	s.isRunning = false

	s.logger.Info("Job scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is running
func (s *JobService) IsRunning() bool {
	s.runningMutex.RLock()
	defer s.runningMutex.RUnlock()
	return s.isRunning
}

// RunRecommendationExpiry expires pending recommendations older than the
// configured TTL. Exposed so the CLI can trigger it out of schedule.
func (s *JobService) RunRecommendationExpiry(ctx context.Context) (int64, error) {
	ttl := time.Duration(s.cfg.RecommendationMaxAgeDays) * 24 * time.Hour

	expired, err := s.recs.ExpireStale(ctx, ttl)
	if err != nil {
		return 0, fmt.Errorf("failed to expire recommendations: %w", err)
	}

	if expired > 0 {
		s.logger.WithFields(map[string]interface{}{
			"expired":      expired,
			"max_age_days": s.cfg.RecommendationMaxAgeDays,
		}).Info("Stale recommendations expired")
	}

	return expired, nil
}

// RunDailyDigest sends yesterday's savings and month-to-date spend to every
// tenant with stored settings. Returns the number of digests sent.
func (s *JobService) RunDailyDigest(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1)

	sent := 0
	offset := 0
	const pageSize = 100

	for {
		tenants, total, err := s.tenants.List(ctx, pageSize, offset)
		if err != nil {
			return sent, fmt.Errorf("failed to list tenants: %w", err)
		}

		for _, t := range tenants {
			delivered, err := s.sendDigest(ctx, t, yesterday)
			if err != nil {
				s.logger.WithFields(map[string]interface{}{
					"tenant_id": t.TenantID,
				}).ErrorWithErr(err, "Failed to send daily digest")
				continue
			}
			if delivered {
				sent++
			}
		}

		offset += len(tenants)
		if len(tenants) == 0 || int64(offset) >= total {
			break
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"digests_sent": sent,
	}).Info("Daily digest job completed")

	return sent, nil
}

// sendDigest builds and delivers one tenant's digest. Tenants with no
// activity are skipped.
func (s *JobService) sendDigest(ctx context.Context, t *tenant.Settings, day time.Time) (bool, error) {
	daily, err := s.spend.DailyReport(ctx, t.TenantID, day)
	if err != nil {
		return false, err
	}

	monthly, err := s.spend.MonthlyReport(ctx, t.TenantID, day)
	if err != nil {
		return false, err
	}

	if daily.Records == 0 && monthly.SavingsUSD == 0 && monthly.CostUSD == 0 {
		return false, nil
	}

	message := fmt.Sprintf("Realized $%.2f across %d remediation(s) on %s. Month to date: $%.2f saved, $%.2f spent.",
		daily.TotalUSD, daily.Records, day.Format("2006-01-02"), monthly.SavingsUSD, monthly.CostUSD)

	if t.MonthlyCapEnabled && t.MonthlyCapUSD > 0 {
		pct := monthly.CostUSD / t.MonthlyCapUSD * 100
		message += fmt.Sprintf(" Monthly cap: $%.2f of $%.2f used (%.0f%%).", monthly.CostUSD, t.MonthlyCapUSD, pct)
	}

	err = s.notifier.Send(ctx, &notification.Event{
		TenantID: t.TenantID,
		Type:     notification.EventDailySpendDigest,
		Title:    "Daily savings digest",
		Message:  message,
		Data: map[string]interface{}{
			"day":                day.Format("2006-01-02"),
			"saved_usd":          daily.TotalUSD,
			"records":            daily.Records,
			"month_savings_usd":  monthly.SavingsUSD,
			"month_cost_usd":     monthly.CostUSD,
			"monthly_cap_usd":    t.MonthlyCapUSD,
			"monthly_cap_active": t.MonthlyCapEnabled,
		},
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
