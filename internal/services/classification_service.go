package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wastegate/wastegate/internal/classifier"
	"github.com/wastegate/wastegate/internal/domain/classification"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/metrics"
)

// ClassificationService implements classification.Service
type ClassificationService struct {
	repo   classification.Repository
	waste  *classifier.WasteClassifier
	arch   *classifier.ArchitectureDetector
	logger *logger.Logger
}

// NewClassificationService creates a new classification service
func NewClassificationService(repo classification.Repository, log *logger.Logger) classification.Service {
	return &ClassificationService{
		repo:   repo,
		waste:  classifier.NewWasteClassifier(log),
		arch:   classifier.NewArchitectureDetector(log),
		logger: log,
	}
}

// Ingest runs both classifiers over a scan payload and persists the run
// together with everything it produced.
func (s *ClassificationService) Ingest(ctx context.Context, tenantID, source string, scanResults map[string]interface{}) (*classification.Run, []*classification.Recommendation, []*classification.ArchFinding, error) {
	if tenantID == "" {
		return nil, nil, nil, fmt.Errorf("tenant ID is required")
	}

	start := time.Now()
	wasteReport := s.waste.Classify(scanResults)
	metrics.RecordClassifierRun("waste", time.Since(start))

	start = time.Now()
	archReport := s.arch.Detect(scanResults)
	metrics.RecordClassifierRun("architecture", time.Since(start))

	payload, err := json.Marshal(scanResults)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal scan payload: %w", err)
	}

	savings := wasteReport.Summary.EstimatedMonthlySavingsRange.Add(archReport.Summary.EstimatedMonthlySavingsRange)
	run := &classification.Run{
		TenantID: tenantID,
		Source:   source,
		Payload:  payload,
		Summary: classification.RunSummary{
			TotalRecommendations: wasteReport.Summary.TotalRecommendations,
			TotalFindings:        archReport.Summary.TotalFindings,
			ByDetectionClass:     wasteReport.Summary.ByDetectionClass,
			ByFindingType:        archReport.Summary.ByType,
			SavingsLowUSD:        savings.Low,
			SavingsMidUSD:        savings.Mid,
			SavingsHighUSD:       savings.High,
		},
		Recommendations: len(wasteReport.Recommendations),
		Findings:        len(archReport.Findings),
	}

	if err := s.repo.CreateRun(ctx, run); err != nil {
		return nil, nil, nil, err
	}

	recs := make([]*classification.Recommendation, 0, len(wasteReport.Recommendations))
	for _, r := range wasteReport.Recommendations {
		recs = append(recs, &classification.Recommendation{
			RunID:          run.ID,
			TenantID:       tenantID,
			ResourceID:     r.ResourceID,
			Category:       r.Category,
			DetectionClass: r.DetectionClass,
			RequiredAction: r.RequiredAction,
			PolicyRoute:    r.PolicyRoute,
			Confidence:     r.Confidence,
			SavingsLowUSD:  r.ExpectedMonthlySavings.Low,
			SavingsMidUSD:  r.ExpectedMonthlySavings.Mid,
			SavingsHighUSD: r.ExpectedMonthlySavings.High,
		})
	}
	if err := s.repo.CreateRecommendations(ctx, recs); err != nil {
		return nil, nil, nil, err
	}

	findings := make([]*classification.ArchFinding, 0, len(archReport.Findings))
	for _, f := range archReport.Findings {
		var details json.RawMessage
		if len(f.Details) > 0 {
			if b, err := json.Marshal(f.Details); err == nil {
				details = b
			}
		}
		findings = append(findings, &classification.ArchFinding{
			RunID:          run.ID,
			TenantID:       tenantID,
			FindingType:    f.FindingType,
			ResourceID:     f.ResourceID,
			ResourceIDs:    f.ResourceIDs,
			Provider:       f.Provider,
			Environment:    f.Environment,
			RiskLabel:      f.RiskLabel,
			RequiredAction: f.RequiredAction,
			PolicyRoute:    f.PolicyRoute,
			Confidence:     f.Confidence,
			SavingsLowUSD:  f.ExpectedMonthlySavings.Low,
			SavingsMidUSD:  f.ExpectedMonthlySavings.Mid,
			SavingsHighUSD: f.ExpectedMonthlySavings.High,
			Details:        details,
		})
	}
	if err := s.repo.CreateFindings(ctx, findings); err != nil {
		return nil, nil, nil, err
	}

	for class, count := range wasteReport.Summary.ByDetectionClass {
		metrics.RecordRecommendationsEmitted(class, count)
	}

	s.logger.WithFields(map[string]interface{}{
		"run_id":          run.ID,
		"tenant_id":       tenantID,
		"source":          source,
		"recommendations": len(recs),
		"findings":        len(findings),
		"savings_mid_usd": savings.Mid,
	}).Info("Classification run ingested")

	return run, recs, findings, nil
}

// GetRun retrieves a classification run
func (s *ClassificationService) GetRun(ctx context.Context, tenantID, id string) (*classification.Run, error) {
	return s.repo.GetRun(ctx, tenantID, id)
}

// ListRuns lists a tenant's classification runs
func (s *ClassificationService) ListRuns(ctx context.Context, tenantID string, limit, offset int) ([]*classification.Run, int64, error) {
	return s.repo.ListRuns(ctx, tenantID, limit, offset)
}

// GetRecommendation retrieves a recommendation
func (s *ClassificationService) GetRecommendation(ctx context.Context, tenantID, id string) (*classification.Recommendation, error) {
	return s.repo.GetRecommendation(ctx, tenantID, id)
}

// ListRecommendations lists recommendations with filtering
func (s *ClassificationService) ListRecommendations(ctx context.Context, tenantID string, filter classification.Filter, limit, offset int) ([]*classification.Recommendation, int64, error) {
	return s.repo.ListRecommendations(ctx, tenantID, filter, limit, offset)
}

// Dismiss marks a recommendation as dismissed
func (s *ClassificationService) Dismiss(ctx context.Context, tenantID, id string) error {
	rec, err := s.repo.GetRecommendation(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if rec.Status.IsTerminal() {
		return fmt.Errorf("recommendation is already %s", rec.Status)
	}

	if err := s.repo.UpdateRecommendationStatus(ctx, tenantID, id, classification.StatusDismissed); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"recommendation_id": id,
		"tenant_id":         tenantID,
	}).Info("Recommendation dismissed")

	return nil
}

// MarkActioned marks a recommendation as actioned. Calling it again for an
// already-actioned recommendation is a no-op.
func (s *ClassificationService) MarkActioned(ctx context.Context, tenantID, id string) error {
	rec, err := s.repo.GetRecommendation(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if rec.Status == classification.StatusActioned {
		return nil
	}
	if rec.Status.IsTerminal() {
		return fmt.Errorf("recommendation is already %s", rec.Status)
	}

	return s.repo.UpdateRecommendationStatus(ctx, tenantID, id, classification.StatusActioned)
}

// PendingSavings sums the savings range over a tenant's pending recommendations
func (s *ClassificationService) PendingSavings(ctx context.Context, tenantID string) (*classification.SavingsTotals, error) {
	return s.repo.PendingSavings(ctx, tenantID)
}

// ExpireStale marks pending recommendations older than ttl as expired
func (s *ClassificationService) ExpireStale(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)

	expired, err := s.repo.ExpirePendingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		s.logger.WithFields(map[string]interface{}{
			"expired": expired,
			"cutoff":  cutoff.Format(time.RFC3339),
		}).Info("Expired stale recommendations")
	}

	return expired, nil
}

// ListFindings lists architecture findings with filtering
func (s *ClassificationService) ListFindings(ctx context.Context, tenantID string, filter classification.FindingFilter, limit, offset int) ([]*classification.ArchFinding, int64, error) {
	return s.repo.ListFindings(ctx, tenantID, filter, limit, offset)
}
