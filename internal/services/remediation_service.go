package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wastegate/wastegate/internal/domain/classification"
	"github.com/wastegate/wastegate/internal/domain/notification"
	"github.com/wastegate/wastegate/internal/domain/remediation"
	"github.com/wastegate/wastegate/internal/domain/spend"
	"github.com/wastegate/wastegate/internal/domain/tenant"
	"github.com/wastegate/wastegate/internal/guard"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/metrics"
	"github.com/wastegate/wastegate/internal/safeops"
)

// RemediationService implements remediation.Service. Execute is the decision
// pipeline every destructive action passes through: the safety interceptor
// first, then the budget guards, and only then the executor. A denial at any
// gate lands the action in status denied with the gate's code; later gates
// never run.
type RemediationService struct {
	repo        remediation.Repository
	recs        classification.Service
	interceptor *safeops.Interceptor
	guards      *guard.Coordinator
	breakers    guard.BreakerSource
	tenants     tenant.Service
	spend       spend.Service
	notifier    notification.Service
	executor    remediation.Executor
	logger      *logger.Logger
}

// NewRemediationService creates a new remediation service. The notifier may
// be nil when no channels are configured.
func NewRemediationService(
	repo remediation.Repository,
	recs classification.Service,
	interceptor *safeops.Interceptor,
	guards *guard.Coordinator,
	breakers guard.BreakerSource,
	tenants tenant.Service,
	spendService spend.Service,
	notifier notification.Service,
	executor remediation.Executor,
	log *logger.Logger,
) remediation.Service {
	return &RemediationService{
		repo:        repo,
		recs:        recs,
		interceptor: interceptor,
		guards:      guards,
		breakers:    breakers,
		tenants:     tenants,
		spend:       spendService,
		notifier:    notifier,
		executor:    executor,
		logger:      log,
	}
}

// CreateFromRecommendation creates a pending action for a classifier
// recommendation, inheriting its policy route and mid savings estimate.
func (s *RemediationService) CreateFromRecommendation(ctx context.Context, tenantID, recommendationID string) (*remediation.Action, error) {
	rec, err := s.recs.GetRecommendation(ctx, tenantID, recommendationID)
	if err != nil {
		return nil, err
	}
	if rec.Status != classification.StatusPending {
		return nil, fmt.Errorf("recommendation is %s, only pending recommendations can be actioned", rec.Status)
	}

	actionType := remediation.ActionType(rec.RequiredAction)
	if !actionType.IsValid() {
		return nil, fmt.Errorf("recommendation carries unknown action type: %s", rec.RequiredAction)
	}

	action := &remediation.Action{
		TenantID:            tenantID,
		RecommendationID:    &rec.ID,
		ResourceID:          rec.ResourceID,
		ResourceType:        rec.Category,
		ActionType:          actionType,
		PolicyRoute:         rec.PolicyRoute,
		Status:              remediation.ActionStatusPending,
		EstimatedSavingsUSD: rec.SavingsMidUSD,
	}

	if err := s.repo.Create(ctx, action); err != nil {
		return nil, fmt.Errorf("failed to create remediation action: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"action_id":         action.ID,
		"tenant_id":         tenantID,
		"recommendation_id": recommendationID,
		"action_type":       action.ActionType,
		"policy_route":      action.PolicyRoute,
	}).Info("Remediation action created from recommendation")

	return action, nil
}

// Create creates a pending action directly, without a backing recommendation.
// An empty policy route defaults to manual review.
func (s *RemediationService) Create(ctx context.Context, action *remediation.Action) (*remediation.Action, error) {
	if action.TenantID == "" {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if action.ResourceID == "" {
		return nil, fmt.Errorf("resource ID is required")
	}
	if !action.ActionType.IsValid() {
		return nil, fmt.Errorf("invalid action type: %s", action.ActionType)
	}
	if action.PolicyRoute == "" {
		action.PolicyRoute = "manual_review"
	}
	action.Status = remediation.ActionStatusPending

	if err := s.repo.Create(ctx, action); err != nil {
		return nil, fmt.Errorf("failed to create remediation action: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"action_id":   action.ID,
		"tenant_id":   action.TenantID,
		"resource_id": action.ResourceID,
		"action_type": action.ActionType,
	}).Info("Remediation action created")

	return action, nil
}

// Execute runs the action through the full decision pipeline. A gate denial
// is a domain outcome, not an error: the returned action carries status
// denied and the gate's code. A non-nil error means the pipeline itself
// could not be evaluated and the action is unchanged.
func (s *RemediationService) Execute(ctx context.Context, tenantID, actionID string) (*remediation.Action, error) {
	action, err := s.repo.GetByID(ctx, tenantID, actionID)
	if err != nil {
		return nil, err
	}

	if action.Status.IsTerminal() {
		return nil, fmt.Errorf("action is already %s", action.Status)
	}
	if remediation.RequiresApproval(action.PolicyRoute) && action.Status != remediation.ActionStatusApproved {
		return nil, fmt.Errorf("action requires approval before execution")
	}

	// Symbolic safety rules come first and override everything upstream
	verdict := s.validateTarget(ctx, action)
	if !verdict.Safe {
		metrics.RecordSafeOpsVerdict("denied")
		action.SafetyVerdict = &verdict.Reason
		return s.denyAction(ctx, action, guard.CodeSafetyRuleVeto, verdict.Reason)
	}
	metrics.RecordSafeOpsVerdict("allowed")
	safe := "safe"
	action.SafetyVerdict = &safe

	if err := s.guards.CheckAll(ctx, tenantID, action.EstimatedSavingsUSD); err != nil {
		if denied, ok := guard.IsDenied(err); ok {
			return s.denyAction(ctx, action, denied.Code, denied.Reason)
		}
		return nil, err
	}

	result, execErr := s.executor.Execute(ctx, action)
	now := time.Now()
	action.ExecutedAt = &now

	if execErr != nil {
		action.Status = remediation.ActionStatusFailed
		action.ErrorMessage = execErr.Error()
		s.recordFailure(ctx, tenantID, execErr)
		metrics.RecordRemediationExecution("failed")

		if err := s.repo.Update(ctx, action); err != nil {
			return nil, err
		}

		s.logger.WithFields(map[string]interface{}{
			"action_id": action.ID,
			"tenant_id": tenantID,
		}).WithError(execErr).Error("Remediation execution failed")

		return action, nil
	}

	action.Status = remediation.ActionStatusApplied
	if resultJSON, err := json.Marshal(result); err == nil {
		action.Result = resultJSON
	}

	if err := s.repo.Update(ctx, action); err != nil {
		return nil, err
	}

	s.recordSuccess(ctx, action, result)
	metrics.RecordRemediationExecution("applied")

	s.logger.WithFields(map[string]interface{}{
		"action_id": action.ID,
		"tenant_id": tenantID,
		"saved_usd": result.SavedUSD,
	}).Info("Remediation action applied")

	s.notify(ctx, &notification.Event{
		TenantID: tenantID,
		Type:     notification.EventRemediationApplied,
		Title:    "Remediation applied",
		Message:  fmt.Sprintf("%s on %s saved an estimated %.2f USD/month", action.ActionType, action.ResourceID, result.SavedUSD),
		Data: map[string]interface{}{
			"action_id":   action.ID,
			"resource_id": action.ResourceID,
			"saved_usd":   result.SavedUSD,
		},
	})

	return action, nil
}

// Approve marks a pending action as approved for execution
func (s *RemediationService) Approve(ctx context.Context, tenantID, actionID string, approverID int64) error {
	action, err := s.repo.GetByID(ctx, tenantID, actionID)
	if err != nil {
		return err
	}

	if action.Status != remediation.ActionStatusPending {
		return fmt.Errorf("action is not pending approval")
	}

	now := time.Now()
	action.Status = remediation.ActionStatusApproved
	action.ApprovedBy = &approverID
	action.ApprovedAt = &now

	if err := s.repo.Update(ctx, action); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"action_id":   actionID,
		"tenant_id":   tenantID,
		"approved_by": approverID,
	}).Info("Remediation action approved")

	return nil
}

// GetAction retrieves a remediation action
func (s *RemediationService) GetAction(ctx context.Context, tenantID, id string) (*remediation.Action, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

// ListActions lists remediation actions
func (s *RemediationService) ListActions(ctx context.Context, tenantID string, filter remediation.Filter, limit, offset int) ([]*remediation.Action, int64, error) {
	return s.repo.List(ctx, tenantID, filter, limit, offset)
}

// GetPendingApprovals retrieves actions awaiting operator approval
func (s *RemediationService) GetPendingApprovals(ctx context.Context, tenantID string) ([]*remediation.Action, error) {
	return s.repo.GetPendingApprovals(ctx, tenantID)
}

// GetSummary returns action counts by status
func (s *RemediationService) GetSummary(ctx context.Context, tenantID string) (map[remediation.ActionStatus]int, error) {
	return s.repo.CountByStatus(ctx, tenantID)
}

// validateTarget checks the action's target against the safety rules, with
// the tenant's minimum-age override applied when one is stored.
func (s *RemediationService) validateTarget(ctx context.Context, action *remediation.Action) safeops.Verdict {
	rules := s.interceptor.Rules()

	settings, err := s.tenants.Resolve(ctx, action.TenantID)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to resolve tenant settings for safety check")
	} else {
		rules = rules.WithMinAge(settings.MinAgeEnabled, settings.MinAgeDays)
	}

	return safeops.NewInterceptor(rules, s.logger).Validate(safeops.Resource{
		ResourceID:   action.ResourceID,
		ResourceType: action.ResourceType,
		Tags:         action.Tags,
	})
}

// denyAction finalizes a gate denial on the action record
func (s *RemediationService) denyAction(ctx context.Context, action *remediation.Action, code, reason string) (*remediation.Action, error) {
	action.Status = remediation.ActionStatusDenied
	action.DenialCode = code
	action.ErrorMessage = reason
	metrics.RecordRemediationExecution("denied")

	if err := s.repo.Update(ctx, action); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"action_id": action.ID,
		"tenant_id": action.TenantID,
		"code":      code,
		"reason":    reason,
	}).Warn("Remediation action denied")

	s.notify(ctx, &notification.Event{
		TenantID: action.TenantID,
		Type:     notification.EventRemediationDenied,
		Title:    "Remediation denied",
		Message:  fmt.Sprintf("%s on %s was blocked: %s", action.ActionType, action.ResourceID, reason),
		Data: map[string]interface{}{
			"action_id":   action.ID,
			"resource_id": action.ResourceID,
			"denial_code": code,
		},
	})

	return action, nil
}

// recordSuccess feeds the execution outcome back into the tenant's breaker,
// the savings ledger, and the backing recommendation. Feedback failures are
// logged, never propagated: the action is already applied.
func (s *RemediationService) recordSuccess(ctx context.Context, action *remediation.Action, result *remediation.Result) {
	if b, err := s.breakers.ForTenant(ctx, action.TenantID); err != nil {
		s.logger.WithError(err).Warn("Failed to resolve tenant breaker")
	} else if err := b.RecordSuccess(ctx, result.SavedUSD); err != nil {
		s.logger.WithError(err).Warn("Failed to record breaker success")
	}

	if _, err := s.spend.RecordSavings(ctx, action.TenantID, &action.ID, action.ResourceID, result.SavedUSD); err != nil {
		s.logger.WithError(err).Warn("Failed to record realized savings")
	}

	if action.RecommendationID != nil {
		if err := s.recs.MarkActioned(ctx, action.TenantID, *action.RecommendationID); err != nil {
			s.logger.WithError(err).Warn("Failed to mark recommendation actioned")
		}
	}
}

// recordFailure feeds an execution failure into the tenant's breaker
func (s *RemediationService) recordFailure(ctx context.Context, tenantID string, cause error) {
	b, err := s.breakers.ForTenant(ctx, tenantID)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to resolve tenant breaker")
		return
	}
	if err := b.RecordFailure(ctx, cause); err != nil {
		s.logger.WithError(err).Warn("Failed to record breaker failure")
	}
}

func (s *RemediationService) notify(ctx context.Context, event *notification.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, event); err != nil {
		s.logger.WithError(err).Warn("Failed to deliver remediation notification")
	}
}
