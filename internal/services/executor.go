package services

import (
	"context"
	"fmt"

	"github.com/wastegate/wastegate/internal/domain/remediation"
	"github.com/wastegate/wastegate/internal/pkg/logger"
)

// SimulatedExecutor implements remediation.Executor without touching any
// cloud provider. It records what would have been done and reports the
// action's estimated savings as realized.
type SimulatedExecutor struct {
	logger *logger.Logger
}

// NewSimulatedExecutor creates a simulated executor
func NewSimulatedExecutor(log *logger.Logger) *SimulatedExecutor {
	return &SimulatedExecutor{logger: log}
}

// Execute simulates applying the action to its target resource
func (e *SimulatedExecutor) Execute(ctx context.Context, action *remediation.Action) (*remediation.Result, error) {
	changes := changesFor(action)

	e.logger.WithFields(map[string]interface{}{
		"action_id":   action.ID,
		"resource_id": action.ResourceID,
		"action_type": action.ActionType,
	}).Info("Simulated remediation executed")

	return &remediation.Result{
		Success:     true,
		DryRun:      true,
		Message:     fmt.Sprintf("simulated %s on %s", action.ActionType, action.ResourceID),
		ChangesMade: changes,
		SavedUSD:    action.EstimatedSavingsUSD,
	}, nil
}

func changesFor(action *remediation.Action) []string {
	res := action.ResourceID
	switch action.ActionType {
	case remediation.ActionTypeStopOrTerminate:
		return []string{fmt.Sprintf("stopped instance %s", res)}
	case remediation.ActionTypeSnapshotThenDelete:
		return []string{
			fmt.Sprintf("created snapshot of %s", res),
			fmt.Sprintf("deleted volume %s", res),
		}
	case remediation.ActionTypeArchiveThenDelete:
		return []string{
			fmt.Sprintf("archived %s to cold storage", res),
			fmt.Sprintf("deleted %s", res),
		}
	case remediation.ActionTypeRelease:
		return []string{fmt.Sprintf("released address %s", res)}
	case remediation.ActionTypeDelete:
		return []string{fmt.Sprintf("deleted %s", res)}
	case remediation.ActionTypeRightsize:
		return []string{fmt.Sprintf("resized %s to the recommended capacity", res)}
	case remediation.ActionTypeFlagForReview:
		return []string{fmt.Sprintf("flagged %s for architecture review", res)}
	default:
		return nil
	}
}
