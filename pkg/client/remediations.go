package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// RemediationService handles remediation action API calls
type RemediationService struct {
	client *Client
}

// CreateRemediationRequest creates an action. Either name a recommendation to
// derive the action from, or describe the target resource directly.
type CreateRemediationRequest struct {
	RecommendationID    string            `json:"recommendationId,omitempty"`
	ResourceID          string            `json:"resourceId,omitempty"`
	ResourceType        string            `json:"resourceType,omitempty"`
	Tags                map[string]string `json:"tags,omitempty"`
	ActionType          string            `json:"actionType,omitempty"`
	PolicyRoute         string            `json:"policyRoute,omitempty"` // auto_queue, manual_review
	EstimatedSavingsUSD float64           `json:"estimatedSavingsUsd,omitempty"`
}

// RemediationListOptions contains options for listing remediation actions
type RemediationListOptions struct {
	ListOptions
	Status           *string    `json:"status,omitempty"` // pending, approved, denied, applied, failed
	ActionType       *string    `json:"action_type,omitempty"`
	ResourceID       *string    `json:"resource_id,omitempty"`
	RecommendationID *string    `json:"recommendation_id,omitempty"`
	From             *time.Time `json:"from,omitempty"`
	To               *time.Time `json:"to,omitempty"`
}

// Create registers a new remediation action
func (s *RemediationService) Create(ctx context.Context, req CreateRemediationRequest) (*RemediationAction, error) {
	var action RemediationAction
	if err := s.client.doRequest(ctx, "POST", "/api/v1/remediations", req, &action); err != nil {
		return nil, err
	}

	return &action, nil
}

// List retrieves a list of remediation actions
func (s *RemediationService) List(ctx context.Context, opts *RemediationListOptions) ([]RemediationAction, error) {
	query := url.Values{}

	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.Status != nil {
			query.Set("status", *opts.Status)
		}
		if opts.ActionType != nil {
			query.Set("action_type", *opts.ActionType)
		}
		if opts.ResourceID != nil {
			query.Set("resource_id", *opts.ResourceID)
		}
		if opts.RecommendationID != nil {
			query.Set("recommendation_id", *opts.RecommendationID)
		}
		if opts.From != nil {
			query.Set("from", opts.From.Format(time.RFC3339))
		}
		if opts.To != nil {
			query.Set("to", opts.To.Format(time.RFC3339))
		}
	}

	path := "/api/v1/remediations"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page struct {
		Items []RemediationAction `json:"data"`
	}
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}

	return page.Items, nil
}

// Get retrieves a single action by ID
func (s *RemediationService) Get(ctx context.Context, id string) (*RemediationAction, error) {
	path := fmt.Sprintf("/api/v1/remediations/%s", url.PathEscape(id))

	var action RemediationAction
	if err := s.client.doRequest(ctx, "GET", path, nil, &action); err != nil {
		return nil, err
	}

	return &action, nil
}

// Execute runs an action through the safety gauntlet. A denied action comes
// back with status "denied" and a denial code rather than an error.
func (s *RemediationService) Execute(ctx context.Context, id string) (*RemediationAction, error) {
	path := fmt.Sprintf("/api/v1/remediations/%s/execute", url.PathEscape(id))

	var action RemediationAction
	if err := s.client.doRequest(ctx, "POST", path, nil, &action); err != nil {
		return nil, err
	}

	return &action, nil
}

// Approve marks a manual-review action as approved by the caller
func (s *RemediationService) Approve(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/v1/remediations/%s/approve", url.PathEscape(id))
	return s.client.doRequest(ctx, "POST", path, nil, nil)
}

// Pending retrieves actions awaiting approval
func (s *RemediationService) Pending(ctx context.Context) ([]RemediationAction, error) {
	var actions []RemediationAction
	if err := s.client.doRequest(ctx, "GET", "/api/v1/remediations/pending", nil, &actions); err != nil {
		return nil, err
	}

	return actions, nil
}

// Summary counts the tenant's actions by status
func (s *RemediationService) Summary(ctx context.Context) (*RemediationSummary, error) {
	var summary RemediationSummary
	if err := s.client.doRequest(ctx, "GET", "/api/v1/remediations/summary", nil, &summary); err != nil {
		return nil, err
	}

	return &summary, nil
}
