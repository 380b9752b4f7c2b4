package client

import "context"

// SafeOpsService handles ad-hoc safety rule evaluation
type SafeOpsService struct {
	client *Client
}

// Check evaluates the safety ruleset against each resource and returns a
// verdict per resource without touching any stored state
func (s *SafeOpsService) Check(ctx context.Context, resources []SafetyResource) ([]SafetyVerdict, error) {
	req := map[string]interface{}{
		"resources": resources,
	}

	var resp struct {
		Verdicts []SafetyVerdict `json:"verdicts"`
	}
	if err := s.client.doRequest(ctx, "POST", "/api/v1/safeops/check", req, &resp); err != nil {
		return nil, err
	}

	return resp.Verdicts, nil
}

// Filter returns only the resources that pass every safety rule
func (s *SafeOpsService) Filter(ctx context.Context, resources []SafetyResource) (*SafetyFilterResult, error) {
	req := map[string]interface{}{
		"resources": resources,
	}

	var result SafetyFilterResult
	if err := s.client.doRequest(ctx, "POST", "/api/v1/safeops/filter", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
