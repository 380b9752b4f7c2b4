package client

import "context"

// GuardService dry-runs the guard chain
type GuardService struct {
	client *Client
}

// Check asks every guard whether a hypothetical action with the given
// estimated impact would be allowed right now. Nothing is recorded.
func (s *GuardService) Check(ctx context.Context, estimatedImpactUSD float64) (*GuardCheckResult, error) {
	req := map[string]float64{
		"estimatedImpactUsd": estimatedImpactUSD,
	}

	var result GuardCheckResult
	if err := s.client.doRequest(ctx, "POST", "/api/v1/guards/check", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
