package client

import (
	"context"
	"fmt"
	"net/url"
)

// BreakerService inspects and resets per-tenant circuit breakers
type BreakerService struct {
	client *Client
}

// Status retrieves the breaker snapshot for a tenant. Operators may only
// read their own tenant; admins may read any.
func (s *BreakerService) Status(ctx context.Context, tenantID string) (*BreakerStatus, error) {
	path := fmt.Sprintf("/api/v1/breakers/%s", url.PathEscape(tenantID))

	var status BreakerStatus
	if err := s.client.doRequest(ctx, "GET", path, nil, &status); err != nil {
		return nil, err
	}

	return &status, nil
}

// Reset forces the breaker closed and clears its failure count. Resetting
// another tenant's breaker requires the admin role.
func (s *BreakerService) Reset(ctx context.Context, tenantID string) error {
	path := fmt.Sprintf("/api/v1/breakers/%s/reset", url.PathEscape(tenantID))
	return s.client.doRequest(ctx, "POST", path, nil, nil)
}
