package client

import "context"

// SettingsService manages the tenant's safety settings
type SettingsService struct {
	client *Client
}

// Get retrieves the tenant's effective settings. Tenants without stored
// overrides get the server defaults.
func (s *SettingsService) Get(ctx context.Context) (*TenantSettings, error) {
	var settings TenantSettings
	if err := s.client.doRequest(ctx, "GET", "/api/v1/settings", nil, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Update applies a partial settings update and returns the effective settings
func (s *SettingsService) Update(ctx context.Context, req UpdateSettingsRequest) (*TenantSettings, error) {
	var settings TenantSettings
	if err := s.client.doRequest(ctx, "PUT", "/api/v1/settings", req, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Reset drops the tenant's stored overrides, reverting to server defaults
func (s *SettingsService) Reset(ctx context.Context) error {
	return s.client.doRequest(ctx, "DELETE", "/api/v1/settings", nil, nil)
}
