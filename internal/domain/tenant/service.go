package tenant

import "context"

// Service defines the tenant settings business logic interface
type Service interface {
	// Resolve returns the tenant's effective settings: stored values with
	// installation defaults filled in for anything unset.
	Resolve(ctx context.Context, tenantID string) (*Settings, error)

	// Update applies a partial settings update and returns the new
	// effective settings.
	Update(ctx context.Context, tenantID string, update Update) (*Settings, error)

	// Reset drops a tenant's stored settings
	Reset(ctx context.Context, tenantID string) error

	// List retrieves tenants with stored settings
	List(ctx context.Context, limit, offset int) ([]*Settings, int64, error)
}
