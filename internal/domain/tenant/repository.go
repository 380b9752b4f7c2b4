package tenant

import "context"

// Repository defines the tenant settings repository interface
type Repository interface {
	// Get retrieves a tenant's stored settings; (nil, nil) when the tenant
	// has never saved any.
	Get(ctx context.Context, tenantID string) (*Settings, error)

	// Upsert creates or replaces a tenant's settings
	Upsert(ctx context.Context, settings *Settings) error

	// Delete removes a tenant's settings, reverting it to defaults
	Delete(ctx context.Context, tenantID string) error

	// List retrieves all tenants with stored settings
	List(ctx context.Context, limit, offset int) ([]*Settings, int64, error)
}
