package user

import "context"

// Service defines the interface for user business logic
type Service interface {
	// Register creates a new operator account with a hashed password
	Register(ctx context.Context, email, password, tenantID string) (*User, error)

	// Authenticate verifies credentials and returns the account
	Authenticate(ctx context.Context, email, password string) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates a user
	Update(ctx context.Context, user *User) error

	// List retrieves users for a tenant
	List(ctx context.Context, tenantID string, limit, offset int) ([]*User, int64, error)
}
