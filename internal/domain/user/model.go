package user

import "time"

// User represents an operator account
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FullName     *string   `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"` // Not exposed in JSON
	TenantID     string    `json:"tenant_id"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// User roles
const (
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

// ValidRole checks if a role value is valid
func ValidRole(r string) bool {
	return r == RoleOperator || r == RoleAdmin
}
