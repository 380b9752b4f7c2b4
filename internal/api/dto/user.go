package dto

// UserDTO represents an operator account in API responses
type UserDTO struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"fullName,omitempty"`
	TenantID string  `json:"tenantId"`
	Role     string  `json:"role"`
}
