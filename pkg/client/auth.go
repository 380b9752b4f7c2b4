package client

import "context"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TenantID string `json:"tenantId"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	var resp AuthResponse
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/login", req, &resp); err != nil {
		return nil, err
	}

	// Automatically set the token for future requests
	if resp.AccessToken != "" {
		c.SetToken(resp.AccessToken)
	}

	return &resp, nil
}

// Register creates an operator account under a tenant
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/register", req, &resp); err != nil {
		return nil, err
	}

	// Automatically set the token for future requests
	if resp.AccessToken != "" {
		c.SetToken(resp.AccessToken)
	}

	return &resp, nil
}

// GetCurrentUser retrieves the currently authenticated user
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doRequest(ctx, "GET", "/api/v1/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout logs out the current user
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/logout", nil, nil); err != nil {
		return err
	}
	// Clear the token
	c.SetToken("")
	return nil
}

// RefreshToken exchanges a refresh token for a new token pair
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	req := map[string]string{
		"refreshToken": refreshToken,
	}

	var resp AuthResponse
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/refresh", req, &resp); err != nil {
		return nil, err
	}

	// Update the token
	if resp.AccessToken != "" {
		c.SetToken(resp.AccessToken)
	}

	return &resp, nil
}
