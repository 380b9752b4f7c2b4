package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the main WasteGate API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	token      string // JWT token for authenticated requests
}

// Config holds the client configuration
type Config struct {
	BaseURL    string        // API base URL (e.g., "https://api.wastegate.dev")
	APIKey     string        // Optional API key for authentication
	Timeout    time.Duration // HTTP client timeout (default: 30s)
	HTTPClient *http.Client  // Optional custom HTTP client
}

// NewClient creates a new WasteGate API client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		apiKey:     cfg.APIKey,
	}
}

// SetToken sets the JWT token for authenticated requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// GetToken returns the current JWT token
func (c *Client) GetToken() string {
	return c.token
}

// successEnvelope mirrors the API's response wrapper. Every 2xx response
// carries the payload under "data".
type successEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// errorEnvelope mirrors the API's error wrapper
type errorEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

// doRequest performs an HTTP request and unwraps the response envelope
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	// Add authentication
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	// Perform request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for errors
	if resp.StatusCode >= 400 {
		var errResp errorEnvelope
		if err := json.Unmarshal(respBody, &errResp); err != nil || errResp.Error.Message == "" {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       errResp.Error.Code,
			Message:    errResp.Error.Message,
			Details:    errResp.Error.Details,
		}
	}

	// Unwrap the success envelope
	if result != nil && len(respBody) > 0 {
		var envelope successEnvelope
		if err := json.Unmarshal(respBody, &envelope); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		if len(envelope.Data) == 0 {
			return nil
		}
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return fmt.Errorf("failed to parse response data: %w", err)
		}
	}

	return nil
}

// Scans returns the scan ingestion service
func (c *Client) Scans() *ScanService {
	return &ScanService{client: c}
}

// Recommendations returns the recommendation service
func (c *Client) Recommendations() *RecommendationService {
	return &RecommendationService{client: c}
}

// Findings returns the architecture finding service
func (c *Client) Findings() *FindingService {
	return &FindingService{client: c}
}

// Remediations returns the remediation action service
func (c *Client) Remediations() *RemediationService {
	return &RemediationService{client: c}
}

// SafeOps returns the safety rule service
func (c *Client) SafeOps() *SafeOpsService {
	return &SafeOpsService{client: c}
}

// Guards returns the guard dry-run service
func (c *Client) Guards() *GuardService {
	return &GuardService{client: c}
}

// Breakers returns the circuit breaker service
func (c *Client) Breakers() *BreakerService {
	return &BreakerService{client: c}
}

// Settings returns the tenant settings service
func (c *Client) Settings() *SettingsService {
	return &SettingsService{client: c}
}

// Spend returns the spend ledger service
func (c *Client) Spend() *SpendService {
	return &SpendService{client: c}
}

// Notifications returns the notification service
func (c *Client) Notifications() *NotificationService {
	return &NotificationService{client: c}
}
