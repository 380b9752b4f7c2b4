package notification

import (
	"encoding/json"
	"time"
)

// Channel represents a delivery channel
type Channel string

const (
	ChannelSlack   Channel = "slack"
	ChannelWebhook Channel = "webhook"
)

// IsValid checks if the channel is valid
func (c Channel) IsValid() bool {
	return c == ChannelSlack || c == ChannelWebhook
}

// EventType represents what triggered a notification
type EventType string

const (
	EventBudgetAlert        EventType = "budget.alert"
	EventRemediationApplied EventType = "remediation.applied"
	EventRemediationDenied  EventType = "remediation.denied"
	EventBreakerOpened      EventType = "breaker.opened"
	EventDailySpendDigest   EventType = "spend.daily_digest"
)

// DeliveryStatus represents the status of a notification delivery
type DeliveryStatus string

const (
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

// ChannelConfig is a tenant's configured delivery target
type ChannelConfig struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenant_id"`
	Channel   Channel         `json:"channel"`
	IsEnabled bool            `json:"is_enabled"`
	Config    json.RawMessage `json:"config,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SlackConfig is the channel config payload for slack
type SlackConfig struct {
	WebhookURL string `json:"webhook_url"`
	ChannelTag string `json:"channel,omitempty"`
	Username   string `json:"username,omitempty"`
}

// WebhookConfig is the channel config payload for a generic signed webhook
type WebhookConfig struct {
	URL    string `json:"url"`
	Secret string `json:"secret,omitempty"`
}

// Log is one delivery attempt record
type Log struct {
	ID           string          `json:"id"`
	TenantID     string          `json:"tenant_id"`
	Channel      Channel         `json:"channel"`
	EventType    EventType       `json:"event_type"`
	Status       DeliveryStatus  `json:"status"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	SentAt       *time.Time      `json:"sent_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Event is one notification to deliver across a tenant's enabled channels
type Event struct {
	TenantID string                 `json:"tenant_id"`
	Type     EventType              `json:"type"`
	Title    string                 `json:"title"`
	Message  string                 `json:"message"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// LogFilter contains log filtering options
type LogFilter struct {
	Channel   Channel
	EventType EventType
	Status    DeliveryStatus
	From      *time.Time
	To        *time.Time
}
