package dto

import (
	"encoding/json"
	"time"
)

// ConfigureChannelRequest enables or disables a delivery channel
type ConfigureChannelRequest struct {
	Channel   string          `json:"channel" validate:"required,oneof=slack webhook"`
	IsEnabled bool            `json:"isEnabled"`
	Config    json.RawMessage `json:"config,omitempty"`
}

// ChannelConfigDTO represents a configured delivery channel
type ChannelConfigDTO struct {
	ID        string          `json:"id"`
	Channel   string          `json:"channel"`
	IsEnabled bool            `json:"isEnabled"`
	Config    json.RawMessage `json:"config,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NotificationLogDTO is one delivery attempt record
type NotificationLogDTO struct {
	ID           string     `json:"id"`
	Channel      string     `json:"channel"`
	EventType    string     `json:"eventType"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	SentAt       *time.Time `json:"sentAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
