package notification

import "context"

// Service defines the notification service interface
type Service interface {
	// Send delivers an event to every enabled channel of its tenant,
	// writing a log row per attempt. Delivery failures are logged, not
	// returned, except when no channel could be attempted.
	Send(ctx context.Context, event *Event) error

	// SendBudgetAlert satisfies the guard coordinator's notifier
	SendBudgetAlert(ctx context.Context, tenantID string, spentUSD, capUSD float64) error

	// Channel configs
	ConfigureChannel(ctx context.Context, tenantID string, channel Channel, isEnabled bool, config interface{}) (*ChannelConfig, error)
	ListChannels(ctx context.Context, tenantID string) ([]*ChannelConfig, error)

	// Logs
	GetHistory(ctx context.Context, tenantID string, filter LogFilter, limit, offset int) ([]*Log, int64, error)
}

// Sender delivers one event via a specific channel
type Sender interface {
	Send(ctx context.Context, event *Event, config *ChannelConfig) error
	Channel() Channel
}
