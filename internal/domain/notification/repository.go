package notification

import "context"

// Repository defines the notification repository interface
type Repository interface {
	// Channel configs
	UpsertChannel(ctx context.Context, cfg *ChannelConfig) error
	GetChannel(ctx context.Context, tenantID string, channel Channel) (*ChannelConfig, error)
	ListChannels(ctx context.Context, tenantID string) ([]*ChannelConfig, error)
	DeleteChannel(ctx context.Context, id string) error

	// Logs
	CreateLog(ctx context.Context, log *Log) error
	ListLogs(ctx context.Context, tenantID string, filter LogFilter, limit, offset int) ([]*Log, int64, error)
}
