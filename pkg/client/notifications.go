package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// NotificationService manages delivery channels and history
type NotificationService struct {
	client *Client
}

// ConfigureChannelRequest enables or disables a delivery channel
type ConfigureChannelRequest struct {
	Channel   string          `json:"channel"` // slack, webhook
	IsEnabled bool            `json:"isEnabled"`
	Config    json.RawMessage `json:"config,omitempty"`
}

// NotificationHistoryOptions filters the delivery log
type NotificationHistoryOptions struct {
	ListOptions
	Channel   *string `json:"channel,omitempty"`
	EventType *string `json:"event_type,omitempty"`
	Status    *string `json:"status,omitempty"` // pending, sent, failed
}

// Channels lists the tenant's configured delivery channels
func (s *NotificationService) Channels(ctx context.Context) ([]ChannelConfig, error) {
	var channels []ChannelConfig
	if err := s.client.doRequest(ctx, "GET", "/api/v1/notifications/channels", nil, &channels); err != nil {
		return nil, err
	}

	return channels, nil
}

// ConfigureChannel creates or updates a delivery channel
func (s *NotificationService) ConfigureChannel(ctx context.Context, req ConfigureChannelRequest) (*ChannelConfig, error) {
	var cfg ChannelConfig
	if err := s.client.doRequest(ctx, "PUT", "/api/v1/notifications/channels", req, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// History lists delivery attempts, newest first
func (s *NotificationService) History(ctx context.Context, opts *NotificationHistoryOptions) ([]NotificationLog, error) {
	query := url.Values{}

	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.Channel != nil {
			query.Set("channel", *opts.Channel)
		}
		if opts.EventType != nil {
			query.Set("event_type", *opts.EventType)
		}
		if opts.Status != nil {
			query.Set("status", *opts.Status)
		}
	}

	path := "/api/v1/notifications/history"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page struct {
		Items []NotificationLog `json:"data"`
	}
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}

	return page.Items, nil
}
