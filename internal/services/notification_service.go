package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wastegate/wastegate/internal/config"
	"github.com/wastegate/wastegate/internal/domain/notification"
	"github.com/wastegate/wastegate/internal/pkg/logger"
)

// NotificationService implements notification.Service
type NotificationService struct {
	repo            notification.Repository
	senders         map[notification.Channel]notification.Sender
	slackWebhookURL string
	logger          *logger.Logger
}

// NewNotificationService creates a new notification service with the
// built-in slack and signed-webhook senders.
func NewNotificationService(
	repo notification.Repository,
	cfg *config.Config,
	log *logger.Logger,
) notification.Service {
	client := &http.Client{Timeout: 30 * time.Second}

	senders := map[notification.Channel]notification.Sender{
		notification.ChannelSlack:   NewSlackSender(cfg.Notifications.SlackWebhookURL, client),
		notification.ChannelWebhook: NewWebhookSender(cfg.Notifications.WebhookSigningSecret, client),
	}

	return &NotificationService{
		repo:            repo,
		senders:         senders,
		slackWebhookURL: cfg.Notifications.SlackWebhookURL,
		logger:          log,
	}
}

// Send delivers an event to every enabled channel of its tenant. Each
// attempt gets its own log row; delivery failures are logged rather than
// returned so one slow webhook cannot fail the caller's operation.
func (s *NotificationService) Send(ctx context.Context, event *notification.Event) error {
	if event.TenantID == "" {
		return fmt.Errorf("tenant id is required")
	}

	channels, err := s.repo.ListChannels(ctx, event.TenantID)
	if err != nil {
		return fmt.Errorf("failed to list channels: %w", err)
	}

	attempted := 0
	for _, cfg := range channels {
		if !cfg.IsEnabled {
			continue
		}
		sender, ok := s.senders[cfg.Channel]
		if !ok {
			continue
		}
		attempted++
		s.deliver(ctx, sender, event, cfg)
	}

	if attempted == 0 {
		s.logger.WithFields(map[string]interface{}{
			"tenant_id": event.TenantID,
			"type":      event.Type,
		}).Debug("No enabled notification channels, event dropped")
	}

	return nil
}

// deliver runs one sender and records the outcome
func (s *NotificationService) deliver(ctx context.Context, sender notification.Sender, event *notification.Event, cfg *notification.ChannelConfig) {
	payloadJSON, _ := json.Marshal(event)

	logRow := &notification.Log{
		ID:        uuid.New().String(),
		TenantID:  event.TenantID,
		Channel:   cfg.Channel,
		EventType: event.Type,
		Payload:   payloadJSON,
	}

	if err := sender.Send(ctx, event, cfg); err != nil {
		logRow.Status = notification.DeliveryStatusFailed
		logRow.ErrorMessage = err.Error()
		s.logger.WithFields(map[string]interface{}{
			"tenant_id": event.TenantID,
			"channel":   cfg.Channel,
			"type":      event.Type,
		}).ErrorWithErr(err, "Failed to deliver notification")
	} else {
		now := time.Now()
		logRow.Status = notification.DeliveryStatusSent
		logRow.SentAt = &now
	}

	if err := s.repo.CreateLog(ctx, logRow); err != nil {
		s.logger.ErrorWithErr(err, "Failed to record notification log")
	}
}

// SendBudgetAlert satisfies the guard coordinator's notifier
func (s *NotificationService) SendBudgetAlert(ctx context.Context, tenantID string, spentUSD, capUSD float64) error {
	return s.Send(ctx, &notification.Event{
		TenantID: tenantID,
		Type:     notification.EventBudgetAlert,
		Title:    "Monthly budget cap reached",
		Message:  fmt.Sprintf("Spend of $%.2f has reached the configured cap of $%.2f. Remediations are blocked until the cap is raised.", spentUSD, capUSD),
		Data: map[string]interface{}{
			"spent_usd": spentUSD,
			"cap_usd":   capUSD,
		},
	})
}

// ConfigureChannel creates or updates a tenant's delivery channel
func (s *NotificationService) ConfigureChannel(ctx context.Context, tenantID string, channel notification.Channel, isEnabled bool, config interface{}) (*notification.ChannelConfig, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenant id is required")
	}
	if !channel.IsValid() {
		return nil, fmt.Errorf("unsupported channel: %s", channel)
	}

	var raw json.RawMessage
	if config != nil {
		b, err := json.Marshal(config)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal channel config: %w", err)
		}
		raw = b
	}

	if isEnabled {
		if err := s.validateChannelConfig(channel, raw); err != nil {
			return nil, err
		}
	}

	cfg := &notification.ChannelConfig{
		TenantID:  tenantID,
		Channel:   channel,
		IsEnabled: isEnabled,
		Config:    raw,
	}

	if err := s.repo.UpsertChannel(ctx, cfg); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"tenant_id": tenantID,
		"channel":   channel,
		"enabled":   isEnabled,
	}).Info("Notification channel configured")

	return cfg, nil
}

// validateChannelConfig rejects configs that could never deliver
func (s *NotificationService) validateChannelConfig(channel notification.Channel, raw json.RawMessage) error {
	switch channel {
	case notification.ChannelSlack:
		var cfg notification.SlackConfig
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &cfg); err != nil {
				return fmt.Errorf("invalid slack config: %w", err)
			}
		}
		if cfg.WebhookURL == "" && s.slackWebhookURL == "" {
			return fmt.Errorf("slack webhook URL is required")
		}
	case notification.ChannelWebhook:
		var cfg notification.WebhookConfig
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &cfg); err != nil {
				return fmt.Errorf("invalid webhook config: %w", err)
			}
		}
		if cfg.URL == "" {
			return fmt.Errorf("webhook URL is required")
		}
	}
	return nil
}

// ListChannels lists a tenant's configured channels
func (s *NotificationService) ListChannels(ctx context.Context, tenantID string) ([]*notification.ChannelConfig, error) {
	return s.repo.ListChannels(ctx, tenantID)
}

// GetHistory retrieves delivery history for a tenant
func (s *NotificationService) GetHistory(ctx context.Context, tenantID string, filter notification.LogFilter, limit, offset int) ([]*notification.Log, int64, error) {
	return s.repo.ListLogs(ctx, tenantID, filter, limit, offset)
}

// SlackSender posts events to a Slack incoming webhook
type SlackSender struct {
	defaultWebhookURL string
	client            *http.Client
}

// NewSlackSender creates a slack sender. The default webhook URL is used
// when a tenant's channel config does not carry its own.
func NewSlackSender(defaultWebhookURL string, client *http.Client) *SlackSender {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &SlackSender{defaultWebhookURL: defaultWebhookURL, client: client}
}

// Channel returns the channel this sender serves
func (s *SlackSender) Channel() notification.Channel {
	return notification.ChannelSlack
}

// Send posts the event as a Slack attachment
func (s *SlackSender) Send(ctx context.Context, event *notification.Event, cfg *notification.ChannelConfig) error {
	var slackCfg notification.SlackConfig
	if cfg != nil && len(cfg.Config) > 0 {
		if err := json.Unmarshal(cfg.Config, &slackCfg); err != nil {
			return fmt.Errorf("invalid slack config: %w", err)
		}
	}

	webhookURL := s.defaultWebhookURL
	if slackCfg.WebhookURL != "" {
		webhookURL = slackCfg.WebhookURL
	}
	if webhookURL == "" {
		return fmt.Errorf("no Slack webhook URL configured")
	}

	payload, err := json.Marshal(buildSlackMessage(event, slackCfg))
	if err != nil {
		return fmt.Errorf("failed to marshal Slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Slack API error: %s", string(body))
	}

	return nil
}

// buildSlackMessage builds a Slack message payload
func buildSlackMessage(event *notification.Event, cfg notification.SlackConfig) map[string]interface{} {
	color := "#36a64f" // default green
	emoji := ":bell:"
	switch event.Type {
	case notification.EventBudgetAlert:
		color = "#ff8c00" // orange
		emoji = ":money_with_wings:"
	case notification.EventRemediationDenied:
		color = "#ff0000" // red
		emoji = ":no_entry:"
	case notification.EventBreakerOpened:
		color = "#ff0000"
		emoji = ":rotating_light:"
	case notification.EventRemediationApplied:
		emoji = ":white_check_mark:"
	case notification.EventDailySpendDigest:
		emoji = ":chart_with_upwards_trend:"
	}

	msg := map[string]interface{}{
		"attachments": []map[string]interface{}{
			{
				"color":  color,
				"title":  fmt.Sprintf("%s %s", emoji, event.Title),
				"text":   event.Message,
				"footer": "WasteGate",
				"ts":     time.Now().Unix(),
			},
		},
	}
	if cfg.ChannelTag != "" {
		msg["channel"] = cfg.ChannelTag
	}
	if cfg.Username != "" {
		msg["username"] = cfg.Username
	}

	return msg
}

// WebhookSender delivers events to a tenant-configured HTTP endpoint,
// signing each payload with HMAC-SHA256
type WebhookSender struct {
	signingSecret string
	client        *http.Client
}

// NewWebhookSender creates a webhook sender. The signing secret is the
// fallback used when a tenant's channel config carries no secret.
func NewWebhookSender(signingSecret string, client *http.Client) *WebhookSender {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &WebhookSender{signingSecret: signingSecret, client: client}
}

// Channel returns the channel this sender serves
func (s *WebhookSender) Channel() notification.Channel {
	return notification.ChannelWebhook
}

// Send posts the event to the configured endpoint
func (s *WebhookSender) Send(ctx context.Context, event *notification.Event, cfg *notification.ChannelConfig) error {
	var hookCfg notification.WebhookConfig
	if cfg != nil && len(cfg.Config) > 0 {
		if err := json.Unmarshal(cfg.Config, &hookCfg); err != nil {
			return fmt.Errorf("invalid webhook config: %w", err)
		}
	}
	if hookCfg.URL == "" {
		return fmt.Errorf("no webhook URL configured")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"event":     event.Type,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"tenant_id": event.TenantID,
		"title":     event.Title,
		"message":   event.Message,
		"data":      event.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hookCfg.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Event", string(event.Type))
	req.Header.Set("X-Webhook-Timestamp", fmt.Sprintf("%d", time.Now().Unix()))

	secret := hookCfg.Secret
	if secret == "" {
		secret = s.signingSecret
	}
	if secret != "" {
		req.Header.Set("X-Webhook-Signature", signPayload(payload, secret))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// signPayload signs the payload with HMAC-SHA256
func signPayload(payload []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return "sha256=" + hex.EncodeToString(h.Sum(nil))
}
