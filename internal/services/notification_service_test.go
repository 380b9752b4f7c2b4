package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wastegate/wastegate/internal/config"
	"github.com/wastegate/wastegate/internal/domain/notification"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/testutil"
)

func newNotificationFixture(t *testing.T, cfg *config.Config) (notification.Service, *testutil.MockNotificationRepository) {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	repo := testutil.NewMockNotificationRepository()
	return NewNotificationService(repo, cfg, log), repo
}

func TestNotificationService_Send_Slack(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc, repo := newNotificationFixture(t, nil)
	ctx := context.Background()

	if _, err := svc.ConfigureChannel(ctx, "t1", notification.ChannelSlack, true, notification.SlackConfig{
		WebhookURL: server.URL,
		Username:   "wastegate-bot",
	}); err != nil {
		t.Fatalf("ConfigureChannel() error = %v", err)
	}

	err := svc.Send(ctx, &notification.Event{
		TenantID: "t1",
		Type:     notification.EventBudgetAlert,
		Title:    "Monthly budget cap reached",
		Message:  "Spend of $600.00 has reached the configured cap of $500.00.",
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	var msg map[string]interface{}
	if err := json.Unmarshal(gotBody, &msg); err != nil {
		t.Fatalf("slack payload is not JSON: %v", err)
	}
	if msg["username"] != "wastegate-bot" {
		t.Errorf("username = %v, want wastegate-bot", msg["username"])
	}
	attachments, ok := msg["attachments"].([]interface{})
	if !ok || len(attachments) != 1 {
		t.Fatalf("attachments = %v, want one entry", msg["attachments"])
	}
	att := attachments[0].(map[string]interface{})
	if att["color"] != "#ff8c00" {
		t.Errorf("color = %v, want #ff8c00 for a budget alert", att["color"])
	}
	if title, _ := att["title"].(string); !strings.Contains(title, "Monthly budget cap reached") {
		t.Errorf("title = %q, want the event title", title)
	}
	if att["footer"] != "WasteGate" {
		t.Errorf("footer = %v, want WasteGate", att["footer"])
	}

	if len(repo.Logs) != 1 {
		t.Fatalf("log rows = %d, want 1", len(repo.Logs))
	}
	logRow := repo.Logs[0]
	if logRow.Status != notification.DeliveryStatusSent {
		t.Errorf("Status = %s, want sent", logRow.Status)
	}
	if logRow.SentAt == nil {
		t.Error("SentAt should be set on success")
	}
	if logRow.Channel != notification.ChannelSlack {
		t.Errorf("Channel = %s, want slack", logRow.Channel)
	}
}

func TestNotificationService_Send_WebhookSigned(t *testing.T) {
	var (
		gotBody      []byte
		gotSignature string
		gotEventType string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSignature = r.Header.Get("X-Webhook-Signature")
		gotEventType = r.Header.Get("X-Webhook-Event")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc, repo := newNotificationFixture(t, nil)
	ctx := context.Background()

	if _, err := svc.ConfigureChannel(ctx, "t1", notification.ChannelWebhook, true, notification.WebhookConfig{
		URL:    server.URL,
		Secret: "s3cret",
	}); err != nil {
		t.Fatalf("ConfigureChannel() error = %v", err)
	}

	err := svc.Send(ctx, &notification.Event{
		TenantID: "t1",
		Type:     notification.EventRemediationApplied,
		Title:    "Remediation applied",
		Message:  "stop_or_terminate on i-1 saved an estimated 75.00 USD/month",
		Data:     map[string]interface{}{"resource_id": "i-1"},
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotEventType != string(notification.EventRemediationApplied) {
		t.Errorf("X-Webhook-Event = %s, want %s", gotEventType, notification.EventRemediationApplied)
	}

	// The signature must verify against the delivered body
	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write(gotBody)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if gotSignature != want {
		t.Errorf("X-Webhook-Signature = %s, want %s", gotSignature, want)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("webhook payload is not JSON: %v", err)
	}
	if payload["event"] != string(notification.EventRemediationApplied) {
		t.Errorf("payload event = %v", payload["event"])
	}
	if payload["tenant_id"] != "t1" {
		t.Errorf("payload tenant_id = %v", payload["tenant_id"])
	}

	if len(repo.Logs) != 1 || repo.Logs[0].Status != notification.DeliveryStatusSent {
		t.Errorf("expected one sent log row, got %+v", repo.Logs)
	}
}

func TestNotificationService_Send_FailureLogged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc, repo := newNotificationFixture(t, nil)
	ctx := context.Background()

	if _, err := svc.ConfigureChannel(ctx, "t1", notification.ChannelWebhook, true, notification.WebhookConfig{URL: server.URL}); err != nil {
		t.Fatalf("ConfigureChannel() error = %v", err)
	}

	// Delivery failures are recorded, not returned
	err := svc.Send(ctx, &notification.Event{TenantID: "t1", Type: notification.EventBreakerOpened, Title: "Breaker opened"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(repo.Logs) != 1 {
		t.Fatalf("log rows = %d, want 1", len(repo.Logs))
	}
	logRow := repo.Logs[0]
	if logRow.Status != notification.DeliveryStatusFailed {
		t.Errorf("Status = %s, want failed", logRow.Status)
	}
	if logRow.ErrorMessage == "" {
		t.Error("ErrorMessage should carry the delivery error")
	}
	if logRow.SentAt != nil {
		t.Error("SentAt should be empty on failure")
	}
}

func TestNotificationService_Send_NoChannels(t *testing.T) {
	svc, repo := newNotificationFixture(t, nil)

	err := svc.Send(context.Background(), &notification.Event{TenantID: "t1", Type: notification.EventBudgetAlert, Title: "x"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(repo.Logs) != 0 {
		t.Errorf("log rows = %d, want 0", len(repo.Logs))
	}

	if err := svc.Send(context.Background(), &notification.Event{Type: notification.EventBudgetAlert}); err == nil {
		t.Error("Send() without tenant ID should fail")
	}
}

func TestNotificationService_Send_DisabledChannelSkipped(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc, repo := newNotificationFixture(t, nil)
	ctx := context.Background()

	if _, err := svc.ConfigureChannel(ctx, "t1", notification.ChannelWebhook, false, notification.WebhookConfig{URL: server.URL}); err != nil {
		t.Fatalf("ConfigureChannel() error = %v", err)
	}

	if err := svc.Send(ctx, &notification.Event{TenantID: "t1", Type: notification.EventBudgetAlert, Title: "x"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if hits != 0 {
		t.Errorf("disabled channel was delivered to %d times", hits)
	}
	if len(repo.Logs) != 0 {
		t.Errorf("log rows = %d, want 0", len(repo.Logs))
	}
}

func TestNotificationService_SendBudgetAlert(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc, _ := newNotificationFixture(t, nil)
	ctx := context.Background()

	if _, err := svc.ConfigureChannel(ctx, "t1", notification.ChannelWebhook, true, notification.WebhookConfig{URL: server.URL}); err != nil {
		t.Fatalf("ConfigureChannel() error = %v", err)
	}

	if err := svc.SendBudgetAlert(ctx, "t1", 612.40, 500); err != nil {
		t.Fatalf("SendBudgetAlert() error = %v", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload["event"] != string(notification.EventBudgetAlert) {
		t.Errorf("event = %v, want %s", payload["event"], notification.EventBudgetAlert)
	}
	msg, _ := payload["message"].(string)
	if !strings.Contains(msg, "$612.40") || !strings.Contains(msg, "$500.00") {
		t.Errorf("message = %q, want spend and cap amounts", msg)
	}
	data, _ := payload["data"].(map[string]interface{})
	if data["cap_usd"] != 500.0 {
		t.Errorf("data.cap_usd = %v, want 500", data["cap_usd"])
	}
}

func TestNotificationService_ConfigureChannel_Validation(t *testing.T) {
	svc, _ := newNotificationFixture(t, nil)
	ctx := context.Background()

	if _, err := svc.ConfigureChannel(ctx, "", notification.ChannelSlack, true, nil); err == nil {
		t.Error("ConfigureChannel() without tenant ID should fail")
	}
	if _, err := svc.ConfigureChannel(ctx, "t1", notification.Channel("pager"), true, nil); err == nil {
		t.Error("ConfigureChannel() with unknown channel should fail")
	}
	// No per-tenant URL and no service default
	if _, err := svc.ConfigureChannel(ctx, "t1", notification.ChannelSlack, true, nil); err == nil {
		t.Error("enabling slack without any webhook URL should fail")
	}
	if _, err := svc.ConfigureChannel(ctx, "t1", notification.ChannelWebhook, true, notification.WebhookConfig{}); err == nil {
		t.Error("enabling webhook without a URL should fail")
	}
	// Disabling a channel needs no usable config
	if _, err := svc.ConfigureChannel(ctx, "t1", notification.ChannelSlack, false, nil); err != nil {
		t.Errorf("disabling without config should succeed, got %v", err)
	}
}

func TestNotificationService_ConfigureChannel_DefaultSlackURL(t *testing.T) {
	cfg := testConfig()
	cfg.Notifications.SlackWebhookURL = "https://hooks.slack.example/services/T0/B0/x"
	svc, _ := newNotificationFixture(t, cfg)

	// The installation-wide default stands in for a per-tenant URL
	ch, err := svc.ConfigureChannel(context.Background(), "t1", notification.ChannelSlack, true, nil)
	if err != nil {
		t.Fatalf("ConfigureChannel() error = %v", err)
	}
	if !ch.IsEnabled {
		t.Error("channel should be enabled")
	}
}

func TestNotificationService_GetHistory(t *testing.T) {
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer okServer.Close()
	badServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer badServer.Close()

	svc, _ := newNotificationFixture(t, nil)
	ctx := context.Background()

	if _, err := svc.ConfigureChannel(ctx, "t1", notification.ChannelWebhook, true, notification.WebhookConfig{URL: okServer.URL}); err != nil {
		t.Fatalf("ConfigureChannel() error = %v", err)
	}
	if _, err := svc.ConfigureChannel(ctx, "t1", notification.ChannelSlack, true, notification.SlackConfig{WebhookURL: badServer.URL}); err != nil {
		t.Fatalf("ConfigureChannel() error = %v", err)
	}

	if err := svc.Send(ctx, &notification.Event{TenantID: "t1", Type: notification.EventRemediationDenied, Title: "Remediation denied"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	all, total, err := svc.GetHistory(ctx, "t1", notification.LogFilter{}, 10, 0)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("history = %d rows (total %d), want 2", len(all), total)
	}

	failed, _, err := svc.GetHistory(ctx, "t1", notification.LogFilter{Status: notification.DeliveryStatusFailed}, 10, 0)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(failed) != 1 {
		t.Fatalf("failed rows = %d, want 1", len(failed))
	}
	if failed[0].Channel != notification.ChannelSlack {
		t.Errorf("failed Channel = %s, want slack", failed[0].Channel)
	}
}
