package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wastegate/wastegate/pkg/client"
)

func newNotificationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notification",
		Aliases: []string{"notif"},
		Short:   "Manage notification channels",
	}

	cmd.AddCommand(newNotifChannelsCmd())
	cmd.AddCommand(newNotifConfigureCmd())
	cmd.AddCommand(newNotifHistoryCmd())

	return cmd
}

func newNotifChannelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List configured delivery channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			channels, err := apiClient.Notifications().Channels(ctx)
			if err != nil {
				return fmt.Errorf("failed to list channels: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(channels)
			}

			if len(channels) == 0 {
				fmt.Println("No channels configured")
				return nil
			}

			t := NewTable("CHANNEL", "ENABLED", "UPDATED")
			for _, c := range channels {
				enabled := "no"
				if c.IsEnabled {
					enabled = "yes"
				}
				t.AddRow(c.Channel, enabled, c.UpdatedAt.Format("2006-01-02 15:04"))
			}
			t.Render()
			return nil
		},
	}
}

func newNotifConfigureCmd() *cobra.Command {
	var enabled bool
	var configJSON string

	cmd := &cobra.Command{
		Use:   "configure <channel>",
		Short: "Enable or disable a delivery channel (slack, webhook)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.ConfigureChannelRequest{
				Channel:   args[0],
				IsEnabled: enabled,
			}
			if configJSON != "" {
				if !json.Valid([]byte(configJSON)) {
					return fmt.Errorf("--config is not valid JSON")
				}
				req.Config = json.RawMessage(configJSON)
			}

			ctx := context.Background()
			cfg, err := apiClient.Notifications().ConfigureChannel(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to configure channel: %w", err)
			}

			state := "disabled"
			if cfg.IsEnabled {
				state = "enabled"
			}
			fmt.Printf("Channel %s %s\n", cfg.Channel, state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&enabled, "enabled", true, "enable the channel")
	cmd.Flags().StringVar(&configJSON, "config", "", `channel config JSON (e.g. '{"webhookUrl":"..."}')`)

	return cmd
}

func newNotifHistoryCmd() *cobra.Command {
	var channel, eventType, status string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show delivery history",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.NotificationHistoryOptions{}
			if channel != "" {
				opts.Channel = &channel
			}
			if eventType != "" {
				opts.EventType = &eventType
			}
			if status != "" {
				opts.Status = &status
			}

			ctx := context.Background()
			logs, err := apiClient.Notifications().History(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to get notification history: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(logs)
			}

			t := NewTable("CHANNEL", "EVENT", "STATUS", "CREATED", "ERROR")
			for _, l := range logs {
				t.AddRow(
					l.Channel,
					l.EventType,
					formatStatus(l.Status),
					l.CreatedAt.Format("2006-01-02 15:04"),
					truncate(l.ErrorMessage, 40),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "filter by channel (slack, webhook)")
	cmd.Flags().StringVar(&eventType, "event", "", "filter by event type")
	cmd.Flags().StringVar(&status, "status", "", "filter by delivery status (pending, sent, failed)")

	return cmd
}
