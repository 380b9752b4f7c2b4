package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/domain/notification"
	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/utils"
	"github.com/wastegate/wastegate/internal/pkg/validator"
)

// NotificationHandler handles notification channel and history requests
type NotificationHandler struct {
	service   notification.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(service notification.Service, log *logger.Logger, val *validator.Validator) *NotificationHandler {
	return &NotificationHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// ConfigureChannel enables or disables a delivery channel
// @Summary Configure notification channel
// @Description Enable or disable a delivery channel with its config payload
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body dto.ConfigureChannelRequest true "Channel configuration"
// @Success 200 {object} dto.ChannelConfigDTO "Stored configuration"
// @Failure 400 {object} utils.ErrorResponse "Invalid configuration"
// @Security BearerAuth
// @Router /notifications/channels [put]
func (h *NotificationHandler) ConfigureChannel(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var req dto.ConfigureChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	var channelConfig interface{}
	if len(req.Config) > 0 {
		channelConfig = req.Config
	}

	cfg, err := h.service.ConfigureChannel(r.Context(), tenantID, notification.Channel(req.Channel), req.IsEnabled, channelConfig)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to configure channel")
		writeServiceError(w, err, errors.BadRequest(err.Error()))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, mapChannelToDTO(cfg))
}

// ListChannels returns the tenant's configured channels
// @Summary List notification channels
// @Description Get the tenant's configured delivery channels
// @Tags Notifications
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.ChannelConfigDTO} "Configured channels"
// @Security BearerAuth
// @Router /notifications/channels [get]
func (h *NotificationHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	channels, err := h.service.ListChannels(r.Context(), tenantID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list channels")
		utils.WriteError(w, errors.Internal("Failed to list channels", err))
		return
	}

	dtos := make([]dto.ChannelConfigDTO, len(channels))
	for i, cfg := range channels {
		dtos[i] = mapChannelToDTO(cfg)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// GetHistory returns delivery attempt logs
// @Summary Get notification history
// @Description Get a paginated list of delivery attempts, newest first
// @Tags Notifications
// @Produce json
// @Param channel query string false "Filter by channel (slack, webhook)"
// @Param event_type query string false "Filter by event type"
// @Param status query string false "Filter by delivery status (sent, failed)"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.NotificationLogDTO} "Delivery log"
// @Security BearerAuth
// @Router /notifications/history [get]
func (h *NotificationHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := notification.LogFilter{
		Channel:   notification.Channel(q.Get("channel")),
		EventType: notification.EventType(q.Get("event_type")),
		Status:    notification.DeliveryStatus(q.Get("status")),
	}

	p := utils.ParsePaginationParams(r)
	logs, total, err := h.service.GetHistory(r.Context(), tenantID, filter, p.PageSize, p.Offset)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to get notification history")
		utils.WriteError(w, errors.Internal("Failed to get notification history", err))
		return
	}

	dtos := make([]dto.NotificationLogDTO, len(logs))
	for i, l := range logs {
		dtos[i] = dto.NotificationLogDTO{
			ID:           l.ID,
			Channel:      string(l.Channel),
			EventType:    string(l.EventType),
			Status:       string(l.Status),
			ErrorMessage: l.ErrorMessage,
			SentAt:       l.SentAt,
			CreatedAt:    l.CreatedAt,
		}
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, p.Page, p.PageSize, total))
}

func mapChannelToDTO(cfg *notification.ChannelConfig) dto.ChannelConfigDTO {
	return dto.ChannelConfigDTO{
		ID:        cfg.ID,
		Channel:   string(cfg.Channel),
		IsEnabled: cfg.IsEnabled,
		Config:    cfg.Config,
		CreatedAt: cfg.CreatedAt,
		UpdatedAt: cfg.UpdatedAt,
	}
}
