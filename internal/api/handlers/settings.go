package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/domain/tenant"
	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/utils"
	"github.com/wastegate/wastegate/internal/pkg/validator"
)

// SettingsHandler handles tenant safety-settings requests
type SettingsHandler struct {
	service   tenant.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(service tenant.Service, log *logger.Logger, val *validator.Validator) *SettingsHandler {
	return &SettingsHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Get returns the tenant's effective settings
// @Summary Get tenant settings
// @Description Get the tenant's effective safety settings, defaults filled in
// @Tags Settings
// @Produce json
// @Success 200 {object} dto.TenantSettingsDTO "Effective settings"
// @Security BearerAuth
// @Router /settings [get]
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	settings, err := h.service.Resolve(r.Context(), tenantID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to resolve settings")
		utils.WriteError(w, errors.Internal("Failed to resolve settings", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, mapSettingsToDTO(settings))
}

// Update applies a partial settings update
// @Summary Update tenant settings
// @Description Apply a partial update; omitted fields keep their current value
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "Fields to change"
// @Success 200 {object} dto.TenantSettingsDTO "New effective settings"
// @Failure 400 {object} utils.ErrorResponse "Invalid settings"
// @Security BearerAuth
// @Router /settings [put]
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	settings, err := h.service.Update(r.Context(), tenantID, tenant.Update{
		KillSwitchThresholdUSD: req.KillSwitchThresholdUSD,
		KillSwitchScope:        req.KillSwitchScope,
		MonthlyCapEnabled:      req.MonthlyCapEnabled,
		MonthlyCapUSD:          req.MonthlyCapUSD,
		FailureThreshold:       req.FailureThreshold,
		RecoveryTimeoutSecs:    req.RecoveryTimeoutSecs,
		MaxDailySavingsUSD:     req.MaxDailySavingsUSD,
		MinAgeEnabled:          req.MinAgeEnabled,
		MinAgeDays:             req.MinAgeDays,
	})
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to update settings")
		writeServiceError(w, err, errors.BadRequest(err.Error()))
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"tenant_id": tenantID,
	}).Info("Tenant settings updated")

	utils.WriteSuccess(w, http.StatusOK, mapSettingsToDTO(settings))
}

// Reset drops the tenant's stored settings
// @Summary Reset tenant settings
// @Description Drop the tenant's stored settings; defaults apply afterwards
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.SuccessResponse "Settings reset"
// @Failure 404 {object} utils.ErrorResponse "No stored settings"
// @Security BearerAuth
// @Router /settings [delete]
func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	if err := h.service.Reset(r.Context(), tenantID); err != nil {
		writeServiceError(w, err, errors.Internal("Failed to reset settings", err))
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"tenant_id": tenantID,
	}).Info("Tenant settings reset to defaults")

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Settings reset to defaults", nil)
}

func mapSettingsToDTO(s *tenant.Settings) dto.TenantSettingsDTO {
	return dto.TenantSettingsDTO{
		TenantID:               s.TenantID,
		KillSwitchThresholdUSD: s.KillSwitchThresholdUSD,
		KillSwitchScope:        s.KillSwitchScope,
		MonthlyCapEnabled:      s.MonthlyCapEnabled,
		MonthlyCapUSD:          s.MonthlyCapUSD,
		FailureThreshold:       s.FailureThreshold,
		RecoveryTimeoutSecs:    s.RecoveryTimeoutSecs,
		MaxDailySavingsUSD:     s.MaxDailySavingsUSD,
		MinAgeEnabled:          s.MinAgeEnabled,
		MinAgeDays:             s.MinAgeDays,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}
