package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/api/middleware"
	"github.com/wastegate/wastegate/internal/breaker"
	"github.com/wastegate/wastegate/internal/domain/user"
	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/utils"
)

// BreakerHandler exposes circuit breaker snapshots and resets
type BreakerHandler struct {
	breakers *breaker.TenantCache
	logger   *logger.Logger
}

// NewBreakerHandler creates a new breaker handler
func NewBreakerHandler(breakers *breaker.TenantCache, log *logger.Logger) *BreakerHandler {
	return &BreakerHandler{breakers: breakers, logger: log}
}

// GetStatus returns a tenant's breaker snapshot
// @Summary Get circuit breaker status
// @Description Get the operational snapshot of a tenant's circuit breaker
// @Tags Breakers
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} dto.BreakerStatusDTO "Breaker snapshot"
// @Failure 403 {object} utils.ErrorResponse "Foreign tenant"
// @Security BearerAuth
// @Router /breakers/{tenantID} [get]
func (h *BreakerHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}

	cb, err := h.breakers.ForTenant(r.Context(), tenantID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to resolve breaker")
		utils.WriteError(w, errors.Internal("Failed to resolve breaker", err))
		return
	}

	status, err := cb.Status(r.Context())
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to read breaker status")
		writeServiceError(w, err, errors.Internal("Failed to read breaker status", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.BreakerStatusDTO{
		TenantID:        status.TenantID,
		State:           string(status.State),
		FailureCount:    status.FailureCount,
		DailySavingsUSD: status.DailySavingsUSD,
		CanExecute:      status.CanExecute,
		LastError:       status.LastError,
	})
}

// Reset forces a tenant's breaker closed and clears its failure count
// @Summary Reset circuit breaker
// @Description Force a tenant's breaker closed and clear its failure count
// @Tags Breakers
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} utils.SuccessResponse "Breaker reset"
// @Failure 403 {object} utils.ErrorResponse "Foreign tenant"
// @Security BearerAuth
// @Router /breakers/{tenantID}/reset [post]
func (h *BreakerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}

	cb, err := h.breakers.ForTenant(r.Context(), tenantID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to resolve breaker")
		utils.WriteError(w, errors.Internal("Failed to resolve breaker", err))
		return
	}

	if err := cb.Reset(r.Context()); err != nil {
		h.logger.ErrorWithErr(err, "Failed to reset breaker")
		writeServiceError(w, err, errors.Internal("Failed to reset breaker", err))
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"tenant_id": tenantID,
	}).Info("Circuit breaker reset by operator")

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Breaker reset", nil)
}

// resolveTenant reads the path tenant and rejects cross-tenant access for
// non-admin callers.
func (h *BreakerHandler) resolveTenant(w http.ResponseWriter, r *http.Request) (string, bool) {
	callerTenant, ok := requireTenant(w, r)
	if !ok {
		return "", false
	}

	tenantID := chi.URLParam(r, "tenantID")
	if tenantID == "" {
		tenantID = callerTenant
	}
	if tenantID != callerTenant {
		role, _ := middleware.GetUserRole(r)
		if role != user.RoleAdmin {
			utils.WriteError(w, errors.Forbidden("Cannot access another tenant's breaker"))
			return "", false
		}
	}
	return tenantID, true
}
