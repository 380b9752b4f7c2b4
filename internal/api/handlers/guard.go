package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/guard"
	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/utils"
	"github.com/wastegate/wastegate/internal/pkg/validator"
)

// GuardHandler dry-runs the budget guards for a hypothetical action
type GuardHandler struct {
	guards    *guard.Coordinator
	logger    *logger.Logger
	validator *validator.Validator
}

// NewGuardHandler creates a new guard handler
func NewGuardHandler(guards *guard.Coordinator, log *logger.Logger, val *validator.Validator) *GuardHandler {
	return &GuardHandler{
		guards:    guards,
		logger:    log,
		validator: val,
	}
}

// Check runs every guard without executing anything
// @Summary Dry-run the budget guards
// @Description Run the kill-switch, monthly cap, and circuit breaker checks for a hypothetical action
// @Tags Guards
// @Accept json
// @Produce json
// @Param request body dto.GuardCheckRequest true "Hypothetical action impact"
// @Success 200 {object} dto.GuardCheckResponse "Guard outcome"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /guards/check [post]
func (h *GuardHandler) Check(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var req dto.GuardCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	err := h.guards.CheckAll(r.Context(), tenantID, req.EstimatedImpactUSD)
	if err != nil {
		if denied, ok := guard.IsDenied(err); ok {
			utils.WriteSuccess(w, http.StatusOK, dto.GuardCheckResponse{
				Allowed:    false,
				DenialCode: denied.Code,
				Reason:     denied.Reason,
			})
			return
		}
		h.logger.ErrorWithErr(err, "Guard check failed")
		writeServiceError(w, err, errors.Internal("Guard check failed", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.GuardCheckResponse{Allowed: true})
}
