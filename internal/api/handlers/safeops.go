package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/utils"
	"github.com/wastegate/wastegate/internal/pkg/validator"
	"github.com/wastegate/wastegate/internal/safeops"
)

// SafeOpsHandler exposes ad-hoc safety verdicts over the rule interceptor
type SafeOpsHandler struct {
	interceptor *safeops.Interceptor
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewSafeOpsHandler creates a new SafeOps handler
func NewSafeOpsHandler(interceptor *safeops.Interceptor, log *logger.Logger, val *validator.Validator) *SafeOpsHandler {
	return &SafeOpsHandler{
		interceptor: interceptor,
		logger:      log,
		validator:   val,
	}
}

// Check returns a verdict per submitted resource
// @Summary Check resources against safety rules
// @Description Get a deny/allow verdict for each submitted resource without executing anything
// @Tags SafeOps
// @Accept json
// @Produce json
// @Param request body dto.SafetyCheckRequest true "Resources to check"
// @Success 200 {object} dto.SafetyCheckResponse "Per-resource verdicts"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /safeops/check [post]
func (h *SafeOpsHandler) Check(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeResources(w, r)
	if !ok {
		return
	}

	verdicts := make([]dto.SafetyVerdictDTO, len(req.Resources))
	for i, res := range req.Resources {
		v := h.interceptor.Validate(toSafeOpsResource(res))
		verdicts[i] = dto.SafetyVerdictDTO{
			ResourceID: res.ResourceID,
			IsSafe:     v.Safe,
			Reason:     v.Reason,
		}
	}

	utils.WriteSuccess(w, http.StatusOK, dto.SafetyCheckResponse{Verdicts: verdicts})
}

// Filter returns only the submitted resources that pass the safety rules
// @Summary Filter resources through safety rules
// @Description Return the subset of submitted resources that are safe to act on
// @Tags SafeOps
// @Accept json
// @Produce json
// @Param request body dto.SafetyCheckRequest true "Resources to filter"
// @Success 200 {object} dto.SafetyFilterResponse "Safe resources"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /safeops/filter [post]
func (h *SafeOpsHandler) Filter(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeResources(w, r)
	if !ok {
		return
	}

	safe := make([]dto.SafetyResourceDTO, 0, len(req.Resources))
	for _, res := range req.Resources {
		if h.interceptor.Validate(toSafeOpsResource(res)).Safe {
			safe = append(safe, res)
		}
	}

	utils.WriteSuccess(w, http.StatusOK, dto.SafetyFilterResponse{
		Safe:     safe,
		Excluded: len(req.Resources) - len(safe),
	})
}

func (h *SafeOpsHandler) decodeResources(w http.ResponseWriter, r *http.Request) (dto.SafetyCheckRequest, bool) {
	var req dto.SafetyCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return req, false
	}
	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return req, false
	}
	return req, true
}

func toSafeOpsResource(res dto.SafetyResourceDTO) safeops.Resource {
	return safeops.Resource{
		ResourceID:   res.ResourceID,
		ResourceType: res.ResourceType,
		Tags:         res.Tags,
		CreatedAt:    res.CreatedAt,
		AgeDays:      res.AgeDays,
	}
}
