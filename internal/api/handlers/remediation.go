package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/api/middleware"
	"github.com/wastegate/wastegate/internal/domain/remediation"
	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/utils"
	"github.com/wastegate/wastegate/internal/pkg/validator"
)

// RemediationHandler handles remediation action requests
type RemediationHandler struct {
	service   remediation.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewRemediationHandler creates a new remediation handler
func NewRemediationHandler(service remediation.Service, log *logger.Logger, val *validator.Validator) *RemediationHandler {
	return &RemediationHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// Create creates a remediation action
// @Summary Create remediation action
// @Description Create an action from a recommendation, or describe the target directly
// @Tags Remediations
// @Accept json
// @Produce json
// @Param request body dto.CreateRemediationRequest true "Action to create"
// @Success 201 {object} dto.RemediationActionDTO "Created action"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 409 {object} utils.ErrorResponse "Recommendation cannot be actioned"
// @Security BearerAuth
// @Router /remediations [post]
func (h *RemediationHandler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var req dto.CreateRemediationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	var action *remediation.Action
	var err error
	if req.RecommendationID != "" {
		action, err = h.service.CreateFromRecommendation(r.Context(), tenantID, req.RecommendationID)
	} else {
		if req.ResourceID == "" || req.ActionType == "" {
			utils.WriteError(w, errors.BadRequest("Either recommendationId or resourceId with actionType is required"))
			return
		}
		action, err = h.service.Create(r.Context(), &remediation.Action{
			TenantID:            tenantID,
			ResourceID:          req.ResourceID,
			ResourceType:        req.ResourceType,
			Tags:                req.Tags,
			ActionType:          remediation.ActionType(req.ActionType),
			PolicyRoute:         req.PolicyRoute,
			EstimatedSavingsUSD: req.EstimatedSavingsUSD,
		})
	}
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to create remediation action")
		writeServiceError(w, err, errors.BadRequest(err.Error()))
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"tenant_id":   tenantID,
		"action_id":   action.ID,
		"action_type": action.ActionType,
	}).Info("Remediation action created")

	utils.WriteSuccess(w, http.StatusCreated, mapActionToDTO(action))
}

// List returns the tenant's remediation actions
// @Summary List remediation actions
// @Description Get a paginated list of remediation actions with optional filtering
// @Tags Remediations
// @Produce json
// @Param status query string false "Filter by status (pending, approved, applied, denied, failed)"
// @Param action_type query string false "Filter by action type"
// @Param resource_id query string false "Filter by resource ID"
// @Param recommendation_id query string false "Filter by source recommendation"
// @Param from query string false "Creation window start (RFC3339)"
// @Param to query string false "Creation window end (RFC3339)"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.RemediationActionDTO} "List of actions"
// @Security BearerAuth
// @Router /remediations [get]
func (h *RemediationHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := remediation.Filter{
		Status:           remediation.ActionStatus(q.Get("status")),
		ActionType:       remediation.ActionType(q.Get("action_type")),
		ResourceID:       q.Get("resource_id"),
		RecommendationID: q.Get("recommendation_id"),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		utils.WriteError(w, errors.BadRequest("Invalid status filter"))
		return
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid from timestamp"))
			return
		}
		filter.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid to timestamp"))
			return
		}
		filter.To = &t
	}

	p := utils.ParsePaginationParams(r)
	actions, total, err := h.service.ListActions(r.Context(), tenantID, filter, p.PageSize, p.Offset)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list remediation actions")
		utils.WriteError(w, errors.Internal("Failed to list remediation actions", err))
		return
	}

	dtos := make([]dto.RemediationActionDTO, len(actions))
	for i, a := range actions {
		dtos[i] = mapActionToDTO(a)
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, p.Page, p.PageSize, total))
}

// Get returns one remediation action
// @Summary Get remediation action
// @Description Get one remediation action by ID
// @Tags Remediations
// @Produce json
// @Param id path string true "Action ID"
// @Success 200 {object} dto.RemediationActionDTO "Action details"
// @Failure 404 {object} utils.ErrorResponse "Action not found"
// @Security BearerAuth
// @Router /remediations/{id} [get]
func (h *RemediationHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	action, err := h.service.GetAction(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, errors.Internal("Failed to get action", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, mapActionToDTO(action))
}

// Execute runs a remediation action through the full safety gauntlet
// @Summary Execute remediation action
// @Description Run SafeOps rules, budget guards, and the executor; a denial is reported in the action status
// @Tags Remediations
// @Produce json
// @Param id path string true "Action ID"
// @Success 200 {object} dto.RemediationActionDTO "Final action state (applied, denied, or failed)"
// @Failure 404 {object} utils.ErrorResponse "Action not found"
// @Failure 409 {object} utils.ErrorResponse "Action is terminal or requires approval"
// @Security BearerAuth
// @Router /remediations/{id}/execute [post]
func (h *RemediationHandler) Execute(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	action, err := h.service.Execute(r.Context(), tenantID, id)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"tenant_id": tenantID,
			"action_id": id,
			"error":     err.Error(),
		}).Warn("Remediation execution rejected")
		writeServiceError(w, err, errors.Conflict(err.Error()))
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"tenant_id":   tenantID,
		"action_id":   action.ID,
		"status":      action.Status,
		"denial_code": action.DenialCode,
	}).Info("Remediation execution finished")

	utils.WriteSuccess(w, http.StatusOK, mapActionToDTO(action))
}

// Approve approves a pending manual-review action
// @Summary Approve remediation action
// @Description Approve a pending action that requires manual review
// @Tags Remediations
// @Produce json
// @Param id path string true "Action ID"
// @Success 200 {object} utils.SuccessResponse "Approved"
// @Failure 404 {object} utils.ErrorResponse "Action not found"
// @Failure 409 {object} utils.ErrorResponse "Action is not pending"
// @Security BearerAuth
// @Router /remediations/{id}/approve [post]
func (h *RemediationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	approverID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Approve(r.Context(), tenantID, id, approverID); err != nil {
		writeServiceError(w, err, errors.Conflict(err.Error()))
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"tenant_id":   tenantID,
		"action_id":   id,
		"approver_id": approverID,
	}).Info("Remediation action approved")

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Action approved", nil)
}

// ListPending returns actions waiting for approval
// @Summary List pending approvals
// @Description Get the actions waiting for a manual-review approval
// @Tags Remediations
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.RemediationActionDTO} "Pending actions"
// @Security BearerAuth
// @Router /remediations/pending [get]
func (h *RemediationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	actions, err := h.service.GetPendingApprovals(r.Context(), tenantID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list pending approvals")
		utils.WriteError(w, errors.Internal("Failed to list pending approvals", err))
		return
	}

	dtos := make([]dto.RemediationActionDTO, len(actions))
	for i, a := range actions {
		dtos[i] = mapActionToDTO(a)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// GetSummary returns action counts by status
// @Summary Get remediation summary
// @Description Count the tenant's remediation actions by status
// @Tags Remediations
// @Produce json
// @Success 200 {object} dto.RemediationSummaryDTO "Counts by status"
// @Security BearerAuth
// @Router /remediations/summary [get]
func (h *RemediationHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	counts, err := h.service.GetSummary(r.Context(), tenantID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to summarize actions")
		utils.WriteError(w, errors.Internal("Failed to summarize actions", err))
		return
	}

	summary := dto.RemediationSummaryDTO{ByStatus: make(map[string]int, len(counts))}
	for status, n := range counts {
		summary.ByStatus[string(status)] = n
		summary.Total += n
	}

	utils.WriteSuccess(w, http.StatusOK, summary)
}

func mapActionToDTO(a *remediation.Action) dto.RemediationActionDTO {
	return dto.RemediationActionDTO{
		ID:                  a.ID,
		RecommendationID:    a.RecommendationID,
		ResourceID:          a.ResourceID,
		ResourceType:        a.ResourceType,
		Tags:                a.Tags,
		ActionType:          string(a.ActionType),
		PolicyRoute:         a.PolicyRoute,
		Status:              string(a.Status),
		EstimatedSavingsUSD: a.EstimatedSavingsUSD,
		SafetyVerdict:       a.SafetyVerdict,
		DenialCode:          a.DenialCode,
		Result:              a.Result,
		ErrorMessage:        a.ErrorMessage,
		ApprovedBy:          a.ApprovedBy,
		ApprovedAt:          a.ApprovedAt,
		ExecutedAt:          a.ExecutedAt,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}
