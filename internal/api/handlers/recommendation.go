package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/domain/classification"
	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/utils"
)

// RecommendationHandler handles waste recommendation queries
type RecommendationHandler struct {
	service classification.Service
	logger  *logger.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service classification.Service, log *logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{service: service, logger: log}
}

// List returns the tenant's recommendations with pagination and filtering
// @Summary List recommendations
// @Description Get a paginated list of waste recommendations with optional filtering
// @Tags Recommendations
// @Produce json
// @Param run_id query string false "Filter by run ID"
// @Param status query string false "Filter by status (pending, actioned, dismissed, expired)"
// @Param detection_class query string false "Filter by detection class"
// @Param policy_route query string false "Filter by policy route (auto_queue, manual_review)"
// @Param min_confidence query number false "Minimum confidence (0..1)"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.RecommendationDTO} "List of recommendations"
// @Security BearerAuth
// @Router /recommendations [get]
func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	minConfidence, _ := strconv.ParseFloat(q.Get("min_confidence"), 64)
	filter := classification.Filter{
		RunID:          q.Get("run_id"),
		Status:         classification.Status(q.Get("status")),
		DetectionClass: q.Get("detection_class"),
		PolicyRoute:    q.Get("policy_route"),
		MinConfidence:  minConfidence,
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		utils.WriteError(w, errors.BadRequest("Invalid status filter"))
		return
	}

	p := utils.ParsePaginationParams(r)
	recs, total, err := h.service.ListRecommendations(r.Context(), tenantID, filter, p.PageSize, p.Offset)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list recommendations")
		utils.WriteError(w, errors.Internal("Failed to list recommendations", err))
		return
	}

	dtos := make([]dto.RecommendationDTO, len(recs))
	for i, rec := range recs {
		dtos[i] = mapRecommendationToDTO(rec)
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, p.Page, p.PageSize, total))
}

// Get returns one recommendation
// @Summary Get recommendation
// @Description Get one waste recommendation by ID
// @Tags Recommendations
// @Produce json
// @Param id path string true "Recommendation ID"
// @Success 200 {object} dto.RecommendationDTO "Recommendation details"
// @Failure 404 {object} utils.ErrorResponse "Recommendation not found"
// @Security BearerAuth
// @Router /recommendations/{id} [get]
func (h *RecommendationHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	rec, err := h.service.GetRecommendation(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, errors.Internal("Failed to get recommendation", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, mapRecommendationToDTO(rec))
}

// Dismiss marks a recommendation as dismissed
// @Summary Dismiss recommendation
// @Description Mark a pending recommendation as dismissed
// @Tags Recommendations
// @Produce json
// @Param id path string true "Recommendation ID"
// @Success 200 {object} utils.SuccessResponse "Dismissed"
// @Failure 404 {object} utils.ErrorResponse "Recommendation not found"
// @Failure 409 {object} utils.ErrorResponse "Recommendation is terminal"
// @Security BearerAuth
// @Router /recommendations/{id}/dismiss [post]
func (h *RecommendationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Dismiss(r.Context(), tenantID, id); err != nil {
		writeServiceError(w, err, errors.Conflict(err.Error()))
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"tenant_id":         tenantID,
		"recommendation_id": id,
	}).Info("Recommendation dismissed")

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Recommendation dismissed", nil)
}

// GetSavings returns potential savings over pending recommendations
// @Summary Get pending savings totals
// @Description Aggregate the low/mid/high savings bands over pending recommendations
// @Tags Recommendations
// @Produce json
// @Success 200 {object} dto.SavingsTotalsDTO "Savings totals"
// @Security BearerAuth
// @Router /recommendations/savings [get]
func (h *RecommendationHandler) GetSavings(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	totals, err := h.service.PendingSavings(r.Context(), tenantID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to aggregate savings")
		utils.WriteError(w, errors.Internal("Failed to aggregate savings", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.SavingsTotalsDTO{
		Count:   totals.Count,
		LowUSD:  totals.LowUSD,
		MidUSD:  totals.MidUSD,
		HighUSD: totals.HighUSD,
	})
}

func mapRecommendationToDTO(rec *classification.Recommendation) dto.RecommendationDTO {
	return dto.RecommendationDTO{
		ID:             rec.ID,
		RunID:          rec.RunID,
		ResourceID:     rec.ResourceID,
		Category:       rec.Category,
		DetectionClass: rec.DetectionClass,
		RequiredAction: rec.RequiredAction,
		PolicyRoute:    rec.PolicyRoute,
		Confidence:     rec.Confidence,
		Savings: dto.SavingsBand{
			LowUSD:  rec.SavingsLowUSD,
			MidUSD:  rec.SavingsMidUSD,
			HighUSD: rec.SavingsHighUSD,
		},
		Status:    string(rec.Status),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
