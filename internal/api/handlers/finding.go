package handlers

import (
	"net/http"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/domain/classification"
	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/utils"
)

// FindingHandler handles architecture finding queries
type FindingHandler struct {
	service classification.Service
	logger  *logger.Logger
}

// NewFindingHandler creates a new finding handler
func NewFindingHandler(service classification.Service, log *logger.Logger) *FindingHandler {
	return &FindingHandler{service: service, logger: log}
}

// List returns the tenant's architecture findings
// @Summary List architecture findings
// @Description Get a paginated list of architectural inefficiency findings
// @Tags Findings
// @Produce json
// @Param run_id query string false "Filter by run ID"
// @Param finding_type query string false "Filter by finding type"
// @Param risk_label query string false "Filter by risk label (low, medium, high)"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.FindingDTO} "List of findings"
// @Security BearerAuth
// @Router /findings [get]
func (h *FindingHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := classification.FindingFilter{
		RunID:       q.Get("run_id"),
		FindingType: q.Get("finding_type"),
		RiskLabel:   q.Get("risk_label"),
	}

	p := utils.ParsePaginationParams(r)
	findings, total, err := h.service.ListFindings(r.Context(), tenantID, filter, p.PageSize, p.Offset)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list findings")
		utils.WriteError(w, errors.Internal("Failed to list findings", err))
		return
	}

	dtos := make([]dto.FindingDTO, len(findings))
	for i, f := range findings {
		dtos[i] = mapFindingToDTO(f)
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, p.Page, p.PageSize, total))
}

func mapFindingToDTO(f *classification.ArchFinding) dto.FindingDTO {
	return dto.FindingDTO{
		ID:             f.ID,
		RunID:          f.RunID,
		FindingType:    f.FindingType,
		ResourceID:     f.ResourceID,
		ResourceIDs:    f.ResourceIDs,
		Provider:       f.Provider,
		Environment:    f.Environment,
		RiskLabel:      f.RiskLabel,
		RequiredAction: f.RequiredAction,
		PolicyRoute:    f.PolicyRoute,
		Confidence:     f.Confidence,
		Savings: dto.SavingsBand{
			LowUSD:  f.SavingsLowUSD,
			MidUSD:  f.SavingsMidUSD,
			HighUSD: f.SavingsHighUSD,
		},
		Details:   f.Details,
		CreatedAt: f.CreatedAt,
	}
}
