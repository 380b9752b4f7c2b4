package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/domain/classification"
	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/utils"
	"github.com/wastegate/wastegate/internal/pkg/validator"
	"github.com/wastegate/wastegate/internal/services"
)

// RunAnalyzer produces a narrative summary of one classification run
type RunAnalyzer interface {
	SummarizeRun(ctx context.Context, tenantID, runID string) (*services.RunAnalysis, error)
}

// ScanHandler handles scan ingestion and run queries
type ScanHandler struct {
	service   classification.Service
	analyzer  RunAnalyzer
	logger    *logger.Logger
	validator *validator.Validator
}

// NewScanHandler creates a new scan handler
func NewScanHandler(service classification.Service, analyzer RunAnalyzer, log *logger.Logger, val *validator.Validator) *ScanHandler {
	return &ScanHandler{
		service:   service,
		analyzer:  analyzer,
		logger:    log,
		validator: val,
	}
}

// Submit ingests one scan payload and classifies it
// @Summary Submit a scan payload
// @Description Run both classifiers over a scan payload and persist the resulting run
// @Tags Scans
// @Accept json
// @Produce json
// @Param request body dto.SubmitScanRequest true "Scan payload"
// @Success 201 {object} dto.ScanResultDTO "Classification result"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /scans [post]
func (h *ScanHandler) Submit(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var req dto.SubmitScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	source := req.Source
	if source == "" {
		source = classification.SourceAPI
	}

	run, recs, findings, err := h.service.Ingest(r.Context(), tenantID, source, req.ScanResults)
	if err != nil {
		h.logger.ErrorWithErr(err, "Scan ingest failed")
		writeServiceError(w, err, errors.BadRequest(err.Error()))
		return
	}

	result := dto.ScanResultDTO{
		Run:             mapRunToDTO(run),
		Recommendations: make([]dto.RecommendationDTO, len(recs)),
		Findings:        make([]dto.FindingDTO, len(findings)),
	}
	for i, rec := range recs {
		result.Recommendations[i] = mapRecommendationToDTO(rec)
	}
	for i, f := range findings {
		result.Findings[i] = mapFindingToDTO(f)
	}

	utils.WriteSuccess(w, http.StatusCreated, result)
}

// List returns the tenant's classification runs
// @Summary List scan runs
// @Description Get a paginated list of classification runs
// @Tags Scans
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.ScanRunDTO} "List of runs"
// @Security BearerAuth
// @Router /scans [get]
func (h *ScanHandler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	p := utils.ParsePaginationParams(r)
	runs, total, err := h.service.ListRuns(r.Context(), tenantID, p.PageSize, p.Offset)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list runs")
		utils.WriteError(w, errors.Internal("Failed to list runs", err))
		return
	}

	dtos := make([]dto.ScanRunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = mapRunToDTO(run)
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, p.Page, p.PageSize, total))
}

// Get returns one classification run
// @Summary Get scan run
// @Description Get one classification run by ID
// @Tags Scans
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} dto.ScanRunDTO "Run details"
// @Failure 404 {object} utils.ErrorResponse "Run not found"
// @Security BearerAuth
// @Router /scans/{id} [get]
func (h *ScanHandler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	run, err := h.service.GetRun(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, errors.Internal("Failed to get run", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, mapRunToDTO(run))
}

// GetAnalysis returns a narrative summary of one run
// @Summary Get run analysis
// @Description Get a narrative summary of what one run found
// @Tags Scans
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} dto.RunAnalysisDTO "Narrative summary"
// @Failure 404 {object} utils.ErrorResponse "Run not found"
// @Security BearerAuth
// @Router /scans/{id}/analysis [get]
func (h *ScanHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	analysis, err := h.analyzer.SummarizeRun(r.Context(), tenantID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, errors.Internal("Failed to summarize run", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.RunAnalysisDTO{
		RunID:       analysis.RunID,
		Narrative:   analysis.Narrative,
		Source:      analysis.Source,
		GeneratedAt: analysis.GeneratedAt,
	})
}

func mapRunToDTO(run *classification.Run) dto.ScanRunDTO {
	return dto.ScanRunDTO{
		ID:     run.ID,
		Source: run.Source,
		Summary: dto.RunSummaryDTO{
			TotalRecommendations: run.Summary.TotalRecommendations,
			TotalFindings:        run.Summary.TotalFindings,
			ByDetectionClass:     run.Summary.ByDetectionClass,
			ByFindingType:        run.Summary.ByFindingType,
			Savings: dto.SavingsBand{
				LowUSD:  run.Summary.SavingsLowUSD,
				MidUSD:  run.Summary.SavingsMidUSD,
				HighUSD: run.Summary.SavingsHighUSD,
			},
		},
		Recommendations: run.Recommendations,
		Findings:        run.Findings,
		CreatedAt:       run.CreatedAt,
	}
}
