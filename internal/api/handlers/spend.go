package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/domain/spend"
	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/utils"
	"github.com/wastegate/wastegate/internal/pkg/validator"
)

// SpendHandler handles the savings and cost ledger requests
type SpendHandler struct {
	service   spend.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewSpendHandler creates a new spend handler
func NewSpendHandler(service spend.Service, log *logger.Logger, val *validator.Validator) *SpendHandler {
	return &SpendHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// RecordCost ingests one observed spend entry
// @Summary Record a cost entry
// @Description Ingest one observed spend entry from a billing export
// @Tags Spend
// @Accept json
// @Produce json
// @Param request body dto.RecordCostRequest true "Cost entry"
// @Success 201 {object} dto.CostRecordDTO "Stored entry"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /spend/costs [post]
func (h *SpendHandler) RecordCost(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	var req dto.RecordCostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	rec, err := h.service.RecordCost(r.Context(), &spend.CostRecord{
		TenantID:    tenantID,
		Provider:    req.Provider,
		ServiceName: req.ServiceName,
		AmountUSD:   req.AmountUSD,
		Currency:    req.Currency,
		IncurredOn:  req.IncurredOn,
	})
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to record cost")
		writeServiceError(w, err, errors.BadRequest(err.Error()))
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.CostRecordDTO{
		ID:          rec.ID,
		Provider:    rec.Provider,
		ServiceName: rec.ServiceName,
		AmountUSD:   rec.AmountUSD,
		Currency:    rec.Currency,
		IncurredOn:  rec.IncurredOn,
		CreatedAt:   rec.CreatedAt,
	})
}

// GetDaily returns one UTC day of realized savings
// @Summary Get daily savings report
// @Description Summarize the realized savings for one UTC day
// @Tags Spend
// @Produce json
// @Param day query string false "Day (YYYY-MM-DD, default today)"
// @Success 200 {object} dto.DailyReportDTO "Daily report"
// @Failure 400 {object} utils.ErrorResponse "Invalid day"
// @Security BearerAuth
// @Router /spend/daily [get]
func (h *SpendHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	day := time.Now().UTC()
	if v := r.URL.Query().Get("day"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid day, expected YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	report, err := h.service.DailyReport(r.Context(), tenantID, day)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to build daily report")
		utils.WriteError(w, errors.Internal("Failed to build daily report", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.DailyReportDTO{
		Day:      report.Day.Format("2006-01-02"),
		TotalUSD: report.TotalUSD,
		Records:  report.Records,
	})
}

// GetMonthly returns one month of savings against spend
// @Summary Get monthly report
// @Description Summarize one calendar month of realized savings against observed cost
// @Tags Spend
// @Produce json
// @Param month query string false "Month (YYYY-MM, default current)"
// @Success 200 {object} dto.MonthlyReportDTO "Monthly report"
// @Failure 400 {object} utils.ErrorResponse "Invalid month"
// @Security BearerAuth
// @Router /spend/monthly [get]
func (h *SpendHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	month := time.Now().UTC()
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := time.Parse("2006-01", v)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid month, expected YYYY-MM"))
			return
		}
		month = parsed
	}

	report, err := h.service.MonthlyReport(r.Context(), tenantID, month)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to build monthly report")
		utils.WriteError(w, errors.Internal("Failed to build monthly report", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.MonthlyReportDTO{
		Month:      report.Month,
		SavingsUSD: report.SavingsUSD,
		CostUSD:    report.CostUSD,
	})
}

// ListSavings returns realized savings entries in an interval
// @Summary List savings records
// @Description Get realized savings entries in a time window, newest first
// @Tags Spend
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD, default 30 days ago)"
// @Param to query string false "Window end (YYYY-MM-DD, default now)"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.SavingsRecordDTO} "Savings records"
// @Failure 400 {object} utils.ErrorResponse "Invalid window"
// @Security BearerAuth
// @Router /spend/savings [get]
func (h *SpendHandler) ListSavings(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := requireTenant(w, r)
	if !ok {
		return
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now
	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid from date, expected YYYY-MM-DD"))
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid to date, expected YYYY-MM-DD"))
			return
		}
		// Include the whole end day
		to = parsed.AddDate(0, 0, 1)
	}

	p := utils.ParsePaginationParams(r)
	records, total, err := h.service.ListSavings(r.Context(), tenantID, from, to, p.PageSize, p.Offset)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list savings")
		utils.WriteError(w, errors.Internal("Failed to list savings", err))
		return
	}

	dtos := make([]dto.SavingsRecordDTO, len(records))
	for i, rec := range records {
		dtos[i] = dto.SavingsRecordDTO{
			ID:         rec.ID,
			ActionID:   rec.ActionID,
			ResourceID: rec.ResourceID,
			AmountUSD:  rec.AmountUSD,
			RealizedOn: rec.RealizedOn,
			CreatedAt:  rec.CreatedAt,
		}
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, p.Page, p.PageSize, total))
}
