package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/breaker"
	"github.com/wastegate/wastegate/internal/domain/classification"
	"github.com/wastegate/wastegate/internal/domain/remediation"
	"github.com/wastegate/wastegate/internal/domain/spend"
	"github.com/wastegate/wastegate/internal/guard"
	"github.com/wastegate/wastegate/internal/pkg/validator"
	"github.com/wastegate/wastegate/internal/safeops"
	"github.com/wastegate/wastegate/internal/services"
	"github.com/wastegate/wastegate/internal/testutil"
)

type remediationHandlerFixture struct {
	handler   *RemediationHandler
	actions   *testutil.MockRemediationRepository
	recRepo   *testutil.MockClassificationRepository
	spendRepo *testutil.MockSpendRepository
}

func newRemediationHandlerFixture(t *testing.T) *remediationHandlerFixture {
	t.Helper()
	log := testLogger()
	cfg := testConfig()

	actions := testutil.NewMockRemediationRepository()
	recRepo := testutil.NewMockClassificationRepository()
	recs := services.NewClassificationService(recRepo, log)
	spendRepo := testutil.NewMockSpendRepository()
	spendSvc := services.NewSpendService(spendRepo, log)

	cache, err := breaker.NewTenantCache(cfg.Breaker.CacheCapacity, breaker.NewMemoryStore(), breaker.Settings{
		FailureThreshold:   cfg.Breaker.FailureThreshold,
		RecoveryTimeout:    cfg.Breaker.RecoveryTimeout,
		MaxDailySavingsUSD: cfg.Breaker.MaxDailySavingsUSD,
	}, nil, log)
	if err != nil {
		t.Fatalf("NewTenantCache() error = %v", err)
	}

	tenants := services.NewTenantService(testutil.NewMockTenantRepository(), cfg, cache, log)
	guards := guard.NewCoordinator(spendRepo, services.NewGuardSettingsSource(tenants), cache, nil, log)
	interceptor := safeops.NewInterceptor(safeops.DefaultRuleset(), log)
	svc := services.NewRemediationService(actions, recs, interceptor, guards, cache, tenants, spendSvc, nil, &testutil.MockExecutor{}, log)

	return &remediationHandlerFixture{
		handler:   NewRemediationHandler(svc, log, validator.New()),
		actions:   actions,
		recRepo:   recRepo,
		spendRepo: spendRepo,
	}
}

func (f *remediationHandlerFixture) seedAction(t *testing.T, mutate func(*remediation.Action)) *remediation.Action {
	t.Helper()
	action := &remediation.Action{
		TenantID:            "t1",
		ResourceID:          "i-0abc",
		ResourceType:        "idle_instances",
		ActionType:          remediation.ActionTypeStopOrTerminate,
		PolicyRoute:         "auto_queue",
		Status:              remediation.ActionStatusPending,
		EstimatedSavingsUSD: 75,
	}
	if mutate != nil {
		mutate(action)
	}
	if err := f.actions.Create(context.Background(), action); err != nil {
		t.Fatalf("seed action: %v", err)
	}
	return action
}

func decodeAction(t *testing.T, rr *httptest.ResponseRecorder) dto.RemediationActionDTO {
	t.Helper()
	var resp struct {
		Success bool                     `json:"success"`
		Data    dto.RemediationActionDTO `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Data
}

func TestRemediationHandler_Create(t *testing.T) {
	f := newRemediationHandlerFixture(t)

	rec := &classification.Recommendation{
		TenantID:       "t1",
		ResourceID:     "vol-1",
		Category:       "unattached_volumes",
		DetectionClass: "unattached_storage",
		RequiredAction: "snapshot_then_delete",
		PolicyRoute:    "auto_queue",
		SavingsMidUSD:  40,
	}
	if err := f.recRepo.CreateRecommendations(context.Background(), []*classification.Recommendation{rec}); err != nil {
		t.Fatalf("seed recommendation: %v", err)
	}

	tests := []struct {
		name           string
		requestBody    dto.CreateRemediationRequest
		expectedStatus int
	}{
		{
			name: "create from recommendation",
			requestBody: dto.CreateRemediationRequest{
				RecommendationID: rec.ID,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "create direct action",
			requestBody: dto.CreateRemediationRequest{
				ResourceID:          "i-direct",
				ResourceType:        "idle_instances",
				ActionType:          "stop_or_terminate",
				PolicyRoute:         "auto_queue",
				EstimatedSavingsUSD: 50,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing target",
			requestBody:    dto.CreateRemediationRequest{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown recommendation",
			requestBody: dto.CreateRemediationRequest{
				RecommendationID: "missing",
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.requestBody)
			req := authedRequest(http.MethodPost, "/api/v1/remediations", body)
			rr := httptest.NewRecorder()

			f.handler.Create(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v, body: %s", status, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestRemediationHandler_Create_InheritsRecommendation(t *testing.T) {
	f := newRemediationHandlerFixture(t)

	rec := &classification.Recommendation{
		TenantID:       "t1",
		ResourceID:     "i-idle",
		Category:       "idle_instances",
		DetectionClass: "idle_compute",
		RequiredAction: "stop_or_terminate",
		PolicyRoute:    "manual_review",
		SavingsMidUSD:  62.5,
	}
	if err := f.recRepo.CreateRecommendations(context.Background(), []*classification.Recommendation{rec}); err != nil {
		t.Fatalf("seed recommendation: %v", err)
	}

	body, _ := json.Marshal(dto.CreateRemediationRequest{RecommendationID: rec.ID})
	req := authedRequest(http.MethodPost, "/api/v1/remediations", body)
	rr := httptest.NewRecorder()

	f.handler.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("handler returned wrong status code: got %v, body: %s", rr.Code, rr.Body.String())
	}

	action := decodeAction(t, rr)
	if action.PolicyRoute != "manual_review" {
		t.Errorf("PolicyRoute = %s, want manual_review", action.PolicyRoute)
	}
	if action.EstimatedSavingsUSD != 62.5 {
		t.Errorf("EstimatedSavingsUSD = %v, want 62.5", action.EstimatedSavingsUSD)
	}
	if action.RecommendationID == nil || *action.RecommendationID != rec.ID {
		t.Errorf("RecommendationID = %v, want %s", action.RecommendationID, rec.ID)
	}
}

func TestRemediationHandler_Execute(t *testing.T) {
	tests := []struct {
		name           string
		mutate         func(*remediation.Action)
		expectedStatus int
		wantAction     string
		wantDenialCode string
	}{
		{
			name:           "auto queue action applies",
			expectedStatus: http.StatusOK,
			wantAction:     string(remediation.ActionStatusApplied),
		},
		{
			name: "production tag is vetoed",
			mutate: func(a *remediation.Action) {
				a.Tags = map[string]string{"Environment": "production"}
			},
			expectedStatus: http.StatusOK,
			wantAction:     string(remediation.ActionStatusDenied),
			wantDenialCode: guard.CodeSafetyRuleVeto,
		},
		{
			name: "manual review needs approval first",
			mutate: func(a *remediation.Action) {
				a.PolicyRoute = "manual_review"
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "terminal action is rejected",
			mutate: func(a *remediation.Action) {
				a.Status = remediation.ActionStatusApplied
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRemediationHandlerFixture(t)
			action := f.seedAction(t, tt.mutate)

			req := withChiParam(authedRequest(http.MethodPost, "/api/v1/remediations/"+action.ID+"/execute", nil), "id", action.ID)
			rr := httptest.NewRecorder()

			f.handler.Execute(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Fatalf("handler returned wrong status code: got %v want %v, body: %s", status, tt.expectedStatus, rr.Body.String())
			}
			if tt.wantAction == "" {
				return
			}

			got := decodeAction(t, rr)
			if got.Status != tt.wantAction {
				t.Errorf("action status = %s, want %s", got.Status, tt.wantAction)
			}
			if got.DenialCode != tt.wantDenialCode {
				t.Errorf("denial code = %q, want %q", got.DenialCode, tt.wantDenialCode)
			}
		})
	}
}

func TestRemediationHandler_Execute_KillSwitchDenies(t *testing.T) {
	f := newRemediationHandlerFixture(t)
	ctx := context.Background()

	// 480 USD already realized today leaves no room for a 75 USD action
	// under the 500 USD kill-switch threshold.
	if err := f.spendRepo.CreateSavings(ctx, &spend.SavingsRecord{TenantID: "t1", ResourceID: "i-prev", AmountUSD: 480}); err != nil {
		t.Fatalf("seed savings: %v", err)
	}
	action := f.seedAction(t, nil)

	req := withChiParam(authedRequest(http.MethodPost, "/api/v1/remediations/"+action.ID+"/execute", nil), "id", action.ID)
	rr := httptest.NewRecorder()

	f.handler.Execute(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v, body: %s", rr.Code, rr.Body.String())
	}
	got := decodeAction(t, rr)
	if got.Status != string(remediation.ActionStatusDenied) {
		t.Errorf("action status = %s, want denied", got.Status)
	}
	if got.DenialCode != guard.CodeKillSwitchExceeded {
		t.Errorf("denial code = %q, want %q", got.DenialCode, guard.CodeKillSwitchExceeded)
	}
}

func TestRemediationHandler_Execute_NotFound(t *testing.T) {
	f := newRemediationHandlerFixture(t)

	req := withChiParam(authedRequest(http.MethodPost, "/api/v1/remediations/missing/execute", nil), "id", "missing")
	rr := httptest.NewRecorder()

	f.handler.Execute(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusNotFound)
	}
}

func TestRemediationHandler_Approve(t *testing.T) {
	f := newRemediationHandlerFixture(t)
	action := f.seedAction(t, func(a *remediation.Action) {
		a.PolicyRoute = "manual_review"
	})

	req := withChiParam(authedRequest(http.MethodPost, "/api/v1/remediations/"+action.ID+"/approve", nil), "id", action.ID)
	rr := httptest.NewRecorder()

	f.handler.Approve(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v, body: %s", rr.Code, rr.Body.String())
	}

	stored := f.actions.Actions[action.ID]
	if stored.Status != remediation.ActionStatusApproved {
		t.Errorf("stored status = %s, want approved", stored.Status)
	}
	if stored.ApprovedBy == nil || *stored.ApprovedBy != 1 {
		t.Errorf("ApprovedBy = %v, want 1", stored.ApprovedBy)
	}

	// A second approval finds the action no longer pending
	rr = httptest.NewRecorder()
	f.handler.Approve(rr, withChiParam(authedRequest(http.MethodPost, "/api/v1/remediations/"+action.ID+"/approve", nil), "id", action.ID))
	if rr.Code != http.StatusConflict {
		t.Errorf("second approval status = %v, want %v", rr.Code, http.StatusConflict)
	}
}

func TestRemediationHandler_MissingTenant(t *testing.T) {
	f := newRemediationHandlerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/remediations", nil)
	rr := httptest.NewRecorder()

	f.handler.List(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusUnauthorized)
	}
}
