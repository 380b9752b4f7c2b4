package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/breaker"
	"github.com/wastegate/wastegate/internal/domain/spend"
	"github.com/wastegate/wastegate/internal/guard"
	"github.com/wastegate/wastegate/internal/pkg/validator"
	"github.com/wastegate/wastegate/internal/services"
	"github.com/wastegate/wastegate/internal/testutil"
)

type guardHandlerFixture struct {
	handler   *GuardHandler
	spendRepo *testutil.MockSpendRepository
	cache     *breaker.TenantCache
}

func newGuardHandlerFixture(t *testing.T) *guardHandlerFixture {
	t.Helper()
	log := testLogger()
	cfg := testConfig()

	spendRepo := testutil.NewMockSpendRepository()
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

	return &guardHandlerFixture{
		handler:   NewGuardHandler(guards, log, validator.New()),
		spendRepo: spendRepo,
		cache:     cache,
	}
}

func (f *guardHandlerFixture) check(t *testing.T, impactUSD float64) (*httptest.ResponseRecorder, dto.GuardCheckResponse) {
	t.Helper()
	body := mustMarshal(t, dto.GuardCheckRequest{EstimatedImpactUSD: impactUSD})
	req := authedRequest(http.MethodPost, "/api/v1/guards/check", body)
	rr := httptest.NewRecorder()

	f.handler.Check(rr, req)

	var resp struct {
		Success bool                   `json:"success"`
		Data    dto.GuardCheckResponse `json:"data"`
	}
	if rr.Code == http.StatusOK {
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return rr, resp.Data
}

func TestGuardHandler_Check_Allowed(t *testing.T) {
	f := newGuardHandlerFixture(t)

	rr, verdict := f.check(t, 100)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v, body: %s", rr.Code, rr.Body.String())
	}
	if !verdict.Allowed {
		t.Errorf("verdict = %+v, want allowed", verdict)
	}
}

func TestGuardHandler_Check_KillSwitch(t *testing.T) {
	f := newGuardHandlerFixture(t)

	// 450 USD realized today plus a 100 USD impact crosses the 500 USD threshold
	if err := f.spendRepo.CreateSavings(context.Background(), &spend.SavingsRecord{TenantID: "t1", ResourceID: "i-1", AmountUSD: 450}); err != nil {
		t.Fatalf("seed savings: %v", err)
	}

	rr, verdict := f.check(t, 100)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v, body: %s", rr.Code, rr.Body.String())
	}
	if verdict.Allowed {
		t.Fatal("verdict allowed, want denied")
	}
	if verdict.DenialCode != guard.CodeKillSwitchExceeded {
		t.Errorf("denial code = %q, want %q", verdict.DenialCode, guard.CodeKillSwitchExceeded)
	}
	if verdict.Reason == "" {
		t.Error("denial carries no reason")
	}
}

func TestGuardHandler_Check_BreakerOpen(t *testing.T) {
	f := newGuardHandlerFixture(t)
	ctx := context.Background()

	cb, err := f.cache.ForTenant(ctx, "t1")
	if err != nil {
		t.Fatalf("ForTenant() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := cb.RecordFailure(ctx, errors.New("executor blew up")); err != nil {
			t.Fatalf("RecordFailure() error = %v", err)
		}
	}

	rr, verdict := f.check(t, 10)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v, body: %s", rr.Code, rr.Body.String())
	}
	if verdict.Allowed {
		t.Fatal("verdict allowed, want denied")
	}
	if verdict.DenialCode != guard.CodeCircuitBreakerOpen {
		t.Errorf("denial code = %q, want %q", verdict.DenialCode, guard.CodeCircuitBreakerOpen)
	}
}

func TestGuardHandler_Check_Validation(t *testing.T) {
	f := newGuardHandlerFixture(t)

	req := authedRequest(http.MethodPost, "/api/v1/guards/check", []byte(`{"estimatedImpactUsd": -5}`))
	rr := httptest.NewRecorder()

	f.handler.Check(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
	}
}

func TestGuardHandler_Check_MissingTenant(t *testing.T) {
	f := newGuardHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/guards/check", nil)
	rr := httptest.NewRecorder()

	f.handler.Check(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusUnauthorized)
	}
}
