package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/pkg/validator"
	"github.com/wastegate/wastegate/internal/safeops"
)

func newSafeOpsHandler() *SafeOpsHandler {
	log := testLogger()
	return NewSafeOpsHandler(safeops.NewInterceptor(safeops.DefaultRuleset(), log), log, validator.New())
}

func safetyRequestBody(t *testing.T) []byte {
	t.Helper()
	return mustMarshal(t, dto.SafetyCheckRequest{
		Resources: []dto.SafetyResourceDTO{
			{ResourceID: "i-clean", ResourceType: "idle_instances"},
			{ResourceID: "i-prod", ResourceType: "idle_instances", Tags: map[string]string{"Environment": "production"}},
			{ResourceID: "db-1", ResourceType: "rds_instance"},
		},
	})
}

func TestSafeOpsHandler_Check(t *testing.T) {
	handler := newSafeOpsHandler()

	req := authedRequest(http.MethodPost, "/api/v1/safeops/check", safetyRequestBody(t))
	rr := httptest.NewRecorder()

	handler.Check(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v, body: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Success bool                    `json:"success"`
		Data    dto.SafetyCheckResponse `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data.Verdicts) != 3 {
		t.Fatalf("verdicts = %d, want 3", len(resp.Data.Verdicts))
	}

	wantSafe := map[string]bool{"i-clean": true, "i-prod": false, "db-1": false}
	for _, v := range resp.Data.Verdicts {
		if v.IsSafe != wantSafe[v.ResourceID] {
			t.Errorf("verdict for %s = %v, want %v (%s)", v.ResourceID, v.IsSafe, wantSafe[v.ResourceID], v.Reason)
		}
		if !v.IsSafe && v.Reason == "" {
			t.Errorf("denial for %s carries no reason", v.ResourceID)
		}
	}
}

func TestSafeOpsHandler_Filter(t *testing.T) {
	handler := newSafeOpsHandler()

	req := authedRequest(http.MethodPost, "/api/v1/safeops/filter", safetyRequestBody(t))
	rr := httptest.NewRecorder()

	handler.Filter(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v, body: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Success bool                     `json:"success"`
		Data    dto.SafetyFilterResponse `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data.Safe) != 1 || resp.Data.Safe[0].ResourceID != "i-clean" {
		t.Errorf("safe = %v, want only i-clean", resp.Data.Safe)
	}
	if resp.Data.Excluded != 2 {
		t.Errorf("excluded = %d, want 2", resp.Data.Excluded)
	}
}

func TestSafeOpsHandler_Check_Validation(t *testing.T) {
	handler := newSafeOpsHandler()

	tests := []struct {
		name string
		body []byte
	}{
		{
			name: "empty resource list",
			body: []byte(`{"resources": []}`),
		},
		{
			name: "missing resource id",
			body: []byte(`{"resources": [{"resourceType": "idle_instances"}]}`),
		},
		{
			name: "malformed body",
			body: []byte(`{"resources"`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "/api/v1/safeops/check", tt.body)
			rr := httptest.NewRecorder()

			handler.Check(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusBadRequest)
			}
		})
	}
}
