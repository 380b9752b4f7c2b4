package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/domain/classification"
	"github.com/wastegate/wastegate/internal/pkg/validator"
	"github.com/wastegate/wastegate/internal/services"
	"github.com/wastegate/wastegate/internal/testutil"
)

func newScanHandlerFixture(t *testing.T) (*ScanHandler, classification.Service) {
	t.Helper()
	log := testLogger()
	svc := services.NewClassificationService(testutil.NewMockClassificationRepository(), log)
	analyzer := services.NewAnalysisService(svc, testConfig(), log)
	return NewScanHandler(svc, analyzer, log, validator.New()), svc
}

func idlePayload() map[string]interface{} {
	return map[string]interface{}{
		"idle_instances": []interface{}{
			map[string]interface{}{
				"resource_id":  "i-idle-1",
				"environment":  "staging",
				"monthly_cost": 120.0,
			},
		},
	}
}

func TestScanHandler_Submit(t *testing.T) {
	tests := []struct {
		name           string
		body           []byte
		expectedStatus int
	}{
		{
			name: "valid scan payload",
			body: mustMarshal(t, dto.SubmitScanRequest{
				Source:      classification.SourceCLI,
				ScanResults: idlePayload(),
			}),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing scan results",
			body:           []byte(`{}`),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown source",
			body: mustMarshal(t, dto.SubmitScanRequest{
				Source:      "webhook",
				ScanResults: idlePayload(),
			}),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           []byte(`{"scanResults":`),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := newScanHandlerFixture(t)
			req := authedRequest(http.MethodPost, "/api/v1/scans", tt.body)
			rr := httptest.NewRecorder()

			handler.Submit(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v, body: %s", status, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestScanHandler_Submit_ClassifiesPayload(t *testing.T) {
	handler, _ := newScanHandlerFixture(t)

	body := mustMarshal(t, dto.SubmitScanRequest{ScanResults: idlePayload()})
	req := authedRequest(http.MethodPost, "/api/v1/scans", body)
	rr := httptest.NewRecorder()

	handler.Submit(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("handler returned wrong status code: got %v, body: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Success bool              `json:"success"`
		Data    dto.ScanResultDTO `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Data.Recommendations) != 1 {
		t.Fatalf("recommendations = %d, want 1", len(resp.Data.Recommendations))
	}
	rec := resp.Data.Recommendations[0]
	if rec.DetectionClass != "idle_compute" {
		t.Errorf("DetectionClass = %s, want idle_compute", rec.DetectionClass)
	}
	if resp.Data.Run.Source != classification.SourceAPI {
		t.Errorf("Source = %s, want %s", resp.Data.Run.Source, classification.SourceAPI)
	}
	if resp.Data.Run.Summary.ByDetectionClass["idle_compute"] != 1 {
		t.Errorf("ByDetectionClass = %v", resp.Data.Run.Summary.ByDetectionClass)
	}
}

func TestScanHandler_Get(t *testing.T) {
	handler, svc := newScanHandlerFixture(t)
	run, _, _, err := svc.Ingest(context.Background(), "t1", classification.SourceAPI, idlePayload())
	if err != nil {
		t.Fatalf("seed run: %v", err)
	}

	tests := []struct {
		name           string
		runID          string
		expectedStatus int
	}{
		{
			name:           "get existing run",
			runID:          run.ID,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "get non-existing run",
			runID:          "missing",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withChiParam(authedRequest(http.MethodGet, "/api/v1/scans/"+tt.runID, nil), "id", tt.runID)
			rr := httptest.NewRecorder()

			handler.Get(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", status, tt.expectedStatus)
			}
		})
	}
}

func TestScanHandler_GetAnalysis(t *testing.T) {
	handler, svc := newScanHandlerFixture(t)
	run, _, _, err := svc.Ingest(context.Background(), "t1", classification.SourceJob, idlePayload())
	if err != nil {
		t.Fatalf("seed run: %v", err)
	}

	req := withChiParam(authedRequest(http.MethodGet, "/api/v1/scans/"+run.ID+"/analysis", nil), "id", run.ID)
	rr := httptest.NewRecorder()

	handler.GetAnalysis(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v, body: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Success bool               `json:"success"`
		Data    dto.RunAnalysisDTO `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.RunID != run.ID {
		t.Errorf("RunID = %s, want %s", resp.Data.RunID, run.ID)
	}
	if resp.Data.Narrative == "" {
		t.Error("expected a non-empty narrative")
	}
}

func TestScanHandler_List(t *testing.T) {
	handler, svc := newScanHandlerFixture(t)
	if _, _, _, err := svc.Ingest(context.Background(), "t1", classification.SourceAPI, idlePayload()); err != nil {
		t.Fatalf("seed run: %v", err)
	}

	req := authedRequest(http.MethodGet, "/api/v1/scans?page=1&page_size=10", nil)
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v, body: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Data       []dto.ScanRunDTO `json:"data"`
			TotalItems int64            `json:"total_items"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.TotalItems != 1 || len(resp.Data.Data) != 1 {
		t.Errorf("list = %d items (total %d), want 1", len(resp.Data.Data), resp.Data.TotalItems)
	}
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return body
}
