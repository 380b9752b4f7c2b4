package classifier

import (
	"encoding/json"
	"testing"

	"github.com/wastegate/wastegate/internal/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func TestWasteClassifier_IdleInstance(t *testing.T) {
	c := NewWasteClassifier(testLogger())

	report := c.Classify(map[string]interface{}{
		"idle_instances": []interface{}{
			map[string]interface{}{
				"resource_id":  "i-0abc",
				"monthly_cost": 100.0,
			},
		},
	})

	if !report.Deterministic {
		t.Error("report not marked deterministic")
	}
	if len(report.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(report.Recommendations))
	}

	rec := report.Recommendations[0]
	if rec.ResourceID != "i-0abc" {
		t.Errorf("resource_id = %q, want i-0abc", rec.ResourceID)
	}
	if rec.DetectionClass != "idle_compute" {
		t.Errorf("detection_class = %q, want idle_compute", rec.DetectionClass)
	}
	if rec.RequiredAction != "stop_or_terminate" {
		t.Errorf("required_action = %q, want stop_or_terminate", rec.RequiredAction)
	}
	if rec.PolicyRoute != RouteAutoQueue {
		t.Errorf("policy_route = %q, want %q", rec.PolicyRoute, RouteAutoQueue)
	}
	if rec.Confidence != 0.75 {
		t.Errorf("confidence = %v, want 0.75", rec.Confidence)
	}
	want := SavingsRange{Low: 55, Mid: 75, High: 95}
	if rec.ExpectedMonthlySavings != want {
		t.Errorf("savings = %+v, want %+v", rec.ExpectedMonthlySavings, want)
	}
}

func TestWasteClassifier_RuleTable(t *testing.T) {
	tests := []struct {
		category   string
		class      string
		action     string
		route      string
		confidence float64
		savings    SavingsRange
	}{
		{"idle_instances", "idle_compute", "stop_or_terminate", RouteAutoQueue, 0.75, SavingsRange{Low: 110, Mid: 150, High: 190}},
		{"unattached_volumes", "unattached_storage", "snapshot_then_delete", RouteAutoQueue, 0.82, SavingsRange{Low: 160, Mid: 180, High: 200}},
		{"unused_elastic_ips", "unused_ip_address", "release", RouteAutoQueue, 0.85, SavingsRange{Low: 180, Mid: 190, High: 200}},
		{"oversized_instances", "overprovisioned_compute", "rightsize", RouteManualReview, 0.68, SavingsRange{Low: 60, Mid: 90, High: 120}},
		{"old_snapshots", "stale_snapshot", "archive_then_delete", RouteAutoQueue, 0.78, SavingsRange{Low: 140, Mid: 170, High: 200}},
		{"idle_load_balancers", "idle_load_balancer", "delete", RouteAutoQueue, 0.80, SavingsRange{Low: 170, Mid: 190, High: 200}},
		{"idle_databases", "idle_database", "flag_for_review", RouteManualReview, 0.70, SavingsRange{Low: 80, Mid: 110, High: 140}},
		{"orphaned_dns_records", "orphaned_dns", "delete", RouteManualReview, 0.72, SavingsRange{Low: 170, Mid: 190, High: 200}},
	}

	c := NewWasteClassifier(testLogger())
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			report := c.Classify(map[string]interface{}{
				tt.category: []interface{}{
					map[string]interface{}{"resource_id": "r-1", "monthly_cost": 200.0},
				},
			})
			if len(report.Recommendations) != 1 {
				t.Fatalf("got %d recommendations, want 1", len(report.Recommendations))
			}
			rec := report.Recommendations[0]
			if rec.DetectionClass != tt.class {
				t.Errorf("detection_class = %q, want %q", rec.DetectionClass, tt.class)
			}
			if rec.RequiredAction != tt.action {
				t.Errorf("required_action = %q, want %q", rec.RequiredAction, tt.action)
			}
			if rec.PolicyRoute != tt.route {
				t.Errorf("policy_route = %q, want %q", rec.PolicyRoute, tt.route)
			}
			if rec.Confidence != tt.confidence {
				t.Errorf("confidence = %v, want %v", rec.Confidence, tt.confidence)
			}
			if rec.ExpectedMonthlySavings != tt.savings {
				t.Errorf("savings = %+v, want %+v", rec.ExpectedMonthlySavings, tt.savings)
			}
		})
	}
}

func TestWasteClassifier_ConfidenceAdjustments(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]interface{}
		want float64
	}{
		{
			"very low utilization",
			map[string]interface{}{"utilization_percent": 3.0},
			0.83,
		},
		{
			"low utilization",
			map[string]interface{}{"utilization_percent": 12.0},
			0.79,
		},
		{
			"high utilization",
			map[string]interface{}{"utilization_percent": 60.0},
			0.67,
		},
		{
			"long idle",
			map[string]interface{}{"days_idle": 45.0},
			0.81,
		},
		{
			"short idle",
			map[string]interface{}{"days_idle": 10.0},
			0.78,
		},
		{
			"barely idle",
			map[string]interface{}{"days_idle": 1.0},
			0.70,
		},
		{
			"has dependencies",
			map[string]interface{}{"has_dependencies": true},
			0.55,
		},
		{
			"production flag",
			map[string]interface{}{"production": true},
			0.65,
		},
		{
			"production environment",
			map[string]interface{}{"environment": "prod"},
			0.65,
		},
		{
			"stacked negatives clamp at floor",
			map[string]interface{}{
				"utilization_percent": 80.0,
				"days_idle":           1.0,
				"has_dependencies":    true,
				"environment":         "production",
			},
			0.50,
		},
		{
			"stacked positives stay below ceiling",
			map[string]interface{}{
				"utilization_percent": 2.0,
				"days_idle":           90.0,
			},
			0.89,
		},
		{
			"utilization alias cpu_utilization",
			map[string]interface{}{"cpu_utilization": 4.0},
			0.83,
		},
		{
			"utilization as string",
			map[string]interface{}{"utilization": "3.5"},
			0.83,
		},
	}

	c := NewWasteClassifier(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.rec["resource_id"] = "r-1"
			report := c.Classify(map[string]interface{}{
				"idle_instances": []interface{}{tt.rec},
			})
			if len(report.Recommendations) != 1 {
				t.Fatalf("got %d recommendations, want 1", len(report.Recommendations))
			}
			if got := report.Recommendations[0].Confidence; got != tt.want {
				t.Errorf("confidence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWasteClassifier_ConfidenceBounds(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"below floor clamps up", 0.12, 0.50},
		{"above ceiling clamps down", 1.20, 0.99},
		{"in range rounds", 0.8349, 0.83},
		{"floor exact", 0.50, 0.50},
		{"ceiling exact", 0.99, 0.99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampConfidence(tt.in); got != tt.want {
				t.Errorf("clampConfidence(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWasteClassifier_Ordering(t *testing.T) {
	c := NewWasteClassifier(testLogger())

	report := c.Classify(map[string]interface{}{
		"idle_instances": []interface{}{
			map[string]interface{}{"resource_id": "i-small", "monthly_cost": 10.0},
			map[string]interface{}{"resource_id": "i-big", "monthly_cost": 400.0},
		},
		"unattached_volumes": []interface{}{
			map[string]interface{}{"resource_id": "vol-mid", "monthly_cost": 100.0},
		},
		// Rounds to the same mid savings as vol-mid (105.88*0.85 -> 90.00):
		// resource_id ties break ascending.
		"old_snapshots": []interface{}{
			map[string]interface{}{"resource_id": "snap-a", "monthly_cost": 105.88},
		},
	})

	ids := make([]string, 0, len(report.Recommendations))
	for _, r := range report.Recommendations {
		ids = append(ids, r.ResourceID)
	}
	want := []string{"i-big", "snap-a", "vol-mid", "i-small"}
	if len(ids) != len(want) {
		t.Fatalf("got %d recommendations, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
	// Descending by mid estimate.
	for i := 1; i < len(report.Recommendations); i++ {
		if report.Recommendations[i].ExpectedMonthlySavings.Mid > report.Recommendations[i-1].ExpectedMonthlySavings.Mid {
			t.Errorf("recommendations not in descending mid-savings order at %d", i)
		}
	}
}

func TestWasteClassifier_Determinism(t *testing.T) {
	input := map[string]interface{}{
		"idle_instances": []interface{}{
			map[string]interface{}{"resource_id": "i-1", "monthly_cost": 42.5, "utilization_percent": 3.0},
			map[string]interface{}{"resource_id": "i-2", "monthly_cost": 42.5, "days_idle": 60.0},
		},
		"unattached_volumes": []interface{}{
			map[string]interface{}{"resource_id": "vol-1", "monthly_cost": 17.0, "tags": map[string]interface{}{"env": "dev"}},
		},
		"orphaned_dns_records": []interface{}{
			map[string]interface{}{"resource_id": "dns-1", "monthly_cost": 0.5},
		},
	}

	c := NewWasteClassifier(testLogger())
	first, err := json.Marshal(c.Classify(input))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 5; i++ {
		next, err := json.Marshal(c.Classify(input))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(next) != string(first) {
			t.Fatalf("run %d produced different output\nfirst: %s\nnext:  %s", i, first, next)
		}
	}
}

func TestWasteClassifier_SkipsUnknownAndReserved(t *testing.T) {
	c := NewWasteClassifier(testLogger())

	report := c.Classify(map[string]interface{}{
		"idle_instances": []interface{}{
			map[string]interface{}{"resource_id": "i-1", "monthly_cost": 10.0},
		},
		"mystery_category": []interface{}{
			map[string]interface{}{"resource_id": "x-1", "monthly_cost": 999.0},
		},
		"ai_analysis":         "free-form text",
		"total_monthly_waste": 1234.5,
		"scan_timeout":        true,
	})

	if len(report.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1 (unknown/reserved keys must be skipped)", len(report.Recommendations))
	}
	if report.Recommendations[0].ResourceID != "i-1" {
		t.Errorf("resource_id = %q, want i-1", report.Recommendations[0].ResourceID)
	}
}

func TestWasteClassifier_MalformedRecords(t *testing.T) {
	c := NewWasteClassifier(testLogger())

	report := c.Classify(map[string]interface{}{
		"idle_instances": []interface{}{
			"not a map",
			42,
			nil,
			map[string]interface{}{"resource_id": "i-ok", "monthly_cost": "not a number"},
			map[string]interface{}{"monthly_cost": -5.0},
		},
		"unattached_volumes": "not a list",
	})

	if len(report.Recommendations) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(report.Recommendations))
	}
	for _, rec := range report.Recommendations {
		if rec.ExpectedMonthlySavings.Mid != 0 {
			t.Errorf("unparseable cost should produce zero savings, got %+v", rec.ExpectedMonthlySavings)
		}
		if rec.Confidence < 0.50 || rec.Confidence > 0.99 {
			t.Errorf("confidence %v out of bounds", rec.Confidence)
		}
	}
}

func TestWasteClassifier_EmptyInput(t *testing.T) {
	c := NewWasteClassifier(testLogger())

	for _, input := range []map[string]interface{}{nil, {}} {
		report := c.Classify(input)
		if report.Recommendations == nil || len(report.Recommendations) != 0 {
			t.Errorf("empty input: recommendations = %v, want empty non-nil slice", report.Recommendations)
		}
		if report.Summary.TotalRecommendations != 0 {
			t.Errorf("empty input: total = %d, want 0", report.Summary.TotalRecommendations)
		}
	}
}

func TestWasteClassifier_Summary(t *testing.T) {
	c := NewWasteClassifier(testLogger())

	report := c.Classify(map[string]interface{}{
		"idle_instances": []interface{}{
			map[string]interface{}{"resource_id": "i-1", "monthly_cost": 100.0},
			map[string]interface{}{"resource_id": "i-2", "monthly_cost": 200.0},
		},
		"unused_elastic_ips": []interface{}{
			map[string]interface{}{"resource_id": "eip-1", "monthly_cost": 10.0},
		},
	})

	s := report.Summary
	if s.TotalRecommendations != 3 {
		t.Errorf("total = %d, want 3", s.TotalRecommendations)
	}
	if s.ByDetectionClass["idle_compute"] != 2 || s.ByDetectionClass["unused_ip_address"] != 1 {
		t.Errorf("by class = %v", s.ByDetectionClass)
	}
	// idle: 300*{0.55,0.75,0.95}; eip: 10*{0.90,0.95,1.00}
	want := SavingsRange{Low: 174, Mid: 234.5, High: 295}
	if s.EstimatedMonthlySavingsRange != want {
		t.Errorf("summary savings = %+v, want %+v", s.EstimatedMonthlySavingsRange, want)
	}
}

func TestWasteClassifier_CostAliases(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]interface{}
		want float64
	}{
		{"monthly_cost", map[string]interface{}{"monthly_cost": 100.0}, 75},
		{"monthly_waste fallback", map[string]interface{}{"monthly_waste": 100.0}, 75},
		{"estimated_monthly_savings fallback", map[string]interface{}{"estimated_monthly_savings": 100.0}, 75},
		{"first alias wins", map[string]interface{}{"monthly_cost": 100.0, "monthly_waste": 999.0}, 75},
		{"negative skipped in favor of next alias", map[string]interface{}{"monthly_cost": -1.0, "monthly_waste": 100.0}, 75},
		{"missing cost", map[string]interface{}{}, 0},
	}

	c := NewWasteClassifier(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.rec["resource_id"] = "r-1"
			report := c.Classify(map[string]interface{}{"idle_instances": []interface{}{tt.rec}})
			if got := report.Recommendations[0].ExpectedMonthlySavings.Mid; got != tt.want {
				t.Errorf("mid savings = %v, want %v", got, tt.want)
			}
		})
	}
}
