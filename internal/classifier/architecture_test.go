package classifier

import (
	"encoding/json"
	"testing"
)

func TestArchitectureDetector_OverbuiltAvailability(t *testing.T) {
	tests := []struct {
		name     string
		rec      map[string]interface{}
		wantFire bool
		wantConf float64
	}{
		{
			"staging two zones fires",
			map[string]interface{}{"resource_id": "db-1", "environment": "staging", "zone_count": 2.0, "monthly_cost": 100.0},
			true, 0.80,
		},
		{
			"three zones raises confidence",
			map[string]interface{}{"resource_id": "db-1", "environment": "dev", "zone_count": 3.0, "monthly_cost": 100.0},
			true, 0.88,
		},
		{
			"expensive resource raises confidence",
			map[string]interface{}{"resource_id": "db-1", "environment": "qa", "zone_count": 2.0, "monthly_cost": 250.0},
			true, 0.85,
		},
		{
			"both boosts stack",
			map[string]interface{}{"resource_id": "db-1", "environment": "test", "zone_count": 3.0, "monthly_cost": 300.0},
			true, 0.93,
		},
		{
			"production never fires",
			map[string]interface{}{"resource_id": "db-1", "environment": "production", "zone_count": 3.0, "monthly_cost": 500.0},
			false, 0,
		},
		{
			"unknown environment never fires",
			map[string]interface{}{"resource_id": "db-1", "zone_count": 3.0, "monthly_cost": 500.0},
			false, 0,
		},
		{
			"single zone never fires",
			map[string]interface{}{"resource_id": "db-1", "environment": "staging", "zone_count": 1.0, "monthly_cost": 500.0},
			false, 0,
		},
		{
			"cheap resource never fires",
			map[string]interface{}{"resource_id": "db-1", "environment": "staging", "zone_count": 2.0, "monthly_cost": 49.99},
			false, 0,
		},
		{
			"no zone signal never fires",
			map[string]interface{}{"resource_id": "db-1", "environment": "staging", "monthly_cost": 500.0},
			false, 0,
		},
	}

	d := NewArchitectureDetector(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := d.Detect(map[string]interface{}{
				"idle_databases": []interface{}{tt.rec},
			})

			var found *Finding
			for i := range report.Findings {
				if report.Findings[i].FindingType == FindingOverbuiltAvailability {
					found = &report.Findings[i]
				}
			}
			if (found != nil) != tt.wantFire {
				t.Fatalf("fired = %v, want %v (findings: %+v)", found != nil, tt.wantFire, report.Findings)
			}
			if !tt.wantFire {
				return
			}
			if found.Confidence != tt.wantConf {
				t.Errorf("confidence = %v, want %v", found.Confidence, tt.wantConf)
			}
			if found.RequiredAction != "reduce_to_single_zone" {
				t.Errorf("required_action = %q", found.RequiredAction)
			}
			if found.PolicyRoute != RouteAutoQueue {
				t.Errorf("policy_route = %q, want %q", found.PolicyRoute, RouteAutoQueue)
			}
			if found.RiskLabel != RiskLow {
				t.Errorf("risk_label = %q, want %q", found.RiskLabel, RiskLow)
			}
		})
	}
}

func TestArchitectureDetector_OverbuiltSavings(t *testing.T) {
	d := NewArchitectureDetector(testLogger())
	report := d.Detect(map[string]interface{}{
		"idle_instances": []interface{}{
			map[string]interface{}{"resource_id": "i-1", "environment": "staging", "zone_count": 2.0, "monthly_cost": 100.0},
		},
	})
	if len(report.Findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(report.Findings))
	}
	want := SavingsRange{Low: 20, Mid: 35, High: 50}
	if report.Findings[0].ExpectedMonthlySavings != want {
		t.Errorf("savings = %+v, want %+v", report.Findings[0].ExpectedMonthlySavings, want)
	}
}

func TestArchitectureDetector_UnjustifiedMultiZone(t *testing.T) {
	tests := []struct {
		name     string
		rec      map[string]interface{}
		wantFire bool
		wantConf float64
	}{
		{
			"low criticality low slo fires",
			map[string]interface{}{"resource_id": "svc-1", "zone_count": 2.0, "slo_target": 99.0, "criticality": "low", "monthly_cost": 80.0},
			true, 0.83,
		},
		{
			"slo just under threshold fires without boost",
			map[string]interface{}{"resource_id": "svc-1", "zone_count": 2.0, "slo_target": 99.8, "criticality": "low", "monthly_cost": 80.0},
			true, 0.78,
		},
		{
			"criticality from tags",
			map[string]interface{}{"resource_id": "svc-1", "zone_count": 2.0, "slo_target": 99.0, "tags": map[string]interface{}{"Criticality": "Minimal"}, "monthly_cost": 80.0},
			true, 0.83,
		},
		{
			"slo at three nines never fires",
			map[string]interface{}{"resource_id": "svc-1", "zone_count": 2.0, "slo_target": 99.9, "criticality": "low", "monthly_cost": 80.0},
			false, 0,
		},
		{
			"missing slo never fires",
			map[string]interface{}{"resource_id": "svc-1", "zone_count": 2.0, "criticality": "low", "monthly_cost": 80.0},
			false, 0,
		},
		{
			"high criticality never fires",
			map[string]interface{}{"resource_id": "svc-1", "zone_count": 2.0, "slo_target": 99.0, "criticality": "high", "monthly_cost": 80.0},
			false, 0,
		},
		{
			"missing criticality never fires",
			map[string]interface{}{"resource_id": "svc-1", "zone_count": 2.0, "slo_target": 99.0, "monthly_cost": 80.0},
			false, 0,
		},
		{
			"single zone never fires",
			map[string]interface{}{"resource_id": "svc-1", "zone_count": 1.0, "slo_target": 99.0, "criticality": "low", "monthly_cost": 80.0},
			false, 0,
		},
	}

	d := NewArchitectureDetector(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := d.Detect(map[string]interface{}{
				"idle_instances": []interface{}{tt.rec},
			})

			var found *Finding
			for i := range report.Findings {
				if report.Findings[i].FindingType == FindingUnjustifiedMultiZone {
					found = &report.Findings[i]
				}
			}
			if (found != nil) != tt.wantFire {
				t.Fatalf("fired = %v, want %v (findings: %+v)", found != nil, tt.wantFire, report.Findings)
			}
			if !tt.wantFire {
				return
			}
			if found.Confidence != tt.wantConf {
				t.Errorf("confidence = %v, want %v", found.Confidence, tt.wantConf)
			}
			if found.PolicyRoute != RouteManualReview {
				t.Errorf("policy_route = %q, want %q", found.PolicyRoute, RouteManualReview)
			}
			if found.RiskLabel != RiskMedium {
				t.Errorf("risk_label = %q, want %q", found.RiskLabel, RiskMedium)
			}
		})
	}
}

func TestArchitectureDetector_DuplicatedEnvironment(t *testing.T) {
	d := NewArchitectureDetector(testLogger())

	report := d.Detect(map[string]interface{}{
		"idle_instances": []interface{}{
			map[string]interface{}{"resource_id": "i-b", "environment": "staging", "provider": "aws", "service": "api", "monthly_cost": 120.0},
			map[string]interface{}{"resource_id": "i-a", "environment": "staging", "provider": "aws", "service": "api", "monthly_cost": 80.0},
			// Different service: its own group of one, no finding.
			map[string]interface{}{"resource_id": "i-c", "environment": "staging", "provider": "aws", "service": "cache", "monthly_cost": 60.0},
			// Production member never groups.
			map[string]interface{}{"resource_id": "i-d", "environment": "production", "provider": "aws", "service": "api", "monthly_cost": 500.0},
		},
	})

	var dup *Finding
	for i := range report.Findings {
		if report.Findings[i].FindingType == FindingDuplicatedNonProdEnv {
			if dup != nil {
				t.Fatalf("multiple duplicated-environment findings: %+v", report.Findings)
			}
			dup = &report.Findings[i]
		}
	}
	if dup == nil {
		t.Fatalf("no duplicated-environment finding in %+v", report.Findings)
	}

	// Two members totalling 200: duplicate portion is 200*(2-1)/2 = 100.
	want := SavingsRange{Low: 25, Mid: 40, High: 60}
	if dup.ExpectedMonthlySavings != want {
		t.Errorf("savings = %+v, want %+v", dup.ExpectedMonthlySavings, want)
	}
	if dup.Confidence != 0.84 {
		t.Errorf("confidence = %v, want 0.84", dup.Confidence)
	}
	if dup.ResourceID != "i-a" {
		t.Errorf("representative resource = %q, want first sorted member i-a", dup.ResourceID)
	}
	if len(dup.ResourceIDs) != 2 || dup.ResourceIDs[0] != "i-a" || dup.ResourceIDs[1] != "i-b" {
		t.Errorf("resource_ids = %v, want sorted [i-a i-b]", dup.ResourceIDs)
	}
	if dup.Details["duplicate_portion"] != 100.0 {
		t.Errorf("duplicate_portion = %v, want 100", dup.Details["duplicate_portion"])
	}
	if dup.Details["member_count"] != 2 {
		t.Errorf("member_count = %v, want 2", dup.Details["member_count"])
	}
}

func TestArchitectureDetector_DuplicatedEnvironmentZeroCost(t *testing.T) {
	d := NewArchitectureDetector(testLogger())
	report := d.Detect(map[string]interface{}{
		"idle_instances": []interface{}{
			map[string]interface{}{"resource_id": "i-1", "environment": "dev", "service": "api"},
			map[string]interface{}{"resource_id": "i-2", "environment": "dev", "service": "api"},
		},
	})
	if len(report.Findings) != 0 {
		t.Errorf("zero-cost group produced findings: %+v", report.Findings)
	}
}

func TestArchitectureDetector_Ordering(t *testing.T) {
	d := NewArchitectureDetector(testLogger())

	report := d.Detect(map[string]interface{}{
		"idle_instances": []interface{}{
			// Overbuilt, mid = 400*0.35 = 140.
			map[string]interface{}{"resource_id": "i-zones", "environment": "staging", "zone_count": 2.0, "monthly_cost": 400.0},
			// Duplicated group, total 100, portion 50, mid = 20.
			map[string]interface{}{"resource_id": "i-dup1", "environment": "dev", "service": "web", "monthly_cost": 60.0},
			map[string]interface{}{"resource_id": "i-dup2", "environment": "dev", "service": "web", "monthly_cost": 40.0},
		},
	})

	if len(report.Findings) != 2 {
		t.Fatalf("got %d findings, want 2: %+v", len(report.Findings), report.Findings)
	}
	if report.Findings[0].FindingType != FindingOverbuiltAvailability {
		t.Errorf("first finding = %q, want highest mid savings first", report.Findings[0].FindingType)
	}
	if report.Findings[1].FindingType != FindingDuplicatedNonProdEnv {
		t.Errorf("second finding = %q", report.Findings[1].FindingType)
	}
}

func TestArchitectureDetector_Determinism(t *testing.T) {
	input := map[string]interface{}{
		"idle_instances": []interface{}{
			map[string]interface{}{"resource_id": "i-1", "environment": "staging", "zone_count": 2.0, "monthly_cost": 100.0},
			map[string]interface{}{"resource_id": "i-2", "environment": "staging", "service": "api", "monthly_cost": 30.0},
			map[string]interface{}{"resource_id": "i-3", "environment": "staging", "service": "api", "monthly_cost": 70.0},
		},
		"idle_databases": []interface{}{
			map[string]interface{}{"resource_id": "db-1", "zone_count": 2.0, "slo_target": 99.0, "criticality": "low", "monthly_cost": 55.0},
		},
	}

	d := NewArchitectureDetector(testLogger())
	first, err := json.Marshal(d.Detect(input))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 5; i++ {
		next, err := json.Marshal(d.Detect(input))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(next) != string(first) {
			t.Fatalf("run %d produced different output\nfirst: %s\nnext:  %s", i, first, next)
		}
	}
}

func TestArchitectureDetector_Summary(t *testing.T) {
	d := NewArchitectureDetector(testLogger())

	report := d.Detect(map[string]interface{}{
		"idle_instances": []interface{}{
			map[string]interface{}{"resource_id": "i-1", "environment": "staging", "zone_count": 2.0, "monthly_cost": 100.0},
			map[string]interface{}{"resource_id": "i-2", "environment": "dev", "zone_count": 3.0, "monthly_cost": 60.0},
		},
	})

	s := report.Summary
	if s.TotalFindings != 2 {
		t.Fatalf("total = %d, want 2", s.TotalFindings)
	}
	if s.ByType[FindingOverbuiltAvailability] != 2 {
		t.Errorf("by type = %v", s.ByType)
	}
	// 100*{0.20,0.35,0.50} + 60*{0.20,0.35,0.50}
	want := SavingsRange{Low: 32, Mid: 56, High: 80}
	if s.EstimatedMonthlySavingsRange != want {
		t.Errorf("summary savings = %+v, want %+v", s.EstimatedMonthlySavingsRange, want)
	}
}
