package classifier

import "testing"

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]interface{}
		want string
	}{
		{"explicit field", map[string]interface{}{"environment": "Staging"}, "staging"},
		{"explicit field trimmed", map[string]interface{}{"environment": "  PROD  "}, "prod"},
		{"field beats tag", map[string]interface{}{"environment": "dev", "tags": map[string]interface{}{"env": "prod"}}, "dev"},
		{"environment tag", map[string]interface{}{"tags": map[string]interface{}{"Environment": "QA"}}, "qa"},
		{"env tag", map[string]interface{}{"tags": map[string]interface{}{"env": "test"}}, "test"},
		{"stage tag", map[string]interface{}{"tags": map[string]interface{}{"stage": "sandbox"}}, "sandbox"},
		{"environment tag beats stage tag", map[string]interface{}{"tags": map[string]interface{}{"stage": "prod", "environment": "dev"}}, "dev"},
		{"empty field falls through", map[string]interface{}{"environment": "  ", "tags": map[string]interface{}{"env": "demo"}}, "demo"},
		{"nothing", map[string]interface{}{}, "unknown"},
		{"non-string field", map[string]interface{}{"environment": 3}, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveEnvironment(tt.rec); got != tt.want {
				t.Errorf("resolveEnvironment() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveZoneCount(t *testing.T) {
	tests := []struct {
		name      string
		rec       map[string]interface{}
		want      int
		wantKnown bool
	}{
		{"zone_count", map[string]interface{}{"zone_count": 3.0}, 3, true},
		{"zone list", map[string]interface{}{"availability_zones": []interface{}{"us-east-1a", "us-east-1b"}}, 2, true},
		{"zone list deduped", map[string]interface{}{"zones": []interface{}{"a", "a", "b"}}, 2, true},
		{"comma string", map[string]interface{}{"zones": "a, b, c"}, 3, true},
		{"multi_az true", map[string]interface{}{"multi_az": true}, 2, true},
		{"multi_az false falls through to region", map[string]interface{}{"multi_az": false, "region": "us-east-1"}, 1, true},
		{"region implies one zone", map[string]interface{}{"region": "eu-west-1"}, 1, true},
		{"zone implies one zone", map[string]interface{}{"zone": "us-central1-a"}, 1, true},
		{"zone_count beats list", map[string]interface{}{"zone_count": 1.0, "availability_zones": []interface{}{"a", "b", "c"}}, 1, true},
		{"list beats multi_az", map[string]interface{}{"availability_zones": []interface{}{"a"}, "multi_az": true}, 1, true},
		{"empty list falls through", map[string]interface{}{"availability_zones": []interface{}{}, "multi_az": true}, 2, true},
		{"no signal", map[string]interface{}{"resource_id": "r-1"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := resolveZoneCount(tt.rec)
			if known != tt.wantKnown {
				t.Fatalf("known = %v, want %v", known, tt.wantKnown)
			}
			if got != tt.want {
				t.Errorf("resolveZoneCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveCriticality(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]interface{}
		want string
	}{
		{"field", map[string]interface{}{"criticality": "Low"}, "low"},
		{"tag", map[string]interface{}{"tags": map[string]interface{}{"Criticality": "NONE"}}, "none"},
		{"field beats tag", map[string]interface{}{"criticality": "high", "tags": map[string]interface{}{"criticality": "low"}}, "high"},
		{"absent", map[string]interface{}{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveCriticality(tt.rec); got != tt.want {
				t.Errorf("resolveCriticality() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAsFloat(t *testing.T) {
	tests := []struct {
		name   string
		in     interface{}
		want   float64
		wantOK bool
	}{
		{"float64", 12.5, 12.5, true},
		{"int", 7, 7, true},
		{"numeric string", "42.25", 42.25, true},
		{"padded string", "  3 ", 3, true},
		{"garbage string", "n/a", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := asFloat(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("asFloat(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTags(t *testing.T) {
	got := tags(map[string]interface{}{
		"tags": map[string]interface{}{"env": "dev", "count": 3, "owner": "team-a"},
	})
	if len(got) != 2 || got["env"] != "dev" || got["owner"] != "team-a" {
		t.Errorf("tags() = %v, want non-string values dropped", got)
	}

	if got := tags(map[string]interface{}{}); len(got) != 0 {
		t.Errorf("tags() on missing key = %v, want empty", got)
	}
	if got := tags(map[string]interface{}{"tags": "not a map"}); len(got) != 0 {
		t.Errorf("tags() on wrong shape = %v, want empty", got)
	}
}
