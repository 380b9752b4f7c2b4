package safeops

import (
	"strings"
	"testing"
	"time"

	"github.com/wastegate/wastegate/internal/pkg/logger"
)

func testInterceptor(rules Ruleset) *Interceptor {
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	return NewInterceptor(rules, log)
}

func TestInterceptor_Validate(t *testing.T) {
	i := testInterceptor(DefaultRuleset())

	tests := []struct {
		name         string
		resource     Resource
		wantSafe     bool
		reasonSubstr string
	}{
		{
			name:     "untagged compute resource is safe",
			resource: Resource{ResourceID: "i-1", ResourceType: "ec2_instance"},
			wantSafe: true,
		},
		{
			name: "production tag value denies regardless of casing",
			resource: Resource{
				ResourceID:   "i-2",
				ResourceType: "ec2_instance",
				Tags:         map[string]string{"Environment": "production"},
			},
			wantSafe:     false,
			reasonSubstr: `"production"`,
		},
		{
			name: "restricted tag key denies",
			resource: Resource{
				ResourceID:   "i-3",
				ResourceType: "ec2_instance",
				Tags:         map[string]string{"do-not-delete": "true"},
			},
			wantSafe:     false,
			reasonSubstr: "do-not-delete",
		},
		{
			name: "uppercased restricted value denies",
			resource: Resource{
				ResourceID:   "i-4",
				ResourceType: "ebs_volume",
				Tags:         map[string]string{"tier": "CRITICAL"},
			},
			wantSafe:     false,
			reasonSubstr: "CRITICAL",
		},
		{
			name:         "rds type is globally protected",
			resource:     Resource{ResourceID: "db-1", ResourceType: "aws_rds_instance"},
			wantSafe:     false,
			reasonSubstr: "rds",
		},
		{
			name:         "database type is globally protected",
			resource:     Resource{ResourceID: "db-2", ResourceType: "Cloud-Database-Cluster"},
			wantSafe:     false,
			reasonSubstr: "database",
		},
		{
			name: "benign tags pass",
			resource: Resource{
				ResourceID:   "i-5",
				ResourceType: "ec2_instance",
				Tags:         map[string]string{"team": "payments", "env": "staging"},
			},
			wantSafe: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := i.Validate(tt.resource)
			if v.Safe != tt.wantSafe {
				t.Errorf("Validate() safe = %v, want %v (reason %q)", v.Safe, tt.wantSafe, v.Reason)
				return
			}
			if tt.wantSafe && v.Reason != "" {
				t.Errorf("Validate() safe verdict carries reason %q", v.Reason)
			}
			if !tt.wantSafe && !strings.Contains(v.Reason, tt.reasonSubstr) {
				t.Errorf("Validate() reason = %q, want substring %q", v.Reason, tt.reasonSubstr)
			}
		})
	}
}

func TestInterceptor_TagDenialOverridesConfidence(t *testing.T) {
	// The interceptor has no confidence input at all: a restricted tag
	// denies no matter what the upstream classifier believed.
	i := testInterceptor(DefaultRuleset())

	v := i.Validate(Resource{
		ResourceID:   "i-99",
		ResourceType: "ec2_instance",
		Tags:         map[string]string{"Environment": "production"},
	})
	if v.Safe {
		t.Fatal("Validate() allowed a production-tagged resource")
	}
	if !strings.Contains(v.Reason, "production") {
		t.Errorf("Validate() reason = %q, want it to name the restricted tag", v.Reason)
	}
}

func TestInterceptor_MinimumAgeDisabledByDefault(t *testing.T) {
	i := testInterceptor(DefaultRuleset())

	age := 0.5
	v := i.Validate(Resource{ResourceID: "i-1", ResourceType: "ec2_instance", AgeDays: &age})
	if !v.Safe {
		t.Errorf("Validate() denied young resource with min-age rule disabled: %q", v.Reason)
	}
}

func TestInterceptor_MinimumAgeEnabled(t *testing.T) {
	i := testInterceptor(DefaultRuleset().WithMinAge(true, 7))

	young := 2.0
	old := 30.0
	created := time.Now().Add(-48 * time.Hour)

	tests := []struct {
		name     string
		resource Resource
		wantSafe bool
	}{
		{
			name:     "younger than minimum is denied",
			resource: Resource{ResourceID: "i-1", ResourceType: "ec2_instance", AgeDays: &young},
			wantSafe: false,
		},
		{
			name:     "older than minimum passes",
			resource: Resource{ResourceID: "i-2", ResourceType: "ec2_instance", AgeDays: &old},
			wantSafe: true,
		},
		{
			name:     "age from created_at is honored",
			resource: Resource{ResourceID: "i-3", ResourceType: "ec2_instance", CreatedAt: &created},
			wantSafe: false,
		},
		{
			name:     "unknown age passes",
			resource: Resource{ResourceID: "i-4", ResourceType: "ec2_instance"},
			wantSafe: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := i.Validate(tt.resource)
			if v.Safe != tt.wantSafe {
				t.Errorf("Validate() safe = %v, want %v (reason %q)", v.Safe, tt.wantSafe, v.Reason)
			}
		})
	}
}

func TestInterceptor_FilterSafe(t *testing.T) {
	i := testInterceptor(DefaultRuleset())

	resources := []Resource{
		{ResourceID: "i-1", ResourceType: "ec2_instance"},
		{ResourceID: "db-1", ResourceType: "rds_instance"},
		{ResourceID: "i-2", ResourceType: "ebs_volume", Tags: map[string]string{"env": "staging"}},
		{ResourceID: "i-3", ResourceType: "ec2_instance", Tags: map[string]string{"stage": "prod"}},
	}

	safe := i.FilterSafe(resources)
	if len(safe) != 2 {
		t.Fatalf("FilterSafe() returned %d resources, want 2", len(safe))
	}
	if safe[0].ResourceID != "i-1" || safe[1].ResourceID != "i-2" {
		t.Errorf("FilterSafe() kept %q and %q, want i-1 and i-2", safe[0].ResourceID, safe[1].ResourceID)
	}
}

func TestInterceptor_ExtraDenyRules(t *testing.T) {
	rules := DefaultRuleset()
	rules.ExtraDeny = []DenyRule{
		{Tag: "pinned", Reason: "pinned resources are exempt from cleanup"},
		{TypeContains: "kms"},
	}
	i := testInterceptor(rules)

	tests := []struct {
		name     string
		resource Resource
		wantSafe bool
	}{
		{
			name:     "extra tag rule denies",
			resource: Resource{ResourceID: "i-1", ResourceType: "ec2_instance", Tags: map[string]string{"Pinned": "yes"}},
			wantSafe: false,
		},
		{
			name:     "extra type rule denies",
			resource: Resource{ResourceID: "k-1", ResourceType: "aws_kms_key"},
			wantSafe: false,
		},
		{
			name:     "unmatched resource passes",
			resource: Resource{ResourceID: "i-2", ResourceType: "ec2_instance"},
			wantSafe: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := i.Validate(tt.resource)
			if v.Safe != tt.wantSafe {
				t.Errorf("Validate() safe = %v, want %v (reason %q)", v.Safe, tt.wantSafe, v.Reason)
			}
		})
	}
}
