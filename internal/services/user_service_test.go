package services

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/wastegate/wastegate/internal/domain/user"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/testutil"
)

func newUserFixture(t *testing.T) (user.Service, *testutil.MockUserRepository) {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	repo := testutil.NewMockUserRepository()
	cfg := testConfig()
	cfg.Auth.BCryptCost = bcrypt.MinCost
	return NewUserService(repo, cfg, log), repo
}

func TestUserService_Register(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Ops@Example.COM ", "hunter2hunter2", "t1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if u.Email != "ops@example.com" {
		t.Errorf("Email = %s, want normalized ops@example.com", u.Email)
	}
	if u.ID == 0 {
		t.Error("user ID should be assigned")
	}
	if u.PasswordHash == "" || u.PasswordHash == "hunter2hunter2" {
		t.Error("password must be stored hashed")
	}
	if u.TenantID != "t1" {
		t.Errorf("TenantID = %s, want t1", u.TenantID)
	}
	// First account of the tenant
	if u.Role != user.RoleAdmin {
		t.Errorf("Role = %s, want admin", u.Role)
	}

	second, err := svc.Register(ctx, "dev@example.com", "hunter2hunter2", "t1")
	if err != nil {
		t.Fatalf("second Register() error = %v", err)
	}
	if second.Role != user.RoleOperator {
		t.Errorf("second Role = %s, want operator", second.Role)
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
		tenantID string
	}{
		{"empty email", "", "longenough", "t1"},
		{"email without at sign", "not-an-email", "longenough", "t1"},
		{"short password", "ok@example.com", "short", "t1"},
		{"missing tenant", "ok@example.com", "longenough", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.email, tc.password, tc.tenantID); err == nil {
				t.Errorf("Register(%q, %q, %q) should fail", tc.email, tc.password, tc.tenantID)
			}
		})
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ops@example.com", "hunter2hunter2", "t1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Same address, different case
	if _, err := svc.Register(ctx, "OPS@example.com", "hunter2hunter2", "t1"); err == nil {
		t.Error("Register() with a taken email should fail")
	}
}

func TestUserService_Authenticate(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ops@example.com", "hunter2hunter2", "t1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	u, err := svc.Authenticate(ctx, "ops@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if u.Email != "ops@example.com" {
		t.Errorf("Email = %s, want ops@example.com", u.Email)
	}

	// Wrong password and unknown account report the same error
	_, wrongPass := svc.Authenticate(ctx, "ops@example.com", "not-the-password")
	_, unknown := svc.Authenticate(ctx, "ghost@example.com", "hunter2hunter2")
	if wrongPass == nil || unknown == nil {
		t.Fatal("bad credentials should fail")
	}
	if wrongPass.Error() != unknown.Error() {
		t.Errorf("errors differ: %q vs %q, credentials probes must be indistinguishable", wrongPass, unknown)
	}
}

func TestUserService_Update(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, "ops@example.com", "hunter2hunter2", "t1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	name := "Sam Operator"
	u.FullName = &name
	if err := svc.Update(ctx, u); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := svc.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.FullName == nil || *got.FullName != name {
		t.Errorf("FullName = %v, want %q", got.FullName, name)
	}

	u.Role = "superuser"
	if err := svc.Update(ctx, u); err == nil {
		t.Error("Update() with invalid role should fail")
	}
}

func TestUserService_List(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if _, err := svc.Register(ctx, email, "hunter2hunter2", "t1"); err != nil {
			t.Fatalf("Register(%s) error = %v", email, err)
		}
	}
	if _, err := svc.Register(ctx, "other@example.com", "hunter2hunter2", "t2"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	users, total, err := svc.List(ctx, "t1", 2, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(users) != 2 {
		t.Errorf("page = %d, want 2", len(users))
	}
}
