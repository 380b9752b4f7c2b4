package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/wastegate/wastegate/internal/config"
	"github.com/wastegate/wastegate/internal/domain/user"
	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/logger"
)

// UserService implements user.Service
type UserService struct {
	repo       user.Repository
	bcryptCost int
	logger     *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, cfg *config.Config, log *logger.Logger) user.Service {
	return &UserService{
		repo:       repo,
		bcryptCost: cfg.Auth.BCryptCost,
		logger:     log,
	}
}

// Register creates a new operator account. The first account of a tenant
// becomes its admin.
func (s *UserService) Register(ctx context.Context, email, password, tenantID string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.BadRequest("a valid email is required")
	}
	if len(password) < 8 {
		return nil, errors.BadRequest("password must be at least 8 characters")
	}
	if tenantID == "" {
		return nil, errors.BadRequest("tenant id is required")
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := user.RoleOperator
	_, count, err := s.repo.List(ctx, tenantID, 1, 0)
	if err == nil && count == 0 {
		role = user.RoleAdmin
	}

	u := &user.User{
		Email:        email,
		PasswordHash: string(hash),
		TenantID:     tenantID,
		Role:         role,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":   u.ID,
		"email":     u.Email,
		"tenant_id": tenantID,
		"role":      role,
	}).Info("User registered")

	return u, nil
}

// Authenticate verifies credentials and returns the account. Lookup
// misses and password mismatches report the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("invalid credentials")
	}

	return u, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Update updates a user
func (s *UserService) Update(ctx context.Context, u *user.User) error {
	if u.Role != "" && !user.ValidRole(u.Role) {
		return errors.BadRequest(fmt.Sprintf("invalid role: %s", u.Role))
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update user")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("User updated")

	return nil
}

// List retrieves users for a tenant
func (s *UserService) List(ctx context.Context, tenantID string, limit, offset int) ([]*user.User, int64, error) {
	return s.repo.List(ctx, tenantID, limit, offset)
}
