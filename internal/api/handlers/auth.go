package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wastegate/wastegate/internal/api/dto"
	"github.com/wastegate/wastegate/internal/api/middleware"
	"github.com/wastegate/wastegate/internal/auth"
	"github.com/wastegate/wastegate/internal/config"
	"github.com/wastegate/wastegate/internal/domain/user"
	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/utils"
	"github.com/wastegate/wastegate/internal/pkg/validator"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService user.Service
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	userService user.Service,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

// Login handles user login
// @Summary User login
// @Description Authenticate an operator with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Successfully authenticated"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	account, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Authentication failed")
		utils.WriteError(w, errors.Unauthorized("Invalid credentials"))
		return
	}

	h.issueSession(w, account, http.StatusOK)
}

// Register handles operator registration
// @Summary Register operator account
// @Description Register a new operator account under a tenant
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse "Account created"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Failure 409 {object} utils.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	account, err := h.userService.Register(r.Context(), req.Email, req.Password, req.TenantID)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			utils.WriteError(w, appErr)
			return
		}
		h.logger.ErrorWithErr(err, "Failed to register account")
		utils.WriteError(w, errors.BadRequest(err.Error()))
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id":   account.ID,
		"tenant_id": account.TenantID,
	}).Info("Operator account registered")

	h.issueSession(w, account, http.StatusCreated)
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Description Refresh access token using refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse "New tokens generated"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	claims, err := auth.ParseClaims(req.RefreshToken, h.config.Auth.JWTSecret)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid refresh token"))
		return
	}

	account, err := h.userService.GetByID(r.Context(), claims.UserID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to load account for refresh")
		utils.WriteError(w, errors.Unauthorized("Invalid refresh token"))
		return
	}

	h.issueSession(w, account, http.StatusOK)
}

// Me returns the current operator's account
// @Summary Get current operator
// @Description Get the authenticated operator's account
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserDTO "Account information"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	account, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to get account")
		writeServiceError(w, err, errors.Internal("Failed to get account", err))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, mapUserToDTO(account))
}

// Logout clears the session cookies
// @Summary Logout
// @Description Clear the session cookies
// @Tags Auth
// @Success 200 {object} utils.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Logged out successfully", nil)
}

// issueSession mints a token pair for the account, sets the session cookies,
// and writes the auth response.
func (h *AuthHandler) issueSession(w http.ResponseWriter, account *user.User, status int) {
	tokens, err := auth.MintTokens(
		account.ID,
		account.Email,
		account.TenantID,
		account.Role,
		h.config.Auth.JWTSecret,
		h.config.Auth.AccessTokenExpiry,
		h.config.Auth.RefreshTokenExpiry,
	)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to generate tokens")
		utils.WriteError(w, errors.Internal("Failed to generate tokens", err))
		return
	}

	secure := h.config.Server.Environment == "production"
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    tokens.AccessToken,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.AccessTokenExpiry.Seconds()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    tokens.RefreshToken,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.RefreshTokenExpiry.Seconds()),
	})

	utils.WriteSuccess(w, status, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         mapUserToDTO(account),
	})
}

func mapUserToDTO(u *user.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		TenantID: u.TenantID,
		Role:     u.Role,
	}
}
