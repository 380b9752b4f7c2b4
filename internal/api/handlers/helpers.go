package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wastegate/wastegate/internal/api/middleware"
	"github.com/wastegate/wastegate/internal/pkg/errors"
	"github.com/wastegate/wastegate/internal/pkg/utils"
)

// requireTenant extracts the caller's tenant from the request context and
// writes a 401 when it is missing. Every tenant-scoped handler starts here.
func requireTenant(w http.ResponseWriter, r *http.Request) (string, bool) {
	tenantID, ok := middleware.GetTenantID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing tenant identity"))
		return "", false
	}
	return tenantID, true
}

// writeServiceError maps a service error onto the HTTP response. Typed
// AppErrors pass through; repositories signal missing rows with plain
// "not found" errors, so probe for those before falling back.
func writeServiceError(w http.ResponseWriter, err error, fallback *errors.AppError) {
	if appErr, ok := err.(*errors.AppError); ok {
		utils.WriteError(w, appErr)
		return
	}
	if strings.Contains(err.Error(), "not found") {
		utils.WriteError(w, errors.New(errors.ErrCodeNotFound, err.Error(), http.StatusNotFound))
		return
	}
	utils.WriteError(w, fallback)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
