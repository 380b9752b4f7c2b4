package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wastegate/wastegate/internal/api/middleware"
	"github.com/wastegate/wastegate/internal/config"
	"github.com/wastegate/wastegate/internal/domain/user"
	"github.com/wastegate/wastegate/internal/pkg/logger"
)

// authedRequest builds a request carrying the identity the auth middleware
// would have injected for an operator of tenant t1.
func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, int64(1))
	ctx = context.WithValue(ctx, middleware.TenantIDKey, "t1")
	ctx = context.WithValue(ctx, middleware.UserRoleKey, user.RoleOperator)
	return req.WithContext(ctx)
}

func asRole(req *http.Request, role string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.UserRoleKey, role))
}

func withChiParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func testConfig() *config.Config {
	return &config.Config{
		Guard: config.GuardConfig{
			KillSwitchThresholdUSD: 500,
			KillSwitchScope:        "tenant",
			MonthlyCapEnabled:      false,
			MonthlyCapUSD:          10000,
		},
		Breaker: config.BreakerConfig{
			FailureThreshold:   3,
			RecoveryTimeout:    time.Minute,
			MaxDailySavingsUSD: 1000,
			CacheCapacity:      8,
		},
		SafeOps: config.SafeOpsConfig{MinAgeDays: 7},
	}
}
