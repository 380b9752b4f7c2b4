package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	m "github.com/wastegate/wastegate/opsconsole/models"
	u "github.com/wastegate/wastegate/opsconsole/utils"
)

// In-memory console state, reset on restart. The console is a prototype
// surface for a single operator session; durable settings live in the API.
var (
	stateMu = sync.Mutex{}

	profile = m.Profile{ID: 1, Email: "operator@example.com", TenantID: "acme", Role: "operator"}

	channels = map[string]*m.ChannelSettings{
		"slack":   {Channel: "slack", IsEnabled: false},
		"webhook": {Channel: "webhook", IsEnabled: false},
	}

	presets = map[string]*m.GuardPreset{
		"conservative": {
			Name:                   "conservative",
			KillSwitchThresholdUSD: 100,
			MonthlyCapEnabled:      true,
			MonthlyCapUSD:          2000,
			MaxDailySavingsUSD:     250,
			CreatedAt:              time.Now().UTC(),
		},
	}

	safety = m.SafetyToggles{MinAgeEnabled: false, MinAgeDays: 7}

	apiKeys = map[string]*m.APIKey{}
)

// Profile

func GetProfile(c *gin.Context) {
	stateMu.Lock()
	defer stateMu.Unlock()
	u.JSON(c, http.StatusOK, profile)
}

func UpdateProfile(c *gin.Context) {
	var req m.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	stateMu.Lock()
	defer stateMu.Unlock()
	if req.FullName != nil {
		profile.FullName = req.FullName
	}
	u.JSON(c, http.StatusOK, profile)
}

func ChangePassword(c *gin.Context) {
	var req m.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NewPassword == "" {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	if len(req.NewPassword) < 8 {
		u.Error(c, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}
	u.JSON(c, http.StatusOK, gin.H{"status": "changed"})
}

// Notification channels

func ListChannels(c *gin.Context) {
	stateMu.Lock()
	defer stateMu.Unlock()
	out := []m.ChannelSettings{*channels["slack"], *channels["webhook"]}
	u.JSON(c, http.StatusOK, out)
}

func UpdateChannel(c *gin.Context) {
	name := c.Param("channel")
	var req m.UpdateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	stateMu.Lock()
	defer stateMu.Unlock()
	ch, ok := channels[name]
	if !ok {
		u.Error(c, http.StatusNotFound, "unknown channel")
		return
	}
	if req.IsEnabled != nil {
		ch.IsEnabled = *req.IsEnabled
	}
	if req.WebhookURL != nil {
		ch.WebhookURL = req.WebhookURL
	}
	ch.UpdatedAt = time.Now().UTC()
	u.JSON(c, http.StatusOK, *ch)
}

// Guard presets

func ListPresets(c *gin.Context) {
	stateMu.Lock()
	defer stateMu.Unlock()
	out := make([]m.GuardPreset, 0, len(presets))
	for _, p := range presets {
		out = append(out, *p)
	}
	u.JSON(c, http.StatusOK, out)
}

func CreatePreset(c *gin.Context) {
	var req m.CreatePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		u.Error(c, http.StatusBadRequest, "invalid preset")
		return
	}
	if req.KillSwitchThresholdUSD < 0 || req.MonthlyCapUSD < 0 || req.MaxDailySavingsUSD < 0 {
		u.Error(c, http.StatusBadRequest, "thresholds must not be negative")
		return
	}
	stateMu.Lock()
	defer stateMu.Unlock()
	p := &m.GuardPreset{
		Name:                   req.Name,
		KillSwitchThresholdUSD: req.KillSwitchThresholdUSD,
		MonthlyCapEnabled:      req.MonthlyCapEnabled,
		MonthlyCapUSD:          req.MonthlyCapUSD,
		MaxDailySavingsUSD:     req.MaxDailySavingsUSD,
		CreatedAt:              time.Now().UTC(),
	}
	presets[req.Name] = p
	u.JSON(c, http.StatusCreated, *p)
}

func DeletePreset(c *gin.Context) {
	name := c.Param("name")
	stateMu.Lock()
	defer stateMu.Unlock()
	if _, ok := presets[name]; !ok {
		u.Error(c, http.StatusNotFound, "unknown preset")
		return
	}
	delete(presets, name)
	u.JSON(c, http.StatusNoContent, nil)
}

// Safety toggles

func GetSafetyToggles(c *gin.Context) {
	stateMu.Lock()
	defer stateMu.Unlock()
	u.JSON(c, http.StatusOK, safety)
}

func UpdateSafetyToggles(c *gin.Context) {
	var req m.UpdateSafetyTogglesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Error(c, http.StatusBadRequest, "invalid body")
		return
	}
	if req.MinAgeDays != nil && *req.MinAgeDays < 0 {
		u.Error(c, http.StatusBadRequest, "minAgeDays must not be negative")
		return
	}
	stateMu.Lock()
	defer stateMu.Unlock()
	if req.MinAgeEnabled != nil {
		safety.MinAgeEnabled = *req.MinAgeEnabled
	}
	if req.MinAgeDays != nil {
		safety.MinAgeDays = *req.MinAgeDays
	}
	u.JSON(c, http.StatusOK, safety)
}

// API keys

func ListAPIKeys(c *gin.Context) {
	stateMu.Lock()
	defer stateMu.Unlock()
	out := make([]m.APIKey, 0, len(apiKeys))
	for _, k := range apiKeys {
		out = append(out, *k)
	}
	u.JSON(c, http.StatusOK, out)
}

func CreateAPIKey(c *gin.Context) {
	var req m.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		u.Error(c, http.StatusBadRequest, "invalid name")
		return
	}
	id, err := randomToken(8)
	if err != nil {
		u.Error(c, http.StatusInternalServerError, "key generation failed")
		return
	}
	secret, err := randomToken(24)
	if err != nil {
		u.Error(c, http.StatusInternalServerError, "key generation failed")
		return
	}
	stateMu.Lock()
	defer stateMu.Unlock()
	k := &m.APIKey{ID: "key_" + id, Name: req.Name, CreatedAt: time.Now().UTC()}
	apiKeys[k.ID] = k
	// The secret is shown once and not stored.
	u.JSON(c, http.StatusCreated, m.CreateAPIKeyResponse{Key: *k, Secret: "wg_" + secret})
}

func DeleteAPIKey(c *gin.Context) {
	id := c.Param("id")
	stateMu.Lock()
	defer stateMu.Unlock()
	if _, ok := apiKeys[id]; !ok {
		u.Error(c, http.StatusNotFound, "unknown key")
		return
	}
	delete(apiKeys, id)
	u.JSON(c, http.StatusNoContent, nil)
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
