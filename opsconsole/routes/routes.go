package routes

import (
	"github.com/gin-gonic/gin"

	c "github.com/wastegate/wastegate/opsconsole/controllers"
)

func RegisterConsoleRoutes(r *gin.Engine) {
	// Profile
	r.GET("/profile", c.GetProfile)
	r.PUT("/profile", c.UpdateProfile)
	r.POST("/profile/password", c.ChangePassword)

	// Notification channels
	r.GET("/channels", c.ListChannels)
	r.PUT("/channels/:channel", c.UpdateChannel)

	// Guard presets
	r.GET("/presets", c.ListPresets)
	r.POST("/presets", c.CreatePreset)
	r.DELETE("/presets/:name", c.DeletePreset)

	// Safety toggles
	r.GET("/safety", c.GetSafetyToggles)
	r.PUT("/safety", c.UpdateSafetyToggles)

	// API keys
	r.GET("/keys", c.ListAPIKeys)
	r.POST("/keys", c.CreateAPIKey)
	r.DELETE("/keys/:id", c.DeleteAPIKey)
}
