package routes

import (
	"github.com/gin-gonic/gin"

	adminHandlers "courtside/internal/interfaces/http/handlers/admin"
	"courtside/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for admin-only routes.
type AdminRouteConfig struct {
	CodeHandler    *adminHandlers.CodeHandler
	GrantHandler   *adminHandlers.GrantHandler
	BanHandler     *adminHandlers.BanHandler
	DeviceHandler  *adminHandlers.DeviceHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupAdminRoutes configures admin-only routes.
func SetupAdminRoutes(engine *gin.Engine, cfg *AdminRouteConfig) {
	admin := engine.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	{
		// Redemption code management
		admin.POST("/codes", cfg.CodeHandler.GenerateCodes)
		admin.GET("/codes", cfg.CodeHandler.ListCodes)

		// Grant management
		admin.POST("/grants", cfg.GrantHandler.GrantAccess)
		admin.DELETE("/grants/:grant_id", cfg.GrantHandler.RevokeGrant)
		admin.GET("/accounts/:account_id/grants", cfg.GrantHandler.ListGrants)

		// Bans
		admin.POST("/bans/devices", cfg.BanHandler.BanDevice)
		admin.DELETE("/bans/devices/:device_id", cfg.BanHandler.LiftDeviceBan)
		admin.POST("/bans/accounts", cfg.BanHandler.BanAccount)
		admin.DELETE("/bans/accounts/:account_id", cfg.BanHandler.LiftAccountBan)
		admin.GET("/bans", cfg.BanHandler.ListBans)

		// Device tracking
		admin.GET("/accounts/:account_id/devices", cfg.DeviceHandler.ListDevices)
		admin.DELETE("/devices/:device_id", cfg.DeviceHandler.PruneDevice)
	}
}
