package routes

import (
	"github.com/gin-gonic/gin"

	"courtside/internal/interfaces/http/handlers"
	"courtside/internal/interfaces/http/middleware"
)

// RedemptionRouteConfig holds dependencies for code redemption.
type RedemptionRouteConfig struct {
	RedemptionHandler *handlers.RedemptionHandler
	AuthMiddleware    *middleware.AuthMiddleware
	RedeemRateLimit   *middleware.RedeemRateLimit
}

// SetupRedemptionRoutes configures the redemption endpoint. The rate limit
// runs after auth so a throttled caller still gets a clean 401 when the
// token is missing.
func SetupRedemptionRoutes(engine *gin.Engine, config *RedemptionRouteConfig) {
	codes := engine.Group("/codes")
	codes.Use(config.AuthMiddleware.RequireAuth())
	{
		codes.POST("/redeem",
			config.RedeemRateLimit.Limit(),
			config.RedemptionHandler.RedeemCode)
	}
}
