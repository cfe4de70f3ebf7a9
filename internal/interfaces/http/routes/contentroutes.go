package routes

import (
	"github.com/gin-gonic/gin"

	"courtside/internal/interfaces/http/handlers"
	"courtside/internal/interfaces/http/middleware"
)

// ContentRouteConfig holds dependencies for the public content surface.
type ContentRouteConfig struct {
	ContentHandler *handlers.ContentHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupContentRoutes configures the content resolution endpoint. Auth is
// optional here: anonymous visitors still get the preview projection.
func SetupContentRoutes(engine *gin.Engine, config *ContentRouteConfig) {
	content := engine.Group("/content")
	content.Use(config.AuthMiddleware.OptionalAuth())
	{
		content.GET("/courses/:course_id", config.ContentHandler.GetContent)
	}
}
