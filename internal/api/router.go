package api

import (
	"github.com/gin-gonic/gin"

	"github.com/atendai/atendai/internal/api/admin"
	"github.com/atendai/atendai/internal/api/middleware"
	"github.com/atendai/atendai/internal/api/widget"
	"github.com/atendai/atendai/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	JWTSecret    []byte
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	adminService *service.AdminService,
	widgetService *service.WidgetService,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Widget API (public)
	widgetHandler := widget.NewHandler(widgetService)
	widgetGroup := r.Group("/api/widget")
	widgetHandler.RegisterRoutes(widgetGroup)

	// Admin API; login sits outside the auth middleware
	adminHandler := admin.NewHandler(adminService)
	adminGroup := r.Group("/api/admin")
	adminGroup.POST("/login", adminHandler.Login)

	protected := adminGroup.Group("")
	protected.Use(middleware.Auth(cfg.JWTSecret))
	adminHandler.RegisterRoutes(protected)

	return r
}
