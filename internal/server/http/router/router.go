package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/greenlake/portal/internal/pkg/signature"
	"github.com/greenlake/portal/internal/server/http/handlers"
	"github.com/greenlake/portal/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.PortalFacade, health handlers.HealthChecker, verifier *signature.Verifier, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade)
	healthHandler := handlers.NewHealthHandler(health)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	api.POST("/webhooks/linear", middleware.VerifyWebhookSignature(verifier), webhookHandler.Receive)

	orders := api.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id", orderHandler.Update)
	orders.POST("/:id/cancel", orderHandler.Cancel)
	orders.POST("/:id/uncancel", orderHandler.Uncancel)

	return engine
}
