package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"taskhub/internal/adapter/http/middleware"
	"taskhub/pkg/config"
	"taskhub/pkg/logging"
	"taskhub/pkg/metrics"
)

func SetupRouter(container *Container, cfg *config.Config, logger *logging.AppLogger, appMetrics *metrics.AppMetrics) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	router.Use(middleware.ObservabilityMiddleware(logger, appMetrics))

	var rateLimit gin.HandlerFunc

	if cfg.Server.RateLimitEnabled {
		limiter := config.NewRateLimiter(logger.Zap(), appMetrics)
		rateLimit = limiter.RateLimitMiddleware()
	}

	router.GET("/healthz", container.HealthHandler.Check)

	authGroup := router.Group("/auth")

	if rateLimit != nil {
		authGroup.Use(rateLimit)
	}

	authGroup.POST("/register", container.AuthHandler.Register)
	authGroup.POST("/login", container.AuthHandler.Login)

	// Rate limiting runs after auth so task routes can be keyed per user.
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(container.Tokens))

	if rateLimit != nil {
		protected.Use(rateLimit)
	}

	protected.GET("/profile", container.UserHandler.GetProfile)
	protected.PATCH("/profile", container.UserHandler.UpdateProfile)
	protected.PATCH("/profile/password", container.UserHandler.ChangePassword)

	protected.POST("/tasks", container.TaskHandler.Create)
	protected.GET("/tasks", container.TaskHandler.List)
	protected.GET("/tasks/:id", container.TaskHandler.Get)
	protected.PATCH("/tasks/:id", container.TaskHandler.Update)
	protected.DELETE("/tasks/:id", container.TaskHandler.Delete)
	protected.GET("/tasks/:id/history", container.TaskHandler.History)

	protected.GET("/search", container.TaskHandler.Search)

	protected.POST("/lists", container.ListHandler.Create)
	protected.GET("/lists", container.ListHandler.List)
	protected.PATCH("/lists/:id", container.ListHandler.Update)
	protected.DELETE("/lists/:id", container.ListHandler.Delete)

	return router
}
