package routes

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/adapter/http/middleware"
	"taskapp/internal/core/port"
	"taskapp/pkg/config"
)

type HandlersConfig struct {
	AuthHandler   *handler.AuthHandler
	TaskHandler   *handler.TaskHandler
	HealthHandler *handler.HealthHandler
	Verifier      port.TokenVerifier
}

func SetupRouter(handlers HandlersConfig, metrics *config.AppMetrics, logger *config.AppLogger, cfg *config.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(corsMiddleware())

	if cfg.EnforceHTTPS {
		enforcer := config.NewHTTPSEnforcer(cfg, logger.Logger.Logger)
		router.Use(enforcer.HTTPSMiddleware())
	}

	router.Use(otelgin.Middleware(logger.ServiceName))
	router.Use(middleware.RequestLogging(logger))

	if cfg.RateLimitEnabled {
		rateLimiter := config.NewRateLimiter(logger.Logger.Logger, metrics)
		router.Use(rateLimiter.RateLimitMiddleware())
	}

	if metrics != nil {
		router.Use(middleware.Metrics(metrics))
	}

	registerRoutes(router, handlers)

	return router
}

// SetupRouterForTests wires the same routes without the telemetry and
// throttling middleware, so handler tests exercise routing and auth only.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(corsMiddleware())

	registerRoutes(router, handlers)

	return router
}

func registerRoutes(router *gin.Engine, handlers HandlersConfig) {
	if handlers.HealthHandler != nil {
		router.GET("/health", handlers.HealthHandler.Health)
	}

	if handlers.AuthHandler != nil {
		router.POST("/signup", handlers.AuthHandler.SignUp)
		router.POST("/auth", handlers.AuthHandler.Login)
	}

	if handlers.TaskHandler != nil {
		api := router.Group("/api")
		api.Use(middleware.Authenticate(handlers.Verifier))
		{
			api.GET("/:user_id/tasks", handlers.TaskHandler.ListTasks)
			api.POST("/:user_id/tasks", handlers.TaskHandler.CreateTask)
			api.GET("/:user_id/tasks/:task_id", handlers.TaskHandler.GetTask)
			api.PUT("/:user_id/tasks/:task_id", handlers.TaskHandler.UpdateTask)
			api.PATCH("/:user_id/tasks/:task_id/complete", handlers.TaskHandler.ToggleComplete)
			api.DELETE("/:user_id/tasks/:task_id", handlers.TaskHandler.DeleteTask)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
