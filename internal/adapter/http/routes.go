package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/http/handler"
	"github.com/Manni1403/taskboard-assessment/internal/adapter/http/middleware"
	"github.com/Manni1403/taskboard-assessment/internal/adapter/telemetry"
	"github.com/Manni1403/taskboard-assessment/pkg/auth"
	"github.com/Manni1403/taskboard-assessment/pkg/config"
	"github.com/Manni1403/taskboard-assessment/pkg/logging"
)

type HandlersConfig struct {
	AuthHandler *handler.AuthHandler
	TodoHandler *handler.TodoHandler
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *logging.Logger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, config.GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *logging.Logger, cfg *config.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	middleware.Setup(router, "taskboard", metrics, logger, cfg)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if handlers.AuthHandler != nil {
		setupPublicRoutes(router, handlers.AuthHandler)
	}

	if handlers.TodoHandler != nil {
		setupProtectedRoutes(router, handlers.TodoHandler)
	}

	return router
}

func setupPublicRoutes(router *gin.Engine, authHandler *handler.AuthHandler) {
	public := router.Group("/")
	{
		public.POST("/signup", authHandler.RegisterByEmailAndPassword)
		public.POST("/auth", authHandler.AuthByEmailAndPassword)
	}
}

func setupProtectedRoutes(router *gin.Engine, todoHandler *handler.TodoHandler) {
	protected := router.Group("/")
	protected.Use(auth.GinJwtMiddleware())
	{
		protected.GET("/todos", todoHandler.ListTodos)
		protected.POST("/todos", todoHandler.CreateTodo)
		protected.GET("/todos/:uuid", todoHandler.GetTodo)
		protected.PATCH("/todos/:uuid", todoHandler.UpdateTodo)
		protected.DELETE("/todos/:uuid", todoHandler.DeleteTodo)
		protected.POST("/todos/bulk-create", todoHandler.BulkCreateTodos)
		protected.POST("/todos/bulk-delete", todoHandler.BulkDeleteTodos)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupRouterForTests wires the routes without the telemetry and rate limit
// chain so handler tests stay deterministic.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if handlers.AuthHandler != nil {
		setupPublicRoutes(router, handlers.AuthHandler)
	}

	if handlers.TodoHandler != nil {
		setupProtectedRoutes(router, handlers.TodoHandler)
	}

	return router
}
