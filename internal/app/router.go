package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"transfleet/internal/handler"
	"transfleet/internal/middleware"
	internalRedis "transfleet/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler   *handler.AuthHandler
	OrderHandler  *handler.OrderHandler
	RepairHandler *handler.RepairHandler
	SessionStore  internalRedis.SessionStoreInterface
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Public auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/sign-in", deps.AuthHandler.SignIn)
			auth.POST("/sign-up", deps.AuthHandler.SignUp)
		}

		// Session-protected routes. Idempotency runs after auth so
		// replay keys are scoped per driver.
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.SessionStore))
		protected.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
		{
			protected.POST("/auth/sign-out", deps.AuthHandler.SignOut)
			protected.GET("/profile", deps.AuthHandler.Profile)

			protected.GET("/statuses/:kind", deps.OrderHandler.ListStatuses)

			orders := protected.Group("/orders")
			{
				orders.GET("", deps.OrderHandler.ListOrders)

				submission := orders.Group("/:kind/:id/submission")
				{
					submission.POST("", deps.OrderHandler.BeginSubmission)
					submission.GET("", deps.OrderHandler.GetSubmission)
					submission.DELETE("", deps.OrderHandler.CancelSubmission)
					submission.PUT("/note", deps.OrderHandler.SetNote)
					submission.POST("/images", deps.OrderHandler.AttachImages)
					submission.DELETE("/images/:imageID", deps.OrderHandler.RemoveImage)
					submission.POST("/submit", deps.OrderHandler.Submit)
				}
			}

			repairs := protected.Group("/repairs")
			{
				repairs.POST("", deps.RepairHandler.Create)
				repairs.GET("", deps.RepairHandler.List)
				repairs.DELETE("/:id", deps.RepairHandler.Delete)
			}
		}
	}

	return router
}
