package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marketplace/pkg/logger"
	"marketplace/pkg/metrics"
)

// SetupRoutes wires all marketplace routes.
func SetupRoutes(catalogHandler *CatalogHandler, reviewHandler *ReviewHandler, userHandler *UserHandler) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("marketplace"))

	// cross-origin requests are accepted from any origin
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Accept", "Content-Type", CallerHeader},
		MaxAge:          5 * time.Minute,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "marketplace",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/products", catalogHandler.ListProducts)
		api.POST("/products", catalogHandler.CreateProduct)
		api.DELETE("/products/:id", CallerIdentity(), catalogHandler.DeleteProduct)

		api.POST("/reviews", reviewHandler.CreateReview)
		api.GET("/reviews/:productId", reviewHandler.GetReviewsByProduct)

		api.POST("/users", userHandler.CreateUser)
	}

	return router
}
