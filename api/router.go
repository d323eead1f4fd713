package api

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"feed-service/cache"
	"feed-service/handler"
	"feed-service/middleware"
	"feed-service/model"
)

// NewRouter builds the gin engine serving the aggregation cache.
// events may be nil when the service runs without a NATS broker.
func NewRouter(store *cache.Cache, sources []model.Source, events *handler.FeedEvents) *gin.Engine {
	router := gin.Default()

	// The browser extension calls the API cross-origin.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.PrometheusMiddleware("feed-service"))

	feedHandler := NewFeedHandler(store, sources, events)

	// Health check routes
	router.GET("/", healthCheck)
	router.GET("/health", healthCheck)
	router.GET("/ready", healthCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	router.GET("/feed-api/articles", feedHandler.GetArticles)
	router.GET("/feed-api/sources", feedHandler.GetSources)
	router.POST("/feed-api/refresh", feedHandler.TriggerRefresh)

	return router
}

// StartServer runs the API on the given port. Blocks until the server exits.
func StartServer(port string, store *cache.Cache, sources []model.Source, events *handler.FeedEvents) {
	router := NewRouter(store, sources, events)

	log.Printf("Feed API is running at :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{"status": "healthy", "service": "feed-service"})
}
