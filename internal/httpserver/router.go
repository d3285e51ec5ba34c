package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// buildRouter wires the storefront API routes.
func buildRouter(logger *log.Logger, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(corsOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = corsOrigins
		router.Use(cors.New(cfg))
	}

	h := newHandlers(logger, deps)

	api := router.Group("/api")
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)
	api.GET("/products/:id/variant", h.getVariant)
	api.GET("/categories", h.listCategories)
	api.GET("/locations", h.listLocations)
	api.GET("/locations/:id/shipping", h.listShipping)
	api.POST("/checkout", h.createOrder)

	return router
}
