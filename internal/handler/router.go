package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the geocode endpoint with the health and metrics endpoints.
// The buildings endpoints are mounted only when catalog is not nil.
func NewRouter(log *slog.Logger, resolver Resolver, catalog Catalog, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	router.GET("/geocode", NewGeocodeHandler(resolver).Geocode)

	if catalog != nil {
		buildingsHandler := NewBuildingsHandler(catalog)
		router.GET("/buildings", buildingsHandler.List)
		router.GET("/buildings/architects", buildingsHandler.Architects)
	}

	return router
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.DebugContext(c.Request.Context(), "HTTP request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
