// Package main provides the college chat server entry point.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/collegechat/collegechat-go/internal/config"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, srv *server, cfg *config.Config, registry *prometheus.Registry) {
	// Root endpoint - redirect to the project page
	rootHandler := func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "https://github.com/collegechat/collegechat-go")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness probe - only that the process is running, never dependencies
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness probe - full dependency check
	router.GET("/ready", srv.handleReady)
	router.HEAD("/ready", srv.handleReady)

	// Chat API
	api := router.Group("/api")
	api.POST("/chat", srv.handleChat)

	// Admin endpoints share the metrics credentials
	auth := basicAuthMiddleware(cfg.MetricsAuthEnabled(), cfg.MetricsUsername, cfg.MetricsPassword)

	admin := router.Group("/admin", auth)
	admin.GET("/analytics", srv.handleAnalytics)

	// Prometheus metrics endpoint
	router.GET("/metrics", auth, gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
