package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contractflow.backend/internal/interfaces/http/middleware"
	"contractflow.backend/pkg/metrics"
)

var corsAllowHeaders = strings.Join([]string{
	"Content-Type",
	middleware.AuthorizationHeader,
	middleware.RequestIDHeader,
	middleware.IdempotencyHeader,
	middleware.UserRoleHeader,
	middleware.UserIDHeader,
	middleware.UserNameHeader,
}, ", ")

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Header("Access-Control-Expose-Headers", middleware.RequestIDHeader+", "+middleware.IdempotencyHitHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Contract Management Platform API",
			"status":  "running",
		})
	}
	r.GET("/", health)
	r.GET("/health", health)
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func registerNotFound(r *gin.Engine) {
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
}
