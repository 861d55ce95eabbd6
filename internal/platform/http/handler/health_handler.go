// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

type HealthHandler struct {
	environment string
	startedAt   time.Time
	now         func() time.Time
}

func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment, startedAt: time.Now(), now: time.Now}
}

// Health handles /health for every method and prevents caching.
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		now := h.now()
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"timestamp":   now.UTC().Format(time.RFC3339),
			"uptime":      now.Sub(h.startedAt).Seconds(),
			"environment": h.environment,
			"version":     Version,
		})
	}
}
