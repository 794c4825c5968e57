package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"ai-receptionist/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "AI receptionist is answering"
	HealthVersion = "1.0.0"
	ServiceName   = "ai-receptionist"

	readyTimeout = 2 * time.Second
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":       "healthy",
		"message":      HealthMessage,
		"version":      HealthVersion,
		"service":      ServiceName,
		"active_calls": srv.relayUC.ActiveCalls(),
		"connections":  srv.stream.Connections(),
	})
}

// readyCheck reports ready only when the session store answers.
// @Summary Readiness Check
// @Description Check if the API and its session store are ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} response.Resp "Session store unreachable"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	if err := srv.store.Ping(ctx); err != nil {
		srv.l.Warnf(ctx, "httpserver.readyCheck: session store: %v", err)
		response.ServiceUnavailable(c, "session store unavailable")
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}
