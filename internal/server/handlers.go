package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parcelfs/parcelfs/internal/shared/types"
)

func (s *Server) registerRoutes() {
	s.router.GET("/", s.root)
	s.router.GET("/health", s.health)
	s.router.GET("/services", s.listServices)
	s.router.POST("/services/execute", s.executeService)

	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// root handles basic liveness check
func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": s.config.App.Name,
	})
}

// health handles detailed health check
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": s.registry.Stats(),
	})
}

// listServices lists all registered services
func (s *Server) listServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"services": s.registry.List(nil),
	})
}

// executeService executes a service tool
func (s *Server) executeService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID := c.GetString(requestIDKey)
	appCtx := &types.Context{RequestID: &requestID}

	start := time.Now()
	result, err := s.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if s.metrics != nil {
		status := "success"
		if !result.Success {
			status = "failure"
			if result.Error != nil {
				s.metrics.RecordToolError(req.ToolID, string(result.Error.Kind))
			}
		}
		s.metrics.RecordToolCall(req.ToolID, status, time.Since(start))
	}

	c.JSON(http.StatusOK, result)
}
