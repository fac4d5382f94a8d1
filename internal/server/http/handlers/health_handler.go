package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greenlake/portal/internal/server/http/dto"
)

// HealthHandler reports service health.
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.checker.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusOK)
}
