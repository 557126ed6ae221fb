package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vintechs/portal/internal/logging"
)

// Pinger checks a backing service.
type Pinger func(ctx context.Context) error

// HealthHandler reports whether the server and its backend are reachable.
type HealthHandler struct {
	ping Pinger
}

// NewHealthHandler creates a HealthHandler. A nil ping reports healthy.
func NewHealthHandler(ping Pinger) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// HealthGet answers GET /health.
func (h *HealthHandler) HealthGet(c echo.Context) error {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			logging.FromContext(ctx).Error("Health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
