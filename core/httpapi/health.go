package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessProbeTimeout = 5 * time.Second

// HealthCheck is a named readiness check.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

func (a *API) registerHealthRoutes() {
	a.echo.GET("/health/live", a.handleLiveness)
	a.echo.GET("/health/ready", a.handleReadiness)
}

func (a *API) handleLiveness(c echo.Context) error {
	body := map[string]any{
		"status":      "ok",
		"uptime":      time.Since(a.startTime).Seconds(),
		"subscribers": a.broadcaster.Len(),
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		return fmt.Errorf("failed to write liveness response: %w", err)
	}
	return nil
}

func (a *API) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessProbeTimeout)
	defer cancel()

	for _, hc := range a.healthChecks {
		err := hc.Check(ctx)
		if err == nil {
			continue
		}

		body := map[string]any{
			"status":       "unhealthy",
			"failed_check": hc.Name,
			"error":        err.Error(),
		}
		if err := c.JSON(http.StatusServiceUnavailable, body); err != nil {
			return fmt.Errorf("failed to write readiness response: %w", err)
		}
		return nil
	}

	if err := c.JSON(http.StatusOK, map[string]string{"status": "ready"}); err != nil {
		return fmt.Errorf("failed to write readiness response: %w", err)
	}
	return nil
}
