package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/fanout/core/logger"
)

func (a *API) registerRoutes() {
	a.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	a.echo.Use(a.requestLogger())
	a.echo.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			a.logger.ErrorContext(c.Request().Context(), "panic recovered",
				logger.Error(err),
				logger.Path(c.Request().URL.Path),
				slog.String("stack", string(stack)),
			)
			return err
		},
	}))

	if a.cfg.CORSOrigin != "" {
		a.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{a.cfg.CORSOrigin},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowCredentials: a.cfg.CORSCredentials,
			ExposeHeaders:    []string{headerSubscriptionID},
		}))
	}

	if a.registry != nil {
		a.echo.Use(NewHTTPMetrics(a.registry).Middleware())
		a.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))
	}

	a.registerHealthRoutes()

	a.echo.GET("/events", a.handleSubscribeSSE)
	a.echo.GET("/events/ws", a.handleSubscribeWS)

	a.echo.POST("/events/:event", a.handlePublish)
	a.echo.DELETE("/subscriptions/:id", a.handleUnsubscribe)
	a.echo.GET("/stats", a.handleStats)
}

func (a *API) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			a.logger.LogAttrs(c.Request().Context(), level, "request",
				logger.Method(v.Method),
				logger.Path(v.URI),
				logger.StatusCode(v.Status),
				logger.Latency(v.Latency),
				logger.RequestID(v.RequestID),
				logger.ClientIP(v.RemoteIP),
				logger.Error(v.Error),
			)
			return nil
		},
	})
}
