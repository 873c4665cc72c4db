package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrymomot/fanout/core/logger"
	"github.com/dmitrymomot/fanout/pkg/broadcast"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// statusFor maps an error returned by a handler to an HTTP status and message.
func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code, fmt.Sprint(he.Message)
	case errors.Is(err, broadcast.ErrEmptyEventName),
		errors.Is(err, broadcast.ErrReservedEventName),
		errors.Is(err, broadcast.ErrInvalidEvent),
		errors.Is(err, ErrInvalidSubscriptionID):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrSubscriptionNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, ErrPublishFailed):
		return http.StatusServiceUnavailable, ErrPublishFailed.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func (a *API) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		a.logger.ErrorContext(c.Request().Context(), "request failed",
			logger.Error(err),
			logger.Method(c.Request().Method),
			logger.Path(c.Request().URL.Path),
			logger.StatusCode(code),
		)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorResponse{Error: msg, Code: code})
}

func (a *API) logStreamError(id uint64, transport string) func(context.Context, error) {
	return func(ctx context.Context, err error) {
		a.logger.WarnContext(ctx, "stream ended with error",
			logger.Subscriber(id),
			logger.Transport(transport),
			logger.Error(err),
		)
	}
}
