package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dmitrymomot/fanout/core/logger"
	"github.com/dmitrymomot/fanout/core/response"
	"github.com/dmitrymomot/fanout/pkg/broadcast"
)

const headerSubscriptionID = "X-Subscription-Id"

type statsResponse struct {
	Subscribers int `json:"subscribers"`
}

func (a *API) handleSubscribeSSE(c echo.Context) error {
	sub := a.broadcaster.Subscribe()
	ctx := c.Request().Context()

	a.logger.DebugContext(ctx, "subscriber connected",
		logger.Subscriber(sub.ID()), logger.Transport("sse"))
	defer a.logger.DebugContext(ctx, "subscriber disconnected",
		logger.Subscriber(sub.ID()), logger.Transport("sse"))

	handle, release := a.track(sub)
	defer release()
	c.Response().Header().Set(headerSubscriptionID, handle)

	opts := []response.EventOption{
		response.WithSSEErrorHandler(a.logStreamError(sub.ID(), "sse")),
	}
	if a.cfg.CORSOrigin != "" {
		opts = append(opts, response.WithCORS(a.cfg.CORSOrigin, a.cfg.CORSCredentials))
	} else {
		opts = append(opts, response.WithoutCORS())
	}

	return response.SSE(sub, opts...)(c.Response(), c.Request())
}

func (a *API) handleSubscribeWS(c echo.Context) error {
	sub := a.broadcaster.Subscribe()
	ctx := c.Request().Context()

	a.logger.DebugContext(ctx, "subscriber connected",
		logger.Subscriber(sub.ID()), logger.Transport("websocket"))
	defer a.logger.DebugContext(ctx, "subscriber disconnected",
		logger.Subscriber(sub.ID()), logger.Transport("websocket"))

	handle, release := a.track(sub)
	defer release()

	header := http.Header{}
	header.Set(headerSubscriptionID, handle)

	opts := []response.WebSocketOption{
		response.WithWSUpgradeHeaders(header),
		response.WithWSHandshakeTimeout(a.cfg.WSHandshakeTimeout),
		response.WithWSWriteTimeout(a.cfg.WSWriteTimeout),
		response.WithWSErrorHandler(a.logStreamError(sub.ID(), "websocket")),
	}
	if a.cfg.CORSOrigin == "*" {
		opts = append(opts, response.WithWSAllowAnyOrigin())
	} else if a.cfg.CORSOrigin != "" {
		origin := a.cfg.CORSOrigin
		opts = append(opts, response.WithWSOriginCheck(func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == origin
		}))
	}

	return response.WebSocketStream(sub, opts...)(c.Response(), c.Request())
}

func (a *API) handlePublish(c echo.Context) error {
	event, err := eventParam(c)
	if err != nil {
		return err
	}

	body := http.MaxBytesReader(c.Response(), c.Request().Body, a.cfg.MaxPayloadBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrPayloadTooLarge
		}
		return fmt.Errorf("failed to read payload: %w", err)
	}
	payload := string(data)

	if err := broadcast.ValidateEvent(event, payload); err != nil {
		return err
	}

	if err := a.publisher.Publish(c.Request().Context(), event, payload); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return c.NoContent(http.StatusAccepted)
}

func (a *API) handleUnsubscribe(c echo.Context) error {
	handle := c.Param("id")
	if _, err := uuid.Parse(handle); err != nil {
		return ErrInvalidSubscriptionID
	}

	id, ok := a.lookup(handle)
	if !ok || !a.broadcaster.Unsubscribe(id) {
		return ErrSubscriptionNotFound
	}

	return c.NoContent(http.StatusNoContent)
}

// eventParam returns the decoded event name. Echo matches on RawPath only when
// the request has one, so the parameter is still escaped in that case alone.
func eventParam(c echo.Context) (string, error) {
	event := c.Param("event")
	if c.Request().URL.RawPath == "" {
		return event, nil
	}
	decoded, err := url.PathUnescape(event)
	if err != nil {
		return "", fmt.Errorf("%w: %w", broadcast.ErrInvalidEvent, err)
	}
	return decoded, nil
}

func (a *API) handleStats(c echo.Context) error {
	if err := c.JSON(http.StatusOK, statsResponse{Subscribers: a.broadcaster.Len()}); err != nil {
		return fmt.Errorf("failed to write stats response: %w", err)
	}
	return nil
}
