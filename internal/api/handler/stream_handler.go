package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/timecardhq/timecard-api/internal/core/domain"
	"github.com/timecardhq/timecard-api/internal/core/ports"
)

// heartbeatInterval keeps intermediaries from reaping idle SSE connections.
const heartbeatInterval = 30 * time.Second

// StreamHandler exposes the change notifier as a server-sent event stream.
// Managers watch the shared approval-queue topic; contractors watch their own.
// Events are wake-up signals: clients re-query on receipt.
type StreamHandler struct {
	notifier ports.Notifier
}

func NewStreamHandler(notifier ports.Notifier) *StreamHandler {
	return &StreamHandler{notifier: notifier}
}

// Stream handles GET /v1/stream.
//
// @Summary      Stream lifecycle events for the caller's topic
// @Tags         stream
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Router       /v1/stream [get]
func (h *StreamHandler) Stream(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	topic := domain.TopicOwner(principal.ID)
	if principal.IsManager() {
		topic = domain.TopicManagers
	}

	ctx := c.Request().Context()
	events, cancel, err := h.notifier.Subscribe(ctx, topic)
	if err != nil {
		return err
	}
	defer cancel()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			if _, err := res.Write([]byte(": ping\n\n")); err != nil {
				return nil
			}
			res.Flush()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err := res.Write([]byte("data: ")); err != nil {
				return nil
			}
			if _, err := res.Write(payload); err != nil {
				return nil
			}
			if _, err := res.Write([]byte("\n\n")); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
