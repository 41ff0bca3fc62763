package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const serviceName = "los-backend"

// Handler serves liveness along with the configured event broker.
type Handler struct{ eventBroker string }

func NewHandler(eventBroker string) *Handler { return &Handler{eventBroker: eventBroker} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":       "ok",
		"service":      serviceName,
		"event_broker": h.eventBroker,
		"time":         time.Now().UTC().Format(time.RFC3339Nano),
	})
}
