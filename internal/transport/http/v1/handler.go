// Package v1 provides the public HTTP handlers for the conversation service.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecoster/parley/internal/service"
)

// HeaderSessionID carries the resolved session id back to the caller. It is
// set before the streamed body starts so a synthesized id is never lost.
const HeaderSessionID = "X-Session-Id"

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/chat", h.Chat)
	e.GET("/v1/sessions/:session_id/messages", h.GetSessionMessages)
	e.DELETE("/v1/sessions/:session_id", h.DeleteSession)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
