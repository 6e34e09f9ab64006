package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecoster/parley/internal/domain"
)

// GetSessionMessages retrieves the persisted history for a session.
// GET /v1/sessions/:session_id/messages
func (h *Handler) GetSessionMessages(c echo.Context) error {
	sessionID := c.Param("session_id")
	ctx := c.Request().Context()

	messages, err := h.service.GetMessages(ctx, sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{
			Error: &domain.APIError{
				Message: err.Error(),
				Type:    "storage_error",
			},
		})
	}

	return c.JSON(http.StatusOK, domain.MessagesResponse{
		SessionID: sessionID,
		Messages:  messages,
	})
}

// DeleteSession removes a session and its message history.
// DELETE /v1/sessions/:session_id
func (h *Handler) DeleteSession(c echo.Context) error {
	sessionID := c.Param("session_id")
	ctx := c.Request().Context()

	if err := h.service.DeleteSession(ctx, sessionID); err != nil {
		return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{
			Error: &domain.APIError{
				Message: err.Error(),
				Type:    "storage_error",
			},
		})
	}

	return c.NoContent(http.StatusNoContent)
}
