package v1

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecoster/parley/internal/domain"
)

// Chat runs one conversation turn and relays the generated reply as a
// streamed plain-text body.
// POST /v1/chat
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error: &domain.APIError{
				Message: "invalid request body",
				Type:    "invalid_request_error",
			},
		})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{
			Error: &domain.APIError{
				Message: "message is required",
				Type:    "invalid_request_error",
			},
		})
	}

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{
			Error: &domain.APIError{
				Message: "streaming not supported",
				Type:    "internal_error",
			},
		})
	}

	ctx := c.Request().Context()
	sessionID := h.service.ResolveSessionID(req.SessionID)
	c.Response().Header().Set(HeaderSessionID, sessionID)

	// Headers are committed lazily, on the first fragment: until then a
	// failure can still be reported with a status code and a structured
	// error body.
	streaming := false
	err := h.service.StreamChat(ctx, sessionID, req.Message, func(fragment string) error {
		if !streaming {
			c.Response().Header().Set(echo.HeaderContentType, "text/plain; charset=utf-8")
			c.Response().Header().Set("Cache-Control", "no-cache")
			c.Response().WriteHeader(http.StatusOK)
			streaming = true
		}
		if _, err := io.WriteString(c.Response(), fragment); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})

	if err != nil {
		if streaming {
			// Status already sent; the stream just ends early.
			log.Printf("ERROR: chat stream for session %s terminated: %v", sessionID, err)
			return nil
		}
		return h.chatError(c, err)
	}

	if !streaming {
		// Empty reply: commit a 200 with an empty body so the caller still
		// receives the session id.
		c.Response().WriteHeader(http.StatusOK)
	}
	return nil
}

// chatError maps pre-stream orchestrator failures to status codes.
func (h *Handler) chatError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionBusy):
		return c.JSON(http.StatusConflict, domain.ErrorResponse{
			Error: &domain.APIError{
				Message: "a turn is already in flight for this session",
				Type:    "session_busy",
			},
		})
	case domain.IsStorageError(err):
		return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{
			Error: &domain.APIError{
				Message: err.Error(),
				Type:    "storage_error",
			},
		})
	case domain.IsGenerationError(err):
		return c.JSON(http.StatusBadGateway, domain.ErrorResponse{
			Error: &domain.APIError{
				Message: err.Error(),
				Type:    "generation_error",
			},
		})
	default:
		return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{
			Error: &domain.APIError{
				Message: err.Error(),
				Type:    "internal_error",
			},
		})
	}
}
