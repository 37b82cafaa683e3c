package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/shared/apperr"
)

// RespondError writes the HTTP response for err and aborts the gin chain.
// Causes of 5xx responses are logged and never returned to the client.
func RespondError(c *gin.Context, err error) {
	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "method", c.Request.Method, "path", c.FullPath())
	}
	c.AbortWithStatusJSON(status, body)
}

func errorResponse(err error) (int, ErrorResponse) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: verr.Fields}
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusBadRequest, ErrorResponse{Error: apperr.ErrInvalidCredentials.Error()}
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{Error: apperr.ErrUnauthorized.Error()}
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: apperr.ErrNotFound.Error()}
	case errors.Is(err, apperr.ErrFileTooLarge):
		return http.StatusBadRequest, ErrorResponse{Error: apperr.ErrFileTooLarge.Error()}
	case errors.Is(err, apperr.ErrUnsupportedMedia):
		// the wrapped message carries the reason (bad extension, undecodable, timeout)
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
	}
}
