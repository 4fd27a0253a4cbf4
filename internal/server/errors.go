package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/fieldwatch/fieldwatch/internal/report/domain"
	telemetrydomain "github.com/fieldwatch/fieldwatch/internal/telemetry/domain"
	watcherdomain "github.com/fieldwatch/fieldwatch/internal/watcher/domain"
	"github.com/fieldwatch/fieldwatch/pkg/db"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, telemetrydomain.ErrMalformedPayload):
		return http.StatusBadRequest, errorPayload{
			Type:    "malformed_payload",
			Message: "device message payload is missing or has a non-numeric timestamp",
		}
	case errors.Is(err, watcherdomain.ErrInvalidStatus):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_status",
			Message: "review status is outside the allowed set",
		}
	case errors.Is(err, watcherdomain.ErrInvalidKind):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_kind",
			Message: "watcher kind index is out of range",
		}
	case errors.Is(err, reportdomain.ErrInvalidReport):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "invalid_report",
			Message: "a report failed validation during the cascade",
		}
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, watcherdomain.ErrInvalidID),
		errors.Is(err, telemetrydomain.ErrInvalidWatcher):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: "invalid request",
		}
	case db.IsDuplicateKeyErr(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "a conflicting record already exists",
		}
	case errors.Is(err, watcherdomain.ErrNotFound),
		errors.Is(err, reportdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}
