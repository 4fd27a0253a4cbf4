package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	telemetrydomain "github.com/fieldwatch/fieldwatch/internal/telemetry/domain"
)

func (s *Server) CreateDeviceMessage(c *gin.Context) {
	var req telemetrydomain.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	msg, err := s.telemetrySvc.Ingest(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}
