package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetActiveWatcherCount reports how many distinct watchers have submitted at
// least one device message. Counted per request; there is no process-level
// cache to go stale.
func (s *Server) GetActiveWatcherCount(c *gin.Context) {
	count, err := s.telemetrySvc.ActiveWatcherCount(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"active_watchers": count})
}
