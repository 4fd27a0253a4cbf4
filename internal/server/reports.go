package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	watcherdomain "github.com/fieldwatch/fieldwatch/internal/watcher/domain"
)

func (s *Server) GetWatcherReport(c *gin.Context) {
	report, err := s.reportSvc.GetByWatcher(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) GetWatcherCommission(c *gin.Context) {
	watcherID, err := watcherdomain.ParseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, watcherdomain.ErrInvalidID)
		return
	}

	commission, err := s.resolver.Resolve(c.Request.Context(), watcherID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if commission == nil {
		c.JSON(http.StatusOK, gin.H{"commission": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"commission": commission})
}
