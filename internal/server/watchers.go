package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	watcherdomain "github.com/fieldwatch/fieldwatch/internal/watcher/domain"
)

func (s *Server) ListWatchers(c *gin.Context) {
	var req watcherdomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	watchers, err := s.watcherSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"watchers": watchers})
}

func (s *Server) GetWatcherByID(c *gin.Context) {
	w, err := s.watcherSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

func (s *Server) SetWatcherReviewStatus(c *gin.Context) {
	var req watcherdomain.SetReviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = c.Param("id")

	w, err := s.watcherSvc.SetReviewStatus(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

func (s *Server) SetWatcherKind(c *gin.Context) {
	var req watcherdomain.SetKindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req.ID = c.Param("id")

	w, err := s.watcherSvc.SetKind(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

func (s *Server) DeleteWatcher(c *gin.Context) {
	if err := s.watcherSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
