// ABOUTME: Theme, config, stats, and exporter listing handlers.
// ABOUTME: Settings come from the watched document when one is installed.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/trainer/internal/config"
	"go.uber.org/zap"
)

type themeRequest struct {
	Theme string `json:"theme"`
}

// UseSettings installs doc as the document served by GET /theme and
// GET /config. The serve command calls it on every file reload.
func (s *Server) UseSettings(doc config.Document) {
	clone := doc.Clone()
	s.settings.Store(&clone)
}

// currentSettings returns the installed document, or reads the store when
// none is installed.
func (s *Server) currentSettings() (config.Document, error) {
	if doc := s.settings.Load(); doc != nil {
		return doc.Clone(), nil
	}
	return s.svc.Config()
}

// refreshSettings re-reads the store after a write through the API so the
// installed document never lags behind it.
func (s *Server) refreshSettings() {
	if s.settings.Load() == nil {
		return
	}
	doc, err := s.svc.Config()
	if err != nil {
		s.log.Warn("settings refresh failed", zap.Error(err))
		return
	}
	s.UseSettings(doc)
}

// getTheme handles GET /theme
func (s *Server) getTheme(c *gin.Context) {
	doc, err := s.currentSettings()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": doc.Theme()})
}

// setTheme handles POST /theme
func (s *Server) setTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := s.svc.SaveTheme(req.Theme); err != nil {
		s.fail(c, err)
		return
	}
	s.refreshSettings()
	c.Status(http.StatusNoContent)
}

// getConfig handles GET /config
func (s *Server) getConfig(c *gin.Context) {
	doc, err := s.currentSettings()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// updateConfig handles POST /config, merging the body into the document.
func (s *Server) updateConfig(c *gin.Context) {
	var partial config.Document
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	doc, err := s.svc.UpdateConfig(partial)
	if err != nil {
		s.fail(c, err)
		return
	}
	if s.settings.Load() != nil {
		s.UseSettings(doc)
	}
	c.Status(http.StatusNoContent)
}

// stats handles GET /stats?limit=5
func (s *Server) stats(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = n
	}

	stats, err := s.svc.Stats(c.Request.Context(), limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// exporters handles GET /exporters
func (s *Server) exporters(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Formats())
}
