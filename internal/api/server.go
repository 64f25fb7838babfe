// ABOUTME: REST server exposing the facade over HTTP with gin.
// ABOUTME: Sets up middleware, routes, and graceful shutdown.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harperreed/trainer/internal/app"
	"github.com/harperreed/trainer/internal/config"
	"github.com/harperreed/trainer/internal/logging"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request id.
const RequestIDHeader = "X-Request-ID"

// Server holds the dependencies of the REST handlers.
type Server struct {
	svc    *app.Service
	log    *zap.Logger
	engine *gin.Engine

	// settings is the watched configuration; nil means read from disk.
	settings atomic.Pointer[config.Document]
}

// NewServer builds the router for svc.
func NewServer(svc *app.Service, logger *zap.Logger) *Server {
	s := &Server{svc: svc, log: logging.OrNop(logger)}

	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(s.log))

	router.GET("/students", s.listStudents)
	router.POST("/students", s.createStudent)
	router.GET("/students/:id", s.getStudent)
	router.PUT("/students/:id", s.updateStudent)
	router.DELETE("/students/:id", s.deleteStudent)
	router.GET("/students/:id/plans", s.listPlans)
	router.POST("/students/:id/plans", s.createPlan)

	router.GET("/plans/:id", s.getPlan)
	router.PUT("/plans/:id", s.updatePlan)
	router.DELETE("/plans/:id", s.deletePlan)
	router.GET("/plans/:id/export", s.exportPlan)

	router.GET("/theme", s.getTheme)
	router.POST("/theme", s.setTheme)
	router.GET("/config", s.getConfig)
	router.POST("/config", s.updateConfig)
	router.GET("/stats", s.stats)
	router.GET("/exporters", s.exporters)

	s.engine = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("REST server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		s.log.Info("REST server stopped")
		return nil
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")))
	}
}
