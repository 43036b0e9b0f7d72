package api

import (
	"context"
	"net/http"
	"time"

	"edakit/domain/dataset"
	"edakit/internal"
	"edakit/internal/profiling"

	"github.com/gin-gonic/gin"
)

// Server exposes read-only EDA endpoints over one loaded table
type Server struct {
	router   *gin.Engine
	table    *dataset.Table
	profiler *profiling.Profiler
	logger   *internal.Logger
}

// NewServer creates a server for table and registers its routes
func NewServer(table *dataset.Table) *Server {
	s := &Server{
		router:   gin.New(),
		table:    table,
		profiler: profiling.NewProfiler(profiling.NopReporter{}),
		logger:   internal.DefaultLogger.With("API"),
	}
	s.router.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/shape", s.handleShape)
		api.GET("/columns", s.handleColumns)
		api.GET("/stats/:column", s.handleStats)
		api.GET("/nulls", s.handleNulls)
		api.GET("/nulls/threshold", s.handleNullThreshold)
		api.GET("/skew", s.handleSkew)
		api.GET("/profile", s.handleProfile)
		api.GET("/report", s.handleReport)
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving %s on %s", s.table.Name, addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
