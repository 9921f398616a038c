// Package api exposes the task service over HTTP.
package api

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"task-manager/internal/logging"
	"task-manager/internal/services"
)

// Options configures the HTTP server
type Options struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	CORSOrigin      string
	Logger          *logging.Logger
}

// Server is the task manager HTTP service
type Server struct {
	service services.TaskService
	router  *gin.Engine
	opts    Options
	log     *logging.Logger
}

// NewServer creates a new HTTP server for service
func NewServer(service services.TaskService, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	router := gin.New()
	s := &Server{
		service: service,
		router:  router,
		opts:    opts,
		log:     opts.Logger,
	}

	router.Use(
		requestID(),
		requestLogger(s.log),
		gin.CustomRecovery(s.recoverPanic),
		cors(opts.CORSOrigin),
	)
	if opts.RequestTimeout > 0 {
		router.Use(timeout(opts.RequestTimeout))
	}

	router.GET("/healthz", s.handleHealth)
	router.GET("/readyz", s.handleReady)

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.GET("/tasks/:id", s.handleGetTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
	}

	return s
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", ln.Addr())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Infof("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Infof("bye")
	return nil
}

func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	s.log.Error("panic", "req_id", c.GetString(requestIDKey), "error", recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{
		Message: "Internal server error",
		Error:   "An unexpected error occurred. Please try again.",
	})
}
