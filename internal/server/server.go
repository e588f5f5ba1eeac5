// Package server exposes the tracker as a local JSON API for dashboards.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/blackwell-systems/mindpatch/internal/logger"
	"github.com/blackwell-systems/mindpatch/internal/tracker"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Options configures the API server.
type Options struct {
	// RequestsPerSecond limits the API as a whole. Zero disables limiting.
	RequestsPerSecond float64
	Burst             int
	ShutdownTimeout   time.Duration
}

// DefaultOptions are used by the serve command.
var DefaultOptions = Options{
	RequestsPerSecond: 20,
	Burst:             40,
	ShutdownTimeout:   5 * time.Second,
}

// Server serves the JSON API.
type Server struct {
	tr     *tracker.Tracker
	opts   Options
	engine *gin.Engine
}

// New builds the router.
func New(tr *tracker.Tracker, opts Options) *Server {
	s := &Server{tr: tr, opts: opts}
	s.engine = s.router()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	if s.opts.RequestsPerSecond > 0 {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(s.opts.RequestsPerSecond), max(1, s.opts.Burst))))
	}

	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/dashboard", s.dashboard)
		api.POST("/entries", s.logEntry)
		api.GET("/suggestion", s.suggestion)
		api.GET("/insight", s.insight)
		api.GET("/habits", s.habits)
		api.POST("/habits/toggle", s.toggleHabit)
		api.GET("/gratitude", s.listGratitude)
		api.POST("/gratitude", s.addGratitude)
		api.GET("/animation", s.animation)
	}
	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("api listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := s.opts.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		logger.Info("api shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("api request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}

func rateLimit(l *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
