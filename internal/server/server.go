// Package server exposes tutor sessions over a JSON HTTP API. Each
// session is held in memory and addressed by a signed bearer token.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/datapath/internal/logging"
	"github.com/abhisek/datapath/internal/tutor"
)

const (
	// DefaultSessionIdle is how long an unused session is kept.
	DefaultSessionIdle = 2 * time.Hour

	sweepInterval   = 5 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// Dispatcher applies an event to a session and runs its effects.
type Dispatcher interface {
	Dispatch(ctx context.Context, s *tutor.State, ev tutor.Event) error
}

// Config holds the server settings.
type Config struct {
	Addr        string
	JWTSecret   string
	CORSOrigins []string

	// SessionIdle drops sessions unused for this long. Zero uses
	// DefaultSessionIdle.
	SessionIdle time.Duration
}

// Server is the HTTP API.
type Server struct {
	cfg      Config
	exec     Dispatcher
	tokens   *TokenIssuer
	sessions *registry
	logger   *logrus.Logger
	engine   *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Server dispatching events through exec.
func New(cfg Config, exec Dispatcher, opts ...Option) *Server {
	if cfg.SessionIdle <= 0 {
		cfg.SessionIdle = DefaultSessionIdle
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}
	s := &Server{
		cfg:      cfg,
		exec:     exec,
		tokens:   NewTokenIssuer(cfg.JWTSecret, DefaultTokenTTL),
		sessions: newRegistry(),
		logger:   logging.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Authorization", "Accept", "Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(s.requestLogger())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "datapath",
			"sessions":  s.sessions.Len(),
			"timestamp": time.Now(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.POST("/sessions", s.createSession)
	api.GET("/topics", s.listTopics)

	authed := api.Group("/session", s.requireSession())
	authed.GET("", s.getSession)
	authed.POST("/events", s.postEvent)

	return r
}

// requestLogger logs one line per request and counts it.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()

		s.logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client":     c.ClientIP(),
		}).Debug("http request")
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.cfg.Addr).Info("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Sweep(s.cfg.SessionIdle); n > 0 {
				s.logger.WithField("removed", n).Info("expired idle sessions")
			}
		}
	}
}
