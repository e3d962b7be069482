// Package server exposes the engine over HTTP with echo.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Nikkoola22/ATLAS/ai"
	"github.com/Nikkoola22/ATLAS/core"
	"github.com/Nikkoola22/ATLAS/search"
)

// Engine is what the HTTP layer needs from the retrieval engine.
type Engine interface {
	UnifiedSearch(ctx context.Context, question string, history []core.Message) (*core.SearchResult, error)
	LocateSections(ctx context.Context, question string) []string
	ScoreAndRetrieveSingleChapter(question string) string
	Rank(question string) []search.ChapterScore
	Completer() ai.Completer
}

// ErrEngineRequired is returned when an engine is not provided.
var ErrEngineRequired = errors.New("engine required")

// Server serves the chat API.
type Server struct {
	echo   *echo.Echo
	engine Engine
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a server with every route registered.
func New(engine Engine, opts ...Option) (*Server, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}
	s := &Server{
		engine: engine,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "server")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status,
				"latency", v.Latency, "request_id", v.RequestID)
			return nil
		},
	}))
	s.echo = e
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.echo.GET("/healthz", s.health)

	api := s.echo.Group("/api")
	api.POST("/chat", s.chat)
	api.POST("/locate", s.locate)
	api.POST("/score", s.score)
	api.POST("/completions", s.completions)
}

// Handler returns the HTTP handler, for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
