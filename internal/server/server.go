// Package server exposes the markdown renderer and the Medium feed over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/gauthierbraillon/folio/internal/config"
	"github.com/gauthierbraillon/folio/internal/markdown"
	"github.com/gauthierbraillon/folio/internal/medium"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// PostSource serves cached Medium posts.
type PostSource interface {
	Recent(ctx context.Context, limit int) ([]medium.Post, error)
	Refresh()
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for request and error logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics exports m and serves reg on /metrics.
func WithMetrics(m *Metrics, reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.metrics = m
		s.registry = reg
	}
}

// Server is folio's HTTP API.
type Server struct {
	cfg          config.Server
	engineName   string
	defaultMode  markdown.Mode
	engines      map[markdown.Mode]markdown.Engine
	posts        PostSource
	defaultLimit int
	logger       *slog.Logger
	metrics      *Metrics
	registry     *prometheus.Registry
}

// New builds a Server from cfg. posts backs the /api/medium routes.
func New(cfg *config.Config, posts PostSource, opts ...Option) (*Server, error) {
	mode, err := markdown.ParseMode(cfg.Markdown.Mode)
	if err != nil {
		return nil, err
	}
	theme, err := markdown.ThemeByName(cfg.Markdown.Theme)
	if err != nil {
		return nil, err
	}

	engines := make(map[markdown.Mode]markdown.Engine, 2)
	for _, m := range []markdown.Mode{markdown.ModeSafe, markdown.ModeLegacy} {
		engineOpts := []markdown.Option{markdown.WithMode(m), markdown.WithTheme(theme)}
		if m == markdown.ModeLegacy {
			engineOpts = append(engineOpts, markdown.WithSanitizer())
		}
		e, err := markdown.NewEngine(cfg.Markdown.Engine, engineOpts...)
		if err != nil {
			return nil, err
		}
		engines[m] = e
	}

	s := &Server{
		cfg:          cfg.Server,
		engineName:   cfg.Markdown.Engine,
		defaultMode:  mode,
		engines:      engines,
		posts:        posts,
		defaultLimit: cfg.Medium.Limit,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.registry = prometheus.NewRegistry()
		s.metrics = NewMetrics(s.registry)
	}
	return s, nil
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if d := s.cfg.RequestTimeout.Duration; d > 0 {
		r.Use(middleware.Timeout(d))
	}

	r.Get("/healthz", s.healthz)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.render)
		r.Post("/excerpt", s.excerpt)
		r.Get("/medium/posts", s.mediumPosts)
		r.Post("/medium/refresh", s.mediumRefresh)
		r.Get("/device", s.device)
	})

	return r
}

// ListenAndServe listens on the configured address and serves until ctx is
// canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("HTTP server listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		s.logger.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.metrics.observeRequest(route, status)
		s.logger.DebugContext(r.Context(), "HTTP request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
