// Package server exposes extraction over HTTP: a JSON parse endpoint, a
// websocket endpoint that answers one parse per frame, and health and
// dimension listings.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/qntx-dims/am"
	"github.com/teranos/qntx-dims/errors"
	"github.com/teranos/qntx-dims/extract"
	"github.com/teranos/qntx-dims/logger"
)

// ShutdownTimeout bounds graceful shutdown
const ShutdownTimeout = 10 * time.Second

// Server is the HTTP API. Configuration can be swapped at runtime with
// Reload; in-flight requests keep the config they started with.
type Server struct {
	extractor *extract.Extractor
	cfg       atomic.Pointer[am.Config]
	limiter   atomic.Pointer[rate.Limiter]
	cache     atomic.Pointer[cache.Cache]
	logger    *zap.SugaredLogger
	mux       *http.ServeMux
	now       func() time.Time
}

// Option configures a Server
type Option func(*Server)

// WithExtractor replaces the default extractor
func WithExtractor(ex *extract.Extractor) Option {
	return func(s *Server) { s.extractor = ex }
}

// WithLogger replaces the "server" component logger
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Server) { s.logger = log }
}

// WithClock sets the source of the default reference time
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a server for cfg
func New(cfg *am.Config, opts ...Option) (*Server, error) {
	s := &Server{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.ComponentLogger("server")
	}
	if s.extractor == nil {
		s.extractor = extract.New(
			extract.WithLogger(logger.ComponentLogger("extract")),
			extract.WithMaxRounds(cfg.Parse.MaxRounds))
	}
	if err := s.Reload(cfg); err != nil {
		return nil, err
	}
	s.mux = http.NewServeMux()
	s.setupHTTPRoutes()
	return s, nil
}

// Reload validates cfg and makes it current. It has the shape of an
// am.ReloadCallback.
func (s *Server) Reload(cfg *am.Config) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid server config")
	}

	limit := rate.Inf
	if cfg.Server.RatePerSecond > 0 {
		limit = rate.Limit(cfg.Server.RatePerSecond)
	}
	s.limiter.Store(rate.NewLimiter(limit, cfg.Server.Burst))

	prev := s.cfg.Load()
	if ttl := cfg.GetCacheTTL(); ttl > 0 {
		if prev == nil || prev.GetCacheTTL() != ttl || s.cache.Load() == nil {
			s.cache.Store(cache.New(ttl, 2*ttl))
		}
	} else {
		s.cache.Store(nil)
	}
	s.cfg.Store(cfg)

	if prev != nil {
		s.logger.Infow("Server config reloaded",
			logger.FieldLocale, cfg.Parse.Locale,
			"rate_per_second", cfg.Server.RatePerSecond,
			"cache_ttl_seconds", cfg.Server.CacheTTLSeconds)
	}
	return nil
}

// Config returns the current config
func (s *Server) Config() *am.Config {
	return s.cfg.Load()
}

// Handler returns the root handler with request IDs and access logging
func (s *Server) Handler() http.Handler {
	return s.requestIDMiddleware(s.accessLogMiddleware(s.mux))
}

// ListenAndServe serves on the configured port until ctx is done, then
// shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	port := s.Config().GetServerPort()
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return errors.Wrapf(err, "failed to listen on port %d", port)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Infow("HTTP server listening", logger.FieldAddress, ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server failed")
	case <-ctx.Done():
	}

	s.logger.Infow("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown failed")
	}
	return nil
}
