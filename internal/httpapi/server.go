package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ppiankov/globeintel/internal/logger"
	"github.com/ppiankov/globeintel/internal/model"
	"github.com/ppiankov/globeintel/internal/worker"
)

// Server is the HTTP listener with graceful shutdown
type Server struct {
	srv             *http.Server
	limiter         *worker.Limiter
	shutdownTimeout time.Duration
	log             *logger.Logger
}

// NewServer creates the server and its per-IP limiter. Idle buckets are swept while Serve runs.
func NewServer(cfg model.ServerConfig, h *Handlers, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.NewNop()
	}

	trusted, err := ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	var limiter *worker.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = worker.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	shutdown := cfg.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = 10 * time.Second
	}

	return &Server{
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           NewRouter(h, limiter, trusted, log),
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		limiter:         limiter,
		shutdownTimeout: shutdown,
		log:             log,
	}, nil
}

// Run serves until ctx is done, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.limiter != nil {
		sweepCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go s.limiter.RunSweeper(sweepCtx, time.Minute, 5*time.Minute)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", ln.Addr().String())
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}
