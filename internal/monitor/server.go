package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Server wraps the metrics HTTP endpoint.
type Server struct {
	addr   string
	server *http.Server
}

func NewServer(addr string, handler http.Handler) *Server {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
		// Timeouts to prevent slow client attacks
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	return &Server{
		addr:   addr,
		server: httpServer,
	}
}

func (s *Server) Start(ctx context.Context) error {
	slog.Info("metrics server start", "addr", fmt.Sprintf("http://localhost%s/metrics", s.addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	slog.Info("metrics server stop")
	return s.server.Shutdown(ctx)
}
